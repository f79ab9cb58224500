package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	recon "github.com/rmera/pdbrecon"
	"github.com/rmera/pdbrecon/learn"
)

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	p := paths{
		input: "../../test/helix.pdb",
		pdb:   filepath.Join(dir, "out.pdb"),
		html:  filepath.Join(dir, "out.html"),
		png:   filepath.Join(dir, "out.png"),
		model: filepath.Join(dir, "model.json.zst"),
	}
	O := learn.DefaultOptions()
	O.Hidden(16, 16, 8)
	O.Epochs(5)
	if err := run(p, O, rand.New(rand.NewSource(1))); err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{p.pdb, p.html, p.png, p.model} {
		if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
			Te.Errorf("output %s missing or empty: %v", name, err)
		}
	}
	orig, _ := recon.PDBRead(p.input)
	out, err := recon.PDBRead(p.pdb)
	if err != nil {
		Te.Fatal(err)
	}
	if out.NVecs() != orig.NVecs() {
		Te.Errorf("%d atoms written, %d read", out.NVecs(), orig.NVecs())
	}
	if _, err = learn.Load(p.model); err != nil {
		Te.Errorf("the saved model can't be loaded: %v", err)
	}
}

func TestRunMissingInput(Te *testing.T) {
	dir := Te.TempDir()
	p := paths{filepath.Join(dir, "nothere.pdb"), "a.pdb", "a.html", "a.png", "a.zst"}
	if err := run(p, learn.DefaultOptions(), rand.New(rand.NewSource(1))); err == nil {
		Te.Error("a missing input file should be an error")
	}
}
