package chemplot

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	recon "github.com/rmera/pdbrecon"
	v3 "github.com/rmera/pdbrecon/v3"
	"gonum.org/v1/plot/palette/moreland"
)

func TestScatter3D(Te *testing.T) {
	c, err := v3.NewMatrix([]float64{0, 0, 0, 1.5, 2, 3, -1, 4.25, 9})
	if err != nil {
		Te.Fatal(err)
	}
	var b bytes.Buffer
	if err = Scatter3D(&b, "Three <atoms>", c); err != nil {
		Te.Fatal(err)
	}
	page := b.String()
	stops, err := gradient(gradientStops)
	if err != nil {
		Te.Fatal(err)
	}
	//one point per vector, with its index as the fourth value.
	for _, s := range []string{"scatter3D", "echarts-gl.min.js", AssetsHost,
		`"value":[0,0,0,0]`, `"value":[1.5,2,3,1]`, `"value":[-1,4.25,9,2]`,
		`"visualMap"`, `"dimension":"3"`, `"max":2`, stops[0], stops[len(stops)-1],
		"<title>Three &lt;atoms&gt;</title>"} {
		if !strings.Contains(page, s) {
			Te.Errorf("%q not found in the page", s)
		}
	}
	if n := strings.Count(page, `"value":[`); n != 3 {
		Te.Errorf("expected 3 points in the page, got %d", n)
	}
	//The gradient goes from blue to red, as in the projections.
	if stops[0] != hexColor(mustAt(Te, 0)) || stops[len(stops)-1] != hexColor(mustAt(Te, 1)) {
		Te.Errorf("the gradient doesn't go from %s to %s", hexColor(mustAt(Te, 0)), hexColor(mustAt(Te, 1)))
	}
	if stops[0] == stops[len(stops)-1] || strings.Count(strings.Join(stops, ""), "#") != gradientStops {
		Te.Errorf("wrong gradient %v", stops)
	}
}

func mustAt(Te *testing.T, v float64) color.Color {
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(1)
	c, err := cmap.At(v)
	if err != nil {
		Te.Fatal(err)
	}
	return c
}

func TestScatter3DHTML(Te *testing.T) {
	c, err := recon.PDBRead("../test/helix.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "helix.html")
	if err = Scatter3DHTML(name, "Helix", c); err != nil {
		Te.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !bytes.Contains(data, []byte("scatter3D")) {
		Te.Error("the page has no 3D scatter")
	}
	if err = Scatter3DHTML(filepath.Join(Te.TempDir(), "nodir", "x.html"), "x", c); err == nil {
		Te.Error("writing to a missing directory should fail")
	}
	if err = Scatter3D(new(bytes.Buffer), "empty", v3.Zeros(0)); err != nil {
		Te.Errorf("an empty set should still give a page: %v", err)
	}
}

func TestProjectionsPNG(Te *testing.T) {
	c, err := recon.PDBRead("../test/helix.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, s := range []struct {
		name string
		c    *v3.Matrix
	}{
		{"helix.png", c},
		{"empty.png", v3.Zeros(0)},
	} {
		name := filepath.Join(dir, s.name)
		if err = ProjectionsPNG(name, "Helix", s.c); err != nil {
			Te.Fatalf("%s: %v", s.name, err)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			Te.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			Te.Errorf("%s is not a PNG file", s.name)
		}
	}
}

func TestIndexColors(Te *testing.T) {
	cols, err := indexColors(40)
	if err != nil {
		Te.Fatal(err)
	}
	if len(cols) != 40 {
		Te.Fatalf("expected 40 colors, got %d", len(cols))
	}
	r0, _, b0, _ := cols[0].RGBA()
	r1, _, b1, _ := cols[39].RGBA()
	if !(b0 > r0 && r1 > b1) {
		Te.Errorf("colors should go from blue to red, got %v and %v", cols[0], cols[39])
	}
	if cols, err = indexColors(0); err != nil || len(cols) != 0 {
		Te.Errorf("no vectors should give no colors: %v %v", cols, err)
	}
}
