/*
 * main.go, part of pdbrecon.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// pdbrecon reads the ATOM coordinates in protein.pdb, trains a network to recover them from
// three synthetic views, and writes the averaged reconstruction as a PDB file, an interactive
// 3D plot and a PNG with its projections. The trained model is saved too.
package main

import (
	"log"
	"math/rand"
	"time"

	recon "github.com/rmera/pdbrecon"
	"github.com/rmera/pdbrecon/chemplot"
	"github.com/rmera/pdbrecon/histo"
	"github.com/rmera/pdbrecon/learn"
)

const (
	inputPDB  = "protein.pdb"
	outputPDB = "reconstructed_protein.pdb"
	plotHTML  = "reconstructed_protein.html"
	plotPNG   = "reconstructed_protein.png"
	modelFile = "reconstruction_model.json.zst"
	plotTitle = "Reconstructed protein structure"
)

// Bins for the histogram of per-atom deviations, in A.
var deviationBins = []float64{0, 0.5, 1, 2, 4, 8, 1e6}

// paths collects the files read and written by run.
type paths struct {
	input, pdb, html, png, model string
}

func main() {
	p := paths{inputPDB, outputPDB, plotHTML, plotPNG, modelFile}
	O := learn.DefaultOptions()
	O.Verbose(true)
	if err := run(p, O, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
		log.Fatal(err)
	}
}

// run goes through the whole pipeline. src is used only for the permutation view.
func run(p paths, O *learn.Options, src *rand.Rand) error {
	coords, err := recon.PDBRead(p.input)
	if err != nil {
		return err
	}
	log.Printf("Read %d ATOM records from %s", coords.NVecs(), p.input)
	views := recon.Views(coords, src)
	in, err := recon.StackViews(views[:])
	if err != nil {
		return err
	}
	M, rep, err := learn.Train(in, recon.TileTarget(coords, recon.NViews), O)
	if err != nil {
		return err
	}
	log.Printf("Test MSE: %.6f", rep.TestMSE)
	rec, err := M.Reconstruct(views[:])
	if err != nil {
		return err
	}
	final, err := learn.Average(rec)
	if err != nil {
		return err
	}
	rmsd, dev, err := recon.SuperRMSD(final, coords)
	if err != nil {
		return err
	}
	log.Printf("RMSD to the input after superposition: %.4f", rmsd)
	log.Printf("Deviations (A):\n%s", histo.NewData(deviationBins, dev))
	if err = recon.PDBWrite(p.pdb, final); err != nil {
		return err
	}
	log.Printf("Reconstructed coordinates written to %s", p.pdb)
	if err = chemplot.Scatter3DHTML(p.html, plotTitle, final); err != nil {
		return err
	}
	if err = chemplot.ProjectionsPNG(p.png, plotTitle, final); err != nil {
		return err
	}
	log.Printf("Plots written to %s and %s", p.html, p.png)
	if err = M.Save(p.model); err != nil {
		return err
	}
	log.Printf("Model saved to %s", p.model)
	return nil
}
