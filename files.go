/*
 * files.go, part of pdbrecon.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package recon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	v3 "github.com/rmera/pdbrecon/v3"
)

//PDB_read family

// The coordinate fields of an ATOM record, as byte offsets.
// In the PDB format description these are the columns 31-38, 39-46 and 47-54.
var coordFields = [3][2]int{{30, 38}, {38, 46}, {46, 54}}

const atomRecord = "ATOM"

var errShortLine = errors.New("line too short to contain coordinates")

// parseCoordLine reads the 3 coordinates of an ATOM line and puts them in c.
// nline and filename are only used for the errors.
func parseCoordLine(line string, c []float64, nline int, filename string) error {
	var err error
	for i, f := range coordFields {
		end := f[1]
		if len(line) < end {
			//A line can end right after the last coordinate, without the rest of the fields.
			if i < 2 || len(line) <= f[0] {
				return &ParseError{filename, nline, fmt.Sprintf("%d-%d", f[0]+1, f[1]), errShortLine, []string{"parseCoordLine"}}
			}
			end = len(line)
		}
		c[i], err = strconv.ParseFloat(strings.TrimSpace(line[f[0]:end]), 64)
		if err != nil {
			return &ParseError{filename, nline, fmt.Sprintf("%d-%d", f[0]+1, f[1]), err, []string{"parseCoordLine"}}
		}
	}
	return nil
}

// PDBParse reads the ATOM records from r and returns their coordinates
// in a v3.Matrix, one vector per record, in the order they were read.
// HETATM and all other records are ignored. If there are no ATOM records,
// an empty Matrix is returned. name is only used to report errors.
func PDBParse(r io.Reader, name string) (*v3.Matrix, error) {
	coords := make([]float64, 0, 300)
	c := make([]float64, 3)
	pdb := bufio.NewScanner(r)
	contlines := 0 //count the lines read to better report errors
	for pdb.Scan() {
		contlines++ //count all the lines even if empty.
		line := strings.TrimRight(pdb.Text(), "\r")
		if !strings.HasPrefix(line, atomRecord) {
			continue
		}
		if err := parseCoordLine(line, c, contlines, name); err != nil {
			return nil, errDecorate(err, "PDBParse")
		}
		coords = append(coords, c...)
	}
	if err := pdb.Err(); err != nil {
		return nil, &IOError{name, err, []string{"PDBParse"}}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		//Can't really happen, we always append 3 numbers.
		panic(err.Error())
	}
	return mcoords, nil
}

// PDBRead reads the coordinates of the ATOM records of the PDB file pdbname.
// Files with a .gz extension are decompressed on the fly.
func PDBRead(pdbname string) (*v3.Matrix, error) {
	pdbfile, err := os.Open(pdbname)
	if err != nil {
		return nil, &IOError{pdbname, err, []string{"PDBRead"}}
	}
	defer pdbfile.Close()
	var r io.Reader = pdbfile
	if strings.HasSuffix(strings.ToLower(pdbname), ".gz") {
		z, err := gzip.NewReader(pdbfile)
		if err != nil {
			return nil, &IOError{pdbname, err, []string{"PDBRead"}}
		}
		defer z.Close()
		r = z
	}
	coords, err := PDBParse(r, pdbname)
	return coords, errDecorate(err, "PDBRead")
}

//End PDB_read family

// The only thing that changes from line to line is the atom number and the coordinates.
// Everything else is a placeholder: one alpha carbon of an alanine in the residue 1 of the chain A.
const pdbLineFormat = "ATOM  %4d  CA  ALA A   1     %7.3f %7.3f %7.3f  1.00  0.00           C\n"

// PDBEncode writes the coordinates in c to out as PDB ATOM records, one per vector,
// numbered from 1. Nothing else is written, so the output has exactly one line per vector.
func PDBEncode(out io.Writer, c *v3.Matrix) error {
	w := bufio.NewWriter(out)
	for i := 0; i < c.NVecs(); i++ {
		r := c.RawRowView(i)
		if _, err := fmt.Fprintf(w, pdbLineFormat, i+1, r[0], r[1], r[2]); err != nil {
			return &IOError{"", err, []string{"PDBEncode"}}
		}
	}
	if err := w.Flush(); err != nil {
		return &IOError{"", err, []string{"PDBEncode"}}
	}
	return nil
}

// PDBWrite writes the coordinates in c to a new PDB file with name pdbname.
// If the file exists it will be overwritten.
func PDBWrite(pdbname string, c *v3.Matrix) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return &IOError{pdbname, err, []string{"PDBWrite"}}
	}
	if err = PDBEncode(out, c); err != nil {
		out.Close()
		err.(*IOError).filename = pdbname
		return errDecorate(err, "PDBWrite")
	}
	if err = out.Close(); err != nil {
		return &IOError{pdbname, err, []string{"PDBWrite"}}
	}
	return nil
}
