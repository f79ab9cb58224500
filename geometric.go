/*
 * geometric.go, part of pdbrecon
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
*/

package recon

import (
	"fmt"
	"math"

	v3 "github.com/rmera/pdbrecon/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func checkPair(test, templa *v3.Matrix, caller string) error {
	if test.NVecs() != templa.NVecs() {
		return CError{fmt.Sprintf("Ill-formed matrices: %d and %d vectors", test.NVecs(), templa.NVecs()), []string{caller}}
	}
	return nil
}

// Centroid returns the geometric center of the vectors in c, as a row vector.
func Centroid(c *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(1)
	n := c.NVecs()
	if n == 0 {
		return ret
	}
	r := ret.RawRowView(0)
	for i := 0; i < n; i++ {
		floats.Add(r, c.RawRowView(i))
	}
	floats.Scale(1/float64(n), r)
	return ret
}

// Deviations returns the distance between each vector of test and the corresponding
// vector of templa.
func Deviations(test, templa *v3.Matrix) ([]float64, error) {
	if err := checkPair(test, templa, "Deviations"); err != nil {
		return nil, err
	}
	ret := make([]float64, test.NVecs())
	d := make([]float64, 3)
	for i := range ret {
		floats.SubTo(d, test.RawRowView(i), templa.RawRowView(i))
		ret[i] = floats.Norm(d, 2)
	}
	return ret, nil
}

// RMSD returns the RMSD (root of the mean square deviation) for the sets of cartesian
// coordinates in test and template. The RMSD of two empty sets is 0.
func RMSD(test, templa *v3.Matrix) (float64, error) {
	dev, err := Deviations(test, templa)
	if err != nil {
		return 0, errDecorate(err, "RMSD")
	}
	if len(dev) == 0 {
		return 0, nil
	}
	var sq float64
	for _, v := range dev {
		sq += v * v
	}
	return math.Sqrt(sq / float64(len(dev))), nil
}

// Super returns a copy of test rotated and translated to minimize its RMSD to templa.
// Reflections are not allowed, so a mirror image of templa is not superimposed onto it.
func Super(test, templa *v3.Matrix) (*v3.Matrix, error) {
	if err := checkPair(test, templa, "Super"); err != nil {
		return nil, err
	}
	n := test.NVecs()
	if n == 0 {
		return v3.Zeros(0), nil
	}
	ctest, ctempla := Centroid(test), Centroid(templa)
	P := v3.Clone(test)
	Q := v3.Clone(templa)
	//Both sets are moved to their centroids. The rows are updated in place, as a
	//mat.Dense can't be the receiver of an operation on a view of itself.
	for i := 0; i < n; i++ {
		floats.Sub(P.RawRowView(i), ctest.RawRowView(0))
		floats.Sub(Q.RawRowView(i), ctempla.RawRowView(0))
	}
	var H mat.Dense
	H.Mul(P.Dense.T(), Q.Dense)
	var svd mat.SVD
	if !svd.Factorize(&H, mat.SVDFull) {
		return nil, CError{"SVD factorization failed", []string{"Super"}}
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	//The rows of P are rotated with U*D*V^T, where D corrects for a reflection.
	D := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&U)*mat.Det(&V) < 0 {
		D.SetDiag(2, -1)
	}
	var R mat.Dense
	R.Product(&U, D, V.T())
	ret := v3.Zeros(n)
	ret.Dense.Mul(P.Dense, &R)
	for i := 0; i < n; i++ {
		floats.Add(ret.RawRowView(i), ctempla.RawRowView(0))
	}
	return ret, nil
}

// SuperRMSD superimposes test onto templa and returns the RMSD after the superposition, together
// with the per-vector deviations.
func SuperRMSD(test, templa *v3.Matrix) (float64, []float64, error) {
	s, err := Super(test, templa)
	if err != nil {
		return 0, nil, errDecorate(err, "SuperRMSD")
	}
	rmsd, err := RMSD(s, templa)
	if err != nil {
		return 0, nil, errDecorate(err, "SuperRMSD")
	}
	dev, _ := Deviations(s, templa)
	return rmsd, dev, nil
}
