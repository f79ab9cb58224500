/*
 * gonum.go, part of pdbrecon.
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

//gonum.go contains the Matrix type and its gonum-backed methods.

//All the *Vec functions operate on row vectors, i.e. the cartesian coordinates of one atom.

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const cols int = 3

// Matrix is a set of vectors in 3D space.
// Within the package it is understood that a "vector" is a row vector, i.e. the
// cartesian coordinates of a point in 3D space. The name of some funcitions in
// the library reflect this.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
// vecs can be 0, in which case an empty Matrix is returned.
func Zeros(vecs int) *Matrix {
	if vecs < 0 {
		panic(ErrShape)
	}
	if vecs == 0 {
		return &Matrix{}
	}
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// The slice is used as the backing data, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return &Matrix{}, nil
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Dense2Matrix wraps A in a Matrix. It panics if A doesn't have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if A == nil {
		return &Matrix{}
	}
	if _, c := A.Dims(); c != cols {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// Matrix2Dense returns the Dense underlying A, which is nil for an empty Matrix.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dims returns the dimensions of F. Unlike the Dense method, it works on empty
// matrices.
func (F *Matrix) Dims() (int, int) {
	if F == nil || F.Dense == nil {
		return 0, cols
	}
	return F.Dense.Dims()
}

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != cols {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Empty returns true if F contains no vectors.
func (F *Matrix) Empty() bool {
	return F.NVecs() == 0
}

// VecView returns a view of the given vector of the matrix.
// Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	r := F.Dense.Slice(i, i+1, 0, cols).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of r vectors of F, starting from the i-th one.
func (F *Matrix) View(i, r int) *Matrix {
	if r == 0 {
		return &Matrix{}
	}
	if i < 0 || i+r > F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return &Matrix{F.Dense.Slice(i, i+r, 0, cols).(*mat.Dense)}
}

// SwapVecs swaps the vectors i and j of F.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	rowi := F.RawRowView(i)
	rowj := F.RawRowView(j)
	for k := 0; k < cols; k++ {
		rowi[k], rowj[k] = rowj[k], rowi[k]
	}
}

// SomeVecs puts in the received the i-th vectors of matrix A,
// where i are the numbers in clist. The vectors are in the same order
// than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val < 0 || val >= ar {
			panic(ErrIndexOutOfRange)
		}
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

// SomeVecsSafe is like SomeVecs, but returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{string(e), []string{"SomeVecsSafe"}, true}
			case mat.Error:
				err = Error{fmt.Sprintf("%s: %s", ErrGonum, e), []string{"SomeVecsSafe"}, true}
			default:
				panic(r)
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

// Clone returns a new Matrix with a copy of the data in A.
func Clone(A *Matrix) *Matrix {
	F := Zeros(A.NVecs())
	if !F.Empty() {
		F.Dense.Copy(A.Dense)
	}
	return F
}

// StackAll returns a new Matrix with all the vectors of the given matrices,
// one matrix after the other.
func StackAll(mats ...*Matrix) *Matrix {
	total := 0
	for _, v := range mats {
		total += v.NVecs()
	}
	F := Zeros(total)
	pos := 0
	for _, v := range mats {
		r := v.NVecs()
		for i := 0; i < r; i++ {
			copy(F.RawRowView(pos+i), v.RawRowView(i))
		}
		pos += r
	}
	return F
}

// Equal returns true if F and B have the same vectors within tol,
// element by element.
func (F *Matrix) Equal(B *Matrix, tol float64) bool {
	if F.NVecs() != B.NVecs() {
		return false
	}
	if F.Empty() {
		return true
	}
	return mat.EqualApprox(F.Dense, B.Dense, tol)
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	if r == 0 {
		return "\n[ ]"
	}
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
			continue
		} else if i == r-1 {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2])
			continue
		}
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}

//Errors

// Error is the error type for the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("pdbrecon/v3: A Matrix should have 3 columns")
	ErrGonum           = PanicMsg("pdbrecon/v3: Error in gonum function")
	ErrShape           = PanicMsg("pdbrecon/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("pdbrecon/v3: index out of range")
)
