/*
 * scaler.go, part of pdbrecon.
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

package learn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/YuminosukeSato/scigo/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// MinMaxScaler maps each column of a matrix linearly to [0,1], using the minimum
// and maximum of that column in the data it was fitted on. Constant columns are moved to 0.
// Values outside the fitted range map outside [0,1]; they are not clipped.
// The embedded scaler keeps the fitted parameters, and is what gets saved with a Model.
type MinMaxScaler struct {
	*preprocessing.MinMaxScaler
}

// NewMinMaxScaler returns an unfitted scaler to [0,1].
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{preprocessing.NewMinMaxScalerDefault()}
}

// Fitted returns true if the scaler has been fitted, and its parameters are consistent.
func (S *MinMaxScaler) Fitted() bool {
	if S == nil || S.MinMaxScaler == nil || !S.IsFitted() {
		return false
	}
	n := S.NFeatures
	return n > 0 && len(S.DataMin) == n && len(S.Scale) == n && S.FeatureRange[1] > S.FeatureRange[0]
}

// Features returns the number of columns the scaler was fitted on, or 0 if it is not fitted.
func (S *MinMaxScaler) Features() int {
	if !S.Fitted() {
		return 0
	}
	return S.NFeatures
}

// Fit obtains the minimum and range of each column in X.
func (S *MinMaxScaler) Fit(X mat.Matrix) error {
	if S.MinMaxScaler == nil {
		S.MinMaxScaler = preprocessing.NewMinMaxScalerDefault()
	}
	if err := S.MinMaxScaler.Fit(X); err != nil {
		return Error{"Can't fit scaler: " + err.Error(), "", []string{"Fit"}, true}
	}
	return nil
}

func (S *MinMaxScaler) check(X mat.Matrix, caller string) error {
	if !S.Fitted() {
		return Error{"Scaler not fitted", "", []string{caller}, true}
	}
	if _, c := X.Dims(); c != S.NFeatures {
		return Error{fmt.Sprintf("Scaler fitted on %d columns, given %d", S.NFeatures, c), "", []string{caller}, true}
	}
	return nil
}

func dense(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(m)
}

// Transform returns a new matrix with the scaled X.
func (S *MinMaxScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := S.check(X, "Transform"); err != nil {
		return nil, err
	}
	ret, err := S.MinMaxScaler.Transform(X)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"Transform"}, true}
	}
	return dense(ret), nil
}

// InverseTransform returns a new matrix with the values of X mapped back to the
// original ranges.
func (S *MinMaxScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := S.check(X, "InverseTransform"); err != nil {
		return nil, err
	}
	ret, err := S.MinMaxScaler.InverseTransform(X)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"InverseTransform"}, true}
	}
	return dense(ret), nil
}

// FitTransform fits the scaler to X and returns the transformed X.
func (S *MinMaxScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := S.Fit(X); err != nil {
		return nil, errDecorate(err, "FitTransform")
	}
	return S.Transform(X)
}

// TrainTestSplit randomly divides the indexes 0..n-1 into a training and a testing set.
// The testing set has ceil(testFrac*n) elements. The division only depends on n, testFrac
// and seed, so the same seed always gives the same sets.
func TrainTestSplit(n int, testFrac float64, seed int64) (train, test []int) {
	if n <= 0 {
		return nil, nil
	}
	ntest := int(math.Ceil(testFrac * float64(n)))
	if ntest > n {
		ntest = n
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[ntest:], perm[:ntest]
}
