/*
 * model.go, part of pdbrecon.
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

	"github.com/rmera/pdbrecon/nn"
	v3 "github.com/rmera/pdbrecon/v3"
)

// Model is a trained network together with the scaler fitted for it in the same training run.
// The two can't be separated: the scaler is always applied before the network.
// After training, a Model is only read.
type Model struct {
	scaler *MinMaxScaler
	net    *nn.Network
}

// Predict returns the coordinates predicted by the model for each vector of view.
// An empty view gives an empty prediction.
func (M *Model) Predict(view *v3.Matrix) (*v3.Matrix, error) {
	if view.Empty() {
		return v3.Zeros(0), nil
	}
	x, err := M.scaler.Transform(view)
	if err != nil {
		return nil, errDecorate(err, "Predict")
	}
	return v3.Dense2Matrix(M.net.Predict(x)), nil
}

// Reconstruct applies Predict to each view, independently, and returns the
// predictions in the same order as the views.
func (M *Model) Reconstruct(views []*v3.Matrix) ([]*v3.Matrix, error) {
	ret := make([]*v3.Matrix, len(views))
	for i, v := range views {
		p, err := M.Predict(v)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Reconstruct: view %d", i))
		}
		ret[i] = p
	}
	return ret, nil
}

// Average returns the vector-by-vector mean of the given sets of coordinates.
// All the sets must have the same number of vectors.
func Average(sets []*v3.Matrix) (*v3.Matrix, error) {
	if len(sets) == 0 {
		return nil, Error{"No coordinates to average", "", []string{"Average"}, true}
	}
	n := sets[0].NVecs()
	for i, s := range sets {
		if s.NVecs() != n {
			return nil, Error{fmt.Sprintf("Set %d has %d vectors, set 0 has %d", i, s.NVecs(), n), "", []string{"Average"}, true}
		}
	}
	ret := v3.Zeros(n)
	if n == 0 {
		return ret, nil
	}
	for _, s := range sets {
		ret.Dense.Add(ret.Dense, s.Dense)
	}
	ret.Dense.Scale(1/float64(len(sets)), ret.Dense)
	return ret, nil
}
