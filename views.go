/*
 * views.go, part of pdbrecon.
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
	"fmt"
	"math/rand"
	"time"

	v3 "github.com/rmera/pdbrecon/v3"
)

// NViews is the number of views built from a set of coordinates.
const NViews = 3

// IdentityView returns a copy of c.
func IdentityView(c *v3.Matrix) *v3.Matrix {
	return v3.Clone(c)
}

// PermutationView returns a copy of c with its vectors in a random order,
// taken from src. The vectors themselves are not changed.
func PermutationView(c *v3.Matrix, src *rand.Rand) *v3.Matrix {
	ret := v3.Zeros(c.NVecs())
	ret.SomeVecs(c, src.Perm(c.NVecs()))
	return ret
}

// FlipView returns a copy of c where the order of the
// components of each vector is reversed, so (x,y,z) becomes (z,y,x).
// The order of the vectors is kept. FlipView(FlipView(c)) is equal to c.
func FlipView(c *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(c.NVecs())
	for i := 0; i < c.NVecs(); i++ {
		o := c.RawRowView(i)
		r := ret.RawRowView(i)
		r[0], r[1], r[2] = o[2], o[1], o[0]
	}
	return ret
}

// Views returns the identity, permutation and flip views of c, in that order.
// The permutation is taken from src. If src is nil, a source seeded with the
// current time is used, so each call gives a different permutation.
func Views(c *v3.Matrix, src *rand.Rand) [NViews]*v3.Matrix {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return [NViews]*v3.Matrix{IdentityView(c), PermutationView(c, src), FlipView(c)}
}

// StackViews puts all the views, one after the other, in a new Matrix.
// It returns an error if the views don't have the same number of vectors.
func StackViews(views []*v3.Matrix) (*v3.Matrix, error) {
	for i, v := range views {
		if v.NVecs() != views[0].NVecs() {
			return nil, CError{fmt.Sprintf("View %d has %d vectors, view 0 has %d", i, v.NVecs(), views[0].NVecs()), []string{"StackViews"}}
		}
	}
	return v3.StackAll(views...), nil
}

// TileTarget returns a Matrix with n copies of c, one after the other, so that
// each block of c.NVecs() vectors are the targets for the corresponding view
// in the output of StackViews.
func TileTarget(c *v3.Matrix, n int) *v3.Matrix {
	blocks := make([]*v3.Matrix, n)
	for i := range blocks {
		blocks[i] = c
	}
	return v3.StackAll(blocks...)
}
