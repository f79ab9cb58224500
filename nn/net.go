/*
 * net.go, part of pdbrecon.
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

package nn

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyconv"
	"github.com/unixpickle/anynet/anyff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
	"gonum.org/v1/gonum/mat"
)

// Network is a feed-forward regression network: a sequence of anynet layers applied one
// after the other, on batches of row vectors.
// A Network is not safe for concurrent use.
type Network struct {
	Layers anynet.Net
	in     int
	out    int
}

// NewNetwork builds a regression network with in inputs and out outputs.
// There is one hidden block per element of hidden, each one a fully connected layer with ReLU
// activation of the given size, followed by a batch normalization and a dropout that drops
// each unit with probability dropout. The last layer is a linear, fully connected one with out units.
// The weights are Glorot-uniform, taken from src, and the biases start at 0.
// The dropout starts enabled, as the network is meant to be trained.
func NewNetwork(in int, hidden []int, out int, dropout float64, src *rand.Rand) *Network {
	if in <= 0 || out <= 0 {
		panic(ErrShape)
	}
	if dropout < 0 || dropout >= 1 {
		panic(ErrDropout)
	}
	c := creator()
	N := &Network{in: in, out: out}
	prev := in
	for _, h := range hidden {
		if h <= 0 {
			panic(ErrShape)
		}
		N.Layers = append(N.Layers,
			glorot(c, prev, h, src),
			anynet.ReLU,
			anyconv.NewBatchNorm(c, h),
			&anynet.Dropout{Enabled: true, KeepProb: 1 - dropout},
		)
		prev = h
	}
	N.Layers = append(N.Layers, glorot(c, prev, out, src))
	return N
}

func creator() anyvec.Creator {
	return anyvec64.CurrentCreator()
}

// glorot returns a fully connected layer with weights uniform in +-sqrt(6/(in+out)).
func glorot(c anyvec.Creator, in, out int, src *rand.Rand) *anynet.FC {
	f := anynet.NewFCZero(c, in, out)
	lim := math.Sqrt(6 / float64(in+out))
	w := make([]float64, in*out)
	for i := range w {
		w[i] = (2*src.Float64() - 1) * lim
	}
	f.Weights.Vector.SetData(c.MakeNumericList(w))
	return f
}

// Dims returns the number of inputs and outputs of the network.
func (N *Network) Dims() (int, int) {
	return N.in, N.out
}

// Parameters returns the trainable variables of all the layers.
func (N *Network) Parameters() []*anydiff.Var {
	return N.Layers.Parameters()
}

// SetTraining enables or disables all the dropout layers.
func (N *Network) SetTraining(on bool) {
	for _, l := range N.Layers {
		if d, ok := l.(*anynet.Dropout); ok {
			d.Enabled = on
		}
	}
}

// Training returns true if any dropout layer is enabled.
func (N *Network) Training() bool {
	for _, l := range N.Layers {
		if d, ok := l.(*anynet.Dropout); ok && d.Enabled {
			return true
		}
	}
	return false
}

// Finalized returns true if the network has no batch normalization layers left,
// so each prediction depends only on its own input.
func (N *Network) Finalized() bool {
	for _, l := range N.Layers {
		if _, ok := l.(*anyconv.BatchNorm); ok {
			return false
		}
	}
	return true
}

// toVec puts the rows of X, one after the other, in a vector.
func toVec(X mat.Matrix) anyvec.Vector {
	r, c := X.Dims()
	d := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d = append(d, X.At(i, j))
		}
	}
	cr := creator()
	return cr.MakeVectorData(cr.MakeNumericList(d))
}

func toDense(v anyvec.Vector, r, c int) *mat.Dense {
	return mat.NewDense(r, c, v.Creator().Float64Slice(v.Data()))
}

// Predict returns the output of the network for each row of X, with dropout disabled.
// Before Finalize, the batch normalization layers use the statistics of X itself.
// X must have at least one row, and as many columns as the network has inputs.
func (N *Network) Predict(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	if r == 0 || c != N.in {
		panic(ErrShape)
	}
	if N.Training() {
		N.SetTraining(false)
		defer N.SetTraining(true)
	}
	out := N.Layers.Apply(anydiff.NewConst(toVec(X)), r).Output()
	return toDense(out, r, N.out)
}

// Loss returns the mean squared error of the predictions for X, with respect to Y.
func (N *Network) Loss(X, Y mat.Matrix) float64 {
	return MSE(N.Predict(X), Y)
}

// MSE returns the mean squared error between pred and target, averaged over all the elements.
// The MSE of two empty matrices is 0.
func MSE(pred, target mat.Matrix) float64 {
	r, c := pred.Dims()
	tr, tc := target.Dims()
	if r != tr || c != tc {
		panic(ErrShape)
	}
	if r == 0 || c == 0 {
		return 0
	}
	cost := anynet.MSE{}.Cost(anydiff.NewConst(toVec(target)), anydiff.NewConst(toVec(pred)), r)
	out := cost.Output()
	return out.Creator().Float64(anyvec.Sum(out)) / float64(r)
}

// Finalize disables the dropout and replaces each batch normalization layer by the fixed
// affine transformation given by the statistics of its inputs over all the rows of X,
// which should be the training inputs. After Finalize, the network is only meant for
// predictions.
func (N *Network) Finalize(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c != N.in {
		return Error{fmt.Sprintf("Can't finalize on a %dx%d matrix", r, c), []string{"Finalize"}, true}
	}
	N.SetTraining(false)
	samples := sampleList(X, nil, N.out)
	pt := &anyconv.PostTrainer{
		Samples:   samples,
		Fetcher:   &anyff.Trainer{},
		BatchSize: finalizeBatch,
		Net:       N.Layers,
	}
	if err := pt.Run(); err != nil {
		return Error{err.Error(), []string{"Finalize"}, true}
	}
	return nil
}

const finalizeBatch = 512

//JSON

type networkJSON struct {
	In     int    `json:"in"`
	Out    int    `json:"out"`
	Layers []byte `json:"layers"` //as serialized by anynet
}

func (N *Network) MarshalJSON() ([]byte, error) {
	d, err := N.Layers.Serialize()
	if err != nil {
		return nil, Error{"Can't serialize layers: " + err.Error(), []string{"MarshalJSON"}, true}
	}
	return json.Marshal(networkJSON{In: N.in, Out: N.out, Layers: d})
}

// UnmarshalJSON rebuilds the network, and checks that the layers fit each other
// and the declared inputs and outputs. The dropout is left disabled.
func (N *Network) UnmarshalJSON(b []byte) error {
	var j networkJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	layers, err := anynet.DeserializeNet(j.Layers)
	if err != nil {
		return Error{"Can't deserialize layers: " + err.Error(), []string{"UnmarshalJSON"}, true}
	}
	in, out, err := checkChain(layers)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	if in != j.In || out != j.Out {
		return Error{fmt.Sprintf("Layers go from %d to %d units, the network declares %d to %d", in, out, j.In, j.Out), []string{"UnmarshalJSON"}, true}
	}
	N.Layers, N.in, N.out = layers, in, out
	N.SetTraining(false)
	return nil
}

func vecLen(v *anydiff.Var) int {
	if v == nil || v.Vector == nil {
		return -1
	}
	return v.Vector.Len()
}

// checkChain verifies that the layers start with a fully connected one, and that each
// layer takes as many units as the previous one gives. It returns the number of inputs
// of the first layer and of outputs of the last one.
func checkChain(layers anynet.Net) (in, out int, err error) {
	if len(layers) == 0 {
		return 0, 0, Error{"Network without layers", []string{"checkChain"}, true}
	}
	if _, ok := layers[0].(*anynet.FC); !ok {
		return 0, 0, Error{fmt.Sprintf("First layer is a %T, not a fully connected one", layers[0]), []string{"checkChain"}, true}
	}
	var width int
	for i, l := range layers {
		switch L := l.(type) {
		case *anynet.FC:
			if L.InCount <= 0 || L.OutCount <= 0 || vecLen(L.Weights) != L.InCount*L.OutCount || vecLen(L.Biases) != L.OutCount {
				return 0, 0, Error{fmt.Sprintf("Ill-formed fully connected layer %d", i), []string{"checkChain"}, true}
			}
			if i == 0 {
				in = L.InCount
			} else if L.InCount != width {
				return 0, 0, Error{fmt.Sprintf("Layer %d takes %d units, the previous one gives %d", i, L.InCount, width), []string{"checkChain"}, true}
			}
			width = L.OutCount
		case *anyconv.BatchNorm:
			if L.InputCount != width || vecLen(L.Scalers) != width || vecLen(L.Biases) != width {
				return 0, 0, Error{fmt.Sprintf("Batch normalization layer %d doesn't have %d units", i, width), []string{"checkChain"}, true}
			}
		case *anynet.Affine:
			if vecLen(L.Scalers) != width || vecLen(L.Biases) != width {
				return 0, 0, Error{fmt.Sprintf("Affine layer %d doesn't have %d units", i, width), []string{"checkChain"}, true}
			}
		case *anynet.Dropout:
			if L.KeepProb <= 0 || L.KeepProb > 1 {
				return 0, 0, Error{fmt.Sprintf("Dropout layer %d keeps a fraction %g of the units", i, L.KeepProb), []string{"checkChain"}, true}
			}
		case anynet.Activation:
		default:
			return 0, 0, Error{fmt.Sprintf("Unsupported layer %d of type %T", i, l), []string{"checkChain"}, true}
		}
	}
	return in, width, nil
}

//Errors

// errDecorate is a helper function that asserts that the error
// is an Error and decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// Error is the error type for the nn package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return "pdbrecon/nn: " + err.message }

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
	ErrShape   = PanicMsg("pdbrecon/nn: Dimension mismatch")
	ErrDropout = PanicMsg("pdbrecon/nn: Dropout probability must be in [0,1)")
)
