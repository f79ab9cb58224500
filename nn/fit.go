/*
 * fit.go, part of pdbrecon.
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
	"fmt"
	"math/rand"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyff"
	"github.com/unixpickle/anynet/anysgd"
	"gonum.org/v1/gonum/mat"
)

// Adam parameters other than the learning rate.
const (
	Beta1   = 0.9
	Beta2   = 0.999
	Epsilon = 1e-7
)

// FitOptions controls a call to Fit.
type FitOptions struct {
	LearningRate float64
	Epochs       int
	BatchSize    int
	Shuffle      *rand.Rand                    //source for the order of the samples in each epoch
	EpochEnd     func(epoch int, loss float64) //called after each epoch with its mean training loss, if not nil
}

// sampleList returns one sample per row of X. If Y is nil, the outputs are zero
// vectors of size out.
func sampleList(X, Y mat.Matrix, out int) anyff.SliceSampleList {
	r, _ := X.Dims()
	c := creator()
	ret := make(anyff.SliceSampleList, r)
	for i := range ret {
		s := &anyff.Sample{Input: c.MakeVectorData(c.MakeNumericList(mat.Row(nil, i, X)))}
		if Y != nil {
			s.Output = c.MakeVectorData(c.MakeNumericList(mat.Row(nil, i, Y)))
		} else {
			s.Output = c.MakeVector(out)
		}
		ret[i] = s
	}
	return ret
}

// shuffled is a list of samples that only changes its order in PostShuffle,
// with its own random source. The swaps anysgd.Shuffle requests
// from the global source are ignored.
type shuffled struct {
	anyff.SliceSampleList
	src *rand.Rand
}

func (s *shuffled) Swap(i, j int) {}

func (s *shuffled) PostShuffle() {
	l := s.SliceSampleList
	s.src.Shuffle(len(l), func(i, j int) { l[i], l[j] = l[j], l[i] })
}

// lossTracker accumulates the training loss of each epoch, and stops the
// optimization after a given number of samples.
type lossTracker struct {
	*anyff.Trainer
	perEpoch int
	total    int
	seen     int
	epoch    int
	sum      float64
	end      func(int, float64)
	done     chan struct{}
}

func (t *lossTracker) Gradient(b anysgd.Batch) anydiff.Grad {
	g := t.Trainer.Gradient(b)
	num := b.(*anyff.Batch).Num
	//LastCost is the mean over the batch.
	t.sum += creator().Float64(t.LastCost) * float64(num)
	t.seen += num
	if t.seen >= t.total {
		close(t.done)
	}
	return g
}

// endEpoch is called once the update for the last batch of an epoch is done.
func (t *lossTracker) endEpoch() {
	t.epoch++
	loss := t.sum / float64(t.perEpoch)
	t.sum = 0
	if t.end != nil {
		t.end(t.epoch, loss)
	}
}

// Fit trains N to map the rows of X to the rows of Y, minimizing the mean squared
// error with mini-batch Adam. Each epoch goes once over all the samples, in an
// order taken from O.Shuffle, in batches of O.BatchSize (the last one may be smaller).
// The dropout masks are drawn from the global math/rand source.
func (N *Network) Fit(X, Y mat.Matrix, O FitOptions) error {
	r, c := X.Dims()
	yr, yc := Y.Dims()
	if r == 0 || r != yr || c != N.in || yc != N.out {
		return Error{fmt.Sprintf("Can't fit %dx%d inputs to %dx%d outputs", r, c, yr, yc), []string{"Fit"}, true}
	}
	if O.Epochs <= 0 {
		return nil
	}
	if O.BatchSize <= 0 || O.LearningRate <= 0 || O.Shuffle == nil {
		return Error{fmt.Sprintf("Invalid batch size %d, learning rate %g or missing random source", O.BatchSize, O.LearningRate), []string{"Fit"}, true}
	}
	N.SetTraining(true)
	trainer := &anyff.Trainer{
		Net:     N.Layers,
		Cost:    anynet.MSE{},
		Params:  N.Parameters(),
		Average: true,
	}
	tr := &lossTracker{
		Trainer:  trainer,
		perEpoch: r,
		total:    r * O.Epochs,
		end:      O.EpochEnd,
		done:     make(chan struct{}),
	}
	sgd := &anysgd.SGD{
		Fetcher:    trainer,
		Gradienter: tr,
		Transformer: &anysgd.Adam{
			DecayRate1: Beta1,
			DecayRate2: Beta2,
			Damping:    Epsilon,
		},
		//The list gets its own source, as anysgd may still be shuffling it
		//when Run returns.
		Samples:   &shuffled{SliceSampleList: sampleList(X, Y, N.out), src: rand.New(rand.NewSource(O.Shuffle.Int63()))},
		Rater:     anysgd.ConstRater(O.LearningRate),
		BatchSize: O.BatchSize,
		//Batches never span two epochs, so the boundaries are where a whole
		//number of epochs has been processed.
		StatusFunc: func(anysgd.Batch) {
			if tr.seen > 0 && tr.seen%r == 0 {
				tr.endEpoch()
			}
		},
	}
	if err := sgd.Run(tr.done); err != nil {
		return Error{err.Error(), []string{"Fit"}, true}
	}
	tr.endEpoch()
	return nil
}
