/*
 * train.go, part of pdbrecon.
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
	"log"
	"math/rand"

	"github.com/rmera/pdbrecon/nn"
	v3 "github.com/rmera/pdbrecon/v3"
	"gonum.org/v1/gonum/mat"
)

// EpochLoss contains the losses at the end of one epoch.
// ValLoss is 0 if no validation set was used.
type EpochLoss struct {
	Epoch   int
	Loss    float64 //mean over the mini-batches, with dropout and batch statistics active.
	ValLoss float64
}

// Report summarizes a training run.
type Report struct {
	TestMSE float64
	Train   []int //indexes of the samples used for training (including validation)
	Test    []int
	NVal    int
	History []EpochLoss
}

// gather returns a new Dense with the rows of A given in idx, in that order.
func gather(A mat.Matrix, idx []int) *mat.Dense {
	_, c := A.Dims()
	ret := mat.NewDense(len(idx), c, nil)
	for k, i := range idx {
		for j := 0; j < c; j++ {
			ret.Set(k, j, A.At(i, j))
		}
	}
	return ret
}

// Train fits a Model that maps each vector of input to the corresponding vector of target.
// The samples are split in training and testing sets, a MinMaxScaler is fitted on the
// training inputs only, and a network is trained on the scaled training inputs with mini-batch
// Adam. The last part of the training set, as given by O.ValidationFraction, is only used to
// monitor the training. Once trained, the batch normalization layers of the network are replaced
// by fixed ones, so each prediction only depends on its own input.
// The mean squared error on the testing set is returned in the Report.
// If O is nil, DefaultOptions is used.
func Train(input, target *v3.Matrix, O *Options) (*Model, *Report, error) {
	if O == nil {
		O = DefaultOptions()
	}
	n := input.NVecs()
	if n != target.NVecs() {
		return nil, nil, Error{fmt.Sprintf("%d input vectors but %d target vectors", n, target.NVecs()), "", []string{"Train"}, true}
	}
	if n < 2 {
		return nil, nil, Error{fmt.Sprintf("At least 2 samples needed for training, got %d", n), "", []string{"Train"}, true}
	}
	rep := new(Report)
	rep.Train, rep.Test = TrainTestSplit(n, O.TestFraction(), O.SplitSeed())
	scaler := NewMinMaxScaler()
	xtrain, err := scaler.FitTransform(gather(input, rep.Train))
	if err != nil {
		return nil, nil, errDecorate(err, "Train")
	}
	ytrain := gather(target, rep.Train)
	//As in Keras, the validation samples are taken from the end of the training set, before shuffling.
	ntrain := len(rep.Train)
	rep.NVal = ntrain - int(float64(ntrain)*(1-O.ValidationFraction()))
	nfit := ntrain - rep.NVal
	if nfit == 0 {
		//Too few samples to spare any.
		rep.NVal, nfit = 0, ntrain
	}
	var xval, yval *mat.Dense
	if rep.NVal > 0 {
		xval = mat.DenseCopyOf(xtrain.Slice(nfit, ntrain, 0, 3))
		yval = mat.DenseCopyOf(ytrain.Slice(nfit, ntrain, 0, 3))
	}
	wsrc := rand.New(rand.NewSource(O.WeightSeed()))
	net := nn.NewNetwork(3, O.Hidden(), 3, O.Dropout(), wsrc)
	xfit := xtrain.Slice(0, nfit, 0, 3)
	epochs := O.Epochs()
	fo := nn.FitOptions{
		LearningRate: O.LearningRate(),
		Epochs:       epochs,
		BatchSize:    O.BatchSize(),
		Shuffle:      rand.New(rand.NewSource(O.ShuffleSeed())),
		EpochEnd: func(ep int, loss float64) {
			el := EpochLoss{Epoch: ep, Loss: loss}
			if rep.NVal > 0 {
				el.ValLoss = net.Loss(xval, yval)
			}
			rep.History = append(rep.History, el)
			if O.Verbose() {
				log.Printf("Epoch %d/%d loss: %.5f val_loss: %.5f", ep, epochs, el.Loss, el.ValLoss)
			}
		},
	}
	if err = net.Fit(xfit, ytrain.Slice(0, nfit, 0, 3), fo); err != nil {
		return nil, nil, Error{err.Error(), "", []string{"Train"}, true}
	}
	//The batch normalization is fixed with the statistics of the samples used for fitting.
	if err = net.Finalize(xfit); err != nil {
		return nil, nil, Error{err.Error(), "", []string{"Train"}, true}
	}
	M := &Model{scaler: scaler, net: net}
	if len(rep.Test) > 0 {
		xtest, err := scaler.Transform(gather(input, rep.Test))
		if err != nil {
			return nil, nil, errDecorate(err, "Train")
		}
		rep.TestMSE = nn.MSE(net.Predict(xtest), gather(target, rep.Test))
	}
	return M, rep, nil
}
