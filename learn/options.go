/*
 * options.go, part of pdbrecon.
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

//Options contains the options for the Train function. The zero value is not
//useful, use DefaultOptions to obtain an Options.
type Options struct {
	testFrac    float64
	splitSeed   int64
	hidden      []int
	dropout     float64
	lr          float64
	epochs      int
	batch       int
	valFrac     float64
	weightSeed  int64 //initial weights and dropout masks
	shuffleSeed int64 //order of the mini-batches in each epoch
	verbose     bool
}

//DefaultOptions returns the options used to train the reconstruction models:
//an 80/20 train/test split with seed 42, 3 hidden blocks of 512, 512 and 256 units with
//a dropout of 0.3, a learning rate of 0.001, and 200 epochs with mini-batches of 32, holding
//out 10% of the training set for validation.
func DefaultOptions() *Options {
	r := new(Options)
	r.testFrac = 0.2
	r.splitSeed = 42
	r.hidden = []int{512, 512, 256}
	r.dropout = 0.3
	r.lr = 0.001
	r.epochs = 200
	r.batch = 32
	r.valFrac = 0.1
	r.weightSeed = 1
	r.shuffleSeed = 2
	return r
}

//Returns the fraction of the samples used for testing,
//and sets it to a new value, if given.
func (O *Options) TestFraction(f ...float64) float64 {
	if len(f) > 0 && f[0] > 0 && f[0] < 1 {
		O.testFrac = f[0]
	}
	return O.testFrac
}

//Returns the seed used for the train/test split,
//and sets it to a new value, if given.
func (O *Options) SplitSeed(s ...int64) int64 {
	if len(s) > 0 {
		O.splitSeed = s[0]
	}
	return O.splitSeed
}

//Returns the sizes of the hidden blocks of the network,
//and sets them to new values, if given. All sizes must be positive,
//otherwise the new values are ignored.
func (O *Options) Hidden(sizes ...int) []int {
	if len(sizes) > 0 {
		for _, v := range sizes {
			if v <= 0 {
				return O.hidden
			}
		}
		O.hidden = append([]int(nil), sizes...)
	}
	return O.hidden
}

//Returns the dropout probability,
//and sets it to a new value, if given.
func (O *Options) Dropout(p ...float64) float64 {
	if len(p) > 0 && p[0] >= 0 && p[0] < 1 {
		O.dropout = p[0]
	}
	return O.dropout
}

//Returns the learning rate for the Adam optimizer,
//and sets it to a new value, if given.
func (O *Options) LearningRate(lr ...float64) float64 {
	if len(lr) > 0 && lr[0] > 0 {
		O.lr = lr[0]
	}
	return O.lr
}

//Returns the number of epochs,
//and sets it to a new value, if given.
func (O *Options) Epochs(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.epochs = n[0]
	}
	return O.epochs
}

//Returns the mini-batch size,
//and sets it to a new value, if given.
func (O *Options) BatchSize(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.batch = n[0]
	}
	return O.batch
}

//Returns the fraction of the training set held out for validation,
//and sets it to a new value, if given. 0 means no validation.
func (O *Options) ValidationFraction(f ...float64) float64 {
	if len(f) > 0 && f[0] >= 0 && f[0] < 1 {
		O.valFrac = f[0]
	}
	return O.valFrac
}

//Returns the seed for the initial weights and the dropout masks,
//and sets it to a new value, if given.
func (O *Options) WeightSeed(s ...int64) int64 {
	if len(s) > 0 {
		O.weightSeed = s[0]
	}
	return O.weightSeed
}

//Returns the seed used to shuffle the training set in each epoch,
//and sets it to a new value, if given.
func (O *Options) ShuffleSeed(s ...int64) int64 {
	if len(s) > 0 {
		O.shuffleSeed = s[0]
	}
	return O.shuffleSeed
}

//Returns whether the training losses are printed after each epoch,
//and sets it to a new value, if given.
func (O *Options) Verbose(v ...bool) bool {
	if len(v) > 0 {
		O.verbose = v[0]
	}
	return O.verbose
}
