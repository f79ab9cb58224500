package nn

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyconv"
	"gonum.org/v1/gonum/mat"
)

func randDense(r, c int, src *rand.Rand) *mat.Dense {
	d := make([]float64, r*c)
	for i := range d {
		d[i] = src.NormFloat64()
	}
	return mat.NewDense(r, c, d)
}

// linearData gives y = 2x+1 for random x.
func linearData(n int, src *rand.Rand) (*mat.Dense, *mat.Dense) {
	x := randDense(n, 3, src)
	y := mat.NewDense(n, 3, nil)
	y.Apply(func(i, j int, v float64) float64 { return 2*v + 1 }, x)
	return x, y
}

func TestMSE(Te *testing.T) {
	p := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	t := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 0})
	if loss := MSE(p, t); math.Abs(loss-6) > 1e-12 {
		Te.Errorf("expected a loss of 6, got %f", loss)
	}
	defer func() {
		if r := recover(); r != ErrShape {
			Te.Errorf("expected a shape panic, got %v", r)
		}
	}()
	MSE(p, mat.NewDense(3, 2, nil))
}

func TestNewNetwork(Te *testing.T) {
	N := NewNetwork(3, []int{8, 6}, 3, 0.3, rand.New(rand.NewSource(1)))
	if in, out := N.Dims(); in != 3 || out != 3 {
		Te.Errorf("wrong dimensions %d %d", in, out)
	}
	//dense, relu, batchnorm and dropout per hidden block, plus the output layer.
	if len(N.Layers) != 9 {
		Te.Fatalf("expected 9 layers, got %d", len(N.Layers))
	}
	if len(N.Parameters()) != 10 {
		Te.Errorf("expected 10 parameter vectors, got %d", len(N.Parameters()))
	}
	if !N.Training() || N.Finalized() {
		Te.Error("a new network should be in training mode, with batch normalization")
	}
	if d := N.Layers[3].(*anynet.Dropout); math.Abs(d.KeepProb-0.7) > 1e-12 {
		Te.Errorf("dropout of 0.3 should keep 0.7 of the units, keeps %g", d.KeepProb)
	}
	fc := N.Layers[0].(*anynet.FC)
	w := fc.Weights.Vector.Creator().Float64Slice(fc.Weights.Vector.Data())
	lim := math.Sqrt(6.0 / 11)
	for _, v := range w {
		if math.Abs(v) > lim {
			Te.Fatalf("weight %g outside the Glorot limit %g", v, lim)
		}
	}
	fc2 := NewNetwork(3, []int{8, 6}, 3, 0.3, rand.New(rand.NewSource(1))).Layers[0].(*anynet.FC)
	w2 := fc2.Weights.Vector.Creator().Float64Slice(fc2.Weights.Vector.Data())
	for i := range w {
		if w[i] != w2[i] {
			Te.Fatal("the same seed should give the same weights")
		}
	}
	defer func() {
		if r := recover(); r != ErrDropout {
			Te.Errorf("expected a dropout panic, got %v", r)
		}
	}()
	NewNetwork(3, []int{4}, 3, 1, rand.New(rand.NewSource(1)))
}

func TestFitLinear(Te *testing.T) {
	src := rand.New(rand.NewSource(8))
	x, y := linearData(64, src)
	fit := func() (*Network, []float64) {
		N := NewNetwork(3, nil, 3, 0, rand.New(rand.NewSource(2)))
		var losses []float64
		O := FitOptions{
			LearningRate: 0.01,
			Epochs:       400,
			BatchSize:    16,
			Shuffle:      rand.New(rand.NewSource(3)),
			EpochEnd: func(ep int, loss float64) {
				if ep != len(losses)+1 {
					Te.Fatalf("epoch %d reported after %d epochs", ep, len(losses))
				}
				losses = append(losses, loss)
			},
		}
		if err := N.Fit(x, y, O); err != nil {
			Te.Fatal(err)
		}
		return N, losses
	}
	N, losses := fit()
	if len(losses) != 400 {
		Te.Fatalf("expected 400 epochs, got %d", len(losses))
	}
	if losses[len(losses)-1] >= losses[0] {
		Te.Errorf("the loss didn't go down: %g -> %g", losses[0], losses[len(losses)-1])
	}
	if l := N.Loss(x, y); l > 1e-2 {
		Te.Errorf("Adam failed to fit a linear map, final loss %g", l)
	}
	//Without dropout, the seeds fix the whole training.
	N2, _ := fit()
	if !mat.EqualApprox(N.Predict(x), N2.Predict(x), 1e-12) {
		Te.Error("two trainings with the same seeds gave different networks")
	}
	if err := N.Fit(x, mat.NewDense(64, 2, nil), FitOptions{LearningRate: 0.01, Epochs: 1, BatchSize: 8, Shuffle: src}); err == nil {
		Te.Error("outputs of the wrong width should give an error")
	}
	if err := N.Fit(x, y, FitOptions{Epochs: 1}); err == nil {
		Te.Error("a zero batch size should give an error")
	}
}

func TestPredictMode(Te *testing.T) {
	src := rand.New(rand.NewSource(9))
	N := NewNetwork(3, []int{16}, 3, 0.5, src)
	x := randDense(20, 3, src)
	p1 := N.Predict(x)
	p2 := N.Predict(x)
	if !mat.Equal(p1, p2) {
		Te.Error("predictions should not use dropout")
	}
	if !N.Training() {
		Te.Error("Predict should leave the dropout as it was")
	}
}

func TestFinalize(Te *testing.T) {
	src := rand.New(rand.NewSource(10))
	N := NewNetwork(3, []int{8, 4}, 3, 0.2, src)
	x, y := linearData(50, src)
	if err := N.Fit(x, y, FitOptions{LearningRate: 0.01, Epochs: 5, BatchSize: 10, Shuffle: src}); err != nil {
		Te.Fatal(err)
	}
	batch := N.Predict(x)
	one := N.Predict(x.Slice(0, 1, 0, 3))
	if mat.EqualApprox(one, batch.Slice(0, 1, 0, 3), 1e-6) {
		Te.Error("before Finalize, a prediction should depend on the rest of the batch")
	}
	if err := N.Finalize(x); err != nil {
		Te.Fatal(err)
	}
	if !N.Finalized() || N.Training() {
		Te.Fatal("Finalize should remove the batch normalization and the dropout")
	}
	for _, l := range N.Layers {
		if _, ok := l.(*anyconv.BatchNorm); ok {
			Te.Fatal("a batch normalization layer was left")
		}
	}
	//The fixed layers use the statistics of x, so the predictions for x don't change.
	if after := N.Predict(x); !mat.EqualApprox(after, batch, 1e-9) {
		Te.Error("predictions for the finalization inputs changed")
	}
	one = N.Predict(x.Slice(3, 4, 0, 3))
	if !mat.EqualApprox(one, batch.Slice(3, 4, 0, 3), 1e-9) {
		Te.Error("after Finalize, a prediction should only depend on its input")
	}
	if err := N.Finalize(mat.NewDense(2, 2, nil)); err == nil {
		Te.Error("finalizing on inputs of the wrong width should fail")
	}
}

func TestNetworkJSON(Te *testing.T) {
	src := rand.New(rand.NewSource(11))
	N := NewNetwork(3, []int{8, 6}, 3, 0.3, src)
	x := randDense(10, 3, src)
	if err := N.Finalize(x); err != nil {
		Te.Fatal(err)
	}
	j, err := json.Marshal(N)
	if err != nil {
		Te.Fatal(err)
	}
	N2 := new(Network)
	if err = json.Unmarshal(j, N2); err != nil {
		Te.Fatal(err)
	}
	if in, out := N2.Dims(); in != 3 || out != 3 || len(N2.Layers) != len(N.Layers) {
		Te.Fatalf("network changed shape: %d->%d, %d layers", in, out, len(N2.Layers))
	}
	if N2.Training() {
		Te.Error("a decoded network should not be in training mode")
	}
	if !mat.EqualApprox(N.Predict(x), N2.Predict(x), 1e-12) {
		Te.Error("predictions differ after a JSON round trip")
	}
}

// tampered encodes the given layers with the declared dimensions.
func tampered(Te *testing.T, in, out int, layers anynet.Net) []byte {
	d, err := layers.Serialize()
	if err != nil {
		Te.Fatal(err)
	}
	j, err := json.Marshal(networkJSON{In: in, Out: out, Layers: d})
	if err != nil {
		Te.Fatal(err)
	}
	return j
}

func TestNetworkJSONChain(Te *testing.T) {
	c := creator()
	good := anynet.Net{anynet.NewFCZero(c, 3, 4), anynet.ReLU, anyconv.NewBatchNorm(c, 4), anynet.NewFCZero(c, 4, 3)}
	if err := json.Unmarshal(tampered(Te, 3, 3, good), new(Network)); err != nil {
		Te.Fatalf("a consistent chain should decode: %v", err)
	}
	for _, s := range []struct {
		name    string
		in, out int
		layers  anynet.Net
	}{
		{"gap between dense layers", 3, 3, anynet.Net{anynet.NewFCZero(c, 3, 4), anynet.NewFCZero(c, 5, 3)}},
		{"declared inputs", 2, 3, good},
		{"declared outputs", 3, 4, good},
		{"activation first", 3, 3, anynet.Net{anynet.ReLU, anynet.NewFCZero(c, 3, 3)}},
		{"batch normalization width", 3, 3, anynet.Net{anynet.NewFCZero(c, 3, 4), anyconv.NewBatchNorm(c, 5), anynet.NewFCZero(c, 4, 3)}},
		{"affine width", 3, 3, anynet.Net{anynet.NewFCZero(c, 3, 4), anynet.NewAffine(c, 1, 0), anynet.NewFCZero(c, 4, 3)}},
		{"dropout keeping nothing", 3, 3, anynet.Net{anynet.NewFCZero(c, 3, 3), &anynet.Dropout{KeepProb: 0}}},
		{"no layers", 3, 3, anynet.Net{}},
	} {
		if err := json.Unmarshal(tampered(Te, s.in, s.out, s.layers), new(Network)); err == nil {
			Te.Errorf("%s: a broken chain was accepted", s.name)
		}
	}
	if err := json.Unmarshal([]byte(`{"in":3,"out":3,"layers":"bm90IGEgbmV0d29yaw=="}`), new(Network)); err == nil {
		Te.Error("garbage layers should give an error")
	}
}
