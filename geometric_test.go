package recon

import (
	"math"
	"testing"

	v3 "github.com/rmera/pdbrecon/v3"
	"gonum.org/v1/gonum/mat"
)

func TestRMSD(Te *testing.T) {
	a, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0})
	b, _ := v3.NewMatrix([]float64{0, 0, 1, 1, 0, 1})
	r, err := RMSD(a, b)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(r-1) > 1e-12 {
		Te.Errorf("expected RMSD 1, got %g", r)
	}
	if _, err = RMSD(a, v3.Zeros(3)); err == nil {
		Te.Error("sets of different lengths should give an error")
	}
	if r, err = RMSD(v3.Zeros(0), v3.Zeros(0)); err != nil || r != 0 {
		Te.Errorf("empty sets should have RMSD 0, got %g %v", r, err)
	}
}

func TestSuper(Te *testing.T) {
	c, err := PDBRead("test/helix.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	//rotate 40 degrees around z and translate.
	t := 40 * math.Pi / 180
	rot := mat.NewDense(3, 3, []float64{
		math.Cos(t), math.Sin(t), 0,
		-math.Sin(t), math.Cos(t), 0,
		0, 0, 1,
	})
	moved := v3.Zeros(c.NVecs())
	moved.Dense.Mul(c.Dense, rot)
	for i := 0; i < moved.NVecs(); i++ {
		moved.Set(i, 0, moved.At(i, 0)+5)
		moved.Set(i, 2, moved.At(i, 2)-3)
	}
	if r, _ := RMSD(moved, c); r < 1 {
		Te.Fatalf("the moved helix is too close to the original: %g", r)
	}
	r, dev, err := SuperRMSD(moved, c)
	if err != nil {
		Te.Fatal(err)
	}
	if r > 1e-6 {
		Te.Errorf("RMSD after superposition should be 0, got %g", r)
	}
	if len(dev) != c.NVecs() {
		Te.Errorf("expected %d deviations, got %d", c.NVecs(), len(dev))
	}
	//A mirror image can't be superimposed.
	mirror := FlipView(c)
	if r, _, _ = SuperRMSD(mirror, c); r < 1e-3 {
		Te.Errorf("a reflection was used to superimpose a mirror image, RMSD %g", r)
	}
	if s, err := Super(v3.Zeros(0), v3.Zeros(0)); err != nil || !s.Empty() {
		Te.Errorf("superimposing empty sets should give an empty set: %v %v", s, err)
	}
}

func TestCentroid(Te *testing.T) {
	c, _ := PDBRead("test/diagonal.pdb")
	ex, _ := v3.NewMatrix([]float64{1.5, 1.5, 1.5})
	if ct := Centroid(c); !ct.Equal(ex, 1e-12) {
		Te.Errorf("wrong centroid %v", ct)
	}
}

//Superimposing a set onto itself, or onto a translated copy, has to give back the
//template, for both a collinear and a 3D set.
func TestSuperIdentity(Te *testing.T) {
	for _, name := range []string{"test/diagonal.pdb", "test/helix.pdb"} {
		c, err := PDBRead(name)
		if err != nil {
			Te.Fatal(err)
		}
		moved := v3.Clone(c)
		for i := 0; i < moved.NVecs(); i++ {
			moved.Set(i, 1, moved.At(i, 1)+2.5)
		}
		for _, test := range []*v3.Matrix{c, moved} {
			s, err := Super(test, c)
			if err != nil {
				Te.Fatalf("%s: %v", name, err)
			}
			if !s.Equal(c, 1e-9) {
				Te.Errorf("%s: the superimposed set differs from the template", name)
			}
			if r, _, err := SuperRMSD(test, c); err != nil || r > 1e-9 {
				Te.Errorf("%s: RMSD %g after superposition, %v", name, r, err)
			}
		}
		//Super must leave its arguments untouched.
		if math.Abs(moved.At(0, 1)-c.At(0, 1)-2.5) > 1e-12 {
			Te.Errorf("%s: Super modified the test set", name)
		}
	}
}
