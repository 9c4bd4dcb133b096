package imaging

import (
	"errors"
	"math"
	"testing"
)

func TestConvolveIdentityKernel(t *testing.T) {
	src := makeBuffer(t, 3, 2,
		[3]byte{1, 2, 3}, [3]byte{4, 5, 6}, [3]byte{7, 8, 9},
		[3]byte{10, 11, 12}, [3]byte{13, 14, 15}, [3]byte{250, 251, 252},
	)
	k, err := NewKernel([][]float64{{1}})
	if err != nil {
		t.Fatalf("1x1 kernel rejected: %v", err)
	}
	out, err := Convolve(src, k)
	if err != nil {
		t.Fatalf("convolve failed: %v", err)
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("identity kernel changed sample %d: %d -> %d", i, src.Pix[i], out.Pix[i])
		}
	}
}

func TestEvenKernelRejected(t *testing.T) {
	if _, err := NewKernel([][]float64{{1, 2}, {3, 4}}); !errors.Is(err, ErrEvenKernel) {
		t.Fatalf("got %v, want ErrEvenKernel", err)
	}
	if _, err := NewKernel([][]float64{{1}, {2}}); !errors.Is(err, ErrEvenKernel) {
		t.Fatalf("got %v, want ErrEvenKernel", err)
	}
	src := makeSolidBuffer(2, 2, 10, 10, 10)
	if _, err := Convolve(src, Kernel{Weights: [][]float64{{1, 1}, {1, 1}}}); !errors.Is(err, ErrEvenKernel) {
		t.Fatalf("got %v, want ErrEvenKernel", err)
	}
}

func TestConvolveClampToEdge(t *testing.T) {
	// 3x1 row; a kernel that reads only the left neighbor. The leftmost
	// pixel's out-of-bounds neighbor clamps to itself.
	src := makeBuffer(t, 3, 1, [3]byte{10, 10, 10}, [3]byte{100, 100, 100}, [3]byte{200, 200, 200})
	k, err := NewKernel([][]float64{{1, 0, 0}})
	if err != nil {
		t.Fatalf("kernel rejected: %v", err)
	}
	out, err := Convolve(src, k)
	if err != nil {
		t.Fatalf("convolve failed: %v", err)
	}
	want := []byte{10, 10, 100}
	for x := 0; x < 3; x++ {
		if out.Pix[x*3] != want[x] {
			t.Fatalf("x=%d: got %d want %d", x, out.Pix[x*3], want[x])
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.3, 0.8, 1.0, 2.5, 4.0, 10.0} {
		k := GaussianKernel(sigma)
		if len(k.Weights)%2 == 0 || len(k.Weights[0])%2 == 0 {
			t.Fatalf("sigma %g: even kernel %dx%d", sigma, len(k.Weights), len(k.Weights[0]))
		}
		sum := 0.0
		for _, row := range k.Weights {
			for _, w := range row {
				sum += w
			}
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("sigma %g: weights sum to %g", sigma, sum)
		}
	}
}

func TestGaussianKernelSizeBounds(t *testing.T) {
	if size := len(GaussianKernel(0.3).Weights); size != 3 {
		t.Fatalf("small sigma: got size %d want 3", size)
	}
	if size := len(GaussianKernel(10).Weights); size != 31 {
		t.Fatalf("large sigma: got size %d want 31", size)
	}
	// sigma 1.0 -> ceil(6) = 6 -> bumped to 7
	if size := len(GaussianKernel(1.0).Weights); size != 7 {
		t.Fatalf("sigma 1: got size %d want 7", size)
	}
}

func TestParseKernel(t *testing.T) {
	k, err := ParseKernel("0 -1 0\n-1, 5, -1\n0 -1 0")
	if err != nil {
		t.Fatalf("valid kernel rejected: %v", err)
	}
	if len(k.Weights) != 3 || k.Weights[1][1] != 5 {
		t.Fatalf("unexpected kernel: %v", k.Weights)
	}

	if _, err := ParseKernel("1 2\n3 4"); !errors.Is(err, ErrEvenKernel) {
		t.Fatalf("even kernel: got %v, want ErrEvenKernel", err)
	}
	if _, err := ParseKernel("1 2 3\n4 5"); !errors.Is(err, ErrKernelShape) {
		t.Fatalf("ragged kernel: got %v, want ErrKernelShape", err)
	}
	if _, err := ParseKernel("1 x 3"); !errors.Is(err, ErrKernelParse) {
		t.Fatalf("bad cell: got %v, want ErrKernelParse", err)
	}
	if _, err := ParseKernel("   \n \n"); !errors.Is(err, ErrKernelShape) {
		t.Fatalf("empty kernel: got %v, want ErrKernelShape", err)
	}
}
