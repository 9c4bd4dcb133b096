package imaging

import (
	"errors"
	"testing"
)

// makeBuffer builds a buffer from RGB triples in row-major order.
func makeBuffer(t *testing.T, w, h int, triples ...[3]byte) Buffer {
	t.Helper()
	if len(triples) != w*h {
		t.Fatalf("fixture mismatch: %d triples for %dx%d", len(triples), w, h)
	}
	b := NewBuffer(w, h)
	for i, p := range triples {
		b.Pix[i*3+0] = p[0]
		b.Pix[i*3+1] = p[1]
		b.Pix[i*3+2] = p[2]
	}
	return b
}

func makeSolidBuffer(w, h int, r, g, bl byte) Buffer {
	b := NewBuffer(w, h)
	for i := 0; i < len(b.Pix); i += 3 {
		b.Pix[i+0] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
	}
	return b
}

func TestAddSubtractRoundTrip(t *testing.T) {
	src := makeBuffer(t, 2, 1, [3]byte{40, 120, 200}, [3]byte{55, 90, 215})
	added, err := Add(src, 30)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	back, err := Subtract(added, 30)
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	// all samples are within [30, 225], so the round trip is exact
	for i := range src.Pix {
		if back.Pix[i] != src.Pix[i] {
			t.Fatalf("sample %d: got %d want %d", i, back.Pix[i], src.Pix[i])
		}
	}
}

func TestAddClamps(t *testing.T) {
	src := makeBuffer(t, 1, 1, [3]byte{250, 5, 128})
	out, err := Add(src, 20)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if out.Pix[0] != 255 || out.Pix[1] != 25 || out.Pix[2] != 148 {
		t.Fatalf("unexpected output: %v", out.Pix)
	}
	out, err = Subtract(src, 20)
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	if out.Pix[0] != 230 || out.Pix[1] != 0 || out.Pix[2] != 108 {
		t.Fatalf("unexpected output: %v", out.Pix)
	}
}

func TestMultiplyTruncates(t *testing.T) {
	src := makeBuffer(t, 1, 1, [3]byte{10, 3, 200})
	out, err := Multiply(src, 1.55)
	if err != nil {
		t.Fatalf("multiply failed: %v", err)
	}
	// 15.5 -> 15, 4.65 -> 4, 310 -> clamp 255
	if out.Pix[0] != 15 || out.Pix[1] != 4 || out.Pix[2] != 255 {
		t.Fatalf("unexpected output: %v", out.Pix)
	}
}

func TestDivideTruncates(t *testing.T) {
	src := makeBuffer(t, 1, 1, [3]byte{10, 7, 255})
	out, err := Divide(src, 3)
	if err != nil {
		t.Fatalf("divide failed: %v", err)
	}
	if out.Pix[0] != 3 || out.Pix[1] != 2 || out.Pix[2] != 85 {
		t.Fatalf("unexpected output: %v", out.Pix)
	}
}

func TestDivideRejectsNearZero(t *testing.T) {
	src := makeSolidBuffer(2, 2, 100, 100, 100)
	for _, v := range []float64{0, 0.0005, -0.0009} {
		if _, err := Divide(src, v); !errors.Is(err, ErrDivisor) {
			t.Fatalf("divisor %g: got %v, want ErrDivisor", v, err)
		}
	}
	if _, err := Divide(src, -0.5); err != nil {
		t.Fatalf("divisor -0.5 should be accepted: %v", err)
	}
}

func TestGrayscaleAverageScenario(t *testing.T) {
	src := makeBuffer(t, 2, 2,
		[3]byte{255, 0, 0},
		[3]byte{0, 255, 0},
		[3]byte{0, 0, 255},
		[3]byte{255, 255, 255},
	)
	out, err := GrayscaleAverage(src)
	if err != nil {
		t.Fatalf("grayscale failed: %v", err)
	}
	want := []byte{85, 85, 85, 255}
	for p := 0; p < 4; p++ {
		for ch := 0; ch < 3; ch++ {
			if out.Pix[p*3+ch] != want[p] {
				t.Fatalf("pixel %d channel %d: got %d want %d", p, ch, out.Pix[p*3+ch], want[p])
			}
		}
	}
}

func TestGrayscaleIdempotent(t *testing.T) {
	src := makeBuffer(t, 2, 1, [3]byte{13, 200, 77}, [3]byte{255, 0, 9})
	for name, fn := range map[string]func(Buffer) (Buffer, error){
		"average":    GrayscaleAverage,
		"luminosity": GrayscaleLuminosity,
	} {
		once, err := fn(src)
		if err != nil {
			t.Fatalf("%s failed: %v", name, err)
		}
		twice, err := fn(once)
		if err != nil {
			t.Fatalf("%s second pass failed: %v", name, err)
		}
		for i := range once.Pix {
			if twice.Pix[i] != once.Pix[i] {
				t.Fatalf("%s not idempotent at sample %d: %d vs %d", name, i, twice.Pix[i], once.Pix[i])
			}
		}
	}
}

func TestGrayscaleLuminosityWeights(t *testing.T) {
	src := makeBuffer(t, 1, 1, [3]byte{100, 50, 200})
	out, err := GrayscaleLuminosity(src)
	if err != nil {
		t.Fatalf("luminosity failed: %v", err)
	}
	// round(0.299*100 + 0.587*50 + 0.114*200) = round(82.05) = 82
	if out.Pix[0] != 82 {
		t.Fatalf("got %d want 82", out.Pix[0])
	}
}

func TestPointOpsRejectBadBuffer(t *testing.T) {
	bad := Buffer{Width: 2, Height: 2, Pix: make([]byte, 5)}
	if _, err := Add(bad, 1); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("got %v, want ErrBufferSize", err)
	}
	if _, err := GrayscaleAverage(bad); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("got %v, want ErrBufferSize", err)
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	src := makeBuffer(t, 2, 1, [3]byte{10, 20, 30}, [3]byte{40, 50, 60})
	snapshot := append([]byte(nil), src.Pix...)
	if _, err := Add(src, 100); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := GrayscaleLuminosity(src); err != nil {
		t.Fatalf("luminosity failed: %v", err)
	}
	for i := range snapshot {
		if src.Pix[i] != snapshot[i] {
			t.Fatalf("input mutated at sample %d", i)
		}
	}
}
