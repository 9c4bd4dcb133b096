package imaging

import (
	"errors"
	"testing"
)

func TestFlipReversesRows(t *testing.T) {
	src := makeBuffer(t, 1, 3,
		[3]byte{10, 10, 10},
		[3]byte{20, 20, 20},
		[3]byte{30, 30, 30},
	)
	out, err := Flip(src)
	if err != nil {
		t.Fatalf("flip failed: %v", err)
	}
	want := []byte{30, 20, 10}
	for y, w := range want {
		if r, _, _ := out.At(0, y); r != w {
			t.Fatalf("row %d: got %d, want %d", y, r, w)
		}
	}
}

func TestFlopReversesColumns(t *testing.T) {
	src := makeBuffer(t, 3, 1,
		[3]byte{10, 10, 10},
		[3]byte{20, 20, 20},
		[3]byte{30, 30, 30},
	)
	out, err := Flop(src)
	if err != nil {
		t.Fatalf("flop failed: %v", err)
	}
	want := []byte{30, 20, 10}
	for x, w := range want {
		if r, _, _ := out.At(x, 0); r != w {
			t.Fatalf("col %d: got %d, want %d", x, r, w)
		}
	}
}

func TestRotate90SwapsDimensions(t *testing.T) {
	src := makeBuffer(t, 2, 1,
		[3]byte{10, 10, 10},
		[3]byte{20, 20, 20},
	)
	out, err := Rotate(src, 90)
	if err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if out.Width != 1 || out.Height != 2 {
		t.Fatalf("got %dx%d, want 1x2", out.Width, out.Height)
	}
	// clockwise: leftmost column of the source becomes the top row
	if r, _, _ := out.At(0, 0); r != 10 {
		t.Fatalf("top pixel: got %d, want 10", r)
	}
	if r, _, _ := out.At(0, 1); r != 20 {
		t.Fatalf("bottom pixel: got %d, want 20", r)
	}
}

func TestRotateFullCircleIsIdentity(t *testing.T) {
	src := makeBuffer(t, 2, 2,
		[3]byte{1, 2, 3}, [3]byte{4, 5, 6},
		[3]byte{7, 8, 9}, [3]byte{10, 11, 12},
	)
	cur := src
	for i := 0; i < 4; i++ {
		next, err := Rotate(cur, 90)
		if err != nil {
			t.Fatalf("rotation %d failed: %v", i, err)
		}
		cur = next
	}
	for i := range src.Pix {
		if cur.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d changed after four rotations: got %d, want %d", i, cur.Pix[i], src.Pix[i])
		}
	}
}

func TestRotateRejectsOddAngle(t *testing.T) {
	src := makeSolidBuffer(2, 2, 1, 2, 3)
	if _, err := Rotate(src, 45); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("expected ErrBadArgument, got %v", err)
	}
}

func TestAutoOrientRotations(t *testing.T) {
	src := makeBuffer(t, 2, 1,
		[3]byte{10, 10, 10},
		[3]byte{20, 20, 20},
	)

	// orientation 6 is rotate 90 CW
	out, err := AutoOrient(src, 6)
	if err != nil {
		t.Fatalf("auto-orient failed: %v", err)
	}
	if out.Width != 1 || out.Height != 2 {
		t.Fatalf("orientation 6: got %dx%d, want 1x2", out.Width, out.Height)
	}

	// orientation 1 is the identity
	same, err := AutoOrient(src, 1)
	if err != nil {
		t.Fatalf("auto-orient failed: %v", err)
	}
	if same.Width != 2 || same.Height != 1 {
		t.Fatalf("orientation 1 changed dimensions")
	}
	for i := range src.Pix {
		if same.Pix[i] != src.Pix[i] {
			t.Fatalf("orientation 1 changed pixel %d", i)
		}
	}

	// orientation 3 is rotate 180
	flipped, err := AutoOrient(src, 3)
	if err != nil {
		t.Fatalf("auto-orient failed: %v", err)
	}
	if r, _, _ := flipped.At(0, 0); r != 20 {
		t.Fatalf("orientation 3: got %d, want 20", r)
	}
}
