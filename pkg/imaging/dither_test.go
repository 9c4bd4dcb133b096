package imaging

import (
	"errors"
	"testing"
)

func TestDitherGrayBilevel(t *testing.T) {
	// horizontal gradient
	src := NewBuffer(16, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			i := src.offset(x, y)
			v := byte(x * 16)
			src.Pix[i+0] = v
			src.Pix[i+1] = v
			src.Pix[i+2] = v
		}
	}
	out, err := DitherGray(src, "floyd-steinberg", 1)
	if err != nil {
		t.Fatalf("dither failed: %v", err)
	}
	if out.Width != src.Width || out.Height != src.Height {
		t.Fatalf("dimensions changed: %dx%d", out.Width, out.Height)
	}
	seenBlack, seenWhite := false, false
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("sample %d = %d, want palette value", i, v)
		}
		if v == 0 {
			seenBlack = true
		} else {
			seenWhite = true
		}
	}
	if !seenBlack || !seenWhite {
		t.Fatalf("gradient should dither to both levels")
	}
}

func TestDitherGrayBayer(t *testing.T) {
	src := makeSolidBuffer(8, 8, 128, 128, 128)
	out, err := DitherGray(src, "bayer", 2)
	if err != nil {
		t.Fatalf("bayer dither failed: %v", err)
	}
	// 2-bit palette levels: 0, 85, 170, 255
	allowed := map[byte]bool{0: true, 85: true, 170: true, 255: true}
	for i, v := range out.Pix {
		if !allowed[v] {
			t.Fatalf("sample %d = %d, not a 2-bit gray level", i, v)
		}
	}
}

func TestDitherGrayRejectsBadArgs(t *testing.T) {
	src := makeSolidBuffer(2, 2, 1, 2, 3)
	if _, err := DitherGray(src, "floyd-steinberg", 0); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("got %v, want ErrBadArgument", err)
	}
	if _, err := DitherGray(src, "stucki", 1); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("got %v, want ErrBadArgument", err)
	}
}
