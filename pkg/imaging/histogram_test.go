package imaging

import (
	"errors"
	"testing"
)

func TestHistogramSumsToPixelCount(t *testing.T) {
	src := makeBuffer(t, 2, 2,
		[3]byte{255, 0, 0},
		[3]byte{0, 255, 0},
		[3]byte{0, 0, 255},
		[3]byte{10, 20, 30},
	)
	for _, ch := range []int{ChannelGray, ChannelRed, ChannelGreen, ChannelBlue} {
		hist, err := Histogram(src, ch)
		if err != nil {
			t.Fatalf("channel %d failed: %v", ch, err)
		}
		sum := 0
		for _, n := range hist {
			sum += n
		}
		if sum != 4 {
			t.Fatalf("channel %d: counts sum to %d, want 4", ch, sum)
		}
	}
}

func TestHistogramGrayBucketing(t *testing.T) {
	src := makeBuffer(t, 2, 1, [3]byte{255, 0, 0}, [3]byte{10, 20, 30})
	hist, err := Histogram(src, ChannelGray)
	if err != nil {
		t.Fatalf("histogram failed: %v", err)
	}
	// (255+0+0)/3 = 85, (10+20+30)/3 = 20
	if hist[85] != 1 || hist[20] != 1 {
		t.Fatalf("unexpected buckets: hist[85]=%d hist[20]=%d", hist[85], hist[20])
	}
}

func TestHistogramSingleChannel(t *testing.T) {
	src := makeBuffer(t, 2, 1, [3]byte{7, 100, 200}, [3]byte{7, 101, 201})
	hist, err := Histogram(src, ChannelRed)
	if err != nil {
		t.Fatalf("histogram failed: %v", err)
	}
	if hist[7] != 2 {
		t.Fatalf("red bucket 7 = %d, want 2", hist[7])
	}
	hist, _ = Histogram(src, ChannelBlue)
	if hist[200] != 1 || hist[201] != 1 {
		t.Fatalf("blue buckets wrong: %d %d", hist[200], hist[201])
	}
}

func TestHistogramRejectsBadChannel(t *testing.T) {
	src := makeSolidBuffer(1, 1, 1, 2, 3)
	if _, err := Histogram(src, 3); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("got %v, want ErrBadArgument", err)
	}
	if _, err := Histogram(src, -2); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("got %v, want ErrBadArgument", err)
	}
}

func TestRenderHistogramShape(t *testing.T) {
	src := makeSolidBuffer(4, 4, 128, 128, 128)
	hist, err := Histogram(src, ChannelGray)
	if err != nil {
		t.Fatalf("histogram failed: %v", err)
	}
	img := RenderHistogram([][256]int{hist})
	if img.Width != histRenderWidth || img.Height != histRenderHeight {
		t.Fatalf("unexpected render size %dx%d", img.Width, img.Height)
	}
	if err := img.Validate(); err != nil {
		t.Fatalf("rendered buffer invalid: %v", err)
	}
	// the bar for level 128 holds all the mass and must reach near the top
	x := 128 * histRenderWidth / 256
	if img.Pix[img.offset(x, 1)] == 255 {
		t.Fatalf("expected a full-height bar at x=%d", x)
	}
	// an empty level stays background white
	if img.Pix[img.offset(0, histRenderHeight-1)] != 255 {
		t.Fatalf("expected white background at empty level")
	}
}
