package imaging

import (
	"fmt"
	"image"
)

// Buffer is the engine's pixel contract: an interleaved RGB byte sequence,
// row-major, top-to-bottom, three bytes per pixel. Every operation reads one
// Buffer and returns a freshly allocated one; nothing mutates its input.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewBuffer allocates a zeroed buffer of the given dimensions.
func NewBuffer(w, h int) Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Buffer{Width: w, Height: h, Pix: make([]byte, w*h*3)}
}

// Validate checks the length contract. Operations call this before computing.
func (b Buffer) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrBufferSize, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*3 {
		return fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

func (b Buffer) offset(x, y int) int {
	return (y*b.Width + x) * 3
}

// At returns the RGB triple at (x, y). Coordinates must be in bounds.
func (b Buffer) At(x, y int) (r, g, bl byte) {
	i := b.offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// sampleClamped returns the sample for one channel with coordinates clamped
// to the nearest valid row/column (clamp-to-edge border policy).
func (b Buffer) sampleClamped(x, y, ch int) byte {
	x = clampInt(x, 0, b.Width-1)
	y = clampInt(y, 0, b.Height-1)
	return b.Pix[b.offset(x, y)+ch]
}

// FromImage converts any image.Image into a Buffer, dropping alpha.
func FromImage(src image.Image) Buffer {
	if src == nil {
		return Buffer{}
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewBuffer(w, h)
	if n, ok := src.(*image.NRGBA); ok {
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				j := n.PixOffset(x, y)
				out.Pix[i+0] = n.Pix[j+0]
				out.Pix[i+1] = n.Pix[j+1]
				out.Pix[i+2] = n.Pix[j+2]
				i += 3
			}
		}
		return out
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b_, _ := src.At(x, y).RGBA()
			// 16-bit [0,65535] to 8-bit
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b_ >> 8)
			i += 3
		}
	}
	return out
}

// ToNRGBA converts the buffer into a stdlib image with opaque alpha.
func (b Buffer) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	si := 0
	for di := 0; di < len(out.Pix); di += 4 {
		out.Pix[di+0] = b.Pix[si+0]
		out.Pix[di+1] = b.Pix[si+1]
		out.Pix[di+2] = b.Pix[si+2]
		out.Pix[di+3] = 255
		si += 3
	}
	return out
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampToByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
