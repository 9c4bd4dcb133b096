package imaging

import (
	"fmt"
	"math"
)

// BT.601 luma weights. These exact constants are load-bearing: binarization
// and the luminosity conversion must agree byte-for-byte.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

func luma601(r, g, b byte) byte {
	return clampToByte(int(math.Round(lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b))))
}

// Add adds v to every sample, clamping to [0,255].
func Add(b Buffer, v int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for i, s := range b.Pix {
		out.Pix[i] = clampToByte(int(s) + v)
	}
	return out, nil
}

// Subtract subtracts v from every sample, clamping to [0,255].
func Subtract(b Buffer, v int) (Buffer, error) {
	return Add(b, -v)
}

// Brightness adjusts brightness by level; identical to Add.
func Brightness(b Buffer, level int) (Buffer, error) {
	return Add(b, level)
}

// Multiply scales every sample by v. The product is truncated, not rounded,
// matching the reference arithmetic.
func Multiply(b Buffer, v float64) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for i, s := range b.Pix {
		out.Pix[i] = clampToByte(int(float64(s) * v))
	}
	return out, nil
}

// Divide divides every sample by v, truncating. Divisors with magnitude below
// 0.001 are rejected before any pixel is touched.
func Divide(b Buffer, v float64) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	if math.Abs(v) < 0.001 {
		return Buffer{}, fmt.Errorf("%w: %g", ErrDivisor, v)
	}
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for i, s := range b.Pix {
		out.Pix[i] = clampToByte(int(float64(s) / v))
	}
	return out, nil
}

// GrayscaleAverage converts each pixel to (R+G+B)/3 with integer division,
// written to all three channels.
func GrayscaleAverage(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for i := 0; i < len(b.Pix); i += 3 {
		gray := byte((int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])) / 3)
		out.Pix[i+0] = gray
		out.Pix[i+1] = gray
		out.Pix[i+2] = gray
	}
	return out, nil
}

// GrayscaleLuminosity converts each pixel to BT.601 luma, written to all
// three channels.
func GrayscaleLuminosity(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for i := 0; i < len(b.Pix); i += 3 {
		gray := luma601(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
		out.Pix[i+0] = gray
		out.Pix[i+1] = gray
		out.Pix[i+2] = gray
	}
	return out, nil
}
