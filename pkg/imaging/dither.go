package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// DitherGray quantizes the buffer to a grayscale palette of 2^bitDepth levels
// using error-diffusion or ordered dithering. algorithm is "floyd-steinberg"
// or "bayer".
func DitherGray(b Buffer, algorithm string, bitDepth int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	if bitDepth < 1 || bitDepth > 8 {
		return Buffer{}, fmt.Errorf("%w: bit depth %d", ErrBadArgument, bitDepth)
	}
	d := dither.NewDitherer(grayscalePalette(bitDepth))
	switch strings.ToLower(algorithm) {
	case "floyd-steinberg", "fs", "":
		d.Matrix = dither.FloydSteinberg
	case "bayer":
		d.Mapper = dither.Bayer(4, 4, 1.0)
	default:
		return Buffer{}, fmt.Errorf("%w: dither algorithm %q", ErrBadArgument, algorithm)
	}
	return FromImage(d.Dither(b.ToNRGBA())), nil
}

// grayscalePalette builds 2^bitDepth evenly spaced gray levels.
func grayscalePalette(bitDepth int) color.Palette {
	levels := 1 << bitDepth
	palette := make(color.Palette, levels)
	if levels == 2 {
		palette[0] = color.Gray{Y: 0}
		palette[1] = color.Gray{Y: 255}
		return palette
	}
	for i := 0; i < levels; i++ {
		palette[i] = color.Gray{Y: uint8(i * 255 / (levels - 1))}
	}
	return palette
}
