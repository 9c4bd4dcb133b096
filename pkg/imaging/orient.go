package imaging

import "fmt"

// Flip mirrors the image vertically (top row becomes bottom row).
func Flip(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := NewBuffer(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*b.Width*3 : (y+1)*b.Width*3]
		dst := out.Pix[(b.Height-1-y)*b.Width*3:]
		copy(dst, src)
	}
	return out, nil
}

// Flop mirrors the image horizontally (left column becomes right column).
func Flop(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := NewBuffer(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			si := b.offset(x, y)
			di := out.offset(b.Width-1-x, y)
			copy(out.Pix[di:di+3], b.Pix[si:si+3])
		}
	}
	return out, nil
}

// Rotate rotates the image by a right angle. degrees must be one of
// 90, 180 or 270 (clockwise).
func Rotate(b Buffer, degrees int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	switch ((degrees % 360) + 360) % 360 {
	case 90:
		return rotate90CW(b), nil
	case 180:
		return rotate180(b), nil
	case 270:
		return rotate90CCW(b), nil
	case 0:
		return b.Clone(), nil
	default:
		return Buffer{}, fmt.Errorf("%w: rotation must be a multiple of 90 degrees, got %d", ErrBadArgument, degrees)
	}
}

func rotate180(b Buffer) Buffer {
	out := NewBuffer(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			si := b.offset(x, y)
			di := out.offset(b.Width-1-x, b.Height-1-y)
			copy(out.Pix[di:di+3], b.Pix[si:si+3])
		}
	}
	return out
}

func rotate90CW(b Buffer) Buffer {
	out := NewBuffer(b.Height, b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			si := b.offset(x, y)
			di := out.offset(b.Height-1-y, x)
			copy(out.Pix[di:di+3], b.Pix[si:si+3])
		}
	}
	return out
}

func rotate90CCW(b Buffer) Buffer {
	out := NewBuffer(b.Height, b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			si := b.offset(x, y)
			di := out.offset(y, b.Width-1-x)
			copy(out.Pix[di:di+3], b.Pix[si:si+3])
		}
	}
	return out
}

// AutoOrient applies the transform implied by an EXIF orientation value
// (1..8). Values outside that range return the buffer unchanged.
func AutoOrient(b Buffer, orientation int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	switch orientation {
	case 2:
		return Flop(b)
	case 3:
		return rotate180(b), nil
	case 4:
		return Flip(b)
	case 5:
		// transpose: rotate 90 CW then mirror horizontally
		return Flop(rotate90CW(b))
	case 6:
		return rotate90CW(b), nil
	case 7:
		// transverse: rotate 90 CCW then mirror horizontally
		return Flop(rotate90CCW(b))
	case 8:
		return rotate90CCW(b), nil
	default:
		return b, nil
	}
}
