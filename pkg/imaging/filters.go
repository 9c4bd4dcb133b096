package imaging

import (
	"fmt"
	"math"
	"sort"
)

// Smooth applies a box average over a size x size window. Unlike Convolve,
// the window shrinks at the image border: the divisor is the count of
// in-bounds neighbors, not size*size, and out-of-bounds samples are skipped
// rather than clamp-extended. The average truncates.
func Smooth(b Buffer, size int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	if size < 1 || size%2 == 0 {
		return Buffer{}, fmt.Errorf("%w: %dx%d", ErrEvenKernel, size, size)
	}
	half := size / 2
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var sum [3]int
			count := 0
			for oy := y - half; oy <= y+half; oy++ {
				if oy < 0 || oy >= b.Height {
					continue
				}
				for ox := x - half; ox <= x+half; ox++ {
					if ox < 0 || ox >= b.Width {
						continue
					}
					i := b.offset(ox, oy)
					sum[0] += int(b.Pix[i+0])
					sum[1] += int(b.Pix[i+1])
					sum[2] += int(b.Pix[i+2])
					count++
				}
			}
			i := out.offset(x, y)
			out.Pix[i+0] = byte(sum[0] / count)
			out.Pix[i+1] = byte(sum[1] / count)
			out.Pix[i+2] = byte(sum[2] / count)
		}
	}
	return out, nil
}

// Median applies an order-statistic filter over a size x size window per
// channel: collect the in-bounds neighbors, sort, and take the value at index
// count/2. Uses the same shrink-at-border rule as Smooth.
func Median(b Buffer, size int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	if size < 1 || size%2 == 0 {
		return Buffer{}, fmt.Errorf("%w: %dx%d", ErrEvenKernel, size, size)
	}
	half := size / 2
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	window := make([][]byte, 3)
	for ch := range window {
		window[ch] = make([]byte, 0, size*size)
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			for ch := range window {
				window[ch] = window[ch][:0]
			}
			for oy := y - half; oy <= y+half; oy++ {
				if oy < 0 || oy >= b.Height {
					continue
				}
				for ox := x - half; ox <= x+half; ox++ {
					if ox < 0 || ox >= b.Width {
						continue
					}
					i := b.offset(ox, oy)
					window[0] = append(window[0], b.Pix[i+0])
					window[1] = append(window[1], b.Pix[i+1])
					window[2] = append(window[2], b.Pix[i+2])
				}
			}
			i := out.offset(x, y)
			for ch := 0; ch < 3; ch++ {
				w := window[ch]
				sort.Slice(w, func(a, b int) bool { return w[a] < w[b] })
				out.Pix[i+ch] = w[len(w)/2]
			}
		}
	}
	return out, nil
}

// Sobel kernels.
var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// Sobel computes per-channel gradient magnitude sqrt(Gx^2+Gy^2), rounded and
// clamped. The outermost pixel ring is left zero: only interior pixels
// (1 <= x < w-1, 1 <= y < h-1) are written.
func Sobel(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for y := 1; y < b.Height-1; y++ {
		for x := 1; x < b.Width-1; x++ {
			var gx, gy [3]int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					i := b.offset(x+kx, y+ky)
					wx := sobelX[ky+1][kx+1]
					wy := sobelY[ky+1][kx+1]
					for ch := 0; ch < 3; ch++ {
						s := int(b.Pix[i+ch])
						gx[ch] += wx * s
						gy[ch] += wy * s
					}
				}
			}
			i := out.offset(x, y)
			for ch := 0; ch < 3; ch++ {
				mag := math.Sqrt(float64(gx[ch]*gx[ch] + gy[ch]*gy[ch]))
				out.Pix[i+ch] = clampToByte(int(math.Round(mag)))
			}
		}
	}
	return out, nil
}

// Sharpen applies the fixed 3x3 sharpening kernel via Convolve.
func Sharpen(b Buffer) (Buffer, error) {
	k, _ := NewKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
	return Convolve(b, k)
}

// GaussianBlur blurs with a generated Gaussian kernel, applied via Convolve
// with clamp-to-edge borders.
func GaussianBlur(b Buffer, sigma float64) (Buffer, error) {
	return Convolve(b, GaussianKernel(sigma))
}
