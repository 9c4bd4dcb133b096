package imaging

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kernel is a 2D grid of convolution weights. Both dimensions must be odd so
// the kernel has a well-defined center cell.
type Kernel struct {
	Weights [][]float64
}

// NewKernel validates the grid and wraps it.
func NewKernel(weights [][]float64) (Kernel, error) {
	if len(weights) == 0 || len(weights[0]) == 0 {
		return Kernel{}, fmt.Errorf("%w: empty grid", ErrKernelShape)
	}
	cols := len(weights[0])
	for _, row := range weights {
		if len(row) != cols {
			return Kernel{}, fmt.Errorf("%w: ragged rows", ErrKernelShape)
		}
	}
	if len(weights)%2 == 0 || cols%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: %dx%d", ErrEvenKernel, len(weights), cols)
	}
	return Kernel{Weights: weights}, nil
}

func (k Kernel) rows() int { return len(k.Weights) }
func (k Kernel) cols() int { return len(k.Weights[0]) }

// ParseKernel parses custom kernel text: one row per line, cells separated by
// spaces and/or commas. The grid must be rectangular with odd dimensions.
func ParseKernel(text string) (Kernel, error) {
	var weights [][]float64
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(strings.ReplaceAll(raw, ",", " "))
		if line == "" {
			continue
		}
		var row []float64
		for _, cell := range strings.Fields(line) {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Kernel{}, fmt.Errorf("%w: %q", ErrKernelParse, cell)
			}
			row = append(row, v)
		}
		weights = append(weights, row)
	}
	return NewKernel(weights)
}

// GaussianKernel generates an odd-sized Gaussian kernel whose size adapts to
// sigma: ceil(sigma*6) rounded up to odd, clamped to [3,31]. Weights are
// normalized to sum to 1.
func GaussianKernel(sigma float64) Kernel {
	if sigma <= 0 {
		sigma = 0.5
	}
	size := int(math.Ceil(sigma * 6))
	if size%2 == 0 {
		size++
	}
	size = clampInt(size, 3, 31)
	half := size / 2
	weights := make([][]float64, size)
	sum := 0.0
	for ky := 0; ky < size; ky++ {
		weights[ky] = make([]float64, size)
		for kx := 0; kx < size; kx++ {
			dx := float64(kx - half)
			dy := float64(ky - half)
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			weights[ky][kx] = v
			sum += v
		}
	}
	for ky := range weights {
		for kx := range weights[ky] {
			weights[ky][kx] /= sum
		}
	}
	return Kernel{Weights: weights}
}

// Convolve applies the kernel to every pixel independently per channel.
// Out-of-bounds neighbors are clamped to the nearest edge sample, so edge
// pixels reuse border values rather than seeing zeros. The weighted sum is
// rounded and clamped to [0,255].
func Convolve(b Buffer, k Kernel) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	if len(k.Weights) == 0 {
		return Buffer{}, fmt.Errorf("%w: empty grid", ErrKernelShape)
	}
	if k.rows()%2 == 0 || k.cols()%2 == 0 {
		return Buffer{}, fmt.Errorf("%w: %dx%d", ErrEvenKernel, k.rows(), k.cols())
	}
	halfH := k.rows() / 2
	halfW := k.cols() / 2
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var sum [3]float64
			for ky := 0; ky < k.rows(); ky++ {
				for kx := 0; kx < k.cols(); kx++ {
					w := k.Weights[ky][kx]
					if w == 0 {
						continue
					}
					sx := x + kx - halfW
					sy := y + ky - halfH
					for ch := 0; ch < 3; ch++ {
						sum[ch] += w * float64(b.sampleClamped(sx, sy, ch))
					}
				}
			}
			i := out.offset(x, y)
			out.Pix[i+0] = clampToByte(int(math.Round(sum[0])))
			out.Pix[i+1] = clampToByte(int(math.Round(sum[1])))
			out.Pix[i+2] = clampToByte(int(math.Round(sum[2])))
		}
	}
	return out, nil
}
