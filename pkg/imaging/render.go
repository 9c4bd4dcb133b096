package imaging

import "math"

const (
	histRenderWidth  = 512
	histRenderHeight = 120
)

// RenderHistogram draws the given histogram series as an overlaid bar chart
// on a white background. One series renders dark gray bars; three series
// render as red, green, and blue channel overlays.
func RenderHistogram(series [][256]int) Buffer {
	out := NewBuffer(histRenderWidth, histRenderHeight)
	for i := range out.Pix {
		out.Pix[i] = 255
	}
	maxv := 1
	for _, hist := range series {
		for _, v := range hist {
			if v > maxv {
				maxv = v
			}
		}
	}
	for x := 0; x < histRenderWidth; x++ {
		bin := clampInt(x*256/histRenderWidth, 0, 255)
		for si, hist := range series {
			barH := int(math.Round(float64(hist[bin]) / float64(maxv) * float64(histRenderHeight-1)))
			for y := 0; y < barH; y++ {
				i := out.offset(x, histRenderHeight-1-y)
				if len(series) == 1 {
					out.Pix[i+0] = 64
					out.Pix[i+1] = 64
					out.Pix[i+2] = 64
					continue
				}
				// channel overlay: force this channel to full, dim the others
				for ch := 0; ch < 3; ch++ {
					if ch == si {
						out.Pix[i+ch] = 255
					} else if out.Pix[i+ch] == 255 {
						out.Pix[i+ch] = 96
					}
				}
			}
		}
	}
	return out
}
