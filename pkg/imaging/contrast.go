package imaging

import "math"

// StretchContrast remaps each channel independently so its extremes span the
// full [0,255] range: v -> (v-min)*255/(max-min) with integer arithmetic.
// A channel whose samples are all equal is left unchanged.
func StretchContrast(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := b.Clone()
	if len(b.Pix) == 0 {
		return out, nil
	}
	for ch := 0; ch < 3; ch++ {
		minV, maxV := 255, 0
		for i := ch; i < len(b.Pix); i += 3 {
			v := int(b.Pix[i])
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		if maxV == minV {
			continue
		}
		for i := ch; i < len(b.Pix); i += 3 {
			out.Pix[i] = byte((int(b.Pix[i]) - minV) * 255 / (maxV - minV))
		}
	}
	return out, nil
}

// Equalize performs histogram equalization per channel: build the channel
// histogram, accumulate the CDF, and remap level i to
// round((cdf[i]-cdfMin)*255/(total-cdfMin)) where cdfMin is the smallest
// non-zero CDF value. A channel where total == cdfMin (all pixels on one
// level) keeps the identity mapping.
func Equalize(b Buffer) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	out := b.Clone()
	total := b.Width * b.Height
	if total == 0 {
		return out, nil
	}
	for ch := 0; ch < 3; ch++ {
		hist, _ := Histogram(b, ch)
		var cdf [256]int
		running := 0
		for i := 0; i < 256; i++ {
			running += hist[i]
			cdf[i] = running
		}
		cdfMin := 0
		for i := 0; i < 256; i++ {
			if cdf[i] > 0 {
				cdfMin = cdf[i]
				break
			}
		}
		if total == cdfMin {
			continue
		}
		var lut [256]byte
		for i := 0; i < 256; i++ {
			lut[i] = clampToByte(int(math.Round(float64(cdf[i]-cdfMin) * 255 / float64(total-cdfMin))))
		}
		for i := ch; i < len(b.Pix); i += 3 {
			out.Pix[i] = lut[b.Pix[i]]
		}
	}
	return out, nil
}
