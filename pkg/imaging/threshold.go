package imaging

import (
	"fmt"
	"math"
)

// ThresholdMethod names a threshold-selection strategy. The six strategies
// differ only in how they derive a threshold from the luma histogram; they
// all share BinarizeManual as the apply step.
type ThresholdMethod string

const (
	MethodManual        ThresholdMethod = "manual"
	MethodPercentBlack  ThresholdMethod = "percent-black"
	MethodIsodata       ThresholdMethod = "isodata"
	MethodEntropy       ThresholdMethod = "entropy"
	MethodMinError      ThresholdMethod = "min-error"
	MethodFuzzyMinError ThresholdMethod = "fuzzy-min-error"
)

// isodataMaxIterations caps the mean-iterative refinement loop.
const isodataMaxIterations = 100

// fuzzyHalfWidth is the transition half-width of the fuzzy membership ramp.
const fuzzyHalfWidth = 10

// flatFallback is returned when no threshold candidate is admissible, which
// happens on flat or near-flat images. The selectors degrade rather than fail.
const flatFallback = 127

// BinarizeManual converts every pixel to BT.601 luma and emits 255 where
// luma >= threshold, 0 otherwise, on all three channels.
func BinarizeManual(b Buffer, threshold int) (Buffer, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	threshold = clampInt(threshold, 0, 255)
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	for i := 0; i < len(b.Pix); i += 3 {
		var v byte
		if int(luma601(b.Pix[i], b.Pix[i+1], b.Pix[i+2])) >= threshold {
			v = 255
		}
		out.Pix[i+0] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
	}
	return out, nil
}

// SelectThreshold derives a threshold in [0,255] for the given method.
// arg carries the method parameter: the threshold itself for "manual", the
// black percentage for "percent-black"; the other methods ignore it.
func SelectThreshold(b Buffer, method ThresholdMethod, arg float64) (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	switch method {
	case MethodManual:
		return clampInt(int(arg), 0, 255), nil
	case MethodPercentBlack:
		return percentBlackThreshold(lumaHistogram(b), b.Width*b.Height, arg), nil
	case MethodIsodata:
		return isodataThreshold(lumaHistogram(b)), nil
	case MethodEntropy:
		return entropyThreshold(lumaHistogram(b)), nil
	case MethodMinError:
		return minErrorThreshold(lumaHistogram(b)), nil
	case MethodFuzzyMinError:
		return fuzzyMinErrorThreshold(lumaHistogram(b)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// Binarize selects a threshold with the given method and applies it.
func Binarize(b Buffer, method ThresholdMethod, arg float64) (Buffer, error) {
	t, err := SelectThreshold(b, method, arg)
	if err != nil {
		return Buffer{}, err
	}
	return BinarizeManual(b, t)
}

// percentBlackThreshold picks the luma value at percentile index
// round(count*pct/100) of the sorted per-pixel luma values, clamped to the
// valid index range. Walking the cumulative histogram is equivalent to
// sorting the values.
func percentBlackThreshold(hist [256]int, count int, pct float64) int {
	if count == 0 {
		return 0
	}
	target := clampInt(int(math.Round(float64(count)*pct/100)), 0, count-1)
	cum := 0
	for v := 0; v < 256; v++ {
		cum += hist[v]
		if cum > target {
			return v
		}
	}
	return 255
}

// isodataThreshold starts at the global mean and repeatedly resets the
// threshold to the midpoint of the two class means until it stops moving or
// the iteration cap is hit.
func isodataThreshold(hist [256]int) int {
	total := 0
	sum := 0
	for v, n := range hist {
		total += n
		sum += v * n
	}
	if total == 0 {
		return 0
	}
	t := int(math.Round(float64(sum) / float64(total)))
	for iter := 0; iter < isodataMaxIterations; iter++ {
		var count1, sum1, count2, sum2 int
		for v := 0; v <= t; v++ {
			count1 += hist[v]
			sum1 += v * hist[v]
		}
		for v := t + 1; v < 256; v++ {
			count2 += hist[v]
			sum2 += v * hist[v]
		}
		if count1 == 0 || count2 == 0 {
			break
		}
		m1 := float64(sum1) / float64(count1)
		m2 := float64(sum2) / float64(count2)
		next := int(math.Round((m1 + m2) / 2))
		if next == t {
			break
		}
		t = next
	}
	return clampInt(t, 0, 255)
}

// entropyThreshold implements Kapur's method: maximize the sum of the
// background and foreground Shannon entropies, each normalized by its own
// probability mass. Candidates with an empty side are skipped.
func entropyThreshold(hist [256]int) int {
	total := 0
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return 0
	}
	var p [256]float64
	for v, n := range hist {
		p[v] = float64(n) / float64(total)
	}
	best := flatFallback
	bestScore := math.Inf(-1)
	p1 := 0.0
	for t := 0; t < 256; t++ {
		p1 += p[t]
		p2 := 1 - p1
		if p1 <= 0 || p2 <= 0 {
			continue
		}
		h1 := 0.0
		for v := 0; v <= t; v++ {
			if p[v] > 0 {
				q := p[v] / p1
				h1 -= q * math.Log(q)
			}
		}
		h2 := 0.0
		for v := t + 1; v < 256; v++ {
			if p[v] > 0 {
				q := p[v] / p2
				h2 -= q * math.Log(q)
			}
		}
		if score := h1 + h2; score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}

// classStats returns probability mass, mean, and variance of the histogram
// restricted to [lo,hi], with mass relative to total.
func classStats(hist [256]int, lo, hi, total int) (mass, mean, variance float64) {
	count := 0
	sum := 0
	for v := lo; v <= hi; v++ {
		count += hist[v]
		sum += v * hist[v]
	}
	if count == 0 {
		return 0, 0, 0
	}
	mean = float64(sum) / float64(count)
	for v := lo; v <= hi; v++ {
		if hist[v] > 0 {
			d := float64(v) - mean
			variance += d * d * float64(hist[v])
		}
	}
	variance /= float64(count)
	mass = float64(count) / float64(total)
	return mass, mean, variance
}

// minErrorThreshold implements the Kittler-Illingworth criterion
// J(t) = 1 + 2(P1 ln v1 + P2 ln v2) - 2(P1 ln P1 + P2 ln P2), minimized over
// t in [1,254]. Candidates with a zero-mass or zero-variance side are skipped.
func minErrorThreshold(hist [256]int) int {
	total := 0
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return 0
	}
	best := flatFallback
	bestScore := math.Inf(1)
	for t := 1; t <= 254; t++ {
		p1, _, v1 := classStats(hist, 0, t, total)
		p2, _, v2 := classStats(hist, t+1, 255, total)
		if p1 <= 0 || p2 <= 0 || v1 <= 0 || v2 <= 0 {
			continue
		}
		j := 1 + 2*(p1*math.Log(v1)+p2*math.Log(v2)) - 2*(p1*math.Log(p1)+p2*math.Log(p2))
		if j < bestScore {
			bestScore = j
			best = t
		}
	}
	return best
}

// fuzzyMembership is the graded background membership of level v for
// candidate threshold t: 1 below the transition band, 0 above it, linear in
// between. The band spans t +/- fuzzyHalfWidth.
func fuzzyMembership(v, t int) float64 {
	switch {
	case v <= t-fuzzyHalfWidth:
		return 1
	case v >= t+fuzzyHalfWidth:
		return 0
	default:
		return float64(t+fuzzyHalfWidth-v) / float64(2*fuzzyHalfWidth)
	}
}

// fuzzyClassStats accumulates membership-weighted mass, mean, and variance.
// foreground uses the complement membership.
func fuzzyClassStats(hist [256]int, t, total int, foreground bool) (mass, mean, variance float64) {
	weight := 0.0
	sum := 0.0
	for v := 0; v < 256; v++ {
		if hist[v] == 0 {
			continue
		}
		mu := fuzzyMembership(v, t)
		if foreground {
			mu = 1 - mu
		}
		w := mu * float64(hist[v])
		weight += w
		sum += w * float64(v)
	}
	if weight <= 0 {
		return 0, 0, 0
	}
	mean = sum / weight
	for v := 0; v < 256; v++ {
		if hist[v] == 0 {
			continue
		}
		mu := fuzzyMembership(v, t)
		if foreground {
			mu = 1 - mu
		}
		d := float64(v) - mean
		variance += mu * float64(hist[v]) * d * d
	}
	variance /= weight
	mass = weight / float64(total)
	return mass, mean, variance
}

// fuzzyMinErrorThreshold applies the minimum-error criterion with graded
// class membership instead of a hard split, so levels near the candidate
// contribute partially to both classes.
func fuzzyMinErrorThreshold(hist [256]int) int {
	total := 0
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return 0
	}
	best := flatFallback
	bestScore := math.Inf(1)
	for t := 1; t <= 254; t++ {
		p1, _, v1 := fuzzyClassStats(hist, t, total, false)
		p2, _, v2 := fuzzyClassStats(hist, t, total, true)
		if p1 <= 0 || p2 <= 0 || v1 <= 0 || v2 <= 0 {
			continue
		}
		j := 1 + 2*(p1*math.Log(v1)+p2*math.Log(v2)) - 2*(p1*math.Log(p1)+p2*math.Log(p2))
		if j < bestScore {
			bestScore = j
			best = t
		}
	}
	return best
}
