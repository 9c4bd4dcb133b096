package imaging

import "fmt"

// Channel selectors for Histogram.
const (
	ChannelGray  = -1
	ChannelRed   = 0
	ChannelGreen = 1
	ChannelBlue  = 2
)

// Histogram counts 8-bit intensity levels into 256 bins. channel -1 buckets
// the grayscale average (R+G+B)/3 per pixel with integer division; 0, 1, 2
// bucket that single byte stream directly. Counts always sum to Width*Height.
func Histogram(b Buffer, channel int) ([256]int, error) {
	var hist [256]int
	if err := b.Validate(); err != nil {
		return hist, err
	}
	if channel < ChannelGray || channel > ChannelBlue {
		return hist, fmt.Errorf("%w: channel %d", ErrBadArgument, channel)
	}
	if channel == ChannelGray {
		for i := 0; i < len(b.Pix); i += 3 {
			gray := (int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])) / 3
			hist[gray]++
		}
		return hist, nil
	}
	for i := channel; i < len(b.Pix); i += 3 {
		hist[b.Pix[i]]++
	}
	return hist, nil
}

// lumaHistogram buckets BT.601 luma; the threshold selectors share it with
// BinarizeManual so a selected threshold partitions exactly the values the
// apply step sees.
func lumaHistogram(b Buffer) [256]int {
	var hist [256]int
	for i := 0; i < len(b.Pix); i += 3 {
		hist[luma601(b.Pix[i], b.Pix[i+1], b.Pix[i+2])]++
	}
	return hist
}
