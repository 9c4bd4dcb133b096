package imaging

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyCommand applies a named command to the buffer and returns the new
// buffer plus optional informational text (used by commands like "threshold"
// that report a value instead of producing pixels). The input buffer is never
// modified; on error the returned buffer is the zero value.
func ApplyCommand(b Buffer, name string, args []string) (Buffer, string, error) {
	if err := b.Validate(); err != nil {
		return Buffer{}, "", err
	}
	switch name {
	case "add":
		v, err := argInt(args, 0, "value")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Add(b, v)
		return out, "", err

	case "subtract":
		v, err := argInt(args, 0, "value")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Subtract(b, v)
		return out, "", err

	case "multiply":
		v, err := argFloat(args, 0, "factor")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Multiply(b, v)
		return out, "", err

	case "divide":
		v, err := argFloat(args, 0, "divisor")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Divide(b, v)
		return out, "", err

	case "brightness":
		v, err := argInt(args, 0, "level")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Brightness(b, v)
		return out, "", err

	case "grayscaleAverage":
		out, err := GrayscaleAverage(b)
		return out, "", err

	case "grayscaleLuminosity":
		out, err := GrayscaleLuminosity(b)
		return out, "", err

	case "smooth":
		size, err := argIntDefault(args, 0, 3)
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Smooth(b, size)
		return out, "", err

	case "median":
		size, err := argIntDefault(args, 0, 3)
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Median(b, size)
		return out, "", err

	case "sharpen":
		out, err := Sharpen(b)
		return out, "", err

	case "gaussianBlur":
		sigma, err := argFloat(args, 0, "sigma")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := GaussianBlur(b, sigma)
		return out, "", err

	case "sobel":
		out, err := Sobel(b)
		return out, "", err

	case "convolve":
		if len(args) < 1 || args[0] == "" {
			return Buffer{}, "", fmt.Errorf("%w: kernel text required", ErrBadArgument)
		}
		// rows arrive on one line separated by ';'
		k, err := ParseKernel(strings.ReplaceAll(args[0], ";", "\n"))
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Convolve(b, k)
		return out, "", err

	case "stretchContrast":
		out, err := StretchContrast(b)
		return out, "", err

	case "equalize":
		out, err := Equalize(b)
		return out, "", err

	case "histogram":
		channel := "gray"
		if len(args) >= 1 && args[0] != "" {
			channel = args[0]
		}
		out, err := histogramCommand(b, channel)
		return out, "", err

	case "binarize":
		method, arg, err := thresholdArgs(args)
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Binarize(b, method, arg)
		return out, "", err

	case "threshold":
		method, arg, err := thresholdArgs(args)
		if err != nil {
			return Buffer{}, "", err
		}
		t, err := SelectThreshold(b, method, arg)
		if err != nil {
			return Buffer{}, "", err
		}
		return b.Clone(), fmt.Sprintf("%s threshold = %d", method, t), nil

	case "flip":
		out, err := Flip(b)
		return out, "", err

	case "flop":
		out, err := Flop(b)
		return out, "", err

	case "rotate":
		degrees, err := argInt(args, 0, "degrees")
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := Rotate(b, degrees)
		return out, "", err

	case "dither":
		algorithm := ""
		if len(args) >= 1 {
			algorithm = args[0]
		}
		bitDepth, err := argIntDefault(args, 1, 1)
		if err != nil {
			return Buffer{}, "", err
		}
		out, err := DitherGray(b, algorithm, bitDepth)
		return out, "", err

	default:
		return Buffer{}, "", fmt.Errorf("%w: unsupported command %q", ErrBadArgument, name)
	}
}

func histogramCommand(b Buffer, channel string) (Buffer, error) {
	switch strings.ToLower(channel) {
	case "rgb":
		r, err := Histogram(b, ChannelRed)
		if err != nil {
			return Buffer{}, err
		}
		g, _ := Histogram(b, ChannelGreen)
		bl, _ := Histogram(b, ChannelBlue)
		return RenderHistogram([][256]int{r, g, bl}), nil
	case "gray", "grey", "":
		h, err := Histogram(b, ChannelGray)
		if err != nil {
			return Buffer{}, err
		}
		return RenderHistogram([][256]int{h}), nil
	case "red", "r":
		h, err := Histogram(b, ChannelRed)
		if err != nil {
			return Buffer{}, err
		}
		return RenderHistogram([][256]int{h}), nil
	case "green", "g":
		h, err := Histogram(b, ChannelGreen)
		if err != nil {
			return Buffer{}, err
		}
		return RenderHistogram([][256]int{h}), nil
	case "blue", "b":
		h, err := Histogram(b, ChannelBlue)
		if err != nil {
			return Buffer{}, err
		}
		return RenderHistogram([][256]int{h}), nil
	default:
		return Buffer{}, fmt.Errorf("%w: histogram channel %q", ErrBadArgument, channel)
	}
}

func thresholdArgs(args []string) (ThresholdMethod, float64, error) {
	if len(args) < 1 || args[0] == "" {
		return "", 0, fmt.Errorf("%w: method required", ErrBadArgument)
	}
	method := ThresholdMethod(strings.ToLower(args[0]))
	arg := 0.0
	if len(args) >= 2 && args[1] != "" {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %q: %v", ErrBadArgument, args[1], err)
		}
		arg = v
	}
	return method, arg, nil
}

func argInt(args []string, i int, name string) (int, error) {
	if len(args) <= i || args[i] == "" {
		return 0, fmt.Errorf("%w: %s required", ErrBadArgument, name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadArgument, name, args[i])
	}
	return v, nil
}

func argIntDefault(args []string, i, def int) (int, error) {
	if len(args) <= i || args[i] == "" {
		return def, nil
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadArgument, args[i])
	}
	return v, nil
}

func argFloat(args []string, i int, name string) (float64, error) {
	if len(args) <= i || args[i] == "" {
		return 0, fmt.Errorf("%w: %s required", ErrBadArgument, name)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadArgument, name, args[i])
	}
	return v, nil
}
