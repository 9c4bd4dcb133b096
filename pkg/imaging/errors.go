package imaging

import "errors"

// Precondition errors. Operations return these (wrapped with context) before
// touching any pixel data; callers are expected to check them with errors.Is
// and present a message. Degenerate-but-valid inputs (flat histograms,
// max==min channels) never produce an error.
var (
	// ErrBufferSize means len(Pix) != Width*Height*3.
	ErrBufferSize = errors.New("pixel buffer length does not match dimensions")
	// ErrDivisor means a divide was requested with |divisor| < 0.001.
	ErrDivisor = errors.New("divisor too close to zero")
	// ErrEvenKernel means a kernel has an even width or height.
	ErrEvenKernel = errors.New("kernel dimensions must be odd")
	// ErrKernelShape means a custom kernel is ragged or empty.
	ErrKernelShape = errors.New("kernel rows must be non-empty and equal length")
	// ErrKernelParse means custom kernel text contained a non-numeric cell.
	ErrKernelParse = errors.New("kernel cell is not a number")
	// ErrUnknownMethod means an unrecognized threshold method name.
	ErrUnknownMethod = errors.New("unknown threshold method")
	// ErrBadArgument means a command argument failed validation.
	ErrBadArgument = errors.New("invalid argument")
)
