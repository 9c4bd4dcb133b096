package imaging

import (
	"errors"
	"strings"
	"testing"
)

func TestApplyCommandIdentityConvolve(t *testing.T) {
	src := makeBuffer(t, 2, 2,
		[3]byte{1, 2, 3}, [3]byte{4, 5, 6},
		[3]byte{7, 8, 9}, [3]byte{10, 11, 12},
	)
	out, info, err := ApplyCommand(src, "convolve", []string{"0 0 0;0 1 0;0 0 0"})
	if err != nil {
		t.Fatalf("convolve command failed: %v", err)
	}
	if info != "" {
		t.Fatalf("unexpected info text %q", info)
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("identity convolve changed sample %d", i)
		}
	}
}

func TestApplyCommandThresholdReportsValue(t *testing.T) {
	src := bimodalBuffer()
	out, info, err := ApplyCommand(src, "threshold", []string{"isodata"})
	if err != nil {
		t.Fatalf("threshold command failed: %v", err)
	}
	if !strings.Contains(info, "isodata threshold =") {
		t.Fatalf("unexpected info text %q", info)
	}
	// reporting must not alter pixels
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("threshold report changed sample %d", i)
		}
	}
}

func TestApplyCommandBinarize(t *testing.T) {
	out, _, err := ApplyCommand(bimodalBuffer(), "binarize", []string{"entropy"})
	if err != nil {
		t.Fatalf("binarize command failed: %v", err)
	}
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("sample %d = %d", i, v)
		}
	}
}

func TestApplyCommandHistogram(t *testing.T) {
	src := makeSolidBuffer(4, 4, 200, 30, 90)
	out, _, err := ApplyCommand(src, "histogram", []string{"rgb"})
	if err != nil {
		t.Fatalf("histogram command failed: %v", err)
	}
	if out.Width != histRenderWidth || out.Height != histRenderHeight {
		t.Fatalf("unexpected size %dx%d", out.Width, out.Height)
	}
}

func TestApplyCommandErrors(t *testing.T) {
	src := makeSolidBuffer(2, 2, 10, 10, 10)
	if _, _, err := ApplyCommand(src, "warp", nil); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("unknown command: got %v", err)
	}
	if _, _, err := ApplyCommand(src, "divide", []string{"0"}); !errors.Is(err, ErrDivisor) {
		t.Fatalf("near-zero divide: got %v", err)
	}
	if _, _, err := ApplyCommand(src, "add", []string{"many"}); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("bad int: got %v", err)
	}
	if _, _, err := ApplyCommand(src, "binarize", []string{"sauvola"}); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("unknown method: got %v", err)
	}
	if _, _, err := ApplyCommand(src, "convolve", []string{"1 2;3 4"}); !errors.Is(err, ErrEvenKernel) {
		t.Fatalf("even kernel: got %v", err)
	}
	bad := Buffer{Width: 1, Height: 1, Pix: []byte{1}}
	if _, _, err := ApplyCommand(bad, "sharpen", nil); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("bad buffer: got %v", err)
	}
}

func TestCommandsRegistryMatchesDispatcher(t *testing.T) {
	src := makeSolidBuffer(3, 3, 120, 80, 40)
	// every registered command must be accepted by ApplyCommand when given
	// plausible arguments
	args := map[string][]string{
		"add":                 {"10"},
		"subtract":            {"10"},
		"multiply":            {"1.2"},
		"divide":              {"2"},
		"brightness":          {"-5"},
		"grayscaleAverage":    nil,
		"grayscaleLuminosity": nil,
		"smooth":              {"3"},
		"median":              {"3"},
		"sharpen":             nil,
		"gaussianBlur":        {"1.0"},
		"sobel":               nil,
		"convolve":            {"0 0 0;0 1 0;0 0 0"},
		"stretchContrast":     nil,
		"equalize":            nil,
		"histogram":           {"gray"},
		"flip":                nil,
		"flop":                nil,
		"rotate":              {"90"},
		"binarize":            {"manual", "128"},
		"threshold":           {"isodata"},
		"dither":              {"floyd-steinberg", "1"},
	}
	for _, spec := range Commands {
		a, ok := args[spec.Name]
		if !ok {
			t.Fatalf("no test arguments for registered command %q", spec.Name)
		}
		if _, _, err := ApplyCommand(src, spec.Name, a); err != nil {
			t.Fatalf("command %q failed: %v", spec.Name, err)
		}
	}
}
