// Package imaging: authoritative registry of engine commands.
//
// This file mirrors the operations implemented in ApplyCommand in
// pkg/imaging/engine.go. Keep this list up-to-date when you add or modify
// commands so callers (CLI, docs, help text) can read a single source of
// truth.

package imaging

// ArgSpec describes a single argument for a command. Fields are textual and
// intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "enum", etc.
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of commands implemented by the engine.
// Keep this synchronized with ApplyCommand in pkg/imaging/engine.go.
var Commands = []CommandSpec{
	{
		Name:        "add",
		Args:        []ArgSpec{{"value", "int", true, "", "amount added to every sample"}},
		Usage:       "add <value>",
		Description: "Add a constant to every sample, clamped to [0,255].",
	},
	{
		Name:        "subtract",
		Args:        []ArgSpec{{"value", "int", true, "", "amount subtracted from every sample"}},
		Usage:       "subtract <value>",
		Description: "Subtract a constant from every sample, clamped to [0,255].",
	},
	{
		Name:        "multiply",
		Args:        []ArgSpec{{"factor", "float", true, "", "per-sample multiplier"}},
		Usage:       "multiply <factor>",
		Description: "Multiply every sample by a factor (truncating).",
	},
	{
		Name:        "divide",
		Args:        []ArgSpec{{"divisor", "float", true, "", "per-sample divisor, |v| >= 0.001"}},
		Usage:       "divide <divisor>",
		Description: "Divide every sample by a divisor (truncating).",
	},
	{
		Name:        "brightness",
		Args:        []ArgSpec{{"level", "int", true, "", "brightness offset"}},
		Usage:       "brightness <level>",
		Description: "Adjust brightness; same as add.",
	},
	{
		Name:        "grayscaleAverage",
		Args:        []ArgSpec{},
		Usage:       "grayscaleAverage",
		Description: "Convert to grayscale using the channel average.",
	},
	{
		Name:        "grayscaleLuminosity",
		Args:        []ArgSpec{},
		Usage:       "grayscaleLuminosity",
		Description: "Convert to grayscale using BT.601 luma weights.",
	},
	{
		Name:        "smooth",
		Args:        []ArgSpec{{"size", "int", false, "3", "odd window size"}},
		Usage:       "smooth [size]",
		Description: "Box smoothing; the window shrinks at image borders.",
	},
	{
		Name:        "median",
		Args:        []ArgSpec{{"size", "int", false, "3", "odd window size"}},
		Usage:       "median [size]",
		Description: "Median filter over in-bounds neighbors per channel.",
	},
	{
		Name:        "sharpen",
		Args:        []ArgSpec{},
		Usage:       "sharpen",
		Description: "Fixed 3x3 sharpening kernel.",
	},
	{
		Name:        "gaussianBlur",
		Args:        []ArgSpec{{"sigma", "float", true, "", "gaussian sigma"}},
		Usage:       "gaussianBlur <sigma>",
		Description: "Gaussian blur with kernel size adapted to sigma.",
	},
	{
		Name:        "sobel",
		Args:        []ArgSpec{},
		Usage:       "sobel",
		Description: "Sobel edge magnitude; border ring stays black.",
	},
	{
		Name:        "convolve",
		Args:        []ArgSpec{{"kernel", "string", true, "", "rows separated by ';', cells by spaces or commas"}},
		Usage:       "convolve <kernel>",
		Description: "Convolve with a custom odd-sized kernel (clamp-to-edge).",
	},
	{
		Name:        "stretchContrast",
		Args:        []ArgSpec{},
		Usage:       "stretchContrast",
		Description: "Per-channel min-max histogram stretching.",
	},
	{
		Name:        "equalize",
		Args:        []ArgSpec{},
		Usage:       "equalize",
		Description: "Per-channel histogram equalization.",
	},
	{
		Name:        "histogram",
		Args:        []ArgSpec{{"channel", "enum", false, "gray", "gray, red, green, blue, or rgb overlay"}},
		Usage:       "histogram [channel]",
		Description: "Render a 256-bin intensity histogram as an image.",
	},
	{
		Name:        "binarize",
		Args: []ArgSpec{
			{"method", "enum", true, "", "manual, percent-black, isodata, entropy, min-error, fuzzy-min-error"},
			{"arg", "float", false, "", "threshold for manual, percentage for percent-black"},
		},
		Usage:       "binarize <method> [arg]",
		Description: "Select a threshold and binarize on BT.601 luma.",
	},
	{
		Name:        "threshold",
		Args:        []ArgSpec{{"method", "enum", true, "", "manual, percent-black, isodata, entropy, min-error, fuzzy-min-error"}, {"arg", "float", false, "", "method parameter"}},
		Usage:       "threshold <method> [arg]",
		Description: "Report the threshold a method would select, without applying it.",
	},
	{
		Name:        "flip",
		Args:        []ArgSpec{},
		Usage:       "flip",
		Description: "Mirror the image vertically.",
	},
	{
		Name:        "flop",
		Args:        []ArgSpec{},
		Usage:       "flop",
		Description: "Mirror the image horizontally.",
	},
	{
		Name:        "rotate",
		Args:        []ArgSpec{{"degrees", "int", true, "", "clockwise rotation, multiple of 90"}},
		Usage:       "rotate <degrees>",
		Description: "Rotate the image by a right angle.",
	},
	{
		Name:        "dither",
		Args: []ArgSpec{
			{"algorithm", "enum", false, "floyd-steinberg", "floyd-steinberg or bayer"},
			{"bitDepth", "int", false, "1", "grayscale bit depth, 1..8"},
		},
		Usage:       "dither [algorithm] [bitDepth]",
		Description: "Quantize to a grayscale palette with dithering.",
	},
}
