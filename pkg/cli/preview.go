package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/image/draw"

	"github.com/breftejk/GraphicsEditor/pkg/imaging"
)

// Terminal preview helpers for Kitty and iTerm2 inline-image protocols.
//
// Behavior:
//   - If kitty is detected (KITTY_WINDOW_ID or TERM contains "kitty"), the PNG is
//     sent using the kitty graphics protocol (chunked base64 inside ESC _G ... ESC \).
//   - Else if a terminal implementing the iTerm2-style OSC 1337 inline file sequence
//     is detected (iTerm2, WezTerm, Warp, Tabby, VSCode, etc), that sequence is used.
//   - Else if a terminal likely to support Sixel graphics is detected, the image is
//     piped to an external sixel renderer (img2sixel).
//   - Else, if chafa is available on PATH, it renders a block-character approximation.
//   - If none is available, an error is returned.
//
// Sending binary escape sequences to stdout is expected in this terminal-only
// preview mode.

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	// ghostty exposes the kitty graphics protocol.
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	// Konsole implements parts of the protocol via a kitty compatibility mode.
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return false
}

// isInlineImageCapable detects terminals that implement the iTerm2-style
// OSC 1337 inline image protocol, via TERM_PROGRAM and common TERM substrings.
func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby":
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") ||
		strings.Contains(term, "tabby") || strings.Contains(term, "vscode") {
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

// isSixelCapable is heuristic; SIXEL_PREVIEW=1 forces it.
func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "mlterm") {
		return true
	}
	// Windows Terminal newer versions support sixel.
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	if os.Getenv("CHAFAPREVIEW") == "1" {
		return true
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported returns true if the running environment likely supports a
// terminal inline preview. chafa counts as a valid fallback even when no
// inline or sixel protocol is detected.
func PreviewSupported() bool {
	supported := isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
	debugf("PreviewSupported -> %v (kitty=%v inline=%v sixel=%v chafa=%v)",
		supported, isKitty(), isInlineImageCapable(), isSixelCapable(), hasChafa())
	return supported
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // approximate pixel width (Cols * cellWidth)
	PixelHeight int // approximate pixel height (Rows * cellHeight)
}

// Character cell pixel assumptions and clamp ranges for preview placement.
const (
	previewCharW   = 8
	previewCharH   = 16
	previewMinCols = 6
	previewMinRows = 3
	previewMaxCols = 80
	previewMaxRows = 40
)

// computePreviewSize maps pixel dimensions into a target terminal cell size,
// preserving aspect ratio and never scaling up.
func computePreviewSize(w, h int) PreviewSize {
	maxPixelW := previewMaxCols * previewCharW
	maxPixelH := previewMaxRows * previewCharH

	scaleW := float64(maxPixelW) / float64(w)
	scaleH := float64(maxPixelH) / float64(h)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	targetW := int(math.Round(float64(w) * scale))
	targetH := int(math.Round(float64(h) * scale))

	cols := int(math.Round(float64(targetW) / float64(previewCharW)))
	rows := int(math.Round(float64(targetH) / float64(previewCharH)))

	if cols < previewMinCols {
		cols = previewMinCols
	}
	if cols > previewMaxCols {
		cols = previewMaxCols
	}
	if rows < previewMinRows {
		rows = previewMinRows
	}
	if rows > previewMaxRows {
		rows = previewMaxRows
	}

	return PreviewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * previewCharW,
		PixelHeight: rows * previewCharH,
	}
}

// downscaleForPreview shrinks img to fit the placement box so the escape
// payload stays small. Images already within the box are returned unchanged.
func downscaleForPreview(img *image.NRGBA, size PreviewSize) image.Image {
	b := img.Bounds()
	if b.Dx() <= size.PixelWidth && b.Dy() <= size.PixelHeight {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.PixelWidth, size.PixelHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// PreviewBuffer encodes a pixel buffer to the requested container format and
// previews it in the terminal. format should be lowercase like "png" or
// "jpeg"; if empty or unrecognized, PNG is used.
func PreviewBuffer(b imaging.Buffer, format string) error {
	if err := b.Validate(); err != nil {
		return err
	}
	img := b.ToNRGBA()
	size := computePreviewSize(b.Width, b.Height)
	scaled := downscaleForPreview(img, size)

	f := strings.ToLower(format)
	// Kitty prefers PNG payloads.
	backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	if backend == "kitty" || (backend == "" && isKitty()) {
		debugf("forcing png encoding for kitty backend")
		f = "png"
	}

	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
	} else {
		if err := png.Encode(&buf, scaled); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	return previewBytes(buf.Bytes(), f, size)
}

// previewBytes centralizes the logic of sending bytes via kitty/inline/sixel/chafa.
func previewBytes(blob []byte, format string, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}

	// PREVIEW_BACKEND forces a backend first but still falls back on error.
	if v := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); v != "" {
		debugf("PREVIEW_BACKEND override: %s", v)
		var err error
		switch v {
		case "kitty":
			err = sendKittyImage(blob, format, size)
		case "inline", "iterm", "wezterm":
			err = sendInlineImage(blob, format, size)
		case "sixel":
			err = sendSixelImage(blob, format, size)
		case "chafa":
			err = sendChafaImage(blob, size)
		default:
			err = fmt.Errorf("unknown PREVIEW_BACKEND value: %s", v)
		}
		if err == nil {
			return nil
		}
		debugf("override backend %s failed: %v", v, err)
	}

	// Detection order: inline-capable, kitty, sixel, chafa. Inline is tried
	// first because many modern terminals implement it reliably.
	if isInlineImageCapable() {
		debugf("attempting inline protocol")
		if err := sendInlineImage(blob, format, size); err != nil {
			debugf("inline protocol failed: %v", err)
			if isKitty() {
				if err2 := sendKittyImage(blob, "png", size); err2 == nil {
					return nil
				}
			}
			if isSixelCapable() {
				if err3 := sendSixelImage(blob, format, size); err3 == nil {
					return nil
				}
			}
			if hasChafa() {
				if err4 := sendChafaImage(blob, size); err4 == nil {
					return nil
				}
			}
			return fmt.Errorf("inline image preview failed: %w", err)
		}
		return nil
	}

	if isKitty() {
		debugf("attempting kitty protocol")
		if err := sendKittyImage(blob, "png", size); err != nil {
			debugf("kitty protocol failed: %v", err)
			if isSixelCapable() {
				if err2 := sendSixelImage(blob, format, size); err2 == nil {
					return nil
				}
			}
			if hasChafa() {
				if err3 := sendChafaImage(blob, size); err3 == nil {
					return nil
				}
			}
			return fmt.Errorf("kitty preview failed: %w", err)
		}
		return nil
	}

	if isSixelCapable() {
		if err := sendSixelImage(blob, format, size); err != nil {
			if hasChafa() {
				if err2 := sendChafaImage(blob, size); err2 == nil {
					return nil
				}
			}
			return fmt.Errorf("sixel preview failed: %w", err)
		}
		return nil
	}

	if hasChafa() {
		if err := sendChafaImage(blob, size); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no preview protocol matched")
}

// postImageNewlines returns how many newlines to emit after an image so the
// prompt lands just below it, clamped to avoid a large gap.
func postImageNewlines(requestedRows int) int {
	switch {
	case requestedRows <= 0:
		return 1
	case requestedRows <= 2:
		return 1
	case requestedRows <= 6:
		return 2
	case requestedRows <= 20:
		return 3
	default:
		return 4
	}
}

// sendKittyImage sends encoded image bytes using the kitty graphics protocol.
// The base64 payload is chunked into <=4096-byte pieces as the protocol
// requires; the first
// chunk carries the control keys and placement (c, r). Terminal responses are
// suppressed with q=2.
func sendKittyImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	debugf("sendKittyImage preparing to send %d bytes (raw %s)", len(data), format)

	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	debugf("kitty placement: cols=%d rows=%d", size.Cols, size.Rows)

	total := len(enc)
	first := true
	for pos := 0; pos < total; pos += chunkSize {
		end := pos + chunkSize
		if end > total {
			end = total
		}
		chunk := enc[pos:end]

		mVal := "0"
		if end != total {
			mVal = "1"
		}

		var header string
		if first {
			// a=T transmit+display, f=100 PNG payload, t=d direct payload.
			header = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\",
				size.Cols, size.Rows, mVal, chunk)
			first = false
		} else {
			// Subsequent chunks carry only m= and the payload.
			header = "\x1b_Gm=" + mVal + ";" + chunk + "\x1b\\"
		}
		if _, err := os.Stdout.Write([]byte(header)); err != nil {
			return err
		}
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}

// sendInlineImage emits the iTerm2-style inline image OSC 1337 sequence.
func sendInlineImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	debugf("sendInlineImage preparing to send %d bytes (format=%s)", len(data), format)
	enc := base64.StdEncoding.EncodeToString(data)
	name := "preview.png"
	if strings.HasPrefix(strings.ToLower(format), "j") {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=" + name + ";inline=1;" + meta + ":" + enc + "\a"
	n, err := os.Stdout.Write([]byte(seq))
	debugf("wrote %d bytes to stdout for inline image (err=%v)", n, err)

	for i := 0; i < postImageNewlines(0); i++ {
		fmt.Println()
	}
	return err
}

// sendSixelImage pipes the image bytes to an external sixel renderer
// (img2sixel), falling back to chafa. Implementing a sixel encoder here is
// beyond scope.
func sendSixelImage(data []byte, format string, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	debugf("sendSixelImage attempting img2sixel for %d bytes (format=%s)", len(data), format)

	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err == nil {
		debugf("img2sixel succeeded")
		for i := 0; i < postImageNewlines(0); i++ {
			fmt.Println()
		}
		return nil
	} else {
		debugf("img2sixel failed: %v", err)
	}

	if err := sendChafaImage(data, size); err != nil {
		return fmt.Errorf("no sixel renderer available: %w", err)
	}
	return nil
}

// sendChafaImage invokes chafa to render the image bytes as block symbols.
func sendChafaImage(data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	if os.Getenv("NO_CHAFA") == "1" {
		return fmt.Errorf("chafa usage disabled via NO_CHAFA=1")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}

	debugf("sendChafaImage invoking chafa for %d bytes", len(data))

	chafaSize := fmt.Sprintf("%dx%d", size.Cols, size.Rows)
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", chafaSize, "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}
