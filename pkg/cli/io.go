package cli

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/breftejk/GraphicsEditor/pkg/imaging"
)

// LoadImage reads a file from disk into a pixel buffer. PNG, JPEG, GIF and
// PPM (P3/P6) are supported; the format is detected from the file signature.
// JPEG files carrying an EXIF orientation tag are auto-oriented.
func LoadImage(path string) (imaging.Buffer, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imaging.Buffer{}, "", err
	}

	format := detectFormat(data)
	if format == "ppm" {
		b, err := DecodePPM(bytes.NewReader(data))
		if err != nil {
			return imaging.Buffer{}, "", fmt.Errorf("decode %s: %w", path, err)
		}
		return b, format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return imaging.Buffer{}, "", fmt.Errorf("decode %s: %w", path, err)
	}
	b := imaging.FromImage(img)

	if format == "jpeg" {
		if o, oerr := extractJPEGOrientation(data); oerr == nil && o > 1 && o <= 8 {
			debugf("auto-orienting jpeg (orientation=%d)", o)
			if oriented, aerr := imaging.AutoOrient(b, o); aerr == nil {
				b = oriented
			}
		}
	}
	Log.Debug("loaded image", "path", path, "format", format, "width", b.Width, "height", b.Height)
	return b, format, nil
}

// detectFormat sniffs the file signature.
func detectFormat(data []byte) string {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "gif"
	case len(data) >= 2 && data[0] == 'P' && (data[1] == '3' || data[1] == '6'):
		return "ppm"
	default:
		return ""
	}
}

// SaveImage writes a pixel buffer to disk using the format inferred from the
// filename extension. Supports .png, .jpg/.jpeg, .gif and .ppm; anything else
// defaults to PNG.
func SaveImage(path string, b imaging.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var encErr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(f, b.ToNRGBA(), &jpeg.Options{Quality: 92})
	case ".gif":
		encErr = gif.Encode(f, b.ToNRGBA(), nil)
	case ".ppm", ".pnm":
		encErr = EncodePPM(f, b)
	default:
		encErr = png.Encode(f, b.ToNRGBA())
	}
	if encErr != nil {
		return encErr
	}
	Log.Debug("saved image", "path", path, "width", b.Width, "height", b.Height)
	return nil
}

// GetImageInfo returns a short info string for a buffer.
func GetImageInfo(b imaging.Buffer, format string) string {
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d", strings.ToUpper(format), b.Width, b.Height)
}

// extractJPEGOrientation returns the EXIF orientation (1..8) from JPEG bytes.
// It scans the APP1 segment for the TIFF header and walks IFD0 for tag 0x0112;
// nothing else from EXIF is read.
func extractJPEGOrientation(data []byte) (int, error) {
	tiffStart, err := findTIFFStart(data)
	if err != nil {
		return 0, err
	}
	return readOrientationTag(data, tiffStart)
}

// findTIFFStart walks JPEG segments for an APP1 Exif block and returns the
// offset where the TIFF header begins.
func findTIFFStart(data []byte) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("data too short")
	}
	i := 2 // skip initial 0xFF 0xD8
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 {
			if i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
				return i + 10, nil
			}
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("no exif segment")
}

func readOrientationTag(data []byte, tiffStart int) (int, error) {
	if tiffStart < 0 || tiffStart+8 > len(data) {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch {
	case data[tiffStart] == 'M' && data[tiffStart+1] == 'M':
		order = binary.BigEndian
	case data[tiffStart] == 'I' && data[tiffStart+1] == 'I':
		order = binary.LittleEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}

	ifdOff := int(order.Uint32(data[tiffStart+4 : tiffStart+8]))
	absIfd := tiffStart + ifdOff
	if ifdOff <= 0 || absIfd+2 > len(data) {
		return 0, fmt.Errorf("ifd truncated")
	}
	nEntries := int(order.Uint16(data[absIfd : absIfd+2]))
	for e := 0; e < nEntries; e++ {
		ent := absIfd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		typ := order.Uint16(data[ent+2 : ent+4])
		if tag != 0x0112 {
			continue
		}
		if typ != 3 { // SHORT
			return 0, fmt.Errorf("unexpected orientation type %d", typ)
		}
		v := int(order.Uint16(data[ent+8 : ent+10]))
		return v, nil
	}
	return 0, fmt.Errorf("orientation tag not found")
}

// parseDimension is a small shared helper for the PPM reader.
func parseDimension(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid dimension %q", tok)
	}
	return v, nil
}
