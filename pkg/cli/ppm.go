package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/breftejk/GraphicsEditor/pkg/imaging"
)

// PPM codec. The binary P6 and plain-text P3 variants are supported for
// reading; writing always emits P6. Only 8-bit (maxval <= 255) files are
// accepted since the engine works on byte samples.

// EncodePPM writes the buffer as a binary P6 file.
func EncodePPM(w io.Writer, b imaging.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Width, b.Height)
	if _, err := bw.Write(b.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// DecodePPM reads a P6 or P3 file into a buffer.
func DecodePPM(r io.Reader) (imaging.Buffer, error) {
	br := bufio.NewReader(r)

	magic, err := nextPPMToken(br)
	if err != nil {
		return imaging.Buffer{}, fmt.Errorf("ppm: %w", err)
	}
	if magic != "P6" && magic != "P3" {
		return imaging.Buffer{}, fmt.Errorf("ppm: unsupported magic %q", magic)
	}

	var dims [3]int
	for i := range dims {
		tok, err := nextPPMToken(br)
		if err != nil {
			return imaging.Buffer{}, fmt.Errorf("ppm: header: %w", err)
		}
		v, err := parseDimension(tok)
		if err != nil {
			return imaging.Buffer{}, fmt.Errorf("ppm: %w", err)
		}
		dims[i] = v
	}
	width, height, maxval := dims[0], dims[1], dims[2]
	if maxval > 255 {
		return imaging.Buffer{}, fmt.Errorf("ppm: unsupported maxval %d", maxval)
	}

	out := imaging.NewBuffer(width, height)
	if magic == "P6" {
		// The header's single-whitespace separator was already consumed by
		// the tokenizer; raw samples follow.
		if _, err := io.ReadFull(br, out.Pix); err != nil {
			return imaging.Buffer{}, fmt.Errorf("ppm: pixel data: %w", err)
		}
	} else {
		for i := range out.Pix {
			tok, err := nextPPMToken(br)
			if err != nil {
				return imaging.Buffer{}, fmt.Errorf("ppm: pixel data: %w", err)
			}
			v, err := strconv.Atoi(tok)
			if err != nil || v < 0 || v > maxval {
				return imaging.Buffer{}, fmt.Errorf("ppm: invalid sample %q", tok)
			}
			out.Pix[i] = byte(v)
		}
	}

	if maxval != 255 {
		for i, v := range out.Pix {
			out.Pix[i] = byte(int(v) * 255 / maxval)
		}
	}
	return out, nil
}

// nextPPMToken reads the next whitespace-delimited token, skipping '#'
// comments that run to end of line. The single whitespace byte after the
// token is consumed, which is what the P6 raster start requires.
func nextPPMToken(br *bufio.Reader) (string, error) {
	var tok []byte
	inComment := false
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		if inComment {
			if c == '\n' {
				inComment = false
			}
			continue
		}
		switch c {
		case '#':
			if len(tok) > 0 {
				// comment terminates the token; push the '#' back for the
				// next call to skip
				_ = br.UnreadByte()
				return string(tok), nil
			}
			inComment = true
		case ' ', '\t', '\r', '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}
