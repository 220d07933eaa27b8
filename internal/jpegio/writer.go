package jpegio

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"

	"github.com/phototone/tonematch/internal/raster"
)

// DefaultQuality is the JPEG encoding quality used when none is given.
const DefaultQuality = 95

// SaveOptions controls JPEG encoding.
type SaveOptions struct {
	// Quality is the JPEG quality (1-100). Zero selects DefaultQuality.
	Quality int

	// DPI, when positive, is written into a JFIF density segment so print
	// software can recover the physical size of the image.
	DPI int
}

// Save encodes the buffer as JPEG and writes it to path.
func Save(path string, buf *raster.PixelBuffer, opts SaveOptions) error {
	if !supportedExt(path) {
		return fmt.Errorf("unsupported file format %q: only JPEG (.jpg, .jpeg) is supported", path)
	}
	if err := buf.Validate(); err != nil {
		return err
	}

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("invalid jpeg quality %d: must be in [1, 100]", quality)
	}

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, buf.ToNRGBA(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}

	data := encoded.Bytes()
	if opts.DPI > 0 {
		var err error
		data, err = withJFIFDensity(data, opts.DPI)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// JFIF APP0 constants.
const (
	markerSOI  = 0xD8
	markerAPP0 = 0xE0

	// densityInch marks JFIF density units as pixels per inch.
	densityInch = 0x01
)

// withJFIFDensity returns the JPEG stream with its JFIF APP0 density set to
// dpi pixels per inch. If the stream already starts with a JFIF segment the
// density fields are rewritten in place; otherwise a fresh segment is
// inserted directly after SOI, which is where the standard library encoder
// leaves a gap.
func withJFIFDensity(data []byte, dpi int) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, fmt.Errorf("not a jpeg stream: missing SOI marker")
	}
	if dpi > 0xFFFF {
		return nil, fmt.Errorf("invalid dpi %d: exceeds JFIF density range", dpi)
	}

	hi, lo := byte(dpi>>8), byte(dpi&0xFF)

	// Existing JFIF APP0 right after SOI: patch units and densities.
	if len(data) >= 20 && data[2] == 0xFF && data[3] == markerAPP0 &&
		bytes.Equal(data[6:11], []byte("JFIF\x00")) {
		out := append([]byte(nil), data...)
		out[13] = densityInch
		out[14], out[15] = hi, lo
		out[16], out[17] = hi, lo
		return out, nil
	}

	segment := []byte{
		0xFF, markerAPP0,
		0x00, 0x10, // segment length: 16
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02, // JFIF version 1.02
		densityInch,
		hi, lo, // X density
		hi, lo, // Y density
		0x00, 0x00, // no thumbnail
	}

	out := make([]byte, 0, len(data)+len(segment))
	out = append(out, data[:2]...)
	out = append(out, segment...)
	out = append(out, data[2:]...)
	return out, nil
}
