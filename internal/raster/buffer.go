package raster

import (
	"bytes"
	"fmt"
	"image"
)

// Channels is the number of color channels in a PixelBuffer. The channel
// order is fixed to R, G, B.
const Channels = 3

// PixelBuffer is an interleaved 8-bit RGB raster in row-major order.
//
// Pix holds Width*Height*Channels bytes; the pixel at (x, y) starts at
// (y*Width+x)*Channels. The buffer shape never changes after creation;
// operations that change dimensions return a new buffer.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed (black) buffer of the given dimensions.
//
// Returns an error if either dimension is smaller than 1; the module never
// produces zero-size buffers.
func New(width, height int) (*PixelBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d: width and height must be at least 1", width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}, nil
}

// Validate reports whether the buffer is usable: non-nil, positive
// dimensions, and a pixel slice of the expected length.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil pixel buffer")
	}
	if b.Width < 1 || b.Height < 1 {
		return fmt.Errorf("empty pixel buffer: dimensions %dx%d", b.Width, b.Height)
	}
	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("corrupt pixel buffer: have %d bytes, want %d", len(b.Pix), want)
	}
	return nil
}

// Offset returns the index into Pix of the first channel of pixel (x, y).
// No bounds checking is performed.
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// RGB returns the color components of pixel (x, y).
// No bounds checking is performed.
func (b *PixelBuffer) RGB(x, y int) (r, g, bl uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// SetRGB stores the color components of pixel (x, y).
// No bounds checking is performed.
func (b *PixelBuffer) SetRGB(x, y int, r, g, bl uint8) {
	i := b.Offset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// Clone returns an independent deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two buffers have identical dimensions and pixel data.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Width == other.Width && b.Height == other.Height && bytes.Equal(b.Pix, other.Pix)
}

// FromImage converts any image.Image into an owned RGB pixel buffer,
// discarding alpha. 16-bit sources are scaled down to 8 bits.
func FromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("nil source image")
	}
	bounds := img.Bounds()
	out, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, fmt.Errorf("source image has %w", err)
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(bl >> 8)
			i += Channels
		}
	}
	return out, nil
}

// ToNRGBA converts the buffer to a standard library image with full opacity.
// The returned image owns its pixel data; mutating it does not affect b.
func (b *PixelBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	src := 0
	for y := 0; y < b.Height; y++ {
		dst := y * img.Stride
		for x := 0; x < b.Width; x++ {
			img.Pix[dst] = b.Pix[src]
			img.Pix[dst+1] = b.Pix[src+1]
			img.Pix[dst+2] = b.Pix[src+2]
			img.Pix[dst+3] = 0xFF
			src += Channels
			dst += 4
		}
	}
	return img
}

// ChannelStats holds the mean value of each channel of a buffer.
type ChannelStats struct {
	Mean [Channels]float64
}

// Stats computes per-channel means over the whole buffer. Useful for tests
// and for verifying statistical transfer results.
func (b *PixelBuffer) Stats() ChannelStats {
	var sum [Channels]float64
	for i := 0; i < len(b.Pix); i += Channels {
		sum[0] += float64(b.Pix[i])
		sum[1] += float64(b.Pix[i+1])
		sum[2] += float64(b.Pix[i+2])
	}
	n := float64(b.Width * b.Height)
	var s ChannelStats
	for c := 0; c < Channels; c++ {
		s.Mean[c] = sum[c] / n
	}
	return s
}
