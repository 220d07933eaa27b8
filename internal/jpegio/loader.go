package jpegio

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/phototone/tonematch/internal/raster"
)

// supportedExt reports whether the path carries a JPEG extension.
func supportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// Load reads a JPEG file into an owned RGB pixel buffer.
//
// Non-JPEG extensions are rejected up front with a descriptive error; a
// file that fails to decode reports the path it came from.
func Load(path string) (*raster.PixelBuffer, error) {
	if !supportedExt(path) {
		return nil, fmt.Errorf("unsupported file format %q: only JPEG (.jpg, .jpeg) is supported", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return raster.FromImage(img)
}

// FileInfo describes a JPEG file on disk.
type FileInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	Path          string `json:"path"`
}

// Info returns the dimensions and size of a JPEG file without keeping the
// decoded image around.
func Info(path string) (*FileInfo, error) {
	if !supportedExt(path) {
		return nil, fmt.Errorf("unsupported file format %q: only JPEG (.jpg, .jpeg) is supported", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		FileSizeBytes: stat.Size(),
		Path:          path,
	}, nil
}
