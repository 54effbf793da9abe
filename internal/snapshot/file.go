package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	DefaultRegistry.Register(Entry{
		Name:        "file",
		Extensions:  []string{".png", ".jpg", ".jpeg"},
		Description: "Pre-rendered raster preview (PNG or JPEG)",
		New:         func(path string) Provider { return &FileProvider{Path: path} },
	})
}

// FileProvider loads a pre-rendered preview image from disk.
type FileProvider struct {
	Path string
}

// Name returns the provider identifier.
func (p *FileProvider) Name() string { return "file" }

// Validate checks that the file exists and has a supported extension.
func (p *FileProvider) Validate() error {
	if _, err := os.Stat(p.Path); err != nil {
		return fmt.Errorf("preview image unavailable: %w", err)
	}
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".png", ".jpg", ".jpeg":
		return nil
	default:
		return fmt.Errorf("unsupported image format: %s", filepath.Ext(p.Path))
	}
}

// Snapshot decodes the image and scales it onto a white width x height
// canvas, preserving the aspect ratio.
func (p *FileProvider) Snapshot(width, height int) (image.Image, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read preview image: %w", err)
	}

	var img image.Image
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported image format: %s", filepath.Ext(p.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode preview image: %w", err)
	}

	return fit(img, width, height), nil
}
