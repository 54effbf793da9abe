package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

func init() {
	DefaultRegistry.Register(Entry{
		Name:        "svg",
		Extensions:  []string{".svg"},
		Description: "Vector preview rasterized at the source view box size",
		New:         func(path string) Provider { return &SVGProvider{Path: path} },
	})
}

// SVGProvider rasterizes a vector preview from disk.
type SVGProvider struct {
	Path string
}

// Name returns the provider identifier.
func (p *SVGProvider) Name() string { return "svg" }

// Validate checks that the file exists and parses as SVG.
func (p *SVGProvider) Validate() error {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("preview image unavailable: %w", err)
	}
	if _, err := oksvg.ReadIconStream(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse SVG: %w", err)
	}
	return nil
}

// Snapshot renders the SVG onto a white canvas at its view box size and
// scales the result to width x height.
func (p *SVGProvider) Snapshot(width, height int) (image.Image, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read preview image: %w", err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("SVG has no usable view box: %s", p.Path)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return fit(img, width, height), nil
}
