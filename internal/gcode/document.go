// Package gcode models slicer-generated toolpath files and splices derived
// metadata into them.
package gcode

import (
	"path/filepath"
	"strings"
)

// LayerPrefix marks the first line of a layer segment in Cura output.
const LayerPrefix = ";LAYER:"

// Document is a toolpath file split into ordered layer segments. Segments
// are raw substrings of the source text, so joining them reproduces the file
// byte for byte. Injection mutates segments in place; it never removes or
// reorders them.
type Document struct {
	Segments []string
}

// Parse splits content into layer segments at lines starting with
// LayerPrefix. Everything before the first layer line (the slicer header)
// forms the leading segment.
func Parse(content string) *Document {
	var segments []string
	start := 0
	for i := 0; i < len(content); i++ {
		if i > 0 && content[i-1] != '\n' {
			continue
		}
		if i > start && strings.HasPrefix(content[i:], LayerPrefix) {
			segments = append(segments, content[start:i])
			start = i
		}
	}
	segments = append(segments, content[start:])
	return &Document{Segments: segments}
}

// String reassembles the document.
func (d *Document) String() string {
	return strings.Join(d.Segments, "")
}

// IsToolpathFile reports whether path has a recognized G-code extension.
func IsToolpathFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gcode", ".gco", ".g":
		return true
	default:
		return false
	}
}
