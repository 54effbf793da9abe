package gcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcervenkov/mpmd-metadata/internal/metadata"
)

// Marker lines recognized in slicer output, matched as literal prefixes on
// trimmed line content.
const (
	// FilamentUsedMarker opens the line carrying filament usage in meters,
	// e.g. ";Filament used: 12.500m".
	FilamentUsedMarker = ";Filament used: "
	// GeneratorMarker opens the slicer signature line.
	GeneratorMarker = ";Generated with Cura"
)

// Labels of the injected lines.
const (
	filamentUsedLabel  = ";FilamentUsed:"
	filamentTypeLabel  = ";FilamentType:"
	infillDensityLabel = ";InfillDensity:"
)

// Inject splices print metadata and a thumbnail block into doc.
//
// In every segment containing a filament-usage marker, the marker line is
// replaced with a usage line carrying the value converted from meters to
// millimeters, preceded by an infill-density line and a material line, in
// that order. The captured meter value is recorded in meta.FilamentMeters.
// The thumbnail block is inserted immediately after the first
// generator-signature line of a segment.
//
// A nil meta skips the metadata lines; an empty block skips the thumbnail.
// Each segment is rewritten in a single forward pass over its lines, so
// duplicate marker text or shifting indices cannot misplace an insertion.
func Inject(doc *Document, meta *metadata.PrintMetadata, block []string) {
	if meta == nil && len(block) == 0 {
		return
	}
	for i, segment := range doc.Segments {
		doc.Segments[i] = injectSegment(segment, meta, block)
	}
}

func injectSegment(segment string, meta *metadata.PrintMetadata, block []string) string {
	lines := strings.Split(segment, "\n")
	out := make([]string, 0, len(lines)+len(block)+2)
	thumbnailDone := len(block) == 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if meta != nil && strings.HasPrefix(trimmed, FilamentUsedMarker) {
			if meters, ok := parseFilamentMeters(trimmed); ok {
				meta.FilamentMeters = meters
				out = append(out,
					infillDensityLabel+strconv.FormatFloat(meta.InfillDensity, 'g', -1, 64),
					filamentTypeLabel+meta.Material,
					fmt.Sprintf("%s%.2f", filamentUsedLabel, meters*1000))
				continue
			}
		}

		out = append(out, line)

		if !thumbnailDone && strings.HasPrefix(trimmed, GeneratorMarker) {
			out = append(out, block...)
			thumbnailDone = true
		}
	}
	return strings.Join(out, "\n")
}

// parseFilamentMeters extracts the numeric value from a trimmed
// filament-usage marker line. An unparseable value leaves the line untouched
// upstream.
func parseFilamentMeters(line string) (float64, bool) {
	value := strings.TrimSpace(strings.TrimPrefix(line, FilamentUsedMarker))
	value = strings.TrimSuffix(value, "m")
	meters, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return meters, true
}
