// Package metadata carries the print settings rendered into toolpath files.
package metadata

import "errors"

// ErrUnavailable reports that no usable print settings could be resolved.
// Callers treat this as "skip the metadata lines", not as a hard failure.
var ErrUnavailable = errors.New("print metadata unavailable")

// PrintMetadata is the record rendered into injected comment lines.
type PrintMetadata struct {
	// Material is the filament material name, e.g. "PLA".
	Material string
	// InfillDensity is the infill percentage.
	InfillDensity float64
	// FilamentMeters is the filament length in meters, captured from the
	// document's usage marker during injection.
	FilamentMeters float64
}

// Source resolves print settings from a configuration backend.
type Source interface {
	PrintMetadata() (PrintMetadata, error)
}

// Static is a Source backed by fixed values, typically collected from flags
// and the config file.
type Static struct {
	Meta PrintMetadata
}

// PrintMetadata returns the fixed record, or ErrUnavailable when neither a
// material nor an infill density was supplied.
func (s Static) PrintMetadata() (PrintMetadata, error) {
	if s.Meta.Material == "" && s.Meta.InfillDensity == 0 {
		return PrintMetadata{}, ErrUnavailable
	}
	return s.Meta, nil
}
