// Package snapshot resolves preview raster images for thumbnail embedding.
package snapshot

import "image"

// Provider produces a raster snapshot of the sliced model.
type Provider interface {
	// Name returns the provider identifier (e.g. "file", "svg").
	Name() string

	// Snapshot returns a raster image of exactly width x height pixels.
	Snapshot(width, height int) (image.Image, error)

	// Validate checks if the provider can produce a snapshot.
	Validate() error
}
