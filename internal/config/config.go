// Package config manages application configuration.
package config

// Config represents the application configuration.
type Config struct {
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Metadata  MetadataConfig  `yaml:"metadata"`
}

// ThumbnailConfig controls preview image embedding.
type ThumbnailConfig struct {
	// Width and Height are the snapshot dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Quality is the JPEG quality of the generated strips, 1-100.
	Quality int `yaml:"quality"`
	// FragmentHeight is the maximum strip height in pixels.
	FragmentHeight int `yaml:"fragment_height"`
	// ChunkSize is the number of hex characters per thumbnail data line.
	ChunkSize int `yaml:"chunk_size"`
}

// MetadataConfig carries default print settings used when none are passed on
// the command line.
type MetadataConfig struct {
	Material      string  `yaml:"material"`
	InfillDensity float64 `yaml:"infill_density"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Thumbnail: ThumbnailConfig{
			Width:          140,
			Height:         140,
			Quality:        30,
			FragmentHeight: 16,
			ChunkSize:      80,
		},
	}
}
