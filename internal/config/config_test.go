package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Thumbnail.Width != 140 || cfg.Thumbnail.Height != 140 {
		t.Errorf("thumbnail dimensions = %dx%d, want 140x140", cfg.Thumbnail.Width, cfg.Thumbnail.Height)
	}
	if cfg.Thumbnail.Quality != 30 {
		t.Errorf("quality = %d, want 30", cfg.Thumbnail.Quality)
	}
	if cfg.Thumbnail.FragmentHeight != 16 {
		t.Errorf("fragment height = %d, want 16", cfg.Thumbnail.FragmentHeight)
	}
	if cfg.Thumbnail.ChunkSize != 80 {
		t.Errorf("chunk size = %d, want 80", cfg.Thumbnail.ChunkSize)
	}
	if cfg.Metadata.Material != "" || cfg.Metadata.InfillDensity != 0 {
		t.Errorf("expected empty default metadata, got %+v", cfg.Metadata)
	}
}

func TestLoaderMissingFileReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	if loader.Exists() {
		t.Fatal("expected config file to not exist")
	}
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Thumbnail.Quality != 30 {
		t.Errorf("quality = %d, want default 30", cfg.Thumbnail.Quality)
	}
}

func TestLoaderSaveLoadRoundTrip(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	cfg := DefaultConfig()
	cfg.Thumbnail.Quality = 55
	cfg.Metadata.Material = "PETG"
	cfg.Metadata.InfillDensity = 15

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !loader.Exists() {
		t.Fatal("expected config file to exist after Save")
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Thumbnail.Quality != 55 {
		t.Errorf("quality = %d, want 55", loaded.Thumbnail.Quality)
	}
	if loaded.Metadata.Material != "PETG" {
		t.Errorf("material = %q, want %q", loaded.Metadata.Material, "PETG")
	}
	if loaded.Metadata.InfillDensity != 15 {
		t.Errorf("infill = %v, want 15", loaded.Metadata.InfillDensity)
	}
}

func TestLoaderPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "metadata:\n  material: ABS\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewLoaderWithPath(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Metadata.Material != "ABS" {
		t.Errorf("material = %q, want %q", cfg.Metadata.Material, "ABS")
	}
	if cfg.Thumbnail.Quality != 30 {
		t.Errorf("unset quality = %d, want default 30", cfg.Thumbnail.Quality)
	}
}

func TestLoaderExpandsEnvVars(t *testing.T) {
	t.Setenv("MPMD_TEST_MATERIAL", "TPU")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "metadata:\n  material: ${MPMD_TEST_MATERIAL}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewLoaderWithPath(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Metadata.Material != "TPU" {
		t.Errorf("material = %q, want %q", cfg.Metadata.Material, "TPU")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("MPMD_TEST_SET", "value")
	if got := GetEnvOrDefault("MPMD_TEST_SET", "fallback"); got != "value" {
		t.Errorf("GetEnvOrDefault = %q, want %q", got, "value")
	}
	if got := GetEnvOrDefault("MPMD_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnvOrDefault = %q, want %q", got, "fallback")
	}

	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"1", true},
		{"YES", true},
		{"false", false},
		{"", false},
		{"0", false},
	}
	for _, tc := range tests {
		t.Setenv("MPMD_TEST_BOOL", tc.value)
		if got := GetEnvBool("MPMD_TEST_BOOL"); got != tc.expected {
			t.Errorf("GetEnvBool(%q) = %v, want %v", tc.value, got, tc.expected)
		}
	}
}
