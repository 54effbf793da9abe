package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dcervenkov/mpmd-metadata/internal/config"
	"github.com/dcervenkov/mpmd-metadata/internal/gcode"
	"github.com/dcervenkov/mpmd-metadata/internal/metadata"
	"github.com/dcervenkov/mpmd-metadata/internal/sjpg"
	"github.com/dcervenkov/mpmd-metadata/internal/snapshot"
	"github.com/dcervenkov/mpmd-metadata/internal/thumbnail"
	"github.com/spf13/cobra"
)

var (
	processImage       string
	processOutput      string
	processQuality     int
	processMaterial    string
	processInfill      float64
	processNoThumbnail bool
)

var processCmd = &cobra.Command{
	Use:   "process <file.gcode>",
	Short: "Embed a thumbnail and print metadata into a G-code file",
	Long: `Embed a preview thumbnail and print metadata into a G-code file.

The preview image is converted to the firmware's segmented JPEG format,
hex-encoded and inserted after the slicer signature line as W220/W221/W222
sentinel lines. The filament-usage line is rewritten in millimeters and
preceded by infill density and material lines.

Missing inputs degrade gracefully: without a preview image only the
metadata lines are added, without material/infill settings only the
thumbnail is embedded, and the file is rewritten unchanged when neither
is available.

Environment variables:
  MPMD_MATERIAL       default material name
  MPMD_INFILL         default infill density percent
  MPMD_NO_THUMBNAIL   skip thumbnail embedding

Examples:
  mpmd-metadata process model.gcode -i preview.png
  mpmd-metadata process model.gcode -i preview.svg -o out.gcode
  mpmd-metadata process model.gcode --material PLA --infill 20 --no-thumbnail`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processImage, "image", "i", "", "preview image (png, jpg or svg)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "output file path (default: rewrite in place)")
	processCmd.Flags().IntVar(&processQuality, "quality", 0, "JPEG quality, 1-100 (default from config)")
	processCmd.Flags().StringVar(&processMaterial, "material", "", "filament material name")
	processCmd.Flags().Float64Var(&processInfill, "infill", 0, "infill density percent")
	processCmd.Flags().BoolVar(&processNoThumbnail, "no-thumbnail", false, "skip thumbnail embedding")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if !gcode.IsToolpathFile(inputPath) {
		return fmt.Errorf("unsupported file format: %s", filepath.Ext(inputPath))
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}
	doc := gcode.Parse(string(content))
	slog.Debug("parsed toolpath document", "segments", len(doc.Segments))

	meta := resolveMetadata(cmd, cfg)
	block := buildThumbnailBlock(cfg)

	gcode.Inject(doc, meta, block)

	outputPath := processOutput
	if outputPath == "" {
		outputPath = inputPath
	}
	if err := os.WriteFile(outputPath, []byte(doc.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Processed: %s\n", outputPath)
	}
	return nil
}

// resolveMetadata merges flags, environment and config into a print-metadata
// record. It returns nil when no usable settings exist, which skips the
// metadata lines without failing the run.
func resolveMetadata(cmd *cobra.Command, cfg *config.Config) *metadata.PrintMetadata {
	material := processMaterial
	if material == "" {
		material = config.GetEnvOrDefault("MPMD_MATERIAL", cfg.Metadata.Material)
	}

	infill := cfg.Metadata.InfillDensity
	if env := os.Getenv("MPMD_INFILL"); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil {
			infill = v
		} else {
			slog.Warn("ignoring unparseable MPMD_INFILL", "value", env)
		}
	}
	if cmd.Flags().Changed("infill") {
		infill = processInfill
	}

	src := metadata.Static{Meta: metadata.PrintMetadata{
		Material:      material,
		InfillDensity: infill,
	}}
	meta, err := src.PrintMetadata()
	if err != nil {
		slog.Warn("skipping print metadata lines", "reason", err)
		return nil
	}
	return &meta
}

// buildThumbnailBlock runs the snapshot, SJPG and hex stages. Any failure is
// logged and yields an empty block; a partial thumbnail is never produced.
func buildThumbnailBlock(cfg *config.Config) []string {
	if processNoThumbnail || config.GetEnvBool("MPMD_NO_THUMBNAIL") {
		slog.Debug("thumbnail embedding disabled")
		return nil
	}
	if processImage == "" {
		slog.Debug("no preview image given, skipping thumbnail")
		return nil
	}

	provider, err := snapshot.ForPath(processImage)
	if err != nil {
		slog.Warn("skipping thumbnail", "reason", err)
		return nil
	}
	if err := provider.Validate(); err != nil {
		slog.Warn("skipping thumbnail", "provider", provider.Name(), "reason", err)
		return nil
	}

	slog.Debug("creating thumbnail image", "provider", provider.Name())
	img, err := provider.Snapshot(cfg.Thumbnail.Width, cfg.Thumbnail.Height)
	if err != nil {
		slog.Error("failed to create snapshot image", "error", err)
		return nil
	}

	quality := cfg.Thumbnail.Quality
	if processQuality != 0 {
		quality = processQuality
	}

	slog.Debug("converting thumbnail image to SJPG", "quality", quality)
	container, err := sjpg.Encode(img, sjpg.Options{
		Quality:        quality,
		FragmentHeight: cfg.Thumbnail.FragmentHeight,
	})
	if err != nil {
		slog.Error("failed to convert snapshot to SJPG", "error", err)
		return nil
	}

	return thumbnail.Build(thumbnail.EncodeHex(container), cfg.Thumbnail.ChunkSize)
}
