package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dcervenkov/mpmd-metadata/internal/sjpg"
	"github.com/dcervenkov/mpmd-metadata/internal/thumbnail"
	"github.com/spf13/cobra"
)

var (
	extractOutput string
	extractStrips string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.gcode>",
	Short: "Extract the embedded SJPG container from a processed file",
	Long: `Extract the embedded thumbnail from a previously processed G-code
file. The raw SJPG container is written next to the input by default;
--strips additionally writes each JPEG strip as an individual file.

Examples:
  mpmd-metadata extract model.gcode
  mpmd-metadata extract model.gcode -o preview.sjpg
  mpmd-metadata extract model.gcode --strips ./strips`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output path for the SJPG container (default: <input>.sjpg)")
	extractCmd.Flags().StringVar(&extractStrips, "strips", "", "directory to write individual JPEG strips to")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	encoded, ok := thumbnail.Reassemble(strings.Split(string(content), "\n"))
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No embedded thumbnail found.")
		return nil
	}
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode thumbnail hex: %w", err)
	}

	outputPath := extractOutput
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + ".sjpg"
	}
	if err := os.WriteFile(outputPath, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Extracted: %s (%d bytes)\n", outputPath, len(raw))
	}

	if extractStrips == "" {
		return nil
	}

	container, err := sjpg.Decode(raw)
	if err != nil {
		return fmt.Errorf("parse SJPG container: %w", err)
	}
	if err := os.MkdirAll(extractStrips, 0755); err != nil {
		return fmt.Errorf("create strip directory: %w", err)
	}
	for i, strip := range container.Strips {
		name := filepath.Join(extractStrips, fmt.Sprintf("strip_%03d.jpg", i))
		if err := os.WriteFile(name, strip, 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d strips to %s\n", len(container.Strips), extractStrips)
	}
	return nil
}
