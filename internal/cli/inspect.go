package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dcervenkov/mpmd-metadata/internal/sjpg"
	"github.com/dcervenkov/mpmd-metadata/internal/thumbnail"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.gcode>",
	Short: "Show the embedded thumbnail and metadata of a processed file",
	Long: `Show details of a previously processed G-code file: the injected
metadata lines and the structure of the embedded SJPG container.

Examples:
  mpmd-metadata inspect model.gcode`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// metadataLabels are the injected comment-line prefixes shown by inspect.
var metadataLabels = []string{";FilamentType:", ";InfillDensity:", ";FilamentUsed:"}

func runInspect(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	lines := strings.Split(string(content), "\n")
	out := cmd.OutOrStdout()

	found := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, label := range metadataLabels {
			if strings.HasPrefix(trimmed, label) {
				fmt.Fprintln(out, trimmed)
				found = true
			}
		}
	}
	if !found {
		fmt.Fprintln(out, "No metadata lines found.")
	}

	encoded, ok := thumbnail.Reassemble(lines)
	if !ok {
		fmt.Fprintln(out, "No embedded thumbnail found.")
		return nil
	}

	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode thumbnail hex: %w", err)
	}
	container, err := sjpg.Decode(raw)
	if err != nil {
		return fmt.Errorf("parse SJPG container: %w", err)
	}

	fmt.Fprintf(out, "\nSJPG %s, %dx%d px, %d strips, fragment height %d px, %d payload bytes\n",
		container.Version, container.Width, container.Height,
		len(container.Strips), container.FragmentHeight, container.PayloadSize())

	rows := make([][]string, len(container.Strips))
	for i, strip := range container.Strips {
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(container.StripRows(i)),
			strconv.Itoa(len(strip)),
		}
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Strip", "Rows", "Bytes"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight},
	))
	return nil
}
