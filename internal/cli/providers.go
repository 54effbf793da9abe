package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dcervenkov/mpmd-metadata/internal/snapshot"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available snapshot providers",
	Long: `List the snapshot providers that can supply a preview image.

The provider is chosen automatically from the --image file extension.

Examples:
  mpmd-metadata process model.gcode -i preview.png   (file provider)
  mpmd-metadata process model.gcode -i preview.svg   (svg provider)`,
	Run: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXTENSIONS\tDESCRIPTION")
	for _, e := range snapshot.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, strings.Join(e.Extensions, ", "), e.Description)
	}
	w.Flush()
}
