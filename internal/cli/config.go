package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dcervenkov/mpmd-metadata/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage the mpmd-metadata configuration.

Config file location: ~/.mpmd-metadata/config.yaml

Subcommands:
  show    display the current configuration
  init    create a default config file
  set     change a configuration value
  path    print the config file path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a default configuration file.

Fails if the file already exists; use --force to overwrite it.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value.

Supported keys:
  thumbnail.quality          JPEG quality, 1-100
  thumbnail.fragment_height  strip height in pixels
  thumbnail.chunk_size       hex characters per thumbnail line
  metadata.material          default material name
  metadata.infill_density    default infill percent, 0-100

Examples:
  mpmd-metadata config set thumbnail.quality 50
  mpmd-metadata config set metadata.material PLA`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("initialize config loader: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "Config file: (using defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "Environment variables:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{"MPMD_MATERIAL", "default material name"},
		{"MPMD_INFILL", "default infill density"},
		{"MPMD_NO_THUMBNAIL", "skip thumbnail embedding"},
	}
	for _, ev := range envVars {
		value := os.Getenv(ev.key)
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, value)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("initialize config loader: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file created: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	switch key {
	case "thumbnail.quality":
		quality, err := strconv.Atoi(value)
		if err != nil || quality < 1 || quality > 100 {
			return fmt.Errorf("quality must be an integer between 1 and 100: %s", value)
		}
		cfg.Thumbnail.Quality = quality

	case "thumbnail.fragment_height":
		height, err := strconv.Atoi(value)
		if err != nil || height < 1 {
			return fmt.Errorf("fragment height must be a positive integer: %s", value)
		}
		cfg.Thumbnail.FragmentHeight = height

	case "thumbnail.chunk_size":
		size, err := strconv.Atoi(value)
		if err != nil || size < 1 {
			return fmt.Errorf("chunk size must be a positive integer: %s", value)
		}
		cfg.Thumbnail.ChunkSize = size

	case "metadata.material":
		cfg.Metadata.Material = value

	case "metadata.infill_density":
		infill, err := strconv.ParseFloat(value, 64)
		if err != nil || infill < 0 || infill > 100 {
			return fmt.Errorf("infill density must be between 0 and 100: %s", value)
		}
		cfg.Metadata.InfillDensity = infill

	default:
		return fmt.Errorf("unknown config key: %s (supported: thumbnail.quality, thumbnail.fragment_height, thumbnail.chunk_size, metadata.material, metadata.infill_density)", key)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config updated: %s = %s\n", key, value)
	return nil
}
