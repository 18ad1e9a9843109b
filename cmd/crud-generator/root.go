package main

import (
	"github.com/spf13/cobra"

	"crud-generator/internal/config"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

// newRootCmd creates the root command with every subcommand registered.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "crud-generator",
		Short: "Generate CRUD scaffolding from a data-access schema",
		Long: `crud-generator discovers the root aggregate of a data-access package and
generates a transfer model, a create form, a list page and an HTTP controller
for every entity it exposes, plus a global mapping registration file.

Settings are read from crud-generator.yaml (or --config), then from CRUDGEN_*
environment variables, then from command line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"Configuration file (default "+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Also print informational diagnostics")

	registerGenCmd(rootCmd, opts)
	registerPlanCmd(rootCmd, opts)
	registerSchemaCmd(rootCmd, opts)
	registerCheckCmd(rootCmd, opts)

	return rootCmd
}

// sourceOptions select where the schema is read from.
type sourceOptions struct {
	dir      string
	root     string
	snapshot string
}

func (o *sourceOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dir, "dir", "", "Directory the package patterns are resolved from")
	cmd.Flags().StringVar(&o.root, "root", "", "Root aggregate to use when several are found")
	cmd.Flags().StringVar(&o.snapshot, "snapshot", "", "Read the schema from a YAML snapshot instead of packages")
}

func (o *sourceOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("dir") {
		cfg.Dir = o.dir
	}

	if cmd.Flags().Changed("root") {
		cfg.Root = o.root
	}

	if cmd.Flags().Changed("snapshot") {
		cfg.Snapshot = o.snapshot
	}
}

// loadConfig reads the configuration and applies the source flags. Package
// patterns given as arguments replace the configured ones.
func loadConfig(cmd *cobra.Command, root *rootOptions, src *sourceOptions, args []string) (config.Config, error) {
	cfg, err := config.Load(root.configFile, nil)
	if err != nil {
		return config.Config{}, err
	}

	src.apply(cmd, &cfg)

	if len(args) > 0 {
		cfg.Packages = args
	}

	return cfg, nil
}
