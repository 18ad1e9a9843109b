package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crud-generator/internal/app"
	"crud-generator/internal/config"
)

type genOptions struct {
	source            sourceOptions
	out               string
	keepNullable      bool
	maxColumns        int
	baseRoute         string
	identifiersAsText bool
	dryRun            bool
}

func registerGenCmd(parent *cobra.Command, root *rootOptions) {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate models, pages, endpoints and the mapping file",
		Example: `  # Generate from the packages below the current directory
  crud-generator gen

  # Generate into a custom directory, keeping nullable members nullable
  crud-generator gen ./internal/store --out ./internal/generated --keep-nullable

  # Show what would be written
  crud-generator gen --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, root, opts, args)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory")
	cmd.Flags().BoolVar(&opts.keepNullable, "keep-nullable", false, "Keep nullable scalars nullable in models")
	cmd.Flags().IntVar(&opts.maxColumns, "max-columns", 0, "Maximum number of list columns")
	cmd.Flags().StringVar(&opts.baseRoute, "base-route", "", "Route prefix of generated pages")
	cmd.Flags().BoolVar(&opts.identifiersAsText, "ids-as-text", false, "Render identifiers as text")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Render everything but write nothing")

	parent.AddCommand(cmd)
}

func (o *genOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("out") {
		cfg.Output.Dir = o.out
	}

	if flags.Changed("keep-nullable") {
		cfg.KeepNullable = o.keepNullable
	}

	if flags.Changed("max-columns") {
		cfg.MaxColumns = o.maxColumns
	}

	if flags.Changed("base-route") {
		cfg.BasePagesRoute = o.baseRoute
	}

	if flags.Changed("ids-as-text") {
		cfg.IdentifiersAsText = o.identifiersAsText
	}
}

func runGen(cmd *cobra.Command, root *rootOptions, opts *genOptions, args []string) error {
	cfg, err := loadConfig(cmd, root, &opts.source, args)
	if err != nil {
		return err
	}

	opts.apply(cmd, &cfg)

	res, err := app.Generate(cmd.Context(), cfg, app.Options{DryRun: opts.dryRun})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printDiagnostics(cmd.ErrOrStderr(), res.Plan.Diagnostics, root.verbose)

	verb := color.New(color.FgGreen).Sprint("wrote")
	if !res.Written {
		verb = color.New(color.FgCyan).Sprint("would write")
	}

	for _, f := range res.Files {
		fmt.Fprintf(out, "%s %s\n", verb, filepath.Join(cfg.Output.Dir, filepath.FromSlash(f.Filename)))
	}

	fmt.Fprintf(out, "%d entities, %d files\n", len(res.Plan.Entities), len(res.Files))

	return nil
}
