package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crud-generator/internal/app"
	"crud-generator/internal/diagnostic"
)

type checkOptions struct {
	source sourceOptions
	out    string
}

func registerCheckCmd(parent *cobra.Command, root *rootOptions) {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Report generated files that are missing or out of date",
		Example: `  # Fail a CI job when generated code was not refreshed
  crud-generator check --out ./internal/generated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts, args)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory")

	parent.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions, args []string) error {
	cfg, err := loadConfig(cmd, root, &opts.source, args)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("out") {
		cfg.Output.Dir = opts.out
	}

	res, err := app.Check(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), res.Plan.Diagnostics, root.verbose)
	printDiagnostics(cmd.ErrOrStderr(), res.Drift, root.verbose)

	if err := res.Drift.Error(); err != nil {
		return err
	}

	if res.Drift.HasWarnings() {
		return diagnostic.NewError(diagnostic.CodeStaleArtifact, "", "",
			"%d generated artifacts are out of date under %s, run crud-generator gen", len(res.Drift.Warnings), cfg.Output.Dir)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %d files under %s\n",
		color.New(color.FgGreen).Sprint("up to date:"), len(res.Files), cfg.Output.Dir)

	return nil
}
