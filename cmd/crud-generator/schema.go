package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crud-generator/internal/app"
	"crud-generator/internal/schema"
)

type schemaOptions struct {
	source sourceOptions
	output string
}

func registerSchemaCmd(parent *cobra.Command, root *rootOptions) {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema [packages...]",
		Short: "Print the discovered schema as a YAML snapshot",
		Example: `  # Save a snapshot and generate from it later
  crud-generator schema -o schema.yaml
  crud-generator gen --snapshot schema.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, root, opts, args)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the snapshot to a file instead of stdout")

	parent.AddCommand(cmd)
}

func runSchema(cmd *cobra.Command, root *rootOptions, opts *schemaOptions, args []string) error {
	cfg, err := loadConfig(cmd, root, &opts.source, args)
	if err != nil {
		return err
	}

	s, diags, err := app.LoadSchema(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), diags, root.verbose)

	if opts.output != "" {
		if err := schema.WriteFile(s, opts.output); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.New(color.FgGreen).Sprint("wrote"), opts.output)

		return nil
	}

	data, err := schema.Marshal(s)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
