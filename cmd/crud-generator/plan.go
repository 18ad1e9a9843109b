package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crud-generator/internal/app"
)

type planOptions struct {
	source sourceOptions
}

// dumper prints artifacts without pointer addresses so dumps are stable.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func registerPlanCmd(parent *cobra.Command, root *rootOptions) {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan [packages...]",
		Short: "Print the artifact descriptions of every entity without rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts, args)
		},
	}

	opts.source.register(cmd)

	parent.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *planOptions, args []string) error {
	cfg, err := loadConfig(cmd, root, &opts.source, args)
	if err != nil {
		return err
	}

	p, err := app.BuildPlan(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), p.Diagnostics, root.verbose)

	out := cmd.OutOrStdout()
	heading := color.New(color.Bold)

	for i := range p.Entities {
		ep := &p.Entities[i]

		fmt.Fprintln(out, heading.Sprint(ep.Entity.QualifiedName()))
		dumper.Fdump(out, ep.Model, ep.Form, ep.List, ep.Endpoint)
	}

	fmt.Fprintln(out, heading.Sprint("mapping"))
	dumper.Fdump(out, p.Mapping.Directions())

	return nil
}
