// Package app runs the generation pipeline: load the schema, build the plan,
// render every artifact, then write. Nothing is written unless every step
// before the writer succeeded.
package app

import (
	"context"

	"crud-generator/internal/analyze"
	"crud-generator/internal/config"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/gen"
	"crud-generator/internal/plan"
	"crud-generator/internal/schema"
)

// Options control a Generate run.
type Options struct {
	// DryRun renders every artifact but writes nothing.
	DryRun bool
}

// Result is the outcome of a successful Generate run.
type Result struct {
	Plan  *plan.GenerationPlan
	Files []gen.GeneratedFile
	// Written reports whether Files were written to the output directory.
	Written bool
}

// LoadSchema returns the schema described by cfg: the snapshot file when one
// is set, otherwise the root aggregate discovered in the configured packages.
// Loader warnings are returned alongside the schema.
func LoadSchema(ctx context.Context, cfg config.Config) (*schema.Schema, diagnostic.Diagnostics, error) {
	if cfg.Snapshot != "" {
		s, err := schema.LoadFile(cfg.Snapshot)
		return s, diagnostic.Diagnostics{}, err
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(ctx, cfg.Dir, cfg.Packages...)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	s, err := analyze.DiscoverSchema(graph, cfg.DiscoverOptions())
	if err != nil {
		return nil, graph.Diagnostics, err
	}

	return s, graph.Diagnostics, nil
}

// BuildPlan loads the schema and synthesizes the generation plan. The plan's
// diagnostics start with the loader warnings.
func BuildPlan(ctx context.Context, cfg config.Config) (*plan.GenerationPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pc, err := cfg.PlanConfig()
	if err != nil {
		return nil, err
	}

	s, diags, err := LoadSchema(ctx, cfg)
	if err != nil {
		return nil, err
	}

	p, err := plan.NewBuilder(pc).Build(s)
	if err != nil {
		return nil, err
	}

	diags.Merge(p.Diagnostics)
	p.Diagnostics = diags

	return p, nil
}

// Generate builds the plan, renders every artifact and, unless opts.DryRun is
// set, writes them under cfg.Output.Dir.
func Generate(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gc, err := cfg.GenConfig()
	if err != nil {
		return nil, err
	}

	p, err := BuildPlan(ctx, cfg)
	if err != nil {
		return nil, err
	}

	files, err := gen.NewGenerator(gc).Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	res := &Result{Plan: p, Files: files}
	if opts.DryRun {
		return res, nil
	}

	if err := gen.WriteFiles(files, cfg.Output.Dir); err != nil {
		return nil, err
	}

	res.Written = true

	return res, nil
}
