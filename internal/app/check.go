package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"crud-generator/internal/config"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/gen"
	"crud-generator/internal/mapping"
	"crud-generator/internal/plan"
)

// CheckResult compares the output directory with a fresh render.
type CheckResult struct {
	Plan  *plan.GenerationPlan
	Files []gen.GeneratedFile
	// Drift holds one warning per missing or differing file and per mapping
	// registration absent from the mapping file on disk. A mapping file that
	// cannot be read or fails validation is reported as errors.
	Drift diagnostic.Diagnostics
}

// UpToDate reports whether the output directory matches the render.
func (r *CheckResult) UpToDate() bool {
	return r.Drift.IsValid() && !r.Drift.HasWarnings()
}

// Check renders every artifact described by cfg and compares it with what is
// stored under cfg.Output.Dir. Nothing is written.
func Check(ctx context.Context, cfg config.Config) (*CheckResult, error) {
	res, err := Generate(ctx, cfg, Options{DryRun: true})
	if err != nil {
		return nil, err
	}

	out := &CheckResult{Plan: res.Plan, Files: res.Files}
	mappingName := path.Join(cfg.Output.Mapping, gen.MappingFilename)

	for _, f := range res.Files {
		p := filepath.Join(cfg.Output.Dir, filepath.FromSlash(f.Filename))

		data, err := os.ReadFile(p)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			out.Drift.AddWarning(diagnostic.CodeStaleArtifact, "file is missing", "", f.Filename)
			continue
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		case !bytes.Equal(data, f.Content):
			out.Drift.AddWarning(diagnostic.CodeStaleArtifact, "file differs from the generated content", "", f.Filename)
		}

		if f.Filename == mappingName {
			if err := checkMapping(&out.Drift, p, f.Content); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// checkMapping validates the mapping file at p and reports every registration
// of the rendered mapping that it lacks.
func checkMapping(d *diagnostic.Diagnostics, p string, rendered []byte) error {
	want, err := mapping.Parse(rendered)
	if err != nil {
		return err
	}

	have, err := mapping.LoadFile(p)
	if err != nil {
		d.AddError(diagnostic.CodeStaleArtifact, err.Error(), "", gen.MappingFilename)
		return nil
	}

	d.Merge(*mapping.Validate(have))

	for i := range want.TypeMappings {
		tm := &want.TypeMappings[i]
		if _, ok := have.Find(tm.Source, tm.Target); !ok {
			d.AddWarning(diagnostic.CodeStaleArtifact, "registration is missing", tm.String(), gen.MappingFilename)
		}
	}

	return nil
}
