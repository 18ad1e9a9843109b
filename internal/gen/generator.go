package gen

import (
	"context"
	"fmt"
	"go/token"
	"runtime"

	"golang.org/x/sync/errgroup"

	"crud-generator/internal/common"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/plan"
)

// generatedHeader starts every generated file.
const generatedHeader = "Code generated by crud-generator. DO NOT EDIT."

// MappingFilename is the name of the global mapping registration.
const MappingFilename = "global_mapping.yaml"

// Config holds configuration for rendering.
type Config struct {
	// ModelsDir, PagesDir, EndpointsDir and MappingDir are the artifact
	// directories, relative to the output root.
	ModelsDir    string
	PagesDir     string
	EndpointsDir string
	MappingDir   string
	// ModelsImport is the import path of the models package.
	ModelsImport string
	// DebugDir receives an .unformatted.go sidecar when generated Go code
	// fails to format. Empty disables sidecars.
	DebugDir string
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{
		ModelsDir:    "models",
		PagesDir:     "pages",
		EndpointsDir: "endpoints",
		MappingDir:   "mapping",
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	dirs := []struct{ name, dir string }{
		{"models", c.ModelsDir},
		{"pages", c.PagesDir},
		{"endpoints", c.EndpointsDir},
		{"mapping", c.MappingDir},
	}

	for _, d := range dirs {
		if d.dir == "" {
			return diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "", "output %s directory is empty", d.name)
		}
	}

	if c.ModelsImport == "" {
		return diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "", "models import path is empty")
	}

	return nil
}

// Generator renders generation plans.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents one rendered artifact.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output root
	// (e.g., "models/order_line_model.go").
	Filename string
	// Content is the rendered source.
	Content []byte
}

type renderFunc func() (GeneratedFile, error)

// Generate renders every artifact of p: per entity the model, form, list and
// endpoint, then the global mapping. Renderers run concurrently; the result
// order follows the plan, so equal plans give equal output.
func (g *Generator) Generate(ctx context.Context, p *plan.GenerationPlan) ([]GeneratedFile, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]renderFunc, 0, 4*len(p.Entities)+1)

	for i := range p.Entities {
		ep := &p.Entities[i]
		jobs = append(jobs,
			func() (GeneratedFile, error) { return g.renderModel(ep) },
			func() (GeneratedFile, error) { return g.renderForm(ep) },
			func() (GeneratedFile, error) { return g.renderList(ep) },
			func() (GeneratedFile, error) { return g.renderEndpoint(ep) },
		)
	}

	jobs = append(jobs, func() (GeneratedFile, error) { return g.renderMapping(p) })

	files := make([]GeneratedFile, len(jobs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := job()
			if err != nil {
				return err
			}

			files[i] = f

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// importAlias returns the alias of pkgPath that differs from every name in
// taken.
func importAlias(pkgPath string, taken ...string) string {
	alias := common.PkgAlias(pkgPath)

	for isTaken(alias, taken) {
		alias += "pkg"
	}

	return alias
}

func isTaken(name string, taken []string) bool {
	if token.IsKeyword(name) {
		return true
	}

	for _, t := range taken {
		if t == name {
			return true
		}
	}

	return false
}

// safeIdent returns name, suffixed when it is a Go keyword.
func safeIdent(name, suffix string) string {
	if token.IsKeyword(name) {
		return name + suffix
	}

	return name
}

func renderError(dialect, entity string, err error) error {
	return fmt.Errorf("rendering %s of %s: %w", dialect, entity, err)
}
