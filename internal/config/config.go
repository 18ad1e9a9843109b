// Package config loads the run configuration of the generator: defaults,
// then an optional YAML file, then CRUDGEN_* environment variables. Command
// line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"crud-generator/internal/analyze"
	"crud-generator/internal/classify"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/gen"
	"crud-generator/internal/plan"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "crud-generator.yaml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CRUDGEN_"

// Config is the run configuration.
type Config struct {
	// Dir is the working directory of the package loader.
	Dir string `yaml:"dir" env:"DIR"`
	// Packages are the package patterns searched for the root aggregate.
	Packages []string `yaml:"packages" env:"PACKAGES" envSeparator:","`
	// Snapshot is a YAML schema file used instead of loading packages.
	Snapshot string `yaml:"snapshot,omitempty" env:"SNAPSHOT"`
	// Root selects the root aggregate by name when several embed the marker.
	Root       string `yaml:"root,omitempty" env:"ROOT"`
	RootMarker string `yaml:"root_marker" env:"ROOT_MARKER"`

	KeepNullable       bool   `yaml:"keep_nullable" env:"KEEP_NULLABLE"`
	MaxColumns         int    `yaml:"max_columns" env:"MAX_COLUMNS"`
	BasePagesRoute     string `yaml:"base_pages_route" env:"BASE_PAGES_ROUTE"`
	IdentifiersAsText  bool   `yaml:"identifiers_as_text" env:"IDENTIFIERS_AS_TEXT"`
	UnsupportedMembers string `yaml:"unsupported_members" env:"UNSUPPORTED_MEMBERS"`

	// ScalarTypes maps qualified type names to scalar kinds ("decimal").
	ScalarTypes map[string]string `yaml:"scalar_types,omitempty" env:"SCALAR_TYPES"`
	// CollectionTypes lists generic single-argument collection wrappers.
	CollectionTypes []string `yaml:"collection_types" env:"COLLECTION_TYPES" envSeparator:","`

	Output Output `yaml:"output" envPrefix:"OUTPUT_"`
}

// Output configures where artifacts are written.
type Output struct {
	// Dir is the output root.
	Dir string `yaml:"dir" env:"DIR"`
	// Import is the import path of Dir; detected from go.mod when empty.
	Import    string `yaml:"import,omitempty" env:"IMPORT"`
	Models    string `yaml:"models" env:"MODELS"`
	Pages     string `yaml:"pages" env:"PAGES"`
	Endpoints string `yaml:"endpoints" env:"ENDPOINTS"`
	Mapping   string `yaml:"mapping" env:"MAPPING"`
	// Debug writes .unformatted.go sidecars under Dir when generated Go code
	// fails to format.
	Debug bool `yaml:"debug,omitempty" env:"DEBUG"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	pc := plan.DefaultConfig()
	gc := gen.DefaultConfig()

	return Config{
		Dir:                ".",
		Packages:           []string{"./..."},
		RootMarker:         analyze.DefaultRootMarker,
		KeepNullable:       pc.KeepNullable,
		MaxColumns:         pc.MaxColumns,
		BasePagesRoute:     pc.BasePagesRoute,
		IdentifiersAsText:  pc.IdentifiersAsText,
		UnsupportedMembers: string(pc.UnsupportedMembers),
		CollectionTypes:    []string{classify.SetType},
		Output: Output{
			Dir:       "./generated",
			Models:    gc.ModelsDir,
			Pages:     gc.PagesDir,
			Endpoints: gc.EndpointsDir,
			Mapping:   gc.MappingDir,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment. An empty path reads DefaultFile when it exists. A nil environ
// reads the process environment.
func Load(filePath string, environ map[string]string) (Config, error) {
	cfg := Default()

	explicit := filePath != ""
	if !explicit {
		filePath = DefaultFile
	}

	data, err := os.ReadFile(filePath)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "",
				"failed to parse config %s: %v", filePath, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read config %s: %w", filePath, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "",
			"failed to parse environment: %v", err)
	}

	return cfg, nil
}

// Validate reports the first setting no run can be made with.
func (c Config) Validate() error {
	if c.Snapshot == "" && len(c.Packages) == 0 {
		return invalid("either packages or snapshot must be set")
	}

	if c.Output.Dir == "" {
		return invalid("output.dir must be set")
	}

	if _, err := c.PlanConfig(); err != nil {
		return err
	}

	return nil
}

// PlanConfig returns the generation options of the plan builder.
func (c Config) PlanConfig() (plan.Config, error) {
	scalars, err := c.scalarTypes()
	if err != nil {
		return plan.Config{}, err
	}

	pc := plan.Config{
		KeepNullable:       c.KeepNullable,
		MaxColumns:         c.MaxColumns,
		BasePagesRoute:     c.BasePagesRoute,
		IdentifiersAsText:  c.IdentifiersAsText,
		UnsupportedMembers: plan.UnsupportedPolicy(c.UnsupportedMembers),
		Classify: classify.Config{
			ScalarTypes:     scalars,
			CollectionTypes: c.CollectionTypes,
		},
	}

	if err := pc.Validate(); err != nil {
		return plan.Config{}, err
	}

	return pc, nil
}

// DiscoverOptions returns the root aggregate discovery options.
func (c Config) DiscoverOptions() analyze.DiscoverOptions {
	return analyze.DiscoverOptions{
		Root:            c.Root,
		RootMarker:      c.RootMarker,
		CollectionTypes: c.CollectionTypes,
	}
}

// GenConfig returns the rendering configuration. The models import path is
// derived from output.import, or from the module that contains output.dir.
func (c Config) GenConfig() (gen.Config, error) {
	base := c.Output.Import
	if base == "" {
		detected, err := ImportPath(c.Output.Dir)
		if err != nil {
			return gen.Config{}, err
		}

		base = detected
	}

	gc := gen.Config{
		ModelsDir:    c.Output.Models,
		PagesDir:     c.Output.Pages,
		EndpointsDir: c.Output.Endpoints,
		MappingDir:   c.Output.Mapping,
		ModelsImport: path.Join(base, c.Output.Models),
	}

	if c.Output.Debug {
		gc.DebugDir = c.Output.Dir
	}

	return gc, nil
}

func (c Config) scalarTypes() (map[string]classify.ScalarKind, error) {
	if len(c.ScalarTypes) == 0 {
		return nil, nil
	}

	out := make(map[string]classify.ScalarKind, len(c.ScalarTypes))

	for _, name := range slices.Sorted(maps.Keys(c.ScalarTypes)) {
		k, err := classify.ParseScalarKind(c.ScalarTypes[name])
		if err != nil {
			return nil, invalid("scalar_types[%s]: %v", name, err)
		}

		out[name] = k
	}

	return out, nil
}

func invalid(format string, args ...any) error {
	return diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "", format, args...)
}
