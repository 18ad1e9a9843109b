package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crud-generator/internal/classify"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/plan"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"./..."}, cfg.Packages)
	assert.Equal(t, "crud-generator/dbset.Context", cfg.RootMarker)
	assert.Equal(t, 6, cfg.MaxColumns)
	assert.Equal(t, "/AutogeneratedPages", cfg.BasePagesRoute)
	assert.Equal(t, "reject", cfg.UnsupportedMembers)
	assert.Equal(t, "models", cfg.Output.Models)
	require.NoError(t, cfg.Validate())

	pc, err := cfg.PlanConfig()
	require.NoError(t, err)
	assert.Equal(t, plan.DefaultConfig(), pc)
}

func TestLoad_Precedence(t *testing.T) {
	file := writeFile(t, t.TempDir(), "crud.yaml", `
dir: ./schema
packages: ["./model/..."]
max_columns: 4
keep_nullable: true
unsupported_members: ignore
scalar_types:
  example.com/money.Amount: decimal
output:
  dir: ./out
  pages: views
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Load(file, map[string]string{})
		require.NoError(t, err)

		assert.Equal(t, "./schema", cfg.Dir)
		assert.Equal(t, []string{"./model/..."}, cfg.Packages)
		assert.Equal(t, 4, cfg.MaxColumns)
		assert.True(t, cfg.KeepNullable)
		assert.Equal(t, "ignore", cfg.UnsupportedMembers)
		assert.Equal(t, "./out", cfg.Output.Dir)
		assert.Equal(t, "views", cfg.Output.Pages)
		assert.Equal(t, "models", cfg.Output.Models, "unset keys keep their default")
		assert.Equal(t, "/AutogeneratedPages", cfg.BasePagesRoute)
	})

	t.Run("env over file", func(t *testing.T) {
		cfg, err := Load(file, map[string]string{
			"CRUDGEN_MAX_COLUMNS":   "3",
			"CRUDGEN_KEEP_NULLABLE": "false",
			"CRUDGEN_PACKAGES":      "./a/...,./b/...",
			"CRUDGEN_OUTPUT_DIR":    "./env-out",
			"CRUDGEN_ROOT":          "ShopContext",
			"MAX_COLUMNS":           "1",
		})
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.MaxColumns)
		assert.False(t, cfg.KeepNullable)
		assert.Equal(t, []string{"./a/...", "./b/..."}, cfg.Packages)
		assert.Equal(t, "./env-out", cfg.Output.Dir)
		assert.Equal(t, "ShopContext", cfg.Root)
		assert.Equal(t, "views", cfg.Output.Pages)
	})

	t.Run("plan options", func(t *testing.T) {
		cfg, err := Load(file, map[string]string{})
		require.NoError(t, err)

		pc, err := cfg.PlanConfig()
		require.NoError(t, err)
		assert.Equal(t, plan.PolicyIgnore, pc.UnsupportedMembers)
		assert.Equal(t, map[string]classify.ScalarKind{"example.com/money.Amount": classify.ScalarDecimal},
			pc.Classify.ScalarTypes)
	})
}

func TestLoad_DefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "a missing default file is not an error")

	writeFile(t, ".", DefaultFile, "max_columns: 2\n")

	cfg, err = Load("", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxColumns)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"), map[string]string{})
	assert.ErrorContains(t, err, "failed to read config")

	bad := writeFile(t, dir, "bad.yaml", "max_columns: [")
	_, err = Load(bad, map[string]string{})
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeInvalidConfig))

	good := writeFile(t, dir, "good.yaml", "dir: .\n")
	_, err = Load(good, map[string]string{"CRUDGEN_MAX_COLUMNS": "many"})
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "snapshot without packages", mutate: func(c *Config) {
			c.Packages = nil
			c.Snapshot = "schema.yaml"
		}},
		{name: "no schema source", mutate: func(c *Config) { c.Packages = nil }, wantErr: "packages or snapshot"},
		{name: "no output", mutate: func(c *Config) { c.Output.Dir = "" }, wantErr: "output.dir"},
		{name: "columns", mutate: func(c *Config) { c.MaxColumns = 0 }, wantErr: "max_columns"},
		{name: "policy", mutate: func(c *Config) { c.UnsupportedMembers = "skip" }, wantErr: "unsupported_members"},
		{name: "route", mutate: func(c *Config) { c.BasePagesRoute = "pages" }, wantErr: "base_pages_route"},
		{name: "scalar kind", mutate: func(c *Config) {
			c.ScalarTypes = map[string]string{"example.com/money.Amount": "money"}
		}, wantErr: "scalar_types[example.com/money.Amount]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, diagnostic.HasCode(err, diagnostic.CodeInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDiscoverOptions(t *testing.T) {
	cfg := Default()
	cfg.Root = "ShopContext"

	opts := cfg.DiscoverOptions()
	assert.Equal(t, "ShopContext", opts.Root)
	assert.Equal(t, cfg.RootMarker, opts.RootMarker)
	assert.Equal(t, []string{classify.SetType}, opts.CollectionTypes)
}

func TestGenConfig(t *testing.T) {
	t.Run("explicit import", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Import = "example.com/app/generated"

		gc, err := cfg.GenConfig()
		require.NoError(t, err)
		assert.Equal(t, "example.com/app/generated/models", gc.ModelsImport)
		assert.Equal(t, "pages", gc.PagesDir)
		assert.Empty(t, gc.DebugDir)
	})

	t.Run("detected import", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "go.mod", "module example.com/app\n\ngo 1.24\n")

		cfg := Default()
		cfg.Output.Dir = filepath.Join(root, "internal", "generated")
		cfg.Output.Debug = true

		gc, err := cfg.GenConfig()
		require.NoError(t, err)
		assert.Equal(t, "example.com/app/internal/generated/models", gc.ModelsImport)
		assert.Equal(t, cfg.Output.Dir, gc.DebugDir)
	})
}

func TestImportPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/app\n")
	writeFile(t, root, "sub/go.mod", "module example.com/sub\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "out"), 0o755))

	tests := []struct {
		dir  string
		want string
	}{
		{root, "example.com/app"},
		{filepath.Join(root, "pkg", "out"), "example.com/app/pkg/out"},
		{filepath.Join(root, "not", "yet", "there"), "example.com/app/not/yet/there"},
		{filepath.Join(root, "sub", "gen"), "example.com/sub/gen"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := ImportPath(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/app\n")

	dir, mp, err := FindModule(filepath.Join(root))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", mp)

	want, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, want, dir)
}
