package config

import (
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// FindModule walks up from dir to the closest go.mod and returns the module
// root directory and module path.
func FindModule(dir string) (root, modulePath string, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", invalid("cannot resolve %s: %v", dir, err)
	}

	for d := abs; ; {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		if err == nil {
			if mp := modfile.ModulePath(data); mp != "" {
				return d, mp, nil
			}
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", "", invalid("no go.mod found above %s; set output.import", abs)
		}

		d = parent
	}
}

// ImportPath returns the import path of dir, which need not exist yet, from
// the module that contains it.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", invalid("cannot resolve %s: %v", dir, err)
	}

	// Search from the closest existing ancestor.
	existing := abs
	for {
		if _, err := os.Stat(existing); err == nil {
			break
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}

		existing = parent
	}

	root, modulePath, err := FindModule(existing)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", invalid("cannot relate %s to module root %s: %v", abs, root, err)
	}

	return path.Join(modulePath, filepath.ToSlash(rel)), nil
}
