package common

import (
	"path"
	"regexp"
	"strings"
)

var (
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	nonIdent     = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

// PkgAlias returns an import alias for a package path: the last path element,
// skipping a major version suffix, with characters that cannot appear in an
// identifier removed. Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorVersion.MatchString(base) && path.Dir(pkgPath) != "." {
		base = path.Base(path.Dir(pkgPath))
	}

	alias := strings.ToLower(nonIdent.ReplaceAllString(base, ""))
	if alias == "" || alias[0] >= '0' && alias[0] <= '9' {
		alias = "pkg" + alias
	}

	return alias
}
