package common

import (
	"path"
	"strings"
)

// PkgAlias guesses the name a package is imported under from its import
// path: the last element, without a major version suffix ("/v2", ".v3") or
// a "go-" prefix, and with hyphens dropped.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	name := path.Base(pkgPath)
	if isMajorVersion(name) {
		if dir := path.Dir(pkgPath); dir != "." {
			name = path.Base(dir)
		}
	}

	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}

	name = strings.TrimPrefix(name, "go-")

	return strings.ReplaceAll(name, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
