package runner

import (
	"fmt"
	"io"
	"path/filepath"

	"ctor-generator/internal/diagnostic"
)

// PrintDiagnostics writes one line per diagnostic, errors first, with
// related positions indented below. File names are shown relative to dir
// when possible.
func PrintDiagnostics(w io.Writer, diags diagnostic.Diagnostics, dir string) error {
	for _, d := range diags.All() {
		d.Pos.Filename = relative(dir, d.Pos.Filename)

		if _, err := fmt.Fprintf(w, "%s: %s\n", d.Severity, d); err != nil {
			return err
		}

		for _, rel := range d.Related {
			rel.Filename = relative(dir, rel.Filename)

			if _, err := fmt.Fprintf(w, "\t%s: see also\n", rel); err != nil {
				return err
			}
		}
	}

	return nil
}

func relative(dir, name string) string {
	if dir == "" || name == "" || !filepath.IsAbs(name) {
		return name
	}

	rel, err := filepath.Rel(dir, name)
	if err != nil || !filepath.IsLocal(rel) {
		return name
	}

	return rel
}
