package gen

import (
	"os"
	"path/filepath"
)

// DebugSuffix is appended to the output name of source that failed to format.
const DebugSuffix = ".error"

// writeDebugUnformatted writes unformatted code next to the intended output.
// The suffix keeps the file out of the package build.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, filename+DebugSuffix), content, filePerm)
}
