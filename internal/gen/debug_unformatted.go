package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file under
// debugDir, at the slash-separated filename with an .unformatted.go suffix.
func writeDebugUnformatted(debugDir, filename string, content []byte) error {
	if debugDir == "" || filename == "" {
		return nil
	}

	debugName := strings.TrimSuffix(filepath.FromSlash(filename), ".go") + ".unformatted.go"
	p := filepath.Join(debugDir, debugName)

	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return err
	}

	return os.WriteFile(p, content, filePerm)
}
