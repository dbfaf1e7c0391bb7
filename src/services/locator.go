// backend/src/services/locator.go
package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// statementFilenames are the names a CEI export is saved under.
var statementFilenames = []string{"InfoCEI.csv", "InfoCEI.xlsx"}

// FindStatementFile locates the CEI statement for the one-shot CLI mode:
// the current directory first, then the downloads directory. The returned
// error names every location searched so the user knows where to put the
// file.
func FindStatementFile(downloadsDir string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving current directory: %w", err)
	}

	dirs := []string{cwd}
	if downloadsDir != "" {
		dirs = append(dirs, downloadsDir)
	}

	var searched []string
	for _, dir := range dirs {
		for _, name := range statementFilenames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
			searched = append(searched, candidate)
		}
	}
	return "", fmt.Errorf("no CEI statement found; searched: %v", searched)
}
