package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// privateDirMode is used for directories holding the journal and log file.
const privateDirMode = 0750

// ExpandPath resolves a leading ~ to the home directory and substitutes
// $VAR references. The home directory is left as-is when it cannot be found.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}

	return os.ExpandEnv(path)
}

// EnsureParentDir creates the directory that will hold the file at path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, privateDirMode); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
