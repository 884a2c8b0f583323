package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "a3diet"
	dbFileName = "a3diet.db"
)

// DefaultDBPath places the database under the user config dir, e.g.
// ~/.config/a3diet/a3diet.db on Linux.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// ResolveDBPath picks the first non-empty of flag and env, falling back to
// DefaultDBPath.
func ResolveDBPath(flag, env string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env != "" {
		return env, nil
	}
	return DefaultDBPath()
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
