// Package dotdir locates the rocksolid state directory and the files kept in
// it.
//
// Layout:
//
//	.rocksolid/
//	  config.toml        settings read by pkg/config
//	  collections/       My Skills and Routines documents
//	  routines.db        default SQLite database for `rocksolid serve`
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirName        = ".rocksolid"
	configFile     = "config.toml"
	collectionsDir = "collections"
	sqliteFile     = "routines.db"
)

// Manager resolves paths inside the state directory.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute state directory, creating it when missing.
// The first of these wins:
//  1. overrideDir (--config-dir)
//  2. ./.rocksolid in the working directory, when it already exists
//  3. ~/.rocksolid
func (m *Manager) Target(overrideDir string) (string, error) {
	dir, err := m.locate(overrideDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating state directory %s: %w", dir, err)
	}
	return filepath.Abs(dir)
}

// ConfigPath returns the location of config.toml. The file may not exist.
func (m *Manager) ConfigPath(overrideDir string) (string, error) {
	return m.join(overrideDir, configFile)
}

// CollectionsDir returns the directory holding the local My Skills and
// Routines documents, creating it when missing.
func (m *Manager) CollectionsDir(overrideDir string) (string, error) {
	path, err := m.join(overrideDir, collectionsDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating collections directory %s: %w", path, err)
	}
	return path, nil
}

// SQLitePath returns the default location of the routine database.
func (m *Manager) SQLitePath(overrideDir string) (string, error) {
	return m.join(overrideDir, sqliteFile)
}

func (m *Manager) join(overrideDir, name string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func (m *Manager) locate(overrideDir string) (string, error) {
	if overrideDir != "" {
		return overrideDir, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, dirName)
		if info, err := os.Stat(local); err == nil && info.IsDir() {
			return local, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}
