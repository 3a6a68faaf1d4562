// Package storage persists offline magic number search results.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "bitmagic"

	// envHome overrides the platform data directory entirely.
	envHome = "BITMAGIC_HOME"
)

// GetDataDir returns the directory the cache lives under, creating it if
// needed. BITMAGIC_HOME wins when set; otherwise:
// - macOS: ~/Library/Application Support/bitmagic/
// - Linux: $XDG_DATA_HOME/bitmagic/ or ~/.local/share/bitmagic/
// - Windows: %APPDATA%/bitmagic/
func GetDataDir() (string, error) {
	if dir := os.Getenv(envHome); dir != "" {
		return ensureDir(dir)
	}

	base, err := platformDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// platformDataDir resolves the per-user data root for the running OS.
func platformDataDir() (string, error) {
	var env string
	var fallback []string

	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// GetDatabaseDir returns the directory holding the badger magic cache.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir, err := ensureDir(filepath.Join(dataDir, "magics"))
	if err != nil {
		return "", err
	}

	log.Printf("[storage] Database directory: %s", dbDir)
	return dbDir, nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
