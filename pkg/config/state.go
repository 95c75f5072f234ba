// Package config provides configuration loading and the on-disk layout
// for the beacon application.
package config

import (
	"os"
	"path/filepath"
)

const (
	stateDirName     = ".beacon"
	storageFileName  = "storage.json"
	storageDBName    = "storage.db"
	debugLogFileName = "debug.log"
)

// GetBeaconDir returns the path to the default .beacon directory
func GetBeaconDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, stateDirName), nil
}

// EnsureDir creates the directory if it doesn't exist
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// StoragePath returns the storage location for the configured backend.
// An explicit storage.path always wins.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.StateDir, storageDBName)
	case BackendMemory:
		return ""
	default:
		return filepath.Join(c.StateDir, storageFileName)
	}
}

// DebugLogPath returns the path of the debug log inside the state directory
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.StateDir, debugLogFileName)
}
