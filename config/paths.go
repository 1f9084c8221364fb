package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dataDirName is the subdirectory created under the collaborative
	// storage root (or the home directory fallback).
	dataDirName = "Stunden"
	dbFileName  = "sitelog.db"
)

// storageRootEnvVars are checked in order for a collaborative storage root.
var storageRootEnvVars = []string{"OneDrive", "OneDriveCommercial", "OneDriveConsumer"}

// ResolveStorageDir returns the directory holding the database and report
// exports, creating it if missing. Resolution is idempotent: the same
// environment always yields the same directory.
func ResolveStorageDir() (string, error) {
	var root string
	for _, name := range storageRootEnvVars {
		if value := os.Getenv(name); value != "" {
			root = value
			break
		}
	}
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		root = home
	}

	dir := filepath.Join(root, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage directory %s: %w", dir, err)
	}
	return dir, nil
}

// DefaultDBPath is the database location inside the resolved storage root.
func DefaultDBPath() (string, error) {
	dir, err := ResolveStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}
