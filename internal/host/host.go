// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const boxctlDirName = ".boxctl"

// BoxctlDir returns the per-user boxctl directory holding config and logs.
func BoxctlDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user home dir: %w", err)
	}
	return filepath.Join(homeDir, boxctlDirName), nil
}

// ResolveTildePrefix replaces the leading tilde ('~') in the given path with the current user's home directory.
func ResolveTildePrefix(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user home dir: %w", err)
	}
	return filepath.Clean(strings.Replace(path, "~", homeDir, 1)), nil
}

// CreateDirIfNotExisting creates the given directory including parents if it does not exist yet.
func CreateDirIfNotExisting(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create dir '%s': %w", path, err)
	}
	return nil
}
