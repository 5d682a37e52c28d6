// Package ioutils provides small file-system helpers shared by the
// download pipeline.
package ioutils

import "os"

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile writes data to a file with mode 0644, truncating any
// existing content.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
