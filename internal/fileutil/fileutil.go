// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrNotDirectory = errors.New("path exists but is not a directory")
	ErrUnsafeName   = errors.New("file name contains path separator or null byte")
)

// EnsureDir creates dir and any missing parents. An existing directory is
// not an error; an existing regular file at dir is.
func EnsureDir(dir string) error {
	if dir == "" {
		return ErrEmptyPath
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, DirPermissions)
}

// WriteFile writes content to name inside dir and returns the full path.
// The name must be a bare file name: nested paths would let a manifest
// entry escape the output directory.
func WriteFile(dir, name string, content []byte) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, FilePermissions); err != nil { // #nosec G306 -- site output is world-readable
		return "", err
	}
	return path, nil
}

// ValidateFileName checks that name is safe to join onto an output directory.
func ValidateFileName(name string) error {
	if name == "" {
		return ErrEmptyPath
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./site.css" -> true (relative path)
//   - "/absolute/path.yaml" -> true (absolute)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
