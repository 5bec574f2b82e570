// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPrefixPathTraversal is returned when a temp dir prefix could escape the temp root.
var ErrPrefixPathTraversal = errors.New("prefix contains path separator or null byte")

// DirPermissions is the mode used for directories created on behalf of the user.
const DirPermissions = 0o750

// MakeTempDir creates a private temporary directory.
// Returns the directory path and a cleanup function that removes it with its content.
func MakeTempDir(prefix string) (dir string, cleanup func(), err error) {
	if strings.ContainsAny(prefix, "/\\\x00") {
		return "", nil, ErrPrefixPathTraversal
	}

	dir, err = os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// ReplaceExt returns path with its extension replaced by ext (".pdf").
// Directory and base name are preserved.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// HasExt reports whether path has one of exts, compared case-insensitively.
func HasExt(path string, exts ...string) bool {
	got := filepath.Ext(path)
	for _, ext := range exts {
		if strings.EqualFold(got, ext) {
			return true
		}
	}
	return false
}

// EnsureParentDir creates the parent directory of path if it is missing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if DirExists(dir) {
		return nil
	}
	return os.MkdirAll(dir, DirPermissions)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "config" -> false (name)
//   - "./config.json" -> true (relative path)
//   - "C:\settings\config.json" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
