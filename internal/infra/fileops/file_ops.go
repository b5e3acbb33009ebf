// Where: internal/infra/fileops/file_ops.go
// What: Filesystem helpers shared by the emitter and project loaders.
// Why: Keep create/compare/remove semantics consistent across generate and destroy.
package fileops

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMode is applied to generated source files.
const FileMode fs.FileMode = 0o644

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func WriteFile(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), FileMode)
}

// SameContent reports whether path holds exactly content. A missing file is
// reported as different without error.
func SameContent(path, content string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(data, []byte(content)), nil
}

// RemoveFile deletes a regular file. A missing file is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveEmptyDir removes path only when it is an empty directory and
// reports whether it was removed.
func RemoveEmptyDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}

// Glob returns the regular files under dir matching pattern.
func Glob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	files := matches[:0]
	for _, match := range matches {
		if FileExists(match) {
			files = append(files, match)
		}
	}
	return files, nil
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
