package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// DevtoolsFS will wrap the filesystem operations used by devtools.
type DevtoolsFS interface {
	// Canonicalize expands a leading "~", makes the path absolute and resolves symlinks.
	// The path must exist.
	Canonicalize(path string) (string, error)
	// Expand expands a leading "~" without touching the filesystem.
	Expand(path string) (string, error)
	MkdirAll(path string) error
	DirExists(path string) (bool, error)
	FileExists(path string) (bool, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces the content of name, keeping its permissions when it already exists.
	WriteFile(name string, data []byte) error
	Remove(name string) error
}

type fsImpl struct{}

// New creates a new DevtoolsFS.
func New() DevtoolsFS {
	return fsImpl{}
}

func (f fsImpl) Canonicalize(path string) (string, error) {
	expanded, err := f.Expand(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (fsImpl) Expand(path string) (string, error) {
	return homedir.Expand(path)
}

// MkdirAll creates a directory and all its parents.
func (fsImpl) MkdirAll(path string) error { return os.MkdirAll(path, os.ModePerm) }

// ReadDir reads all the items in a directory (non-recursive)
func (fsImpl) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (fsImpl) DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (fsImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (fsImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fsImpl) WriteFile(name string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(name, data, perm)
}

func (fsImpl) Remove(name string) error {
	return os.Remove(name)
}
