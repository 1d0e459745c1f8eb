package fs

import (
	"os"
	"path/filepath"
)

type realFS struct {
	cwd string
}

func RealFS() FS {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = string(filepath.Separator)
	} else if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		// Resolve symlinks so that relative paths in messages come out the same
		// no matter how the working directory was reached
		cwd = resolved
	}
	return &realFS{cwd: cwd}
}

func (fs *realFS) ReadFile(path string) (string, error, error) {
	buffer, originalError := os.ReadFile(path)
	if originalError != nil {
		return "", canonicalFileSystemError(originalError), originalError
	}
	return string(buffer), nil, nil
}

func (fs *realFS) Abs(path string) (string, bool) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), true
	}
	return filepath.Join(fs.cwd, path), true
}

func (fs *realFS) Rel(base string, target string) (string, bool) {
	if rel, err := filepath.Rel(base, target); err == nil {
		return rel, true
	}
	return "", false
}

func (fs *realFS) Cwd() string {
	return fs.cwd
}
