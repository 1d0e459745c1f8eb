package fs

// This is a mock implementation of the "fs" module for use with tests. It does
// not actually read from the file system. Instead, it reads from a pre-specified
// map of file paths to files.

import (
	"path"
	"strings"
	"syscall"
)

type mockFS struct {
	files         map[string]string
	absWorkingDir string
}

func MockFS(input map[string]string, absWorkingDir string) FS {
	files := make(map[string]string, len(input))
	for k, v := range input {
		files[path.Clean(k)] = v
	}
	return &mockFS{files, absWorkingDir}
}

func (fs *mockFS) ReadFile(p string) (string, error, error) {
	abs, _ := fs.Abs(p)
	if contents, ok := fs.files[abs]; ok {
		return contents, nil, nil
	}
	return "", syscall.ENOENT, syscall.ENOENT
}

func (fs *mockFS) Abs(p string) (string, bool) {
	if !path.IsAbs(p) {
		p = path.Join(fs.absWorkingDir, p)
	}
	return path.Clean(p), true
}

func (*mockFS) Rel(base string, target string) (string, bool) {
	base = path.Clean(base)
	target = path.Clean(target)

	// Base cases
	if base == "" || base == "." {
		return target, true
	}
	if base == target {
		return ".", true
	}

	// Only paths inside the base directory are shortened
	if prefix := strings.TrimSuffix(base, "/") + "/"; strings.HasPrefix(target, prefix) {
		return target[len(prefix):], true
	}
	return "", false
}

func (fs *mockFS) Cwd() string {
	return fs.absWorkingDir
}
