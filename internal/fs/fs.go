package fs

// Extra definition tables are read from disk through this interface so that
// tests can run against an in-memory file system instead.

import (
	"errors"
	"os"
	"syscall"
)

type FS interface {
	// The first error is a canonical error that's the same on every platform
	// and the second error is the original error from the operating system.
	ReadFile(path string) (contents string, canonicalError error, originalError error)

	// This is part of the interface because the mock interface used for tests
	// should not depend on file system behavior (i.e. different slashes for
	// Windows) while the real interface should.
	Abs(path string) (string, bool)
	Rel(base string, target string) (string, bool)
	Cwd() string
}

// PrettyPath shortens an absolute path to one relative to the current
// working directory for use in messages
func PrettyPath(fs FS, path string) string {
	if abs, ok := fs.Abs(path); ok {
		if rel, ok := fs.Rel(fs.Cwd(), abs); ok {
			return rel
		}
		return abs
	}
	return path
}

func canonicalFileSystemError(err error) error {
	if pathErr, ok := err.(*os.PathError); ok {
		err = pathErr.Unwrap()
	}

	// Windows returns ENOTDIR here even though nothing we've done yet has asked
	// for a directory. This really means ENOENT on Windows. Return ENOENT here
	// so callers that check for ENOENT will successfully detect this file as
	// missing.
	if err == syscall.ENOTDIR || errors.Is(err, os.ErrNotExist) {
		return syscall.ENOENT
	}

	return err
}
