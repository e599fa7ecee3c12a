package ioutils

import "fmt"

// FileSystemError describes a failed file system operation: missing
// directories, permission problems, failed chowns.
type FileSystemError struct {
	// Op names the operation that failed.
	Op string

	// Path is the affected file or directory.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

func (e *FileSystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Path)
}

func (e *FileSystemError) Unwrap() error { return e.Err }
