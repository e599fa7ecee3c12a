package ioutils

import "os"

// FileExists reports whether path is a regular file. When expectedSize
// is non-negative the file must also have exactly that size; this is
// how already-downloaded parts are recognized, since a partial download
// leaves a smaller file behind.
func FileExists(path string, expectedSize int64) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return expectedSize < 0 || info.Size() == expectedSize
}

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return &FileSystemError{Op: "create directory", Path: path, Err: err}
	}
	return nil
}

// WriteFile writes data to a file with mode 0644, truncating any
// existing content.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &FileSystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}
