// Package ioutils provides file system utilities for overdrive-dl.
//
// This package contains:
//   - File existence checks with expected-size verification
//   - Directory creation and file writing
//   - Ownership changes (the --owner flag)
//   - Cover art resizing and JPEG conversion
//
// Failed operations are reported as *FileSystemError.
package ioutils
