package odm

import "fmt"

// ParseError describes a missing, malformed or incomplete ODM manifest.
type ParseError struct {
	// Path is the manifest file path.
	Path string

	// Msg describes what was wrong with the manifest.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("odm %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("odm %s: %s", e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
