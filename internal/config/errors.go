package config

import "fmt"

// ConfigError describes a configuration file that exists but cannot be
// read or parsed.
type ConfigError struct {
	// Path is the configuration file path.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
