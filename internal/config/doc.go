// Package config provides configuration management for overdrive-dl.
//
// Configuration lives in a TOML file, config.toml by default:
//
//	download_dir = "~/Documents/audiobooks"
//	filenames_lowercase = true
//
//	[tags]
//	genre = "Audiobook"
//
//	[owner]
//	user = "deg"
//	group = "media"
//
// # Loading
//
//	settings, err := config.Load("config.toml")
//	// Missing file: defaults. Malformed file: *ConfigError.
//
// # Defaults
//
// DefaultSettings downloads to ~/Documents/audiobooks/{author}/{title},
// lowercases filenames, names parts partNN.mp3 and tags the genre as
// Audiobook.
package config
