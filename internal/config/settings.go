package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/handiism/overdrive-dl/internal/model"
)

// DefaultFileName is the config file looked up in the working directory
// when no --config flag is given.
const DefaultFileName = "config.toml"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadDir        string `mapstructure:"download_dir"`
	FilenamesLowercase bool   `mapstructure:"filenames_lowercase"`

	// File naming
	DownloadPathFormat  string `mapstructure:"download_path_format"`
	PartFileNameFormat  string `mapstructure:"part_file_name_format"`
	CoverFileNameFormat string `mapstructure:"cover_file_name_format"`

	// ClientIDPath is where the persisted client identifier lives.
	// Empty means the default, ~/.overdrive-dl.clientid.
	ClientIDPath string `mapstructure:"client_id_path"`

	// Cover art settings
	EmbedCoverInTags  bool `mapstructure:"embed_cover_in_tags"`
	CoverMaxSize      int  `mapstructure:"cover_max_size"`
	ConvertCoverToJPG bool `mapstructure:"convert_cover_to_jpg"`

	// Tags holds ID3 frame rules applied with --tags, keyed by field
	// name (genre, artist, album, albumartist, composer, comment).
	Tags map[string]string `mapstructure:"tags"`

	// Owner holds the chown target applied with --owner.
	Owner OwnerSettings `mapstructure:"owner"`
}

// OwnerSettings names the user and group downloaded files are chowned
// to. Either may be empty to leave that half unchanged.
type OwnerSettings struct {
	User  string `mapstructure:"user"`
	Group string `mapstructure:"group"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DownloadDir:        filepath.Join(homeDir, "Documents", "audiobooks"),
		FilenamesLowercase: true,

		DownloadPathFormat:  "{author}/{title}",
		PartFileNameFormat:  "part{number}.mp3",
		CoverFileNameFormat: "{title}",

		EmbedCoverInTags:  true,
		CoverMaxSize:      1000,
		ConvertCoverToJPG: true,

		Tags: map[string]string{"genre": "Audiobook"},
	}
}

// Load reads settings from a TOML file, merged over the defaults.
//
// A missing file is not an error: the defaults are returned unchanged.
// A file that exists but cannot be parsed is reported as *ConfigError.
// A leading "~/" in download_dir is expanded to the user's home
// directory.
func Load(path string) (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetDefault("download_dir", defaults.DownloadDir)
	v.SetDefault("filenames_lowercase", defaults.FilenamesLowercase)
	v.SetDefault("download_path_format", defaults.DownloadPathFormat)
	v.SetDefault("part_file_name_format", defaults.PartFileNameFormat)
	v.SetDefault("cover_file_name_format", defaults.CoverFileNameFormat)
	v.SetDefault("client_id_path", defaults.ClientIDPath)
	v.SetDefault("embed_cover_in_tags", defaults.EmbedCoverInTags)
	v.SetDefault("cover_max_size", defaults.CoverMaxSize)
	v.SetDefault("convert_cover_to_jpg", defaults.ConvertCoverToJPG)
	v.SetDefault("tags", defaults.Tags)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	settings.DownloadDir = expandHome(settings.DownloadDir)
	settings.ClientIDPath = expandHome(settings.ClientIDPath)

	return settings, nil
}

// ToPathConfig converts settings to a model.PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		DownloadDir:         s.DownloadDir,
		DownloadPathFormat:  s.DownloadPathFormat,
		CoverFileNameFormat: s.CoverFileNameFormat,
		LowercaseNames:      s.FilenamesLowercase,
	}
}

// ToPartConfig converts settings to a model.PartConfig.
func (s *Settings) ToPartConfig() *model.PartConfig {
	return &model.PartConfig{
		FileNameFormat: s.PartFileNameFormat,
	}
}

// expandHome expands a leading "~" to the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
