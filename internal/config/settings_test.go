package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.DownloadDir == "" {
		t.Error("DownloadDir is empty")
	}
	if !s.FilenamesLowercase {
		t.Error("FilenamesLowercase should default to true")
	}
	if s.PartFileNameFormat != "part{number}.mp3" {
		t.Errorf("PartFileNameFormat = %q", s.PartFileNameFormat)
	}
	if s.Tags["genre"] != "Audiobook" {
		t.Errorf("Tags[genre] = %q, want Audiobook", s.Tags["genre"])
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.PartFileNameFormat != DefaultSettings().PartFileNameFormat {
		t.Errorf("PartFileNameFormat = %q", s.PartFileNameFormat)
	}
}

func TestLoadFile(t *testing.T) {
	content := `download_dir = "/srv/audiobooks"
filenames_lowercase = false

[tags]
genre = "Spoken Word"
albumartist = "Various"

[owner]
user = "media"
group = "media"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.DownloadDir != "/srv/audiobooks" {
		t.Errorf("DownloadDir = %q", s.DownloadDir)
	}
	if s.FilenamesLowercase {
		t.Error("FilenamesLowercase = true, want false")
	}
	if s.Tags["genre"] != "Spoken Word" {
		t.Errorf("Tags[genre] = %q", s.Tags["genre"])
	}
	if s.Tags["albumartist"] != "Various" {
		t.Errorf("Tags[albumartist] = %q", s.Tags["albumartist"])
	}
	if s.Owner.User != "media" || s.Owner.Group != "media" {
		t.Errorf("Owner = %+v", s.Owner)
	}

	// Unset keys keep their defaults.
	if s.PartFileNameFormat != "part{number}.mp3" {
		t.Errorf("PartFileNameFormat = %q", s.PartFileNameFormat)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is { not toml ["), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	content := `download_dir = "~/audiobooks"` + "\n"
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	want := filepath.Join(home, "audiobooks")
	if s.DownloadDir != want {
		t.Errorf("DownloadDir = %q, want %q", s.DownloadDir, want)
	}
}

func TestToPathConfig(t *testing.T) {
	s := DefaultSettings()
	s.DownloadDir = "/x"
	s.FilenamesLowercase = true

	cfg := s.ToPathConfig()
	if cfg.DownloadDir != "/x" {
		t.Errorf("DownloadDir = %q", cfg.DownloadDir)
	}
	if !cfg.LowercaseNames {
		t.Error("LowercaseNames = false")
	}
	if cfg.DownloadPathFormat != "{author}/{title}" {
		t.Errorf("DownloadPathFormat = %q", cfg.DownloadPathFormat)
	}
}
