package model

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "file_with_colons.mp3"},
		{"slash/in\\name", "slash_in_name"},
		{"question?.mp3", "question_.mp3"},
		{"trailing dots...", "trailing dots"},
		{"too   many    spaces", "too many spaces"},
		{"trailing space   ", "trailing space"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewBook(t *testing.T) {
	cfg := &PathConfig{
		DownloadDir:         "/audiobooks",
		DownloadPathFormat:  "{author}/{title}",
		CoverFileNameFormat: "{title}",
	}

	book := NewBook("Joseph Heller", "Catch-22", "https://img.example.com/cover.jpg", cfg)

	want := filepath.Join("/audiobooks", "Joseph Heller", "Catch-22")
	if book.Path != want {
		t.Errorf("Path = %q, want %q", book.Path, want)
	}

	wantCover := filepath.Join(want, "Catch-22.jpg")
	if book.CoverPath != wantCover {
		t.Errorf("CoverPath = %q, want %q", book.CoverPath, wantCover)
	}

	wantAuthorDir := filepath.Join("/audiobooks", "Joseph Heller")
	if book.AuthorDir() != wantAuthorDir {
		t.Errorf("AuthorDir() = %q, want %q", book.AuthorDir(), wantAuthorDir)
	}
}

func TestNewBookLowercase(t *testing.T) {
	cfg := &PathConfig{
		DownloadDir:         "/audiobooks",
		DownloadPathFormat:  "{author}/{title}",
		CoverFileNameFormat: "{title}",
		LowercaseNames:      true,
	}

	book := NewBook("Joseph Heller", "Catch-22", "", cfg)

	if book.Author != "joseph heller" {
		t.Errorf("Author = %q, want %q", book.Author, "joseph heller")
	}
	if book.Title != "catch-22" {
		t.Errorf("Title = %q, want %q", book.Title, "catch-22")
	}

	want := filepath.Join("/audiobooks", "joseph heller", "catch-22")
	if book.Path != want {
		t.Errorf("Path = %q, want %q", book.Path, want)
	}
}

func TestNewBookNoCover(t *testing.T) {
	cfg := &PathConfig{
		DownloadDir:         "/audiobooks",
		DownloadPathFormat:  "{author}/{title}",
		CoverFileNameFormat: "{title}",
	}

	book := NewBook("Author", "Title", "", cfg)

	if book.HasCover() {
		t.Error("HasCover() = true, want false")
	}
	if book.CoverPath != "" {
		t.Errorf("CoverPath = %q, want empty", book.CoverPath)
	}
}

func TestNewBookSanitizesNames(t *testing.T) {
	cfg := &PathConfig{
		DownloadDir:         "/audiobooks",
		DownloadPathFormat:  "{author}/{title}",
		CoverFileNameFormat: "{title}",
	}

	book := NewBook("Some/Author", "Title: Subtitle", "", cfg)

	want := filepath.Join("/audiobooks", "Some_Author", "Title_ Subtitle")
	if book.Path != want {
		t.Errorf("Path = %q, want %q", book.Path, want)
	}
}

func TestNewPart(t *testing.T) {
	pathCfg := &PathConfig{
		DownloadDir:         "/audiobooks",
		DownloadPathFormat:  "{author}/{title}",
		CoverFileNameFormat: "{title}",
	}
	partCfg := &PartConfig{FileNameFormat: "part{number}.mp3"}

	book := NewBook("Joseph Heller", "Catch-22", "", pathCfg)
	part := NewPart(book, 3, "Catch-22-Part03", 1234567, 55*time.Minute, "http://dl.example.com/p3.mp3", partCfg)

	want := filepath.Join(book.Path, "part03.mp3")
	if part.Path != want {
		t.Errorf("Path = %q, want %q", part.Path, want)
	}
	if part.FileSize != 1234567 {
		t.Errorf("FileSize = %d, want 1234567", part.FileSize)
	}
	if part.Duration != 55*time.Minute {
		t.Errorf("Duration = %v, want 55m", part.Duration)
	}
}

func TestPartFileNamePlaceholders(t *testing.T) {
	pathCfg := &PathConfig{
		DownloadDir:         "/audiobooks",
		DownloadPathFormat:  "{author}/{title}",
		CoverFileNameFormat: "{title}",
	}

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"zero padded number", "part{number}.mp3", "part01.mp3"},
		{"manifest name", "{name}.mp3", "Book-Part01.mp3"},
		{"title and number", "{title} {number}.mp3", "Title 01.mp3"},
	}

	book := NewBook("Author", "Title", "", pathCfg)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part := NewPart(book, 1, "Book-Part01", 0, 0, "", &PartConfig{FileNameFormat: tt.format})
			if got := filepath.Base(part.Path); got != tt.want {
				t.Errorf("file name = %q, want %q", got, tt.want)
			}
		})
	}
}
