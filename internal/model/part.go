package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Part represents a single audio part of an audiobook.
//
// Part contains the metadata for one downloadable segment:
//   - Part number and display name from the manifest
//   - Expected file size, used to decide whether an existing file
//     can be skipped
//   - Duration for metadata display
//   - Download URL and computed local file path
//
// The file path is computed when creating a part via NewPart, using the
// book's path and the PartConfig file name format.
//
// Example:
//
//	cfg := &PartConfig{FileNameFormat: "part{number}.mp3"}
//	part := NewPart(book, 1, "Catch-22-Part01", 31337, 55*time.Minute, mp3URL, cfg)
//	// part.Path = "/audiobooks/joseph heller/catch-22/part01.mp3"
type Part struct {
	// Book is a reference to the parent book.
	Book *Book

	// Number is the part number (1-indexed, manifest order).
	Number int

	// Name is the display name of the part from the manifest,
	// e.g. "Catch-22-Part01".
	Name string

	// FileSize is the expected size in bytes, as declared by the manifest.
	FileSize int64

	// Duration is the playing time of the part.
	Duration time.Duration

	// DownloadURL is the URL to fetch the part from. The license and
	// client ID travel as request headers, not as part of this URL.
	DownloadURL string

	// Path is the computed local file path where the part will be saved.
	Path string
}

// PartConfig holds part file naming settings.
//
// The FileNameFormat supports placeholders:
//   - {number} - Part number (2 digits, zero-padded)
//   - {name} - Part name from the manifest
//   - {author} - Author name (from book)
//   - {title} - Book title
type PartConfig struct {
	// FileNameFormat is the template for part filenames.
	// Must include the file extension (typically ".mp3").
	FileNameFormat string
}

// NewPart creates a new Part with computed path.
//
// The file path is computed from the book's path and the configured
// filename format. Invalid filename characters are replaced with
// underscores.
func NewPart(book *Book, number int, name string, fileSize int64, duration time.Duration, downloadURL string, cfg *PartConfig) *Part {
	part := &Part{
		Book:        book,
		Number:      number,
		Name:        name,
		FileSize:    fileSize,
		Duration:    duration,
		DownloadURL: downloadURL,
	}

	part.Path = part.parseFilePath(cfg)

	return part
}

// parseFilePath computes the full file path for this part.
func (p *Part) parseFilePath(cfg *PartConfig) string {
	fileName := p.parseFileName(cfg)
	filePath := filepath.Join(p.Book.Path, fileName)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(filePath) >= 260 {
		ext := filepath.Ext(filePath)
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(p.Book.Path, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

// parseFileName computes the filename from the config template.
func (p *Part) parseFileName(cfg *PartConfig) string {
	fileName := cfg.FileNameFormat
	fileName = strings.ReplaceAll(fileName, "{number}", fmt.Sprintf("%02d", p.Number))
	fileName = strings.ReplaceAll(fileName, "{name}", p.Name)
	fileName = strings.ReplaceAll(fileName, "{author}", p.Book.Author)
	fileName = strings.ReplaceAll(fileName, "{title}", p.Book.Title)
	return sanitizeFileName(fileName)
}
