package model

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Book represents one OverDrive audiobook loan with its metadata and parts.
//
// Book contains the information needed to download and organize the
// audiobook files:
//   - Author and Title for metadata and file naming
//   - CoverURL for downloading cover art
//   - Computed paths for saving files locally
//
// Paths are automatically computed when creating a book via NewBook,
// using placeholders like {author} and {title}.
//
// Example:
//
//	cfg := &PathConfig{
//	    DownloadDir:         "/audiobooks",
//	    DownloadPathFormat:  "{author}/{title}",
//	    CoverFileNameFormat: "{title}",
//	}
//	book := NewBook("Joseph Heller", "Catch-22", coverURL, cfg)
//	// book.Path = "/audiobooks/Joseph Heller/Catch-22"
type Book struct {
	// Author is the book author. Multiple authors are joined with "; ".
	Author string

	// Title is the book title.
	Title string

	// CoverURL is the URL to download the cover art from.
	// Empty string means no cover is available.
	CoverURL string

	// Parts contains all audio parts of this book, in manifest order.
	Parts []*Part

	// Path is the computed local directory path where the book files
	// will be saved. Set by NewBook based on PathConfig.
	Path string

	// CoverPath is the computed local file path for the cover art.
	// Empty if the book has no cover.
	CoverPath string
}

// PathConfig holds path formatting settings for books and covers.
//
// The path fields support placeholders that are replaced with actual values:
//   - {author} - Author name
//   - {title} - Book title
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    DownloadDir:         "/home/user/Documents/audiobooks",
//	    DownloadPathFormat:  "{author}/{title}",
//	    CoverFileNameFormat: "{title}",
//	    LowercaseNames:      true,
//	}
type PathConfig struct {
	// DownloadDir is the base directory all books are saved under.
	DownloadDir string

	// DownloadPathFormat is the per-book directory template relative
	// to DownloadDir. Example: "{author}/{title}"
	DownloadPathFormat string

	// CoverFileNameFormat is the filename template for cover art,
	// without extension. The extension is taken from the cover URL.
	CoverFileNameFormat string

	// LowercaseNames lowercases author and title before any path
	// computation when true.
	LowercaseNames bool
}

// NewBook creates a new Book with computed paths based on settings.
//
// When cfg.LowercaseNames is set, the author and title are lowercased
// before being stored, so paths and metadata stay consistent.
// Invalid filename characters are replaced with underscores.
func NewBook(author, title, coverURL string, cfg *PathConfig) *Book {
	if cfg.LowercaseNames {
		author = strings.ToLower(author)
		title = strings.ToLower(title)
	}

	book := &Book{
		Author:   author,
		Title:    title,
		CoverURL: coverURL,
	}

	book.Path = book.parseFolderPath(cfg)
	book.CoverPath = book.parseCoverPath(cfg)

	return book
}

// HasCover returns true if the book has cover art available for download.
func (b *Book) HasCover() bool {
	return b.CoverURL != ""
}

// AuthorDir returns the author-level directory containing the book folder.
func (b *Book) AuthorDir() string {
	return filepath.Dir(b.Path)
}

// parseFolderPath computes the book folder path from the config template.
func (b *Book) parseFolderPath(cfg *PathConfig) string {
	rel := cfg.DownloadPathFormat
	rel = strings.ReplaceAll(rel, "{author}", sanitizeFileName(b.Author))
	rel = strings.ReplaceAll(rel, "{title}", sanitizeFileName(b.Title))

	folderPath := filepath.Join(cfg.DownloadDir, rel)

	// Limit path length for cross-platform compatibility (Windows MAX_PATH)
	if len(folderPath) >= 248 {
		folderPath = folderPath[:247]
	}

	return folderPath
}

// parseCoverPath computes the full cover art file path.
//
// The extension is taken from the cover URL, defaulting to ".jpg" when
// the URL carries none.
func (b *Book) parseCoverPath(cfg *PathConfig) string {
	if !b.HasCover() {
		return ""
	}

	ext := ".jpg"
	if u, err := url.Parse(b.CoverURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}

	fileName := cfg.CoverFileNameFormat
	fileName = strings.ReplaceAll(fileName, "{author}", b.Author)
	fileName = strings.ReplaceAll(fileName, "{title}", b.Title)
	fileName = sanitizeFileName(fileName)

	coverPath := filepath.Join(b.Path, fileName+ext)

	// Limit total path length for Windows compatibility
	if len(coverPath) >= 260 {
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			coverPath = filepath.Join(b.Path, fileName[:maxLen]+ext)
		}
	}

	return coverPath
}

// sanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
