package odm

import (
	"time"

	"github.com/handiism/overdrive-dl/internal/model"
)

// Manifest is the parsed content of a .odm loan file.
//
// A Manifest is immutable once parsed. It carries both the book metadata
// (title, author, cover) and the transfer details needed to acquire a
// license and download the audio parts.
type Manifest struct {
	// Path is the .odm file the manifest was parsed from.
	Path string

	// MediaID is the OverDrive media identifier, sent during license
	// acquisition.
	MediaID string

	// AcquisitionURL is the license server endpoint.
	AcquisitionURL string

	// BaseURL is the download server prefix; part download URLs are
	// BaseURL + "/" + part filename.
	BaseURL string

	// Title is the book title.
	Title string

	// Author holds the author names joined with "; ". Editors are used
	// when the title has no authors.
	Author string

	// CoverURL is the cover art URL, empty when the title has none.
	CoverURL string

	// Parts are the audio part records in manifest order.
	Parts []ManifestPart
}

// ManifestPart is one audio part record from the manifest.
type ManifestPart struct {
	Number   int
	Name     string
	FileName string
	FileSize int64
	Duration time.Duration
}

// ToBook converts the manifest into a model.Book with computed paths.
//
// Each manifest part becomes a model.Part whose download URL is the
// manifest base URL joined with the part's remote filename.
func (m *Manifest) ToBook(pathCfg *model.PathConfig, partCfg *model.PartConfig) *model.Book {
	book := model.NewBook(m.Author, m.Title, m.CoverURL, pathCfg)

	for _, p := range m.Parts {
		downloadURL := m.BaseURL + "/" + p.FileName
		part := model.NewPart(book, p.Number, p.Name, p.FileSize, p.Duration, downloadURL, partCfg)
		book.Parts = append(book.Parts, part)
	}

	return book
}
