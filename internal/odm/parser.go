package odm

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/handiism/overdrive-dl/internal/odm/dto"
)

// mediaHeader must appear near the start of any real .odm file.
const mediaHeader = "<OverDriveMedia"

// metadataRegexp matches the Metadata document embedded in the raw
// manifest text. The block sits inside a CDATA section in real files,
// so it is extracted from the raw bytes and decoded on its own.
var metadataRegexp = regexp.MustCompile(`(?s)<Metadata>.*</Metadata>`)

// Parser reads OverDrive .odm manifest files.
//
// A .odm file is a small XML document describing a licensed audiobook:
// the license server, the download server, the ordered list of audio
// parts, and a CDATA-embedded Metadata document with title, creators
// and cover URL.
//
// Example usage:
//
//	parser := odm.NewParser()
//	manifest, err := parser.ParseFile("book.odm")
//	if err != nil {
//	    var perr *odm.ParseError
//	    if errors.As(err, &perr) {
//	        // malformed manifest
//	    }
//	}
//	fmt.Printf("%s by %s, %d parts\n", manifest.Title, manifest.Author, len(manifest.Parts))
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a .odm file.
//
// Returns a *ParseError when the file is missing, is a directory, does
// not look like an OverDrive manifest, or lacks required elements:
// the Metadata block, a non-empty Title, a download base URL, or a part
// list matching the declared part count.
//
// ParseFile has no side effects beyond reading the file.
func (p *Parser) ParseFile(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "file does not exist", Err: err}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Msg: "expected a .odm file, got a directory"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "cannot read file", Err: err}
	}

	head := data
	if len(head) > 100 {
		head = head[:100]
	}
	if !strings.Contains(string(head), mediaHeader) {
		return nil, &ParseError{Path: path, Msg: "not an OverDriveMedia file"}
	}

	return p.parse(path, data)
}

func (p *Parser) parse(path string, data []byte) (*Manifest, error) {
	var media dto.XMLMedia
	if err := xml.Unmarshal(data, &media); err != nil {
		return nil, &ParseError{Path: path, Msg: "malformed XML", Err: err}
	}

	metadata, err := extractMetadata(path, data)
	if err != nil {
		return nil, err
	}

	if metadata.Title == "" {
		return nil, &ParseError{Path: path, Msg: "Metadata has no Title"}
	}

	protocol := media.DownloadProtocol()
	if protocol == nil || protocol.BaseURL == "" {
		return nil, &ParseError{Path: path, Msg: "no download URL in manifest"}
	}

	count, xmlParts := media.PartList()
	if len(xmlParts) == 0 {
		return nil, &ParseError{Path: path, Msg: "manifest has no parts"}
	}
	if count != len(xmlParts) {
		return nil, &ParseError{
			Path: path,
			Msg:  fmt.Sprintf("expecting %d parts, found %d part records", count, len(xmlParts)),
		}
	}

	manifest := &Manifest{
		Path:           path,
		MediaID:        media.ID,
		AcquisitionURL: media.License.AcquisitionURL,
		BaseURL:        protocol.BaseURL,
		Title:          metadata.Title,
		Author:         metadata.Author(),
		CoverURL:       metadata.CoverURL,
	}

	for _, xp := range xmlParts {
		// Durations are informational only; a malformed one is not a
		// reason to reject the manifest.
		duration, _ := parseDuration(xp.Duration)
		manifest.Parts = append(manifest.Parts, ManifestPart{
			Number:   xp.Number,
			Name:     xp.Name,
			FileName: xp.FileName,
			FileSize: xp.FileSize,
			Duration: duration,
		})
	}

	return manifest, nil
}

// extractMetadata pulls the embedded Metadata document out of the raw
// manifest text and decodes it.
func extractMetadata(path string, data []byte) (*dto.XMLMetadata, error) {
	block := metadataRegexp.Find(data)
	if block == nil {
		return nil, &ParseError{Path: path, Msg: "could not find Metadata"}
	}

	var metadata dto.XMLMetadata
	if err := xml.Unmarshal(block, &metadata); err != nil {
		return nil, &ParseError{Path: path, Msg: "malformed Metadata", Err: err}
	}

	return &metadata, nil
}

// parseDuration parses manifest durations of the form "MM:SS" or
// "HH:MM:SS".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	fields := strings.Split(s, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("unexpected duration format: %q", s)
	}

	var total time.Duration
	for _, field := range fields {
		var n int
		if _, err := fmt.Sscanf(field, "%d", &n); err != nil {
			return 0, fmt.Errorf("unexpected duration format: %q", s)
		}
		total = total*60 + time.Duration(n)*time.Second
	}

	return total, nil
}
