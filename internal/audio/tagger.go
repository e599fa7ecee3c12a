package audio

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/handiism/overdrive-dl/internal/model"
)

// TagRules maps ID3 field names to the values they should be set to.
// Rules come from the [tags] table of the config file.
//
// Recognized fields: genre, artist, album, albumartist, composer,
// title, comment.
type TagRules map[string]string

// Tagger writes ID3 tags to downloaded part files.
//
// For each part the Tagger sets frames derived from the manifest
// (album, artist, per-part title, track number), then applies the
// configured rules on top, so a rule can override any derived frame.
// Cover art is embedded as an attached picture when provided.
//
// Example:
//
//	tagger := audio.NewTagger(settings.Tags)
//	for _, part := range book.Parts {
//	    if err := tagger.TagPart(part, artwork); err != nil {
//	        log.Printf("tagging %s: %v", part.Path, err)
//	    }
//	}
type Tagger struct {
	rules TagRules
}

// NewTagger creates a new Tagger with the given rules. Nil rules are
// allowed; the manifest-derived frames are still written.
func NewTagger(rules TagRules) *Tagger {
	return &Tagger{rules: rules}
}

// TagPart rewrites the ID3 tags of the part's file on disk.
//
// The file must exist. Artwork may be nil to skip cover embedding.
// Returns an error for unknown rule fields, so config typos surface
// instead of silently dropping tags.
func (t *Tagger) TagPart(part *model.Part, artwork []byte) error {
	tag, err := id3v2.Open(part.Path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", part.Path, err)
	}
	defer tag.Close()

	t.setPartFrames(tag, part)

	if err := t.applyRules(tag); err != nil {
		return err
	}

	if artwork != nil {
		setArtwork(tag, artwork)
	}

	return tag.Save()
}

// setPartFrames writes the frames derived from the manifest.
func (t *Tagger) setPartFrames(tag *id3v2.Tag, part *model.Part) {
	book := part.Book

	tag.SetAlbum(book.Title)
	tag.SetArtist(book.Author)
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, book.Author)
	tag.SetTitle(fmt.Sprintf("%s - Part %02d", book.Title, part.Number))
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d/%d", part.Number, len(book.Parts)))
}

// applyRules applies the configured field rules on top of the derived
// frames.
func (t *Tagger) applyRules(tag *id3v2.Tag) error {
	for field, value := range t.rules {
		switch strings.ToLower(field) {
		case "genre":
			tag.SetGenre(value)
		case "artist":
			tag.SetArtist(value)
		case "album":
			tag.SetAlbum(value)
		case "albumartist":
			tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, value)
		case "composer":
			tag.AddTextFrame("TCOM", id3v2.EncodingUTF8, value)
		case "title":
			tag.SetTitle(value)
		case "comment":
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding: id3v2.EncodingUTF8,
				Language: "eng",
				Text:     value,
			})
		default:
			return fmt.Errorf("unknown tag field %q", field)
		}
	}
	return nil
}

// setArtwork embeds cover art as an attached picture frame, replacing
// any existing pictures.
func setArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
