// Package audio writes ID3 tags to downloaded audiobook parts.
//
// The Tagger combines manifest-derived frames (album, artist, per-part
// title, track number) with configured rules from the config file's
// [tags] table, and can embed cover art:
//
//	tagger := audio.NewTagger(settings.Tags)
//	err := tagger.TagPart(part, artworkBytes)
package audio
