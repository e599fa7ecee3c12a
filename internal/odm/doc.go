// Package odm parses OverDrive .odm loan files.
//
// A .odm file is the XML manifest handed out for a borrowed audiobook.
// It names the license server, the download server and the ordered list
// of audio parts, and embeds a Metadata document (title, creators,
// cover URL) inside a CDATA section.
//
// # Parsing
//
// Use the Parser to read a manifest:
//
//	parser := odm.NewParser()
//	manifest, err := parser.ParseFile("book.odm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s by %s\n", manifest.Title, manifest.Author)
//	for _, part := range manifest.Parts {
//	    fmt.Printf("  %02d. %s (%d bytes)\n", part.Number, part.Name, part.FileSize)
//	}
//
// Malformed manifests are reported as *ParseError.
//
// # Conversion
//
// Manifest.ToBook converts the parsed manifest into the model types with
// computed local paths:
//
//	book := manifest.ToBook(pathConfig, partConfig)
package odm
