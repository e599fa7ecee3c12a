// Package model defines the core data structures used throughout
// overdrive-dl.
//
// # Book
//
// Book represents an audiobook loan with metadata and computed file paths:
//
//	book := model.NewBook("Joseph Heller", "Catch-22", coverURL, pathConfig)
//	fmt.Println(book.Path)      // Where the book's files are saved
//	fmt.Println(book.CoverPath) // Where to save cover art
//
// # Part
//
// Part represents a single downloadable audio segment:
//
//	part := model.NewPart(book, 1, "Catch-22-Part01", size, duration, url, partConfig)
//	fmt.Println(part.Path) // Full path where the part will be saved
//
// # Path Configuration
//
// PathConfig controls how book paths are computed using placeholders:
//
//	cfg := &model.PathConfig{
//	    DownloadDir:         "/audiobooks",
//	    DownloadPathFormat:  "{author}/{title}",
//	    CoverFileNameFormat: "{title}",
//	    LowercaseNames:      true,
//	}
//
// Available placeholders: {author}, {title}, {name}, {number}
package model
