package dto

import (
	"encoding/xml"
	"strings"
)

// XMLMetadata maps the Metadata document embedded in a .odm file.
type XMLMetadata struct {
	XMLName  xml.Name     `xml:"Metadata"`
	Title    string       `xml:"Title"`
	SubTitle string       `xml:"SubTitle"`
	Creators []XMLCreator `xml:"Creators>Creator"`
	CoverURL string       `xml:"CoverUrl"`
}

// XMLCreator is one contributor entry. The role attribute distinguishes
// authors, editors and narrators.
type XMLCreator struct {
	Role string `xml:"role,attr"`
	Name string `xml:",chardata"`
}

// Author returns all creators with the "Author" role joined with "; ".
// When the title has no authors, editors are used instead.
func (md *XMLMetadata) Author() string {
	if author := md.creatorsByRole("Author"); author != "" {
		return author
	}
	return md.creatorsByRole("Editor")
}

func (md *XMLMetadata) creatorsByRole(role string) string {
	var names []string
	for _, c := range md.Creators {
		if c.Role == role && strings.TrimSpace(c.Name) != "" {
			names = append(names, strings.TrimSpace(c.Name))
		}
	}
	return strings.Join(names, "; ")
}
