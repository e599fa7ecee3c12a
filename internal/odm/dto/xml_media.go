package dto

import "encoding/xml"

// XMLMedia maps the outer OverDriveMedia document of a .odm file.
//
// The Metadata block inside the file is CDATA-embedded and is decoded
// separately via XMLMetadata.
type XMLMedia struct {
	XMLName xml.Name   `xml:"OverDriveMedia"`
	ID      string     `xml:"id,attr"`
	License XMLLicense `xml:"License"`
	Formats []XMLFormat `xml:"Formats>Format"`
}

// XMLLicense carries the license server details.
type XMLLicense struct {
	AcquisitionURL string `xml:"AcquisitionUrl"`
}

// XMLFormat describes one downloadable format of the title.
type XMLFormat struct {
	Name      string        `xml:"name,attr"`
	Protocols []XMLProtocol `xml:"Protocols>Protocol"`
	Parts     XMLParts      `xml:"Parts"`
}

// XMLProtocol describes a transfer protocol entry. Audio parts are
// fetched via the entry whose method is "download".
type XMLProtocol struct {
	Method  string `xml:"method,attr"`
	BaseURL string `xml:"baseurl,attr"`
}

// XMLParts is the part list with the declared part count.
type XMLParts struct {
	Count int       `xml:"count,attr"`
	Parts []XMLPart `xml:"Part"`
}

// XMLPart is one audio part record.
type XMLPart struct {
	Number   int    `xml:"number,attr"`
	FileSize int64  `xml:"filesize,attr"`
	Name     string `xml:"name,attr"`
	FileName string `xml:"filename,attr"`
	Duration string `xml:"duration,attr"`
}

// DownloadProtocol returns the Protocol entry with method "download",
// or nil when the manifest has none.
func (m *XMLMedia) DownloadProtocol() *XMLProtocol {
	for i := range m.Formats {
		for j := range m.Formats[i].Protocols {
			if m.Formats[i].Protocols[j].Method == "download" {
				return &m.Formats[i].Protocols[j]
			}
		}
	}
	return nil
}

// PartList returns the declared part count and part records of the
// first format carrying parts.
func (m *XMLMedia) PartList() (int, []XMLPart) {
	for i := range m.Formats {
		if len(m.Formats[i].Parts.Parts) > 0 || m.Formats[i].Parts.Count > 0 {
			return m.Formats[i].Parts.Count, m.Formats[i].Parts.Parts
		}
	}
	return 0, nil
}
