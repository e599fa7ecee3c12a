// Package http provides an HTTP client configured for OverDrive's
// servers.
//
// The Client in this package handles:
//   - The OverDrive Media Console User-Agent headers
//   - Per-request License and ClientID headers
//   - Streaming file downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// License handshake
//	licenseXML, err := client.GetString(ctx, acquisitionURL, nil)
//
//	// Part download with progress callback
//	headers := map[string]string{"License": licenseXML, "ClientID": clientID}
//	client.DownloadFile(ctx, partURL, "/path/part01.mp3", headers, func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// Failed requests are reported as *NetworkError.
package http
