package http

import (
	"context"
	"io"
	"net/http"
	"os"
)

// User agents recognized by OverDrive's servers. The short form is sent
// with license and part requests, the long form with cover art requests.
const (
	UserAgent     = "OverDrive Media Console"
	UserAgentLong = "OverDrive Media Console (unknown version)" +
		"CFNetwork/976 Darwin/18.2.0 (x86_64)"
)

// Client wraps HTTP operations with OverDrive-specific configuration.
//
// Client provides:
//   - The OverDrive Media Console User-Agent header
//   - Per-request extra headers (License, ClientID)
//   - Streaming file download with progress tracking
//
// Example usage:
//
//	client := http.NewClient()
//
//	// Fetch the license XML
//	body, err := client.GetString(ctx, acquisitionURL, nil)
//
//	// Download an audio part
//	headers := map[string]string{"License": lic, "ClientID": clientID}
//	err = client.DownloadFile(ctx, partURL, "/path/part01.mp3", headers, func(written, total int64) {
//	    fmt.Printf("%d / %d bytes\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client configured for OverDrive.
//
// The client has no overall timeout: audio parts run to hours of audio
// and cancellation is handled through the request context.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  UserAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// The request carries the OverDrive User-Agent unless headers overrides
// it. Extra headers may be nil.
//
// Returns a *NetworkError if the request fails or the response status
// is not 200 OK.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a
// string. This is a convenience wrapper around Get for fetching text
// content like the license XML.
func (c *Client) GetString(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := c.Get(ctx, url, headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadFile downloads a file to the specified path with optional
// progress callback.
//
// The file is created (or truncated if it exists) and the content is
// streamed directly to disk, avoiding loading the entire file into
// memory.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - headers: Extra request headers (License, ClientID); may be nil
//   - onProgress: Optional callback called with (bytesWritten, totalBytes);
//     pass nil to disable progress tracking
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, headers map[string]string, onProgress func(written, total int64)) error {
	resp, err := c.do(ctx, http.MethodGet, url, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}
