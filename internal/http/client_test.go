package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGetSendsHeaders(t *testing.T) {
	var gotUA, gotLicense, gotClientID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLicense = r.Header.Get("License")
		gotClientID = r.Header.Get("ClientID")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient()
	body, err := client.Get(context.Background(), server.URL, map[string]string{
		"License":  "<License/>",
		"ClientID": "ABC-123",
	})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
	}
	if gotLicense != "<License/>" {
		t.Errorf("License = %q", gotLicense)
	}
	if gotClientID != "ABC-123" {
		t.Errorf("ClientID = %q", gotClientID)
	}
}

func TestGetNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL, nil)
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if nerr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", nerr.StatusCode)
	}
}

func TestGetConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := NewClient().Get(context.Background(), server.URL, nil)
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if nerr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", nerr.StatusCode)
	}
}

func TestDownloadFile(t *testing.T) {
	content := []byte("pretend this is an mp3")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "part01.mp3")

	var lastWritten int64
	err := NewClient().DownloadFile(context.Background(), server.URL, dest, nil, func(written, total int64) {
		lastWritten = written
	})
	if err != nil {
		t.Fatalf("DownloadFile failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("file content = %q, want %q", got, content)
	}
	if lastWritten != int64(len(content)) {
		t.Errorf("progress written = %d, want %d", lastWritten, len(content))
	}
}

func TestDownloadFileNon200LeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "part01.mp3")
	err := NewClient().DownloadFile(context.Background(), server.URL, dest, nil, nil)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		t.Error("destination file was created despite failed request")
	}
}
