package license

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httpx "github.com/handiism/overdrive-dl/internal/http"
	"github.com/handiism/overdrive-dl/internal/odm"
)

const sampleLicense = `<License xmlns="http://license.overdrive.com/2008/03/License.xsd">` +
	`<SignedInfo><Version>1.0</Version><ContentID>A1B2</ContentID>` +
	`<ClientID>11111111-2222-3333-4444-555566667777</ClientID></SignedInfo>` +
	`<Signature>sig</Signature></License>`

func newTestAcquirer(t *testing.T) *Acquirer {
	t.Helper()
	a := NewAcquirer(httpx.NewClient(), nil)
	a.ClientIDPath = filepath.Join(t.TempDir(), "clientid")
	return a
}

func TestHash(t *testing.T) {
	h1 := hash("11111111-2222-3333-4444-555566667777")
	h2 := hash("11111111-2222-3333-4444-555566667777")
	h3 := hash("99999999-2222-3333-4444-555566667777")

	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if h1 == h3 {
		t.Error("hash does not depend on client ID")
	}

	sum, err := base64.StdEncoding.DecodeString(h1)
	if err != nil {
		t.Fatalf("hash is not valid base64: %v", err)
	}
	if len(sum) != 20 {
		t.Errorf("decoded hash length = %d, want 20 (SHA-1)", len(sum))
	}
}

func TestExtractClientID(t *testing.T) {
	id, err := extractClientID(sampleLicense)
	if err != nil {
		t.Fatalf("extractClientID failed: %v", err)
	}
	if id != "11111111-2222-3333-4444-555566667777" {
		t.Errorf("clientID = %q", id)
	}
}

func TestExtractClientIDMissing(t *testing.T) {
	lic := `<License xmlns="http://license.overdrive.com/2008/03/License.xsd">` +
		`<SignedInfo><Version>1.0</Version></SignedInfo></License>`
	if _, err := extractClientID(lic); err == nil {
		t.Error("expected error for license without ClientID")
	}
}

func TestClientIDPersisted(t *testing.T) {
	a := newTestAcquirer(t)

	first, err := a.clientID()
	if err != nil {
		t.Fatalf("clientID failed: %v", err)
	}
	if first == "" {
		t.Fatal("empty client ID")
	}
	if first != strings.ToUpper(first) {
		t.Errorf("client ID %q is not upper-case", first)
	}

	second, err := a.clientID()
	if err != nil {
		t.Fatalf("clientID failed: %v", err)
	}
	if first != second {
		t.Errorf("client ID changed between calls: %q vs %q", first, second)
	}

	data, err := os.ReadFile(a.ClientIDPath)
	if err != nil {
		t.Fatalf("client ID file not written: %v", err)
	}
	if strings.TrimSpace(string(data)) != first {
		t.Errorf("stored client ID = %q, want %q", data, first)
	}
}

func TestLicenseAcquisition(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotUA = r.Header.Get("User-Agent")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(sampleLicense))
	}))
	defer server.Close()

	odmPath := filepath.Join(t.TempDir(), "book.odm")
	if err := os.WriteFile(odmPath, []byte("<OverDriveMedia/>"), 0644); err != nil {
		t.Fatal(err)
	}

	manifest := &odm.Manifest{
		Path:           odmPath,
		MediaID:        "MEDIA-1",
		AcquisitionURL: server.URL,
	}

	a := newTestAcquirer(t)
	lic, clientID, err := a.License(context.Background(), manifest)
	if err != nil {
		t.Fatalf("License failed: %v", err)
	}

	if lic != sampleLicense {
		t.Errorf("license = %q", lic)
	}
	if clientID != "11111111-2222-3333-4444-555566667777" {
		t.Errorf("clientID = %q", clientID)
	}
	if gotUA != httpx.UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, httpx.UserAgent)
	}

	for _, key := range []string{"MediaID", "ClientID", "OMC", "OS", "Hash"} {
		if gotQuery[key] == "" {
			t.Errorf("query parameter %s missing", key)
		}
	}
	if gotQuery["MediaID"] != "MEDIA-1" {
		t.Errorf("MediaID = %q", gotQuery["MediaID"])
	}
	if gotQuery["OMC"] != omcVersion || gotQuery["OS"] != osVersion {
		t.Errorf("OMC/OS = %q/%q", gotQuery["OMC"], gotQuery["OS"])
	}

	// The license must have been cached next to the manifest.
	if _, err := os.Stat(odmPath + ".license"); err != nil {
		t.Errorf("license sidecar not written: %v", err)
	}

	// A second call reads the sidecar instead of hitting the server.
	if _, _, err := a.License(context.Background(), manifest); err != nil {
		t.Fatalf("second License call failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestLicenseAcquisitionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	odmPath := filepath.Join(t.TempDir(), "book.odm")
	if err := os.WriteFile(odmPath, []byte("<OverDriveMedia/>"), 0644); err != nil {
		t.Fatal(err)
	}

	manifest := &odm.Manifest{Path: odmPath, MediaID: "M", AcquisitionURL: server.URL}

	a := newTestAcquirer(t)
	if _, _, err := a.License(context.Background(), manifest); err == nil {
		t.Fatal("expected error but got none")
	}

	// No sidecar may be written for a failed acquisition.
	if _, err := os.Stat(odmPath + ".license"); err == nil {
		t.Error("license sidecar written despite failure")
	}
}
