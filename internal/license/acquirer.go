package license

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
	"go.uber.org/zap"

	httpx "github.com/handiism/overdrive-dl/internal/http"
	"github.com/handiism/overdrive-dl/internal/odm"
)

// Handshake constants. OverDrive's license server validates the Hash
// parameter against these exact version strings, so they are not
// configurable. The secret is "OVERDRIVE*MEDIA*CONSOLE" reversed;
// algorithm documented by https://github.com/jvolkening/gloc.
const (
	omcVersion = "1.2.0"
	osVersion  = "10.14.2"
	hashSecret = "ELOSNOC*AIDEM*EVIRDREVO"
)

// clientIDFileName is the default client ID store, relative to the
// user's home directory.
const clientIDFileName = ".overdrive-dl.clientid"

// document maps the license XML returned by the acquisition server.
type document struct {
	XMLName    xml.Name `xml:"http://license.overdrive.com/2008/03/License.xsd License"`
	SignedInfo struct {
		ClientID string `xml:"http://license.overdrive.com/2008/03/License.xsd ClientID"`
	} `xml:"http://license.overdrive.com/2008/03/License.xsd SignedInfo"`
}

// Acquirer obtains the download license for a parsed manifest.
//
// The license is a small signed XML document that must accompany every
// part download. Acquiring one consumes the loan's download slot, so
// the Acquirer caches the license next to the .odm file (as
// "<file>.odm.license") and reuses it on later runs. The client ID sent
// during the handshake is likewise generated once and persisted.
//
// Example:
//
//	acquirer := license.NewAcquirer(client, logger)
//	lic, clientID, err := acquirer.License(ctx, manifest)
//	if err != nil {
//	    return err
//	}
//	headers := map[string]string{"License": lic, "ClientID": clientID}
type Acquirer struct {
	// ClientIDPath is where the generated client ID is persisted.
	// Defaults to ~/.overdrive-dl.clientid.
	ClientIDPath string

	client *httpx.Client
	logger *zap.SugaredLogger
}

// NewAcquirer creates an Acquirer using the given HTTP client.
func NewAcquirer(client *httpx.Client, logger *zap.SugaredLogger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	clientIDPath := clientIDFileName
	if home, err := os.UserHomeDir(); err == nil {
		clientIDPath = filepath.Join(home, clientIDFileName)
	}

	return &Acquirer{
		ClientIDPath: clientIDPath,
		client:       client,
		logger:       logger,
	}
}

// License returns the license XML and the client ID bound to it.
//
// The sidecar file "<odm path>.license" is used when present; otherwise
// the license is acquired from the manifest's acquisition URL and
// written to the sidecar. The client ID is extracted from the license
// document itself, so a license acquired by an earlier run keeps
// working even if the local client ID store changes.
//
// Returns a *httpx.NetworkError when the acquisition request fails.
func (a *Acquirer) License(ctx context.Context, manifest *odm.Manifest) (string, string, error) {
	sidecar := manifest.Path + ".license"

	var lic string
	if data, err := os.ReadFile(sidecar); err == nil {
		a.logger.Debugf("reading license from %s", sidecar)
		lic = string(data)
	} else {
		acquired, err := a.acquire(ctx, manifest)
		if err != nil {
			return "", "", err
		}
		lic = acquired

		a.logger.Debugf("writing license to %s", sidecar)
		if err := os.WriteFile(sidecar, []byte(lic), 0644); err != nil {
			return "", "", fmt.Errorf("write license file: %w", err)
		}
	}

	if strings.TrimSpace(lic) == "" {
		return "", "", fmt.Errorf("license for %s is empty", manifest.Path)
	}

	clientID, err := extractClientID(lic)
	if err != nil {
		return "", "", err
	}

	return lic, clientID, nil
}

// acquire performs the handshake against the license server.
func (a *Acquirer) acquire(ctx context.Context, manifest *odm.Manifest) (string, error) {
	if manifest.AcquisitionURL == "" {
		return "", fmt.Errorf("manifest %s has no license acquisition URL", manifest.Path)
	}

	clientID, err := a.clientID()
	if err != nil {
		return "", err
	}

	a.logger.Debugf("acquiring license from %s", manifest.AcquisitionURL)
	a.logger.Debugf("using MediaID %s, ClientID %s", manifest.MediaID, clientID)

	query := url.Values{}
	query.Set("MediaID", manifest.MediaID)
	query.Set("ClientID", clientID)
	query.Set("OMC", omcVersion)
	query.Set("OS", osVersion)
	query.Set("Hash", hash(clientID))

	separator := "?"
	if strings.Contains(manifest.AcquisitionURL, "?") {
		separator = "&"
	}

	return a.client.GetString(ctx, manifest.AcquisitionURL+separator+query.Encode(), nil)
}

// clientID returns the persisted client ID, generating and saving a new
// one on first use.
func (a *Acquirer) clientID() (string, error) {
	if data, err := os.ReadFile(a.ClientIDPath); err == nil {
		id := strings.TrimSpace(string(data))
		if id != "" {
			return id, nil
		}
	}

	id := strings.ToUpper(uuid.NewString())
	a.logger.Debugf("generated new ClientID %s", id)

	if err := os.WriteFile(a.ClientIDPath, []byte(id), 0600); err != nil {
		return "", fmt.Errorf("write client ID file: %w", err)
	}
	return id, nil
}

// extractClientID pulls the ClientID element out of the license XML.
func extractClientID(lic string) (string, error) {
	var doc document
	if err := xml.Unmarshal([]byte(lic), &doc); err != nil {
		return "", fmt.Errorf("malformed license: %w", err)
	}
	if doc.SignedInfo.ClientID == "" {
		return "", fmt.Errorf("license has no ClientID")
	}
	return doc.SignedInfo.ClientID, nil
}

// hash computes the handshake hash: the Base64 SHA-1 of the UTF-16LE
// encoding of "ClientID|OMC|OS|secret".
func hash(clientID string) string {
	raw := strings.Join([]string{clientID, omcVersion, osVersion, hashSecret}, "|")

	codes := utf16.Encode([]rune(raw))
	buf := make([]byte, 0, len(codes)*2)
	for _, c := range codes {
		buf = append(buf, byte(c), byte(c>>8))
	}

	sum := sha1.Sum(buf)
	return base64.StdEncoding.EncodeToString(sum[:])
}
