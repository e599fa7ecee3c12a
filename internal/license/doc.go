// Package license implements the OverDrive license handshake.
//
// Downloading audio parts requires a signed license document from the
// manifest's acquisition URL. The handshake sends the media ID, a
// locally generated client ID, fixed OMC/OS version strings and a hash
// binding them together; the server answers with the license XML.
//
//	acquirer := license.NewAcquirer(client, logger)
//	lic, clientID, err := acquirer.License(ctx, manifest)
//
// Both the client ID (~/.overdrive-dl.clientid) and the license
// ("<file>.odm.license") are persisted: acquiring a second license for
// the same loan fails server-side, so re-runs must reuse the first one.
package license
