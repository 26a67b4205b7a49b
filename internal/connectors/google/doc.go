// Package google provides shared infrastructure for the Google Cloud adapters.
//
// This package contains the pieces used by the firestore and storage
// subpackages:
//   - Client option and service factories (credentials file, static token,
//     Application Default Credentials, or no auth for emulators)
//   - Error handling for common Google API errors (401, 403, 404, 409, 429)
//   - Rate limiting with backoff after 429 responses
//
// # Usage
//
//	cfg := google.Config{CredentialsFile: "sa.json"}
//	svc, err := google.NewFirestoreService(ctx, cfg)
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/datastore (Firestore)
//   - https://www.googleapis.com/auth/devstorage.read_write (Cloud Storage)
package google
