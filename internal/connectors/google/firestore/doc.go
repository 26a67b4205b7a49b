// Package firestore implements the document store ports on the Cloud
// Firestore REST API.
//
// Point reads, listings, patches and deletes go through the generated
// client. Collection-group queries are posted directly to :runQuery because
// the endpoint streams a JSON array. Batch deletes use a single Commit call,
// which Firestore applies atomically.
package firestore
