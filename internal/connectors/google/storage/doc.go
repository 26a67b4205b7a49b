// Package storage deletes objects through the Cloud Storage JSON API.
package storage
