package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
	htransport "google.golang.org/api/transport/http"
)

// Config describes how to reach and authenticate against a Google API.
type Config struct {
	// Endpoint overrides the API base URL, e.g. an emulator address.
	Endpoint string
	// CredentialsFile is a service account key file. Empty uses
	// Application Default Credentials.
	CredentialsFile string
	// AccessToken is a static OAuth2 bearer token, used instead of
	// CredentialsFile when set.
	AccessToken string
	// Emulator disables authentication.
	Emulator bool
	// HTTPClient replaces the transport entirely. Used by tests.
	HTTPClient *http.Client
}

// ClientOptions converts cfg into API client options.
func ClientOptions(cfg Config, scopes ...string) []option.ClientOption {
	var opts []option.ClientOption

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	switch {
	case cfg.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	case cfg.Emulator:
		opts = append(opts, option.WithoutAuthentication())
	case cfg.AccessToken != "":
		opts = append(opts, option.WithTokenSource(NewStaticTokenSource(cfg.AccessToken)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	if len(scopes) > 0 && cfg.HTTPClient == nil && !cfg.Emulator {
		opts = append(opts, option.WithScopes(scopes...))
	}

	return opts
}

// NewStaticTokenSource returns a TokenSource that always yields token.
func NewStaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// NewFirestoreService creates a Cloud Firestore REST service.
func NewFirestoreService(ctx context.Context, cfg Config) (*firestore.Service, error) {
	svc, err := firestore.NewService(ctx, ClientOptions(cfg, firestore.DatastoreScope)...)
	if err != nil {
		return nil, fmt.Errorf("create firestore service: %w", err)
	}
	return svc, nil
}

// NewStorageService creates a Cloud Storage JSON API service.
func NewStorageService(ctx context.Context, cfg Config) (*storage.Service, error) {
	svc, err := storage.NewService(ctx, ClientOptions(cfg, storage.DevstorageReadWriteScope)...)
	if err != nil {
		return nil, fmt.Errorf("create storage service: %w", err)
	}
	return svc, nil
}

// NewHTTPClient returns an authenticated HTTP client for calls the generated
// services cannot make themselves.
func NewHTTPClient(ctx context.Context, cfg Config, scopes ...string) (*http.Client, error) {
	client, _, err := htransport.NewClient(ctx, ClientOptions(cfg, scopes...)...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return client, nil
}
