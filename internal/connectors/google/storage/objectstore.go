package storage

import (
	"context"
	"fmt"

	storageapi "google.golang.org/api/storage/v1"

	"github.com/custodia-labs/cascade/internal/connectors/google"
	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
)

var _ driven.ObjectStore = (*ObjectStore)(nil)

// ObjectStore implements driven.ObjectStore on the Cloud Storage JSON API.
type ObjectStore struct {
	svc           *storageapi.Service
	defaultBucket string
	limiter       *google.RateLimiter
}

// Option configures an ObjectStore.
type Option func(*ObjectStore)

// WithRateLimiter sets the rate limiter used for API calls.
func WithRateLimiter(limiter *google.RateLimiter) Option {
	return func(o *ObjectStore) {
		if limiter != nil {
			o.limiter = limiter
		}
	}
}

// New creates an object store. defaultBucket is used for locators that do
// not name a bucket.
func New(ctx context.Context, cfg google.Config, defaultBucket string, opts ...Option) (*ObjectStore, error) {
	svc, err := google.NewStorageService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	o := &ObjectStore{
		svc:           svc,
		defaultBucket: defaultBucket,
		limiter:       google.NewRateLimiter(google.ServiceStorage),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// DeleteObject removes the object named by loc.
// Returns domain.ErrObjectNotFound if the object does not exist.
func (o *ObjectStore) DeleteObject(ctx context.Context, loc domain.ObjectLocator) error {
	bucket := loc.Bucket
	if bucket == "" {
		bucket = o.defaultBucket
	}
	if bucket == "" {
		return fmt.Errorf("%w: no bucket for %s", domain.ErrObjectDeleteFailed, loc)
	}

	err := o.limiter.Do(ctx, func() error {
		return o.svc.Objects.Delete(bucket, loc.Path).Context(ctx).Do()
	})
	switch {
	case err == nil:
		return nil
	case google.IsNotFound(err):
		return domain.ErrObjectNotFound
	default:
		return fmt.Errorf("%w: gs://%s/%s: %w", domain.ErrObjectDeleteFailed, bucket, loc.Path, google.WrapError(err))
	}
}
