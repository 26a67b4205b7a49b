package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	firestoreapi "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/cascade/internal/connectors/google"
	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
)

// listPageSize is the page size used when listing a collection.
const listPageSize = 300

var (
	_ driven.DocumentStore  = (*Store)(nil)
	_ driven.DocumentWriter = (*Store)(nil)
)

// Store implements driven.DocumentStore on the Cloud Firestore REST API.
// Document paths are relative to the database root, e.g. "publicContent/b1".
type Store struct {
	svc        *firestoreapi.Service
	client     *http.Client
	database   string
	limiter    *google.RateLimiter
	batchLimit int
}

// Option configures a Store.
type Option func(*Store)

// WithRateLimiter shares a rate limiter between stores.
func WithRateLimiter(limiter *google.RateLimiter) Option {
	return func(s *Store) {
		if limiter != nil {
			s.limiter = limiter
		}
	}
}

// WithBatchLimit lowers the number of writes per commit.
func WithBatchLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 && limit < s.batchLimit {
			s.batchLimit = limit
		}
	}
}

// New creates a Firestore store for database, in the form
// "projects/{project}/databases/{database}".
func New(ctx context.Context, cfg google.Config, database string, opts ...Option) (*Store, error) {
	if !strings.HasPrefix(database, "projects/") || !strings.Contains(database, "/databases/") {
		return nil, fmt.Errorf("%w: database name %q", domain.ErrInvalidInput, database)
	}

	svc, err := google.NewFirestoreService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := google.NewHTTPClient(ctx, cfg, firestoreapi.DatastoreScope)
	if err != nil {
		return nil, err
	}

	s := &Store{
		svc:        svc,
		client:     client,
		database:   database,
		limiter:    google.NewRateLimiter(google.ServiceFirestore),
		batchLimit: domain.MaxBatchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Database returns the database resource name.
func (s *Store) Database() string {
	return s.database
}

func (s *Store) root() string {
	return s.database + "/documents"
}

func (s *Store) name(path string) string {
	return s.root() + "/" + strings.Trim(path, "/")
}

func (s *Store) relative(name string) string {
	return strings.TrimPrefix(name, s.root()+"/")
}

// Get retrieves a document by path.
func (s *Store) Get(ctx context.Context, path string) (*domain.Record, error) {
	var doc *firestoreapi.Document
	err := s.limiter.Do(ctx, func() error {
		var err error
		doc, err = s.svc.Projects.Databases.Documents.Get(s.name(path)).Context(ctx).Do()
		return err
	})
	if err != nil {
		if google.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", path, google.WrapError(err))
	}
	return &domain.Record{Path: s.relative(doc.Name), Fields: DecodeFields(doc.Fields)}, nil
}

// ListCollection returns the paths of documents directly inside a collection.
func (s *Store) ListCollection(ctx context.Context, collectionPath string) ([]string, error) {
	collectionPath = strings.Trim(collectionPath, "/")
	parentDoc, collectionID := "", collectionPath
	if i := strings.LastIndex(collectionPath, "/"); i >= 0 {
		parentDoc, collectionID = collectionPath[:i], collectionPath[i+1:]
	}
	parent := s.root()
	if parentDoc != "" {
		parent = s.name(parentDoc)
	}

	var paths []string
	err := s.limiter.Do(ctx, func() error {
		paths = paths[:0]
		return s.svc.Projects.Databases.Documents.List(parent, collectionID).
			PageSize(listPageSize).
			Context(ctx).
			Pages(ctx, func(resp *firestoreapi.ListDocumentsResponse) error {
				for _, doc := range resp.Documents {
					paths = append(paths, s.relative(doc.Name))
				}
				return nil
			})
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collectionPath, google.WrapError(err))
	}
	return paths, nil
}

// FindReferencingRecords runs a collection-group query over every collection
// named collectionID for documents whose field equals value.
func (s *Store) FindReferencingRecords(ctx context.Context, collectionID, field, value string) ([]string, error) {
	req := &firestoreapi.RunQueryRequest{
		StructuredQuery: &firestoreapi.StructuredQuery{
			From: []*firestoreapi.CollectionSelector{{
				CollectionId:   collectionID,
				AllDescendants: true,
			}},
			Where: &firestoreapi.Filter{
				FieldFilter: &firestoreapi.FieldFilter{
					Field: &firestoreapi.FieldReference{FieldPath: field},
					Op:    "EQUAL",
					Value: &firestoreapi.Value{StringValue: value, ForceSendFields: []string{"StringValue"}},
				},
			},
			Select: &firestoreapi.Projection{
				Fields: []*firestoreapi.FieldReference{{FieldPath: "__name__"}},
			},
		},
	}

	var results []*firestoreapi.RunQueryResponse
	err := s.limiter.Do(ctx, func() error {
		var err error
		results, err = s.runQuery(ctx, s.root(), req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query %s where %s == %q: %w", collectionID, field, value, google.WrapError(err))
	}

	var paths []string
	for _, r := range results {
		if r.Document != nil {
			paths = append(paths, s.relative(r.Document.Name))
		}
	}
	return paths, nil
}

// runQuery posts a query and decodes the streamed array of results.
// The generated client decodes a single object, which runQuery never returns.
func (s *Store) runQuery(ctx context.Context, parent string, query *firestoreapi.RunQueryRequest) ([]*firestoreapi.RunQueryResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	urls := googleapi.ResolveRelative(s.svc.BasePath, "v1/{+parent}:runQuery")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urls, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	googleapi.Expand(req.URL, map[string]string{"parent": parent})
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer googleapi.CloseBody(resp)

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, err
	}

	var results []*firestoreapi.RunQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}
	return results, nil
}

// CommitDeletes deletes all paths in a single atomic commit.
func (s *Store) CommitDeletes(ctx context.Context, paths []string) error {
	if len(paths) > s.batchLimit {
		return fmt.Errorf("%w: %d deletes, limit %d", domain.ErrBatchTooLarge, len(paths), s.batchLimit)
	}
	if len(paths) == 0 {
		return nil
	}

	writes := make([]*firestoreapi.Write, len(paths))
	for i, path := range paths {
		writes[i] = &firestoreapi.Write{Delete: s.name(path)}
	}

	err := s.limiter.Do(ctx, func() error {
		_, err := s.svc.Projects.Databases.Documents.
			Commit(s.database, &firestoreapi.CommitRequest{Writes: writes}).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("commit %d deletes: %w", len(paths), google.WrapError(err))
	}
	return nil
}

// BatchLimit returns the maximum number of deletes per commit.
func (s *Store) BatchLimit() int {
	return s.batchLimit
}

// Delete removes a single document. Deleting an absent document succeeds.
func (s *Store) Delete(ctx context.Context, path string) error {
	err := s.limiter.Do(ctx, func() error {
		_, err := s.svc.Projects.Databases.Documents.Delete(s.name(path)).Context(ctx).Do()
		return err
	})
	if err != nil && !google.IsNotFound(err) {
		return fmt.Errorf("delete %s: %w", path, google.WrapError(err))
	}
	return nil
}

// PutDocument creates or replaces the document at path.
func (s *Store) PutDocument(ctx context.Context, path string, fields map[string]any) error {
	if _, _, ok := domain.SplitDocumentPath(path); !ok {
		return fmt.Errorf("%w: not a document path: %q", domain.ErrInvalidInput, path)
	}
	encoded, err := EncodeFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	err = s.limiter.Do(ctx, func() error {
		_, err := s.svc.Projects.Databases.Documents.
			Patch(s.name(path), &firestoreapi.Document{Fields: encoded}).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", path, google.WrapError(err))
	}
	return nil
}
