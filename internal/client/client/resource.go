package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ID is the set of record identifier types the backend uses.
type ID interface {
	~int64 | ~string | uuid.UUID
}

// Resource is a CRUD client for one backend collection. K is the id type,
// R the record, D the create draft and P the partial-update patch.
type Resource[K ID, R, D, P any] struct {
	c    *HTTPClient
	name string
}

func NewResource[K ID, R, D, P any](c *HTTPClient, name string) *Resource[K, R, D, P] {
	return &Resource[K, R, D, P]{c: c, name: name}
}

// Name is the collection path segment, e.g. "categorias".
func (r *Resource[K, R, D, P]) Name() string { return r.name }

func idString[K ID](id K) string { return fmt.Sprint(id) }

// ListByOwner fetches the records owned by identity. An empty identity
// fails with ErrNoIdentity before any request is made.
func (r *Resource[K, R, D, P]) ListByOwner(ctx context.Context, identity string) ([]R, error) {
	if identity == "" {
		return nil, ErrNoIdentity
	}
	var out []R
	if err := r.c.do(ctx, request{method: http.MethodGet, path: []string{r.name, "u", identity}}, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return out, nil
}

// List fetches the whole collection, unscoped.
func (r *Resource[K, R, D, P]) List(ctx context.Context) ([]R, error) {
	var out []R
	if err := r.c.do(ctx, request{method: http.MethodGet, path: []string{r.name}}, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return out, nil
}

func (r *Resource[K, R, D, P]) Get(ctx context.Context, id K) (R, error) {
	var out R
	if err := r.c.do(ctx, request{method: http.MethodGet, path: []string{r.name, idString(id)}}, &out); err != nil {
		return out, fmt.Errorf("get %s %v: %w", r.name, id, err)
	}
	return out, nil
}

// Create sends draft and returns the record as the backend stored it.
func (r *Resource[K, R, D, P]) Create(ctx context.Context, draft D) (R, error) {
	var out R
	if err := r.c.do(ctx, request{method: http.MethodPost, path: []string{r.name}, body: draft}, &out); err != nil {
		return out, fmt.Errorf("create %s: %w", r.name, err)
	}
	return out, nil
}

func (r *Resource[K, R, D, P]) CreateBatch(ctx context.Context, drafts []D) ([]R, error) {
	var out []R
	if err := r.c.do(ctx, request{method: http.MethodPost, path: []string{r.name, "batch"}, body: drafts}, &out); err != nil {
		return nil, fmt.Errorf("create %s batch: %w", r.name, err)
	}
	return out, nil
}

// Update sends only the fields set on patch.
func (r *Resource[K, R, D, P]) Update(ctx context.Context, id K, patch P) (R, error) {
	return r.updateAt(ctx, idString(id), patch)
}

func (r *Resource[K, R, D, P]) updateAt(ctx context.Context, key string, patch P) (R, error) {
	var out R
	if err := r.c.do(ctx, request{method: http.MethodPut, path: []string{r.name, key}, body: patch}, &out); err != nil {
		return out, fmt.Errorf("update %s %s: %w", r.name, key, err)
	}
	return out, nil
}

func (r *Resource[K, R, D, P]) Delete(ctx context.Context, id K) error {
	if err := r.c.do(ctx, request{method: http.MethodDelete, path: []string{r.name, idString(id)}}, nil); err != nil {
		return fmt.Errorf("delete %s %v: %w", r.name, id, err)
	}
	return nil
}

// DeleteBatch removes ids in one request. An empty slice is a no-op.
func (r *Resource[K, R, D, P]) DeleteBatch(ctx context.Context, ids []K) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.c.do(ctx, request{method: http.MethodDelete, path: []string{r.name, "batch"}, body: ids}, nil); err != nil {
		return fmt.Errorf("delete %s batch: %w", r.name, err)
	}
	return nil
}
