package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
)

// Resource is a CRUD collection under /api/admin.
type Resource[T any] struct {
	client *Client
	path   string
	name   string
}

func newResource[T any](c *Client, collection, name string) *Resource[T] {
	return &Resource[T]{
		client: c,
		path:   "/api/admin/" + collection,
		name:   name,
	}
}

// Name returns the singular display name, e.g. "organization type".
func (r *Resource[T]) Name() string {
	return r.name
}

// Path returns the collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) itemPath(id string) string {
	return fmt.Sprintf("%s/%s", r.path, url.PathEscape(id))
}

// List returns every item in the collection. The API answers with either a
// bare array or an envelope holding the array under "data" or "items".
func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, r.path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// Get returns one item.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item)
	return item, err
}

// Create posts a new item and returns the stored version.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := r.client.do(ctx, http.MethodPost, r.path, nil, item, &created)
	return created, err
}

// Update replaces an item and returns the stored version.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var updated T
	err := r.client.do(ctx, http.MethodPut, r.itemPath(id), nil, item, &updated)
	return updated, err
}

// Delete removes an item.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}

	var items []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &apicall.UnclassifiedError{Value: fmt.Errorf("failed to decode list: %w", err)}
		}
		return items, nil
	}

	var envelope struct {
		Data  []T `json:"data"`
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &apicall.UnclassifiedError{Value: fmt.Errorf("failed to decode list: %w", err)}
	}
	items = envelope.Data
	if items == nil {
		items = envelope.Items
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
