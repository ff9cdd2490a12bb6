// ABOUTME: Generic CRUD resource over the backend REST conventions
// ABOUTME: Normalizes bare-array and enveloped list responses into one shape
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PageMeta is the pagination metadata a list endpoint may return. A bare
// array response normalizes to a single page holding everything.
type PageMeta struct {
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
	Count       int     `json:"count"`
}

// ListResult is the normalized shape every list call returns.
type ListResult[T any] struct {
	Items []T
	Page  PageMeta
}

// listEnvelope matches the enveloped convention: rows under "results" or
// "data" plus pagination fields at the top level.
type listEnvelope[T any] struct {
	Results []T `json:"results"`
	Data    []T `json:"data"`
	PageMeta
}

// Resource is the typed CRUD surface for one backend collection.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource exposes a collection at the given path ("/grades/").
func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{c: c, path: path}
}

// List fetches the collection, optionally scoped by server-side filters
// ("page", foreign-key ids the backend applies).
func (r Resource[T]) List(ctx context.Context, filters url.Values) (ListResult[T], error) {
	var raw json.RawMessage
	if err := r.c.doJSON(ctx, http.MethodGet, r.path, filters, nil, &raw); err != nil {
		return ListResult[T]{}, err
	}
	return decodeList[T](raw)
}

func (r Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.c.doJSON(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item)
	return item, err
}

// Create submits a new record. The payload may be a typed record or a
// flat field map; either way it must not carry an identifier.
func (r Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var item T
	err := r.c.doJSON(ctx, http.MethodPost, r.path, nil, payload, &item)
	return item, err
}

func (r Resource[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var item T
	err := r.c.doJSON(ctx, http.MethodPut, r.itemPath(id), nil, payload, &item)
	return item, err
}

// Deactivate is the soft delete: an update that flips the active flag.
// The record stays fetchable. Deactivating an already-inactive record is
// a harmless no-op on the backend.
func (r Resource[T]) Deactivate(ctx context.Context, id int64) error {
	return r.c.doJSON(ctx, http.MethodPatch, r.itemPath(id), nil, map[string]any{"is_active": false}, nil)
}

// Delete removes the record for good. Callers are expected to have
// confirmed with the user first.
func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.doJSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r Resource[T]) itemPath(id int64) string {
	return r.path + strconv.FormatInt(id, 10) + "/"
}

func decodeList[T any](raw json.RawMessage) (ListResult[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ListResult[T]{}, fmt.Errorf("decode list: %w", err)
		}
		return ListResult[T]{
			Items: items,
			Page:  PageMeta{CurrentPage: 1, TotalPages: 1, Count: len(items)},
		}, nil
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ListResult[T]{}, fmt.Errorf("decode list envelope: %w", err)
	}
	items := env.Results
	if items == nil {
		items = env.Data
	}
	meta := env.PageMeta
	if meta.CurrentPage == 0 {
		meta.CurrentPage = 1
	}
	if meta.TotalPages == 0 {
		meta.TotalPages = 1
	}
	if meta.Count == 0 {
		meta.Count = len(items)
	}
	return ListResult[T]{Items: items, Page: meta}, nil
}

// ScopedTo builds the filter for listing a collection under one parent,
// e.g. states scoped to a country.
func ScopedTo(field string, id int64) url.Values {
	return url.Values{field: {strconv.FormatInt(id, 10)}}
}

// PageFilter asks the backend for one specific page.
func PageFilter(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}}
}
