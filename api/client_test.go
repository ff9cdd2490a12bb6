// ABOUTME: Tests for the HTTP client request and error conventions
// ABOUTME: Verifies headers, error envelope decoding, and file URLs
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, "secret-token", 5*time.Second)
	require.NoError(t, err)
	return client, server
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "/relative/path"} {
		_, err := NewClient(bad, "", 0)
		assert.Error(t, err, "URL %q should be rejected", bad)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	var gotIdempotency []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		if r.Method == http.MethodPost {
			gotIdempotency = append(gotIdempotency, r.Header.Get("Idempotency-Key"))
		}
		w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	require.NoError(t, client.doJSON(ctx, http.MethodGet, "/grades/", nil, nil, nil))

	assert.Equal(t, "Token secret-token", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Empty(t, got.Get("Idempotency-Key"), "GET must not carry an idempotency key")

	require.NoError(t, client.doJSON(ctx, http.MethodPost, "/grades/", nil, map[string]any{"name": "L1"}, nil))
	require.NoError(t, client.doJSON(ctx, http.MethodPost, "/grades/", nil, map[string]any{"name": "L2"}, nil))
	require.Len(t, gotIdempotency, 2)
	assert.NotEmpty(t, gotIdempotency[0])
	assert.NotEqual(t, gotIdempotency[0], gotIdempotency[1], "each POST gets a fresh key")
}

func TestErrorEnvelopeDecoding(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"validation failed","errors":{"name":["already exists"]}}`))
	})

	err := client.doJSON(context.Background(), http.MethodPost, "/grades/", nil, map[string]any{}, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "non-2xx should come back as *APIError")
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Equal(t, []string{"already exists"}, apiErr.Fields["name"])
	assert.Contains(t, apiErr.Error(), "400")
	assert.Contains(t, apiErr.FieldMessages(), "name: already exists")
}

func TestErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.doJSON(context.Background(), http.MethodGet, "/grades/", nil, nil, nil)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Nil(t, apiErr.FieldMessages())
	assert.Equal(t, "backend returned 500", apiErr.Error())
}

func TestFileURL(t *testing.T) {
	client, err := NewClient("https://travel.example.com/api", "", 0)
	require.NoError(t, err)

	url := client.FileURL("documents/booking-42.pdf")
	assert.Equal(t, "https://travel.example.com/api/file/?path=documents%2Fbooking-42.pdf", url)
}
