// ABOUTME: HTTP client for the travel-and-expense REST backend
// ABOUTME: JSON round-trips, error envelope decoding, request IDs, no retries
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend. It holds no state beyond connection
// settings: every call is a fresh round-trip, nothing is cached and
// nothing is retried.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// APIError is a non-2xx response from the backend. Message and Fields
// come from the error body when the backend supplies them and are shown
// to the user verbatim.
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// FieldMessages flattens the per-field error map into "field: message"
// lines, or nil when the backend sent none.
func (e *APIError) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	var out []string
	for field, msgs := range e.Fields {
		for _, msg := range msgs {
			out = append(out, field+": "+msg)
		}
	}
	return out
}

// NewClient builds a client for the given base URL. An empty token means
// unauthenticated requests.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    u,
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FileURL builds the document-viewing link for a backend-stored path.
// Documents open out-of-band; the console never downloads them itself.
func (c *Client) FileURL(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/file/"
	u.RawQuery = url.Values{"path": {path}}.Encode()
	return u.String()
}

// doJSON performs one request. Non-2xx responses come back as *APIError;
// transport failures come back wrapped so callers can tell the two apart.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		// One key per call: a retried batch item gets a fresh key, a
		// transport-level replay of the same call does not.
		req.Header.Set("Idempotency-Key", ulid.Make().String())
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
