// File: internal/infrastructure/database/supabase/client.go
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
)

// notFoundCode is the PostgREST error code returned when a single-object
// request matches zero rows. It marks an ordinary miss, not a query failure.
const notFoundCode = "PGRST116"

// conflictCode is the postgres unique_violation code, which PostgREST passes
// through on a 409.
const conflictCode = "23505"

// Client is a thin PostgREST client for the Supabase table API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a Client for the project at baseURL using the service
// role key.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do performs a REST request against the table API. A single-object request
// that matches no rows returns domainErrors.ErrNotFound, a unique violation
// returns domainErrors.ErrConflict; any other non-2xx response is a wrapped
// upstream error.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/rest/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request failed: %v: %w", err, domainErrors.ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read supabase response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.Unmarshal(data, &apiErr); err == nil {
			if apiErr.Code == notFoundCode {
				return domainErrors.ErrNotFound
			}
			if apiErr.Code == conflictCode {
				return domainErrors.ErrConflict
			}
		}
		if resp.StatusCode == http.StatusConflict {
			return domainErrors.ErrConflict
		}
		return fmt.Errorf("supabase %s %s returned %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode supabase response: %w", err)
		}
	}
	return nil
}

// getSingle fetches exactly one row; zero matches yield ErrNotFound.
func (c *Client) getSingle(ctx context.Context, path string, out interface{}) error {
	headers := map[string]string{"Accept": "application/vnd.pgrst.object+json"}
	return c.do(ctx, http.MethodGet, path, headers, nil, out)
}

// insertSingle creates a row and decodes the representation returned.
func (c *Client) insertSingle(ctx context.Context, path string, body, out interface{}) error {
	headers := map[string]string{
		"Accept": "application/vnd.pgrst.object+json",
		"Prefer": "return=representation",
	}
	return c.do(ctx, http.MethodPost, path, headers, body, out)
}

// updateSingle patches matched rows and decodes the representation returned.
func (c *Client) updateSingle(ctx context.Context, path string, body, out interface{}) error {
	headers := map[string]string{
		"Accept": "application/vnd.pgrst.object+json",
		"Prefer": "return=representation",
	}
	return c.do(ctx, http.MethodPatch, path, headers, body, out)
}

// rpc invokes a stored procedure.
func (c *Client) rpc(ctx context.Context, name string, args interface{}) error {
	return c.do(ctx, http.MethodPost, "/rpc/"+name, nil, args, nil)
}

// delete removes matched rows and decodes the representation of what was
// deleted, so callers can tell a miss from a hit.
func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	headers := map[string]string{"Prefer": "return=representation"}
	return c.do(ctx, http.MethodDelete, path, headers, nil, out)
}
