// Package cloudsync talks to the routine backend and copies routines between
// it and the local collection.
package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/utils"
)

const (
	// DefaultTarget is the backend address used when none is configured.
	DefaultTarget = "http://localhost:8081"

	backendSourceName = "routine backend"
)

// RemoteRoutine is a routine as the backend returns it.
type RemoteRoutine struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

type remoteRoutineWire struct {
	ID        json.RawMessage   `json:"id"`
	Name      string            `json:"name"`
	Items     []json.RawMessage `json:"items"`
	CreatedAt string            `json:"created_at"`
}

// UnmarshalJSON accepts numeric or string ids, items that are strings or
// legacy skill snapshots carrying an id, and any RFC 3339 timestamp.
func (r *RemoteRoutine) UnmarshalJSON(data []byte) error {
	var w remoteRoutineWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := strings.Trim(strings.TrimSpace(string(w.ID)), `"`)
	if id == "null" {
		id = ""
	}

	*r = RemoteRoutine{
		ID:    id,
		Name:  w.Name,
		Items: make([]string, 0, len(w.Items)),
	}

	for _, raw := range w.Items {
		if item := itemRef(raw); item != "" {
			r.Items = append(r.Items, item)
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(w.CreatedAt)); err == nil {
		r.CreatedAt = t
	}
	return nil
}

func itemRef(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var snapshot struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &snapshot); err == nil {
		return strings.TrimSpace(snapshot.ID)
	}
	return ""
}

// ClientConfig holds configuration for the backend client.
type ClientConfig struct {
	// Target is the backend base URL. Defaults to DefaultTarget if empty.
	Target string

	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// Client is an HTTP client for the routine backend.
type Client struct {
	target     string
	httpClient *http.Client
}

// NewClient creates a backend client.
func NewClient(cfg ClientConfig) *Client {
	target := strings.TrimRight(strings.TrimSpace(cfg.Target), "/")
	if target == "" {
		target = DefaultTarget
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{target: target, httpClient: client}
}

// Target returns the backend base URL.
func (c *Client) Target() string {
	return c.target
}

// List returns every routine stored by the backend, newest first.
func (c *Client) List(ctx context.Context) ([]RemoteRoutine, error) {
	body, err := c.do(ctx, http.MethodGet, "/routines", nil)
	if err != nil {
		return nil, err
	}

	var routines []RemoteRoutine
	if err := json.Unmarshal(body, &routines); err != nil {
		return nil, &skill.UpstreamError{Source: backendSourceName, Err: fmt.Errorf("decoding routines: %w", err)}
	}
	return routines, nil
}

// Create uploads a routine and returns the stored row.
func (c *Client) Create(ctx context.Context, name string, items []string) (RemoteRoutine, error) {
	if items == nil {
		items = []string{}
	}

	payload, err := json.Marshal(map[string]any{"name": name, "items": items})
	if err != nil {
		return RemoteRoutine{}, fmt.Errorf("marshaling request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/routines", payload)
	if err != nil {
		return RemoteRoutine{}, err
	}

	var created RemoteRoutine
	if err := json.Unmarshal(body, &created); err != nil {
		return RemoteRoutine{}, &skill.UpstreamError{Source: backendSourceName, Err: fmt.Errorf("decoding routine: %w", err)}
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.target+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", utils.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &skill.UpstreamError{Source: backendSourceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &skill.UpstreamError{Source: backendSourceName, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		upstream := &skill.UpstreamError{Source: backendSourceName, StatusCode: resp.StatusCode}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			upstream.Err = fmt.Errorf("%s", apiErr.Error)
		}
		return nil, upstream
	}

	return body, nil
}
