// Package n8n is a small client for the n8n workflow automation API.
//
// It covers the operations needed to keep workflow definitions under
// version control: listing, fetching, validating, and exporting
// workflows to JSON files.
package n8n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Client talks to one n8n instance. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, for example to
// set a proxy or custom TLS configuration.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpc = c }
}

// WithRequestTimeout sets the per-request timeout. The default is 30
// seconds.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(cl *Client) { cl.httpc.Timeout = d }
}

// NewClient creates a client for the n8n instance at baseURL,
// authenticating every request with apiKey.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// get issues an authenticated GET and decodes the JSON response into
// out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("n8n: building request: %w", err)
	}
	req.Header.Set("X-N8N-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("n8n: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("n8n: GET %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("n8n: GET %s: unexpected status %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("n8n: decoding response: %w", err)
	}
	return nil
}

// ListWorkflows returns all workflows on the instance. With activeOnly
// set, inactive workflows are filtered out.
func (c *Client) ListWorkflows(ctx context.Context, activeOnly bool) ([]Workflow, error) {
	var list workflowList
	if err := c.get(ctx, "/rest/workflows", &list); err != nil {
		return nil, err
	}
	if !activeOnly {
		return list.Data, nil
	}
	active := make([]Workflow, 0, len(list.Data))
	for _, w := range list.Data {
		if w.Active {
			active = append(active, w)
		}
	}
	return active, nil
}

// Workflow fetches the complete definition of one workflow. It returns
// an error wrapping [ErrNotFound] when no workflow has the given ID.
func (c *Client) Workflow(ctx context.Context, id string) (*Workflow, error) {
	var w Workflow
	if err := c.get(ctx, "/rest/workflows/"+id, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ExportWorkflow fetches a workflow and writes it to a JSON file.
// An empty filename derives one from the workflow name and current
// time, like "My Workflow_20260115_093042.json". It returns the path
// written.
func (c *Client) ExportWorkflow(ctx context.Context, id, filename string) (string, error) {
	w, err := c.Workflow(ctx, id)
	if err != nil {
		return "", err
	}
	if filename == "" {
		name := w.Name
		if name == "" {
			name = "workflow_" + id
		}
		filename = fmt.Sprintf("%s_%s.json", sanitizeName(name), time.Now().Format("20060102_150405"))
	}
	if err := writeJSON(filename, w); err != nil {
		return "", err
	}
	return filename, nil
}

// BackupAll exports every active workflow into outputDir, creating it
// if needed. A failing workflow does not stop the backup; the paths of
// all successful exports are returned together with the joined errors
// of any failures.
func (c *Client) BackupAll(ctx context.Context, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("n8n: creating backup dir: %w", err)
	}

	workflows, err := c.ListWorkflows(ctx, true)
	if err != nil {
		return nil, err
	}

	var (
		paths []string
		errs  []error
	)
	for _, w := range workflows {
		name := fmt.Sprintf("%s_%s.json", sanitizeName(w.Name), time.Now().Format("20060102_150405"))
		path := filepath.Join(outputDir, name)
		if _, err := c.ExportWorkflow(ctx, w.ID, path); err != nil {
			errs = append(errs, fmt.Errorf("backing up %q: %w", w.Name, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

// sanitizeName strips characters that are unsafe in filenames, keeping
// letters, digits, spaces, dashes and underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// writeJSON writes v to path as indented JSON without HTML escaping.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("n8n: creating %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("n8n: writing %s: %w", path, err)
	}
	return f.Close()
}
