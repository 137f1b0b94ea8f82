// Package api is the HTTP client for the config server.
//
// The server exposes four endpoints:
//
//	GET  /api/config             current document
//	POST /api/config             replace the document, returns {"backup": ...}
//	GET  /api/backups            [{"filename", "modified", "size"}, ...]
//	POST /api/restore/{filename} restore a backup
//
// Any response whose body is an object with an "error" member is a
// failure, regardless of HTTP status.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

const (
	configPath  = "/api/config"
	backupsPath = "/api/backups"
	restorePath = "/api/restore/"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to a config server rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("server URL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetConfig fetches the current document.
func (c *Client) GetConfig(ctx context.Context) (jsondoc.Value, error) {
	return c.do(ctx, "load config", http.MethodGet, configPath, nil)
}

// SaveConfig replaces the server document and returns the identifier of
// the backup the server made of the previous version.
func (c *Client) SaveConfig(ctx context.Context, doc jsondoc.Value) (string, error) {
	body := []byte(jsondoc.Compact(doc))
	result, err := c.do(ctx, "save config", http.MethodPost, configPath, body)
	if err != nil {
		return "", err
	}
	backup, _ := result.Get("backup")
	return scalarText(backup), nil
}

// ListBackups returns the server's backup index, newest first as the
// server orders it.
func (c *Client) ListBackups(ctx context.Context) ([]models.Backup, error) {
	const op = "list backups"

	result, err := c.do(ctx, op, http.MethodGet, backupsPath, nil)
	if err != nil {
		return nil, err
	}
	if result.Kind() != jsondoc.Array {
		return nil, &Error{Op: op, StatusCode: http.StatusOK, Message: fmt.Sprintf("unexpected response: expected array, got %s", result.Kind())}
	}

	backups := make([]models.Backup, 0, result.Len())
	for i, item := range result.Items() {
		backup, err := decodeBackup(item)
		if err != nil {
			return nil, &Error{Op: op, StatusCode: http.StatusOK, Message: fmt.Sprintf("unexpected backup entry %d: %v", i, err)}
		}
		backups = append(backups, backup)
	}
	return backups, nil
}

// RestoreBackup asks the server to make the named backup current.
func (c *Client) RestoreBackup(ctx context.Context, filename string) error {
	if filename == "" {
		return errors.New("backup filename cannot be empty")
	}
	_, err := c.do(ctx, "restore backup", http.MethodPost, restorePath+url.PathEscape(filename), nil)
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (jsondoc.Value, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return jsondoc.Value{}, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("API", "%s %s (request %s)", method, req.URL.Path, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn("API", "%s %s failed: %v", method, req.URL.Path, err)
		return jsondoc.Value{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return jsondoc.Value{}, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	logging.Debug("API", "%s %s -> %d (%d bytes)", method, req.URL.Path, resp.StatusCode, len(raw))

	result, parseErr := jsondoc.Parse(string(raw))
	if parseErr == nil {
		if msg, ok := result.Get("error"); ok && truthy(msg) {
			return jsondoc.Value{}, &Error{Op: op, StatusCode: resp.StatusCode, Message: scalarText(msg)}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return jsondoc.Value{}, &Error{Op: op, StatusCode: resp.StatusCode, Message: fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}
	if parseErr != nil {
		return jsondoc.Value{}, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", parseErr)}
	}
	return result, nil
}

func decodeBackup(item jsondoc.Value) (models.Backup, error) {
	if item.Kind() != jsondoc.Object {
		return models.Backup{}, fmt.Errorf("expected object, got %s", item.Kind())
	}

	filename, ok := item.Get("filename")
	if !ok || filename.Kind() != jsondoc.String || filename.Str() == "" {
		return models.Backup{}, errors.New("missing filename")
	}

	backup := models.Backup{Filename: filename.Str()}

	if modified, ok := item.Get("modified"); ok {
		secs, err := modified.Float64()
		if err != nil {
			return models.Backup{}, fmt.Errorf("invalid modified time: %w", err)
		}
		whole, frac := math.Modf(secs)
		backup.ModifiedAt = time.Unix(int64(whole), int64(frac*1e9))
	}
	if size, ok := item.Get("size"); ok {
		n, err := size.Int64()
		if err != nil {
			return models.Backup{}, fmt.Errorf("invalid size: %w", err)
		}
		backup.SizeBytes = n
	}
	return backup, nil
}

// scalarText renders a response field for display: strings verbatim,
// anything else as compact JSON.
// truthy reports whether an "error" member marks a failed request. Null,
// false, "" and zero do not.
func truthy(v jsondoc.Value) bool {
	switch v.Kind() {
	case jsondoc.Null:
		return false
	case jsondoc.Bool:
		return v.Bool()
	case jsondoc.String:
		return v.Str() != ""
	case jsondoc.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func scalarText(v jsondoc.Value) string {
	switch v.Kind() {
	case jsondoc.String:
		return v.Str()
	case jsondoc.Null:
		return ""
	default:
		return jsondoc.Compact(v)
	}
}
