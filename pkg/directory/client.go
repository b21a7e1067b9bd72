package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/calllog/pkg/call"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://frontend-test-api.aircall.dev.
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token string
	// ArchiveMethod is the HTTP method of the archive toggle; POST if empty.
	ArchiveMethod string
	Timeout       time.Duration
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Client is the HTTP implementation of Directory.
type Client struct {
	base          *url.URL
	token         string
	archiveMethod string
	hc            *http.Client
	log           *slog.Logger
}

var _ Directory = (*Client)(nil)

// New validates the options and builds a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("directory: base url required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("directory: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("directory: unsupported scheme %q", base.Scheme)
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	method := strings.ToUpper(strings.TrimSpace(opts.ArchiveMethod))
	if method == "" {
		method = http.MethodPost
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:          base,
		token:         opts.Token,
		archiveMethod: method,
		hc:            hc,
		log:           log.With("component", "directory"),
	}, nil
}

// List fetches one offset window of calls.
func (c *Client) List(ctx context.Context, offset, limit int) (call.Page, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page call.Page
	if err := c.do(ctx, http.MethodGet, "/calls", q, nil, &page); err != nil {
		return call.Page{}, err
	}
	page.Offset = offset
	page.Limit = limit
	return page, nil
}

// Get fetches the full record of one call, notes included.
func (c *Client) Get(ctx context.Context, id string) (call.Call, error) {
	var out call.Call
	if err := c.do(ctx, http.MethodGet, callPath(id), nil, nil, &out); err != nil {
		return call.Call{}, err
	}
	return out, nil
}

// AddNote appends a note and returns the updated call.
func (c *Client) AddNote(ctx context.Context, id, content string) (call.Call, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	var out call.Call
	if err := c.do(ctx, http.MethodPost, callPath(id)+"/note", nil, body, &out); err != nil {
		return call.Call{}, err
	}
	return out, nil
}

// ToggleArchive flips the archive flag server-side. The response body is
// ignored.
func (c *Client) ToggleArchive(ctx context.Context, id string) error {
	return c.do(ctx, c.archiveMethod, callPath(id)+"/archive", nil, nil, nil)
}

// callPath is already escaped; do keeps it as the raw path.
func callPath(id string) string {
	return "/calls/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := *c.base
	raw := strings.TrimRight(u.EscapedPath(), "/") + path
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		return fmt.Errorf("directory: path %s: %w", raw, err)
	}
	u.Path, u.RawPath = unescaped, raw
	if q != nil {
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("directory: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("directory: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("directory: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("directory: decode %s %s: %w", method, path, err)
	}
	return nil
}
