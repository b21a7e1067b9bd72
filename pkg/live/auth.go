package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// authorize asks the auth endpoint to sign a private channel subscription for
// the given socket.
func (c *Client) authorize(ctx context.Context, socketID string) (string, error) {
	if c.opts.AuthEndpoint == "" {
		return "", errors.New("live: auth endpoint required for private channels")
	}
	form := url.Values{}
	form.Set("socket_id", socketID)
	form.Set("channel_name", c.opts.Channel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.AuthEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("live: build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("live: auth request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("live: auth rejected: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var out struct {
		Auth string `json:"auth"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("live: decode auth response: %w", err)
	}
	if out.Auth == "" {
		return "", errors.New("live: auth response missing signature")
	}
	return out.Auth, nil
}
