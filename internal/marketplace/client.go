package marketplace

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
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://ismaal.taamsolutions.net"

	maxBodyBytes = 4 << 20
)

// Mutation verbs used in endpoint-unavailable messages.
const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
	ActionDelete  = "DELETE"
	ActionUpdate  = "UPDATE"
)

type Config struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

// Client talks to the marketplace REST API. It never retries; every failure
// is returned to the caller.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("marketplace: base url %q must be absolute", base)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: u, httpClient: client, logger: logger}, nil
}

func (c *Client) endpoint(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	u := *c.baseURL
	u.RawQuery, u.Fragment = "", ""
	return strings.TrimSuffix(u.String(), "/") + "/" + strings.Join(segs, "/")
}

// do sends one request and returns the response body of a 2xx answer.
// Anything else comes back as *APIError.
func (c *Client) do(ctx context.Context, method, target string, body any, header http.Header) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("marketplace request failed", "method", method, "url", target, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("marketplace request rejected", "method", method, "url", target, "status", resp.StatusCode)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    serverMessage(b),
			Body:       string(b),
		}
	}
	return b, nil
}

// mutate runs a write request. Missing routes become
// EndpointUnavailableError and a body that is not JSON is a failure.
func (c *Client) mutate(ctx context.Context, action, method, target string, body any) ([]byte, error) {
	b, err := c.do(ctx, method, target, body, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusMethodNotAllowed) {
			return nil, &EndpointUnavailableError{Action: action, StatusCode: apiErr.StatusCode}
		}
		return nil, err
	}
	if err := checkJSON(b); err != nil {
		return nil, err
	}
	return b, nil
}

func checkJSON(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 || json.Valid(b) {
		return nil
	}
	return ErrMalformedResponse
}

// serverMessage pulls the "error" or "message" member out of a JSON error body.
func serverMessage(b []byte) string {
	var body struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	for _, raw := range []json.RawMessage{body.Error, body.Message} {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// decodeCollection accepts a bare JSON array or an object wrapping the array
// under key. Any other shape holds no records.
func decodeCollection(b []byte, key string) ([]json.RawMessage, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}
	if !json.Valid(b) {
		return nil, ErrMalformedResponse
	}
	switch b[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return nil, err
		}
		var items []json.RawMessage
		if err := json.Unmarshal(wrapped[key], &items); err != nil {
			return nil, nil
		}
		return items, nil
	}
	return nil, nil
}

// decodeRecord unwraps {key: {...}} when the server wraps single records.
func decodeRecord(b []byte, key string, dst any) error {
	b = bytes.TrimSpace(b)
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if inner := bytes.TrimSpace(wrapped[key]); len(inner) > 0 && inner[0] == '{' {
		b = inner
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
