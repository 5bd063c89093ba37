// Package api is the client for the remote journaling service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// Sentinel errors for service calls.
var (
	// ErrUnavailable covers both "no entry for that date" and any failure
	// to fetch one; the service does not let the client tell them apart.
	ErrUnavailable = errors.New("entry unavailable")
	ErrTransport   = errors.New("transport error")
	ErrStatus      = errors.New("unexpected status")
	ErrMalformed   = errors.New("malformed response")
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 5 * 1024 * 1024

// StatusError is returned for non-2xx responses. The body is opaque text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, body)
}

// Is makes errors.Is(err, ErrStatus) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Service is the set of remote operations the client relies on.
type Service interface {
	ListEntries(ctx context.Context) ([]entry.Summary, error)
	CreateEntry(ctx context.Context, text string) (analysis.Record, error)
	EntryByDate(ctx context.Context, date string) (analysis.Record, error)
}

// Client talks to the service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero means no timeout, which is
// the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in base URL", u.Scheme)
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListEntries fetches every entry the service holds. Anything other than a
// JSON array is reported as ErrMalformed.
func (c *Client) ListEntries(ctx context.Context) ([]entry.Summary, error) {
	body, err := c.do(ctx, http.MethodGet, "/journal-entries", nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: listing is not an array: %s", ErrMalformed, preview(trimmed))
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding listing: %v", ErrMalformed, err)
	}

	summaries := make([]entry.Summary, 0, len(records))
	for _, raw := range records {
		var s entry.Summary
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: decoding listing item: %v", ErrMalformed, err)
		}
		if s.Text == "" {
			s.Text = s.EntryText
		}
		if s.ID == "" {
			id, err := entry.NewID()
			if err != nil {
				return nil, fmt.Errorf("generating id: %w", err)
			}
			s.ID = id
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

type createRequest struct {
	Text string `json:"text"`
}

// CreateEntry submits text for analysis. The text is reduced to printable
// ASCII before it is sent.
func (c *Client) CreateEntry(ctx context.Context, text string) (analysis.Record, error) {
	payload, err := json.Marshal(createRequest{Text: entry.Sanitize(text)})
	if err != nil {
		return analysis.Record{}, fmt.Errorf("encoding request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/journal-entry", payload)
	if err != nil {
		return analysis.Record{}, err
	}

	var rec analysis.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return analysis.Record{}, fmt.Errorf("%w: decoding analysis: %v", ErrMalformed, err)
	}
	return rec, nil
}

// EntryByDate fetches the analysis stored for date (YYYY-MM-DD). Every
// failure, including a message-only answer, is ErrUnavailable.
func (c *Client) EntryByDate(ctx context.Context, date string) (analysis.Record, error) {
	q := url.Values{}
	q.Set("date", date)

	body, err := c.do(ctx, http.MethodGet, "/journal-entry/by-date?"+q.Encode(), nil)
	if err != nil {
		return analysis.Record{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, date, err)
	}

	var rec analysis.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return analysis.Record{}, fmt.Errorf("%w: %s: decoding: %v", ErrUnavailable, date, err)
	}
	if rec.IsMessageOnly() {
		return analysis.Record{}, fmt.Errorf("%w: %s: %s", ErrUnavailable, date, rec.Message)
	}
	return rec, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func preview(b []byte) string {
	const n = 60
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
