// Package kinto talks to a Kinto record collection holding pizza orders.
package kinto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Makepad-fr/pizza/internal/model"
)

// HTTPClient is the part of *http.Client the store needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Error is a non-2xx answer from the server.
type Error struct {
	StatusCode int
	Errno      int64
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bad status %d", e.StatusCode)
	}
	return fmt.Sprintf("bad status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http       HTTPClient
	logger     *slog.Logger
	bucket     string
	collection string
}

func New(httpClient HTTPClient, logger *slog.Logger, bucket, collection string) *Client {
	return &Client{
		http:       httpClient,
		logger:     logger,
		bucket:     bucket,
		collection: collection,
	}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type newRecord struct {
	Date         string              `json:"date"`
	Price        float64             `json:"price"`
	Participants []model.Participant `json:"participants"`
}

// List returns every order, newest first.
func (c *Client) List(ctx context.Context, cred model.Credential) ([]model.Order, error) {
	var out envelope[[]model.Order]
	q := url.Values{"_sort": {"-date"}}
	if err := c.do(ctx, cred, http.MethodGet, c.recordsPath(), q, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []model.Order{}
	}
	return out.Data, nil
}

// Create stores the draft as a new order and returns it with its id and revision.
func (c *Client) Create(ctx context.Context, cred model.Credential, draft model.Draft) (model.Order, error) {
	participants := draft.Participants
	if participants == nil {
		participants = []model.Participant{}
	}
	body := envelope[newRecord]{Data: newRecord{
		Date:         draft.Date,
		Price:        draft.Price,
		Participants: participants,
	}}
	var out envelope[model.Order]
	if err := c.do(ctx, cred, http.MethodPost, c.recordsPath(), nil, body, &out); err != nil {
		return model.Order{}, err
	}
	return out.Data, nil
}

// Delete removes one order.
func (c *Client) Delete(ctx context.Context, cred model.Credential, id string) (model.Tombstone, error) {
	var out envelope[model.Tombstone]
	p := c.recordsPath() + "/" + url.PathEscape(id)
	if err := c.do(ctx, cred, http.MethodDelete, p, nil, nil, &out); err != nil {
		return model.Tombstone{}, err
	}
	return out.Data, nil
}

// ExportURL points at the raw records with the credential baked in, so it
// can be opened directly in a browser.
func (c *Client) ExportURL(cred model.Credential) (string, error) {
	u, err := c.endpoint(cred.Server, c.recordsPath(), url.Values{"_sort": {"-date"}})
	if err != nil {
		return "", err
	}
	u.User = url.UserPassword(cred.Username, cred.Password)
	return u.String(), nil
}

func (c *Client) recordsPath() string {
	return fmt.Sprintf("/buckets/%s/collections/%s/records",
		url.PathEscape(c.bucket), url.PathEscape(c.collection))
}

func (c *Client) endpoint(server, path string, q url.Values) (*url.URL, error) {
	base, err := url.Parse(strings.TrimRight(server, "/"))
	if err != nil {
		return nil, fmt.Errorf("server address: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("server address %q: want scheme and host", server)
	}
	u := base.JoinPath(path)
	u.RawQuery = q.Encode()
	return u, nil
}

func (c *Client) do(ctx context.Context, cred model.Credential, method, path string, q url.Values, in, out any) error {
	u, err := c.endpoint(cred.Server, path, q)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(cred.Username, cred.Password)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("kinto request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	c.logger.Debug("kinto request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, b)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	return nil
}

// decodeError reads the {"errno","message"} body Kinto sends with failures.
// Anything else falls back to the status text.
func decodeError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	if gjson.ValidBytes(body) {
		r := gjson.ParseBytes(body)
		e.Errno = r.Get("errno").Int()
		e.Message = r.Get("message").String()
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
