package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TokenSource supplies the credential attached to outgoing store requests.
// Authentication itself is an external collaborator; the client only
// forwards whatever token it is handed.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed credential from config.
type StaticToken string

func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

// Client is a thin CRUD wrapper over a remote document collection exposed
// as <base>/<collection>.json. The store performs no validation and no
// joins; records come back as raw JSON for the normalizer to deal with.
type Client struct {
	baseURL    string
	collection string
	tokens     TokenSource
	httpClient *http.Client
}

func NewClient(cfg config.Store, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		collection: cfg.Collection,
		tokens:     tokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// List fetches the whole collection as a map of id to raw record. A null
// body means an empty collection, not an error.
func (c *Client) List(ctx context.Context) (map[string]json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, err
	}

	if isNull(body) {
		return map[string]json.RawMessage{}, nil
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.Wrapf(domain.ErrMalformedData, "collection is not an object: %s", err)
	}

	return records, nil
}

// Get fetches a single record. The store answers a missing id with a 200
// and a null body, which surfaces as ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, c.recordURL(id), nil)
	if err != nil {
		return nil, err
	}

	if isNull(body) {
		return nil, errors.Wrapf(domain.ErrNotFound, "record %s", id)
	}

	return body, nil
}

// Create posts a new record and returns the identity the store assigned.
// The caller must not assume an id before this returns.
func (c *Client) Create(ctx context.Context, record any) (string, error) {
	body, err := c.do(ctx, http.MethodPost, c.collectionURL(), record)
	if err != nil {
		return "", err
	}

	var created struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.Name == "" {
		return "", errors.Wrap(domain.ErrMalformedData, "create response carries no id")
	}

	return created.Name, nil
}

// Patch merges the given fields into the record. Fields omitted from the
// payload are left untouched server-side, not cleared.
func (c *Client) Patch(ctx context.Context, id string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPatch, c.recordURL(id), fields)
	return err
}

// Put replaces the record wholesale.
func (c *Client) Put(ctx context.Context, id string, record any) error {
	_, err := c.do(ctx, http.MethodPut, c.recordURL(id), record)
	return err
}

// Delete removes the record. Embedded reviews go with it; they have no
// independent existence.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.recordURL(id), nil)
	return err
}

func (c *Client) collectionURL() string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, c.collection)
}

func (c *Client) recordURL(id string) string {
	return fmt.Sprintf("%s/%s/%s.json", c.baseURL, c.collection, url.PathEscape(id))
}

func (c *Client) do(ctx context.Context, method string, rawURL string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.attachToken(req); err != nil {
		return nil, err
	}

	logger.Debug("store request", zap.String("method", method), zap.String("url", req.URL.Path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrUnavailable, "read response: %s", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrapf(domain.ErrNotFound, "%s %s", method, req.URL.Path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Wrapf(domain.ErrUnavailable, "unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) attachToken(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return fmt.Errorf("token source: %w", err)
	}
	if token == "" {
		return nil
	}

	q := req.URL.Query()
	q.Set("auth", token)
	req.URL.RawQuery = q.Encode()
	return nil
}

// classifyTransport splits a failed round trip into the timeout and
// plain-failure kinds the error taxonomy requires.
func classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.Wrapf(domain.ErrTimeout, "%s", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(domain.ErrTimeout, "%s", err)
	}
	return errors.Wrapf(domain.ErrUnavailable, "%s", err)
}

func isNull(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
