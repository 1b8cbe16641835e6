// Package habitica is a small client for the parts of the Habitica v3 API
// the CLI uses: the user profile, todos, and scoring.
package habitica

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

	"github.com/rs/zerolog"

	"github.com/colonyops/habit/internal/core/logging"
)

// DefaultBaseURL is the public Habitica API root.
const DefaultBaseURL = "https://habitica.com/api/v3"

const clientSuffix = "habit"

// ErrUnreachable wraps transport failures: DNS, refused connections,
// timeouts. Callers treat it as "offline".
var ErrUnreachable = errors.New("habitica unreachable")

// APIError is a non-2xx response, or a 2xx response with success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("habitica: status %d", e.Status)
	}
	return fmt.Sprintf("habitica: status %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Client talks to the Habitica API with API-key credentials.
type Client struct {
	baseURL string
	userID  string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client. An empty baseURL uses DefaultBaseURL.
func New(baseURL, userID, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     logging.Component("habitica"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes the envelope's data into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-user", c.userID)
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-client", c.userID+"-"+clientSuffix)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Ctx(ctx).Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnreachable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Msg("close response body")
		}
	}()

	c.log.Debug().Ctx(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %w", method, path, ErrUnreachable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
			if apiErr.Message == "" {
				apiErr.Message = env.Error
			}
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, decodeErr)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}
