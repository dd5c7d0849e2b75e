package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/festivo/festivo/internal/session"
)

// TokenSource supplies the bearer credential for authenticated requests.
// An empty return means the request goes out unauthenticated.
type TokenSource func() string

// Config holds client configuration.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheDir string
	Token    TokenSource
}

// Client talks to the storefront REST backend. Every call is a single
// attempt: failures are terminal for that call, retry is the caller's
// (manual) decision.
type Client struct {
	baseURL string
	token   TokenSource

	httpClient *http.Client
	// Public read-only GETs go through a caching transport; everything
	// touching credentials stays on the plain client.
	cachingClient *http.Client
}

// New creates a backend client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		token:         cfg.Token,
		httpClient:    &http.Client{Timeout: timeout},
		cachingClient: newCachingHTTPClient(cfg.CacheDir, timeout),
	}
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (string, session.User, error) {
	var resp loginResponse
	err := c.do(ctx, c.httpClient, http.MethodPost, "/api/auth/login", nil, loginRequest{Email: email, Password: password}, "", &resp)
	if err != nil {
		return "", session.User{}, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return "", session.User{}, fmt.Errorf("login response missing token")
	}
	return resp.Token, resp.User, nil
}

// ValidateToken checks a persisted token against the backend. A backend
// rejection (non-2xx or valid=false) is reported as valid=false with a nil
// error: the session manager treats every failure identically, so only
// transport problems surface as err.
func (c *Client) ValidateToken(ctx context.Context, token string) (*session.User, bool, error) {
	var resp validateResponse
	err := c.do(ctx, c.httpClient, http.MethodGet, "/api/auth/validate", nil, nil, token, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !resp.Valid || resp.User == nil {
		return nil, false, nil
	}
	return resp.User, true, nil
}

// ListEvents fetches the event listing. limit <= 0 means no limit param,
// empty status means all statuses.
func (c *Client) ListEvents(ctx context.Context, limit int, status string) ([]Event, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if status != "" {
		query.Set("status", status)
	}

	var resp eventsResponse
	if err := c.do(ctx, c.cachingClient, http.MethodGet, "/api/events", query, nil, c.currentToken(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return resp.Events, nil
}

// SearchVideos queries the backend's YouTube search proxy.
func (c *Client) SearchVideos(ctx context.Context, q string, maxResults int) ([]Video, error) {
	query := url.Values{}
	query.Set("q", q)
	if maxResults > 0 {
		query.Set("maxResults", strconv.Itoa(maxResults))
	}

	var resp searchResponse
	if err := c.do(ctx, c.cachingClient, http.MethodGet, "/api/youtube/search", query, nil, c.currentToken(), &resp); err != nil {
		return nil, fmt.Errorf("video search failed: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("video search failed: %s", msg)
	}
	return resp.Videos, nil
}

func (c *Client) currentToken() string {
	if c.token == nil {
		return ""
	}
	return c.token()
}

// do performs one request and decodes the JSON response into out. Non-2xx
// responses become *APIError with the server-provided message when one is
// present.
func (c *Client) do(ctx context.Context, httpClient *http.Client, method, path string, query url.Values, body any, token string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("requestId", requestID).
			Msg("backend request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Str("requestId", requestID).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		message := errResp.Error
		if message == "" {
			message = errResp.Message
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
