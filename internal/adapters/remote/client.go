// Package remote talks to the hosted note sync service over its JSON API.
//
// Every response carries a "success" flag; a false flag turns into an
// *application.RemoteError holding the service's message. Calls that need a
// session fail with application.ErrNotAuthenticated before touching the
// network when no token is set.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"arknotes/internal/application"
	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// DefaultBaseURL is the hosted sync service
const DefaultBaseURL = "https://loginapinote.arc360hub.com"

// DefaultTimeout bounds every request
const DefaultTimeout = 30 * time.Second

// Client implements ports.RemoteStore and ports.Authenticator.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.RWMutex
	token string
}

var (
	_ ports.RemoteStore   = (*Client)(nil)
	_ ports.Authenticator = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the request logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log.With().Str("component", "remote").Logger() }
}

// WithSession starts the client with a stored session
func WithSession(s *ports.Session) Option {
	return func(c *Client) {
		if s != nil {
			c.token = s.Token
		}
	}
}

// NewClient creates a client for baseURL, without a trailing slash
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken sets the bearer token used by session calls
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// AuthToken returns the current bearer token
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e envelope) failure() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

type authResponse struct {
	envelope
	SessionToken string `json:"session_token"`
	Username     string `json:"username"`
}

type uploadRequest struct {
	Data *domain.Bundle `json:"data"`
}

type downloadResponse struct {
	envelope
	Data *domain.Bundle `json:"data"`
}

// Login authenticates and keeps the returned token for later calls
func (c *Client) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	var result authResponse
	if err := c.call(ctx, "login", http.MethodPost, "/api/login", false, credentials{username, password}, &result); err != nil {
		return nil, err
	}
	if result.SessionToken == "" {
		return nil, &application.RemoteError{Op: "login", Message: "no session token in response"}
	}
	if result.Username == "" {
		result.Username = username
	}
	c.SetAuthToken(result.SessionToken)
	return &ports.Session{Username: result.Username, Token: result.SessionToken}, nil
}

// Register creates the account. The service does not open a session on
// registration, so a login follows when no token comes back.
func (c *Client) Register(ctx context.Context, username, password string) (*ports.Session, error) {
	var result authResponse
	if err := c.call(ctx, "register", http.MethodPost, "/api/register", false, credentials{username, password}, &result); err != nil {
		return nil, err
	}
	if result.SessionToken != "" {
		c.SetAuthToken(result.SessionToken)
		return &ports.Session{Username: username, Token: result.SessionToken}, nil
	}
	return c.Login(ctx, username, password)
}

// Logout ends the session on the service and forgets the token
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetAuthToken("")
	return c.call(ctx, "logout", http.MethodPost, "/api/logout", true, nil, nil)
}

// Upload replaces the remote bundle
func (c *Client) Upload(ctx context.Context, bundle *domain.Bundle) error {
	var result envelope
	return c.call(ctx, "upload", http.MethodPost, "/api/sync/upload", true, uploadRequest{Data: bundle}, &result)
}

// Download fetches the remote bundle. An account that never uploaded yields
// an empty bundle.
func (c *Client) Download(ctx context.Context) (*domain.Bundle, error) {
	var result downloadResponse
	if err := c.call(ctx, "download", http.MethodGet, "/api/sync/download", true, nil, &result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		return &domain.Bundle{}, nil
	}
	return result.Data, nil
}

// call performs one request and checks the success flag of the response
func (c *Client) call(ctx context.Context, op, method, path string, authed bool, body any, target any) error {
	token := c.AuthToken()
	if authed && token == "" {
		return application.ErrNotAuthenticated
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, method, path, token, body)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("remote call")

	return decodeResponse(op, resp, target)
}

// doRequest performs an HTTP request with proper headers
func (c *Client) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

type successer interface {
	ok() (bool, string)
}

func (e *envelope) ok() (bool, string) { return e.Success, e.failure() }

// decodeResponse decodes the JSON body into target and maps failures
func decodeResponse(op string, resp *http.Response, target any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if target == nil {
		target = &envelope{}
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, target); err != nil {
			if resp.StatusCode >= 400 {
				return &application.RemoteError{Op: op, Message: fmt.Sprintf("status %d", resp.StatusCode)}
			}
			return fmt.Errorf("failed to decode %s response: %w", op, err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", op, application.ErrNotAuthenticated)
	}

	s, checks := target.(successer)
	if !checks {
		return nil
	}
	if success, msg := s.ok(); !success || resp.StatusCode >= 400 {
		if msg == "" && resp.StatusCode >= 400 {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &application.RemoteError{Op: op, Message: msg}
	}
	return nil
}
