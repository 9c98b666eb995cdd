package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AuthEventKind labels the auth-change events the client publishes.
type AuthEventKind string

const (
	AuthSignedIn  AuthEventKind = "signed_in"
	AuthSignedOut AuthEventKind = "signed_out"
	AuthExpired   AuthEventKind = "expired"
)

type AuthEvent struct {
	Kind AuthEventKind
}

// APIError carries the server's {error_code, message} fault body plus the
// HTTP status. It wraps every non-2xx response.
type APIError struct {
	Status  int
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Client is the shared REST transport: base URL, bearer token, and the
// auth-change event feed the session singleton subscribes to.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger

	mu      sync.Mutex
	token   string
	subs    map[int]chan AuthEvent
	nextSub int
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zerolog.Nop(),
		subs:    make(map[int]chan AuthEvent),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs (or clears) the bearer token and publishes the matching
// auth-change event.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if token == "" {
		c.publish(AuthEvent{Kind: AuthSignedOut})
	} else {
		c.publish(AuthEvent{Kind: AuthSignedIn})
	}
}

// Subscribe registers an auth-event listener. The returned func
// unsubscribes and closes the channel.
func (c *Client) Subscribe() (<-chan AuthEvent, func()) {
	ch := make(chan AuthEvent, 8)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Client) publish(ev AuthEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than block the caller.
		}
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the API and installs the returned token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

// Logout clears the token locally. The API keeps no session state.
func (c *Client) Logout() {
	c.SetToken("")
}

// Do performs one JSON request. Non-2xx responses become *APIError; a 401
// additionally publishes an expiry event so the session layer can react.
func (c *Client) Do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if raw, err := io.ReadAll(resp.Body); err == nil {
			_ = json.Unmarshal(raw, apiErr)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.publish(AuthEvent{Kind: AuthExpired})
		}

		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("code", apiErr.Code).
			Msg("api request failed")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
