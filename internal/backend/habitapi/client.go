// Package habitapi implements the service.Service interface against the
// habit tracker REST backend.
package habitapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"habitctl/internal/config"
	"habitctl/internal/service"
)

const (
	// TokenHeader carries the session token. The backend reads this custom
	// name, not the standard Authorization header.
	TokenHeader = "X-Access-Token"

	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second
)

// TokenSource supplies the current session token, or "" when logged out.
type TokenSource interface {
	Get() string
}

// Client implements service.Service over HTTP/JSON.
type Client struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
}

// New creates a client for the configured backend.
func New(cfg *config.Config, tokens TokenSource) *Client {
	return NewWithHTTPClient(cfg.ServerURL, tokens, &http.Client{})
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, tokens TokenSource, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   httpc,
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	if err := checkCredentials(username, password); err != nil {
		return err
	}
	body := credentials{Username: username, Password: password}
	return c.do(ctx, http.MethodPost, "/register", nil, body, nil)
}

// Login authenticates and returns the session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if err := checkCredentials(username, password); err != nil {
		return "", err
	}
	body := credentials{Username: username, Password: password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("login failed: no token in response")
	}
	return resp.AccessToken, nil
}

// Quote fetches the quote of the day.
func (c *Client) Quote(ctx context.Context) (service.Quote, error) {
	var resp struct {
		Quote  string `json:"quote"`
		Author string `json:"author"`
	}
	if err := c.do(ctx, http.MethodGet, "/quote", nil, nil, &resp); err != nil {
		return service.Quote{}, err
	}
	return service.Quote{Text: resp.Quote, Author: resp.Author}, nil
}

// Habits returns the checklist for a date. Silently skipped without a token.
func (c *Client) Habits(ctx context.Context, date string) ([]service.Habit, error) {
	if c.tokens.Get() == "" {
		return nil, nil
	}
	q := url.Values{"date": {date}}
	var resp struct {
		Date   string      `json:"date"`
		Habits []wireHabit `json:"habits"`
	}
	if err := c.do(ctx, http.MethodGet, "/habits", q, nil, &resp); err != nil {
		return nil, err
	}
	habits := make([]service.Habit, 0, len(resp.Habits))
	for _, h := range resp.Habits {
		habits = append(habits, service.Habit{
			ID:        h.ID.String(),
			Name:      h.Name,
			Completed: h.Completed,
		})
	}
	return habits, nil
}

// SaveHabits persists completions for a date and returns the server
// percentage. Silently skipped without a token.
func (c *Client) SaveHabits(ctx context.Context, date string, completions map[string]bool) (float64, error) {
	if c.tokens.Get() == "" {
		return 0, nil
	}
	body := struct {
		Date        string          `json:"date"`
		Completions map[string]bool `json:"completions"`
	}{Date: date, Completions: completions}
	var resp struct {
		Percentage float64 `json:"percentage"`
	}
	if err := c.do(ctx, http.MethodPost, "/habits", nil, body, &resp); err != nil {
		return 0, err
	}
	return resp.Percentage, nil
}

// Progress returns aggregated completion per habit for a period.
// Silently skipped without a token.
func (c *Client) Progress(ctx context.Context, period service.Period) ([]service.ProgressEntry, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("period must be %q or %q", service.PeriodWeekly, service.PeriodMonthly)
	}
	if c.tokens.Get() == "" {
		return nil, nil
	}
	q := url.Values{"period": {string(period)}}
	var resp struct {
		Habits []struct {
			Name          string  `json:"name"`
			CompletedDays int     `json:"completed_days"`
			TotalDays     int     `json:"total_days"`
			Percentage    float64 `json:"percentage"`
		} `json:"habits"`
	}
	if err := c.do(ctx, http.MethodGet, "/progress", q, nil, &resp); err != nil {
		return nil, err
	}
	entries := make([]service.ProgressEntry, 0, len(resp.Habits))
	for _, h := range resp.Habits {
		entries = append(entries, service.ProgressEntry{
			Name:          h.Name,
			CompletedDays: h.CompletedDays,
			TotalDays:     h.TotalDays,
			Percentage:    h.Percentage,
		})
	}
	return entries, nil
}

// credentials is the request body shared by /register and /login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// wireHabit matches the backend's habit shape. The id is an integer on the
// wire but json.Number keeps it as the exact string the save payload needs.
type wireHabit struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	Completed bool        `json:"completed"`
}

// checkCredentials rejects blank fields before any request goes out.
func checkCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

// do performs one JSON request/response round trip with a per-call timeout.
// Failures come back as short user-displayable messages.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.tokens.Get(); tok != "" {
		req.Header.Set(TokenHeader, tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New("invalid response from server")
	}
	return nil
}

// statusError converts a non-2xx response into the backend's error message,
// or a generic fallback when none is provided.
func statusError(resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
		Msg   string `json:"msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
		if apiErr.Error != "" {
			return errors.New(apiErr.Error)
		}
		// flask-jwt-extended reports auth failures under "msg"
		if apiErr.Msg != "" && isAuthStatus(resp.StatusCode) {
			return errors.New("session expired or invalid (run: habitctl login)")
		}
	}
	if isAuthStatus(resp.StatusCode) {
		return errors.New("session expired or invalid (run: habitctl login)")
	}
	return fmt.Errorf("request failed (status %d)", resp.StatusCode)
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// wrapTransportError maps network failures to friendly messages.
func wrapTransportError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "context deadline exceeded") {
		return errors.New("request timed out")
	}
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return errors.New("cannot reach server")
	}
	return err
}
