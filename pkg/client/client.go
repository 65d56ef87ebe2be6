// Package client is a typed Go façade over the marketplace HTTP API. It
// normalizes account identifiers at the response boundary and caches the
// authenticated identity in a Session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUnauthenticated is returned when the server rejects the caller's
// credentials or token.
var ErrUnauthenticated = errors.New("unauthenticated")

// Account is the wire shape returned by auth and directory endpoints. Some
// responses carry the store-internal identifier instead of (or alongside) the
// public one; Normalize resolves the two into ID.
type Account struct {
	ID            string   `json:"id"`
	StoreID       string   `json:"_id,omitempty"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Role          string   `json:"role"`
	Rating        float64  `json:"rating"`
	CompletedJobs int      `json:"completedJobs"`
	Skills        []string `json:"skills"`
	Experience    string   `json:"experience"`
	HourlyRate    float64  `json:"hourlyRate"`
	ResponseTime  string   `json:"responseTime"`
}

// Normalize resolves the canonical identifier: the public id wins, the
// store-internal one is the fallback. Applied to every account-shaped
// response before it leaves the façade.
func (a *Account) Normalize() {
	if a.ID == "" {
		a.ID = a.StoreID
	}
	a.StoreID = ""
}

type authEnvelope struct {
	User  Account `json:"user"`
	Token string  `json:"token"`
}

// RegisterCustomerParams holds the customer registration fields.
type RegisterCustomerParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// RegisterWorkerParams holds the worker registration fields.
type RegisterWorkerParams struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	HourlyRate   float64  `json:"hourlyRate"`
	ResponseTime string   `json:"responseTime"`
}

// UpdateProfileParams is a partial update; nil fields are left unchanged.
type UpdateProfileParams struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	Experience   *string   `json:"experience,omitempty"`
	HourlyRate   *float64  `json:"hourlyRate,omitempty"`
	ResponseTime *string   `json:"responseTime,omitempty"`
}

// Client talks to the marketplace API. Auth operations record the issued
// token and account in the attached Session, and subsequent requests send
// the token as a bearer credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession attaches a session store; auth results are cached in it and
// its token authenticates subsequent requests.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New returns a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    NewSession(NewMemoryStorage()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the attached session store.
func (c *Client) Session() *Session {
	return c.session
}

// RegisterCustomer creates a customer account and signs the session in.
func (c *Client) RegisterCustomer(ctx context.Context, params RegisterCustomerParams) (*Account, error) {
	return c.auth(ctx, "/auth/register", params, "Registration failed. Please try again.")
}

// RegisterWorker creates a worker account and signs the session in.
func (c *Client) RegisterWorker(ctx context.Context, params RegisterWorkerParams) (*Account, error) {
	return c.auth(ctx, "/auth/register/worker", params, "Registration failed. Please try again.")
}

// Login authenticates and signs the session in.
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	body := map[string]string{"email": email, "password": password}
	return c.auth(ctx, "/auth/login", body, "Login failed. Please try again.")
}

func (c *Client) auth(ctx context.Context, path string, body any, failMsg string) (*Account, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, path, body, &env); err != nil {
		return nil, opError(failMsg, err)
	}
	env.User.Normalize()
	if err := c.session.SignIn(&env.User, env.Token); err != nil {
		return nil, opError(failMsg, err)
	}
	return &env.User, nil
}

// UpdateProfile applies a partial update and refreshes the cached session
// account when it is the one being updated.
func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Account, error) {
	var updated Account
	if err := c.do(ctx, http.MethodPut, "/auth/update", params, &updated); err != nil {
		return nil, opError("Profile update failed. Please try again.", err)
	}
	updated.Normalize()

	if current, _ := c.session.Account(); current != nil && current.ID == updated.ID {
		if err := c.session.SetAccount(&updated); err != nil {
			return nil, opError("Profile update failed. Please try again.", err)
		}
	}
	return &updated, nil
}

// Workers lists all workers, highest rated first.
func (c *Client) Workers(ctx context.Context) ([]Account, error) {
	var workers []Account
	if err := c.do(ctx, http.MethodGet, "/workers", nil, &workers); err != nil {
		return nil, opError("Could not load workers. Please try again.", err)
	}
	for i := range workers {
		workers[i].Normalize()
	}
	return workers, nil
}

// WorkersBySkill lists workers matching a skill tag. The tag "all" returns
// the unfiltered listing.
func (c *Client) WorkersBySkill(ctx context.Context, skill string) ([]Account, error) {
	if skill == "" || skill == "all" {
		return c.Workers(ctx)
	}
	var workers []Account
	path := "/workers/skill/" + url.PathEscape(skill)
	if err := c.do(ctx, http.MethodGet, path, nil, &workers); err != nil {
		return nil, opError("Could not load workers. Please try again.", err)
	}
	for i := range workers {
		workers[i].Normalize()
	}
	return workers, nil
}

// WorkerByID fetches a single worker.
func (c *Client) WorkerByID(ctx context.Context, id string) (*Account, error) {
	var worker Account
	if err := c.do(ctx, http.MethodGet, "/workers/"+url.PathEscape(id), nil, &worker); err != nil {
		return nil, opError("Could not load worker. Please try again.", err)
	}
	worker.Normalize()
	return &worker, nil
}

// Logout clears the cached session.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// opError wraps a transport or server failure in the generic operation
// message while keeping the cause inspectable with errors.Is.
func opError(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
