// Package backend is the REST client for the admin application's API. The
// session layer only consumes three endpoints: the token exchange and the
// profile/permission fetches that run during bootstrap.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const defaultTimeout = 20 * time.Second

// Client talks to the admin backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option modifies the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing
// and for callers that need custom transports).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[backend.New] baseURL is required")
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Login exchanges credentials for a token pair via POST token/.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login] json.Marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login] http.NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login] httpClient.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("[Client.Login] unexpected status %d", resp.StatusCode)
	}

	var pair TokenPair
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&pair); err != nil {
		return nil, errors.Wrap(err, "[Client.Login] decode response")
	}
	if pair.Access == "" {
		return nil, errors.New("[Client.Login] response missing access token")
	}
	return &pair, nil
}

// Profile fetches the authenticated user via GET user/profile/.
func (c *Client) Profile(ctx context.Context, accessToken string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.getJSON(ctx, accessToken, "/user/profile/", &profile); err != nil {
		return nil, errors.Wrap(err, "[Client.Profile]")
	}
	return &profile, nil
}

// Permissions fetches the flat permission list via GET user/permissions/.
func (c *Client) Permissions(ctx context.Context, accessToken string) ([]string, error) {
	var response permissionsResponse
	if err := c.getJSON(ctx, accessToken, "/user/permissions/", &response); err != nil {
		return nil, errors.Wrap(err, "[Client.Permissions]")
	}
	return response.Permissions, nil
}

func (c *Client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext")
	}

	resp, err := c.authorized(ctx, accessToken).Do(req)
	if err != nil {
		return errors.Wrap(err, "httpClient.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// authorized wraps the configured HTTP client with a static bearer token
// source so every API call carries the Authorization header.
func (c *Client) authorized(ctx context.Context, accessToken string) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, source)
}
