package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/taskshop/internal/auth"
)

const (
	DefaultIdentityURL = "https://identitytoolkit.googleapis.com"
	DefaultTokenURL    = "https://securetoken.googleapis.com"
)

// Client is a thin HTTP client for the Identity Toolkit and Secure Token
// REST APIs. It authenticates with a web API key and retries with
// exponential backoff on HTTP 429.
type Client struct {
	identityURL string
	tokenURL    string
	apiKey      string
	httpClient  *http.Client
	maxRetries  int
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client. An empty baseURL targets Google's endpoints;
// otherwise both APIs are addressed under baseURL the way the local
// emulator serves them (baseURL/identitytoolkit.googleapis.com/...).
func NewClient(apiKey, baseURL string) *Client {
	c := &Client{
		identityURL: DefaultIdentityURL,
		tokenURL:    DefaultTokenURL,
		apiKey:      apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		sleep:      sleepCtx,
	}
	if baseURL != "" {
		base := strings.TrimRight(baseURL, "/")
		c.identityURL = base + "/identitytoolkit.googleapis.com"
		c.tokenURL = base + "/securetoken.googleapis.com"
	}
	return c
}

// signInResponse is returned by accounts:signInWithPassword, accounts:signUp
// and accounts:update.
type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// tokenResponse is returned by the Secure Token refresh endpoint.
type tokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	ExpiresIn    string `json:"expires_in"`
}

// lookupResponse is returned by accounts:lookup.
type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		Disabled    bool   `json:"disabled"`
	} `json:"users"`
}

// errorResponse is the error envelope of both APIs.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword verifies email and password.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*signInResponse, error) {
	var out signInResponse
	err := c.postJSON(ctx, c.identityURL+"/v1/accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp creates an email/password account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*signInResponse, error) {
	var out signInResponse
	err := c.postJSON(ctx, c.identityURL+"/v1/accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDisplayName sets the profile name of the account behind idToken.
func (c *Client) UpdateDisplayName(ctx context.Context, idToken, name string) (*signInResponse, error) {
	var out signInResponse
	err := c.postJSON(ctx, c.identityURL+"/v1/accounts:update", map[string]any{
		"idToken":           idToken,
		"displayName":       name,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Lookup returns the account behind idToken.
func (c *Client) Lookup(ctx context.Context, idToken string) (*lookupResponse, error) {
	var out lookupResponse
	err := c.postJSON(ctx, c.identityURL+"/v1/accounts:lookup", map[string]any{
		"idToken": idToken,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new ID token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	var out tokenResponse
	err := c.do(ctx, c.tokenURL+"/v1/token", "application/x-www-form-urlencoded",
		[]byte(form.Encode()), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}
	return c.do(ctx, endpoint, "application/json", data, result)
}

// do posts body to endpoint with the API key, handling rate limiting and
// mapping API errors to *auth.Error.
func (c *Client) do(
	ctx context.Context,
	endpoint string,
	contentType string,
	body []byte,
	result any,
) error {
	u := endpoint + "?key=" + url.QueryEscape(c.apiKey)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s: %w", endpoint, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429) on %s", endpoint)
			if err := c.sleep(ctx, retryAfterDuration(resp, attempt)); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var apiErr errorResponse
			if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
				return auth.NewError(apiErr.Error.Message)
			}
			return fmt.Errorf(
				"unexpected status %d on %s: %s",
				resp.StatusCode, endpoint, string(respBody),
			)
		}

		if result == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s: %w", endpoint, err)
		}
		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
