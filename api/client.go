package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-admin-portal/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 15 * time.Second

// Auth and user endpoint paths.
const (
	PathMe             = "/auth/me"
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathLogout         = "/auth/logout"
	PathUpdatePassword = "/auth/update-password"
	PathDeleteMe       = "/auth/delete-me"
	PathProfile        = "/users/profile"
	PathAppConfig      = "/config/app"
)

// Client is a thin wrapper over the portal backend's REST API. The session
// artifact is an httpOnly cookie held in the client's jar; it is carried on
// every request and never surfaced to callers.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The replacement should
// carry its own cookie jar if session continuity is needed.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client for the backend at baseURL. The URL must be absolute
// (scheme and host), e.g. "https://api.portal.example.com/api/v1".
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[api.New] invalid base URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("[api.New] base URL must use http or https: %q", baseURL)
	}
	if parsed.Host == "" {
		return nil, errors.Errorf("[api.New] base URL missing host: %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "[api.New] cookiejar.New")
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		log: zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// userEnvelope is the success envelope for endpoints that resolve a user.
type userEnvelope struct {
	Data struct {
		User *users.User `json:"user"`
	} `json:"data"`
}

// errorBody is the failure payload shape shared by all endpoints.
type errorBody struct {
	Message string `json:"message"`
}

// Me probes the backend for an existing session. Returns the resolved user
// or an error for any non-2xx response.
func (c *Client) Me(ctx context.Context) (*users.User, error) {
	var envelope userEnvelope
	if err := c.do(ctx, http.MethodGet, PathMe, nil, &envelope); err != nil {
		return nil, errors.Wrap(err, "[Client.Me]")
	}
	if envelope.Data.User == nil {
		return nil, errors.New("[Client.Me] response missing user")
	}
	return envelope.Data.User, nil
}

// Login exchanges credentials for a session cookie. The backend sets the
// cookie on the response; the resolved user is returned.
func (c *Client) Login(ctx context.Context, email, password string) (*users.User, error) {
	body := map[string]string{"email": email, "password": password}
	var envelope userEnvelope
	if err := c.do(ctx, http.MethodPost, PathLogin, body, &envelope); err != nil {
		return nil, errors.Wrap(err, "[Client.Login]")
	}
	if envelope.Data.User == nil {
		return nil, errors.New("[Client.Login] response missing user")
	}
	return envelope.Data.User, nil
}

// Register creates a new identity and authenticates it in the same call.
func (c *Client) Register(ctx context.Context, req users.RegisterRequest) (*users.User, error) {
	var envelope userEnvelope
	if err := c.do(ctx, http.MethodPost, PathRegister, req, &envelope); err != nil {
		return nil, errors.Wrap(err, "[Client.Register]")
	}
	if envelope.Data.User == nil {
		return nil, errors.New("[Client.Register] response missing user")
	}
	return envelope.Data.User, nil
}

// Logout asks the backend to invalidate the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, PathLogout, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.Logout]")
	}
	return nil
}

// UpdateProfile mutates profile fields and returns the backend's
// authoritative user record.
func (c *Client) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error) {
	var envelope userEnvelope
	if err := c.do(ctx, http.MethodPatch, PathProfile, update, &envelope); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateProfile]")
	}
	if envelope.Data.User == nil {
		return nil, errors.New("[Client.UpdateProfile] response missing user")
	}
	return envelope.Data.User, nil
}

// UpdatePassword changes the account password. No session state changes on
// either outcome.
func (c *Client) UpdatePassword(ctx context.Context, current, password, passwordConfirm string) error {
	body := map[string]string{
		"passwordCurrent": current,
		"password":        password,
		"passwordConfirm": passwordConfirm,
	}
	if err := c.do(ctx, http.MethodPatch, PathUpdatePassword, body, nil); err != nil {
		return errors.Wrap(err, "[Client.UpdatePassword]")
	}
	return nil
}

// DeleteMe permanently removes the authenticated account.
func (c *Client) DeleteMe(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, PathDeleteMe, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.DeleteMe]")
	}
	return nil
}

// do executes a JSON request against the backend. A nil out skips response
// decoding. Transport failures carry ErrNetwork as their root cause; non-2xx
// responses are returned as *Error with the decoded message, if any.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Client.do] marshal %s %s", method, path)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	c.log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Msg("backend request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("path", path).Str("request_id", requestID).Err(err).Msg("backend unreachable")
		return errors.Wrapf(ErrNetwork, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var failure errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil {
			apiErr.Message = failure.Message
		}
		c.log.Debug().Str("path", path).Str("request_id", requestID).Int("status", resp.StatusCode).Msg("backend error response")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "[Client.do] decode %s %s", method, path)
	}
	return nil
}
