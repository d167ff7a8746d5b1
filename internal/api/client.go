// Package api is the HTTP client for the clinic booking API. It owns
// the wire concerns: JSON bodies, the bearer credential header, request
// IDs, a client-side rate limit and the single decode point for error
// responses. It never retries and never refreshes tokens; an expired
// access token surfaces as an ordinary request failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/medicare/clinicctl/internal/model"
	"github.com/medicare/clinicctl/internal/tokenstore"
	"github.com/medicare/clinicctl/pkg/apierror"
	"github.com/medicare/clinicctl/pkg/logger"
)

const headerRequestID = "X-Request-ID"

// Config holds client construction parameters.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the clinic API. The access token is read from the
// token store on every authenticated request, so a login or logout in
// the same process is picked up immediately.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewClient(cfg Config, tokens tokenstore.Store, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = 10
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

// do issues one request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses come back as a *apierror.Error; failures that never
// produced a response come back as transport errors.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, authed bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.New().String())

	if authed {
		pair, err := c.tokens.Load()
		if err != nil {
			return fmt.Errorf("failed to load credentials: %w", err)
		}
		if pair.Access != "" {
			req.Header.Set("Authorization", "Bearer "+pair.Access)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "error", err.Error())
		return apierror.Transport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.Transport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apierror.Decode(resp.StatusCode, respBody)
		c.log.Debug("request rejected",
			"method", method, "path", path,
			"status", resp.StatusCode, "kind", string(apiErr.Kind))
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	var pair model.TokenPair
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", req, &pair, false); err != nil {
		return model.TokenPair{}, err
	}
	return pair, nil
}

// Register creates a patient account. Session state is untouched; the
// caller logs in separately.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisteredAccount, error) {
	var account model.RegisteredAccount
	if err := c.do(ctx, http.MethodPost, "/auth/register/", req, &account, false); err != nil {
		return nil, err
	}
	return &account, nil
}

// CurrentUser fetches the identity behind the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/user/", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}
