package client

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

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"github.com/dmitrijs2005/healthplanner/internal/logging"
)

// errorBodyLimit caps how much of an error response is read.
const errorBodyLimit = 64 << 10

var errNoAccessToken = errors.New("login response carries no access token")

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the API rooted at apiBase. Requests go
// to apiBase + "/api"; store supplies the bearer credential.
func NewHTTPClient(apiBase string, store credentials.Store, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(apiBase)
	if err != nil {
		return nil, fmt.Errorf("parse api base: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api base: unsupported scheme %q", u.Scheme)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(apiBase, "/") + "/api",
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{store: store, next: http.DefaultTransport, logger: logger},
		},
		logger: logger,
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.Token, error) {
	var tok models.Token
	err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Username: username, Password: password}, &tok)
	if err != nil {
		return models.Token{}, err
	}
	if tok.AccessToken == "" {
		return models.Token{}, errNoAccessToken
	}
	return tok, nil
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/health/profile", nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (c *HTTPClient) SaveProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	var saved models.Profile
	if err := c.do(ctx, http.MethodPost, "/health/profile", p, &saved); err != nil {
		return models.Profile{}, err
	}
	return saved, nil
}

func (c *HTTPClient) WorkoutPlan(ctx context.Context, goal string) (models.WorkoutPlan, error) {
	var resp models.WorkoutPlanResponse
	if err := c.do(ctx, http.MethodPost, "/health/plan", models.WorkoutPlanRequest{Goal: goal}, &resp); err != nil {
		return nil, err
	}
	return resp.WorkoutPlan, nil
}

func (c *HTTPClient) MealPlan(ctx context.Context) (models.MealPlan, error) {
	var plan models.MealPlan
	if err := c.do(ctx, http.MethodPost, "/health/mealplan", nil, &plan); err != nil {
		return models.MealPlan{}, err
	}
	return plan, nil
}

// do sends one JSON request and decodes a 2xx body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		c.logger.Debug(ctx, "api error", "method", method, "path", path, "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// mapError classifies transport failures. Context cancellation and credential
// store failures are returned as such; anything else means the server could
// not be reached.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var credErr *credentialError
	if errors.As(err, &credErr) {
		return credErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
