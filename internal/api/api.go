// Package api wraps the Hoaxify REST endpoints. Each method issues exactly
// one request and turns failure bodies into *APIError or *ValidationError.
package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/patric-chuzhbe/hoaxify/internal/logger"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
)

const (
	usersPath      = "/api/1.0/users"
	userPath       = "/api/1.0/users/{id}"
	activationPath = "/api/1.0/users/token/{token}"
	authPath       = "/api/1.0/auth"
)

type localeSource interface {
	Locale() string
}

// authorizationSource yields the Authorization header value, or "" when logged out.
type authorizationSource func() string

type Client struct {
	rest          *resty.Client
	locale        localeSource
	authorization authorizationSource
}

type Option func(*Client)

// WithAuthorization attaches the header returned by source to every request.
func WithAuthorization(source func() string) Option {
	return func(c *Client) {
		c.authorization = source
	}
}

// WithRestyClient replaces the underlying resty client, mostly for tests.
func WithRestyClient(rest *resty.Client) Option {
	return func(c *Client) {
		c.rest = rest
	}
}

// New returns a client for the backend at baseURL. Every request carries
// the active locale as Accept-Language.
func New(baseURL string, locale localeSource, opts ...Option) *Client {
	c := &Client{
		rest:   resty.New(),
		locale: locale,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rest.
		SetBaseURL(baseURL).
		SetLogger(logger.Log).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.decorate)

	return c
}

func (c *Client) decorate(_ *resty.Client, req *resty.Request) error {
	req.SetHeader("Accept-Language", c.locale.Locale())
	req.SetHeader("X-Request-ID", uuid.New().String())
	if c.authorization != nil {
		if header := c.authorization(); header != "" {
			req.SetHeader("Authorization", header)
		}
	}
	return nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.rest.R().
		SetContext(ctx).
		SetError(&models.ErrorResponse{})
}

// check converts a failed response into a typed error.
func check(resp *resty.Response, err error, operation string) error {
	if err != nil {
		return fmt.Errorf("in internal/api/api.go/%s(): error while sending request: %w", operation, err)
	}
	if !resp.IsError() {
		return nil
	}

	body, _ := resp.Error().(*models.ErrorResponse)
	if body != nil && len(body.ValidationErrors) > 0 {
		return &ValidationError{Fields: body.ValidationErrors}
	}

	apiErr := &APIError{Status: resp.StatusCode()}
	if body != nil {
		apiErr.Message = body.Message
	}
	return apiErr
}

// SignUp creates a user; a 400 comes back as *ValidationError.
func (c *Client) SignUp(ctx context.Context, body models.SignUpRequest) error {
	resp, err := c.request(ctx).
		SetBody(body).
		Post(usersPath)

	return check(resp, err, "SignUp")
}

// Activate confirms the account identified by token.
func (c *Client) Activate(ctx context.Context, token string) error {
	resp, err := c.request(ctx).
		SetPathParam("token", token).
		Post(activationPath)

	return check(resp, err, "Activate")
}

// Login exchanges credentials for the user's identity and token.
func (c *Client) Login(ctx context.Context, body models.LoginRequest) (*models.LoginResponse, error) {
	result := &models.LoginResponse{}
	resp, err := c.request(ctx).
		SetBody(body).
		SetResult(result).
		Post(authPath)
	if err := check(resp, err, "Login"); err != nil {
		return nil, err
	}

	return result, nil
}

// LoadUsers fetches one page of the user list.
func (c *Client) LoadUsers(ctx context.Context, page, size int) (*models.UserPage, error) {
	result := &models.UserPage{}
	resp, err := c.request(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("size", strconv.Itoa(size)).
		SetResult(result).
		Get(usersPath)
	if err := check(resp, err, "LoadUsers"); err != nil {
		return nil, err
	}

	return result, nil
}

// GetUserByID fetches a single user; a missing user matches ErrNotFound.
func (c *Client) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	result := &models.User{}
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(result).
		Get(userPath)
	if err := check(resp, err, "GetUserByID"); err != nil {
		return nil, err
	}

	return result, nil
}
