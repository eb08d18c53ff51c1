package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
)

// AuthClient calls the unauthenticated /auth endpoints.
type AuthClient struct {
	c *HTTPClient
}

func NewAuthClient(c *HTTPClient) *AuthClient {
	return &AuthClient{c: c}
}

// Login exchanges credentials for a bearer token.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	return a.token(ctx, "login", email, password)
}

// Register creates an account and returns its first token.
func (a *AuthClient) Register(ctx context.Context, email, password string) (string, error) {
	return a.token(ctx, "register", email, password)
}

func (a *AuthClient) token(ctx context.Context, op, email, password string) (string, error) {
	var resp models.TokenResponse
	req := request{
		method: http.MethodPost,
		path:   []string{op},
		body:   models.Credentials{Email: email, Password: password},
		anon:   true,
	}
	if err := a.c.do(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: %w: response carries no token", op, ErrBackend)
	}
	return resp.Token, nil
}
