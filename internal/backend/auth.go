package backend

import (
	"context"
	"net/http"

	"github.com/noah-isme/asdos-web/internal/dto"
)

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResult, error) {
	var result dto.LoginResult
	err := c.do(ctx, call{
		endpoint: "auth.login",
		method:   http.MethodPost,
		path:     segments("api/auth/login"),
		body:     req,
		strict:   true,
	}, &result)
	return result, err
}

// Register creates a student account and returns the backend's message.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	var result struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, call{
		endpoint: "auth.register",
		method:   http.MethodPost,
		path:     segments("api/auth/register"),
		body:     req,
		strict:   true,
	}, &result)
	return result.Message, err
}
