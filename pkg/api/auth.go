package api

import (
	"context"
	"net/http"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, in, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account and returns the new user id.
func (c *Client) Register(ctx context.Context, in RegisterInput) (int, error) {
	var result struct {
		UserID int `json:"user_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", nil, in, &result); err != nil {
		return 0, err
	}
	return result.UserID, nil
}
