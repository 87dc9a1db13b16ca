package api

import (
	"context"
	"net/http"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (c *Client) SubmitContact(ctx context.Context, in ContactInput) error {
	return c.doJSON(ctx, http.MethodPost, "/contact", nil, in, nil)
}

// ListContactMessages returns every submitted message. The server only
// answers for administrator identities.
func (c *Client) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var messages []ContactMessage
	if err := c.do(ctx, http.MethodGet, "/contact/messages", nil, nil, "", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
