// Package contact handles the contact form and the administrator's
// message inbox.
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
)

type contactAPI interface {
	SubmitContact(ctx context.Context, in api.ContactInput) error
	ListContactMessages(ctx context.Context) ([]api.ContactMessage, error)
}

type sessionReader interface {
	Current(ctx context.Context) identity.Snapshot
}

type Service interface {
	// Submit sends the form; blank name or email fall back to the
	// logged-in user's details before validation.
	Submit(ctx context.Context, input Input) error
	// Messages returns the admin inbox. The server enforces the
	// administrator role through the identity header.
	Messages(ctx context.Context) ([]api.ContactMessage, error)
}

type Input struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

type service struct {
	api      contactAPI
	session  sessionReader
	validate *validator.Validate
}

func NewService(client contactAPI, session sessionReader) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("contact api required")
	}
	if session == nil {
		return nil, fmt.Errorf("session reader required")
	}
	return &service{api: client, session: session, validate: validator.New()}, nil
}

func (s *service) Submit(ctx context.Context, input Input) error {
	snap := s.session.Current(ctx)
	if strings.TrimSpace(input.Name) == "" {
		input.Name = snap.Name
	}
	if strings.TrimSpace(input.Email) == "" {
		input.Email = snap.Email
	}
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "fill name, email and message")
	}
	return s.api.SubmitContact(ctx, api.ContactInput{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Message: strings.TrimSpace(input.Message),
	})
}

func (s *service) Messages(ctx context.Context) ([]api.ContactMessage, error) {
	if s.session.Current(ctx).UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user id, login again")
	}
	return s.api.ListContactMessages(ctx)
}
