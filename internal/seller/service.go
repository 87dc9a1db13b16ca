// Package seller covers product management and incoming orders for
// sellers (administrators share the product surface).
package seller

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
)

type productAPI interface {
	ListProducts(ctx context.Context, opts api.ListProductsOptions) ([]api.Product, error)
	CreateProduct(ctx context.Context, in api.ProductInput, image *api.ImageUpload) (int, error)
	UpdateProduct(ctx context.Context, id int, in api.ProductInput, image *api.ImageUpload) error
	DeleteProduct(ctx context.Context, id int) error
	ListSellerOrders(ctx context.Context) ([]api.SellerOrder, error)
}

type sessionReader interface {
	Current(ctx context.Context) identity.Snapshot
}

type Service interface {
	// MyProducts lists the caller's products; administrators see the
	// whole catalog.
	MyProducts(ctx context.Context) ([]api.Product, error)
	Create(ctx context.Context, input Input, image *api.ImageUpload) (int, error)
	Update(ctx context.Context, id int, input Input, image *api.ImageUpload) error
	Delete(ctx context.Context, id int) error
	// Orders lists incoming orders containing the seller's products.
	Orders(ctx context.Context) ([]api.SellerOrder, error)
}

// Input is the product form. Text fields get their first letter
// capitalized and the unit normalized before submission.
type Input struct {
	Name        string  `validate:"required"`
	Description string  `validate:"required"`
	Category    string  `validate:"required"`
	Unit        string
	Price       float64 `validate:"gte=0"`
	Stock       int     `validate:"gte=0"`
}

type service struct {
	api      productAPI
	session  sessionReader
	validate *validator.Validate
}

func NewService(client productAPI, session sessionReader) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("product api required")
	}
	if session == nil {
		return nil, fmt.Errorf("session reader required")
	}
	return &service{api: client, session: session, validate: validator.New()}, nil
}

func (s *service) MyProducts(ctx context.Context) ([]api.Product, error) {
	snap, err := s.requireLogin(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.ListProducts(ctx, api.ListProductsOptions{Mine: !snap.IsAdministrator()})
}

func (s *service) Create(ctx context.Context, input Input, image *api.ImageUpload) (int, error) {
	if _, err := s.requireLogin(ctx); err != nil {
		return 0, err
	}
	if image == nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "select image file")
	}
	payload, err := s.payload(input)
	if err != nil {
		return 0, err
	}
	return s.api.CreateProduct(ctx, payload, image)
}

func (s *service) Update(ctx context.Context, id int, input Input, image *api.ImageUpload) error {
	if _, err := s.requireLogin(ctx); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	payload, err := s.payload(input)
	if err != nil {
		return err
	}
	return s.api.UpdateProduct(ctx, id, payload, image)
}

func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.requireLogin(ctx); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return s.api.DeleteProduct(ctx, id)
}

func (s *service) Orders(ctx context.Context) ([]api.SellerOrder, error) {
	snap, err := s.requireLogin(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.CanViewSellerOrders() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller access required")
	}
	return s.api.ListSellerOrders(ctx)
}

func (s *service) requireLogin(ctx context.Context) (identity.Snapshot, error) {
	snap := s.session.Current(ctx)
	if snap.UserID <= 0 {
		return snap, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is missing, login again")
	}
	return snap, nil
}

func (s *service) payload(input Input) (api.ProductInput, error) {
	payload := api.ProductInput{
		Name:        capitalizeFirst(input.Name),
		Description: capitalizeFirst(input.Description),
		Category:    capitalizeFirst(input.Category),
		Unit:        api.NormalizeUnit(input.Unit),
		Price:       input.Price,
		Stock:       input.Stock,
	}
	check := input
	check.Name = payload.Name
	check.Description = payload.Description
	check.Category = payload.Category
	if err := s.validate.Struct(check); err != nil {
		return api.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "fill all fields correctly")
	}
	return payload, nil
}

func capitalizeFirst(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	first, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(first)) + value[size:]
}
