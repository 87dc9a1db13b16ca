// Package catalog is the buyer-facing product surface: listing,
// searching and moving products into the cart.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/marketfoods/storefront/internal/cart"
	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
)

type productLister interface {
	ListProducts(ctx context.Context, opts api.ListProductsOptions) ([]api.Product, error)
}

type cartAdder interface {
	Add(ctx context.Context, item cart.LineItem) ([]cart.LineItem, error)
}

type sessionReader interface {
	Current(ctx context.Context) identity.Snapshot
}

type Service interface {
	List(ctx context.Context) ([]api.Product, error)
	// AddToCart validates the picked quantity against the product and
	// merges it into the cart.
	AddToCart(ctx context.Context, product api.Product, quantity int) error
}

type service struct {
	products productLister
	carts    cartAdder
	session  sessionReader
}

func NewService(products productLister, carts cartAdder, session sessionReader) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart adder required")
	}
	if session == nil {
		return nil, fmt.Errorf("session reader required")
	}
	return &service{products: products, carts: carts, session: session}, nil
}

func (s *service) List(ctx context.Context) ([]api.Product, error) {
	return s.products.ListProducts(ctx, api.ListProductsOptions{})
}

func (s *service) AddToCart(ctx context.Context, product api.Product, quantity int) error {
	snap := s.session.Current(ctx)
	if snap.UserID > 0 && product.SellerID == snap.UserID {
		return pkgerrors.New(pkgerrors.CodeValidation, "you cannot buy your own product")
	}
	if product.Stock <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "out of stock")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "select quantity greater than 0")
	}
	if quantity > product.Stock {
		return pkgerrors.New(pkgerrors.CodeValidation, "not enough stock")
	}

	_, err := s.carts.Add(ctx, cart.LineItem{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Unit:        api.NormalizeUnit(product.Unit),
		Price:       product.Price,
		Stock:       product.Stock,
		Quantity:    quantity,
	})
	return err
}

// Filter narrows products to those whose name or category contains the
// query, case-insensitively. An empty query returns the list as-is.
func Filter(products []api.Product, query string) []api.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}
	filtered := make([]api.Product, 0, len(products))
	for _, p := range products {
		haystack := strings.ToLower(p.Name + " " + p.Category)
		if strings.Contains(haystack, query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
