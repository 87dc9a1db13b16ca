// Package checkout turns the cart into an order: validate, submit to
// the order API once, then archive locally and clear the cart.
package checkout

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/marketfoods/storefront/internal/cart"
	"github.com/marketfoods/storefront/internal/history"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
	"github.com/marketfoods/storefront/pkg/logger"
)

type orderPlacer interface {
	CreateOrder(ctx context.Context, in api.CreateOrderInput) (int, error)
}

type cartStore interface {
	Load(ctx context.Context) []cart.LineItem
	Clear(ctx context.Context) error
}

type orderArchiver interface {
	Append(ctx context.Context, rec history.Record) error
}

// Service executes the checkout submission flow.
type Service interface {
	Submit(ctx context.Context, input Input) (*history.Record, error)
}

// Input carries the delivery details entered on the cart page.
type Input struct {
	UserID          int
	DeliveryAddress string `validate:"required"`
	PhoneNumber     string `validate:"required"`
	Comment         string
}

type service struct {
	carts    cartStore
	orders   orderPlacer
	archive  orderArchiver
	validate *validator.Validate
	logg     *logger.Logger
	clock    func() time.Time

	// inFlight rejects duplicate submissions while a request is
	// pending: rapid repeated submits would otherwise race and can
	// create two orders server-side.
	inFlight atomic.Bool
}

func NewService(carts cartStore, orders orderPlacer, archive orderArchiver, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if archive == nil {
		return nil, fmt.Errorf("order archive required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:    carts,
		orders:   orders,
		archive:  archive,
		validate: validator.New(),
		logg:     logg,
		clock:    time.Now,
	}, nil
}

// Submit runs the precondition checks in order (non-empty cart, valid
// identity, delivery fields), issues exactly one order-creation request
// and, on success, archives the order locally and clears the cart. Every
// failure is terminal for the attempt; nothing retries.
func (s *service) Submit(ctx context.Context, input Input) (*history.Record, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order submission already in progress")
	}
	defer s.inFlight.Store(false)

	items := s.carts.Load(ctx)
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if input.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required to place order")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "enter delivery address and phone number")
	}

	lines := make([]api.OrderLineInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, api.OrderLineInput{ProductID: item.ID, Quantity: item.Quantity})
	}

	orderID, err := s.orders.CreateOrder(ctx, api.CreateOrderInput{
		UserID:          input.UserID,
		DeliveryAddress: input.DeliveryAddress,
		PhoneNumber:     input.PhoneNumber,
		Comment:         input.Comment,
		Items:           lines,
	})
	if err != nil {
		// Cart and history stay untouched so the user can retry.
		return nil, err
	}

	rec := history.Record{
		OrderID:         orderID,
		UserID:          input.UserID,
		Items:           items,
		TotalPrice:      cart.Total(items).InexactFloat64(),
		DeliveryAddress: input.DeliveryAddress,
		PhoneNumber:     input.PhoneNumber,
		Comment:         input.Comment,
		CreatedAt:       s.clock().UTC(),
	}

	// The order exists server-side from here on: local bookkeeping
	// failures are logged, not returned.
	if err := s.archive.Append(ctx, rec); err != nil {
		s.logg.Error(ctx, "archiving order to local history failed", err)
	}
	if err := s.carts.Clear(ctx); err != nil {
		s.logg.Error(ctx, "clearing cart after order failed", err)
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", orderID), "order placed")
	return &rec, nil
}
