// Package cart owns the shopping cart: an ordered sequence of line
// items keyed by product id, persisted under a single local-state key.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/marketfoods/storefront/pkg/localstore"
	"github.com/marketfoods/storefront/pkg/logger"
	"github.com/marketfoods/storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// StorageKey is the local-state key holding the cart sequence.
const StorageKey = "cartItems"

// LineItem is one product entry in the cart. Stock is the purchasable
// ceiling as last known at add-time; zero or negative means the client
// enforces no ceiling and leaves stock checks to the server.
type LineItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Quantity    int     `json:"quantity"`
}

// Service exposes cart persistence and mutation operations.
type Service interface {
	// Load returns the persisted cart. Missing or malformed state
	// reads as an empty cart, never an error.
	Load(ctx context.Context) []LineItem
	// Save replaces the persisted cart with items.
	Save(ctx context.Context, items []LineItem) error
	// Add merges item into the cart: an existing row's quantity grows
	// by item.Quantity and is clamped to the stock ceiling, a new row
	// is appended.
	Add(ctx context.Context, item LineItem) ([]LineItem, error)
	// Adjust shifts the row's quantity by delta, clamped to
	// [1, ceiling]. Unknown ids are a no-op.
	Adjust(ctx context.Context, id, delta int) ([]LineItem, error)
	// Reconcile replaces the row's quantity with a typed value after
	// clamping it, the Adjust delta-zero path used to validate
	// free-text quantity input.
	Reconcile(ctx context.Context, id, typed int) ([]LineItem, error)
	// Remove drops the row with the given id.
	Remove(ctx context.Context, id int) ([]LineItem, error)
	Clear(ctx context.Context) error
	// Total sums price × quantity across the cart. A client-side
	// estimate; the server's total is authoritative.
	Total(ctx context.Context) decimal.Decimal
}

type service struct {
	state localstore.Store
	logg  *logger.Logger
}

func NewService(state localstore.Store, logg *logger.Logger) (Service, error) {
	if state == nil {
		return nil, fmt.Errorf("state store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{state: state, logg: logg}, nil
}

func (s *service) Load(ctx context.Context) []LineItem {
	raw, ok, err := s.state.Get(ctx, StorageKey)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("reading cart state failed, treating as empty: %v", err))
		return []LineItem{}
	}
	if !ok || raw == "" {
		return []LineItem{}
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logg.Warn(ctx, "persisted cart is malformed, treating as empty")
		return []LineItem{}
	}
	if items == nil {
		return []LineItem{}
	}
	return items
}

func (s *service) Save(ctx context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.state.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting cart: %w", err)
	}
	return nil
}

func (s *service) Add(ctx context.Context, item LineItem) ([]LineItem, error) {
	items := s.Load(ctx)
	merged := false
	for i := range items {
		if items[i].ID != item.ID {
			continue
		}
		items[i].Quantity = clampCeiling(items[i].Quantity+item.Quantity, item.Stock)
		merged = true
		break
	}
	if !merged {
		item.Quantity = ClampQuantity(item.Quantity, item.Stock)
		items = append(items, item)
	}
	if err := s.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) Adjust(ctx context.Context, id, delta int) ([]LineItem, error) {
	return s.update(ctx, id, func(current, stock int) int {
		return ClampQuantity(current+delta, stock)
	})
}

func (s *service) Reconcile(ctx context.Context, id, typed int) ([]LineItem, error) {
	return s.update(ctx, id, func(_, stock int) int {
		return ClampQuantity(typed, stock)
	})
}

func (s *service) update(ctx context.Context, id int, next func(current, stock int) int) ([]LineItem, error) {
	items := s.Load(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Quantity = next(items[i].Quantity, items[i].Stock)
		if err := s.Save(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}
	// Unknown id: nothing to do.
	return items, nil
}

func (s *service) Remove(ctx context.Context, id int) ([]LineItem, error) {
	items := s.Load(ctx)
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := s.Save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *service) Clear(ctx context.Context) error {
	return s.Save(ctx, []LineItem{})
}

func (s *service) Total(ctx context.Context) decimal.Decimal {
	return Total(s.Load(ctx))
}

// Total sums price × quantity over the given lines.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(money.LineTotal(item.Price, item.Quantity))
	}
	return total
}
