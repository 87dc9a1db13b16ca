// Package history keeps the locally archived order log shown on the
// order-history page. Records are client-side snapshots for display;
// the server's order record stays the source of truth.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marketfoods/storefront/internal/cart"
	"github.com/marketfoods/storefront/pkg/localstore"
	"github.com/marketfoods/storefront/pkg/logger"
)

// StorageKey is the local-state key holding the history sequence.
const StorageKey = "orderHistory"

// Record is one archived order. TotalPrice is the client-computed
// estimate at submission time.
type Record struct {
	OrderID         int             `json:"order_id"`
	UserID          int             `json:"user_id"`
	Items           []cart.LineItem `json:"items"`
	TotalPrice      float64         `json:"total_price"`
	DeliveryAddress string          `json:"delivery_address"`
	PhoneNumber     string          `json:"phone_number"`
	Comment         string          `json:"comment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Log is an append-front order archive. A positive limit caps the
// number of retained records; zero keeps every order.
type Log struct {
	state localstore.Store
	logg  *logger.Logger
	limit int
}

func NewLog(state localstore.Store, logg *logger.Logger, limit int) (*Log, error) {
	if state == nil {
		return nil, fmt.Errorf("state store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if limit < 0 {
		return nil, fmt.Errorf("history limit must be non-negative")
	}
	return &Log{state: state, logg: logg, limit: limit}, nil
}

// Append inserts rec at the front so the most recent order lists first.
// Existing records are never mutated.
func (l *Log) Append(ctx context.Context, rec Record) error {
	records := append([]Record{rec}, l.List(ctx)...)
	if l.limit > 0 && len(records) > l.limit {
		records = records[:l.limit]
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding order history: %w", err)
	}
	if err := l.state.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting order history: %w", err)
	}
	return nil
}

// List returns the archived orders, most recent first. Missing or
// malformed state reads as an empty log.
func (l *Log) List(ctx context.Context) []Record {
	raw, ok, err := l.state.Get(ctx, StorageKey)
	if err != nil {
		l.logg.Warn(ctx, fmt.Sprintf("reading order history failed, treating as empty: %v", err))
		return []Record{}
	}
	if !ok || raw == "" {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		l.logg.Warn(ctx, "persisted order history is malformed, treating as empty")
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}
