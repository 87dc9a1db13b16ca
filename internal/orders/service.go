// Package orders backs the order-history page: the server's list for
// the logged-in user, falling back to the local archive when the server
// cannot answer.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/marketfoods/storefront/internal/history"
	"github.com/marketfoods/storefront/pkg/api"
	"github.com/marketfoods/storefront/pkg/logger"
)

type orderLister interface {
	ListOrders(ctx context.Context, userID int) ([]api.Order, error)
}

type archiveReader interface {
	List(ctx context.Context) []history.Record
}

// Line is one product within a displayed order.
type Line struct {
	Name     string
	Quantity int
}

// Entry is a display row, shaped the same whether it came from the
// server or the local archive.
type Entry struct {
	OrderID         int
	Lines           []Line
	TotalPrice      float64
	DeliveryAddress string
	PhoneNumber     string
	Comment         string
	CreatedAt       time.Time
}

// Result carries the rows plus where they came from; FromLocal marks
// the degraded server-unavailable view.
type Result struct {
	Entries   []Entry
	FromLocal bool
}

type Service interface {
	List(ctx context.Context, userID int) *Result
}

type service struct {
	api     orderLister
	archive archiveReader
	logg    *logger.Logger
}

func NewService(api orderLister, archive archiveReader, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("order lister required")
	}
	if archive == nil {
		return nil, fmt.Errorf("order archive required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{api: api, archive: archive, logg: logg}, nil
}

// List never fails: without a valid user id, or when the server call
// errors, it serves the local archive instead.
func (s *service) List(ctx context.Context, userID int) *Result {
	if userID <= 0 {
		return &Result{Entries: s.localEntries(ctx), FromLocal: true}
	}

	serverOrders, err := s.api.ListOrders(ctx, userID)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("loading orders from server failed, showing local history: %v", err))
		return &Result{Entries: s.localEntries(ctx), FromLocal: true}
	}

	entries := make([]Entry, 0, len(serverOrders))
	for _, order := range serverOrders {
		entry := Entry{
			OrderID:         order.ID,
			TotalPrice:      order.TotalPrice,
			DeliveryAddress: order.DeliveryAddress,
			PhoneNumber:     order.PhoneNumber,
			Comment:         order.Comment,
			CreatedAt:       order.CreatedAt,
		}
		for _, item := range order.Items {
			entry.Lines = append(entry.Lines, Line{Name: item.Name, Quantity: item.Quantity})
		}
		entries = append(entries, entry)
	}
	return &Result{Entries: entries}
}

func (s *service) localEntries(ctx context.Context) []Entry {
	records := s.archive.List(ctx)
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entry := Entry{
			OrderID:         rec.OrderID,
			TotalPrice:      rec.TotalPrice,
			DeliveryAddress: rec.DeliveryAddress,
			PhoneNumber:     rec.PhoneNumber,
			Comment:         rec.Comment,
			CreatedAt:       rec.CreatedAt,
		}
		for _, item := range rec.Items {
			entry.Lines = append(entry.Lines, Line{Name: item.Name, Quantity: item.Quantity})
		}
		entries = append(entries, entry)
	}
	return entries
}
