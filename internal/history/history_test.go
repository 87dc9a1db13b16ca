package history

import (
	"context"
	"testing"
	"time"

	"github.com/marketfoods/storefront/pkg/localstore"
	"github.com/marketfoods/storefront/pkg/logger"
	"github.com/rs/zerolog"
)

func newTestLog(t *testing.T, limit int) (*Log, *localstore.Memory) {
	t.Helper()
	state := localstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	log, err := NewLog(state, logg, limit)
	if err != nil {
		t.Fatalf("NewLog: %v", err)
	}
	return log, state
}

func TestAppendInsertsAtFront(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLog(t, 0)

	for i := 1; i <= 3; i++ {
		err := log.Append(ctx, Record{OrderID: i, CreatedAt: time.Now()})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records := log.List(ctx)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []int{3, 2, 1} {
		if records[i].OrderID != want {
			t.Fatalf("expected most-recent-first order [3 2 1], got %v", records)
		}
	}
}

func TestAppendHonorsLimit(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLog(t, 2)

	for i := 1; i <= 5; i++ {
		if err := log.Append(ctx, Record{OrderID: i}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records := log.List(ctx)
	if len(records) != 2 {
		t.Fatalf("expected capped log of 2, got %d", len(records))
	}
	if records[0].OrderID != 5 || records[1].OrderID != 4 {
		t.Fatalf("expected newest records kept, got %v", records)
	}
}

func TestListMalformedStateReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	log, state := newTestLog(t, 0)

	state.Set(ctx, StorageKey, "[{broken")
	if records := log.List(ctx); len(records) != 0 {
		t.Fatalf("malformed history should read as empty, got %v", records)
	}
}

func TestNewLogRejectsNegativeLimit(t *testing.T) {
	state := localstore.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	if _, err := NewLog(state, logg, -1); err == nil {
		t.Fatalf("expected error for negative limit")
	}
}
