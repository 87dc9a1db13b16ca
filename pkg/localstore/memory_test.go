package localstore

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, ok, _ := store.Get(ctx, "cartItems"); ok {
		t.Fatalf("missing key should be absent")
	}
	if err := store.Set(ctx, "cartItems", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, ok, _ := store.Get(ctx, "cartItems")
	if !ok || val != "[]" {
		t.Fatalf("unexpected read ok=%v val=%q", ok, val)
	}
}

func TestMemoryNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var fired int
	cancel, err := store.Subscribe(func() { fired++ })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	store.Set(ctx, "userId", "3")
	store.Delete(ctx, "userId")
	store.Delete(ctx, "userId") // absent, no change, no event
	if fired != 2 {
		t.Fatalf("expected 2 notifications, got %d", fired)
	}

	cancel()
	store.Set(ctx, "userId", "4")
	if fired != 2 {
		t.Fatalf("cancelled subscriber still notified")
	}
}
