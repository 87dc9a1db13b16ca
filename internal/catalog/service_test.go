package catalog

import (
	"context"
	"testing"

	"github.com/marketfoods/storefront/internal/cart"
	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
)

type stubLister struct {
	products []api.Product
	err      error
}

func (s *stubLister) ListProducts(ctx context.Context, opts api.ListProductsOptions) ([]api.Product, error) {
	return s.products, s.err
}

type stubCart struct {
	added []cart.LineItem
}

func (s *stubCart) Add(ctx context.Context, item cart.LineItem) ([]cart.LineItem, error) {
	s.added = append(s.added, item)
	return s.added, nil
}

type stubSession struct {
	snap identity.Snapshot
}

func (s *stubSession) Current(ctx context.Context) identity.Snapshot {
	return s.snap
}

func newTestService(t *testing.T, carts *stubCart, snap identity.Snapshot) Service {
	t.Helper()
	svc, err := NewService(&stubLister{}, carts, &stubSession{snap: snap})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddToCartGuards(t *testing.T) {
	ctx := context.Background()
	product := api.Product{ID: 5, Name: "Apples", Unit: "KG", Price: 500, Stock: 4, SellerID: 9}

	cases := []struct {
		name     string
		snap     identity.Snapshot
		product  api.Product
		quantity int
		wantMsg  string
	}{
		{"own product", identity.Snapshot{UserID: 9}, product, 2, "you cannot buy your own product"},
		{"out of stock", identity.Snapshot{}, api.Product{ID: 5, Stock: 0, SellerID: 9}, 2, "out of stock"},
		{"zero quantity", identity.Snapshot{}, product, 0, "select quantity greater than 0"},
		{"over stock", identity.Snapshot{}, product, 5, "not enough stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			carts := &stubCart{}
			svc := newTestService(t, carts, tc.snap)
			err := svc.AddToCart(ctx, tc.product, tc.quantity)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Message() != tc.wantMsg {
				t.Fatalf("expected %q, got %v", tc.wantMsg, err)
			}
			if len(carts.added) != 0 {
				t.Fatalf("guard failures must not touch the cart")
			}
		})
	}
}

func TestAddToCartNormalizesLine(t *testing.T) {
	ctx := context.Background()
	carts := &stubCart{}
	svc := newTestService(t, carts, identity.Snapshot{UserID: 2})

	err := svc.AddToCart(ctx, api.Product{
		ID: 5, Name: "Apples", Unit: "KG", Price: 500, Stock: 4, SellerID: 9,
	}, 3)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if len(carts.added) != 1 {
		t.Fatalf("expected one add, got %d", len(carts.added))
	}
	line := carts.added[0]
	if line.Unit != api.UnitKg {
		t.Fatalf("unit should normalize, got %q", line.Unit)
	}
	if line.Quantity != 3 || line.Stock != 4 {
		t.Fatalf("unexpected line %+v", line)
	}
}

func TestFilter(t *testing.T) {
	products := []api.Product{
		{Name: "Green apples", Category: "Fruit"},
		{Name: "Milk", Category: "Dairy"},
		{Name: "Apple juice", Category: "Drinks"},
	}

	if got := Filter(products, ""); len(got) != 3 {
		t.Fatalf("empty query should keep everything, got %d", len(got))
	}
	if got := Filter(products, "APPLE"); len(got) != 2 {
		t.Fatalf("expected 2 apple matches, got %d", len(got))
	}
	if got := Filter(products, "dairy"); len(got) != 1 || got[0].Name != "Milk" {
		t.Fatalf("category should match, got %v", got)
	}
	if got := Filter(products, "fish"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
