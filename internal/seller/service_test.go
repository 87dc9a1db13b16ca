package seller

import (
	"context"
	"testing"

	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/pkg/api"
	pkgerrors "github.com/marketfoods/storefront/pkg/errors"
)

type stubAPI struct {
	listOpts    *api.ListProductsOptions
	created     *api.ProductInput
	createImage *api.ImageUpload
	updatedID   int
	deletedID   int
	orderCalls  int
}

func (s *stubAPI) ListProducts(ctx context.Context, opts api.ListProductsOptions) ([]api.Product, error) {
	s.listOpts = &opts
	return []api.Product{}, nil
}

func (s *stubAPI) CreateProduct(ctx context.Context, in api.ProductInput, image *api.ImageUpload) (int, error) {
	s.created = &in
	s.createImage = image
	return 21, nil
}

func (s *stubAPI) UpdateProduct(ctx context.Context, id int, in api.ProductInput, image *api.ImageUpload) error {
	s.updatedID = id
	return nil
}

func (s *stubAPI) DeleteProduct(ctx context.Context, id int) error {
	s.deletedID = id
	return nil
}

func (s *stubAPI) ListSellerOrders(ctx context.Context) ([]api.SellerOrder, error) {
	s.orderCalls++
	return []api.SellerOrder{}, nil
}

type stubSession struct {
	snap identity.Snapshot
}

func (s *stubSession) Current(ctx context.Context) identity.Snapshot {
	return s.snap
}

func sellerSnap() identity.Snapshot {
	return identity.Snapshot{UserID: 3, Role: api.RoleSeller, Token: "token-3"}
}

func newTestService(t *testing.T, client *stubAPI, snap identity.Snapshot) Service {
	t.Helper()
	svc, err := NewService(client, &stubSession{snap: snap})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func validInput() Input {
	return Input{
		Name:        "rye bread",
		Description: "fresh daily",
		Category:    "bakery",
		Unit:        "loaf",
		Price:       450,
		Stock:       20,
	}
}

func TestMyProductsScoping(t *testing.T) {
	ctx := context.Background()

	client := &stubAPI{}
	svc := newTestService(t, client, sellerSnap())
	if _, err := svc.MyProducts(ctx); err != nil {
		t.Fatalf("MyProducts: %v", err)
	}
	if !client.listOpts.Mine {
		t.Fatalf("sellers list only their own products")
	}

	client = &stubAPI{}
	svc = newTestService(t, client, identity.Snapshot{UserID: 1, Role: api.RoleAdministrator, Token: "t"})
	if _, err := svc.MyProducts(ctx); err != nil {
		t.Fatalf("MyProducts: %v", err)
	}
	if client.listOpts.Mine {
		t.Fatalf("administrators list the whole catalog")
	}
}

func TestMyProductsRequiresLogin(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, identity.Snapshot{})
	_, err := svc.MyProducts(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateNormalizesAndValidates(t *testing.T) {
	ctx := context.Background()
	client := &stubAPI{}
	svc := newTestService(t, client, sellerSnap())

	image := &api.ImageUpload{Filename: "bread.jpg"}
	id, err := svc.Create(ctx, validInput(), image)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 21 {
		t.Fatalf("expected created id, got %d", id)
	}
	if client.created.Name != "Rye bread" || client.created.Category != "Bakery" {
		t.Fatalf("text fields should be capitalized, got %+v", client.created)
	}
	if client.created.Unit != api.UnitPiece {
		t.Fatalf("unknown unit folds to piece, got %q", client.created.Unit)
	}
	if client.createImage != image {
		t.Fatalf("image should pass through")
	}
}

func TestCreateRequiresImage(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, sellerSnap())
	_, err := svc.Create(context.Background(), validInput(), nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "select image file" {
		t.Fatalf("expected image requirement, got %v", err)
	}
}

func TestCreateRejectsIncompleteInput(t *testing.T) {
	client := &stubAPI{}
	svc := newTestService(t, client, sellerSnap())

	input := validInput()
	input.Description = "  "
	_, err := svc.Create(context.Background(), input, &api.ImageUpload{Filename: "x.jpg"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.created != nil {
		t.Fatalf("invalid input must not reach the API")
	}
}

func TestUpdateAllowsMissingImage(t *testing.T) {
	client := &stubAPI{}
	svc := newTestService(t, client, sellerSnap())

	if err := svc.Update(context.Background(), 11, validInput(), nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if client.updatedID != 11 {
		t.Fatalf("expected update of id 11, got %d", client.updatedID)
	}
}

func TestOrdersGatedOnSellerRole(t *testing.T) {
	ctx := context.Background()

	client := &stubAPI{}
	svc := newTestService(t, client, identity.Snapshot{UserID: 2, Role: api.RoleBuyer, Token: "t"})
	_, err := svc.Orders(ctx)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("buyers must not see seller orders, got %v", err)
	}
	if client.orderCalls != 0 {
		t.Fatalf("role gate failures must not reach the API")
	}

	svc = newTestService(t, client, sellerSnap())
	if _, err := svc.Orders(ctx); err != nil {
		t.Fatalf("Orders: %v", err)
	}
	if client.orderCalls != 1 {
		t.Fatalf("expected one API call")
	}
}
