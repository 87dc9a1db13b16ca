package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marketfoods/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, identity func() int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Options{BaseURL: server.URL, Identity: identity})
	require.NoError(t, err)
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestIdentityHeaderOnlyForPositiveIDs(t *testing.T) {
	var gotUserID, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("X-User-Id")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte("[]"))
	}, func() int { return 7 })

	_, err := client.ListProducts(context.Background(), ListProductsOptions{})
	require.NoError(t, err)
	assert.Equal(t, "7", gotUserID)
	assert.NotEmpty(t, gotRequestID)

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("X-User-Id")
		w.Write([]byte("[]"))
	}, nil)
	_, err = client.ListProducts(context.Background(), ListProductsOptions{})
	require.NoError(t, err)
	assert.Empty(t, gotUserID, "logged-out requests must not carry an identity header")
}

func TestListProductsMineQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":1,"name":"Apples","price":500,"stock":12,"unit":"kg","seller_id":3}]`))
	}, nil)

	products, err := client.ListProducts(context.Background(), ListProductsOptions{Mine: true})
	require.NoError(t, err)
	assert.Equal(t, "mine=1", gotQuery)
	require.Len(t, products, 1)
	assert.Equal(t, "Apples", products[0].Name)
	assert.Equal(t, 3, products[0].SellerID)
}

func TestServerErrorMessageSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"not enough stock for product 5"}`))
	}, nil)

	_, err := client.CreateOrder(context.Background(), CreateOrderInput{UserID: 1})
	require.Error(t, err)
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeValidation, typed.Code())
	assert.Equal(t, "not enough stock for product 5", typed.Message())
}

func TestMalformedErrorBodyGetsGenericFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}, nil)

	_, err := client.CreateOrder(context.Background(), CreateOrderInput{UserID: 1})
	require.Error(t, err)
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeDependency, typed.Code())
	assert.Equal(t, "request failed (500)", typed.Message())
}

func TestCreateOrderPayloadAndResult(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte(`{"order_id":42}`))
	}, func() int { return 9 })

	orderID, err := client.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          9,
		DeliveryAddress: "12 Abay Ave",
		PhoneNumber:     "+7 700 000 0000",
		Items:           []OrderLineInput{{ProductID: 5, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, orderID)
	assert.Equal(t, float64(9), payload["user_id"])
	assert.Equal(t, "12 Abay Ave", payload["delivery_address"])
	items := payload["items"].([]any)
	require.Len(t, items, 1)
}

func TestCreateProductMultipart(t *testing.T) {
	var fields map[string]string
	var imageName, imageContent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for key := range r.MultipartForm.Value {
			fields[key] = r.FormValue(key)
		}
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		imageName = header.Filename
		imageContent = string(content)
		w.Write([]byte(`{"id":11}`))
	}, func() int { return 3 })

	id, err := client.CreateProduct(context.Background(), ProductInput{
		Name:        "Rye bread",
		Description: "Fresh daily",
		Category:    "Bakery",
		Unit:        UnitPiece,
		Price:       450,
		Stock:       20,
	}, &ImageUpload{Filename: "bread.jpg", Content: strings.NewReader("jpegbytes")})
	require.NoError(t, err)
	assert.Equal(t, 11, id)
	assert.Equal(t, "Rye bread", fields["name"])
	assert.Equal(t, "450", fields["price"])
	assert.Equal(t, "20", fields["stock"])
	assert.Equal(t, "bread.jpg", imageName)
	assert.Equal(t, "jpegbytes", imageContent)
}

func TestUpdateProductJSONWithoutImage(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte(`{}`))
	}, func() int { return 3 })

	err := client.UpdateProduct(context.Background(), 11, ProductInput{Name: "Rye bread", Price: 480}, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(11), payload["id"])
	assert.Equal(t, float64(480), payload["price"])
}

func TestDeleteProductQuery(t *testing.T) {
	var method, rawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}, func() int { return 3 })

	require.NoError(t, client.DeleteProduct(context.Background(), 11))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "id=11", rawQuery)
}

func TestNormalizeUnit(t *testing.T) {
	assert.Equal(t, UnitKg, NormalizeUnit(" KG "))
	assert.Equal(t, UnitPack, NormalizeUnit("pack"))
	assert.Equal(t, UnitPiece, NormalizeUnit("bottle"))
	assert.Equal(t, UnitPiece, NormalizeUnit(""))
}
