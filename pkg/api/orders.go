package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type OrderLineInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type CreateOrderInput struct {
	UserID          int              `json:"user_id"`
	DeliveryAddress string           `json:"delivery_address"`
	PhoneNumber     string           `json:"phone_number"`
	Comment         string           `json:"comment,omitempty"`
	Items           []OrderLineInput `json:"items"`
}

// CreateOrder submits one order-creation request and returns the id the
// server assigned. The call is atomic at the HTTP boundary: the order
// either exists server-side afterwards or it does not.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (int, error) {
	var result struct {
		OrderID int `json:"order_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/orders", nil, in, &result); err != nil {
		return 0, err
	}
	return result.OrderID, nil
}

func (c *Client) ListOrders(ctx context.Context, userID int) ([]Order, error) {
	query := url.Values{"user_id": {strconv.Itoa(userID)}}
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", query, nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListSellerOrders returns orders containing the caller's products.
func (c *Client) ListSellerOrders(ctx context.Context) ([]SellerOrder, error) {
	var orders []SellerOrder
	if err := c.do(ctx, http.MethodGet, "/seller/orders", nil, nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
