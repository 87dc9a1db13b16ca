package api

import (
	"strings"
	"time"
)

const (
	RoleBuyer         = "buyer"
	RoleSeller        = "seller"
	RoleAdministrator = "administrator"
)

const (
	UnitPiece = "piece"
	UnitKg    = "kg"
	UnitPack  = "pack"
)

// NormalizeUnit folds arbitrary unit text onto the three units the store
// sells in, defaulting to piece.
func NormalizeUnit(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case UnitKg:
		return UnitKg
	case UnitPack:
		return UnitPack
	default:
		return UnitPiece
	}
}

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	SellerID    int       `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"user_id"`
	TotalPrice      float64     `json:"total_price"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress string      `json:"delivery_address"`
	PhoneNumber     string      `json:"phone_number"`
	Comment         string      `json:"comment"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// SellerOrder is an incoming order as the seller sees it: only the
// caller's products with the buyer's delivery details.
type SellerOrder struct {
	ID              int         `json:"id"`
	BuyerName       string      `json:"buyer_name"`
	BuyerEmail      string      `json:"buyer_email"`
	Items           []OrderItem `json:"items"`
	SellerTotal     float64     `json:"seller_total"`
	DeliveryAddress string      `json:"delivery_address"`
	PhoneNumber     string      `json:"phone_number"`
	Comment         string      `json:"comment"`
	CreatedAt       time.Time   `json:"created_at"`
}

type ContactMessage struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
