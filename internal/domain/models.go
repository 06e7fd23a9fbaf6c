package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers (29.99), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Status values shared by orders and transactions.
const (
	StatusOrdered   = "ordered"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// UnknownName is what enrichment reports for a dangling reference.
const UnknownName = "Unknown"

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	Stock       int             `db:"stock" json:"stock"`
	CategoryID  int64           `db:"category_id" json:"category_id"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Transaction is the legacy single-product purchase record.
type Transaction struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	ProductID       int64     `db:"product_id" json:"product_id"`
	Quantity        int       `db:"quantity" json:"quantity"`
	Status          string    `db:"status" json:"status"`
	TransactionDate time.Time `db:"transaction_date" json:"transaction_date"`
}

// EnrichedTransaction carries read-only fields joined from User and Product.
type EnrichedTransaction struct {
	Transaction
	UserName    string          `json:"user_name"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

// DeliveryInfo is the free-form shipping record captured at checkout.
type DeliveryInfo map[string]any

// Clone returns a deep copy; nested objects and arrays are copied too.
func (d DeliveryInfo) Clone() DeliveryInfo {
	if d == nil {
		return nil
	}
	return cloneJSON(map[string]any(d)).(map[string]any)
}

func cloneJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneJSON(e)
		}
		return out
	}
	return v
}

func (d DeliveryInfo) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DeliveryInfo) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("delivery_info: unsupported type %T", src)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*d = nil
		return nil
	}
	return json.Unmarshal(raw, d)
}

// OrderItem prices and names are copied at order time and never follow the product.
type OrderItem struct {
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
}

type Order struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status        string          `db:"status" json:"status"`
	DeliveryInfo  DeliveryInfo    `db:"delivery_info" json:"delivery_info"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	Items         []OrderItem     `db:"-" json:"items"`
}

// EnrichedOrder adds the live user name; Items stay as stored.
type EnrichedOrder struct {
	Order
	UserName string `json:"user_name"`
}

type ContactMessage struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CategoryDetail is a category with the products that point at it.
type CategoryDetail struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}

// ValidStatus reports whether s is one of the order/transaction statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusOrdered, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
