package order

import (
	"time"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/cart"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// Order is the immutable record of a completed sale. Monetary fields are
// rounded to 2 decimal places before persistence and satisfy
// TotalAmount == Subtotal + TaxAmount - Discount.
type Order struct {
	ID            string        `json:"id"`
	OrderNumber   string        `json:"order_number"`
	CustomerName  *string       `json:"customer_name,omitempty"`
	CustomerPhone *string       `json:"customer_phone,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	TaxAmount     float64       `json:"tax_amount"`
	Discount      float64       `json:"discount"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []OrderItem   `json:"items,omitempty"`
}

// OrderItem is one product's contribution to an Order. Name and unit price
// are snapshots from the cart, not live product reads.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// CheckoutInput carries everything needed to turn a cart into an Order.
// ActorID is the authenticated operator performing the sale.
type CheckoutInput struct {
	Lines           []cart.Line   `json:"lines"`
	CustomerName    *string       `json:"customer_name"`
	CustomerPhone   *string       `json:"customer_phone"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	DiscountPercent float64       `json:"discount_percent"`
	ActorID         string        `json:"-"`
}

type OrderFilterInput struct {
	// Search matches order number or customer name.
	Search        *string
	PaymentMethod *PaymentMethod
	DateFrom      *time.Time
	DateTo        *time.Time
}

type OrderSortField string

const (
	OrderSortFieldTotal     OrderSortField = "TOTAL"
	OrderSortFieldCreatedAt OrderSortField = "CREATED_AT"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "ASC"
	SortDirectionDesc SortDirection = "DESC"
)

type OrderSortInput struct {
	Field     OrderSortField
	Direction SortDirection
}
