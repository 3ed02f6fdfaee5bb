package product

import "time"

// Product is a sellable, stockable catalog item. Prices are rupee amounts,
// TaxRate is a GST percentage (0-100), CurrentStock never goes below zero
// unless back-order mode is enabled at checkout.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          *string   `json:"sku,omitempty"`
	HSNCode      *string   `json:"hsn_code,omitempty"`
	SellingPrice float64   `json:"selling_price"`
	CostPrice    float64   `json:"cost_price"`
	TaxRate      float64   `json:"tax_rate"`
	CurrentStock int       `json:"current_stock"`
	ReorderLevel int       `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type NewProductInput struct {
	Name         string  `json:"name"`
	SKU          *string `json:"sku"`
	HSNCode      *string `json:"hsn_code"`
	SellingPrice float64 `json:"selling_price"`
	CostPrice    float64 `json:"cost_price"`
	TaxRate      float64 `json:"tax_rate"`
	CurrentStock int     `json:"current_stock"`
	ReorderLevel int     `json:"reorder_level"`
}

type ListOptions struct {
	// Search matches name or SKU, case-insensitive substring.
	Search string
	Limit  int32
	Page   int32
}
