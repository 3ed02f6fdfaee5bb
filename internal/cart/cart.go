package cart

import "github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/product"

// Line is one product's share of an in-progress sale. Unit price and tax rate
// are snapshotted when the product is first added and never re-read, so a
// concurrent price change cannot shift a cart under the operator.
type Line struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
}

// Totals is the deterministic breakdown of a line set. All values are raw
// float64 currency units; rounding happens at the persistence edge only.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// Cart holds the transient pre-checkout selection. It keeps at most one line
// per product and preserves insertion order. Not safe for concurrent use; a
// cart belongs to a single request flow.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges the product into the existing line (quantity +1) or appends
// a new line with quantity 1. No stock check happens at add time.
func (c *Cart) AddItem(p *product.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
		UnitPrice:   p.SellingPrice,
		TaxRate:     p.TaxRate,
	})
}

// SetQuantity sets the line's quantity. A quantity of zero or less removes
// the line entirely.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		c.lines[i].Quantity = quantity
		return nil
	}
	return ErrLineNotFound
}

// RemoveItem deletes the line for the given product.
func (c *Cart) RemoveItem(productID string) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns a copy of the current line set.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear drops every line, as happens after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Totals computes the breakdown for the current line set.
func (c *Cart) Totals(discountPercent float64) Totals {
	return ComputeTotals(c.lines, discountPercent)
}

// ComputeTotals is a pure function of the line set and discount:
//
//	subtotal = sum(unitPrice * qty)
//	tax      = sum(unitPrice * qty * taxRate / 100)
//	discount = subtotal * discountPercent / 100
//	total    = subtotal + tax - discount
func ComputeTotals(lines []Line, discountPercent float64) Totals {
	var t Totals
	for _, l := range lines {
		lineTotal := l.UnitPrice * float64(l.Quantity)
		t.Subtotal += lineTotal
		t.TaxAmount += lineTotal * l.TaxRate / 100
	}
	t.DiscountAmount = t.Subtotal * discountPercent / 100
	t.Total = t.Subtotal + t.TaxAmount - t.DiscountAmount
	return t
}
