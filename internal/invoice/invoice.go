// Package invoice renders a completed order into a printable receipt and a
// base64 attachment body for email delivery. The input contract is the Order
// plus its OrderItems; layout is fixed but deliberately plain.
package invoice

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"text/tabwriter"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/order"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/utils"
)

const businessName = "Dynamic Product Intelligence"

// Document is the rendered invoice: raw bytes for download, base64 for
// attaching to email.
type Document struct {
	Filename string
	Bytes    []byte
	Base64   string
}

// Render formats the order into a Document. It never mutates the order.
func Render(o *order.Order) Document {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "================================================================")
	fmt.Fprintf(&buf, "%32s\n", "INVOICE")
	fmt.Fprintf(&buf, "%45s\n", businessName)
	fmt.Fprintln(&buf, "================================================================")
	fmt.Fprintf(&buf, "Invoice #: %s\n", o.OrderNumber)
	fmt.Fprintf(&buf, "Date: %s\n", o.CreatedAt.Format("02/01/2006 15:04"))

	if name := utils.PtrString(o.CustomerName); name != "" {
		fmt.Fprintf(&buf, "Customer: %s\n", name)
	}
	if phone := utils.PtrString(o.CustomerPhone); phone != "" {
		fmt.Fprintf(&buf, "Phone: %s\n", phone)
	}
	fmt.Fprintln(&buf)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Product\tQty\tPrice\tTax Rate\tTax\tTotal")
	for _, item := range o.Items {
		fmt.Fprintf(w, "%s\t%d\t₹%.2f\t%.0f%%\t₹%.2f\t₹%.2f\n",
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.TaxRate,
			item.TaxAmount,
			item.TotalAmount,
		)
	}
	w.Flush()

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%-20s ₹%.2f\n", "Subtotal:", o.Subtotal)
	fmt.Fprintf(&buf, "%-20s ₹%.2f\n", "GST/Tax:", o.TaxAmount)
	if o.Discount > 0 {
		fmt.Fprintf(&buf, "%-20s -₹%.2f\n", "Discount:", o.Discount)
	}
	fmt.Fprintf(&buf, "%-20s ₹%.2f\n", "Total Amount:", o.TotalAmount)
	fmt.Fprintf(&buf, "%-20s %s\n", "Payment Method:", o.PaymentMethod)

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Thank you for your business!")
	fmt.Fprintln(&buf, "This is a GST-compliant invoice")

	raw := buf.Bytes()

	return Document{
		Filename: fmt.Sprintf("invoice-%s.txt", o.OrderNumber),
		Bytes:    raw,
		Base64:   base64.StdEncoding.EncodeToString(raw),
	}
}
