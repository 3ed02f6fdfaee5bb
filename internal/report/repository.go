package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/product"

	"go.uber.org/zap"
)

// DailySales is one day's aggregate over completed orders.
type DailySales struct {
	Day       time.Time `json:"day"`
	Orders    int       `json:"orders"`
	Revenue   float64   `json:"revenue"`
	TaxAmount float64   `json:"tax_amount"`
}

type Repository interface {
	DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error)
	LowStock(ctx context.Context) ([]*product.Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DailySales"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			date_trunc('day', created_at) AS day,
			COUNT(*) AS orders,
			COALESCE(SUM(total_amount), 0) AS revenue,
			COALESCE(SUM(tax_amount), 0) AS tax_amount
		FROM sales_orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day
	`, from, to)
	if err != nil {
		log.Error("failed to query daily sales", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []DailySales
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue, &d.TaxAmount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// LowStock lists products at or below their reorder level, lowest first.
func (r *repository) LowStock(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, sku, selling_price, current_stock, reorder_level
		FROM products
		WHERE current_stock <= reorder_level
		ORDER BY current_stock ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.SKU,
			&p.SellingPrice,
			&p.CurrentStock,
			&p.ReorderLevel,
		); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
