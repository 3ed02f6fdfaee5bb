package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Restock(ctx context.Context, productID string, quantity int) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, sku, hsn_code,
	selling_price, cost_price, tax_rate,
	current_stock, reorder_level,
	created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.HSNCode,
		&p.SellingPrice,
		&p.CostPrice,
		&p.TaxRate,
		&p.CurrentStock,
		&p.ReorderLevel,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, productID string) (*Product, error) {
	query := `SELECT` + productColumns + `FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
		zap.String("search", opts.Search),
	)

	query := `SELECT` + productColumns + `FROM products WHERE 1=1`

	args := []any{}
	argIndex := 1

	if opts.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}

	query += " ORDER BY name ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	query := `
		INSERT INTO products (
			id, name, sku, hsn_code,
			selling_price, cost_price, tax_rate,
			current_stock, reorder_level
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID,
		p.Name,
		p.SKU,
		p.HSNCode,
		utils.RoundMoney(p.SellingPrice),
		utils.RoundMoney(p.CostPrice),
		p.TaxRate,
		p.CurrentStock,
		p.ReorderLevel,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Restock atomically increments stock and returns the new level. The
// adjustment happens inside the UPDATE so concurrent restocks and checkouts
// never overwrite each other.
func (r *repository) Restock(ctx context.Context, productID string, quantity int) (int, error) {
	var newStock int
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET current_stock = current_stock + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING current_stock
	`, quantity, productID).Scan(&newStock)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}

	return newStock, nil
}
