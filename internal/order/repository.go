package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/product"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order header, its items, the sales ledger
	// rows and the stock decrements as one all-or-nothing transaction.
	CreateOrderTx(ctx context.Context, o *Order, allowNegativeStock bool) error

	GetProductForCheckout(ctx context.Context, productID string) (*product.Product, error)

	FetchOrders(
		ctx context.Context,
		filter *OrderFilterInput,
		sort *OrderSortInput,
		limit, page *int32,
	) ([]*Order, error)

	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(
	ctx context.Context,
	o *Order,
	allowNegativeStock bool,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_number", o.OrderNumber),
		zap.Int("item_count", len(o.Items)),
	)

	log.Debug("starting checkout transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	// 1. Insert order header
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales_orders (
			id, order_number, customer_name, customer_phone,
			subtotal, tax_amount, discount, total_amount,
			payment_method, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		o.ID,
		o.OrderNumber,
		o.CustomerName,
		o.CustomerPhone,
		o.Subtotal,
		o.TaxAmount,
		o.Discount,
		o.TotalAmount,
		o.PaymentMethod,
		o.CreatedBy,
		o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert items, ledger rows and deduct stock
	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales_order_items (
				id, order_id, product_id, product_name,
				quantity, unit_price, tax_rate, tax_amount, total_amount
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			item.ID,
			o.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.TaxRate,
			item.TaxAmount,
			item.TotalAmount,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales_transactions (
				product_id, quantity, unit_price, total_amount, created_by
			) VALUES ($1,$2,$3,$4,$5)
		`,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.TotalAmount,
			o.CreatedBy,
		)
		if err != nil {
			log.Error("failed to insert sales transaction",
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return err
		}

		// Deduct stock inside the UPDATE itself. The guarded form refuses
		// to go below zero; with back-orders enabled only existence is
		// checked. Either way there is no read-modify-write window.
		var res sql.Result
		if allowNegativeStock {
			res, err = tx.ExecContext(ctx, `
				UPDATE products
				SET current_stock = current_stock - $1, updated_at = NOW()
				WHERE id = $2
			`, item.Quantity, item.ProductID)
		} else {
			res, err = tx.ExecContext(ctx, `
				UPDATE products
				SET current_stock = current_stock - $1, updated_at = NOW()
				WHERE id = $2 AND current_stock >= $1
			`, item.Quantity, item.ProductID)
		}
		if err != nil {
			log.Error("failed to deduct stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			if allowNegativeStock {
				return product.ErrProductNotFound
			}
			log.Warn("stock guard rejected decrement",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			return ErrStockUnavailable
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("checkout transaction committed")

	return nil
}

func (r *repository) GetProductForCheckout(
	ctx context.Context,
	productID string,
) (*product.Product, error) {

	query := `
		SELECT id, name, selling_price, tax_rate, current_stock
		FROM products
		WHERE id = $1
	`

	var p product.Product
	err := r.db.QueryRowContext(ctx, query, productID).
		Scan(&p.ID, &p.Name, &p.SellingPrice, &p.TaxRate, &p.CurrentStock)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) FetchOrders(
	ctx context.Context,
	filter *OrderFilterInput,
	sort *OrderSortInput,
	limit, page *int32,
) ([]*Order, error) {

	// ---------- PAGINATION ----------
	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	offset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("method", "FetchOrders"),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	// ---------- BASE QUERY ----------
	query := `
		SELECT
			o.id,
			o.order_number,
			o.customer_name,
			o.customer_phone,
			o.subtotal,
			o.tax_amount,
			o.discount,
			o.total_amount,
			o.payment_method,
			o.created_by,
			o.created_at
		FROM sales_orders o
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	// ---------- FILTERING ----------
	if filter != nil {

		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(
				" AND (o.order_number ILIKE $%d OR o.customer_name ILIKE $%d)",
				argIndex, argIndex,
			)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.PaymentMethod != nil && *filter.PaymentMethod != "" {
			query += fmt.Sprintf(" AND o.payment_method = $%d", argIndex)
			args = append(args, *filter.PaymentMethod)
			argIndex++
		}

		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
			args = append(args, *filter.DateFrom)
			argIndex++
		}

		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
			args = append(args, *filter.DateTo)
			argIndex++
		}
	}

	// ---------- SORTING ----------
	orderBy := "o.created_at DESC"

	if sort != nil {
		dir := strings.ToUpper(string(sort.Direction))
		if dir != "ASC" && dir != "DESC" {
			dir = "DESC"
		}

		switch sort.Field {
		case OrderSortFieldTotal:
			orderBy = "o.total_amount " + dir
		case OrderSortFieldCreatedAt:
			orderBy = "o.created_at " + dir
		}
	}

	query += " ORDER BY " + orderBy
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	// ---------- EXECUTE ----------
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.Subtotal,
			&o.TaxAmount,
			&o.Discount,
			&o.TotalAmount,
			&o.PaymentMethod,
			&o.CreatedBy,
			&o.CreatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Info("fetch orders success", zap.Int("count", len(orders)))

	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, order_number, customer_name, customer_phone,
			subtotal, tax_amount, discount, total_amount,
			payment_method, created_by, created_at
		FROM sales_orders WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.Subtotal,
		&o.TaxAmount,
		&o.Discount,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.CreatedBy,
		&o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, order_id, product_id, product_name,
			quantity, unit_price, tax_rate, tax_amount, total_amount
		FROM sales_order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.TaxRate,
			&item.TaxAmount,
			&item.TotalAmount,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}
