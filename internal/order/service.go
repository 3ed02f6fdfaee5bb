package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/cart"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/metrics"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/product"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Checkout turns a non-empty cart into a persisted Order, decrementing
	// stock for every line atomically. On any failure nothing is committed
	// and the caller's cart stays usable for a retry.
	Checkout(ctx context.Context, input CheckoutInput) (*Order, error)

	GetOrders(
		ctx context.Context,
		filter *OrderFilterInput,
		sort *OrderSortInput,
		limit, page *int32,
	) ([]*Order, error)

	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
}

type service struct {
	repo  Repository
	stats *metrics.CheckoutStats

	// allowNegativeStock enables back-orders: decrements may drive stock
	// below zero instead of failing with ErrStockUnavailable.
	allowNegativeStock bool
}

func NewService(repo Repository, stats *metrics.CheckoutStats, allowNegativeStock bool) Service {
	return &service{
		repo:               repo,
		stats:              stats,
		allowNegativeStock: allowNegativeStock,
	}
}

func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int("line_count", len(input.Lines)),
		zap.Float64("discount_percent", input.DiscountPercent),
	)

	timer := metrics.StartTimer()

	// 1. Reject before touching storage
	if len(input.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}

	method, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	for i, line := range input.Lines {
		if err := validateLine(line); err != nil {
			log.Warn("rejected invalid cart line",
				zap.Int("index", i),
				zap.String("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}

	// 2. Resolve every product before any write
	for i, line := range input.Lines {
		p, err := s.repo.GetProductForCheckout(ctx, line.ProductID)
		if err != nil {
			log.Warn("product lookup failed",
				zap.Int("index", i),
				zap.String("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		if !s.allowNegativeStock && p.CurrentStock < line.Quantity {
			// Early refusal; the transactional guard still decides.
			log.Warn("insufficient stock at pre-check",
				zap.String("product_id", line.ProductID),
				zap.Int("requested", line.Quantity),
				zap.Int("available", p.CurrentStock),
			)
			return nil, ErrStockUnavailable
		}
	}

	// 3. Compute totals
	totals := cart.ComputeTotals(input.Lines, input.DiscountPercent)

	// 4. Build the order; rounding happens here, at the persistence edge
	o := &Order{
		ID:            uuid.NewString(),
		OrderNumber:   GenerateOrderNumber(),
		CustomerName:  emptyToNil(input.CustomerName),
		CustomerPhone: emptyToNil(input.CustomerPhone),
		Subtotal:      utils.RoundMoney(totals.Subtotal),
		TaxAmount:     utils.RoundMoney(totals.TaxAmount),
		Discount:      utils.RoundMoney(totals.DiscountAmount),
		TotalAmount:   utils.RoundMoney(totals.Total),
		PaymentMethod: method,
		CreatedBy:     input.ActorID,
		CreatedAt:     time.Now().UTC(),
	}

	for _, line := range input.Lines {
		lineTotal := line.UnitPrice * float64(line.Quantity)
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxRate:     line.TaxRate,
			TaxAmount:   utils.RoundMoney(lineTotal * line.TaxRate / 100),
			TotalAmount: utils.RoundMoney(lineTotal),
		})
	}

	// 5. Single transaction boundary
	if err := s.repo.CreateOrderTx(ctx, o, s.allowNegativeStock); err != nil {
		s.stats.Failed.Inc()

		if errors.Is(err, ErrStockUnavailable) || errors.Is(err, product.ErrProductNotFound) {
			return nil, err
		}

		log.Error("checkout transaction failed",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	s.stats.Completed.Inc()
	log.Info("checkout completed",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Duration("took", timer.Duration()),
	)

	return o, nil
}

func (s *service) GetOrders(
	ctx context.Context,
	filter *OrderFilterInput,
	sort *OrderSortInput,
	limit, page *int32,
) ([]*Order, error) {
	return s.repo.FetchOrders(ctx, filter, sort, limit, page)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetOrderDetail(ctx, orderID)
}

func validateLine(line cart.Line) error {
	if line.ProductID == "" {
		return product.ErrProductNotFound
	}
	if line.Quantity < 1 {
		return cart.ErrInvalidQuantity
	}
	if line.UnitPrice < 0 {
		return product.ErrNegativePrice
	}
	if line.TaxRate < 0 || line.TaxRate > 100 {
		return product.ErrInvalidTaxRate
	}
	return nil
}

func normalizePaymentMethod(m PaymentMethod) (PaymentMethod, error) {
	if m == "" {
		return PaymentCash, nil
	}
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return m, nil
	}
	return "", ErrInvalidPaymentMethod
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
