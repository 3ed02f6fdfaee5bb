package product

import (
	"context"
	"strings"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Restock(ctx context.Context, productID string, quantity int) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, productID string) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	/* ---------- INPUT NORMALIZATION ---------- */

	if opts.Page <= 0 {
		opts.Page = 1
	}

	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	opts.Search = strings.TrimSpace(opts.Search)

	return s.repo.List(ctx, opts)
}

// Create validates the input at the boundary and persists a new catalog item.
func (s *service) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", input.Name),
	)

	if err := validateNewProduct(input); err != nil {
		log.Warn("rejected invalid product input", zap.Error(err))
		return nil, err
	}

	p := &Product{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		SKU:          input.SKU,
		HSNCode:      input.HSNCode,
		SellingPrice: input.SellingPrice,
		CostPrice:    input.CostPrice,
		TaxRate:      input.TaxRate,
		CurrentStock: input.CurrentStock,
		ReorderLevel: input.ReorderLevel,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", created.ID))
	return created, nil
}

func (s *service) Restock(ctx context.Context, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidRestock
	}
	return s.repo.Restock(ctx, productID, quantity)
}

func validateNewProduct(input NewProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}
	if input.SellingPrice < 0 || input.CostPrice < 0 {
		return ErrNegativePrice
	}
	if input.TaxRate < 0 || input.TaxRate > 100 {
		return ErrInvalidTaxRate
	}
	if input.CurrentStock < 0 || input.ReorderLevel < 0 {
		return ErrNegativeStock
	}
	return nil
}
