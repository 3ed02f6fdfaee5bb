package operator

import (
	"context"
	"strings"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, input LoginInput) (string, *Operator, error)
	Register(ctx context.Context, input RegisterInput) (*Operator, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, *Operator, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email := strings.ToLower(strings.TrimSpace(input.Email))

	op, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up operator", zap.Error(err))
		return "", nil, err
	}
	if op == nil || !CheckPasswordHash(input.Password, op.PasswordHash) {
		// Same answer for unknown email and wrong password.
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(op.ID, op.Email, op.Role)
	if err != nil {
		return "", nil, err
	}

	log.Info("operator logged in", zap.String("operator_id", op.ID))
	return token, op, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Operator, error) {
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = RoleCashier
	}

	op := &Operator{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		PasswordHash: hash,
	}

	return s.repo.Create(ctx, op)
}
