package operator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Operator), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, op *Operator) (*Operator, error) {
	args := m.Called(ctx, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Operator), args.Error(1)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := HashPassword("correct-pass")
	require.NoError(t, err)

	stored := &Operator{
		ID:           "op-1",
		Email:        "cashier@example.com",
		Role:         RoleCashier,
		PasswordHash: hash,
	}

	t.Run("success normalizes email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "cashier@example.com").Return(stored, nil)

		token, op, err := svc.Login(context.Background(), LoginInput{
			Email:    "  Cashier@Example.COM ",
			Password: "correct-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "op-1", op.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, _, err := svc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "cashier@example.com").Return(stored, nil)

		_, _, err := svc.Login(context.Background(), LoginInput{
			Email:    "cashier@example.com",
			Password: "wrong-pass",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*operator.Operator")).
		Run(func(args mock.Arguments) {
			op := args.Get(1).(*Operator)
			assert.Equal(t, "new@example.com", op.Email)
			assert.Equal(t, RoleCashier, op.Role)
			assert.NotEmpty(t, op.ID)
			assert.True(t, CheckPasswordHash("pass-123", op.PasswordHash))
		}).
		Return(&Operator{ID: "op-2"}, nil)

	op, err := svc.Register(context.Background(), RegisterInput{
		Email:    " New@Example.com ",
		Name:     "New Operator",
		Password: "pass-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "op-2", op.ID)
	repo.AssertExpectations(t)
}
