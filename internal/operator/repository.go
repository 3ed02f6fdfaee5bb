package operator

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Postgres unique_violation, raised when an email is already taken.
const pgUniqueViolation = "23505"

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Operator, error)
	Create(ctx context.Context, op *Operator) (*Operator, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	var op Operator
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, password_hash, created_at
		FROM operators
		WHERE email = $1
	`, email).Scan(&op.ID, &op.Email, &op.Name, &op.Role, &op.PasswordHash, &op.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &op, nil
}

func (r *repository) Create(ctx context.Context, op *Operator) (*Operator, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO operators (id, email, name, role, password_hash)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, op.ID, op.Email, op.Name, op.Role, op.PasswordHash).Scan(&op.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}

	return op, nil
}
