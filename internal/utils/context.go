package utils

import "context"

type contextKey string

const (
	OperatorIDKey    contextKey = "operator_id"
	OperatorEmailKey contextKey = "operator_email"
	OperatorRoleKey  contextKey = "operator_role"
)

// SetOperatorContext sets operator info into context (called by middleware).
func SetOperatorContext(ctx context.Context, id string, email string, role string) context.Context {
	ctx = context.WithValue(ctx, OperatorIDKey, id)
	ctx = context.WithValue(ctx, OperatorEmailKey, email)
	ctx = context.WithValue(ctx, OperatorRoleKey, role)
	return ctx
}

// GetOperatorIDFromContext retrieves the acting operator's id safely.
func GetOperatorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(OperatorIDKey).(string)
	return id, ok
}

func GetOperatorEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(OperatorEmailKey).(string)
	return email
}

func GetOperatorRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(OperatorRoleKey).(string)
	return role
}
