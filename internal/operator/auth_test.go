package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("op-1", "cashier@example.com", RoleCashier)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.OperatorID)
	assert.Equal(t, "cashier@example.com", claims.Email)
	assert.Equal(t, RoleCashier, claims.Role)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateJWT("op-1", "cashier@example.com", RoleCashier)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("op-1", "cashier@example.com", RoleCashier)
	assert.Error(t, err)

	_, err = ParseJWT("whatever")
	assert.Error(t, err)
}

func TestJWT_GarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
