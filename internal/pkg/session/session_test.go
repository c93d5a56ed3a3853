package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate(42, "Alice Mendoza", "alice@example.com", "client", false, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Validate(token, "test-secret")
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims.AccountID)
	assert.Equal(t, "Alice Mendoza", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "client", claims.Role)
	assert.False(t, claims.Permanent)
	assert.NotEmpty(t, claims.SessionID)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := Generate(42, "Alice", "alice@example.com", "client", false, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = Validate(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpired(t *testing.T) {
	token, err := Generate(42, "Alice", "alice@example.com", "client", false, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = Validate(token, "test-secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := Validate("not-a-token", "test-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, err := Generate(1, "A", "a@example.com", "client", false, "test-secret", time.Hour)
	require.NoError(t, err)
	b, err := Generate(1, "A", "a@example.com", "client", false, "test-secret", time.Hour)
	require.NoError(t, err)

	ca, err := Validate(a, "test-secret")
	require.NoError(t, err)
	cb, err := Validate(b, "test-secret")
	require.NoError(t, err)

	assert.NotEqual(t, ca.SessionID, cb.SessionID)
}
