package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "owner@example.com", []string{"admin"}, []string{"manage-sales"})
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Contains(t, claims.Roles, "admin")
	assert.Contains(t, claims.Permissions, "manage-sales")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", time.Hour, 24*time.Hour)
	other := NewJWTManager("secret-b", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "owner@example.com", nil, nil)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "owner@example.com", nil, nil)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestFormatInvoiceNo(t *testing.T) {
	assert.Equal(t, "INV-000001", FormatInvoiceNo(1))
	assert.Equal(t, "INV-000042", FormatInvoiceNo(42))
	assert.Equal(t, "INV-1000000", FormatInvoiceNo(1000000))
}
