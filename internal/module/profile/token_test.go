package profile

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(expiry time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		Secret: "test-secret",
		Issuer: "zelosify-test",
		Expiry: expiry,
	})
}

func TestTokenService_MintValidate(t *testing.T) {
	svc := newTestTokenService(time.Minute)
	scope := TokenScope{TenantID: "tenant-a", OpeningID: "opening-1", UploadedBy: "user-1"}

	token, err := svc.Mint("tenant-a/opening-1/1735689600000_resume.pdf", scope)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	binding, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a/opening-1/1735689600000_resume.pdf", binding.Key)
	assert.Equal(t, "tenant-a", binding.TenantID)
	assert.Equal(t, "opening-1", binding.OpeningID)
	assert.Equal(t, "user-1", binding.UploadedBy)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	scope := TokenScope{TenantID: "t1", OpeningID: "o1", UploadedBy: "u1"}

	token, err := newTestTokenService(time.Minute).Mint("t1/o1/1_a.pdf", scope)
	require.NoError(t, err)

	other := NewTokenService(TokenConfig{Secret: "different-secret", Issuer: "zelosify-test"})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidUploadToken)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := newTestTokenService(time.Minute)

	claims := &uploadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "zelosify-test",
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
		Key:       "t1/o1/1_a.pdf",
		TenantID:  "t1",
		OpeningID: "o1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidUploadToken)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	svc := newTestTokenService(time.Minute)

	_, err := svc.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidUploadToken)
}

func TestTokenBinding_CheckScope(t *testing.T) {
	svc := newTestTokenService(time.Minute)
	scope := TokenScope{TenantID: "tenant-a", OpeningID: "opening-1", UploadedBy: "u1"}

	token, err := svc.Mint("tenant-a/opening-1/1_a.pdf", scope)
	require.NoError(t, err)
	binding, err := svc.Validate(token)
	require.NoError(t, err)

	assert.NoError(t, binding.CheckScope("tenant-a", "opening-1"))
	assert.ErrorIs(t, binding.CheckScope("tenant-a", "opening-2"), ErrTokenScopeMismatch)
	assert.ErrorIs(t, binding.CheckScope("tenant-b", "opening-1"), ErrTokenScopeMismatch)
}

func TestTokenService_DefaultExpiry(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s", Issuer: "i"})
	assert.Equal(t, 15*time.Minute, svc.Expiry())
}
