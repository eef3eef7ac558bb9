package profile

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenScope is the authorization context an upload token is minted under.
type TokenScope struct {
	TenantID   string
	OpeningID  string
	UploadedBy string
}

// uploadClaims are the claims carried by an upload token. The token is
// cryptographically bound to one destination key and one tenant/opening
// scope; presenting it anywhere else must fail at use time.
type uploadClaims struct {
	jwt.RegisteredClaims
	Key        string `json:"key"`
	TenantID   string `json:"tenant_id"`
	OpeningID  string `json:"opening_id"`
	UploadedBy string `json:"uploaded_by"`
}

// TokenConfig holds upload token configuration.
type TokenConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// TokenService mints and validates short-lived upload authorizations.
// Tokens are purely signed state; no database row backs them.
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new upload token service.
func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 15 * time.Minute
	}
	return &TokenService{config: cfg}
}

// Mint generates a signed upload token bound to the destination key and
// scope.
func (s *TokenService) Mint(key string, scope TokenScope) (string, error) {
	now := time.Now()
	claims := &uploadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   scope.UploadedBy,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Key:        key,
		TenantID:   scope.TenantID,
		OpeningID:  scope.OpeningID,
		UploadedBy: scope.UploadedBy,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign upload token: %w", err)
	}
	return signed, nil
}

// TokenBinding is the validated content of an upload token.
type TokenBinding struct {
	Key        string
	TenantID   string
	OpeningID  string
	UploadedBy string
}

// Validate parses and verifies an upload token, returning its binding.
func (s *TokenService) Validate(tokenString string) (*TokenBinding, error) {
	token, err := jwt.ParseWithClaims(tokenString, &uploadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUploadToken, err)
	}

	claims, ok := token.Claims.(*uploadClaims)
	if !ok || !token.Valid || claims.Key == "" {
		return nil, ErrInvalidUploadToken
	}

	return &TokenBinding{
		Key:        claims.Key,
		TenantID:   claims.TenantID,
		OpeningID:  claims.OpeningID,
		UploadedBy: claims.UploadedBy,
	}, nil
}

// CheckScope verifies the binding was minted for the given tenant and
// opening. Tenant ownership is re-checked at use time, not only at mint
// time.
func (b *TokenBinding) CheckScope(tenantID, openingID string) error {
	if b.OpeningID != openingID || b.TenantID != tenantID {
		return ErrTokenScopeMismatch
	}
	return nil
}

// Expiry returns the configured token lifetime.
func (s *TokenService) Expiry() time.Duration {
	return s.config.Expiry
}
