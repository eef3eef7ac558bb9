package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier verifies an access token and returns the subject it was
// issued for. Session management itself lives with the identity provider;
// this boundary only checks signatures and expiry.
type TokenVerifier interface {
	Verify(tokenString string) (subject string, err error)
}

// accessClaims represents the claims carried by an access token.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTVerifier validates HS256-signed access tokens.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a new JWT verifier.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify validates the token signature, issuer and expiry, and returns the
// token subject.
func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidTokenClaims
	}

	return claims.Subject, nil
}
