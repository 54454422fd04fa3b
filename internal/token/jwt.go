package token

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fedblog/blog-server/internal/model"
)

// Verifier validates RS256 bearer tokens issued by the identity provider's
// realm and exposes their claim sets. Only signature and validity are checked
// here; resolving claims into a principal is the auth package's job.
type Verifier struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewVerifier creates a Verifier from the realm's public signing key in PEM
// form. When issuer is non-empty, the token's iss claim must match it.
func NewVerifier(publicKeyPEM string, issuer string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return &Verifier{publicKey: key, issuer: issuer}, nil
}

// Verify checks the token signature and validity and returns the claim set.
func (v *Verifier) Verify(tokenString string) (model.Claims, error) {
	claims := jwt.MapClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	return model.Claims(claims), nil
}
