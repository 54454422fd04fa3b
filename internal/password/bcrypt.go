// Package password provides the local one-way password verifier. The hash is
// stored so the local record and the identity provider agree on the
// credential; verification itself happens provider-side on login.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptEncoder encodes passwords with bcrypt at the default cost.
type BcryptEncoder struct {
	cost int
}

// NewBcryptEncoder creates a BcryptEncoder.
func NewBcryptEncoder() *BcryptEncoder {
	return &BcryptEncoder{cost: bcrypt.DefaultCost}
}

// Encode returns the one-way hash of password.
func (e *BcryptEncoder) Encode(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), e.cost)
	if err != nil {
		return "", fmt.Errorf("failed to encode password: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether password matches the stored hash.
func (e *BcryptEncoder) Matches(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
