package model

// Claims is the verified claim set carried by a bearer token. Values keep the
// loosely-typed shape of the token payload; consumers decode defensively.
type Claims map[string]any

// TokenVerifier checks a raw bearer token's signature and validity and
// returns its claim set.
type TokenVerifier interface {
	Verify(tokenString string) (Claims, error)
}
