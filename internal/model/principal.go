package model

// RolePrefix is prepended to every authority projected from token claims.
const RolePrefix = "ROLE_"

// Principal is the resolved, authorization-ready representation of the caller
// for a single request. Ownership comparisons must use User.ID, never the raw
// token subject.
type Principal struct {
	User        User
	Authorities []string
}

// Name returns the principal's identity for logging.
func (p Principal) Name() string {
	return p.User.Email
}

// HasAuthority reports whether the principal carries the given authority.
func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
