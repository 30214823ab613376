package auth

import "time"

// AuthContext is the verified identity of a request. The access guard
// produces it and endpoints receive it explicitly.
type AuthContext struct {
	Identity  string
	TokenID   string
	ExpiresAt time.Time
}

// NewAuthContext builds an AuthContext from validated claims.
func NewAuthContext(claims *Claims) AuthContext {
	return AuthContext{
		Identity:  claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt,
	}
}

// Owns reports whether the authenticated identity is exactly owner.
// There is no case folding or alias resolution.
func (ac AuthContext) Owns(owner string) bool {
	return ac.Identity != "" && ac.Identity == owner
}

// RequireOwner returns ErrMissingToken when ac is nil and ErrForbidden when
// the authenticated identity is not owner.
func RequireOwner(ac *AuthContext, owner string) error {
	if ac == nil {
		return ErrMissingToken
	}
	if !ac.Owns(owner) {
		return ErrForbidden
	}
	return nil
}
