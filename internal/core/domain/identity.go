package domain

import "time"

// ExternalProfile is the identity returned by the external provider after
// an access token has been verified.
type ExternalProfile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// IdentityClaims is the claim set carried by a signed token.
type IdentityClaims struct {
	UserID    string
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthorizedIdentity is the principal resolved by the access guard for a
// single request. Role is read from the stored user, not from the token.
type AuthorizedIdentity struct {
	UserID string
	Email  string
	Role   Role
}
