package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleCustomer: 1,
	RoleMerchant: 2,
	RoleAdmin:    3,
}

// ParseRole converts a case-insensitive role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks equal to or above min.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && roleRank[r] >= roleRank[min]
}

// Reconcile applies the role precedence used at login: a customer asking
// for merchant is upgraded, every other combination keeps the current role.
// A role is never downgraded.
func (r Role) Reconcile(requested Role) (Role, bool) {
	if r == RoleCustomer && requested == RoleMerchant {
		return RoleMerchant, true
	}
	return r, false
}

// RoleRule is the role requirement of a protected operation.
type RoleRule struct {
	Role  Role
	Exact bool
}

// AtLeast builds a rule satisfied by role r or any role ranked above it.
func AtLeast(r Role) RoleRule { return RoleRule{Role: r} }

// Exactly builds a rule satisfied only by role r.
func Exactly(r Role) RoleRule { return RoleRule{Role: r, Exact: true} }

// Allows reports whether a user holding role r passes the rule.
func (rr RoleRule) Allows(r Role) bool {
	if rr.Exact {
		return r == rr.Role
	}
	return r.AtLeast(rr.Role)
}

func (rr RoleRule) String() string {
	if rr.Exact {
		return "exactly " + string(rr.Role)
	}
	return "at least " + string(rr.Role)
}

// ProfileUpdate carries a partial edit of the user-editable profile fields.
// Nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName  *string
	ProfileImage *string
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.ProfileImage == nil
}

// User is an internal account bound to one external identity.
// ID is the provider's stable subject id.
type User struct {
	ID           string    `json:"user_id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	DisplayName  string    `json:"display_name" bson:"display_name"`
	ProfileImage string    `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
