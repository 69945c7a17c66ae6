package ports

import (
	"context"
	"time"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// CreateIfAbsent atomically inserts user unless a user with the same id
	// exists. It returns the stored record and whether this call inserted it.
	CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, bool, error)
	// UpdateRole moves a user from role from to role to. When the stored role
	// is no longer from, nothing is written and the current record is returned.
	UpdateRole(ctx context.Context, id string, from, to domain.Role, at time.Time) (*domain.User, error)
	// UpdateProfile applies the set fields of u; domain.ErrUserNotFound when absent.
	UpdateProfile(ctx context.Context, id string, u domain.ProfileUpdate, at time.Time) (*domain.User, error)
}
