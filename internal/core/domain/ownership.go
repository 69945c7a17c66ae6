package domain

import "fmt"

// Owns reports whether userID is the owner recorded on a resource.
func Owns(ownerID, userID string) bool {
	return ownerID != "" && ownerID == userID
}

// RequireOwner returns nil when id owns the resource. Otherwise it returns an
// error matching both notFound and ErrNotOwner, so callers answer exactly as
// they would for a missing resource.
func RequireOwner(ownerID string, id AuthorizedIdentity, notFound error) error {
	if Owns(ownerID, id.UserID) {
		return nil
	}
	return fmt.Errorf("%w: %w", notFound, ErrNotOwner)
}
