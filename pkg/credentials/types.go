package credentials

import "context"

// Store is a read-only source of password hashes and group memberships.
// Implementations must be safe for concurrent use.
type Store interface {
	// FindPasswordHash returns the stored hash of the first row matching
	// username, or ErrUserNotFound
	FindPasswordHash(ctx context.Context, username string) (string, error)

	// FindGroups returns the group names of username in row order. A user
	// without groups yields an empty slice.
	FindGroups(ctx context.Context, username string) ([]string, error)
}
