package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmcdole/sqlrealm/pkg/logging"
)

// Verify interface compliance
var _ Store = (*SQLStore)(nil)

// SQLStore implements Store with two parameterized queries against a
// database/sql pool. Each call checks out its own connection and returns it
// before the call ends.
type SQLStore struct {
	db            *sql.DB
	passwordQuery string
	groupsQuery   string
}

// NewSQLStore creates a new SQLStore
func NewSQLStore(db *sql.DB, cfg *StoreConfig) (*SQLStore, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database handle is required", ErrConfiguration)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: store config is required", ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &SQLStore{
		db:            db,
		passwordQuery: cfg.PasswordQuery(),
		groupsQuery:   cfg.GroupsQuery(),
	}
	logging.App.Debug("Prepared credential queries", "password_query", s.passwordQuery, "groups_query", s.groupsQuery)
	return s, nil
}

// PasswordQuery returns the statement used by FindPasswordHash
func (s *SQLStore) PasswordQuery() string {
	return s.passwordQuery
}

// GroupsQuery returns the statement used by FindGroups
func (s *SQLStore) GroupsQuery() string {
	return s.groupsQuery
}

// FindPasswordHash implements Store
func (s *SQLStore) FindPasswordHash(ctx context.Context, username string) (string, error) {
	var hash sql.NullString
	found := false

	err := s.query(ctx, s.passwordQuery, username, func(rows *sql.Rows) error {
		if !rows.Next() {
			return nil
		}
		found = true
		return rows.Scan(&hash)
	})
	if err != nil {
		logging.App.Error("Password lookup failed", "username", username, "error", err)
		return "", fmt.Errorf("%w: finding password: %w", ErrStorageUnavailable, err)
	}

	if !found {
		logging.App.Debug("No password row for user", "username", username)
		return "", ErrUserNotFound
	}
	if !hash.Valid {
		logging.App.Debug("Password column is NULL", "username", username)
		return "", ErrUserNotFound
	}
	return hash.String, nil
}

// FindGroups implements Store
func (s *SQLStore) FindGroups(ctx context.Context, username string) ([]string, error) {
	groups := []string{}

	err := s.query(ctx, s.groupsQuery, username, func(rows *sql.Rows) error {
		for rows.Next() {
			var group sql.NullString
			if err := rows.Scan(&group); err != nil {
				return err
			}
			if group.Valid {
				groups = append(groups, group.String)
			}
		}
		return nil
	})
	if err != nil {
		logging.App.Error("Group lookup failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: finding groups: %w", ErrStorageUnavailable, err)
	}

	logging.App.Debug("Loaded groups", "username", username, "count", len(groups))
	return groups, nil
}

// query runs one statement on a connection scoped to this call. The rows and
// the connection are released on every return path.
func (s *SQLStore) query(ctx context.Context, query, username string, scan func(*sql.Rows) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		return fmt.Errorf("reading rows: %w", err)
	}
	return rows.Err()
}
