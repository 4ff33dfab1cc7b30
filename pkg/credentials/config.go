package credentials

import (
	"fmt"
	"strings"
	"unicode"
)

// Property keys read by ParseProperties
const (
	PropertyUserTable           = "user-table"
	PropertyUserNameColumn      = "user-name-column"
	PropertyUserPasswordColumn  = "user-password-column"
	PropertyGroupTable          = "group-table"
	PropertyGroupNameColumn     = "group-name-column"
	PropertyGroupUserNameColumn = "group-table-user-name-column"
	PropertyPlaceholder         = "placeholder"
)

const (
	passwordQueryFormat = "SELECT %s FROM %s WHERE %s = %s"
	groupsQueryFormat   = "SELECT %s FROM %s WHERE %s = %s"
)

// Placeholder is the bind parameter syntax of the SQL dialect
type Placeholder string

const (
	// PlaceholderQuestion binds with "?" (MySQL, SQLite, most drivers)
	PlaceholderQuestion Placeholder = "question"
	// PlaceholderDollar binds with "$1" (PostgreSQL)
	PlaceholderDollar Placeholder = "dollar"
)

// PlaceholderForDriver returns the placeholder style a database/sql driver expects
func PlaceholderForDriver(driver string) Placeholder {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		return PlaceholderDollar
	}
	return PlaceholderQuestion
}

func (p Placeholder) token() string {
	if p == PlaceholderDollar {
		return "$1"
	}
	return "?"
}

// StoreConfig describes the user and group tables
type StoreConfig struct {
	UserTable          string
	UserNameColumn     string
	UserPasswordColumn string
	GroupTable         string
	GroupNameColumn    string
	// GroupUserNameColumn joins the group table to a username; when blank
	// UserNameColumn is used
	GroupUserNameColumn string
	// Placeholder defaults to PlaceholderQuestion
	Placeholder Placeholder
}

// ParseProperties builds a StoreConfig from realm properties. driver picks
// the placeholder style when the placeholder property is not set.
func ParseProperties(props map[string]string, driver string) (*StoreConfig, error) {
	if props == nil {
		return nil, fmt.Errorf("%w: properties are required", ErrConfiguration)
	}

	cfg := &StoreConfig{
		UserTable:           strings.TrimSpace(props[PropertyUserTable]),
		UserNameColumn:      strings.TrimSpace(props[PropertyUserNameColumn]),
		UserPasswordColumn:  strings.TrimSpace(props[PropertyUserPasswordColumn]),
		GroupTable:          strings.TrimSpace(props[PropertyGroupTable]),
		GroupNameColumn:     strings.TrimSpace(props[PropertyGroupNameColumn]),
		GroupUserNameColumn: strings.TrimSpace(props[PropertyGroupUserNameColumn]),
		Placeholder:         PlaceholderForDriver(driver),
	}

	switch p := strings.ToLower(strings.TrimSpace(props[PropertyPlaceholder])); p {
	case "":
	case string(PlaceholderQuestion), "?":
		cfg.Placeholder = PlaceholderQuestion
	case string(PlaceholderDollar), "$1":
		cfg.Placeholder = PlaceholderDollar
	default:
		return nil, fmt.Errorf("%w: unknown %s %q", ErrConfiguration, PropertyPlaceholder, p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks mandatory fields and rejects identifiers that could
// change the shape of the generated SQL
func (c *StoreConfig) Validate() error {
	mandatory := []struct {
		key, value string
	}{
		{PropertyUserTable, c.UserTable},
		{PropertyUserNameColumn, c.UserNameColumn},
		{PropertyUserPasswordColumn, c.UserPasswordColumn},
		{PropertyGroupTable, c.GroupTable},
		{PropertyGroupNameColumn, c.GroupNameColumn},
	}
	for _, m := range mandatory {
		if strings.TrimSpace(m.value) == "" {
			return fmt.Errorf("%w: missing %s", ErrConfiguration, m.key)
		}
		if err := checkIdentifier(m.key, m.value); err != nil {
			return err
		}
	}
	if c.GroupUserNameColumn != "" {
		if err := checkIdentifier(PropertyGroupUserNameColumn, c.GroupUserNameColumn); err != nil {
			return err
		}
	}

	switch c.Placeholder {
	case "", PlaceholderQuestion, PlaceholderDollar:
	default:
		return fmt.Errorf("%w: unknown placeholder %q", ErrConfiguration, c.Placeholder)
	}
	return nil
}

func checkIdentifier(key, value string) error {
	if strings.Contains(value, ";") || strings.Contains(value, "--") || strings.Contains(value, "/*") {
		return fmt.Errorf("%w: %s contains SQL syntax: %q", ErrConfiguration, key, value)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %s contains control characters", ErrConfiguration, key)
		}
	}
	return nil
}

// GroupJoinColumn returns the column the group query binds the username to
func (c *StoreConfig) GroupJoinColumn() string {
	if strings.TrimSpace(c.GroupUserNameColumn) != "" {
		return c.GroupUserNameColumn
	}
	return c.UserNameColumn
}

// PasswordQuery returns the statement used by FindPasswordHash
func (c *StoreConfig) PasswordQuery() string {
	return fmt.Sprintf(passwordQueryFormat, c.UserPasswordColumn, c.UserTable, c.UserNameColumn, c.Placeholder.token())
}

// GroupsQuery returns the statement used by FindGroups
func (c *StoreConfig) GroupsQuery() string {
	return fmt.Sprintf(groupsQueryFormat, c.GroupNameColumn, c.GroupTable, c.GroupJoinColumn(), c.Placeholder.token())
}
