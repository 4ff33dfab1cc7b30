package realm

import (
	"fmt"
	"strings"
)

// PropertyUserNameCase selects how usernames are normalized before lookup
const PropertyUserNameCase = "user-name-case"

// Access log reasons
const (
	reasonBlankUsername = "blank_username"
	reasonUnknownUser   = "unknown_user"
	reasonBadPassword   = "bad_password"
	reasonMalformedHash = "malformed_hash"
	reasonStorage       = "storage"
	reasonVerify        = "verify"
)

// Result is the outcome of an authentication attempt. A failed attempt is
// the zero value whatever the cause.
type Result struct {
	Authenticated bool
	Groups        []string
}

// NameCase is the username normalization policy
type NameCase string

const (
	// CasePreserve looks usernames up as given
	CasePreserve NameCase = "preserve"
	// CaseLower lower-cases usernames
	CaseLower NameCase = "lower"
	// CaseUpper upper-cases usernames
	CaseUpper NameCase = "upper"
)

// ParseNameCase reads a user-name-case value, defaulting to CasePreserve
func ParseNameCase(s string) (NameCase, error) {
	switch c := NameCase(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CasePreserve, nil
	case CasePreserve, CaseLower, CaseUpper:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown %s %q", ErrConfiguration, PropertyUserNameCase, s)
	}
}

func (c NameCase) apply(username string) string {
	switch c {
	case CaseLower:
		return strings.ToLower(username)
	case CaseUpper:
		return strings.ToUpper(username)
	}
	return username
}

// Option configures a Realm
type Option func(*Realm)

// WithNameCase sets the username normalization policy
func WithNameCase(c NameCase) Option {
	return func(r *Realm) {
		r.nameCase = c
	}
}
