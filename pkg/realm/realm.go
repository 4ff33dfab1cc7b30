package realm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/sqlrealm/pkg/credentials"
	"github.com/mmcdole/sqlrealm/pkg/logging"
	"github.com/mmcdole/sqlrealm/pkg/password"
)

const authType = "sql realm"

// Realm authenticates users against a credential store. It is immutable
// after construction and safe for concurrent use.
type Realm struct {
	strategy password.Strategy
	store    credentials.Store
	nameCase NameCase
}

// New creates a realm from a password strategy and a credential store
func New(strategy password.Strategy, store credentials.Store, opts ...Option) (*Realm, error) {
	if strategy == nil {
		return nil, fmt.Errorf("%w: password strategy is required", ErrConfiguration)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: credential store is required", ErrConfiguration)
	}

	r := &Realm{
		strategy: strategy,
		store:    store,
		nameCase: CasePreserve,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewFromProperties builds the strategy and the SQL store described by props.
// driver is the database/sql driver name behind db and picks the placeholder
// style when the placeholder property is absent.
func NewFromProperties(props map[string]string, db *sql.DB, driver string) (*Realm, error) {
	if props == nil {
		return nil, fmt.Errorf("%w: properties are required", ErrConfiguration)
	}

	strategy, err := password.NewStrategyFromProperties(props)
	if err != nil {
		return nil, fmt.Errorf("%w: creating password strategy: %w", ErrConfiguration, err)
	}

	storeCfg, err := credentials.ParseProperties(props, driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	store, err := credentials.NewSQLStore(db, storeCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: creating credential store: %w", ErrConfiguration, err)
	}

	nameCase, err := ParseNameCase(props[PropertyUserNameCase])
	if err != nil {
		return nil, err
	}

	logging.App.Info("Realm configured",
		"strategy", strategy.Name(),
		"user_table", storeCfg.UserTable,
		"group_table", storeCfg.GroupTable,
		"user_name_case", string(nameCase))

	return New(strategy, store, WithNameCase(nameCase))
}

// AuthType names the authentication mechanism
func (r *Realm) AuthType() string {
	return authType
}

// Strategy returns the password strategy in use
func (r *Realm) Strategy() password.Strategy {
	return r.strategy
}

// Authenticate checks a username and password. Unknown users, wrong
// passwords and unparseable stored hashes all give the zero Result with a
// nil error. A non-nil error means the store could not be consulted.
func (r *Realm) Authenticate(ctx context.Context, username, pass string) (Result, error) {
	if strings.TrimSpace(username) == "" {
		logging.Access.LogAuth("AUTH", "", "failure", "reason", reasonBlankUsername)
		return Result{}, nil
	}
	username = r.nameCase.apply(username)

	stored, err := r.store.FindPasswordHash(ctx, username)
	if errors.Is(err, credentials.ErrUserNotFound) {
		logging.Access.LogAuth("AUTH", username, "failure", "reason", reasonUnknownUser)
		return Result{}, nil
	}
	if err != nil {
		logging.Access.LogAuth("AUTH", username, "error", "reason", reasonStorage)
		return Result{}, err
	}

	ok, err := r.strategy.Verify(pass, stored)
	if err != nil {
		if errors.Is(err, password.ErrInvalidInput) {
			logging.App.Warn("Stored password hash is malformed", "username", username, "strategy", r.strategy.Name())
			logging.Access.LogAuth("AUTH", username, "failure", "reason", reasonMalformedHash)
			return Result{}, nil
		}
		logging.App.Error("Password verification failed", "username", username, "error", err)
		logging.Access.LogAuth("AUTH", username, "error", "reason", reasonVerify)
		return Result{}, err
	}
	if !ok {
		logging.Access.LogAuth("AUTH", username, "failure", "reason", reasonBadPassword)
		return Result{}, nil
	}

	groups, err := r.store.FindGroups(ctx, username)
	if err != nil {
		logging.Access.LogAuth("AUTH", username, "error", "reason", reasonStorage)
		return Result{}, err
	}

	groups = dedup(groups)
	logging.Access.LogAuth("AUTH", username, "success", "groups", len(groups))
	return Result{Authenticated: true, Groups: groups}, nil
}

// GroupNames returns the groups of a user without checking a password
func (r *Realm) GroupNames(ctx context.Context, username string) ([]string, error) {
	if strings.TrimSpace(username) == "" {
		return []string{}, nil
	}
	groups, err := r.store.FindGroups(ctx, r.nameCase.apply(username))
	if err != nil {
		return nil, err
	}
	return dedup(groups), nil
}

// dedup drops repeated names, keeping the first occurrence
func dedup(groups []string) []string {
	seen := make(map[string]struct{}, len(groups))
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
