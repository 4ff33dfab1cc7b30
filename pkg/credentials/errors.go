package credentials

import "errors"

var (
	// ErrUserNotFound is returned when no row matches the username
	ErrUserNotFound = errors.New("user not found")

	// ErrStorageUnavailable wraps driver and connectivity failures
	ErrStorageUnavailable = errors.New("credential storage unavailable")

	// ErrConfiguration is returned when the store configuration is incomplete or unsafe
	ErrConfiguration = errors.New("invalid credential store configuration")
)
