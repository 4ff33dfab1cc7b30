package password

import "errors"

var (
	// ErrConfiguration is returned when no usable configuration was supplied
	ErrConfiguration = errors.New("invalid password configuration")

	// ErrUnsupportedAlgorithm is returned when the digest name is not recognized
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

	// ErrInvalidParameter is returned when a strategy parameter is out of range or malformed
	ErrInvalidParameter = errors.New("invalid strategy parameter")

	// ErrInvalidInput is returned when a stored hash cannot be parsed for the scheme
	ErrInvalidInput = errors.New("malformed stored hash")
)
