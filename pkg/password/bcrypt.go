package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost limits
const (
	MinLogRounds     = bcrypt.MinCost
	MaxLogRounds     = bcrypt.MaxCost
	DefaultLogRounds = 8
)

// maxPasswordBytes is the bcrypt input limit; longer input is truncated
const maxPasswordBytes = 72

// Bcrypt hashes salted passwords with bcrypt. Each Hash call embeds a fresh
// random salt, so hashes of the same password differ while all of them verify.
type Bcrypt struct {
	salt      string
	logRounds int
}

// NewBcrypt returns a Bcrypt strategy. logRounds of 0 selects DefaultLogRounds.
func NewBcrypt(salt string, logRounds int) (*Bcrypt, error) {
	if logRounds == 0 {
		logRounds = DefaultLogRounds
	}
	if logRounds < MinLogRounds || logRounds > MaxLogRounds {
		return nil, fmt.Errorf("%w: bcrypt log rounds must be between %d and %d, got %d",
			ErrInvalidParameter, MinLogRounds, MaxLogRounds, logRounds)
	}
	return &Bcrypt{salt: salt, logRounds: logRounds}, nil
}

// Name implements Strategy
func (b *Bcrypt) Name() string {
	return AlgorithmBcrypt
}

// LogRounds returns the cost used for new hashes
func (b *Bcrypt) LogRounds() int {
	return b.logRounds
}

// Hash implements Strategy
func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(b.input(password), b.logRounds)
	if err != nil {
		return "", fmt.Errorf("generating bcrypt hash: %w", err)
	}
	return string(h), nil
}

// Verify implements Strategy. Cost and salt come from storedHash.
func (b *Bcrypt) Verify(password, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), b.input(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

func (b *Bcrypt) input(password string) []byte {
	in := []byte(password + b.salt)
	if len(in) > maxPasswordBytes {
		in = in[:maxPasswordBytes]
	}
	return in
}
