package password

// Strategy hashes and verifies passwords under one protection scheme.
// Implementations are immutable and safe for concurrent use.
type Strategy interface {
	// Name identifies the scheme, e.g. "none", "bcrypt" or "SHA-256"
	Name() string

	// Hash returns the storable form of a plaintext password
	Hash(password string) (string, error)

	// Verify reports whether storedHash was produced from password.
	// A mismatch is (false, nil); an error means storedHash is malformed.
	Verify(password, storedHash string) (bool, error)
}

// Scheme names recognized by NewStrategy
const (
	AlgorithmNone     = "none"
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmAdaptive = "adaptive"

	// DefaultDigest is used when no algorithm is configured
	DefaultDigest = "SHA-256"
)
