package password

import (
	"fmt"
	"strconv"
	"strings"
)

// Property keys read by ParseProperties
const (
	PropertyDigestAlgorithm        = "digest-algorithm"
	PropertyDefaultDigestAlgorithm = "default-digest-algorithm"
	PropertyPasswordSalt           = "password-salt"
	PropertyBcryptLogRounds        = "bcrypt-log-rounds"
	PropertyEncoding               = "encoding"
	PropertyCharset                = "charset"
)

// Config selects and parameterizes a Strategy
type Config struct {
	// Algorithm is "none", "bcrypt"/"adaptive" or a digest name
	Algorithm string
	// DefaultAlgorithm is used when Algorithm is blank. ParseProperties only
	// fills it when digest-algorithm is absent.
	DefaultAlgorithm string
	// Salt is appended to every password before hashing
	Salt string
	// Charset names the text encoding used to turn passwords into bytes
	Charset string
	// Encoding is "hex", "base64" or "raw"
	Encoding string
	// LogRounds is the bcrypt cost as configured. It is only parsed when
	// the bcrypt strategy is selected; blank selects DefaultLogRounds.
	LogRounds string
}

// EffectiveAlgorithm returns the algorithm name NewStrategy will act on
func (c *Config) EffectiveAlgorithm() string {
	if alg := strings.TrimSpace(c.Algorithm); alg != "" {
		return alg
	}
	return strings.TrimSpace(c.DefaultAlgorithm)
}

// ParseProperties builds a Config from realm properties. A digest-algorithm
// key that is present but blank selects the SHA-256 default rather than
// default-digest-algorithm.
func ParseProperties(props map[string]string) (*Config, error) {
	if props == nil {
		return nil, fmt.Errorf("%w: properties are required", ErrConfiguration)
	}

	cfg := &Config{
		Salt:      props[PropertyPasswordSalt],
		Charset:   props[PropertyCharset],
		Encoding:  props[PropertyEncoding],
		LogRounds: props[PropertyBcryptLogRounds],
	}
	if alg, ok := props[PropertyDigestAlgorithm]; ok {
		cfg.Algorithm = alg
	} else {
		cfg.DefaultAlgorithm = props[PropertyDefaultDigestAlgorithm]
	}

	return cfg, nil
}

// parseLogRounds reads a bcrypt-log-rounds value; blank gives 0, which
// NewBcrypt treats as DefaultLogRounds
func parseLogRounds(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer: %q", ErrInvalidParameter, PropertyBcryptLogRounds, raw)
	}
	if n < MinLogRounds || n > MaxLogRounds {
		return 0, fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrInvalidParameter, PropertyBcryptLogRounds, MinLogRounds, MaxLogRounds, n)
	}
	return n, nil
}
