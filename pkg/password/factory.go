package password

import (
	"fmt"
	"strings"

	"github.com/mmcdole/sqlrealm/pkg/logging"
)

// NewStrategy builds the Strategy described by cfg. It holds no state
// between calls, so realms with different configurations never share one.
func NewStrategy(cfg *Config) (Strategy, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrConfiguration)
	}

	algorithm := cfg.EffectiveAlgorithm()

	// bcrypt ignores the encoding, but a typo should still fail at startup
	if _, err := parseEncoding(cfg.Encoding, EncodingHex); err != nil {
		return nil, err
	}

	var (
		strategy Strategy
		err      error
	)
	switch strings.ToLower(algorithm) {
	case AlgorithmNone:
		strategy, err = NewPlaintext(cfg.Salt, cfg.Charset, cfg.Encoding)
	case AlgorithmBcrypt, AlgorithmAdaptive:
		var rounds int
		if rounds, err = parseLogRounds(cfg.LogRounds); err == nil {
			strategy, err = NewBcrypt(cfg.Salt, rounds)
		}
	default:
		strategy, err = NewDigest(algorithm, cfg.Salt, cfg.Charset, cfg.Encoding)
	}
	if err != nil {
		return nil, err
	}

	logging.App.Debug("Created password strategy", "strategy", strategy.Name(), "salted", cfg.Salt != "")
	return strategy, nil
}

// NewStrategyFromProperties is ParseProperties followed by NewStrategy
func NewStrategyFromProperties(props map[string]string) (Strategy, error) {
	cfg, err := ParseProperties(props)
	if err != nil {
		return nil, err
	}
	return NewStrategy(cfg)
}
