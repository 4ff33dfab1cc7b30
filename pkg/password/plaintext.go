package password

import (
	"crypto/subtle"

	"github.com/mmcdole/sqlrealm/pkg/logging"
)

// Plaintext stores passwords without hashing. It exists for legacy stores
// and migrations and should never be the default.
type Plaintext struct {
	salt     string
	charset  Charset
	encoding Encoding
}

// NewPlaintext returns a Plaintext strategy. A blank encoding keeps the
// salted password as text.
func NewPlaintext(salt, charset, encoding string) (*Plaintext, error) {
	enc, err := parseEncoding(encoding, EncodingRaw)
	if err != nil {
		return nil, err
	}
	p := &Plaintext{
		salt:     salt,
		charset:  LookupCharset(charset),
		encoding: enc,
	}
	logging.App.Debug("Configured plaintext passwords", "charset", p.charset.Name(), "encoding", enc)
	return p, nil
}

// Name implements Strategy
func (p *Plaintext) Name() string {
	return AlgorithmNone
}

// Hash implements Strategy
func (p *Plaintext) Hash(password string) (string, error) {
	return p.render(password), nil
}

// Verify implements Strategy
func (p *Plaintext) Verify(password, storedHash string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(p.render(password)), []byte(storedHash)) == 1, nil
}

func (p *Plaintext) render(password string) string {
	b := p.charset.Bytes(password + p.salt)
	if p.encoding == EncodingRaw {
		return p.charset.String(b)
	}
	return p.encoding.encode(b)
}
