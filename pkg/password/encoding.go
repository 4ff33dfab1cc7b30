package password

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/mmcdole/sqlrealm/pkg/logging"
)

// Encoding selects how hash bytes are rendered as text
type Encoding string

const (
	// EncodingRaw keeps the bytes as charset-decoded text (plaintext only)
	EncodingRaw Encoding = "raw"
	// EncodingHex renders bytes as upper-case hexadecimal
	EncodingHex Encoding = "hex"
	// EncodingBase64 renders bytes as padded standard base64
	EncodingBase64 Encoding = "base64"
)

// parseEncoding resolves a configured encoding name, using fallback when blank
func parseEncoding(name string, fallback Encoding) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return fallback, nil
	case "hex":
		return EncodingHex, nil
	case "base64":
		return EncodingBase64, nil
	case "raw", "none":
		return EncodingRaw, nil
	}
	return "", fmt.Errorf("%w: unknown encoding %q", ErrInvalidParameter, name)
}

func (e Encoding) encode(b []byte) string {
	if e == EncodingBase64 {
		return base64.StdEncoding.EncodeToString(b)
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

// decode accepts hex in either case
func (e Encoding) decode(s string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if e == EncodingBase64 {
		b, err = base64.StdEncoding.DecodeString(s)
	} else {
		b, err = hex.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: not valid %s: %v", ErrInvalidInput, e, err)
	}
	return b, nil
}

// Charset converts password text to bytes and back
type Charset struct {
	name string
	enc  encoding.Encoding
}

// DefaultCharset is used when no charset is configured or the name is unknown
var DefaultCharset = Charset{name: "UTF-8", enc: unicode.UTF8}

// LookupCharset resolves an IANA (or WHATWG) charset name. Unknown names
// fall back to DefaultCharset.
func LookupCharset(name string) Charset {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCharset
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		if canonical, err := ianaindex.IANA.Name(enc); err == nil {
			name = canonical
		}
		return Charset{name: name, enc: enc}
	}
	if enc, err := htmlindex.Get(name); err == nil {
		if canonical, err := htmlindex.Name(enc); err == nil {
			name = canonical
		}
		return Charset{name: name, enc: enc}
	}

	logging.App.Warn("Unknown charset, using default", "charset", name, "default", DefaultCharset.name)
	return DefaultCharset
}

// Name returns the canonical charset name
func (c Charset) Name() string {
	return c.name
}

// Bytes encodes s. Characters the charset cannot represent become '?'.
func (c Charset) Bytes(s string) []byte {
	if b, err := c.enc.NewEncoder().Bytes([]byte(s)); err == nil {
		return b
	}

	var sb strings.Builder
	for _, r := range s {
		if _, err := c.enc.NewEncoder().String(string(r)); err != nil {
			sb.WriteByte('?')
			continue
		}
		sb.WriteRune(r)
	}
	b, err := c.enc.NewEncoder().Bytes([]byte(sb.String()))
	if err != nil {
		return []byte(sb.String())
	}
	return b
}

// String decodes b back to text
func (c Charset) String(b []byte) string {
	s, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
