package password

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"
	"strings"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"

	"github.com/mmcdole/sqlrealm/pkg/logging"
)

type digestAlgorithm struct {
	name string
	new  func() hash.Hash
}

// digestAlgorithms is keyed by upper-case name with hyphens removed, so
// "sha-256", "SHA256" and "SHA-256" resolve to the same entry
var digestAlgorithms = map[string]digestAlgorithm{
	"MD5":        {"MD5", md5.New},
	"SHA":        {"SHA-1", sha1.New},
	"SHA1":       {"SHA-1", sha1.New},
	"SHA224":     {"SHA-224", sha256.New224},
	"SHA256":     {"SHA-256", sha256simd.New},
	"SHA384":     {"SHA-384", sha512.New384},
	"SHA512":     {"SHA-512", sha512.New},
	"SHA512/224": {"SHA-512/224", sha512.New512_224},
	"SHA512/256": {"SHA-512/256", sha512.New512_256},
	"SHA3224":    {"SHA3-224", sha3.New224},
	"SHA3256":    {"SHA3-256", sha3.New256},
	"SHA3384":    {"SHA3-384", sha3.New384},
	"SHA3512":    {"SHA3-512", sha3.New512},
}

func lookupDigest(name string) (digestAlgorithm, bool) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	alg, ok := digestAlgorithms[key]
	return alg, ok
}

// Digest hashes salted passwords with a message digest
type Digest struct {
	algorithm digestAlgorithm
	salt      string
	charset   Charset
	encoding  Encoding
}

// NewDigest returns a Digest strategy for the named algorithm. A blank
// algorithm selects SHA-256 and a blank encoding selects hex.
func NewDigest(algorithm, salt, charset, encoding string) (*Digest, error) {
	if strings.TrimSpace(algorithm) == "" {
		algorithm = DefaultDigest
	}
	alg, ok := lookupDigest(algorithm)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	enc, err := parseEncoding(encoding, EncodingHex)
	if err != nil {
		return nil, err
	}
	if enc == EncodingRaw {
		return nil, fmt.Errorf("%w: %s digests cannot use raw encoding", ErrInvalidParameter, alg.name)
	}

	d := &Digest{
		algorithm: alg,
		salt:      salt,
		charset:   LookupCharset(charset),
		encoding:  enc,
	}
	logging.App.Debug("Configured digest", "algorithm", alg.name, "charset", d.charset.Name(), "encoding", enc)
	return d, nil
}

// Name implements Strategy and returns the canonical digest name
func (d *Digest) Name() string {
	return d.algorithm.name
}

// Encoding returns the text encoding of stored digests
func (d *Digest) Encoding() Encoding {
	return d.encoding
}

// Hash implements Strategy
func (d *Digest) Hash(password string) (string, error) {
	return d.encoding.encode(d.sum(password)), nil
}

// Verify implements Strategy
func (d *Digest) Verify(password, storedHash string) (bool, error) {
	stored, err := d.encoding.decode(strings.TrimSpace(storedHash))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(d.sum(password), stored) == 1, nil
}

func (d *Digest) sum(password string) []byte {
	h := d.algorithm.new()
	h.Write(d.charset.Bytes(password + d.salt))
	return h.Sum(nil)
}
