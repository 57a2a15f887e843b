package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-crypto-utils/pbkdf2"
)

const (
	pbkdf2FieldSep   = ":"
	pbkdf2FieldCount = 4
)

// PBKDF2Hash is the decoded form of a self-describing PBKDF2 hash string:
//
//	sha256:1000:lGWhVGUVxQArXgfOckPmJCVZD0l0cYPT:9UMoX8p10AgI7wd1bkvqjuRzTSXv6YF7
//	└─┬──┘ └┬─┘ └──────────────┬───────────────┘ └──────────────┬───────────────┘
//	algorithm iterations     salt (base64)                 derived key (base64)
//
// The salt field is carried exactly as it appears in the string. It is the
// base64 text, not the decoded bytes, that is fed to PBKDF2 as the salt, which
// keeps hashes interchangeable with existing stores using this format.
type PBKDF2Hash struct {
	Algorithm  pbkdf2.Algorithm
	Iterations int
	Salt       string
	Key        []byte
}

// ParsePBKDF2Hash splits encoded into its four fields.
//
// It fails with [ErrInvalidHash] when the field count is not four, the
// iteration count is not a positive decimal integer, the digest is not
// supported, or the key is not valid standard base64. The salt field is not
// decoded.
func ParsePBKDF2Hash(encoded string) (*PBKDF2Hash, error) {
	fields := strings.Split(encoded, pbkdf2FieldSep)
	if len(fields) != pbkdf2FieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d",
			ErrInvalidHash, pbkdf2FieldCount, len(fields))
	}

	alg, err := pbkdf2.ParseAlgorithm(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	iterations, err := strconv.Atoi(fields[1])
	if err != nil || iterations <= 0 {
		return nil, fmt.Errorf("%w: iteration count %q is not a positive integer",
			ErrInvalidHash, fields[1])
	}

	key, err := base64.StdEncoding.DecodeString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid key base64: %v", ErrInvalidHash, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty derived key", ErrInvalidHash)
	}

	return &PBKDF2Hash{
		Algorithm:  alg,
		Iterations: iterations,
		Salt:       fields[2],
		Key:        key,
	}, nil
}

// String renders h in the four-field format.
func (h *PBKDF2Hash) String() string {
	return string(h.Algorithm) + pbkdf2FieldSep +
		strconv.Itoa(h.Iterations) + pbkdf2FieldSep +
		h.Salt + pbkdf2FieldSep +
		base64.StdEncoding.EncodeToString(h.Key)
}

// SaltSize returns the number of random bytes behind the salt field, or -1
// if the field is not valid standard base64.
func (h *PBKDF2Hash) SaltSize() int {
	raw, err := base64.StdEncoding.DecodeString(h.Salt)
	if err != nil {
		return -1
	}
	return len(raw)
}

// Suffix returns the last field of an encoded PBKDF2 hash, the base64
// derived key, or "" if encoded has no field separator.
//
// Storing only the suffix (for example in a cookie) keeps the algorithm,
// iteration count and salt out of low-trust storage, at the price that the
// suffix alone cannot be validated: the caller must keep the other three
// fields elsewhere and reassemble the full hash.
func Suffix(encoded string) string {
	i := strings.LastIndex(encoded, pbkdf2FieldSep)
	if i < 0 {
		return ""
	}
	return encoded[i+1:]
}
