package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// DeriveKey turns a passphrase into key material for c by taking its
// SHA-256 digest, truncated to [KeySize](c) bytes.
//
// This is a fixed-length key mapping, not a password hash: it is fast by
// construction. Derive keys from low-entropy passwords with the pbkdf2
// package instead.
func DeriveKey(secret string, c Cipher) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptyKey
	}
	size := KeySize(c)
	if size < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, c)
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:size], nil
}

// randomBytes reads n bytes from r.
func randomBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("encryption: failed to generate %d random bytes: %w", n, err)
	}
	return b, nil
}

// defaultRand is the IV and nonce source unless overridden with WithRandReader.
var defaultRand io.Reader = rand.Reader
