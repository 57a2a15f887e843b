package encryption

import (
	"crypto/aes"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher names the encryption algorithm and operating mode.
// Values are lowercase, following OpenSSL naming.
type Cipher string

const (
	// AES128CBC uses AES-128 in CBC mode with PKCS#7 padding.
	AES128CBC Cipher = "aes-128-cbc"
	// AES256CBC uses AES-256 in CBC mode with PKCS#7 padding.
	AES256CBC Cipher = "aes-256-cbc"
	// AES128GCM uses AES-128 in GCM mode (AEAD).
	AES128GCM Cipher = "aes-128-gcm"
	// AES256GCM uses AES-256 in GCM mode (AEAD).
	AES256GCM Cipher = "aes-256-gcm"
	// ChaCha20Poly1305 uses the RFC 8439 AEAD construction.
	ChaCha20Poly1305 Cipher = "chacha20-poly1305"

	// DefaultCipher is used when no cipher is named.
	DefaultCipher = AES256CBC
)

// cipherSpec holds the per-cipher parameters.
type cipherSpec struct {
	keySize int  // key length in bytes
	ivSize  int  // IV (CBC) or nonce (AEAD) length in bytes
	isAEAD  bool // authenticated encryption
}

var cipherSpecs = map[Cipher]cipherSpec{
	AES128CBC:        {keySize: 16, ivSize: aes.BlockSize},
	AES256CBC:        {keySize: 32, ivSize: aes.BlockSize},
	AES128GCM:        {keySize: 16, ivSize: 12, isAEAD: true},
	AES256GCM:        {keySize: 32, ivSize: 12, isAEAD: true},
	ChaCha20Poly1305: {keySize: chacha20poly1305.KeySize, ivSize: chacha20poly1305.NonceSize, isAEAD: true},
}

// KeySize returns the key length in bytes for c, or -1 if c is unsupported.
func KeySize(c Cipher) int {
	if spec, ok := cipherSpecs[c]; ok {
		return spec.keySize
	}
	return -1
}

// IVSize returns the IV or nonce length in bytes for c, or -1 if c is
// unsupported.
func IVSize(c Cipher) int {
	if spec, ok := cipherSpecs[c]; ok {
		return spec.ivSize
	}
	return -1
}

// IsAEAD reports whether c authenticates its ciphertext.
func IsAEAD(c Cipher) bool {
	spec, ok := cipherSpecs[c]
	return ok && spec.isAEAD
}

// ValidateCipher returns [ErrUnsupportedCipher] if c is not recognised.
func ValidateCipher(c Cipher) error {
	if _, ok := cipherSpecs[c]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedCipher, c)
	}
	return nil
}
