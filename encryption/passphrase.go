package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/chacha20poly1305"
)

// Option customises a [PassphraseCipher] at construction time.
type Option func(*PassphraseCipher)

// WithRandReader replaces crypto/rand.Reader as the IV and nonce source. It
// exists for tests; production code should keep the default.
func WithRandReader(r io.Reader) Option {
	return func(p *PassphraseCipher) {
		if r != nil {
			p.rand = r
		}
	}
}

// PassphraseCipher encrypts and decrypts values under a key derived from a
// passphrase. It is immutable after construction and safe for concurrent
// use, provided the random source is.
type PassphraseCipher struct {
	c    Cipher
	key  []byte
	rand io.Reader
}

var _ Encrypter = (*PassphraseCipher)(nil)

// NewPassphraseCipher derives a key from secret for cipher c. An empty c
// selects [DefaultCipher].
//
// It returns [ErrEmptyKey] for an empty secret and [ErrUnsupportedCipher]
// for an unknown cipher.
func NewPassphraseCipher(secret string, c Cipher, opts ...Option) (*PassphraseCipher, error) {
	if c == "" {
		c = DefaultCipher
	}
	if err := ValidateCipher(c); err != nil {
		return nil, err
	}
	key, err := DeriveKey(secret, c)
	if err != nil {
		return nil, err
	}
	p := &PassphraseCipher{c: c, key: key, rand: defaultRand}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// GetCipher returns the configured cipher.
func (p *PassphraseCipher) GetCipher() Cipher { return p.c }

// Encrypt encrypts value under a fresh IV or nonce and returns the base64
// encoding of iv||ciphertext. Encrypting the same value twice yields
// different payloads.
func (p *PassphraseCipher) Encrypt(value []byte) ([]byte, error) {
	iv, err := randomBytes(p.rand, IVSize(p.c))
	if err != nil {
		return nil, err
	}

	var ct []byte
	if IsAEAD(p.c) {
		aead, err := p.aead()
		if err != nil {
			return nil, err
		}
		ct = aead.Seal(nil, iv, value, nil)
	} else {
		block, err := aes.NewCipher(p.key)
		if err != nil {
			return nil, fmt.Errorf("encryption: aes: %w", err)
		}
		padded := pkcs7Pad(value, aes.BlockSize)
		ct = make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	}

	raw := make([]byte, 0, len(iv)+len(ct))
	raw = append(raw, iv...)
	raw = append(raw, ct...)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// EncryptString is a string convenience wrapper around Encrypt.
func (p *PassphraseCipher) EncryptString(value string) (string, error) {
	out, err := p.Encrypt([]byte(value))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Decrypt reverses [PassphraseCipher.Encrypt].
//
// It returns [ErrInvalidPayload] when payload is not base64 or is too short
// to hold an IV, and [ErrDecryptionFailed] when the ciphertext is
// misaligned, the padding is malformed, or authentication fails.
func (p *PassphraseCipher) Decrypt(payload []byte) ([]byte, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
	n, err := base64.StdEncoding.Decode(raw, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	raw = raw[:n]

	ivSize := IVSize(p.c)
	if len(raw) < ivSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d-byte iv", ErrInvalidPayload, len(raw), ivSize)
	}
	iv, ct := raw[:ivSize], raw[ivSize:]

	plain, err := p.open(iv, ct)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"package":  "encryption",
			"function": "Decrypt",
			"cipher":   string(p.c),
			"error":    err.Error(),
		}).Debug("Payload failed to decrypt")
		return nil, err
	}
	return plain, nil
}

// DecryptString is a string convenience wrapper around Decrypt.
func (p *PassphraseCipher) DecryptString(payload string) (string, error) {
	out, err := p.Decrypt([]byte(payload))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (p *PassphraseCipher) open(iv, ct []byte) ([]byte, error) {
	if IsAEAD(p.c) {
		aead, err := p.aead()
		if err != nil {
			return nil, err
		}
		plain, err := aead.Open(nil, iv, ct, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
		}
		return plain, nil
	}

	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			ErrDecryptionFailed, len(ct), aes.BlockSize)
	}
	block, err := aes.NewCipher(p.key)
	if err != nil {
		return nil, fmt.Errorf("encryption: aes: %w", err)
	}
	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)
	return pkcs7Unpad(plain, aes.BlockSize)
}

func (p *PassphraseCipher) aead() (cipher.AEAD, error) {
	if p.c == ChaCha20Poly1305 {
		aead, err := chacha20poly1305.New(p.key)
		if err != nil {
			return nil, fmt.Errorf("encryption: chacha20poly1305: %w", err)
		}
		return aead, nil
	}
	block, err := aes.NewCipher(p.key)
	if err != nil {
		return nil, fmt.Errorf("encryption: aes: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: gcm: %w", err)
	}
	return aead, nil
}
