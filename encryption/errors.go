package encryption

import "errors"

// Sentinel errors returned by encryption operations.
//
// Callers should use errors.Is for comparisons:
//
//	_, err := c.DecryptString(payload)
//	if errors.Is(err, encryption.ErrDecryptionFailed) {
//	    // wrong passphrase or tampered payload
//	}
var (
	// ErrInvalidPayload is returned when a payload is not valid base64 or is
	// too short to contain an IV/nonce.
	ErrInvalidPayload = errors.New("encryption: invalid payload")

	// ErrDecryptionFailed is returned when the ciphertext cannot be
	// decrypted: its length is not a multiple of the block size, PKCS#7
	// padding is malformed, or AEAD authentication fails.
	//
	// For CBC ciphers a wrong passphrase usually, but not always, surfaces
	// as bad padding; use an AEAD cipher when tampering must be detected.
	ErrDecryptionFailed = errors.New("encryption: decryption failed")

	// ErrUnsupportedCipher is returned when an unrecognised cipher name is used.
	ErrUnsupportedCipher = errors.New("encryption: unsupported cipher")

	// ErrEmptyKey is returned when the secret is empty.
	ErrEmptyKey = errors.New("encryption: key must not be empty")
)
