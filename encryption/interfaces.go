package encryption

// Encrypter is the interface satisfied by the passphrase cipher in this
// package. Consumers can depend on it rather than on [PassphraseCipher] so
// that tests may substitute a fake.
type Encrypter interface {
	// Encrypt encrypts arbitrary bytes and returns the base64 payload.
	Encrypt(value []byte) ([]byte, error)

	// EncryptString is a convenience wrapper around Encrypt for string values.
	EncryptString(value string) (string, error)

	// Decrypt reverses Encrypt and returns the original plaintext bytes.
	Decrypt(payload []byte) ([]byte, error)

	// DecryptString is a convenience wrapper around Decrypt for string values.
	DecryptString(payload string) (string, error)

	// GetCipher returns the cipher identifier used by this encrypter.
	GetCipher() Cipher
}
