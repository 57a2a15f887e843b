// Package encryption provides reversible, passphrase-keyed symmetric
// encryption of short strings.
//
// A [PassphraseCipher] maps a secret to a key with [DeriveKey] (SHA-256,
// truncated to the cipher's key size) and encrypts under a fresh random IV
// or nonce on every call. The payload is
//
//	base64( iv || ciphertext )
//
// using the standard padded alphabet. CBC ciphers pad with PKCS#7, which is
// removed exactly on decryption, so trailing whitespace in the plaintext
// survives a round trip.
//
// # Ciphers
//
//   - aes-128-cbc, aes-256-cbc (default)
//   - aes-128-gcm, aes-256-gcm
//   - chacha20-poly1305
//
// CBC payloads are not authenticated. Prefer an AEAD cipher whenever the
// payload may be tampered with.
//
// # Quick start
//
//	c, err := encryption.NewPassphraseCipher(os.Getenv("APP_SECRET"), encryption.AES256GCM)
//	if err != nil { ... }
//	token, err := c.EncryptString("user@example.com")
//	plain, err := c.DecryptString(token)
//
// This package does not hash passwords. For credential storage use the
// hashing package.
package encryption
