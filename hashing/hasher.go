package hashing

import "strings"

// DriverName identifies a hashing algorithm driver.
type DriverName string

const (
	// DriverPBKDF2 selects the self-describing PBKDF2 driver (the default).
	DriverPBKDF2 DriverName = "pbkdf2"
	// DriverBcrypt selects the bcrypt driver, kept for verifying legacy hashes.
	DriverBcrypt DriverName = "bcrypt"
)

// Hasher is the interface satisfied by every password-hashing driver.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh random salt is generated for every call, so two calls with the
	// same password produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches a previously encoded hash.
	// Comparison is performed in constant time.
	//
	// Whether a malformed hash is reported as (false, nil) or as an error is
	// driver specific; [PBKDF2Hasher] never returns an error from Check.
	Check(password, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced with parameters that
	// differ from the hasher's current configuration. Callers should re-hash
	// on the next successful login when this returns true.
	NeedsRehash(hash string) (bool, error)

	// Info extracts the parameters encoded in hash without verifying it.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the hashing algorithm family that produced the hash.
	Driver DriverName

	// Params holds driver-specific parameters.
	//
	// For pbkdf2:
	//   "algorithm"  → string
	//   "iterations" → int
	//   "salt_len"   → int (bytes)
	//   "key_len"    → int (bytes)
	//
	// For bcrypt:
	//   "cost" → int
	Params map[string]any
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it. It does not verify the hash.
//
// A PBKDF2 hash is recognised when it has exactly four colon-separated
// fields and its first field names a supported digest.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	}
	if _, err := ParsePBKDF2Hash(hash); err == nil {
		return DriverPBKDF2, true
	}
	return "", false
}
