// Package pbkdf2 derives key material from passwords with PBKDF2
// (PKCS #5 v2.0, RFC 2898).
//
// The digest driving HMAC is selected by name from a fixed, enumerated set
// (see [Algorithms]). Names are canonicalised once, in [ParseAlgorithm], so
// "SHA256", " sha256 " and "sha256" all select [SHA256]; anything outside the
// set is rejected with an [*UnsupportedAlgorithmError].
//
// # Quick start
//
//	key, err := pbkdf2.Key("sha256", []byte("pa$$word"), salt, 100_000, 32)
//	hexKey, err := pbkdf2.KeyHex("sha256", []byte("pa$$word"), salt, 100_000, 32)
//
// # Cost
//
// Every output block costs one HMAC per iteration. The work is intentional:
// raise the iteration count until a single derivation takes as long as your
// login path can tolerate (see hashing.CalibrateIterations).
//
// # Differences from RFC 2898
//
// An empty password is rejected with [ErrEmptyPassword].
package pbkdf2
