// Package hashing provides self-describing password hashing built on PBKDF2,
// plus a driver registry for running several hash formats side by side.
//
// # Hash format
//
// [PBKDF2Hasher] encodes every hash as four colon-separated fields:
//
//	sha256:1000:lGWhVGUVxQArXgfOckPmJCVZD0l0cYPT:9UMoX8p10AgI7wd1bkvqjuRzTSXv6YF7
//
// digest, iteration count, base64 salt, base64 derived key. Because the
// parameters travel with the hash, the digest or iteration count can be
// raised at any time; old hashes keep validating under the parameters they
// were created with, and [PBKDF2Hasher.NeedsRehash] tells you when to
// upgrade one.
//
// # Quick start
//
//	h, err := hashing.NewPBKDF2Hasher(hashing.DefaultPBKDF2Options())
//	if err != nil { log.Fatal(err) }
//
//	stored, _ := h.Hash("pa$$word")
//	h.Validate("pa$$word", stored)      // true
//	h.Validate("notmypassword", stored) // false
//
// # Failure model
//
//   - Bad configuration fails construction with [ErrInvalidOption].
//   - A wrong password, or a malformed, tampered or foreign hash, makes
//     [PBKDF2Hasher.Validate] return false. It never returns an error, so
//     login code needs no error branch on the common path.
//
// # Constant-time comparison
//
// Derived keys are compared with [SlowEquals], whose running time depends
// only on the two input lengths.
//
// # Drivers
//
// The [Hasher] interface is implemented by [PBKDF2Hasher] and
// [BcryptHasher]. A [Manager] registers named drivers, designates a default,
// and can detect which driver produced a stored hash ([DetectDriver]),
// which is how a bcrypt store is migrated to PBKDF2.
package hashing
