package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	h, err := hashing.NewPBKDF2Hasher(opts)
//	if errors.Is(err, hashing.ErrInvalidOption) {
//	    // configuration must be fixed before retrying
//	}
//
// A password that does not match is never an error: [PBKDF2Hasher.Validate]
// and [PBKDF2Hasher.Check] report it as false.
var (
	// ErrInvalidHash is returned by Info / NeedsRehash when a hash string
	// cannot be parsed: wrong field count, bad integer, unsupported digest,
	// or invalid base64.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a constructor receives a parameter
	// outside the allowed range, or a numeric setting that does not parse as
	// a positive integer.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrDriverNotFound is returned by [Manager.Driver] or indirectly by
	// [Manager.Make] / [Manager.Check] when the requested driver has not been
	// registered.
	ErrDriverNotFound = errors.New("hashing: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] for "".
	ErrEmptyDriverName = errors.New("hashing: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] for a nil [Hasher].
	ErrNilHasher = errors.New("hashing: hasher must not be nil")

	// ErrAlgorithmMismatch is returned when a hash belongs to a different
	// driver than the one asked to handle it.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
