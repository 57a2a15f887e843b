package pbkdf2

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Key] and [KeyHex]. Each input rejection is
// reported separately and nothing is silently corrected.
//
//	_, err := pbkdf2.Key("sha256", pw, salt, 0, 32)
//	if errors.Is(err, pbkdf2.ErrInvalidIterations) {
//	    // fix the iteration count
//	}
var (
	// ErrEmptyPassword is returned for a nil or zero-length password.
	// RFC 2898 allows an empty password; this package does not.
	ErrEmptyPassword = errors.New("pbkdf2: password must not be empty")

	// ErrUnsupportedAlgorithm is matched by every [*UnsupportedAlgorithmError].
	ErrUnsupportedAlgorithm = errors.New("pbkdf2: unsupported digest algorithm")

	// ErrInvalidIterations is returned when the iteration count is not positive.
	ErrInvalidIterations = errors.New("pbkdf2: iteration count must be positive")

	// ErrInvalidKeyLength is returned when the requested key length is not positive.
	ErrInvalidKeyLength = errors.New("pbkdf2: key length must be positive")
)

// UnsupportedAlgorithmError records the identifier that failed to resolve to
// a supported [Algorithm].
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedAlgorithm, e.Name)
}

// Is makes errors.Is(err, ErrUnsupportedAlgorithm) succeed.
func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}
