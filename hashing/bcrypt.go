package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the bcrypt work factor used by [DefaultBcryptOptions].
const DefaultBcryptCost = 12

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the logarithmic work factor, in [bcrypt.MinCost, bcrypt.MaxCost].
	Cost int
}

// DefaultBcryptOptions returns BcryptOptions with [DefaultBcryptCost].
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost}
}

// BcryptHasher verifies and produces bcrypt hashes.
//
// It exists so that stores migrating to PBKDF2 can keep accepting their
// bcrypt hashes: register it next to the PBKDF2 driver in a [Manager] and
// use [Manager.CheckWithDetect] plus [Manager.NeedsRehash] to upgrade users
// as they log in.
//
// BcryptHasher is immutable and safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns [ErrInvalidOption] if Cost is out of range.
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: opts.Cost}, nil
}

// Driver returns [DriverBcrypt].
func (h *BcryptHasher) Driver() DriverName { return DriverBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Make returns a Modular Crypt Format bcrypt hash ("$2a$12$…").
// bcrypt rejects passwords longer than 72 bytes.
func (h *BcryptHasher) Make(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: %w", err)
	}
	return string(out), nil
}

// Check returns (false, nil) on mismatch and an error only for a hash that
// is not bcrypt or cannot be parsed.
func (h *BcryptHasher) Check(password, hash string) (bool, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// NeedsRehash reports whether the stored cost differs from the configured one.
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	cost, err := h.storedCost(hash)
	if err != nil {
		return false, err
	}
	return cost != h.cost, nil
}

// Info returns {"cost": int}.
func (h *BcryptHasher) Info(hash string) (HashInfo, error) {
	cost, err := h.storedCost(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{Driver: DriverBcrypt, Params: map[string]any{"cost": cost}}, nil
}

func (h *BcryptHasher) storedCost(hash string) (int, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return 0, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost, nil
}
