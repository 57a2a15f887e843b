package hashing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hasbyte1/go-crypto-utils/pbkdf2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

const (
	// DefaultPBKDF2Algorithm is the default HMAC digest.
	DefaultPBKDF2Algorithm = pbkdf2.SHA256

	// DefaultPBKDF2Iterations is the default iteration count. It is kept at
	// 1000 so hashes stay interchangeable with existing stores; new
	// deployments should raise it (see [CalibrateIterations]).
	DefaultPBKDF2Iterations = 1000

	// DefaultPBKDF2SaltSize is the default number of random salt bytes.
	DefaultPBKDF2SaltSize = 24

	// DefaultPBKDF2KeySize is the default derived key length in bytes.
	DefaultPBKDF2KeySize = 24
)

// PBKDF2Options configures a [PBKDF2Hasher].
//
// Algorithm and Iterations are written into every hash, so changing them
// only affects newly produced hashes; existing hashes keep validating with
// the parameters they were created with.
type PBKDF2Options struct {
	// Algorithm is the HMAC digest. Default: [DefaultPBKDF2Algorithm].
	Algorithm pbkdf2.Algorithm

	// Iterations is the PBKDF2 iteration count. Must be > 0.
	Iterations int

	// SaltSize is the number of random salt bytes generated per hash. Must be > 0.
	SaltSize int

	// KeySize is the derived key length in bytes. Must be > 0.
	KeySize int
}

// DefaultPBKDF2Options returns sha256 / 1000 iterations / 24-byte salt /
// 24-byte key.
func DefaultPBKDF2Options() PBKDF2Options {
	return PBKDF2Options{
		Algorithm:  DefaultPBKDF2Algorithm,
		Iterations: DefaultPBKDF2Iterations,
		SaltSize:   DefaultPBKDF2SaltSize,
		KeySize:    DefaultPBKDF2KeySize,
	}
}

// ParsePBKDF2Options builds options from textual settings such as
// environment variables or config-file values. Each numeric value must be a
// decimal integer greater than zero (surrounding whitespace is ignored); an
// empty string selects the default for that field.
//
// Values like "abc", "0", "-5" or "1.5" fail with [ErrInvalidOption].
// The result still passes through [NewPBKDF2Hasher] validation.
func ParsePBKDF2Options(algorithm, iterations, saltSize, keySize string) (PBKDF2Options, error) {
	opts := DefaultPBKDF2Options()
	if strings.TrimSpace(algorithm) != "" {
		a, err := pbkdf2.ParseAlgorithm(algorithm)
		if err != nil {
			return PBKDF2Options{}, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		opts.Algorithm = a
	}
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"iterations", iterations, &opts.Iterations},
		{"salt_size", saltSize, &opts.SaltSize},
		{"key_size", keySize, &opts.KeySize},
	}
	for _, f := range fields {
		s := strings.TrimSpace(f.raw)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return PBKDF2Options{}, fmt.Errorf("%w: pbkdf2 %s must be a positive integer, got %q",
				ErrInvalidOption, f.name, f.raw)
		}
		*f.dst = n
	}
	return opts, nil
}

func validatePBKDF2Options(opts PBKDF2Options) error {
	if !opts.Algorithm.Supported() {
		return fmt.Errorf("%w: %w", ErrInvalidOption, &pbkdf2.UnsupportedAlgorithmError{Name: string(opts.Algorithm)})
	}
	if opts.Iterations <= 0 {
		return fmt.Errorf("%w: pbkdf2 iterations must be > 0, got %d", ErrInvalidOption, opts.Iterations)
	}
	if opts.SaltSize <= 0 {
		return fmt.Errorf("%w: pbkdf2 salt_size must be > 0, got %d", ErrInvalidOption, opts.SaltSize)
	}
	if opts.KeySize <= 0 {
		return fmt.Errorf("%w: pbkdf2 key_size must be > 0, got %d", ErrInvalidOption, opts.KeySize)
	}
	return nil
}

// Option customises a [PBKDF2Hasher] at construction time.
type Option func(*PBKDF2Hasher)

// WithRandReader replaces crypto/rand.Reader as the salt source. r must be
// safe for concurrent use if the hasher is shared between goroutines.
func WithRandReader(r io.Reader) Option {
	return func(h *PBKDF2Hasher) {
		if r != nil {
			h.rand = r
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PBKDF2Hasher
// ──────────────────────────────────────────────────────────────────────────────

// PBKDF2Hasher produces and validates self-describing PBKDF2 password hashes
// of the form "algorithm:iterations:salt:key" (see [PBKDF2Hash]).
//
// # Validation semantics
//
// [PBKDF2Hasher.Validate] re-derives the key with the algorithm and
// iteration count stored in the hash, not the hasher's current options, and
// compares with [SlowEquals]. Malformed, tampered or foreign hashes simply
// fail validation; they are never reported as errors.
//
// # Thread safety
//
// PBKDF2Hasher is immutable after construction and safe for concurrent use.
type PBKDF2Hasher struct {
	opts PBKDF2Options
	rand io.Reader
}

// NewPBKDF2Hasher constructs a PBKDF2Hasher, failing immediately with
// [ErrInvalidOption] if any option is out of range.
func NewPBKDF2Hasher(opts PBKDF2Options, options ...Option) (*PBKDF2Hasher, error) {
	if err := validatePBKDF2Options(opts); err != nil {
		logrus.WithFields(logrus.Fields{
			"package":  "hashing",
			"function": "NewPBKDF2Hasher",
			"error":    err.Error(),
		}).Debug("Rejected pbkdf2 options")
		return nil, err
	}
	h := &PBKDF2Hasher{opts: opts, rand: rand.Reader}
	for _, o := range options {
		o(h)
	}
	return h, nil
}

// Driver returns [DriverPBKDF2].
func (h *PBKDF2Hasher) Driver() DriverName { return DriverPBKDF2 }

// Options returns the current parameter set.
func (h *PBKDF2Hasher) Options() PBKDF2Options { return h.opts }

// Hash derives a key from password under a fresh random salt and returns the
// encoded hash. It fails only if the random source fails or password is
// empty ([pbkdf2.ErrEmptyPassword]).
func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	raw := make([]byte, h.opts.SaltSize)
	if _, err := io.ReadFull(h.rand, raw); err != nil {
		return "", fmt.Errorf("hashing: pbkdf2: failed to generate salt: %w", err)
	}
	salt := base64.StdEncoding.EncodeToString(raw)

	key, err := pbkdf2.Key(string(h.opts.Algorithm), []byte(password), []byte(salt),
		h.opts.Iterations, h.opts.KeySize)
	if err != nil {
		return "", fmt.Errorf("hashing: pbkdf2: %w", err)
	}

	encoded := &PBKDF2Hash{
		Algorithm:  h.opts.Algorithm,
		Iterations: h.opts.Iterations,
		Salt:       salt,
		Key:        key,
	}
	return encoded.String(), nil
}

// Validate reports whether password matches encoded.
//
// false is returned for a mismatch and for every kind of unusable input:
// wrong field count, unsupported digest, non-positive or non-numeric
// iteration count, invalid key base64, or an empty password.
func (h *PBKDF2Hasher) Validate(password, encoded string) bool {
	p, err := ParsePBKDF2Hash(encoded)
	if err != nil {
		return false
	}
	candidate, err := pbkdf2.Key(string(p.Algorithm), []byte(password), []byte(p.Salt),
		p.Iterations, len(p.Key))
	if err != nil {
		return false
	}
	return SlowEquals(candidate, p.Key)
}

// Make implements [Hasher]; it is [PBKDF2Hasher.Hash].
func (h *PBKDF2Hasher) Make(password string) (string, error) {
	return h.Hash(password)
}

// Check implements [Hasher]. The error is always nil; see
// [PBKDF2Hasher.Validate].
func (h *PBKDF2Hasher) Check(password, hash string) (bool, error) {
	return h.Validate(password, hash), nil
}

// NeedsRehash reports whether hash was produced with a different algorithm,
// iteration count, salt size or key size than the current options.
func (h *PBKDF2Hasher) NeedsRehash(hash string) (bool, error) {
	p, err := ParsePBKDF2Hash(hash)
	if err != nil {
		return false, err
	}
	return p.Algorithm != h.opts.Algorithm ||
		p.Iterations != h.opts.Iterations ||
		p.SaltSize() != h.opts.SaltSize ||
		len(p.Key) != h.opts.KeySize, nil
}

// Info returns the parameters encoded in hash.
//
// Returned [HashInfo].Params:
//   - "algorithm"  → string
//   - "iterations" → int
//   - "salt_len"   → int (-1 if the salt field is not base64)
//   - "key_len"    → int
func (h *PBKDF2Hasher) Info(hash string) (HashInfo, error) {
	p, err := ParsePBKDF2Hash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverPBKDF2,
		Params: map[string]any{
			"algorithm":  string(p.Algorithm),
			"iterations": p.Iterations,
			"salt_len":   p.SaltSize(),
			"key_len":    len(p.Key),
		},
	}, nil
}
