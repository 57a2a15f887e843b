package hashing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hasbyte1/go-crypto-utils/pbkdf2"
)

const (
	// MinCalibratedIterations is the floor returned by [CalibrateIterations].
	MinCalibratedIterations = DefaultPBKDF2Iterations

	// calibrationProbes is the number of timed derivations; the fastest wins,
	// which filters out scheduler noise.
	calibrationProbes = 3

	// calibrationProbeIterations is the count used for each probe.
	calibrationProbeIterations = 10_000
)

// CalibrateIterations estimates the iteration count at which one hash with
// the given algorithm and key size takes about target on this machine.
//
// It times a few short probe derivations, keeps the fastest, and scales
// linearly. The result is never below [MinCalibratedIterations]. ctx is
// checked between probes.
func CalibrateIterations(ctx context.Context, algorithm string, keySize int, target time.Duration) (int, error) {
	if target <= 0 {
		return 0, fmt.Errorf("%w: calibration target must be positive, got %s", ErrInvalidOption, target)
	}
	a, err := pbkdf2.ParseAlgorithm(algorithm)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	if keySize <= 0 {
		return 0, fmt.Errorf("%w: key_size must be > 0, got %d", ErrInvalidOption, keySize)
	}

	password := []byte("calibration-password")
	salt := []byte("calibration-salt-calibration-salt")

	var best time.Duration
	for i := 0; i < calibrationProbes; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		start := time.Now()
		if _, err := pbkdf2.Key(string(a), password, salt, calibrationProbeIterations, keySize); err != nil {
			return 0, err
		}
		if d := time.Since(start); best == 0 || d < best {
			best = d
		}
	}

	n := MinCalibratedIterations
	if best > 0 {
		scaled := float64(calibrationProbeIterations) * float64(target) / float64(best)
		if scaled > float64(n) {
			n = int(scaled)
		}
	}

	logrus.WithFields(logrus.Fields{
		"package":    "hashing",
		"function":   "CalibrateIterations",
		"algorithm":  string(a),
		"blocks":     pbkdf2.Blocks(a, keySize),
		"probe_time": best.String(),
		"target":     target.String(),
		"iterations": n,
	}).Debug("Calibrated pbkdf2 iteration count")
	return n, nil
}
