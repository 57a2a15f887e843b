package pbkdf2

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"
	xpbkdf2 "golang.org/x/crypto/pbkdf2"
)

// Key derives keyLen bytes from password and salt using PBKDF2 with
// HMAC-<algorithm> as the pseudorandom function, as specified by PKCS #5
// v2.0 (RFC 2898 §5.2).
//
// algorithm is matched case-insensitively against [Algorithms]. For every
// output block i the function computes U1 = HMAC(password, salt || INT(i))
// followed by iterations-1 further chained HMACs, XORs them together, and
// finally truncates the concatenated blocks to exactly keyLen bytes. The
// full iteration cost is paid on every call.
//
// Errors: [ErrEmptyPassword], [ErrUnsupportedAlgorithm],
// [ErrInvalidIterations], [ErrInvalidKeyLength], checked in that order.
func Key(algorithm string, password, salt []byte, iterations, keyLen int) ([]byte, error) {
	a, err := validate(algorithm, password, iterations, keyLen)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"package":    "pbkdf2",
			"function":   "Key",
			"algorithm":  algorithm,
			"iterations": iterations,
			"key_len":    keyLen,
			"error":      err.Error(),
		}).Debug("Rejected key derivation input")
		return nil, err
	}
	return derive(a, password, salt, iterations, keyLen), nil
}

// KeyHex is [Key] with the derived bytes rendered as lowercase hexadecimal.
// The returned string is 2*keyLen characters long.
func KeyHex(algorithm string, password, salt []byte, iterations, keyLen int) (string, error) {
	k, err := Key(algorithm, password, salt, iterations, keyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(k), nil
}

func validate(algorithm string, password []byte, iterations, keyLen int) (Algorithm, error) {
	if len(password) == 0 {
		return "", ErrEmptyPassword
	}
	a, err := ParseAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	if iterations <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}
	if keyLen <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidKeyLength, keyLen)
	}
	return a, nil
}

// derive runs the block loop on already-validated input.
func derive(a Algorithm, password, salt []byte, iterations, keyLen int) []byte {
	return xpbkdf2.Key(password, salt, iterations, keyLen, digests[a].newHash)
}

// Blocks returns the number of PRF output blocks needed for keyLen bytes
// under a, i.e. ceil(keyLen / a.Size()). It returns 0 for an unsupported
// algorithm or a non-positive keyLen.
func Blocks(a Algorithm, keyLen int) int {
	size := a.Size()
	if size == 0 || keyLen <= 0 {
		return 0
	}
	return (keyLen + size - 1) / size
}
