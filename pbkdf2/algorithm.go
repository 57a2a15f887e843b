package pbkdf2

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Algorithm names a digest usable as the HMAC pseudorandom function.
// Values are the canonical lowercase identifiers that appear in encoded
// password hashes (e.g. "sha256").
type Algorithm string

const (
	MD5        Algorithm = "md5"
	SHA1       Algorithm = "sha1"
	SHA224     Algorithm = "sha224"
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA512_224 Algorithm = "sha512/224"
	SHA512_256 Algorithm = "sha512/256"
	SHA3_224   Algorithm = "sha3-224"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_384   Algorithm = "sha3-384"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b256 Algorithm = "blake2b-256"
	BLAKE2b384 Algorithm = "blake2b-384"
	BLAKE2b512 Algorithm = "blake2b-512"
	BLAKE2s256 Algorithm = "blake2s-256"
)

// digest pairs a hash constructor with its output size in bytes.
type digest struct {
	newHash func() hash.Hash
	size    int
}

var digests = map[Algorithm]digest{
	MD5:        {md5.New, md5.Size},
	SHA1:       {sha1.New, sha1.Size},
	SHA224:     {sha256.New224, sha256.Size224},
	SHA256:     {sha256.New, sha256.Size},
	SHA384:     {sha512.New384, sha512.Size384},
	SHA512:     {sha512.New, sha512.Size},
	SHA512_224: {sha512.New512_224, sha512.Size224},
	SHA512_256: {sha512.New512_256, sha512.Size256},
	SHA3_224:   {sha3.New224, 28},
	SHA3_256:   {sha3.New256, 32},
	SHA3_384:   {sha3.New384, 48},
	SHA3_512:   {sha3.New512, 64},
	BLAKE2b256: {unkeyed(blake2b.New256), blake2b.Size256},
	BLAKE2b384: {unkeyed(blake2b.New384), blake2b.Size384},
	BLAKE2b512: {unkeyed(blake2b.New512), blake2b.Size},
	BLAKE2s256: {unkeyed(blake2s.New256), blake2s.Size},
}

// unkeyed adapts a BLAKE2 constructor, which accepts an optional MAC key, to
// a plain hash constructor. A nil key never produces an error.
func unkeyed(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic("pbkdf2: unkeyed blake2 constructor failed: " + err.Error())
		}
		return h
	}
}

// ParseAlgorithm canonicalises name (surrounding whitespace removed,
// lowercased) and returns the matching [Algorithm].
//
// An identifier outside the supported set yields an
// [*UnsupportedAlgorithmError], which matches [ErrUnsupportedAlgorithm]
// under [errors.Is].
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := digests[a]; !ok {
		return "", &UnsupportedAlgorithmError{Name: name}
	}
	return a, nil
}

// Supported reports whether a is in the supported digest set.
// The comparison is exact; use [ParseAlgorithm] for user input.
func (a Algorithm) Supported() bool {
	_, ok := digests[a]
	return ok
}

// New returns a fresh hash.Hash for a. It panics if a is unsupported, so
// callers holding unvalidated input should go through [ParseAlgorithm].
func (a Algorithm) New() hash.Hash {
	d, ok := digests[a]
	if !ok {
		panic("pbkdf2: unsupported algorithm " + string(a))
	}
	return d.newHash()
}

// Size returns the digest output length in bytes, or 0 if a is unsupported.
func (a Algorithm) Size() int {
	return digests[a].size
}

// String implements fmt.Stringer.
func (a Algorithm) String() string { return string(a) }

// Algorithms returns every supported algorithm in lexical order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(digests))
	for a := range digests {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
