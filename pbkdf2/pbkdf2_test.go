package pbkdf2_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-crypto-utils/pbkdf2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Known-answer vectors
// ──────────────────────────────────────────────────────────────────────────────

// RFC 6070 (HMAC-SHA1) and the widely published PBKDF2-HMAC-SHA256 set.
var vectors = []struct {
	name       string
	algorithm  string
	password   string
	salt       string
	iterations int
	keyLen     int
	want       string
}{
	{"rfc6070 #1", "sha1", "password", "salt", 1, 20, "0c60c80f961f0e71f3a9b524af6012062fe037a6"},
	{"rfc6070 #2", "sha1", "password", "salt", 2, 20, "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957"},
	{"rfc6070 #3", "sha1", "password", "salt", 4096, 20, "4b007901b765489abead49d926f721d065a429c1"},
	{"rfc6070 #5", "sha1", "passwordPASSWORDpassword", "saltSALTsaltSALTsaltSALTsaltSALTsalt", 4096, 25,
		"3d2eec4fe41c849b80c8d83662c0e44a8b291a964cf2f07038"},
	{"rfc6070 #6", "sha1", "pass\x00word", "sa\x00lt", 4096, 16, "56fa6aa75548099dcc37d7f03425e0c3"},
	{"sha256 c=1", "sha256", "password", "salt", 1, 32,
		"120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"},
	{"sha256 c=2", "sha256", "password", "salt", 2, 32,
		"ae4d0c95af6b46d32d0adff928f06dd02a303f8ef3c251dfd6e2d85a95474c43"},
	{"sha256 c=4096", "sha256", "password", "salt", 4096, 32,
		"c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a"},
	{"sha256 two blocks", "sha256", "passwordPASSWORDpassword", "saltSALTsaltSALTsaltSALTsaltSALTsalt", 4096, 40,
		"348c89dbcbd32b2f32d814b8116e84cf2b17347ebc1800181c4e2a1fb8dd53e1c635518c7dac47e9"},
}

func TestKeyHex_KnownVectors(t *testing.T) {
	for _, tt := range vectors {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pbkdf2.KeyHex(tt.algorithm, []byte(tt.password), []byte(tt.salt), tt.iterations, tt.keyLen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKey_RawMatchesHex(t *testing.T) {
	v := vectors[5]
	raw, err := pbkdf2.Key(v.algorithm, []byte(v.password), []byte(v.salt), v.iterations, v.keyLen)
	require.NoError(t, err)
	assert.Equal(t, v.want, hex.EncodeToString(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Properties
// ──────────────────────────────────────────────────────────────────────────────

func TestKey_Deterministic(t *testing.T) {
	a, err := pbkdf2.Key("sha512", []byte("secret"), []byte("pepper"), 10, 48)
	require.NoError(t, err)
	b, err := pbkdf2.Key("sha512", []byte("secret"), []byte("pepper"), 10, 48)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKey_TruncatesToRequestedLength(t *testing.T) {
	for _, a := range pbkdf2.Algorithms() {
		for _, n := range []int{1, a.Size() - 1, a.Size() + 1, 2*a.Size() + 3} {
			k, err := pbkdf2.Key(string(a), []byte("pw"), []byte("salt"), 2, n)
			require.NoError(t, err, "%s len=%d", a, n)
			assert.Len(t, k, n, "%s len=%d", a, n)
		}
	}
}

func TestKey_LongerKeyExtendsShorterKey(t *testing.T) {
	short, err := pbkdf2.Key("sha256", []byte("pw"), []byte("salt"), 3, 32)
	require.NoError(t, err)
	long, err := pbkdf2.Key("sha256", []byte("pw"), []byte("salt"), 3, 33)
	require.NoError(t, err)
	assert.Equal(t, short, long[:32])
}

func TestKey_AlgorithmCaseInsensitive(t *testing.T) {
	lower, err := pbkdf2.KeyHex("sha256", []byte("pw"), []byte("salt"), 1, 16)
	require.NoError(t, err)
	for _, name := range []string{"SHA256", "Sha256", " sha256 "} {
		got, err := pbkdf2.KeyHex(name, []byte("pw"), []byte("salt"), 1, 16)
		require.NoError(t, err, name)
		assert.Equal(t, lower, got, name)
	}
}

func TestKey_EmptySaltAllowed(t *testing.T) {
	k, err := pbkdf2.Key("sha256", []byte("pw"), nil, 1, 16)
	require.NoError(t, err)
	assert.Len(t, k, 16)
}

func TestKeyHex_Lowercase(t *testing.T) {
	got, err := pbkdf2.KeyHex("sha1", []byte("password"), []byte("salt"), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(got), got)
	assert.Len(t, got, 40)
}

// ──────────────────────────────────────────────────────────────────────────────
// Input errors
// ──────────────────────────────────────────────────────────────────────────────

func TestKey_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		algorithm  string
		password   []byte
		iterations int
		keyLen     int
		wantErr    error
	}{
		{"nil password", "sha256", nil, 1, 16, pbkdf2.ErrEmptyPassword},
		{"empty password", "sha256", []byte{}, 1, 16, pbkdf2.ErrEmptyPassword},
		{"unknown algorithm", "whirlpool", []byte("pw"), 1, 16, pbkdf2.ErrUnsupportedAlgorithm},
		{"empty algorithm", "", []byte("pw"), 1, 16, pbkdf2.ErrUnsupportedAlgorithm},
		{"zero iterations", "sha256", []byte("pw"), 0, 16, pbkdf2.ErrInvalidIterations},
		{"negative iterations", "sha256", []byte("pw"), -5, 16, pbkdf2.ErrInvalidIterations},
		{"zero key length", "sha256", []byte("pw"), 1, 0, pbkdf2.ErrInvalidKeyLength},
		{"negative key length", "sha256", []byte("pw"), 1, -1, pbkdf2.ErrInvalidKeyLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := pbkdf2.Key(tt.algorithm, tt.password, []byte("salt"), tt.iterations, tt.keyLen)
			assert.Nil(t, k)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKey_UnsupportedAlgorithmIsTyped(t *testing.T) {
	_, err := pbkdf2.Key("crc32", []byte("pw"), nil, 1, 4)
	var uae *pbkdf2.UnsupportedAlgorithmError
	require.True(t, errors.As(err, &uae))
	assert.Equal(t, "crc32", uae.Name)
	assert.Contains(t, err.Error(), `"crc32"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Algorithm set
// ──────────────────────────────────────────────────────────────────────────────

func TestParseAlgorithm(t *testing.T) {
	a, err := pbkdf2.ParseAlgorithm("SHA3-256")
	require.NoError(t, err)
	assert.Equal(t, pbkdf2.SHA3_256, a)
	assert.Equal(t, 32, a.Size())

	_, err = pbkdf2.ParseAlgorithm("sha-256")
	assert.ErrorIs(t, err, pbkdf2.ErrUnsupportedAlgorithm)
}

func TestAlgorithms_SizesMatchDigests(t *testing.T) {
	algs := pbkdf2.Algorithms()
	require.NotEmpty(t, algs)
	for i, a := range algs {
		assert.True(t, a.Supported(), a)
		assert.Equal(t, a.Size(), a.New().Size(), a)
		if i > 0 {
			assert.Less(t, string(algs[i-1]), string(a))
		}
	}
}

func TestAlgorithm_UnsupportedSizeIsZero(t *testing.T) {
	assert.Zero(t, pbkdf2.Algorithm("nope").Size())
	assert.False(t, pbkdf2.Algorithm("SHA256").Supported())
	assert.Panics(t, func() { pbkdf2.Algorithm("nope").New() })
}

func TestBlocks(t *testing.T) {
	assert.Equal(t, 1, pbkdf2.Blocks(pbkdf2.SHA256, 24))
	assert.Equal(t, 1, pbkdf2.Blocks(pbkdf2.SHA256, 32))
	assert.Equal(t, 2, pbkdf2.Blocks(pbkdf2.SHA256, 33))
	assert.Equal(t, 3, pbkdf2.Blocks(pbkdf2.SHA1, 41))
	assert.Zero(t, pbkdf2.Blocks("nope", 10))
	assert.Zero(t, pbkdf2.Blocks(pbkdf2.SHA256, 0))
}
