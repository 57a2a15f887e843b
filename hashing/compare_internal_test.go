package hashing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The number of byte pairs visited must depend only on the input lengths,
// never on where (or whether) the inputs first differ.
func TestCompare_StepsIndependentOfMismatchPosition(t *testing.T) {
	base := bytes.Repeat([]byte{0x5a}, 32)

	_, want := compare(base, base)
	assert.Equal(t, 32, want)

	for pos := 0; pos < len(base); pos++ {
		other := append([]byte(nil), base...)
		other[pos] ^= 0xff
		diff, steps := compare(base, other)
		assert.NotZero(t, diff, "mismatch at %d not detected", pos)
		assert.Equal(t, want, steps, "mismatch at %d", pos)
	}
}

func TestCompare_StepsAreMinLength(t *testing.T) {
	tests := []struct {
		name      string
		a, b      []byte
		wantSteps int
	}{
		{"both empty", nil, nil, 0},
		{"nil vs empty", nil, []byte{}, 0},
		{"a shorter", []byte("abc"), []byte("abcdef"), 3},
		{"b shorter", []byte("abcdef"), []byte("ab"), 2},
		{"prefix differs, a shorter", []byte("xbc"), []byte("abcdef"), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, steps := compare(tt.a, tt.b)
			assert.Equal(t, tt.wantSteps, steps)
		})
	}
}

func TestCompare_LengthFoldedIntoDiff(t *testing.T) {
	diff, _ := compare([]byte("abc"), []byte("abcd"))
	assert.Equal(t, 3^4, diff)
}
