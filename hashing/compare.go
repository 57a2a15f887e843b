package hashing

// SlowEquals reports whether a and b hold the same bytes, taking time that
// depends only on their lengths and never on the position of the first
// differing byte.
//
// The length difference is folded into the accumulator (len(a) XOR len(b))
// and exactly min(len(a), len(b)) byte pairs are then XOR-ed in, with no
// early exit. A nil slice compares as the empty byte string.
//
// Unlike crypto/subtle.ConstantTimeCompare, which returns immediately on a
// length mismatch, SlowEquals still walks the common prefix, so a caller
// comparing a candidate against a stored key always pays the same cost for
// a given pair of lengths.
func SlowEquals(a, b []byte) bool {
	diff, _ := compare(a, b)
	return diff == 0
}

// SlowEqualsString is [SlowEquals] for strings.
func SlowEqualsString(a, b string) bool {
	return SlowEquals([]byte(a), []byte(b))
}

// compare returns the accumulated difference and the number of byte pairs
// visited.
func compare(a, b []byte) (diff int, steps int) {
	diff = len(a) ^ len(b)
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		diff |= int(a[i] ^ b[i])
		steps++
	}
	return diff, steps
}
