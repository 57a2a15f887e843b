package encryption

import (
	"bytes"
	"fmt"
)

// pkcs7Pad returns src followed by PKCS#7 padding up to a multiple of
// blockSize. A full block is appended when src is already aligned, so the
// padding can always be removed unambiguously.
func pkcs7Pad(src []byte, blockSize int) []byte {
	n := blockSize - len(src)%blockSize
	out := make([]byte, len(src), len(src)+n)
	copy(out, src)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad strips PKCS#7 padding exactly. Trailing plaintext bytes that
// happen to be whitespace are preserved.
func pkcs7Unpad(src []byte, blockSize int) ([]byte, error) {
	length := len(src)
	if length == 0 || length%blockSize != 0 {
		return nil, fmt.Errorf("%w: padded length %d is not a positive multiple of %d",
			ErrDecryptionFailed, length, blockSize)
	}
	n := int(src[length-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: invalid PKCS#7 padding byte %d", ErrDecryptionFailed, n)
	}
	for _, b := range src[length-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: malformed PKCS#7 padding", ErrDecryptionFailed)
		}
	}
	return src[:length-n], nil
}
