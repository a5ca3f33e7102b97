package itsuku

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/NebulousLabs/errors"
)

// truncatedHash returns the first m bytes of SHA-512(parts[0] || parts[1]
// || ...). It generalizes the teacher's variadic sum(h, data...) helper
// to a parameterized output width instead of a fixed hash.Hash, since
// spec.md defines H_m as "the first m bytes of SHA-512(data)" rather than
// swapping the underlying primitive.
func truncatedHash(m int, parts ...[]byte) []byte {
	h := sha512.New()
	for _, p := range parts {
		// hash.Hash.Write never returns an error.
		_, _ = h.Write(p)
	}
	sum := h.Sum(nil)
	return append([]byte(nil), sum[:m]...)
}

// beUint32 encodes u as a 4-byte big-endian string.
func beUint32(u uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, u)
	return b
}

// xorBytes returns the bytewise XOR of a and b, which must have equal
// length.
func xorBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, errors.New("xor: operands have different lengths")
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// trailingZeroBits reports whether the low d bits of the big-endian
// integer represented by x are all zero. d <= 0 is trivially satisfied.
func trailingZeroBits(x []byte, d int) bool {
	if d <= 0 {
		return true
	}
	n := len(x)
	fullBytes := d / 8
	rem := d % 8
	if fullBytes > n {
		fullBytes = n
		rem = 0
	}
	for i := 0; i < fullBytes; i++ {
		if x[n-1-i] != 0 {
			return false
		}
	}
	if rem > 0 && fullBytes < n {
		b := x[n-1-fullBytes]
		mask := byte(1<<uint(rem) - 1)
		if b&mask != 0 {
			return false
		}
	}
	return true
}
