package itsuku

import "github.com/NebulousLabs/errors"

// phi computes the data-dependent antecedent offset phi(seed, i) used to
// derive phi_1 in phiK. It implements the low-level, Argon2-style
// formulation from spec.md §4.2 rather than the high-level J^2/2^64 one,
// since the low-level form only needs 64-bit intermediates (both i-1 and
// J^2/2^32 are guaranteed to fit in 32 bits, so their product cannot
// overflow a uint64). Both formulations are required to agree; that
// equivalence is checked in index_test.go against a math/big reference
// implementation of the high-level formula, rather than carrying two
// runtime implementations of the same function.
func phi(seed []byte, i uint64) (uint64, error) {
	if len(seed) != 4 {
		return 0, errors.New("phi: seed must be 4 bytes")
	}
	if i < 1 {
		return 0, errors.New("phi: i must be >= 1")
	}
	j := uint64(seed[0])<<24 | uint64(seed[1])<<16 | uint64(seed[2])<<8 | uint64(seed[3])
	x := (j * j) >> 32    // floor(J^2 / 2^32), fits in 32 bits
	y := ((i - 1) * x) >> 32 // floor((i-1)*x / 2^32); (i-1) and x are each < 2^32, so the product fits in uint64
	return i - 1 - y, nil
}

// phiK returns the n antecedent offsets phi_0(i)..phi_{n-1}(i) for a cell
// at local offset i within its segment, per the closed-form table in
// spec.md §4.2. phi_0 is always i-1 (load-bearing: it guarantees the
// first antecedent carries the seed bytes used to derive phi_1..phi_{n-1}
// and is what the verifier's seed-consistency check relies on).
func phiK(seed []byte, i uint64, n int) ([]uint64, error) {
	if n < 1 || n > maxArity {
		return nil, errors.New("phiK: n must be in [1,11]")
	}
	if i < 1 {
		return nil, errors.New("phiK: i must be >= 1")
	}
	phi1, err := phi(seed, i)
	if err != nil {
		return nil, err
	}

	table := [maxArity]uint64{
		0:  i - 1,
		1:  phi1,
		2:  phi1 / 2,
		3:  (i - 1) / 2,
		4:  (phi1 + i) / 2,
		5:  3 * phi1 / 4,
		6:  3 * i / 4,
		7:  phi1 / 4,
		8:  i / 4,
		9:  7 * phi1 / 8,
		10: 7 * i / 8,
	}

	out := make([]uint64, n)
	for k := 0; k < n; k++ {
		if table[k] >= i {
			return nil, errors.New("phiK: antecedent offset out of range")
		}
		out[k] = table[k]
	}
	return out, nil
}
