package itsuku

import (
	"math/big"

	"github.com/NebulousLabs/errors"
)

// cellSource abstracts reading a cell of X by global index. The prover
// walks a fully materialized array; the verifier walks a sparse map
// reconstructed from round_L, so both share the walk implementation
// below.
type cellSource interface {
	cell(i int) ([]byte, bool)
}

type arraySource [][]byte

func (a arraySource) cell(i int) ([]byte, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i], true
}

type sparseSource map[int][]byte

func (m sparseSource) cell(i int) ([]byte, bool) {
	v, ok := m[i]
	return v, ok
}

// walkResult holds everything walk derives from a nonce: the full Y
// array, the walk summary Omega, and the sequence of visited indices.
type walkResult struct {
	Y       [][]byte
	Omega   []byte
	Visited []int
}

// walk derives Y, Omega, and the visited index sequence from a challenge,
// a memory source, a nonce, and a Merkle root, per spec.md §4.5. It is a
// pure function of its inputs (P7: deterministic and repeatable).
//
// When src is sparse (the verifier's case), a missing cell is reported as
// ErrWalkMismatch: it means the replayed walk needs a cell the witness
// never supplied, so the claimed visited-index set is wrong.
func walk(params Params, challenge []byte, src cellSource, psi, nonce []byte) (walkResult, error) {
	y := make([][]byte, params.WalkSteps+1)
	y[0] = truncatedHash(params.WalkWidth, nonce, psi, challenge)

	visited := make([]int, params.WalkSteps)
	for j := 1; j <= params.WalkSteps; j++ {
		idx := modLength(y[j-1], params.Length)
		visited[j-1] = idx

		cell, ok := src.cell(idx)
		if !ok {
			return walkResult{}, errors.Extend(ErrWalkMismatch, errors.New("walk: cell not available in witness"))
		}
		masked, err := xorBytes(cell, challenge)
		if err != nil {
			return walkResult{}, err
		}
		y[j] = truncatedHash(params.WalkWidth, y[j-1], masked)
	}

	omega := truncatedHash(params.WalkWidth, omegaParts(params.WalkSteps, y)...)
	return walkResult{Y: y, Omega: omega, Visited: visited}, nil
}

// modLength reduces the big-endian integer represented by y modulo
// length, returning the result as an int (length is always small enough
// to fit).
func modLength(y []byte, length int) int {
	v := new(big.Int).SetBytes(y)
	v.Mod(v, big.NewInt(int64(length)))
	return int(v.Int64())
}

// omegaParts builds the hash input for Omega per spec.md's parity rule:
// if L is even, Y[0] is omitted from the concatenation; if L is odd, it
// is included. This looks like an off-by-one but must be preserved
// exactly for interoperability with existing proofs (flagged in
// spec.md §9).
func omegaParts(l int, y [][]byte) [][]byte {
	lastIdx := 0
	if l%2 == 0 {
		lastIdx = 1
	}
	parts := make([][]byte, 0, l+1-lastIdx)
	for j := l; j >= lastIdx; j-- {
		parts = append(parts, y[j])
	}
	return parts
}
