package itsuku

import "github.com/NebulousLabs/errors"

// Params holds the immutable parameters of a single proof session. All
// fields are required and are validated together by Validate.
type Params struct {
	MerkleWidth int // M: byte length of Merkle node hashes, and of the challenge I
	CellWidth   int // x: byte length of each element of X (must equal MerkleWidth)
	WalkWidth   int // S: byte length of Y elements and of Omega
	Length      int // T: number of cells in X; must be a power of two
	Segments    int // P: number of independent segments; l = Length/Segments
	Arity       int // n: antecedent arity, 1 <= n <= 11
	WalkSteps   int // L: walk length
	Difficulty  int // d: required trailing zero bits of Omega
}

// maxArity is the largest antecedent arity the phi-table in index.go
// supports.
const maxArity = 11

// SegmentLength returns l = Length/Segments.
func (p Params) SegmentLength() int {
	return p.Length / p.Segments
}

// Validate checks every structural rule spec.md places on a parameter
// set, returning ErrInvalidParameters extended with the specific
// violation if any rule is broken.
func (p Params) Validate() error {
	if p.MerkleWidth <= 0 || p.MerkleWidth > 64 {
		return errors.Extend(ErrInvalidParameters, errors.New("merkle width must be in [1,64]"))
	}
	if p.CellWidth != p.MerkleWidth {
		return errors.Extend(ErrInvalidParameters, errors.New("cell width must equal merkle width (x = M)"))
	}
	if p.WalkWidth <= 0 || p.WalkWidth > 64 {
		return errors.Extend(ErrInvalidParameters, errors.New("walk width must be in [1,64]"))
	}
	if p.Length <= 0 || p.Length&(p.Length-1) != 0 {
		return errors.Extend(ErrInvalidParameters, errors.New("length T must be a power of two"))
	}
	if p.Segments <= 0 || p.Length%p.Segments != 0 {
		return errors.Extend(ErrInvalidParameters, errors.New("segments P must evenly divide length T"))
	}
	if p.Arity < 1 || p.Arity > maxArity {
		return errors.Extend(ErrInvalidParameters, errors.New("arity n must be in [1,11]"))
	}
	if l := p.SegmentLength(); l < p.Arity+1 {
		return errors.Extend(ErrInvalidParameters, errors.New("segment length l must be >= n+1"))
	}
	if p.WalkSteps < 1 {
		return errors.Extend(ErrInvalidParameters, errors.New("walk steps L must be >= 1"))
	}
	if p.Difficulty < 0 {
		return errors.Extend(ErrInvalidParameters, errors.New("difficulty d must be >= 0"))
	}
	return nil
}
