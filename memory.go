package itsuku

import "github.com/NebulousLabs/errors"

// BuildMemory constructs the challenge-dependent array X of length
// params.Length, per spec.md §4.3. The P segments are built in parallel
// (they are mutually independent); within a segment, cells are built in
// strictly increasing order, since each cell's hash input depends on
// antecedents earlier in the same segment.
func BuildMemory(params Params, challenge []byte) ([][]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(challenge) != params.MerkleWidth {
		return nil, errors.Extend(ErrInvalidParameters, errors.New("challenge I must be MerkleWidth bytes"))
	}

	l := params.SegmentLength()
	x := make([][]byte, params.Length)

	errs := make([]error, params.Segments)
	parallelFor(params.Segments, func(p int) {
		errs[p] = buildSegment(params, challenge, x, p, l)
	})
	if err := errors.Compose(errs...); err != nil {
		return nil, err
	}
	return x, nil
}

// buildSegment fills the cells of segment p in place, writing only to
// x[p*l : p*l+l].
func buildSegment(params Params, challenge []byte, x [][]byte, p, l int) error {
	base := p * l

	// Init phase (§4.3 step 1): the first n cells of the segment are
	// determined entirely by their position and the challenge.
	for q := 0; q < params.Arity; q++ {
		x[base+q] = truncatedHash(params.CellWidth, beUint32(uint32(q)), beUint32(uint32(p)), challenge)
	}

	// Fill phase (§4.3 step 2): each later cell hashes together n
	// antecedent cells chosen by phiK, seeded from the previous cell.
	for q := params.Arity; q < l; q++ {
		seed := x[base+q-1][:4]
		offsets, err := phiK(seed, uint64(q), params.Arity)
		if err != nil {
			return err
		}
		parts := make([][]byte, params.Arity)
		for k, off := range offsets {
			if off >= uint64(q) {
				return errors.New("buildSegment: antecedent offset out of range")
			}
			parts[k] = x[base+int(off)]
		}
		x[base+q] = truncatedHash(params.CellWidth, parts...)
	}
	return nil
}
