package itsuku

import "github.com/NebulousLabs/errors"

// Verify checks a witness against challenge and nonce under params, per
// spec.md §4.8. The envelope carries no separately-asserted Merkle root:
// the verifier reconstructs Ψ' itself from round_L and Z and uses that
// reconstruction to seed the walk replay, so a forged root cannot be
// smuggled in independently of the witness that must justify it.
//
// It never touches the full array X or the full Merkle tree: every cell
// it needs either falls out of (I, P, n) directly (the init cells of a
// segment) or is supplied by round_L.
func Verify(params Params, challenge []byte, nonce []byte, w Witness) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if len(challenge) != params.MerkleWidth {
		return errors.Extend(ErrInvalidParameters, errors.New("challenge I must be MerkleWidth bytes"))
	}

	cells, err := reconstructCells(params, challenge, w.RoundL)
	if err != nil {
		return err
	}

	root, err := reconstructRoot(params, challenge, cells, w)
	if err != nil {
		return err
	}

	result, err := walk(params, challenge, cells, root, nonce)
	if err != nil {
		return err
	}

	seen := make(map[int]bool, len(result.Visited))
	for _, idx := range result.Visited {
		if _, ok := w.RoundL[idx]; !ok {
			return errors.Extend(ErrWalkMismatch, errors.New("replayed walk visited an index round_L does not cover"))
		}
		seen[idx] = true
	}
	if len(seen) != len(w.RoundL) {
		return errors.Extend(ErrWalkMismatch, errors.New("round_L has an entry the replayed walk never visits"))
	}
	if !trailingZeroBits(result.Omega, params.Difficulty) {
		return ErrDifficultyNotMet
	}
	return nil
}

// reconstructCells rebuilds the sparse set of X cells implied by round_L.
// Every fill-phase antecedent group carries its own seed: phi_0 is always
// i-1, so group[0] is x[idx-1] by construction, and seed = group[0][:4]
// is enough to recompute the rest of the group's offsets independently
// (spec.md §4.7-§4.8). Init-phase cells (q < n) are recomputed directly
// from (I, P, n) rather than trusted from the witness.
//
// Two round_L entries can imply different values for the same global
// index (an honest antecedent group and a forged neighboring one
// disagreeing about a shared cell); such a conflict is reported as
// ErrSeedInconsistency, the general form of spec.md's "round_L[i][0]
// must agree with the independently known predecessor" check.
func reconstructCells(params Params, challenge []byte, roundL map[int][][]byte) (sparseSource, error) {
	l := params.SegmentLength()
	cells := make(sparseSource)

	set := func(idx int, v []byte) error {
		if existing, ok := cells[idx]; ok {
			if !bytesEqual(existing, v) {
				return errors.Extend(ErrSeedInconsistency, errors.New("round_L entries disagree on a shared cell"))
			}
			return nil
		}
		cells[idx] = v
		return nil
	}

	for idx, group := range roundL {
		if idx < 0 || idx >= params.Length {
			return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("round_L key out of range"))
		}
		if len(group) != params.Arity {
			return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("round_L antecedent group has wrong length"))
		}
		for _, v := range group {
			if len(v) != params.CellWidth {
				return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("round_L antecedent has wrong byte length"))
			}
		}

		p, q := idx/l, idx%l

		if q < params.Arity {
			for k := 0; k < params.Arity; k++ {
				want := truncatedHash(params.CellWidth, beUint32(uint32(k)), beUint32(uint32(p)), challenge)
				if !bytesEqual(group[k], want) {
					return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("init-phase antecedent does not match (I, P, n)"))
				}
				if err := set(p*l+k, group[k]); err != nil {
					return nil, err
				}
			}
			continue
		}

		seed := group[0][:4]
		offsets, err := phiK(seed, uint64(q), params.Arity)
		if err != nil {
			return nil, errors.Extend(ErrInvalidWitnessShape, err)
		}
		for k, off := range offsets {
			// An antecedent offset below n falls in the init phase of the
			// segment. Its value is pinned by (I, P, n) alone and must be
			// recomputed independently rather than trusted from the witness
			// (spec.md §4.8 step 2). Every fill-phase cell's phi_0 = q-1
			// offset hits this path whenever q == n.
			if int(off) < params.Arity {
				want := truncatedHash(params.CellWidth, beUint32(uint32(off)), beUint32(uint32(p)), challenge)
				if !bytesEqual(group[k], want) {
					return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("init-phase antecedent does not match (I, P, n)"))
				}
			}
			if err := set(p*l+int(off), group[k]); err != nil {
				return nil, err
			}
		}
		if err := set(idx, truncatedHash(params.CellWidth, group...)); err != nil {
			return nil, err
		}
	}

	return cells, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reconstructRoot recomputes Ψ' from the leaves implied by cells and the
// opening nodes in w.Z, per spec.md §4.8 steps 4-5 (compute_merkle_tree_node).
func reconstructRoot(params Params, challenge []byte, cells sparseSource, w Witness) ([]byte, error) {
	t := params.Length
	leafBase := t - 1
	known := make(map[int][]byte, len(cells)+len(w.Z))

	for idx, v := range cells {
		known[leafBase+idx] = truncatedHash(params.MerkleWidth, v)
	}
	for idx, v := range w.Z {
		if idx < 0 || idx >= 2*t-1 {
			return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("Z key out of range"))
		}
		if len(v) != params.MerkleWidth {
			return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("Z value has wrong byte length"))
		}
		if _, collide := known[idx]; collide {
			return nil, errors.Extend(ErrInvalidWitnessShape, errors.New("Z overlaps a leaf derivable from round_L"))
		}
		known[idx] = v
	}

	var compute func(k int) ([]byte, error)
	compute = func(k int) ([]byte, error) {
		if v, ok := known[k]; ok {
			return v, nil
		}
		if k >= leafBase {
			return nil, errors.Extend(ErrInsufficientOpening, errors.New("leaf not covered by round_L or Z"))
		}
		left, err := compute(2*k + 1)
		if err != nil {
			return nil, err
		}
		right, err := compute(2*k + 2)
		if err != nil {
			return nil, err
		}
		v := truncatedHash(params.MerkleWidth, left, right, challenge)
		known[k] = v
		return v, nil
	}

	return compute(0)
}
