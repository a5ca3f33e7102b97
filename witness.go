package itsuku

// Witness is the succinct proof material produced once a passing nonce
// is found: round_L, the antecedent groups needed to rebuild each
// visited cell of X, and Z, the minimal Merkle opening that completes
// round_L's implicit leaf set.
type Witness struct {
	RoundL map[int][][]byte // visited index -> its n antecedent values
	Z      map[int][]byte   // merkle-tree node index -> node value
}

// BuildWitness assembles round_L and Z for the indices visited by a
// winning walk, per spec.md §4.7.
func BuildWitness(params Params, x, mt [][]byte, visited []int) Witness {
	l := params.SegmentLength()
	roundL := make(map[int][][]byte)
	provided := make(map[int]bool)

	for _, idx := range visited {
		if roundL[idx] != nil {
			continue // already recorded for an earlier visit of the same cell
		}
		provided[idx] = true
		p, q := idx/l, idx%l

		if q < params.Arity {
			group := make([][]byte, params.Arity)
			for k := 0; k < params.Arity; k++ {
				j := p*l + k
				group[k] = x[j]
				provided[j] = true
			}
			roundL[idx] = group
			continue
		}

		seed := x[idx-1][:4]
		offsets, err := phiK(seed, uint64(q), params.Arity)
		if err != nil {
			// Cannot happen for an index reached by an honest walk: the
			// same phiK call already succeeded once to build x[idx].
			panic("BuildWitness: phiK failed for a previously-built cell: " + err.Error())
		}
		group := make([][]byte, params.Arity)
		for k, off := range offsets {
			j := p*l + int(off)
			group[k] = x[j]
			provided[j] = true
		}
		roundL[idx] = group
	}

	z := buildMerkleOpening(mt, len(x), provided)
	return Witness{RoundL: roundL, Z: z}
}

// buildMerkleOpening returns the minimal set of Merkle-tree node values
// (keyed by node index) needed to recompute the root given that the
// leaves at the global indices in provided are independently derivable.
//
// It marks, bottom-up, which nodes have at least one provided leaf
// beneath them, then walks down from the root: whenever a node has a
// provided descendant, it is expanded into its two children instead of
// being stored directly, and the children that themselves lack a
// provided descendant are added to Z as a single opening node (the
// standard Merkle multi-opening construction, mirroring the audit-path
// logic in the teacher pack's RFC 6962 implementations but over a flat
// 2T-1 heap-indexed tree rather than a subtree stack).
func buildMerkleOpening(mt [][]byte, t int, provided map[int]bool) map[int][]byte {
	hasLeaf := make([]bool, 2*t-1)
	leafBase := t - 1
	for j := range hasLeaf[leafBase:] {
		hasLeaf[leafBase+j] = provided[j]
	}
	for k := leafBase - 1; k >= 0; k-- {
		hasLeaf[k] = hasLeaf[2*k+1] || hasLeaf[2*k+2]
	}

	z := make(map[int][]byte)
	if t == 1 || !hasLeaf[0] {
		return z
	}

	var descend func(k int)
	descend = func(k int) {
		if k >= leafBase {
			return // leaf: always derivable directly from round_L, never opened
		}
		l, r := 2*k+1, 2*k+2
		if hasLeaf[l] {
			descend(l)
		} else {
			z[l] = mt[l]
		}
		if hasLeaf[r] {
			descend(r)
		} else {
			z[r] = mt[r]
		}
	}
	descend(0)
	return z
}
