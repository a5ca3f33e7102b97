package itsuku

// BuildMerkleTree constructs the full binary Merkle tree MT over X, per
// spec.md §4.4: a flat array of 2*len(X)-1 nodes, leaves in the last
// len(X) slots, each internal node folding in the challenge I so the
// whole tree is bound to it. Node k's children live at 2k+1 and 2k+2.
//
// Leaf hashing and the hashing of each internal level are independent
// within that level and are fanned out with parallelFor; levels
// themselves are processed bottom-up since each depends on the one below
// it.
func BuildMerkleTree(params Params, challenge []byte, x [][]byte) [][]byte {
	t := len(x)
	mt := make([][]byte, 2*t-1)

	leafBase := t - 1
	parallelFor(t, func(j int) {
		mt[leafBase+j] = truncatedHash(params.MerkleWidth, x[j])
	})

	// Walk levels bottom-up. Level boundaries in a 2T-1 heap array are
	// [2^h - 1, 2^(h+1) - 1) for h counted from the root; rather than
	// compute those explicitly we just process contiguous ranges of
	// parent indices, which are always [0, t-1) overall and shrink by
	// half each level.
	for end := leafBase; end > 0; {
		begin := (end - 1) / 2
		parallelFor(end-begin, func(i int) {
			k := begin + i
			mt[k] = truncatedHash(params.MerkleWidth, mt[2*k+1], mt[2*k+2], challenge)
		})
		end = begin
	}
	return mt
}
