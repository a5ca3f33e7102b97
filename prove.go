package itsuku

// Proof is everything a verifier needs besides (params, challenge): the
// winning nonce and the witness that justifies it. Per spec.md §6 the
// envelope deliberately omits the Merkle root; Verify reconstructs it.
type Proof struct {
	Params    Params
	Challenge []byte
	Nonce     []byte
	Witness   Witness
}

// Prove runs the full four-stage engine against challenge: build X,
// build MT, search for a passing nonce, and assemble the witness for
// the winning walk. workers and cancel are passed straight through to
// Search; see its doc comment for their semantics.
func Prove(params Params, challenge []byte, workers int, cancel <-chan struct{}) (Proof, error) {
	x, err := BuildMemory(params, challenge)
	if err != nil {
		return Proof{}, err
	}

	mt := BuildMerkleTree(params, challenge, x)
	root := mt[0]

	nonce, result, err := Search(params, challenge, x, root, workers, cancel)
	if err != nil {
		return Proof{}, err
	}

	w := BuildWitness(params, x, mt, result.Visited)
	return Proof{Params: params, Challenge: challenge, Nonce: nonce, Witness: w}, nil
}
