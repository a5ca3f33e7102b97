// +build gofuzz

package itsuku

// Fuzz is called by go-fuzz to look for inputs that make a freshly
// produced proof fail its own verification. Difficulty is pinned to 0
// so Search always terminates on its first nonce, keeping each fuzz
// iteration cheap. The challenge and the arity n are derived from the
// fuzz data; T and P stay fixed at 8 and 1.
func Fuzz(data []byte) int {
	if len(data) < 65 {
		return -1
	}

	challenge := make([]byte, 64)
	copy(challenge, data[:64])
	data = data[64:]

	arity := 1 + int(data[0])%3 // keep n small so tiny segments stay valid
	data = data[1:]

	params := Params{
		MerkleWidth: 64,
		CellWidth:   64,
		WalkWidth:   32,
		Length:      8,
		Segments:    1,
		Arity:       arity,
		WalkSteps:   3,
		Difficulty:  0,
	}
	if err := params.Validate(); err != nil {
		return -1
	}

	proof, err := Prove(params, challenge, 1, nil)
	if err != nil {
		return 0
	}
	if err := Verify(proof.Params, proof.Challenge, proof.Nonce, proof.Witness); err != nil {
		panic("freshly produced proof failed verification: " + err.Error())
	}

	if len(data) > 0 {
		return 1
	}
	return 0
}
