package itsuku

import "github.com/NebulousLabs/errors"

// Error kinds raised by the prover and verifier, per spec.md's error
// taxonomy. Callers should test for a kind with errors.Contains rather
// than comparing errors directly, since most returned errors are extended
// with situational detail before they leave this package.
var (
	// ErrInvalidParameters is returned before any work begins when a
	// Params value fails Validate. It is fatal to the call.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidWitnessShape is returned by the verifier when round_L or
	// Z has a malformed key or value: an out-of-range index, an
	// antecedent list of the wrong length, or a value of the wrong byte
	// length.
	ErrInvalidWitnessShape = errors.New("invalid witness shape")

	// ErrInsufficientOpening is returned when the Merkle root cannot be
	// reconstructed from round_L and Z: recursion descended past a leaf
	// that was never provided.
	ErrInsufficientOpening = errors.New("insufficient merkle opening")

	// ErrSeedInconsistency is returned when the leading bytes of
	// round_L's first antecedent disagree with the reconstructed
	// predecessor cell.
	ErrSeedInconsistency = errors.New("seed inconsistency")

	// ErrWalkMismatch is returned when the indices visited by the replayed
	// walk do not match round_L's keys: the walk visits an index round_L
	// has no entry for, or round_L has an entry the walk never visits.
	// round_L is a map, so its keys are compared as a set; the visiting
	// order comes from the replay itself.
	ErrWalkMismatch = errors.New("walk mismatch")

	// ErrDifficultyNotMet is returned when the replayed Omega does not
	// have the required number of trailing zero bits.
	ErrDifficultyNotMet = errors.New("difficulty not met")

	// ErrCancelled is returned by the search loop when its cancel
	// channel fires before a passing nonce is found. It is not an error
	// condition for callers: no proof is emitted, but nothing went
	// wrong.
	ErrCancelled = errors.New("search cancelled")

	// ErrEntropyFailure is returned if the configured random source
	// cannot produce a nonce. Fatal; propagate.
	ErrEntropyFailure = errors.New("entropy failure")
)
