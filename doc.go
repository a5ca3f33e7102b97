// Package itsuku implements the prover and verifier halves of an
// Itsuku-style memory-hard Proof-of-Work, following the construction of
// Biryukov & Khovratovich's MTP (Merkle-Tree Proof) scheme.
//
// A prover, given an initial challenge and a difficulty, builds a
// challenge-dependent memory array and a Merkle tree over it, then
// searches for a nonce whose derived walk summary has enough trailing
// zero bits. It emits the nonce together with a succinct Merkle-
// authenticated witness that lets a verifier check the proof while only
// ever reconstructing a small subset of the memory array and a single
// Merkle root.
//
// The four stages are, roughly, one file apiece: memory.go builds the
// challenge-dependent array, merkle.go builds the commitment over it,
// walk.go and search.go derive and search for a passing nonce, and
// witness.go/verify.go assemble and check the succinct proof.
package itsuku
