package itsuku

import (
	"bytes"
	"testing"
)

func smallParams() Params {
	return Params{
		MerkleWidth: 64,
		CellWidth:   64,
		WalkWidth:   32,
		Length:      32,
		Segments:    1,
		Arity:       2,
		WalkSteps:   5,
		Difficulty:  0,
	}
}

// TestDeterministicInit checks the concrete vector from spec.md §8
// scenario 1: T=32, P=1, n=2, M=x=64, I = 64 zero bytes.
func TestDeterministicInit(t *testing.T) {
	params := smallParams()
	challenge := make([]byte, 64)

	x, err := BuildMemory(params, challenge)
	if err != nil {
		t.Fatal(err)
	}

	wantX0 := truncatedHash(64, beUint32(0), beUint32(0), challenge)
	wantX1 := truncatedHash(64, beUint32(1), beUint32(0), challenge)

	if !bytes.Equal(x[0], wantX0) {
		t.Errorf("X[0] does not match H_64(i32be(0) || i32be(0) || I)")
	}
	if !bytes.Equal(x[1], wantX1) {
		t.Errorf("X[1] does not match H_64(i32be(1) || i32be(0) || I)")
	}
}

func TestBuildMemoryLength(t *testing.T) {
	params := smallParams()
	challenge := make([]byte, 64)
	x, err := BuildMemory(params, challenge)
	if err != nil {
		t.Fatal(err)
	}
	if len(x) != params.Length {
		t.Fatalf("len(X) = %d, want %d", len(x), params.Length)
	}
	for j, cell := range x {
		if len(cell) != params.CellWidth {
			t.Fatalf("X[%d] has length %d, want %d", j, len(cell), params.CellWidth)
		}
	}
}

func TestBuildMemoryFillPhaseMatchesAntecedents(t *testing.T) {
	params := smallParams()
	challenge := make([]byte, 64)
	x, err := BuildMemory(params, challenge)
	if err != nil {
		t.Fatal(err)
	}

	l := params.SegmentLength()
	for q := params.Arity; q < l; q++ {
		seed := x[q-1][:4]
		offsets, err := phiK(seed, uint64(q), params.Arity)
		if err != nil {
			t.Fatal(err)
		}
		parts := make([][]byte, params.Arity)
		for k, off := range offsets {
			parts[k] = x[off]
		}
		want := truncatedHash(params.CellWidth, parts...)
		if !bytes.Equal(x[q], want) {
			t.Fatalf("X[%d] does not match its antecedent hash", q)
		}
	}
}

func TestBuildMemoryMultipleSegmentsIndependent(t *testing.T) {
	params := smallParams()
	params.Segments = 4
	challenge := make([]byte, 64)
	x, err := BuildMemory(params, challenge)
	if err != nil {
		t.Fatal(err)
	}

	l := params.SegmentLength()
	for p := 0; p < params.Segments; p++ {
		for q := 0; q < params.Arity; q++ {
			want := truncatedHash(params.CellWidth, beUint32(uint32(q)), beUint32(uint32(p)), challenge)
			if !bytes.Equal(x[p*l+q], want) {
				t.Fatalf("segment %d init cell %d mismatch", p, q)
			}
		}
	}
}

func TestBuildMemoryRejectsBadChallengeLength(t *testing.T) {
	params := smallParams()
	if _, err := BuildMemory(params, make([]byte, 10)); err == nil {
		t.Error("expected error for mismatched challenge length")
	}
}

func TestBuildMemoryRejectsInvalidParams(t *testing.T) {
	params := smallParams()
	params.Length = 31 // not a power of two
	if _, err := BuildMemory(params, make([]byte, 64)); err == nil {
		t.Error("expected error for non-power-of-two length")
	}
}
