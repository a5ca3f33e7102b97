package itsuku

import (
	"bytes"
	"testing"
)

func TestBuildMerkleTreeShape(t *testing.T) {
	params := smallParams()
	challenge := make([]byte, 64)
	x, err := BuildMemory(params, challenge)
	if err != nil {
		t.Fatal(err)
	}
	mt := BuildMerkleTree(params, challenge, x)
	if len(mt) != 2*len(x)-1 {
		t.Fatalf("len(MT) = %d, want %d", len(mt), 2*len(x)-1)
	}

	leafBase := len(x) - 1
	for j := range x {
		want := truncatedHash(params.MerkleWidth, x[j])
		if !bytes.Equal(mt[leafBase+j], want) {
			t.Fatalf("MT[%d] does not match H_M(X[%d])", leafBase+j, j)
		}
	}
	for k := leafBase - 1; k >= 0; k-- {
		want := truncatedHash(params.MerkleWidth, mt[2*k+1], mt[2*k+2], challenge)
		if !bytes.Equal(mt[k], want) {
			t.Fatalf("MT[%d] does not match H_M(MT[2k+1] || MT[2k+2] || I)", k)
		}
	}
}

// TestConstantLeafTree checks spec.md §8 scenario 2: if every X[j] is
// identical, every level of MT is internally constant.
func TestConstantLeafTree(t *testing.T) {
	params := smallParams()
	challenge := make([]byte, 64)
	x := make([][]byte, params.Length)
	for j := range x {
		x[j] = make([]byte, params.CellWidth)
	}

	mt := BuildMerkleTree(params, challenge, x)
	leafBase := params.Length - 1

	// Walk level by level and confirm every node at a given level equals
	// the first node of that level.
	levelStart := leafBase
	levelEnd := len(mt)
	for levelEnd > levelStart {
		first := mt[levelStart]
		for k := levelStart; k < levelEnd; k++ {
			if !bytes.Equal(mt[k], first) {
				t.Fatalf("level [%d,%d) is not constant at index %d", levelStart, levelEnd, k)
			}
		}
		if levelStart == 0 {
			break
		}
		newEnd := levelStart
		newStart := (levelStart - 1) / 2
		levelStart, levelEnd = newStart, newEnd
	}
}

func TestBuildMerkleTreeSingleLeaf(t *testing.T) {
	params := smallParams()
	params.Length = 1
	params.Segments = 1
	challenge := make([]byte, 64)
	x := [][]byte{make([]byte, params.CellWidth)}
	mt := BuildMerkleTree(params, challenge, x)
	if len(mt) != 1 {
		t.Fatalf("len(MT) = %d, want 1", len(mt))
	}
	want := truncatedHash(params.MerkleWidth, x[0])
	if !bytes.Equal(mt[0], want) {
		t.Error("single-leaf tree root does not match H_M(X[0])")
	}
}
