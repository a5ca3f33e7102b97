package itsuku

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"
)

func TestProofMarshalRoundTrip(t *testing.T) {
	params := Params{
		MerkleWidth: 64,
		CellWidth:   64,
		WalkWidth:   32,
		Length:      16,
		Segments:    2,
		Arity:       2,
		WalkSteps:   5,
		Difficulty:  3,
	}
	challenge := bytes.Repeat([]byte{0x55}, 64)
	proof, err := Prove(params, challenge, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(proof)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded Proof
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if decoded.Params != proof.Params {
		t.Errorf("params changed across round trip: got %+v, want %+v", decoded.Params, proof.Params)
	}
	if !bytes.Equal(decoded.Challenge, proof.Challenge) {
		t.Error("challenge changed across round trip")
	}
	if !bytes.Equal(decoded.Nonce, proof.Nonce) {
		t.Error("nonce changed across round trip")
	}
	if len(decoded.Witness.RoundL) != len(proof.Witness.RoundL) {
		t.Errorf("round_L size changed: got %d, want %d", len(decoded.Witness.RoundL), len(proof.Witness.RoundL))
	}
	if len(decoded.Witness.Z) != len(proof.Witness.Z) {
		t.Errorf("Z size changed: got %d, want %d", len(decoded.Witness.Z), len(proof.Witness.Z))
	}

	if err := Verify(decoded.Params, decoded.Challenge, decoded.Nonce, decoded.Witness); err != nil {
		t.Fatalf("decoded proof failed verification: %v", err)
	}
}

func TestProofEnvelopeSchema(t *testing.T) {
	params := smallParams()
	challenge := make([]byte, 64)
	proof, err := Prove(params, challenge, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(proof)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["params"]; !ok {
		t.Error("envelope missing top-level \"params\" key")
	}
	if _, ok := raw["answer"]; !ok {
		t.Error("envelope missing top-level \"answer\" key")
	}

	var answer map[string]json.RawMessage
	if err := json.Unmarshal(raw["answer"], &answer); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"N", "round_L", "Z"} {
		if _, ok := answer[key]; !ok {
			t.Errorf("envelope answer missing %q key", key)
		}
	}
}

func TestDecodeDifficultyAcceptsBareInteger(t *testing.T) {
	got, err := decodeDifficulty(json.RawMessage(`12`))
	if err != nil {
		t.Fatal(err)
	}
	if got != 12 {
		t.Errorf("got %d, want 12", got)
	}
}

func TestDecodeDifficultyAcceptsHexThreshold(t *testing.T) {
	// A threshold of 0x00ff... has 8 leading zero bits.
	threshold := make([]byte, 64)
	threshold[0] = 0x00
	threshold[1] = 0xff
	got, err := decodeDifficulty(json.RawMessage(`"` + hex.EncodeToString(threshold) + `"`))
	if err != nil {
		t.Fatal(err)
	}
	if got != 8 {
		t.Errorf("got %d, want 8", got)
	}
}
