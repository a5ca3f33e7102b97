package itsuku

import (
	"encoding/hex"
	"encoding/json"
	"math/bits"
	"strconv"

	"github.com/NebulousLabs/errors"
)

// MarshalJSON encodes p into the proof envelope described in spec.md §6:
// hex byte strings, decimal-string integer keys, d as trailing-zero-bit
// count. This is the one place in the package that deals with the wire
// format; everything else works with Params/Proof/Witness values.
func (p Proof) MarshalJSON() ([]byte, error) {
	roundL := make(map[string][]string, len(p.Witness.RoundL))
	for idx, group := range p.Witness.RoundL {
		hexGroup := make([]string, len(group))
		for i, v := range group {
			hexGroup[i] = hex.EncodeToString(v)
		}
		roundL[strconv.Itoa(idx)] = hexGroup
	}

	z := make(map[string]string, len(p.Witness.Z))
	for idx, v := range p.Witness.Z {
		z[strconv.Itoa(idx)] = hex.EncodeToString(v)
	}

	env := proofEnvelope{
		Params: paramsWire{
			P: p.Params.Segments,
			T: p.Params.Length,
			N: p.Params.Arity,
			I: hex.EncodeToString(p.Challenge),
			M: p.Params.MerkleWidth,
			L: p.Params.WalkSteps,
			S: p.Params.WalkWidth,
			D: json.RawMessage(strconv.Itoa(p.Params.Difficulty)),
		},
		Answer: answerWire{
			N:      hex.EncodeToString(p.Nonce),
			RoundL: roundL,
			Z:      z,
		},
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes a proof envelope. It accepts d either as a JSON
// integer (trailing-zero-bit count) or as a hex string (a byte-threshold,
// per the source ambiguity flagged in spec.md §9 point 3): a hex d is
// converted to the equivalent trailing-zero-bit count by counting the
// leading zero bits of the decoded threshold.
func (p *Proof) UnmarshalJSON(data []byte) error {
	var env proofEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Extend(ErrInvalidWitnessShape, err)
	}

	challenge, err := hex.DecodeString(env.Params.I)
	if err != nil {
		return errors.Extend(ErrInvalidWitnessShape, errors.New("params.I is not valid hex"))
	}
	nonce, err := hex.DecodeString(env.Answer.N)
	if err != nil {
		return errors.Extend(ErrInvalidWitnessShape, errors.New("answer.N is not valid hex"))
	}
	difficulty, err := decodeDifficulty(env.Params.D)
	if err != nil {
		return err
	}

	roundL := make(map[int][][]byte, len(env.Answer.RoundL))
	for key, hexGroup := range env.Answer.RoundL {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return errors.Extend(ErrInvalidWitnessShape, errors.New("round_L key is not a decimal integer"))
		}
		group := make([][]byte, len(hexGroup))
		for i, h := range hexGroup {
			v, err := hex.DecodeString(h)
			if err != nil {
				return errors.Extend(ErrInvalidWitnessShape, errors.New("round_L value is not valid hex"))
			}
			group[i] = v
		}
		roundL[idx] = group
	}

	z := make(map[int][]byte, len(env.Answer.Z))
	for key, h := range env.Answer.Z {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return errors.Extend(ErrInvalidWitnessShape, errors.New("Z key is not a decimal integer"))
		}
		v, err := hex.DecodeString(h)
		if err != nil {
			return errors.Extend(ErrInvalidWitnessShape, errors.New("Z value is not valid hex"))
		}
		z[idx] = v
	}

	p.Params = Params{
		MerkleWidth: env.Params.M,
		CellWidth:   env.Params.M,
		WalkWidth:   env.Params.S,
		Length:      env.Params.T,
		Segments:    env.Params.P,
		Arity:       env.Params.N,
		WalkSteps:   env.Params.L,
		Difficulty:  difficulty,
	}
	p.Challenge = challenge
	p.Nonce = nonce
	p.Witness = Witness{RoundL: roundL, Z: z}
	return nil
}

// decodeDifficulty resolves the params.d ambiguity: a bare JSON integer
// is already a trailing-zero-bit count; a quoted hex string is a
// byte-threshold whose leading zero bits give the equivalent count.
func decodeDifficulty(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var hexStr string
	if err := json.Unmarshal(raw, &hexStr); err != nil {
		return 0, errors.Extend(ErrInvalidWitnessShape, errors.New("params.d is neither an integer nor a hex threshold"))
	}
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return 0, errors.Extend(ErrInvalidWitnessShape, errors.New("params.d hex threshold is not valid hex"))
	}
	for i, by := range b {
		if by != 0 {
			return 8*i + bits.LeadingZeros8(by), nil
		}
	}
	return 8 * len(b), nil
}

type proofEnvelope struct {
	Params paramsWire `json:"params"`
	Answer answerWire `json:"answer"`
}

type paramsWire struct {
	P int             `json:"P"`
	T int             `json:"T"`
	N int             `json:"n"`
	I string          `json:"I"`
	M int             `json:"M"`
	L int             `json:"L"`
	S int             `json:"S"`
	D json.RawMessage `json:"d"`
}

type answerWire struct {
	N      string              `json:"N"`
	RoundL map[string][]string `json:"round_L"`
	Z      map[string]string   `json:"Z"`
}
