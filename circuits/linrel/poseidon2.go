package linrel

import (
	"errors"
	"math/big"

	poseidonbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
)

var ErrInvalidSizeBuffer = errors.New("permutation input must have WIDTH elements")

// permutation is the in-circuit Poseidon2 permutation for WIDTH = 2.
type permutation struct {
	api       frontend.API
	degree    int
	full      int
	partial   int
	roundKeys [][]big.Int // [round][lane]
}

func newPermutation(api frontend.API) *permutation {
	params := poseidonbls12381.NewParametersWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
	keys := make([][]big.Int, len(params.RoundKeys))
	for i := range keys {
		keys[i] = make([]big.Int, len(params.RoundKeys[i]))
		for j := range keys[i] {
			params.RoundKeys[i][j].BigInt(&keys[i][j])
		}
	}
	return &permutation{
		api:       api,
		degree:    poseidonbls12381.DegreeSBox(),
		full:      ROUND_FULL,
		partial:   ROUND_PARTIAL,
		roundKeys: keys,
	}
}

func (h *permutation) sBox(index int, input []frontend.Variable) {
	tmp := input[index]
	switch h.degree {
	case 5:
		input[index] = h.api.Mul(input[index], input[index])
		input[index] = h.api.Mul(input[index], input[index])
		input[index] = h.api.Mul(input[index], tmp)
	case 7:
		input[index] = h.api.Mul(input[index], input[index])
		input[index] = h.api.Mul(input[index], tmp)
		input[index] = h.api.Mul(input[index], input[index])
		input[index] = h.api.Mul(input[index], tmp)
	default:
		panic("unsupported sBox degree")
	}
}

// external MDS for t = 2 is circ(2, 1)
func (h *permutation) matMulExternal(input []frontend.Variable) {
	tmp := h.api.Add(input[0], input[1])
	input[0] = h.api.Add(tmp, input[0])
	input[1] = h.api.Add(tmp, input[1])
}

// internal matrix for t = 2 is [[2, 1], [1, 3]]
func (h *permutation) matMulInternal(input []frontend.Variable) {
	sum := h.api.Add(input[0], input[1])
	input[0] = h.api.Add(input[0], sum)
	input[1] = h.api.Mul(2, input[1])
	input[1] = h.api.Add(input[1], sum)
}

func (h *permutation) addRoundKey(round int, input []frontend.Variable) {
	for i := range h.roundKeys[round] {
		input[i] = h.api.Add(input[i], h.roundKeys[round][i])
	}
}

// Permute applies the permutation in place.
func (h *permutation) Permute(input []frontend.Variable) error {
	if len(input) != WIDTH {
		return ErrInvalidSizeBuffer
	}
	h.matMulExternal(input)

	rf := h.full / 2
	for i := 0; i < rf; i++ {
		h.addRoundKey(i, input)
		for j := range input {
			h.sBox(j, input)
		}
		h.matMulExternal(input)
	}
	for i := rf; i < rf+h.partial; i++ {
		h.addRoundKey(i, input)
		h.sBox(0, input)
		h.matMulInternal(input)
	}
	for i := rf + h.partial; i < h.full+h.partial; i++ {
		h.addRoundKey(i, input)
		for j := range input {
			h.sBox(j, input)
		}
		h.matMulExternal(input)
	}
	return nil
}

// Compress returns perm([left, right])[1] + right.
func (h *permutation) Compress(left, right frontend.Variable) frontend.Variable {
	vars := [2]frontend.Variable{left, right}
	if err := h.Permute(vars[:]); err != nil {
		panic(err)
	}
	return h.api.Add(vars[1], right)
}

// Sum folds vals into Compress starting from zero.
func (h *permutation) Sum(vals ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 0
	for _, v := range vals {
		acc = h.Compress(acc, v)
	}
	return acc
}

// G1Limbs is a base field coordinate pair split over the scalar field:
// X = XQ*r + XM, Y = YQ*r + YM. The limbs are assigned, not recomputed, in
// the circuit.
type G1Limbs struct {
	XQ frontend.Variable
	XM frontend.Variable
	YQ frontend.Variable
	YM frontend.Variable
}

// HashG1 matches the native HashG1.
func (h *permutation) HashG1(g G1Limbs) frontend.Variable {
	x := h.Compress(g.XQ, g.XM)
	y := h.Compress(g.YQ, g.YM)
	return h.Compress(x, y)
}
