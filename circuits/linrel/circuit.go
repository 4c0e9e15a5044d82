// Package linrel re-checks the scalar relation of a verified linear-form
// proof inside a gnark circuit over the BLS12-381 scalar field.
//
// The circuit asserts sum(a_i * z_i) == c0*y + t and that a public Poseidon2
// digest binds the private response z to the proof's A_hat. The group
// relation is not re-checked; callers verify the proof natively first.
package linrel

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/eon-protocol/linsigma"
	"github.com/eon-protocol/linsigma/curve"
)

var ErrShape = errors.New("circuit shape does not match the response length")

type Circuit struct {
	Coefficients []frontend.Variable `gnark:",public"`
	C0           frontend.Variable   `gnark:",public"`
	Y            frontend.Variable   `gnark:",public"`
	T            frontend.Variable   `gnark:",public"`
	Digest       frontend.Variable   `gnark:",public"`

	Z    []frontend.Variable
	AHat G1Limbs
}

// NewCircuit allocates the placeholder for a response of length n. A form of
// size n+1 never reaches its last coefficient on n responses, so only the
// first n coefficients are public.
func NewCircuit(n int) *Circuit {
	return &Circuit{
		Coefficients: make([]frontend.Variable, n),
		Z:            make([]frontend.Variable, n),
	}
}

func (me *Circuit) Define(api frontend.API) error {
	if len(me.Coefficients) != len(me.Z) {
		return fmt.Errorf("%w: %d coefficients, %d responses", ErrShape, len(me.Coefficients), len(me.Z))
	}
	var lhs frontend.Variable = 0
	for i := range me.Z {
		lhs = api.Add(lhs, api.Mul(me.Coefficients[i], me.Z[i]))
	}
	api.AssertIsEqual(lhs, api.Add(api.Mul(me.C0, me.Y), me.T))

	perm := newPermutation(api)
	digest := perm.Sum(append([]frontend.Variable{perm.HashG1(me.AHat)}, me.Z...)...)
	api.AssertIsEqual(digest, me.Digest)
	return nil
}

// Assignment builds the full witness for a BLS12-381 proof of claim y under
// form. The challenge is recomputed from the proof transcript.
func Assignment(c curve.Curve, form linsigma.LinearForm, proof *linsigma.Proof, y curve.Scalar) (*Circuit, error) {
	if c == nil {
		return nil, curve.ErrUnsupportedCurve
	}
	if c.Name() != CURVE {
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, c.Name())
	}
	if proof == nil || form == nil {
		return nil, fmt.Errorf("%w: missing proof or form", ErrShape)
	}
	if form.Size() != len(proof.Z)+1 {
		return nil, fmt.Errorf("%w: form of size %d, %d responses", ErrShape, form.Size(), len(proof.Z))
	}
	if curve.IsNil(proof.AHat) {
		return nil, fmt.Errorf("%w: missing A_hat", linsigma.ErrInvalidResponse)
	}
	aHat, ok := proof.AHat.(*curve.BLS12381Point)
	if !ok {
		return nil, curve.ErrInvalidPoint
	}
	if curve.IsNil(proof.T) || curve.IsNil(y) {
		return nil, fmt.Errorf("%w: missing t or claimed value", linsigma.ErrInvalidResponse)
	}
	for i, s := range proof.Z {
		if curve.IsNil(s) {
			return nil, fmt.Errorf("%w: missing response entry %d", linsigma.ErrInvalidResponse, i)
		}
	}
	c0, _ := proof.Challenges(c)

	assignment := NewCircuit(len(proof.Z))
	for i, a := range form.Coefficients()[:len(proof.Z)] {
		assignment.Coefficients[i] = a.BigInt()
	}
	z := make([]fr.Element, len(proof.Z))
	for i, s := range proof.Z {
		z[i].SetBigInt(s.BigInt())
		assignment.Z[i] = s.BigInt()
	}
	assignment.C0 = c0.BigInt()
	assignment.Y = y.BigInt()
	assignment.T = proof.T.BigInt()

	limbs := DecomposeG1(aHat.Affine())
	assignment.AHat = G1Limbs{
		XQ: toBig(limbs[0][0]),
		XM: toBig(limbs[0][1]),
		YQ: toBig(limbs[1][0]),
		YM: toBig(limbs[1][1]),
	}
	digest := Digest(aHat.Affine(), z)
	assignment.Digest = toBig(digest)
	return assignment, nil
}

func toBig(e fr.Element) *big.Int {
	var b big.Int
	e.BigInt(&b)
	return &b
}
