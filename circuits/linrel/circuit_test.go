package linrel

import (
	"fmt"
	"log"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	frbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test"

	"github.com/eon-protocol/linsigma"
	"github.com/eon-protocol/linsigma/curve"
	"github.com/eon-protocol/linsigma/transcript"
)

type permCircuit struct {
	Input  []frontend.Variable
	Output []frontend.Variable `gnark:",public"`
}

func (c *permCircuit) Define(api frontend.API) error {
	if err := newPermutation(api).Permute(c.Input); err != nil {
		return fmt.Errorf("permute: %w", err)
	}
	for i := range c.Input {
		api.AssertIsEqual(c.Output[i], c.Input[i])
	}
	return nil
}

func TestPermutationMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)

	for it := 0; it < 4; it++ {
		var in, out [WIDTH]frbls12381.Element
		for i := range in {
			in[i].SetRandom()
		}
		copy(out[:], in[:])
		if err := GetPermutation().Permutation(out[:]); err != nil {
			t.Fatalf("native permutation failed: %v", err)
		}

		circuit := permCircuit{Input: make([]frontend.Variable, WIDTH), Output: make([]frontend.Variable, WIDTH)}
		witness := permCircuit{Input: make([]frontend.Variable, WIDTH), Output: make([]frontend.Variable, WIDTH)}
		for i := range in {
			witness.Input[i] = in[i].String()
			witness.Output[i] = out[i].String()
		}
		assert.CheckCircuit(&circuit, test.WithValidAssignment(&witness), test.WithCurves(ecc.BLS12_381))
		log.Println("pass one permutation test iteration")
	}
}

func proveSum(t *testing.T, n int) (curve.Curve, linsigma.LinearForm, *linsigma.Proof, *linsigma.Statement) {
	t.Helper()
	c := curve.NewBLS12381()
	pp, err := linsigma.NewParams(c, n, "linrel/test")
	if err != nil {
		t.Fatal(err)
	}
	form := linsigma.NewSumForm(c, n+1)
	rnd := transcript.DeterministicReader([]byte("linrel"))
	w := &linsigma.Witness{X: make([]curve.Scalar, n)}
	for i := range w.X {
		w.X[i] = c.NewScalar(uint64(3*i + 2))
	}
	w.Gamma = c.NewScalar(77)
	st, err := pp.Commit(form, w)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := pp.Prove(rnd, form, w)
	if err != nil {
		t.Fatal(err)
	}
	if err := pp.Verify(form, st, proof); err != nil {
		t.Fatal(err)
	}
	return c, form, proof, st
}

func TestCircuitAcceptsVerifiedProof(t *testing.T) {
	assert := test.NewAssert(t)
	c, form, proof, st := proveSum(t, 3)

	valid, err := Assignment(c, form, proof, st.Y)
	assert.NoError(err)

	wrongClaim, err := Assignment(c, form, proof, c.ScalarAdd(st.Y, c.NewScalar(1)))
	assert.NoError(err)

	wrongDigest, err := Assignment(c, form, proof, st.Y)
	assert.NoError(err)
	wrongDigest.Digest = new(big.Int).Add(wrongDigest.Digest.(*big.Int), big.NewInt(1))

	assert.CheckCircuit(NewCircuit(3),
		test.WithValidAssignment(valid),
		test.WithInvalidAssignment(wrongClaim),
		test.WithInvalidAssignment(wrongDigest),
		test.WithCurves(ecc.BLS12_381),
	)
}

func TestNativeDigestMatchesAssignment(t *testing.T) {
	assert := test.NewAssert(t)
	c, form, proof, st := proveSum(t, 1)

	a, err := Assignment(c, form, proof, st.Y)
	assert.NoError(err)

	var z frbls12381.Element
	z.SetBigInt(proof.Z[0].BigInt())
	aHat := proof.AHat.(*curve.BLS12381Point).Affine()
	want := Digest(aHat, []frbls12381.Element{z})
	assert.Equal(toBig(want), a.Digest)

	// digest depends on the response
	z.SetOne()
	assert.NotEqual(toBig(want), toBig(Digest(aHat, []frbls12381.Element{z})))
}

func TestAssignmentRejectsForeignCurve(t *testing.T) {
	assert := test.NewAssert(t)
	c, form, proof, st := proveSum(t, 1)

	_, err := Assignment(curve.NewBN254(), form, proof, st.Y)
	assert.ErrorIs(err, curve.ErrUnsupportedCurve)

	_, err = Assignment(c, linsigma.NewSumForm(c, 4), proof, st.Y)
	assert.ErrorIs(err, ErrShape)
}

func TestCircuitCompiles(t *testing.T) {
	assert := test.NewAssert(t)
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), scs.NewBuilder, NewCircuit(7))
	assert.NoError(err)
	assert.Greater(ccs.GetNbConstraints(), 0)
	log.Println("linrel n=7 constraints:", ccs.GetNbConstraints())

	bad := &Circuit{Coefficients: make([]frontend.Variable, 3), Z: make([]frontend.Variable, 2)}
	_, err = frontend.Compile(ecc.BLS12_381.ScalarField(), scs.NewBuilder, bad)
	assert.ErrorContains(err, ErrShape.Error())
}

func TestCircuitHasNoUnusedCoefficient(t *testing.T) {
	assert := test.NewAssert(t)
	c, form, proof, st := proveSum(t, 3)
	assert.Len(NewCircuit(3).Coefficients, 3)

	// forms that differ only in a_n accept the same proof natively
	coeffs := form.Coefficients()
	coeffs[3] = c.NewScalar(9)
	other := linsigma.NewDotForm(c, coeffs)
	assert.True(other.Eval(proof.Z).Equal(form.Eval(proof.Z)))

	a, err := Assignment(c, form, proof, st.Y)
	assert.NoError(err)
	b, err := Assignment(c, other, proof, st.Y)
	assert.NoError(err)
	assert.Len(a.Coefficients, 3)
	assert.Equal(a, b)

	assert.CheckCircuit(NewCircuit(3), test.WithValidAssignment(b), test.WithCurves(ecc.BLS12_381))
}

func TestAssignmentRejectsIncompleteInputs(t *testing.T) {
	assert := test.NewAssert(t)
	c, form, proof, st := proveSum(t, 2)

	_, err := Assignment(c, form, nil, st.Y)
	assert.ErrorIs(err, ErrShape)
	_, err = Assignment(c, nil, proof, st.Y)
	assert.ErrorIs(err, ErrShape)
	_, err = Assignment(nil, form, proof, st.Y)
	assert.ErrorIs(err, curve.ErrUnsupportedCurve)

	_, err = Assignment(c, form, proof, nil)
	assert.ErrorIs(err, linsigma.ErrInvalidResponse)
	_, err = Assignment(c, form, proof, (*curve.BLS12381Scalar)(nil))
	assert.ErrorIs(err, linsigma.ErrInvalidResponse)

	noT := *proof
	noT.T = nil
	_, err = Assignment(c, form, &noT, st.Y)
	assert.ErrorIs(err, linsigma.ErrInvalidResponse)

	noAHat := *proof
	noAHat.AHat = (*curve.BLS12381Point)(nil)
	_, err = Assignment(c, form, &noAHat, st.Y)
	assert.ErrorIs(err, linsigma.ErrInvalidResponse)

	holed := *proof
	holed.Z = append([]curve.Scalar(nil), proof.Z...)
	holed.Z[0] = nil
	_, err = Assignment(c, form, &holed, st.Y)
	assert.ErrorIs(err, linsigma.ErrInvalidResponse)
}
