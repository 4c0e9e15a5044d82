package linsigma

import (
	"testing"

	"github.com/consensys/gnark/test"

	"github.com/eon-protocol/linsigma/curve"
)

func scalars(c curve.Curve, vs ...uint64) []curve.Scalar {
	out := make([]curve.Scalar, len(vs))
	for i, v := range vs {
		out[i] = c.NewScalar(v)
	}
	return out
}

func TestLinearFormEval(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewBN254()

	sum := NewSumForm(c, 4)
	assert.Equal(4, sum.Size())
	assert.True(sum.Eval(scalars(c, 2, 5, 9)).Equal(c.NewScalar(16)))
	assert.True(sum.Eval(scalars(c, 2, 5, 9, 1)).Equal(c.NewScalar(17)))
	// entries past Size are ignored
	assert.True(sum.Eval(scalars(c, 1, 1, 1, 1, 100)).Equal(c.NewScalar(4)))
	assert.True(sum.Eval(nil).IsZero())

	dot := NewDotForm(c, scalars(c, 3, 0, 2, 7))
	assert.Equal(4, dot.Size())
	assert.True(dot.Eval(scalars(c, 1, 100, 10)).Equal(c.NewScalar(23)))

	// the form keeps its own copy of the coefficients
	coeffs := scalars(c, 1, 1)
	f := NewDotForm(c, coeffs)
	coeffs[0] = c.NewScalar(50)
	assert.True(f.Eval(scalars(c, 1, 1)).Equal(c.NewScalar(2)))
}

func TestLinearFormCombinators(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewBLS12381()
	x := scalars(c, 1, 2, 3, 4)

	sum := NewSumForm(c, 4)
	dot := NewDotForm(c, scalars(c, 5, 6, 7, 8))

	scaled := dot.Scale(c.NewScalar(2))
	assert.True(scaled.Eval(x).Equal(c.ScalarMul(c.NewScalar(2), dot.Eval(x))))
	assert.True(sum.Scale(c.NewScalar(3)).Eval(x).Equal(c.NewScalar(30)))

	added, err := sum.Add(dot)
	assert.NoError(err)
	assert.True(added.Eval(x).Equal(c.ScalarAdd(sum.Eval(x), dot.Eval(x))))

	_, err = dot.Add(NewSumForm(c, 2))
	assert.ErrorIs(err, ErrVectorLenMismatch)
	_, err = sum.Add(nil)
	assert.ErrorIs(err, ErrVectorLenMismatch)

	left, right, err := dot.SplitInHalf()
	assert.NoError(err)
	assert.Equal(2, left.Size())
	assert.Equal(2, right.Size())
	assert.True(c.ScalarAdd(left.Eval(x[:2]), right.Eval(x[2:])).Equal(dot.Eval(x)))

	l, r, err := NewSumForm(c, 3).SplitInHalf()
	assert.NoError(err)
	assert.Equal(1, l.Size())
	assert.Equal(2, r.Size())

	_, _, err = NewSumForm(c, 1).SplitInHalf()
	assert.ErrorIs(err, ErrVectorTooShort)
	_, _, err = NewDotForm(c, scalars(c, 1)).SplitInHalf()
	assert.ErrorIs(err, ErrVectorTooShort)

	padded, err := NewSumForm(c, 3).Pad(4)
	assert.NoError(err)
	assert.Equal(4, padded.Size())
	assert.True(padded.Eval(x).Equal(c.NewScalar(6)))
	assert.True(padded.Coefficients()[3].IsZero())

	same, err := sum.Pad(4)
	assert.NoError(err)
	assert.Equal(4, same.Size())

	_, err = dot.Pad(2)
	assert.ErrorIs(err, ErrFaultyParameterSize)
	_, err = sum.Pad(2)
	assert.ErrorIs(err, ErrFaultyParameterSize)
}
