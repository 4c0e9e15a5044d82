package linsigma

import (
	"bytes"
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/consensys/gnark/test"

	"github.com/eon-protocol/linsigma/curve"
)

func TestNewParams(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewBLS12381()

	var count atomic.Int64
	pp, err := NewParams(c, 7, testLabel, WithProgress(func(n int) { count.Add(int64(n)) }))
	assert.NoError(err)
	assert.Equal(7, pp.Size())
	assert.Equal(int64(9), count.Load())
	assert.NoError(pp.Validate())

	// generators are pairwise distinct and reproducible
	seen := map[string]bool{}
	for _, p := range append(append([]curve.Point(nil), pp.G...), pp.H, pp.K) {
		seen[string(p.Bytes())] = true
	}
	assert.Len(seen, 9)

	again, err := NewParams(c, 7, testLabel)
	assert.NoError(err)
	for i := range pp.G {
		assert.True(pp.G[i].Equal(again.G[i]))
	}
	assert.True(pp.H.Equal(again.H))

	other, err := NewParams(c, 7, "another label")
	assert.NoError(err)
	assert.False(pp.G[0].Equal(other.G[0]))

	_, err = NewParams(c, -1, testLabel)
	assert.ErrorIs(err, ErrFaultyParameterSize)
	_, err = NewParams(c, 6, testLabel)
	assert.ErrorIs(err, ErrNotPowerOfTwo)
}

func TestParamsValidate(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewRistretto255()
	pp, err := NewParams(c, 1, testLabel)
	assert.NoError(err)

	bad := *pp
	bad.H = c.Identity()
	assert.ErrorIs(bad.Validate(), curve.ErrIdentityPoint)

	bad = *pp
	bad.G = append(bad.G, pp.H)
	assert.ErrorIs(bad.Validate(), ErrNotPowerOfTwo)

	bad = *pp
	bad.K = curve.NewBLS12381().Generator()
	assert.Error(bad.Validate())

	assert.Error((&Params{}).Validate())
}

func TestParamsEncoding(t *testing.T) {
	for _, c := range testCurves(t) {
		t.Run(c.Name(), func(t *testing.T) {
			assert := test.NewAssert(t)
			pp, err := NewParams(c, 3, testLabel)
			assert.NoError(err)

			var buf bytes.Buffer
			n, err := pp.WriteTo(&buf)
			assert.NoError(err)
			assert.Equal(int64(buf.Len()), n)
			assert.Equal(1+len(c.Name())+4+5*c.PointSize(), buf.Len())
			data := buf.Bytes()

			var decoded Params
			m, err := decoded.ReadFrom(bytes.NewReader(data))
			assert.NoError(err)
			assert.Equal(n, m)
			assert.Equal(c.Name(), decoded.Curve.Name())
			assert.Equal(3, decoded.Size())
			for i := range pp.G {
				assert.True(pp.G[i].Equal(decoded.G[i]))
			}
			assert.True(pp.H.Equal(decoded.H))
			assert.True(pp.K.Equal(decoded.K))

			_, err = new(Params).ReadFrom(bytes.NewReader(data[:len(data)-1]))
			assert.ErrorIs(err, ErrSerialization)
		})
	}
}

func TestParamsDecodingRejectsMalformed(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewBN254()
	pp, err := NewParams(c, 1, testLabel)
	assert.NoError(err)
	var buf bytes.Buffer
	_, err = pp.WriteTo(&buf)
	assert.NoError(err)
	data := buf.Bytes()
	lenOffset := 1 + len(c.Name())

	unknown := append([]byte(nil), data...)
	copy(unknown[1:], "xx")
	_, err = new(Params).ReadFrom(bytes.NewReader(unknown))
	assert.ErrorIs(err, ErrSerialization)

	huge := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(huge[lenOffset:], MAX_VECTOR_LEN+1)
	_, err = new(Params).ReadFrom(bytes.NewReader(huge))
	assert.ErrorIs(err, ErrSerialization)

	// two generators decode fine but break the sizing invariant
	var grown bytes.Buffer
	bad := *pp
	bad.G = append(append([]curve.Point(nil), pp.G...), pp.H)
	_, err = bad.WriteTo(&grown)
	assert.NoError(err)
	_, err = new(Params).ReadFrom(&grown)
	assert.ErrorIs(err, ErrNotPowerOfTwo)

	_, err = new(Params).ReadFrom(bytes.NewReader(nil))
	assert.ErrorIs(err, ErrSerialization)
}

func TestCommit(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewSecp256k1()
	pp, err := NewParams(c, 1, testLabel)
	assert.NoError(err)
	form := NewDotForm(c, scalars(c, 4, 1))

	w := &Witness{X: scalars(c, 3), Gamma: c.NewScalar(8)}
	st, err := pp.Commit(form, w)
	assert.NoError(err)
	want := c.Add(c.ScalarMult(pp.G[0], c.NewScalar(3)), c.ScalarMult(pp.H, c.NewScalar(8)))
	assert.True(st.P.Equal(want))
	assert.True(st.Y.Equal(c.NewScalar(12)))

	_, err = pp.Commit(form, &Witness{X: scalars(c, 1, 2), Gamma: c.NewScalar(1)})
	assert.ErrorIs(err, ErrVectorLenMismatch)

	assert.ErrorIs(pp.Verify(form, nil, &Proof{}), ErrInvalidResponse)
}
