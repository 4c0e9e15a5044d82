package linsigma

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/consensys/gnark/test"

	"github.com/eon-protocol/linsigma/curve"
	"github.com/eon-protocol/linsigma/transcript"
)

func TestProofEncoding(t *testing.T) {
	for _, c := range testCurves(t) {
		t.Run(c.Name(), func(t *testing.T) {
			assert := test.NewAssert(t)
			rnd := transcript.DeterministicReader([]byte("encoding"))
			pp, err := NewParams(c, 3, testLabel)
			assert.NoError(err)
			form := NewSumForm(c, 4)
			w := randomWitness(t, c, 3, rnd)
			st, err := pp.Commit(form, w)
			assert.NoError(err)
			proof, err := pp.Prove(rnd, form, w)
			assert.NoError(err)

			data, err := proof.MarshalBinary()
			assert.NoError(err)
			assert.Equal(c.ScalarSize()+c.PointSize()+4+3*c.ScalarSize()+c.ScalarSize(), len(data))
			assert.Equal(proof.T.Bytes(), data[:c.ScalarSize()])

			var buf bytes.Buffer
			n, err := proof.WriteTo(&buf)
			assert.NoError(err)
			assert.Equal(int64(len(data)), n)
			assert.Equal(data, buf.Bytes())

			decoded, err := ReadProof(c, &buf)
			assert.NoError(err)
			assert.NoError(pp.Verify(form, st, decoded))

			_, err = UnmarshalProof(c, append(append([]byte(nil), data...), 0))
			assert.ErrorIs(err, ErrSerialization)
			_, err = UnmarshalProof(c, data[:len(data)-1])
			assert.ErrorIs(err, ErrSerialization)
		})
	}
}

func TestProofDecodingRejectsMalformed(t *testing.T) {
	assert := test.NewAssert(t)
	c := curve.NewBLS12381()
	rnd := transcript.DeterministicReader([]byte("malformed"))
	pp, err := NewParams(c, 1, testLabel)
	assert.NoError(err)
	proof, err := pp.Prove(rnd, NewSumForm(c, 2), randomWitness(t, c, 1, rnd))
	assert.NoError(err)
	data, err := proof.MarshalBinary()
	assert.NoError(err)

	// t = q is not a canonical scalar
	unreduced := append([]byte(nil), data...)
	q := c.Order().FillBytes(make([]byte, c.ScalarSize()))
	for i := range q {
		unreduced[i] = q[len(q)-1-i]
	}
	_, err = UnmarshalProof(c, unreduced)
	assert.ErrorIs(err, ErrSerialization)
	assert.ErrorIs(err, curve.ErrInvalidScalar)

	badPoint := append([]byte(nil), data...)
	badPoint[c.ScalarSize()] |= 0xe0
	_, err = UnmarshalProof(c, badPoint)
	assert.ErrorIs(err, ErrSerialization)

	huge := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(huge[c.ScalarSize()+c.PointSize():], MAX_VECTOR_LEN+1)
	_, err = UnmarshalProof(c, huge)
	assert.ErrorIs(err, ErrSerialization)

	_, err = UnmarshalProof(c, nil)
	assert.ErrorIs(err, ErrSerialization)

	// a proof for one curve does not decode on another
	_, err = UnmarshalProof(curve.NewRistretto255(), data)
	assert.ErrorIs(err, ErrSerialization)
}
