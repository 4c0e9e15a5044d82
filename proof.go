package linsigma

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/consensys/gnark/logger"

	"github.com/eon-protocol/linsigma/curve"
)

// Proof is the only message sent from prover to verifier.
type Proof struct {
	T    curve.Scalar   // L(r), the form evaluated on the blinding vector
	AHat curve.Point    // MSM(g, r) + h^rho
	Z    []curve.Scalar // c0*x + r
	Phi  curve.Scalar   // c0*gamma + rho
}

// Challenges returns (c0, c1) for this proof's first message.
func (me *Proof) Challenges(c curve.Curve) (curve.Scalar, curve.Scalar) {
	return Challenges(c, me.T, me.AHat)
}

// Verify checks the proof against commitment P and claimed evaluation y.
// k is accepted for the compressed variant's parameter contract and is not
// read. Any rejection wraps ErrInvalidResponse; malformed sizes report the
// size error instead.
func (me *Proof) Verify(c curve.Curve, g []curve.Point, h, k curve.Point, form LinearForm, P curve.Point, y curve.Scalar) error {
	if err := checkSizes(len(g), form); err != nil {
		return err
	}
	if len(g)+1 != form.Size() {
		return fmt.Errorf("%w: %d generators, linear form of size %d", ErrVectorLenMismatch, len(g), form.Size())
	}
	if me == nil || curve.IsNil(me.T) || curve.IsNil(me.Phi) || curve.IsNil(me.AHat) {
		return fmt.Errorf("%w: incomplete proof", ErrInvalidResponse)
	}
	if len(g) != len(me.Z) {
		return fmt.Errorf("%w: %d generators, response of length %d", ErrVectorLenMismatch, len(g), len(me.Z))
	}
	for i, z := range me.Z {
		if curve.IsNil(z) {
			return fmt.Errorf("%w: missing response entry %d", ErrInvalidResponse, i)
		}
	}
	if curve.IsNil(y) {
		return fmt.Errorf("%w: missing claimed value", ErrInvalidResponse)
	}
	if curve.IsNil(P) {
		return fmt.Errorf("%w: missing commitment", ErrInvalidResponse)
	}
	if err := c.ValidatePoint(me.AHat); err != nil {
		return fmt.Errorf("%w: A_hat: %w", ErrInvalidResponse, err)
	}
	if err := c.ValidatePoint(P); err != nil {
		return fmt.Errorf("%w: commitment: %w", ErrInvalidResponse, err)
	}
	log := logger.Logger().With().Str("curve", c.Name()).Int("n", len(g)).Str("protocol", "linsigma").Logger()
	start := time.Now()

	c0, _ := me.Challenges(c)

	lhs, err := concatMSM(c, g, me.Z, h, me.Phi)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	rhs := c.Add(c.ScalarMult(P, c0), me.AHat)
	if !lhs.Equal(rhs) {
		log.Debug().Msg("commitment relation does not hold")
		return fmt.Errorf("%w: commitment relation does not hold", ErrInvalidResponse)
	}

	if !form.Eval(me.Z).Equal(c.ScalarAdd(c.ScalarMul(c0, y), me.T)) {
		log.Debug().Msg("linear relation does not hold")
		return fmt.Errorf("%w: linear relation does not hold", ErrInvalidResponse)
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}

// WriteTo encodes the proof as T || A_hat || u32be(len(Z)) || Z... || Phi with
// the curve's canonical encodings.
func (me *Proof) WriteTo(w io.Writer) (int64, error) {
	if me.incomplete() {
		return 0, serializationError(errors.New("incomplete proof"))
	}
	var written int64
	put := func(b []byte) error {
		n, err := w.Write(b)
		written += int64(n)
		return err
	}
	if err := put(me.T.Bytes()); err != nil {
		return written, err
	}
	if err := put(me.AHat.Bytes()); err != nil {
		return written, err
	}
	buf := [4]byte{}
	binary.BigEndian.PutUint32(buf[:], uint32(len(me.Z)))
	if err := put(buf[:]); err != nil {
		return written, err
	}
	for _, z := range me.Z {
		if err := put(z.Bytes()); err != nil {
			return written, err
		}
	}
	if err := put(me.Phi.Bytes()); err != nil {
		return written, err
	}
	return written, nil
}

func (me *Proof) incomplete() bool {
	if me == nil || curve.IsNil(me.T) || curve.IsNil(me.AHat) || curve.IsNil(me.Phi) {
		return true
	}
	for _, z := range me.Z {
		if curve.IsNil(z) {
			return true
		}
	}
	return false
}

func (me *Proof) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := me.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadProof decodes a proof written by WriteTo. Every failure wraps
// ErrSerialization.
func ReadProof(c curve.Curve, r io.Reader) (*Proof, error) {
	get := func(n int) ([]byte, error) {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, serializationError(err)
		}
		return buf, nil
	}
	readScalar := func() (curve.Scalar, error) {
		b, err := get(c.ScalarSize())
		if err != nil {
			return nil, err
		}
		s, err := c.ParseScalar(b)
		if err != nil {
			return nil, serializationError(err)
		}
		return s, nil
	}

	var proof Proof
	var err error
	if proof.T, err = readScalar(); err != nil {
		return nil, err
	}
	b, err := get(c.PointSize())
	if err != nil {
		return nil, err
	}
	if proof.AHat, err = c.ParsePoint(b); err != nil {
		return nil, serializationError(err)
	}
	if b, err = get(4); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(b)
	if n > MAX_VECTOR_LEN {
		return nil, serializationError(fmt.Errorf("response length %d exceeds %d", n, MAX_VECTOR_LEN))
	}
	proof.Z = make([]curve.Scalar, n)
	for i := range proof.Z {
		if proof.Z[i], err = readScalar(); err != nil {
			return nil, err
		}
	}
	if proof.Phi, err = readScalar(); err != nil {
		return nil, err
	}
	return &proof, nil
}

// UnmarshalProof decodes exactly one proof from data.
func UnmarshalProof(c curve.Curve, data []byte) (*Proof, error) {
	r := bytes.NewReader(data)
	proof, err := ReadProof(c, r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, serializationError(errors.New("trailing bytes after proof"))
	}
	return proof, nil
}
