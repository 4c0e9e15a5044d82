package linsigma

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/consensys/gnark/logger"

	"github.com/eon-protocol/linsigma/curve"
)

// Witness is the prover's secret opening: P = MSM(g, X) + h^Gamma. It only
// lives for the duration of proving and has no encoding.
type Witness struct {
	X     []curve.Scalar
	Gamma curve.Scalar
}

// Statement is the public claim: P opens to some x with L(x) = Y.
type Statement struct {
	P curve.Point
	Y curve.Scalar
}

func (w *Witness) check(g []curve.Point, form LinearForm) error {
	if err := checkSizes(len(g), form); err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: nil witness", ErrVectorLenMismatch)
	}
	if len(g) != len(w.X) {
		return fmt.Errorf("%w: %d generators, witness of length %d", ErrVectorLenMismatch, len(g), len(w.X))
	}
	if len(g)+1 != form.Size() {
		return fmt.Errorf("%w: %d generators, linear form of size %d", ErrVectorLenMismatch, len(g), form.Size())
	}
	for i, x := range w.X {
		if x == nil {
			return fmt.Errorf("%w: missing witness entry %d", ErrVectorLenMismatch, i)
		}
	}
	if w.Gamma == nil {
		return fmt.Errorf("%w: missing blinding gamma", ErrVectorLenMismatch)
	}
	return nil
}

// Prove produces a non-interactive proof that the witness opens the
// commitment over (g, h) and evaluates to L(x) under form. All blinding
// values are read from rnd; a fixed rnd yields a fixed proof.
func (w *Witness) Prove(rnd io.Reader, c curve.Curve, g []curve.Point, h curve.Point, form LinearForm) (*Proof, error) {
	if err := w.check(g, form); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, errors.New("nil randomness source")
	}
	log := logger.Logger().With().Str("curve", c.Name()).Int("n", len(g)).Str("protocol", "linsigma").Logger()
	start := time.Now()

	rho, err := c.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	r := make([]curve.Scalar, len(g))
	for i := range r {
		if r[i], err = c.RandomScalar(rnd); err != nil {
			return nil, err
		}
	}

	t := form.Eval(r)
	aHat, err := concatMSM(c, g, r, h, rho)
	if err != nil {
		return nil, serializationError(err)
	}

	c0, _ := Challenges(c, t, aHat)

	z := make([]curve.Scalar, len(w.X))
	for i := range z {
		z[i] = c.ScalarAdd(c.ScalarMul(c0, w.X[i]), r[i])
	}
	phi := c.ScalarAdd(c.ScalarMul(c0, w.Gamma), rho)

	log.Debug().Dur("took", time.Since(start)).Msg("prover done")
	return &Proof{T: t, AHat: aHat, Z: z, Phi: phi}, nil
}
