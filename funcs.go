package linsigma

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"runtime"

	"github.com/eon-protocol/linsigma/curve"
	"github.com/eon-protocol/linsigma/transcript"
	"golang.org/x/sync/errgroup"
)

func isPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

// checkSizes runs the sizing checks shared by Prove, Verify and Commit, in
// the order they are specified: n+1 and the form size must be powers of two,
// then n+1 must equal the form size.
func checkSizes(n int, form LinearForm) error {
	if !isPowerOfTwo(n + 1) {
		return fmt.Errorf("%w: generator count + 1 = %d", ErrNotPowerOfTwo, n+1)
	}
	if form == nil {
		return fmt.Errorf("%w: nil linear form", ErrVectorLenMismatch)
	}
	if !isPowerOfTwo(form.Size()) {
		return fmt.Errorf("%w: linear form size = %d", ErrNotPowerOfTwo, form.Size())
	}
	return nil
}

// Challenges replays the Fiat-Shamir transcript over the first message
// (t, A_hat) and returns c0 and c1. Only c0 enters the direct protocol; c1
// is derived so the transcript stays compatible with the compressed variant.
func Challenges(c curve.Curve, t curve.Scalar, aHat curve.Point) (curve.Scalar, curve.Scalar) {
	tr := transcript.New(PROTOCOL_DOMAIN)
	tr.Absorb(LABEL_T, t.Bytes())
	tr.Absorb(LABEL_A_HAT, aHat.Bytes())
	c0 := c.ScalarFromBytesLE(tr.Derive(LABEL_C0, CHALLENGE_BYTES))
	c1 := c.ScalarFromBytesLE(tr.Derive(LABEL_C1, CHALLENGE_BYTES))
	return c0, c1
}

// HashGenerator derives one nothing-up-my-sleeve generator: tag || u32be(index)
// hashed to the group under dst.
func HashGenerator(c curve.Curve, dst, tag []byte, index uint32) (curve.Point, error) {
	msg := make([]byte, len(tag)+4)
	copy(msg, tag)
	binary.BigEndian.PutUint32(msg[len(tag):], index)
	p, err := c.HashToPoint(msg, dst)
	if err != nil {
		return nil, err
	}
	if err := c.ValidatePoint(p); err != nil {
		return nil, err
	}
	return p, nil
}

// deriveGenerators computes g_0..g_{n-1}, h and k in parallel. progress, when
// set, is called once per finished generator from worker goroutines.
func deriveGenerators(c curve.Curve, n int, label string, progress func(int)) ([]curve.Point, curve.Point, curve.Point, error) {
	dst := []byte(label)
	g := make([]curve.Point, n)
	var h, k curve.Point
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	spawn := func(out *curve.Point, tag []byte, index uint32) {
		eg.Go(func() error {
			p, err := HashGenerator(c, dst, tag, index)
			if err != nil {
				return fmt.Errorf("generator %s[%d]: %w", tag, index, err)
			}
			*out = p
			if progress != nil {
				progress(1)
			}
			return nil
		})
	}
	for i := range g {
		spawn(&g[i], GENERATOR_TAG_G, uint32(i))
	}
	spawn(&h, GENERATOR_TAG_H, 0)
	spawn(&k, GENERATOR_TAG_K, 0)
	if err := eg.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return g, h, k, nil
}

// concatMSM evaluates MSM(bases, exps) + extra^e as one multi-exponentiation
// without touching the caller's slices.
func concatMSM(c curve.Curve, bases []curve.Point, exps []curve.Scalar, extra curve.Point, e curve.Scalar) (curve.Point, error) {
	points := make([]curve.Point, 0, len(bases)+1)
	points = append(points, bases...)
	points = append(points, extra)
	scalars := make([]curve.Scalar, 0, len(exps)+1)
	scalars = append(scalars, exps...)
	scalars = append(scalars, e)
	return c.MultiScalarMult(points, scalars)
}
