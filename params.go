package linsigma

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/eon-protocol/linsigma/curve"
)

// Params are the public generators shared by prover and verifier: g of
// length n with n+1 a power of two, plus the auxiliary generators h and k.
// k is not used by the direct protocol; it belongs to the parameter contract
// of the compressed variant.
type Params struct {
	Curve curve.Curve
	G     []curve.Point
	H     curve.Point
	K     curve.Point
}

type paramsConfig struct {
	progress func(int)
}

type ParamsOption func(*paramsConfig)

// WithProgress registers a callback invoked once per derived generator. It
// may be called concurrently.
func WithProgress(fn func(int)) ParamsOption {
	return func(cfg *paramsConfig) {
		cfg.progress = fn
	}
}

// NewParams hashes n+2 generators to the group under the setup label.
func NewParams(c curve.Curve, n int, label string, opts ...ParamsOption) (*Params, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrFaultyParameterSize, n)
	}
	if !isPowerOfTwo(n + 1) {
		return nil, fmt.Errorf("%w: n + 1 = %d", ErrNotPowerOfTwo, n+1)
	}
	var cfg paramsConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	g, h, k, err := deriveGenerators(c, n, label, cfg.progress)
	if err != nil {
		return nil, err
	}
	return &Params{Curve: c, G: g, H: h, K: k}, nil
}

// Size returns n, the witness length these generators commit to.
func (me *Params) Size() int {
	return len(me.G)
}

// Validate checks the sizing invariant and that every generator is a valid
// non-identity point of the params' curve.
func (me *Params) Validate() error {
	if me.Curve == nil {
		return errors.New("params without curve")
	}
	if !isPowerOfTwo(len(me.G) + 1) {
		return fmt.Errorf("%w: n + 1 = %d", ErrNotPowerOfTwo, len(me.G)+1)
	}
	for i, g := range me.G {
		if err := me.Curve.ValidatePoint(g); err != nil {
			return fmt.Errorf("g[%d]: %w", i, err)
		}
	}
	if err := me.Curve.ValidatePoint(me.H); err != nil {
		return fmt.Errorf("h: %w", err)
	}
	if err := me.Curve.ValidatePoint(me.K); err != nil {
		return fmt.Errorf("k: %w", err)
	}
	return nil
}

// Commit computes the public statement for a witness: P = MSM(g, x) + h^gamma
// and y = L(x).
func (me *Params) Commit(form LinearForm, w *Witness) (*Statement, error) {
	if err := w.check(me.G, form); err != nil {
		return nil, err
	}
	P, err := concatMSM(me.Curve, me.G, w.X, me.H, w.Gamma)
	if err != nil {
		return nil, serializationError(err)
	}
	return &Statement{P: P, Y: form.Eval(w.X)}, nil
}

// Prove runs the prover over these params.
func (me *Params) Prove(rnd io.Reader, form LinearForm, w *Witness) (*Proof, error) {
	return w.Prove(rnd, me.Curve, me.G, me.H, form)
}

// Verify checks proof against the statement over these params.
func (me *Params) Verify(form LinearForm, st *Statement, proof *Proof) error {
	if st == nil {
		return fmt.Errorf("%w: nil statement", ErrInvalidResponse)
	}
	return proof.Verify(me.Curve, me.G, me.H, me.K, form, st.P, st.Y)
}

// WriteTo encodes the params as
// u8 len(name) || name || u32be(n) || g_0 .. g_{n-1} || h || k.
func (me *Params) WriteTo(w io.Writer) (int64, error) {
	name := me.Curve.Name()
	var written int64
	put := func(b []byte) error {
		n, err := w.Write(b)
		written += int64(n)
		return err
	}
	if err := put(append([]byte{byte(len(name))}, name...)); err != nil {
		return written, err
	}
	buf := [4]byte{}
	binary.BigEndian.PutUint32(buf[:], uint32(len(me.G)))
	if err := put(buf[:]); err != nil {
		return written, err
	}
	for _, g := range me.G {
		if err := put(g.Bytes()); err != nil {
			return written, err
		}
	}
	if err := put(me.H.Bytes()); err != nil {
		return written, err
	}
	if err := put(me.K.Bytes()); err != nil {
		return written, err
	}
	return written, nil
}

// ReadFrom decodes params written by WriteTo and validates them. The curve is
// resolved from the encoded name.
func (me *Params) ReadFrom(r io.Reader) (int64, error) {
	var read int64
	get := func(n int) ([]byte, error) {
		buf := make([]byte, n)
		m, err := io.ReadFull(r, buf)
		read += int64(m)
		return buf, err
	}
	nl, err := get(1)
	if err != nil {
		return read, serializationError(err)
	}
	name, err := get(int(nl[0]))
	if err != nil {
		return read, serializationError(err)
	}
	c, err := curve.FromName(string(name))
	if err != nil {
		return read, serializationError(err)
	}
	buf, err := get(4)
	if err != nil {
		return read, serializationError(err)
	}
	n := binary.BigEndian.Uint32(buf)
	if n > MAX_VECTOR_LEN {
		return read, serializationError(fmt.Errorf("generator count %d exceeds %d", n, MAX_VECTOR_LEN))
	}
	readPoint := func() (curve.Point, error) {
		b, err := get(c.PointSize())
		if err != nil {
			return nil, serializationError(err)
		}
		p, err := c.ParsePoint(b)
		if err != nil {
			return nil, serializationError(err)
		}
		return p, nil
	}
	g := make([]curve.Point, n)
	for i := range g {
		if g[i], err = readPoint(); err != nil {
			return read, err
		}
	}
	h, err := readPoint()
	if err != nil {
		return read, err
	}
	k, err := readPoint()
	if err != nil {
		return read, err
	}
	out := Params{Curve: c, G: g, H: h, K: k}
	if err := out.Validate(); err != nil {
		return read, err
	}
	*me = out
	return read, nil
}
