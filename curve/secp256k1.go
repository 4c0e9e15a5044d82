package curve

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	secp256k1ScalarSize = 32
	secp256k1PointSize  = 33

	// maxHashToPointTries bounds try-and-increment; each try succeeds with
	// probability about 1/2.
	maxHashToPointTries = 256
)

// Secp256k1Point represents a point on the secp256k1 curve, kept in affine
// form (Z = 1). The identity is stored with X = Y = 0.
type Secp256k1Point struct {
	point btcec.JacobianPoint
}

// Bytes returns the compressed point encoding (33 bytes). The identity,
// which has no SEC1 compressed form, encodes as 33 zero bytes.
func (p *Secp256k1Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, secp256k1PointSize)
	}
	x, y := p.point.X, p.point.Y
	x.Normalize()
	y.Normalize()
	return btcec.NewPublicKey(&x, &y).SerializeCompressed()
}

// Equal checks if two points are equal
func (p *Secp256k1Point) Equal(other Point) bool {
	o, ok := other.(*Secp256k1Point)
	if !ok || o == nil || p == nil {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() && o.IsIdentity()
	}
	a, b := p.point, o.point
	a.X.Normalize()
	a.Y.Normalize()
	b.X.Normalize()
	b.Y.Normalize()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// IsIdentity checks if this is the identity point (point at infinity)
func (p *Secp256k1Point) IsIdentity() bool {
	if p == nil {
		return true
	}
	return (p.point.X.IsZero() && p.point.Y.IsZero()) || p.point.Z.IsZero()
}

// Secp256k1Scalar represents a scalar for secp256k1 operations
type Secp256k1Scalar struct {
	scalar btcec.ModNScalar
}

// Bytes returns the scalar as 32 little-endian bytes.
func (s *Secp256k1Scalar) Bytes() []byte {
	b := s.scalar.Bytes()
	return reverse(b[:])
}

func (s *Secp256k1Scalar) BigInt() *big.Int {
	b := s.scalar.Bytes()
	return new(big.Int).SetBytes(b[:])
}

func (s *Secp256k1Scalar) Equal(other Scalar) bool {
	o := toModN(other)
	return s.scalar.Equals(&o)
}

func (s *Secp256k1Scalar) IsZero() bool {
	return s.scalar.IsZero()
}

// Secp256k1Curve implements the Curve interface for secp256k1
type Secp256k1Curve struct{}

// NewSecp256k1 creates a new secp256k1 curve instance
func NewSecp256k1() Curve {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string {
	return "secp256k1"
}

func (c *Secp256k1Curve) Order() *big.Int {
	return new(big.Int).Set(btcec.S256().Params().N)
}

func (c *Secp256k1Curve) ScalarSize() int {
	return secp256k1ScalarSize
}

func (c *Secp256k1Curve) PointSize() int {
	return secp256k1PointSize
}

func (c *Secp256k1Curve) NewScalar(v uint64) Scalar {
	return c.ScalarFromBigInt(new(big.Int).SetUint64(v))
}

func (c *Secp256k1Curve) ScalarFromBigInt(v *big.Int) Scalar {
	var s Secp256k1Scalar
	be := reduce(v, c.Order()).FillBytes(make([]byte, secp256k1ScalarSize))
	s.scalar.SetByteSlice(be)
	return &s
}

func (c *Secp256k1Curve) ScalarFromBytesLE(b []byte) Scalar {
	return c.ScalarFromBigInt(leToBigInt(b))
}

func (c *Secp256k1Curve) ParseScalar(b []byte) (Scalar, error) {
	v, err := parseCanonicalLE(b, secp256k1ScalarSize, c.Order())
	if err != nil {
		return nil, err
	}
	return c.ScalarFromBigInt(v), nil
}

func (c *Secp256k1Curve) RandomScalar(r io.Reader) (Scalar, error) {
	buf, err := readWide(r)
	if err != nil {
		return nil, err
	}
	return c.ScalarFromBytesLE(buf), nil
}

func (c *Secp256k1Curve) ScalarAdd(a, b Scalar) Scalar {
	x, y := toModN(a), toModN(b)
	var s Secp256k1Scalar
	s.scalar.Add2(&x, &y)
	return &s
}

func (c *Secp256k1Curve) ScalarSub(a, b Scalar) Scalar {
	x, y := toModN(a), toModN(b)
	var s Secp256k1Scalar
	s.scalar.NegateVal(&y).Add(&x)
	return &s
}

func (c *Secp256k1Curve) ScalarMul(a, b Scalar) Scalar {
	x, y := toModN(a), toModN(b)
	var s Secp256k1Scalar
	s.scalar.Mul2(&x, &y)
	return &s
}

func (c *Secp256k1Curve) ScalarNeg(a Scalar) Scalar {
	x := toModN(a)
	var s Secp256k1Scalar
	s.scalar.NegateVal(&x)
	return &s
}

func (c *Secp256k1Curve) ScalarInverse(a Scalar) (Scalar, error) {
	x := toModN(a)
	if x.IsZero() {
		return nil, fmt.Errorf("%w: inverse of zero", ErrInvalidScalar)
	}
	var s Secp256k1Scalar
	s.scalar.InverseValNonConst(&x)
	return &s, nil
}

func (c *Secp256k1Curve) Generator() Point {
	var one btcec.ModNScalar
	one.SetInt(1)
	var out Secp256k1Point
	btcec.ScalarBaseMultNonConst(&one, &out.point)
	out.point.ToAffine()
	return &out
}

func (c *Secp256k1Curve) Identity() Point {
	return &Secp256k1Point{}
}

// HashToPoint uses try-and-increment: SHA-256(len(dst) || dst || msg || ctr)
// is taken as an x-coordinate with even y until it lands on the curve.
func (c *Secp256k1Curve) HashToPoint(msg, dst []byte) (Point, error) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(dst)))
	for ctr := 0; ctr < maxHashToPointTries; ctr++ {
		h := sha256.New()
		h.Write(l[:])
		h.Write(dst)
		h.Write(msg)
		h.Write([]byte{byte(ctr)})
		candidate := append([]byte{0x02}, h.Sum(nil)...)
		pk, err := btcec.ParsePubKey(candidate)
		if err != nil {
			continue
		}
		var out Secp256k1Point
		pk.AsJacobian(&out.point)
		return &out, nil
	}
	return nil, errors.New("secp256k1: hash to point exhausted")
}

// ParsePoint parses a 33-byte compressed point. 33 zero bytes decode to the
// identity.
func (c *Secp256k1Curve) ParsePoint(b []byte) (Point, error) {
	if len(b) != secp256k1PointSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, secp256k1PointSize, len(b))
	}
	if isAllZero(b) {
		return c.Identity(), nil
	}
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	var out Secp256k1Point
	pk.AsJacobian(&out.point)
	return &out, nil
}

func (c *Secp256k1Curve) ValidatePoint(p Point) error {
	sp, ok := p.(*Secp256k1Point)
	if !ok || sp == nil {
		return ErrInvalidPoint
	}
	if sp.IsIdentity() {
		return ErrIdentityPoint
	}
	return nil
}

func (c *Secp256k1Curve) ScalarMult(p Point, s Scalar) Point {
	a := c.toJacobian(p)
	k := toModN(s)
	var out Secp256k1Point
	if isJacobianIdentity(&a) || k.IsZero() {
		return &out
	}
	btcec.ScalarMultNonConst(&k, &a, &out.point)
	out.point.ToAffine()
	return &out
}

func (c *Secp256k1Curve) Add(p, q Point) Point {
	a, b := c.toJacobian(p), c.toJacobian(q)
	switch {
	case isJacobianIdentity(&a):
		return &Secp256k1Point{point: b}
	case isJacobianIdentity(&b):
		return &Secp256k1Point{point: a}
	}
	var out Secp256k1Point
	btcec.AddNonConst(&a, &b, &out.point)
	out.point.ToAffine()
	return &out
}

// MultiScalarMult accumulates the products one by one; btcec has no
// multi-exponentiation.
func (c *Secp256k1Curve) MultiScalarMult(points []Point, scalars []Scalar) (Point, error) {
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("%w: %d points, %d scalars", ErrLengthMismatch, len(points), len(scalars))
	}
	acc := c.Identity()
	for i := range points {
		if sp, ok := points[i].(*Secp256k1Point); !ok || sp == nil {
			return nil, fmt.Errorf("%w: at %d", ErrInvalidPoint, i)
		}
		acc = c.Add(acc, c.ScalarMult(points[i], scalars[i]))
	}
	return acc, nil
}

func (c *Secp256k1Curve) toJacobian(p Point) btcec.JacobianPoint {
	if sp, ok := p.(*Secp256k1Point); ok && sp != nil {
		return sp.point
	}
	if p != nil {
		if parsed, err := c.ParsePoint(p.Bytes()); err == nil {
			return parsed.(*Secp256k1Point).point
		}
	}
	return btcec.JacobianPoint{}
}

func isJacobianIdentity(p *btcec.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

func toModN(s Scalar) btcec.ModNScalar {
	if ss, ok := s.(*Secp256k1Scalar); ok && ss != nil {
		return ss.scalar
	}
	var m btcec.ModNScalar
	v := scalarInt(s)
	if v.Sign() == 0 {
		return m
	}
	m.SetByteSlice(reduce(v, btcec.S256().Params().N).FillBytes(make([]byte, secp256k1ScalarSize)))
	return m
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
