package curve

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BLS12381Point is a point of the BLS12-381 G1 subgroup.
type BLS12381Point struct {
	point bls12381.G1Affine
}

// Bytes returns the 48-byte compressed encoding.
func (p *BLS12381Point) Bytes() []byte {
	b := p.point.Bytes()
	return b[:]
}

// Equal reports whether two points are identical.
func (p *BLS12381Point) Equal(other Point) bool {
	o, ok := other.(*BLS12381Point)
	if !ok || o == nil || p == nil {
		return false
	}
	return p.point.Equal(&o.point)
}

// IsIdentity reports whether the point is the point at infinity.
func (p *BLS12381Point) IsIdentity() bool {
	return p == nil || p.point.IsInfinity()
}

// Affine exposes the gnark-crypto representation.
func (p *BLS12381Point) Affine() bls12381.G1Affine {
	return p.point
}

// BLS12381Scalar is an element of the BLS12-381 scalar field fr.
type BLS12381Scalar struct {
	e fr.Element
}

func (s *BLS12381Scalar) Bytes() []byte {
	b := s.e.Bytes()
	return reverse(b[:])
}

func (s *BLS12381Scalar) BigInt() *big.Int {
	return s.e.BigInt(new(big.Int))
}

func (s *BLS12381Scalar) Equal(other Scalar) bool {
	o := toFrBLS(other)
	return s.e.Equal(&o)
}

func (s *BLS12381Scalar) IsZero() bool {
	return s.e.IsZero()
}

// Element exposes the gnark-crypto representation.
func (s *BLS12381Scalar) Element() fr.Element {
	return s.e
}

// BLS12381Curve implements Curve over BLS12-381 G1.
type BLS12381Curve struct{}

// NewBLS12381 creates a new BLS12-381 curve instance.
func NewBLS12381() Curve {
	return &BLS12381Curve{}
}

func (c *BLS12381Curve) Name() string {
	return "bls12-381"
}

func (c *BLS12381Curve) Order() *big.Int {
	return fr.Modulus()
}

func (c *BLS12381Curve) ScalarSize() int {
	return fr.Bytes
}

func (c *BLS12381Curve) PointSize() int {
	return bls12381.SizeOfG1AffineCompressed
}

func (c *BLS12381Curve) NewScalar(v uint64) Scalar {
	var s BLS12381Scalar
	s.e.SetUint64(v)
	return &s
}

func (c *BLS12381Curve) ScalarFromBigInt(v *big.Int) Scalar {
	var s BLS12381Scalar
	s.e.SetBigInt(reduce(v, fr.Modulus()))
	return &s
}

func (c *BLS12381Curve) ScalarFromBytesLE(b []byte) Scalar {
	return c.ScalarFromBigInt(leToBigInt(b))
}

func (c *BLS12381Curve) ParseScalar(b []byte) (Scalar, error) {
	v, err := parseCanonicalLE(b, fr.Bytes, fr.Modulus())
	if err != nil {
		return nil, err
	}
	return c.ScalarFromBigInt(v), nil
}

func (c *BLS12381Curve) RandomScalar(r io.Reader) (Scalar, error) {
	buf, err := readWide(r)
	if err != nil {
		return nil, err
	}
	return c.ScalarFromBytesLE(buf), nil
}

func (c *BLS12381Curve) ScalarAdd(a, b Scalar) Scalar {
	x, y := toFrBLS(a), toFrBLS(b)
	var s BLS12381Scalar
	s.e.Add(&x, &y)
	return &s
}

func (c *BLS12381Curve) ScalarSub(a, b Scalar) Scalar {
	x, y := toFrBLS(a), toFrBLS(b)
	var s BLS12381Scalar
	s.e.Sub(&x, &y)
	return &s
}

func (c *BLS12381Curve) ScalarMul(a, b Scalar) Scalar {
	x, y := toFrBLS(a), toFrBLS(b)
	var s BLS12381Scalar
	s.e.Mul(&x, &y)
	return &s
}

func (c *BLS12381Curve) ScalarNeg(a Scalar) Scalar {
	x := toFrBLS(a)
	var s BLS12381Scalar
	s.e.Neg(&x)
	return &s
}

func (c *BLS12381Curve) ScalarInverse(a Scalar) (Scalar, error) {
	x := toFrBLS(a)
	if x.IsZero() {
		return nil, fmt.Errorf("%w: inverse of zero", ErrInvalidScalar)
	}
	var s BLS12381Scalar
	s.e.Inverse(&x)
	return &s, nil
}

func (c *BLS12381Curve) Generator() Point {
	_, _, g1, _ := bls12381.Generators()
	return &BLS12381Point{point: g1}
}

func (c *BLS12381Curve) Identity() Point {
	return &BLS12381Point{}
}

func (c *BLS12381Curve) HashToPoint(msg, dst []byte) (Point, error) {
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return nil, err
	}
	return &BLS12381Point{point: p}, nil
}

func (c *BLS12381Curve) ParsePoint(b []byte) (Point, error) {
	if len(b) != bls12381.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, bls12381.SizeOfG1AffineCompressed, len(b))
	}
	var p BLS12381Point
	if _, err := p.point.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &p, nil
}

func (c *BLS12381Curve) ValidatePoint(p Point) error {
	bp, ok := p.(*BLS12381Point)
	if !ok || bp == nil {
		return ErrInvalidPoint
	}
	if bp.point.IsInfinity() {
		return ErrIdentityPoint
	}
	if !bp.point.IsOnCurve() {
		return ErrPointNotOnCurve
	}
	if !bp.point.IsInSubGroup() {
		return fmt.Errorf("%w: not in subgroup", ErrInvalidPoint)
	}
	return nil
}

func (c *BLS12381Curve) ScalarMult(p Point, s Scalar) Point {
	a := c.toG1(p)
	var out BLS12381Point
	out.point.ScalarMultiplication(&a, scalarInt(s))
	return &out
}

func (c *BLS12381Curve) Add(p, q Point) Point {
	a, b := c.toG1(p), c.toG1(q)
	var ja, jb bls12381.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out BLS12381Point
	out.point.FromJacobian(&ja)
	return &out
}

func (c *BLS12381Curve) MultiScalarMult(points []Point, scalars []Scalar) (Point, error) {
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("%w: %d points, %d scalars", ErrLengthMismatch, len(points), len(scalars))
	}
	if len(points) == 0 {
		return c.Identity(), nil
	}
	bases := make([]bls12381.G1Affine, len(points))
	exps := make([]fr.Element, len(scalars))
	for i := range points {
		bp, ok := points[i].(*BLS12381Point)
		if !ok || bp == nil {
			return nil, fmt.Errorf("%w: at %d", ErrInvalidPoint, i)
		}
		bases[i] = bp.point
		exps[i] = toFrBLS(scalars[i])
	}
	var out BLS12381Point
	if _, err := out.point.MultiExp(bases, exps, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// toG1 converts p to the native representation; foreign or malformed points
// map to the identity.
func (c *BLS12381Curve) toG1(p Point) bls12381.G1Affine {
	if bp, ok := p.(*BLS12381Point); ok && bp != nil {
		return bp.point
	}
	var out bls12381.G1Affine
	if p == nil {
		return out
	}
	if _, err := out.SetBytes(p.Bytes()); err != nil {
		return bls12381.G1Affine{}
	}
	return out
}

func toFrBLS(s Scalar) fr.Element {
	if bs, ok := s.(*BLS12381Scalar); ok && bs != nil {
		return bs.e
	}
	var e fr.Element
	e.SetBigInt(reduce(scalarInt(s), fr.Modulus()))
	return e
}
