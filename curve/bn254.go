package curve

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BN254Point is a point of the BN254 G1 group.
type BN254Point struct {
	point bn254.G1Affine
}

// Bytes returns the 32-byte compressed encoding (cofactor is one, every
// on-curve point is in the group).
func (p *BN254Point) Bytes() []byte {
	b := p.point.Bytes()
	return b[:]
}

// Equal reports whether two points are identical.
func (p *BN254Point) Equal(other Point) bool {
	o, ok := other.(*BN254Point)
	if !ok || o == nil || p == nil {
		return false
	}
	return p.point.Equal(&o.point)
}

// IsIdentity reports whether the point is the point at infinity.
func (p *BN254Point) IsIdentity() bool {
	return p == nil || p.point.IsInfinity()
}

// Affine exposes the gnark-crypto representation.
func (p *BN254Point) Affine() bn254.G1Affine {
	return p.point
}

// BN254Scalar is an element of the BN254 scalar field fr.
type BN254Scalar struct {
	e fr.Element
}

func (s *BN254Scalar) Bytes() []byte {
	b := s.e.Bytes()
	return reverse(b[:])
}

func (s *BN254Scalar) BigInt() *big.Int {
	return s.e.BigInt(new(big.Int))
}

func (s *BN254Scalar) Equal(other Scalar) bool {
	o := toFrBN(other)
	return s.e.Equal(&o)
}

func (s *BN254Scalar) IsZero() bool {
	return s.e.IsZero()
}

// Element exposes the gnark-crypto representation.
func (s *BN254Scalar) Element() fr.Element {
	return s.e
}

// BN254Curve implements Curve over BN254 G1.
type BN254Curve struct{}

// NewBN254 creates a new BN254 curve instance.
func NewBN254() Curve {
	return &BN254Curve{}
}

func (c *BN254Curve) Name() string {
	return "bn254"
}

func (c *BN254Curve) Order() *big.Int {
	return fr.Modulus()
}

func (c *BN254Curve) ScalarSize() int {
	return fr.Bytes
}

func (c *BN254Curve) PointSize() int {
	return bn254.SizeOfG1AffineCompressed
}

func (c *BN254Curve) NewScalar(v uint64) Scalar {
	var s BN254Scalar
	s.e.SetUint64(v)
	return &s
}

func (c *BN254Curve) ScalarFromBigInt(v *big.Int) Scalar {
	var s BN254Scalar
	s.e.SetBigInt(reduce(v, fr.Modulus()))
	return &s
}

func (c *BN254Curve) ScalarFromBytesLE(b []byte) Scalar {
	return c.ScalarFromBigInt(leToBigInt(b))
}

func (c *BN254Curve) ParseScalar(b []byte) (Scalar, error) {
	v, err := parseCanonicalLE(b, fr.Bytes, fr.Modulus())
	if err != nil {
		return nil, err
	}
	return c.ScalarFromBigInt(v), nil
}

func (c *BN254Curve) RandomScalar(r io.Reader) (Scalar, error) {
	buf, err := readWide(r)
	if err != nil {
		return nil, err
	}
	return c.ScalarFromBytesLE(buf), nil
}

func (c *BN254Curve) ScalarAdd(a, b Scalar) Scalar {
	x, y := toFrBN(a), toFrBN(b)
	var s BN254Scalar
	s.e.Add(&x, &y)
	return &s
}

func (c *BN254Curve) ScalarSub(a, b Scalar) Scalar {
	x, y := toFrBN(a), toFrBN(b)
	var s BN254Scalar
	s.e.Sub(&x, &y)
	return &s
}

func (c *BN254Curve) ScalarMul(a, b Scalar) Scalar {
	x, y := toFrBN(a), toFrBN(b)
	var s BN254Scalar
	s.e.Mul(&x, &y)
	return &s
}

func (c *BN254Curve) ScalarNeg(a Scalar) Scalar {
	x := toFrBN(a)
	var s BN254Scalar
	s.e.Neg(&x)
	return &s
}

func (c *BN254Curve) ScalarInverse(a Scalar) (Scalar, error) {
	x := toFrBN(a)
	if x.IsZero() {
		return nil, fmt.Errorf("%w: inverse of zero", ErrInvalidScalar)
	}
	var s BN254Scalar
	s.e.Inverse(&x)
	return &s, nil
}

func (c *BN254Curve) Generator() Point {
	_, _, g1, _ := bn254.Generators()
	return &BN254Point{point: g1}
}

func (c *BN254Curve) Identity() Point {
	return &BN254Point{}
}

func (c *BN254Curve) HashToPoint(msg, dst []byte) (Point, error) {
	p, err := bn254.HashToG1(msg, dst)
	if err != nil {
		return nil, err
	}
	return &BN254Point{point: p}, nil
}

func (c *BN254Curve) ParsePoint(b []byte) (Point, error) {
	if len(b) != bn254.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, bn254.SizeOfG1AffineCompressed, len(b))
	}
	var p BN254Point
	if _, err := p.point.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &p, nil
}

func (c *BN254Curve) ValidatePoint(p Point) error {
	bp, ok := p.(*BN254Point)
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

func (c *BN254Curve) ScalarMult(p Point, s Scalar) Point {
	a := c.toG1(p)
	var out BN254Point
	out.point.ScalarMultiplication(&a, scalarInt(s))
	return &out
}

func (c *BN254Curve) Add(p, q Point) Point {
	a, b := c.toG1(p), c.toG1(q)
	var ja, jb bn254.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out BN254Point
	out.point.FromJacobian(&ja)
	return &out
}

func (c *BN254Curve) MultiScalarMult(points []Point, scalars []Scalar) (Point, error) {
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("%w: %d points, %d scalars", ErrLengthMismatch, len(points), len(scalars))
	}
	if len(points) == 0 {
		return c.Identity(), nil
	}
	bases := make([]bn254.G1Affine, len(points))
	exps := make([]fr.Element, len(scalars))
	for i := range points {
		bp, ok := points[i].(*BN254Point)
		if !ok || bp == nil {
			return nil, fmt.Errorf("%w: at %d", ErrInvalidPoint, i)
		}
		bases[i] = bp.point
		exps[i] = toFrBN(scalars[i])
	}
	var out BN254Point
	if _, err := out.point.MultiExp(bases, exps, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// toG1 converts p to the native representation; foreign or malformed points
// map to the identity.
func (c *BN254Curve) toG1(p Point) bn254.G1Affine {
	if bp, ok := p.(*BN254Point); ok && bp != nil {
		return bp.point
	}
	var out bn254.G1Affine
	if p == nil {
		return out
	}
	if _, err := out.SetBytes(p.Bytes()); err != nil {
		return bn254.G1Affine{}
	}
	return out
}

func toFrBN(s Scalar) fr.Element {
	if bs, ok := s.(*BN254Scalar); ok && bs != nil {
		return bs.e
	}
	var e fr.Element
	e.SetBigInt(reduce(scalarInt(s), fr.Modulus()))
	return e
}
