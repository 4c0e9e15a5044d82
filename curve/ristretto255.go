package curve

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/gtank/ristretto255"
)

const ristretto255Size = 32

// Ristretto255Point represents a point in the Ristretto255 prime-order group.
type Ristretto255Point struct {
	point *ristretto255.Element
}

// Bytes returns the canonical 32-byte encoding of the point.
func (p *Ristretto255Point) Bytes() []byte {
	if p == nil || p.point == nil {
		return ristretto255.NewIdentityElement().Bytes()
	}
	return p.point.Bytes()
}

// Equal reports whether two points are identical.
func (p *Ristretto255Point) Equal(other Point) bool {
	o, ok := other.(*Ristretto255Point)
	if !ok || o == nil || p == nil || p.point == nil || o.point == nil {
		return false
	}
	return p.point.Equal(o.point) == 1
}

// IsIdentity reports whether the point is the identity element.
func (p *Ristretto255Point) IsIdentity() bool {
	if p == nil || p.point == nil {
		return true
	}
	return p.point.Equal(ristretto255.NewIdentityElement()) == 1
}

// Ristretto255Scalar represents a scalar modulo the Ristretto255 group order.
type Ristretto255Scalar struct {
	scalar *ristretto255.Scalar
}

// Bytes returns the canonical 32-byte little-endian encoding of the scalar.
// This is already the native ristretto255 encoding.
func (s *Ristretto255Scalar) Bytes() []byte {
	if s == nil || s.scalar == nil {
		return make([]byte, ristretto255Size)
	}
	return s.scalar.Bytes()
}

func (s *Ristretto255Scalar) BigInt() *big.Int {
	return leToBigInt(s.Bytes())
}

func (s *Ristretto255Scalar) Equal(other Scalar) bool {
	return s.BigInt().Cmp(scalarInt(other)) == 0
}

func (s *Ristretto255Scalar) IsZero() bool {
	return s.BigInt().Sign() == 0
}

// Ristretto255Curve implements the Curve interface for the Ristretto group.
type Ristretto255Curve struct{}

// NewRistretto255 creates a new Ristretto255 curve instance.
func NewRistretto255() Curve {
	return &Ristretto255Curve{}
}

func (c *Ristretto255Curve) Name() string {
	return "ristretto255"
}

// Order returns the order of the Ristretto255 group.
func (c *Ristretto255Curve) Order() *big.Int {
	// l = 2^252 + 27742317777372353535851937790883648493
	order := new(big.Int).Lsh(big.NewInt(1), 252)
	addend, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	return order.Add(order, addend)
}

func (c *Ristretto255Curve) ScalarSize() int {
	return ristretto255Size
}

func (c *Ristretto255Curve) PointSize() int {
	return ristretto255Size
}

func (c *Ristretto255Curve) NewScalar(v uint64) Scalar {
	return c.ScalarFromBigInt(new(big.Int).SetUint64(v))
}

func (c *Ristretto255Curve) ScalarFromBigInt(v *big.Int) Scalar {
	sc := ristretto255.NewScalar()
	// a reduced value always has a canonical encoding
	if _, err := sc.SetCanonicalBytes(bigIntToLE(reduce(v, c.Order()), ristretto255Size)); err != nil {
		panic(err)
	}
	return &Ristretto255Scalar{scalar: sc}
}

func (c *Ristretto255Curve) ScalarFromBytesLE(b []byte) Scalar {
	return c.ScalarFromBigInt(leToBigInt(b))
}

// ParseScalar decodes a canonical scalar encoding.
func (c *Ristretto255Curve) ParseScalar(b []byte) (Scalar, error) {
	if len(b) != ristretto255Size {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidScalar, len(b))
	}
	sc := ristretto255.NewScalar()
	if _, err := sc.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return &Ristretto255Scalar{scalar: sc}, nil
}

// RandomScalar returns a uniformly random scalar.
func (c *Ristretto255Curve) RandomScalar(r io.Reader) (Scalar, error) {
	seed, err := readWide(r)
	if err != nil {
		return nil, err
	}
	sc := ristretto255.NewScalar()
	if _, err := sc.SetUniformBytes(seed); err != nil {
		return nil, fmt.Errorf("failed to derive scalar: %w", err)
	}
	return &Ristretto255Scalar{scalar: sc}, nil
}

func (c *Ristretto255Curve) ScalarAdd(a, b Scalar) Scalar {
	return &Ristretto255Scalar{scalar: ristretto255.NewScalar().Add(c.toScalar(a), c.toScalar(b))}
}

func (c *Ristretto255Curve) ScalarSub(a, b Scalar) Scalar {
	return &Ristretto255Scalar{scalar: ristretto255.NewScalar().Subtract(c.toScalar(a), c.toScalar(b))}
}

func (c *Ristretto255Curve) ScalarMul(a, b Scalar) Scalar {
	return &Ristretto255Scalar{scalar: ristretto255.NewScalar().Multiply(c.toScalar(a), c.toScalar(b))}
}

func (c *Ristretto255Curve) ScalarNeg(a Scalar) Scalar {
	return &Ristretto255Scalar{scalar: ristretto255.NewScalar().Negate(c.toScalar(a))}
}

func (c *Ristretto255Curve) ScalarInverse(a Scalar) (Scalar, error) {
	if scalarInt(a).Sign() == 0 {
		return nil, fmt.Errorf("%w: inverse of zero", ErrInvalidScalar)
	}
	return &Ristretto255Scalar{scalar: ristretto255.NewScalar().Invert(c.toScalar(a))}, nil
}

// Generator returns the canonical ristretto255 base point.
func (c *Ristretto255Curve) Generator() Point {
	one := c.toScalar(c.NewScalar(1))
	return &Ristretto255Point{point: ristretto255.NewIdentityElement().ScalarBaseMult(one)}
}

func (c *Ristretto255Curve) Identity() Point {
	return &Ristretto255Point{point: ristretto255.NewIdentityElement()}
}

// HashToPoint hashes dst and msg with SHA-512 and maps the 64-byte digest
// with the ristretto255 one-way map.
func (c *Ristretto255Curve) HashToPoint(msg, dst []byte) (Point, error) {
	h := sha512.New()
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(dst)))
	h.Write(l[:])
	h.Write(dst)
	h.Write(msg)
	elem, err := ristretto255.NewIdentityElement().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}
	return &Ristretto255Point{point: elem}, nil
}

// ParsePoint decodes a canonical 32-byte Ristretto point encoding.
func (c *Ristretto255Curve) ParsePoint(b []byte) (Point, error) {
	if len(b) != ristretto255Size {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidPoint, len(b))
	}
	elem := ristretto255.NewIdentityElement()
	if _, err := elem.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &Ristretto255Point{point: elem}, nil
}

// ValidatePoint ensures the point is non-identity and properly encoded.
func (c *Ristretto255Curve) ValidatePoint(p Point) error {
	rp, ok := p.(*Ristretto255Point)
	if !ok || rp == nil || rp.point == nil {
		return ErrInvalidPoint
	}
	if rp.IsIdentity() {
		return ErrIdentityPoint
	}
	return nil
}

func (c *Ristretto255Curve) ScalarMult(p Point, s Scalar) Point {
	elem := ristretto255.NewIdentityElement()
	elem.ScalarMult(c.toScalar(s), c.toElement(p))
	return &Ristretto255Point{point: elem}
}

func (c *Ristretto255Curve) Add(p, q Point) Point {
	elem := ristretto255.NewIdentityElement()
	elem.Add(c.toElement(p), c.toElement(q))
	return &Ristretto255Point{point: elem}
}

func (c *Ristretto255Curve) MultiScalarMult(points []Point, scalars []Scalar) (Point, error) {
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("%w: %d points, %d scalars", ErrLengthMismatch, len(points), len(scalars))
	}
	if len(points) == 0 {
		return c.Identity(), nil
	}
	elems := make([]*ristretto255.Element, len(points))
	exps := make([]*ristretto255.Scalar, len(scalars))
	for i := range points {
		rp, ok := points[i].(*Ristretto255Point)
		if !ok || rp == nil || rp.point == nil {
			return nil, fmt.Errorf("%w: at %d", ErrInvalidPoint, i)
		}
		elems[i] = rp.point
		exps[i] = c.toScalar(scalars[i])
	}
	return &Ristretto255Point{point: ristretto255.NewIdentityElement().VarTimeMultiScalarMult(exps, elems)}, nil
}

func (c *Ristretto255Curve) toScalar(s Scalar) *ristretto255.Scalar {
	if rs, ok := s.(*Ristretto255Scalar); ok && rs != nil && rs.scalar != nil {
		return rs.scalar
	}
	return c.ScalarFromBigInt(scalarInt(s)).(*Ristretto255Scalar).scalar
}

func (c *Ristretto255Curve) toElement(p Point) *ristretto255.Element {
	if rp, ok := p.(*Ristretto255Point); ok && rp != nil && rp.point != nil {
		return rp.point
	}
	if p != nil {
		if parsed, err := c.ParsePoint(p.Bytes()); err == nil {
			return parsed.(*Ristretto255Point).point
		}
	}
	return ristretto255.NewIdentityElement()
}
