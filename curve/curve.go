// Package curve provides the prime-order group abstraction the linear-form
// sigma protocol runs over.
//
// # Supported Curves
//
//   - bls12-381: G1 of the pairing-friendly BLS12-381 curve (gnark-crypto).
//     Points are 48 bytes compressed, scalars 32 bytes.
//
//   - bn254: G1 of the BN254 curve (gnark-crypto). Points are 32 bytes
//     compressed, scalars 32 bytes.
//
//   - ristretto255: the prime-order group built on Curve25519. Points and
//     scalars are both 32 bytes.
//
//   - secp256k1: the Bitcoin/Ethereum Koblitz curve (btcec). Points are 33
//     bytes compressed, scalars 32 bytes.
//
// # Encodings
//
// Scalars always serialize as the little-endian bytes of their canonical
// integer representative, regardless of the native encoding of the backing
// library. Points serialize with the backend's canonical compressed
// encoding. Both encodings feed the Fiat-Shamir transcript, so they must be
// identical on prover and verifier.
package curve

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Point is an element of the prime-order group.
type Point interface {
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte

	// Equal reports whether two points are the same group element.
	Equal(other Point) bool

	// IsIdentity reports whether this is the neutral element.
	IsIdentity() bool
}

// Scalar is an element of the scalar field, i.e. an integer modulo the group
// order. There is no out-of-range scalar: every constructor reduces.
type Scalar interface {
	// Bytes returns the little-endian encoding of the canonical
	// representative, ScalarSize bytes long.
	Bytes() []byte

	// BigInt returns the canonical representative in [0, q).
	BigInt() *big.Int

	// Equal reports whether two scalars are congruent modulo q.
	Equal(other Scalar) bool

	// IsZero reports whether the scalar is zero.
	IsZero() bool
}

// Curve abstracts scalar-field and group arithmetic for one backend.
//
// Arithmetic methods accept scalars and points produced by any Curve; values
// of a foreign backend are converted through their canonical encodings.
type Curve interface {
	// Name returns the curve identifier accepted by FromName.
	Name() string

	// Order returns q, the group order. All scalar arithmetic is mod q.
	Order() *big.Int

	// ScalarSize is the length of Scalar.Bytes.
	ScalarSize() int

	// PointSize is the length of Point.Bytes.
	PointSize() int

	NewScalar(v uint64) Scalar
	ScalarFromBigInt(v *big.Int) Scalar

	// ScalarFromBytesLE interprets b as a little-endian integer of any
	// length and reduces it modulo q. Challenges are derived this way.
	ScalarFromBytesLE(b []byte) Scalar

	// ParseScalar decodes a canonical little-endian scalar; values >= q
	// are rejected.
	ParseScalar(b []byte) (Scalar, error)

	// RandomScalar reads 64 bytes from r and reduces them modulo q.
	RandomScalar(r io.Reader) (Scalar, error)

	ScalarAdd(a, b Scalar) Scalar
	ScalarSub(a, b Scalar) Scalar
	ScalarMul(a, b Scalar) Scalar
	ScalarNeg(a Scalar) Scalar
	ScalarInverse(a Scalar) (Scalar, error)

	// Generator returns the conventional base point of the group.
	Generator() Point

	// Identity returns the neutral element.
	Identity() Point

	// HashToPoint maps msg to a group element with unknown discrete log,
	// domain-separated by dst.
	HashToPoint(msg, dst []byte) (Point, error)

	// ParsePoint decodes a canonical compressed encoding. It checks that the
	// point is on the curve and in the prime-order subgroup; the identity
	// encoding is accepted and left to ValidatePoint.
	ParsePoint(b []byte) (Point, error)

	// ValidatePoint rejects points of a foreign backend, the identity and
	// points outside the prime-order subgroup.
	ValidatePoint(p Point) error

	ScalarMult(p Point, s Scalar) Point
	Add(p, q Point) Point

	// MultiScalarMult computes sum(scalars[i] * points[i]). An empty input
	// yields the identity.
	MultiScalarMult(points []Point, scalars []Scalar) (Point, error)
}

var (
	// ErrInvalidPoint indicates an invalid point
	ErrInvalidPoint = errors.New("invalid point")

	// ErrInvalidScalar indicates an invalid scalar
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrIdentityPoint indicates the point is the identity point
	ErrIdentityPoint = errors.New("point is identity")

	// ErrPointNotOnCurve indicates the point is not on the curve
	ErrPointNotOnCurve = errors.New("point is not on curve")

	// ErrLengthMismatch indicates point and scalar vectors of different length
	ErrLengthMismatch = errors.New("points and scalars length mismatch")

	// ErrUnsupportedCurve is returned by FromName for unknown identifiers
	ErrUnsupportedCurve = errors.New("unsupported curve")
)

// wideScalarBytes is the number of uniform bytes reduced into one random
// scalar; 64 bytes keep the modular bias below 2^-128 for every backend.
const wideScalarBytes = 64

// reverse returns a reversed copy of b.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

// leToBigInt builds a big.Int from little-endian bytes (b[0] is the least significant byte).
func leToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(reverse(b))
}

// bigIntToLE writes v as exactly size little-endian bytes. v must be
// non-negative and fit.
func bigIntToLE(v *big.Int, size int) []byte {
	return reverse(v.FillBytes(make([]byte, size)))
}

// reduce returns v mod order as a fresh value in [0, order).
func reduce(v, order *big.Int) *big.Int {
	return new(big.Int).Mod(v, order)
}

// parseCanonicalLE decodes a fixed-size little-endian scalar and rejects
// values that are not reduced.
func parseCanonicalLE(b []byte, size int, order *big.Int) (*big.Int, error) {
	if len(b) != size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidScalar, size, len(b))
	}
	v := leToBigInt(b)
	if v.Cmp(order) >= 0 {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidScalar)
	}
	return v, nil
}

// readWide reads the uniform bytes backing one random scalar.
func readWide(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil randomness source")
	}
	buf := make([]byte, wideScalarBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read random scalar: %w", err)
	}
	return buf, nil
}

// IsNil reports whether v is nil, including a nil pointer stored in a
// non-nil Point or Scalar interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// scalarInt returns the canonical integer of any Scalar, treating nil as zero.
func scalarInt(s Scalar) *big.Int {
	if s == nil {
		return new(big.Int)
	}
	return s.BigInt()
}
