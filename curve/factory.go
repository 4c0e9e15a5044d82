package curve

import (
	"fmt"
	"strings"
)

// FromName returns a Curve implementation that matches the provided name.
func FromName(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bls12-381", "bls12381", "":
		return NewBLS12381(), nil
	case "bn254", "bn256":
		return NewBN254(), nil
	case "ristretto255":
		return NewRistretto255(), nil
	case "secp256k1":
		return NewSecp256k1(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, name)
	}
}

// SupportedCurves lists the curve identifiers understood by FromName.
func SupportedCurves() []string {
	return []string{"bls12-381", "bn254", "ristretto255", "secp256k1"}
}
