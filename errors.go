package linsigma

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse means the proof was rejected. It is final for that
	// proof; retrying the same verification cannot succeed.
	ErrInvalidResponse = errors.New("invalid response")

	ErrVectorTooShort    = errors.New("vector too short")
	ErrVectorLenMismatch = errors.New("vector length mismatch")
	ErrNotPowerOfTwo     = errors.New("size is not a power of two")

	// Reserved for the recursive compressed variant.
	ErrWrongRecursionLevel = errors.New("wrong recursion level")
	ErrFaultyParameterSize = errors.New("faulty parameter size")

	// ErrSerialization wraps failures of the canonical encoding layer.
	ErrSerialization = errors.New("serialization error")
)

func serializationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSerialization, err)
}
