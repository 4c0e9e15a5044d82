package linsigma

import (
	"fmt"

	"github.com/eon-protocol/linsigma/curve"
)

// LinearForm is a fixed public functional L(x) = a_0*x_0 + ... + a_{m-1}*x_{m-1}
// with m = Size().
//
// Eval treats entries missing from a short x as zero and ignores entries past
// Size(); the protocol evaluates forms of size n+1 on vectors of length n.
// Scale, Add, SplitInHalf and Pad are the combinators the compressed variant
// folds forms with; the direct protocol only calls Eval and Size.
type LinearForm interface {
	Eval(x []curve.Scalar) curve.Scalar
	Size() int
	Scale(s curve.Scalar) LinearForm
	Add(other LinearForm) (LinearForm, error)
	SplitInHalf() (LinearForm, LinearForm, error)
	Pad(newSize int) (LinearForm, error)
	Coefficients() []curve.Scalar
}

// SumForm is L(x) = x_0 + ... + x_{m-1}.
type SumForm struct {
	curve curve.Curve
	size  int
}

func NewSumForm(c curve.Curve, size int) *SumForm {
	return &SumForm{curve: c, size: size}
}

func (f *SumForm) Eval(x []curve.Scalar) curve.Scalar {
	acc := f.curve.NewScalar(0)
	for i := 0; i < len(x) && i < f.size; i++ {
		acc = f.curve.ScalarAdd(acc, x[i])
	}
	return acc
}

func (f *SumForm) Size() int {
	return f.size
}

func (f *SumForm) Scale(s curve.Scalar) LinearForm {
	coeffs := make([]curve.Scalar, f.size)
	for i := range coeffs {
		coeffs[i] = s
	}
	return &DotForm{curve: f.curve, coeffs: coeffs}
}

func (f *SumForm) Add(other LinearForm) (LinearForm, error) {
	return addForms(f.curve, f, other)
}

func (f *SumForm) SplitInHalf() (LinearForm, LinearForm, error) {
	if f.size < 2 {
		return nil, nil, fmt.Errorf("%w: cannot split form of size %d", ErrVectorTooShort, f.size)
	}
	mid := f.size / 2
	return NewSumForm(f.curve, mid), NewSumForm(f.curve, f.size-mid), nil
}

func (f *SumForm) Pad(newSize int) (LinearForm, error) {
	if newSize < f.size {
		return nil, fmt.Errorf("%w: pad %d to %d", ErrFaultyParameterSize, f.size, newSize)
	}
	if newSize == f.size {
		return f, nil
	}
	return NewDotForm(f.curve, f.Coefficients()).Pad(newSize)
}

func (f *SumForm) Coefficients() []curve.Scalar {
	coeffs := make([]curve.Scalar, f.size)
	for i := range coeffs {
		coeffs[i] = f.curve.NewScalar(1)
	}
	return coeffs
}

// DotForm is the inner product with a fixed coefficient vector.
type DotForm struct {
	curve  curve.Curve
	coeffs []curve.Scalar
}

// NewDotForm copies coeffs; later changes to the slice do not affect the form.
func NewDotForm(c curve.Curve, coeffs []curve.Scalar) *DotForm {
	return &DotForm{curve: c, coeffs: append([]curve.Scalar(nil), coeffs...)}
}

func (f *DotForm) Eval(x []curve.Scalar) curve.Scalar {
	acc := f.curve.NewScalar(0)
	for i := 0; i < len(x) && i < len(f.coeffs); i++ {
		acc = f.curve.ScalarAdd(acc, f.curve.ScalarMul(f.coeffs[i], x[i]))
	}
	return acc
}

func (f *DotForm) Size() int {
	return len(f.coeffs)
}

func (f *DotForm) Scale(s curve.Scalar) LinearForm {
	coeffs := make([]curve.Scalar, len(f.coeffs))
	for i, a := range f.coeffs {
		coeffs[i] = f.curve.ScalarMul(a, s)
	}
	return &DotForm{curve: f.curve, coeffs: coeffs}
}

func (f *DotForm) Add(other LinearForm) (LinearForm, error) {
	return addForms(f.curve, f, other)
}

func (f *DotForm) SplitInHalf() (LinearForm, LinearForm, error) {
	if len(f.coeffs) < 2 {
		return nil, nil, fmt.Errorf("%w: cannot split form of size %d", ErrVectorTooShort, len(f.coeffs))
	}
	mid := len(f.coeffs) / 2
	return NewDotForm(f.curve, f.coeffs[:mid]), NewDotForm(f.curve, f.coeffs[mid:]), nil
}

// Pad appends zero coefficients up to newSize.
func (f *DotForm) Pad(newSize int) (LinearForm, error) {
	if newSize < len(f.coeffs) {
		return nil, fmt.Errorf("%w: pad %d to %d", ErrFaultyParameterSize, len(f.coeffs), newSize)
	}
	coeffs := make([]curve.Scalar, newSize)
	copy(coeffs, f.coeffs)
	for i := len(f.coeffs); i < newSize; i++ {
		coeffs[i] = f.curve.NewScalar(0)
	}
	return &DotForm{curve: f.curve, coeffs: coeffs}, nil
}

func (f *DotForm) Coefficients() []curve.Scalar {
	return append([]curve.Scalar(nil), f.coeffs...)
}

func addForms(c curve.Curve, a, b LinearForm) (LinearForm, error) {
	if b == nil || a.Size() != b.Size() {
		return nil, fmt.Errorf("%w: adding linear forms of different sizes", ErrVectorLenMismatch)
	}
	ac, bc := a.Coefficients(), b.Coefficients()
	coeffs := make([]curve.Scalar, len(ac))
	for i := range ac {
		coeffs[i] = c.ScalarAdd(ac[i], bc[i])
	}
	return &DotForm{curve: c, coeffs: coeffs}, nil
}
