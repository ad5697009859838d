// Package fixedpoint implements the SCALE=1e6 fixed-point arithmetic used on
// every consensus-critical code path. All operations are total: overflow
// saturates to the int64 bounds, division by zero yields zero, and no
// operation ever touches a floating-point type.
package fixedpoint

import (
	"math/big"
)

// Scale is the implicit fixed-point scale factor (1e6).
const Scale int64 = 1_000_000

// Scalar is a fixed-point value with implicit scale Scale.
type Scalar int64

// One is the fixed-point representation of 1.0.
const One Scalar = Scalar(Scale)

// FromInt lifts a plain integer into fixed-point (x * Scale), saturating.
func FromInt(x int64) Scalar {
	return Scalar(saturatingMul(x, Scale))
}

// Add returns a+b, saturating on overflow.
func Add(a, b Scalar) Scalar {
	sum := new(big.Int).Add(big.NewInt(int64(a)), big.NewInt(int64(b)))
	return Scalar(saturateBig(sum))
}

// Sub returns a-b, saturating on overflow.
func Sub(a, b Scalar) Scalar {
	diff := new(big.Int).Sub(big.NewInt(int64(a)), big.NewInt(int64(b)))
	return Scalar(saturateBig(diff))
}

// MulFixed returns sat((a*b)/Scale) using a 128-bit intermediate so the
// multiply itself never overflows before the descale.
func MulFixed(a, b Scalar) Scalar {
	prod := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b)))
	prod.Quo(prod, big.NewInt(Scale))
	return Scalar(saturateBig(prod))
}

// DivFixed returns sat((a*Scale)/b), or zero if b == 0.
func DivFixed(a, b Scalar) Scalar {
	if b == 0 {
		return 0
	}
	num := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(Scale))
	num.Quo(num, big.NewInt(int64(b)))
	return Scalar(saturateBig(num))
}

// Clamp restricts x to [lo, hi]. If lo > hi the range is treated as empty
// and x is clamped to lo.
func Clamp(x, lo, hi Scalar) Scalar {
	if hi < lo {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Quantize rounds x down to the nearest multiple of step (step > 0).
// A non-positive step returns x unchanged.
func Quantize(x, step Scalar) Scalar {
	if step <= 0 {
		return x
	}
	q := int64(x) / int64(step)
	return Scalar(q * int64(step))
}

// Cmp returns -1, 0, or 1 as a < b, a == b, a > b.
func Cmp(a, b Scalar) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func saturatingMul(a, b int64) int64 {
	prod := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	return saturateBig(prod)
}

func saturateBig(v *big.Int) int64 {
	if v.Cmp(bigMaxInt64) > 0 {
		return maxInt64
	}
	if v.Cmp(bigMinInt64) < 0 {
		return minInt64
	}
	return v.Int64()
}

const (
	maxInt64 int64 = 1<<63 - 1
	minInt64 int64 = -1 << 63
)

var (
	bigMaxInt64 = big.NewInt(maxInt64)
	bigMinInt64 = big.NewInt(minInt64)
)

// Min returns the smaller of two Scalars.
func Min(a, b Scalar) Scalar {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two Scalars.
func Max(a, b Scalar) Scalar {
	if a > b {
		return a
	}
	return b
}

// AbsDiff returns |a-b|, saturating.
func AbsDiff(a, b Scalar) Scalar {
	if a > b {
		return Sub(a, b)
	}
	return Sub(b, a)
}
