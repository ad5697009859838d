// Package amount implements 128-bit unsigned atomic-unit arithmetic.
// IPPAN's supply cap (21e6 whole units at 1e-24 atomic-unit granularity)
// exceeds int64/uint64 range, so every balance, bond, fee, and reward
// amount in this module is a *big.Int constrained to [0, Max128] with
// saturating semantics, mirroring the original Rust u128 arithmetic
// (crates/economics, crates/consensus/src/fees.rs) without floats.
package amount

import "math/big"

// Zero is the additive identity. Callers must not mutate it; use Zero.Copy().
var Zero = big.NewInt(0)

// Max128 is 2^128 - 1, the saturation ceiling mirroring Rust's u128::MAX.
var Max128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// FromUint64 lifts a uint64 into an Amount.
func FromUint64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// SaturatingAdd returns a+b clamped to [0, Max128].
func SaturatingAdd(a, b *big.Int) *big.Int {
	sum := new(big.Int).Add(a, b)
	return clamp(sum)
}

// SaturatingSub returns a-b clamped to 0 on underflow.
func SaturatingSub(a, b *big.Int) *big.Int {
	diff := new(big.Int).Sub(a, b)
	if diff.Sign() < 0 {
		return big.NewInt(0)
	}
	return diff
}

// SaturatingMul returns a*b clamped to [0, Max128].
func SaturatingMul(a, b *big.Int) *big.Int {
	prod := new(big.Int).Mul(a, b)
	return clamp(prod)
}

// MulDivBps computes floor(amount * numBps / 10000) without intermediate
// overflow, the basis-point scaling used throughout fee and reward math.
func MulDivBps(amt *big.Int, numBps uint32) *big.Int {
	num := new(big.Int).Mul(amt, big.NewInt(int64(numBps)))
	return num.Quo(num, big.NewInt(10_000))
}

// MulDivFrac computes floor(amount * num / den), or zero if den == 0.
func MulDivFrac(amt *big.Int, num, den *big.Int) *big.Int {
	if den.Sign() == 0 {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(amt, num)
	return out.Quo(out, den)
}

func clamp(v *big.Int) *big.Int {
	if v.Sign() < 0 {
		return big.NewInt(0)
	}
	if v.Cmp(Max128) > 0 {
		return new(big.Int).Set(Max128)
	}
	return v
}

// Equal reports whether a and b represent the same amount, treating nil as
// zero.
func Equal(a, b *big.Int) bool {
	return normalize(a).Cmp(normalize(b)) == 0
}

// Cmp compares a and b, treating nil as zero.
func Cmp(a, b *big.Int) int {
	return normalize(a).Cmp(normalize(b))
}

func normalize(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
