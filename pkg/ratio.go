// Package pkg is a package that provides utilities for covtree.
package pkg

import (
	"errors"
	"fmt"
	"math"
)

// ErrRatioOverflow indicates that an exact ratio operation would exceed the
// int64 range of the numerator or denominator.
var ErrRatioOverflow = errors.New("ratio arithmetic overflow")

// fallbackScale is the fixed denominator used when a ratio is rebuilt from a
// float64 approximation.
const fallbackScale = 1_000_000_000

// Ratio is an exact rational number backed by int64 numerator and
// denominator. The zero value reads as 0.
type Ratio struct {
	num int64
	den int64 // 0 is treated as 1 so the zero value is usable
}

// NewRatio creates a normalized ratio num/den. A zero denominator yields the
// zero ratio.
func NewRatio(num, den int64) Ratio {
	if den == 0 {
		return Ratio{}
	}

	return normalize(num, den)
}

// RatioFromFloat64 approximates f as a ratio over a fixed denominator.
//
// The conversion is lossy: anything beyond nine fractional digits is
// discarded and values outside the representable range saturate.
func RatioFromFloat64(f float64) Ratio {
	scaled := f * fallbackScale

	switch {
	case math.IsNaN(scaled):
		return Ratio{}
	case scaled >= math.MaxInt64:
		return normalize(math.MaxInt64, fallbackScale)
	case scaled <= math.MinInt64:
		return normalize(math.MinInt64, fallbackScale)
	}

	return normalize(int64(math.Round(scaled)), fallbackScale)
}

// Num returns the normalized numerator. The sign of the ratio lives here.
func (r Ratio) Num() int64 {
	return r.num
}

// Den returns the normalized denominator, always positive.
func (r Ratio) Den() int64 {
	if r.den == 0 {
		return 1
	}

	return r.den
}

// IsZero reports whether the ratio equals 0.
func (r Ratio) IsZero() bool {
	return r.num == 0
}

// Float64 returns the closest float64 approximation of the ratio.
func (r Ratio) Float64() float64 {
	return float64(r.num) / float64(r.Den())
}

// Equal reports whether both ratios represent the same rational value.
func (r Ratio) Equal(other Ratio) bool {
	return r.num == other.num && r.Den() == other.Den()
}

// Sub returns r - other as an exact ratio.
//
// Cross multiplication can exceed the int64 range for unrelated
// denominators; in that case ErrRatioOverflow is returned and the caller
// decides whether a lossy approximation is acceptable.
func (r Ratio) Sub(other Ratio) (Ratio, error) {
	left, ok := checkedMul(r.num, other.Den())
	if !ok {
		return Ratio{}, ErrRatioOverflow
	}

	right, ok := checkedMul(other.num, r.Den())
	if !ok {
		return Ratio{}, ErrRatioOverflow
	}

	num, ok := checkedSub(left, right)
	if !ok {
		return Ratio{}, ErrRatioOverflow
	}

	den, ok := checkedMul(r.Den(), other.Den())
	if !ok {
		return Ratio{}, ErrRatioOverflow
	}

	return normalize(num, den), nil
}

// String renders the ratio as "num/den".
func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.num, r.Den())
}

func normalize(num, den int64) Ratio {
	if num == 0 {
		return Ratio{num: 0, den: 1}
	}

	if den < 0 {
		num, den = -num, -den
	}

	div := gcd(abs(num), den)

	return Ratio{num: num / div, den: den / div}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}

	product := a * b
	if product/b != a {
		return 0, false
	}

	return product, true
}

func checkedSub(a, b int64) (int64, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, false
	}

	return diff, true
}
