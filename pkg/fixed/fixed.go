// Package fixed implements the integer arithmetic used by every geometric
// computation in the engine.
//
// Fractional values are represented as integers multiplied by Scale, so 1.5
// is stored as 1500. Nothing in the engine uses floating point.
package fixed

// Scale is the fixed-point multiplier shared by the whole engine.
const Scale = 1000

const (
	// maxSqrtDepth bounds the overflow decomposition in UnscaledSqrt. Each
	// round divides the operand by Scale, so three rounds already cover the
	// whole int64 range.
	maxSqrtDepth = 8

	// maxNewtonSteps bounds a single Newton-Raphson run. Starting from Scale
	// the iteration needs at most one step per bit of the operand plus a
	// handful to settle.
	maxNewtonSteps = 256
)

// sqrtScale is UnscaledSqrt(Scale), the factor applied per round of the
// overflow decomposition (32 for Scale 1000).
var sqrtScale, _ = newton(Scale)

// RoundingDivide divides dividend by divisor and rounds the quotient to the
// nearest integer, ties away from zero. A zero divisor yields 0.
func RoundingDivide(dividend, divisor int) int {
	if divisor == 0 {
		return 0
	}
	q := dividend / divisor
	r := abs(dividend % divisor)
	d := abs(divisor)
	if r >= d-r {
		if (dividend > 0) == (divisor > 0) {
			return q + 1
		}
		return q - 1
	}
	return q
}

// Sqrt returns round(sqrt(n) * Scale), or -1 when n is negative.
//
// When scaling n or squaring a provisional guess would overflow, the root is
// taken on the unscaled value instead and multiplied by Scale, which keeps
// the result in range at the cost of the fractional digits.
func Sqrt(n int) int {
	if n < 0 {
		return -1
	}
	if n == 0 {
		return 0
	}
	u := uint64(n)
	scaled := u * Scale
	if scaled/Scale != u {
		return Scale * UnscaledSqrt(n)
	}
	square := scaled * Scale
	if square/Scale != scaled {
		return Scale * UnscaledSqrt(n)
	}
	r, ok := newton(square)
	if !ok {
		return Scale * UnscaledSqrt(n)
	}
	return r
}

// UnscaledSqrt returns the integer square root of n, or -1 when n is
// negative.
//
// If the Newton iteration overflows, n is reduced by Scale and the result
// multiplied by UnscaledSqrt(Scale). That identity is approximate: every
// round overestimates by about 1.2%.
func UnscaledSqrt(n int) int {
	if n < 0 {
		return -1
	}
	factor := 1
	for depth := 0; depth < maxSqrtDepth; depth++ {
		if n == 0 {
			return 0
		}
		if r, ok := newton(uint64(n)); ok {
			return factor * r
		}
		factor *= sqrtScale
		n = RoundingDivide(n, Scale)
	}
	return -1
}

// newton runs Newton-Raphson on square starting from Scale. It stops when
// the rounded correction is zero, repeats, or flips sign with the same
// magnitude (a two-step cycle). ok is false if squaring a guess overflowed.
func newton(square uint64) (root int, ok bool) {
	difference, previous := int64(10), int64(11)
	guess := int64(Scale)
	for step := 0; step < maxNewtonSteps; step++ {
		if difference == 0 || difference == previous || difference == -previous {
			break
		}
		if guess == 0 {
			return 0, true
		}
		g := uint64(abs64(guess))
		sq := g * g
		if sq/g != g {
			return 0, false
		}

		var delta uint64
		var sign int64
		if sq > square {
			delta = sq - square
			sign = 1
		} else {
			delta = square - sq
			sign = -1
		}
		if guess < 0 {
			sign = -sign
		}

		div := 2 * g
		previous = difference
		difference = int64(delta/div) * sign
		if rem := delta % div; rem >= div-rem {
			difference += sign
		}
		guess -= difference
	}
	return int(guess), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
