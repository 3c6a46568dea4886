// Package math includes important helpers for the deterministic ledger
// economics, such as checked integer arithmetic and an integer square root.
// Everything in here must produce bit-identical results to the on-chain
// program, so floating point is never used.
package math

import (
	"math/bits"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	// ErrOverflow occurs when an operation exceeds the uint64 range.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrDivByZero occurs when a divisor is zero.
	ErrDivByZero = errors.New("integer divide by zero")
)

// IntegerSquareRoot returns the largest integer r such that r*r <= n,
// using an integer Newton iteration. The iteration starts above the true
// root and decreases monotonically, so it cannot oscillate on perfect
// squares and converges in O(log n) steps.
func IntegerSquareRoot(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	// n/2+1 bounds the root from above for all n >= 2 and cannot overflow.
	y := n/2 + 1
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// Add64 performs a + b and reports overflow as an error instead of wrapping.
func Add64(a, b uint64) (uint64, error) {
	res, carry := bits.Add64(a, b, 0 /* carry */)
	if carry > 0 {
		return 0, errors.Wrap(ErrOverflow, "addition overflows")
	}
	return res, nil
}

// Sub64 performs a - b and reports underflow as an error instead of wrapping.
func Sub64(a, b uint64) (uint64, error) {
	res, borrow := bits.Sub64(a, b, 0 /* borrow */)
	if borrow > 0 {
		return 0, errors.Wrap(ErrOverflow, "subtraction underflows")
	}
	return res, nil
}

// Mul64 performs a * b and reports overflow as an error instead of wrapping.
func Mul64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi > 0 {
		return 0, errors.Wrap(ErrOverflow, "multiplication overflows")
	}
	return lo, nil
}

// MulDiv64 computes (a * b) / den with a 256-bit intermediate product and
// truncating division, the same rounding the on-chain program applies to
// proportional pool shares. It fails with ErrDivByZero when den is zero and
// with ErrOverflow when the quotient does not fit in a uint64.
func MulDiv64(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivByZero
	}
	num := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	quo := num.Div(num, uint256.NewInt(den))
	if !quo.IsUint64() {
		return 0, errors.Wrap(ErrOverflow, "quotient exceeds uint64")
	}
	return quo.Uint64(), nil
}
