package dexmath

import (
	gethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
)

// MulDiv computes x * y / d with a 256-bit intermediate, truncating toward zero.
//
// The product never wraps: only the final quotient has to fit into 64 bits.
// Returns apperrors.ErrArithmeticOverflow if d is zero or the quotient
// does not fit.
func MulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, errors.Wrap(apperrors.ErrArithmeticOverflow, "division by zero")
	}

	var a, b, c uint256.Int
	a.SetUint64(x)
	b.SetUint64(y)
	c.SetUint64(d)

	// x, y < 2^64 so the product always fits into 256 bits.
	q, _ := new(uint256.Int).MulDivOverflow(&a, &b, &c)
	if !q.IsUint64() {
		return 0, errors.Wrapf(apperrors.ErrArithmeticOverflow, "%d * %d / %d exceeds uint64", x, y, d)
	}
	return q.Uint64(), nil
}

// Add returns x + y or apperrors.ErrArithmeticOverflow on wraparound.
func Add(x, y uint64) (uint64, error) {
	sum, overflow := gethmath.SafeAdd(x, y)
	if overflow {
		return 0, errors.Wrapf(apperrors.ErrArithmeticOverflow, "%d + %d", x, y)
	}
	return sum, nil
}

// Sub returns x - y or apperrors.ErrArithmeticOverflow when y > x.
func Sub(x, y uint64) (uint64, error) {
	diff, underflow := gethmath.SafeSub(x, y)
	if underflow {
		return 0, errors.Wrapf(apperrors.ErrArithmeticOverflow, "%d - %d", x, y)
	}
	return diff, nil
}
