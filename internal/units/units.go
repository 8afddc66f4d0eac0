// Package units defines the scaled fixed-point quantities the pool works with.
//
// Every quantity is a uint64 holding the real value multiplied by Scale, so
// 150_000 is 1.5. Each unit has its own type; crossing units requires an
// explicit conversion through a Price.
package units

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/dexmath"
)

const (
	// Scale is the fixed-point denominator: 5 implied decimal digits.
	Scale uint64 = 100_000

	// Decimals is the number of implied decimal digits of Scale.
	Decimals = 5

	// PercentDenominator is the Percentage value representing 100%.
	PercentDenominator Percentage = Percentage(100 * Scale)
)

type (
	// Price is the staked-to-underlying exchange rate.
	Price uint64

	// TokenAmount is a quantity of the underlying token.
	TokenAmount uint64

	// StakedTokenAmount is a quantity of the staked token.
	StakedTokenAmount uint64

	// LpTokenAmount is a quantity of pool-ownership units.
	LpTokenAmount uint64

	// Percentage is a fee rate; PercentDenominator is 100%.
	Percentage uint64
)

// TokenValue converts a staked amount into underlying-token units at price p,
// truncating: amount * p / Scale.
func (s StakedTokenAmount) TokenValue(p Price) (TokenAmount, error) {
	v, err := dexmath.MulDiv(uint64(s), uint64(p), Scale)
	if err != nil {
		return 0, errors.Wrap(err, "staked token value")
	}
	return TokenAmount(v), nil
}

// Apply returns amount * (100% - p) / 100%, i.e. amount net of the fee rate p.
func (p Percentage) Apply(amount TokenAmount) (TokenAmount, error) {
	keep, err := dexmath.Sub(uint64(PercentDenominator), uint64(p))
	if err != nil {
		return 0, errors.Wrap(err, "fee exceeds 100%")
	}
	v, err := dexmath.MulDiv(uint64(amount), keep, uint64(PercentDenominator))
	if err != nil {
		return 0, errors.Wrap(err, "apply fee")
	}
	return TokenAmount(v), nil
}

func (p Price) String() string             { return format(uint64(p), Decimals) }
func (a TokenAmount) String() string       { return format(uint64(a), Decimals) }
func (a StakedTokenAmount) String() string { return format(uint64(a), Decimals) }
func (a LpTokenAmount) String() string     { return format(uint64(a), Decimals) }

// String renders the rate as a percent, e.g. 10_000 is "0.1%".
func (p Percentage) String() string {
	// PercentDenominator / 100 == Scale, so one percent point is Scale.
	return format(uint64(p), Decimals) + "%"
}

func format(v uint64, exp int32) string {
	return decimal.NewFromUint64(v).Shift(-exp).String()
}

// Parse converts a human-readable quantity into its scaled integer form.
// Both decimals ("1.5") and plain scaled integers with a trailing "u"
// ("150000u") are accepted. More than Decimals fractional digits is an error.
func Parse(s string) (uint64, error) {
	if n := len(s); n > 1 && s[n-1] == 'u' {
		d, err := decimal.NewFromString(s[:n-1])
		if err != nil {
			return 0, errors.Wrapf(apperrors.ErrInvalidArgument, "bad scaled integer %q", s)
		}
		if err := checkRange(d, 0, s); err != nil {
			return 0, err
		}
		if d.Sign() == 0 {
			return 0, nil
		}
		if !d.IsInteger() {
			return 0, errors.Wrapf(apperrors.ErrInvalidArgument, "bad scaled integer %q", s)
		}
		return toUint64(d, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(apperrors.ErrInvalidArgument, "bad decimal %q", s)
	}
	if err := checkRange(d, Decimals, s); err != nil {
		return 0, err
	}
	if d.Sign() == 0 {
		return 0, nil
	}
	scaled := d.Shift(Decimals)
	if !scaled.IsInteger() {
		return 0, errors.Wrapf(apperrors.ErrInvalidArgument, "%q has more than %d decimals", s, Decimals)
	}
	return toUint64(scaled, s)
}

// ParsePercent converts a percent string ("0.1", "9%") into a Percentage.
func ParsePercent(s string) (Percentage, error) {
	if n := len(s); n > 0 && s[n-1] == '%' {
		s = s[:n-1]
	}
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return Percentage(v), nil
}

// maxDigits is the number of decimal digits past which no uint64 fits:
// 10^maxDigits exceeds math.MaxUint64.
const maxDigits = 20

// checkRange rejects negative values and values that would carry at least
// maxDigits digits once shifted by shift, before anything expands the
// coefficient into a big integer.
func checkRange(d decimal.Decimal, shift int32, src string) error {
	if d.IsNegative() {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "%q is negative", src)
	}
	if d.Sign() != 0 && int64(d.Exponent())+int64(shift) >= maxDigits {
		return errors.Wrapf(apperrors.ErrArithmeticOverflow, "%q exceeds uint64", src)
	}
	return nil
}

func toUint64(d decimal.Decimal, src string) (uint64, error) {
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, errors.Wrapf(apperrors.ErrArithmeticOverflow, "%q exceeds uint64", src)
	}
	return bi.Uint64(), nil
}
