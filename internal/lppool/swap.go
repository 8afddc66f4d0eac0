package lppool

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/dexmath"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// Quote is the breakdown of a swap.
type Quote struct {
	// Gross is the staked input valued at the pool price, before fees.
	Gross units.TokenAmount
	// AmountAfter is the projected token reserve if Gross were paid out in full.
	AmountAfter units.TokenAmount
	// Fee is the rate charged on Gross.
	Fee units.Percentage
	// Net is what the caller receives.
	Net units.TokenAmount
}

// Fee returns the fee rate for a swap that would leave amountAfter tokens in
// the pool before fees.
//
// At or above the liquidity target the fee is MinFee. Below it the fee grows
// linearly and reaches MaxFee when amountAfter is zero:
//
//	fee = MaxFee - (MaxFee - MinFee) * amountAfter / LiquidityTarget
func (p *Pool) Fee(amountAfter units.TokenAmount) (units.Percentage, error) {
	target := p.params.LiquidityTarget
	if amountAfter >= target {
		return p.params.MinFee, nil
	}

	spread, err := dexmath.Sub(uint64(p.params.MaxFee), uint64(p.params.MinFee))
	if err != nil {
		return 0, errors.Wrap(err, "fee spread")
	}
	// amountAfter < target, so discount < spread.
	discount, err := dexmath.MulDiv(spread, uint64(amountAfter), uint64(target))
	if err != nil {
		return 0, errors.Wrap(err, "fee discount")
	}
	fee, err := dexmath.Sub(uint64(p.params.MaxFee), discount)
	if err != nil {
		return 0, errors.Wrap(err, "fee")
	}
	return units.Percentage(fee), nil
}

// Quote prices a swap of stakedAmount without changing the pool.
//
// Besides a zero stakedAmount, Quote also fails with apperrors.ErrZeroValue
// when the swap is dust: its gross value truncates to zero, or the fee takes
// the whole of it. Executing such a swap would take staked tokens for nothing.
func (p *Pool) Quote(stakedAmount units.StakedTokenAmount) (Quote, error) {
	if stakedAmount == 0 {
		return Quote{}, errors.Wrap(apperrors.ErrZeroValue, "staked amount")
	}

	gross, err := stakedAmount.TokenValue(p.params.Price)
	if err != nil {
		return Quote{}, err
	}
	if gross == 0 {
		return Quote{}, errors.Wrapf(apperrors.ErrZeroValue, "%s staked is worth nothing at price %s", stakedAmount, p.params.Price)
	}
	if gross > p.tokenReserve {
		return Quote{}, errors.Wrapf(apperrors.ErrInsufficientLiquidity, "swap needs %s, reserve is %s", gross, p.tokenReserve)
	}

	after, err := dexmath.Sub(uint64(p.tokenReserve), uint64(gross))
	if err != nil {
		return Quote{}, errors.Wrap(err, "amount after")
	}
	fee, err := p.Fee(units.TokenAmount(after))
	if err != nil {
		return Quote{}, err
	}
	net, err := fee.Apply(gross)
	if err != nil {
		return Quote{}, err
	}
	if net == 0 {
		return Quote{}, errors.Wrapf(apperrors.ErrZeroValue, "swap of %s pays nothing after a %s fee", stakedAmount, fee)
	}

	return Quote{
		Gross:       gross,
		AmountAfter: units.TokenAmount(after),
		Fee:         fee,
		Net:         net,
	}, nil
}

// Swap sells stakedAmount staked tokens to the pool and returns the
// underlying tokens paid out, net of the fee.
func (p *Pool) Swap(stakedAmount units.StakedTokenAmount) (units.TokenAmount, error) {
	q, err := p.SwapQuoted(stakedAmount)
	if err != nil {
		return 0, err
	}
	return q.Net, nil
}

// SwapQuoted is Swap returning the full breakdown of the executed swap.
func (p *Pool) SwapQuoted(stakedAmount units.StakedTokenAmount) (Quote, error) {
	q, err := p.Quote(stakedAmount)
	if err != nil {
		return Quote{}, err
	}

	tokenReserve, err := dexmath.Sub(uint64(p.tokenReserve), uint64(q.Net))
	if err != nil {
		return Quote{}, errors.Wrap(err, "token reserve")
	}
	stakedReserve, err := dexmath.Add(uint64(p.stakedReserve), uint64(stakedAmount))
	if err != nil {
		return Quote{}, errors.Wrap(err, "staked reserve")
	}

	p.tokenReserve = units.TokenAmount(tokenReserve)
	p.stakedReserve = units.StakedTokenAmount(stakedReserve)

	return q, nil
}
