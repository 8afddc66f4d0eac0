package lppool

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/dexmath"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// AddLiquidity deposits amount underlying tokens and mints LP tokens for it.
//
// The first deposit into an empty pool mints 1:1. Later deposits mint
// amount * Scale / LpPrice, so the LP price is unchanged by the deposit and
// fees already collected stay with existing holders. Minted amounts round down.
//
// A nonzero deposit too small to mint a single LP unit at the current price
// is rejected with apperrors.ErrZeroValue rather than absorbed by the pool.
func (p *Pool) AddLiquidity(amount units.TokenAmount) (units.LpTokenAmount, error) {
	if amount == 0 {
		return 0, errors.Wrap(apperrors.ErrZeroValue, "deposit amount")
	}

	minted, err := p.mintAmount(amount)
	if err != nil {
		return 0, err
	}
	if minted == 0 {
		return 0, errors.Wrapf(apperrors.ErrZeroValue, "deposit of %s mints no lp tokens", amount)
	}

	reserve, err := dexmath.Add(uint64(p.tokenReserve), uint64(amount))
	if err != nil {
		return 0, errors.Wrap(err, "token reserve")
	}
	supply, err := dexmath.Add(uint64(p.lpSupply), uint64(minted))
	if err != nil {
		return 0, errors.Wrap(err, "lp supply")
	}

	p.tokenReserve = units.TokenAmount(reserve)
	p.lpSupply = units.LpTokenAmount(supply)

	return minted, nil
}

func (p *Pool) mintAmount(amount units.TokenAmount) (units.LpTokenAmount, error) {
	if p.lpSupply == 0 {
		return units.LpTokenAmount(amount), nil
	}

	lpPrice, err := p.State().LpPrice()
	if err != nil {
		return 0, err
	}
	if lpPrice == 0 {
		return 0, errors.Wrap(apperrors.ErrArithmeticOverflow, "lp tokens outstanding but pool value rounds to zero")
	}
	minted, err := dexmath.MulDiv(uint64(amount), units.Scale, uint64(lpPrice))
	if err != nil {
		return 0, errors.Wrap(err, "minted amount")
	}
	return units.LpTokenAmount(minted), nil
}

// RemoveLiquidity burns lpAmount LP tokens and pays out the matching share of
// both reserves: lpAmount * reserve / lpSupply each, rounded down.
//
// Burning the whole supply empties the pool exactly.
func (p *Pool) RemoveLiquidity(lpAmount units.LpTokenAmount) (units.TokenAmount, units.StakedTokenAmount, error) {
	if lpAmount == 0 {
		return 0, 0, errors.Wrap(apperrors.ErrZeroValue, "lp amount")
	}
	if lpAmount > p.lpSupply {
		return 0, 0, errors.Wrapf(apperrors.ErrInsufficientLpTokens, "burning %s of %s", lpAmount, p.lpSupply)
	}

	tokenOut, err := dexmath.MulDiv(uint64(lpAmount), uint64(p.tokenReserve), uint64(p.lpSupply))
	if err != nil {
		return 0, 0, errors.Wrap(err, "token share")
	}
	stakedOut, err := dexmath.MulDiv(uint64(lpAmount), uint64(p.stakedReserve), uint64(p.lpSupply))
	if err != nil {
		return 0, 0, errors.Wrap(err, "staked share")
	}

	tokenReserve, err := dexmath.Sub(uint64(p.tokenReserve), tokenOut)
	if err != nil {
		return 0, 0, errors.Wrap(err, "token reserve")
	}
	stakedReserve, err := dexmath.Sub(uint64(p.stakedReserve), stakedOut)
	if err != nil {
		return 0, 0, errors.Wrap(err, "staked reserve")
	}
	supply, err := dexmath.Sub(uint64(p.lpSupply), uint64(lpAmount))
	if err != nil {
		return 0, 0, errors.Wrap(err, "lp supply")
	}

	p.tokenReserve = units.TokenAmount(tokenReserve)
	p.stakedReserve = units.StakedTokenAmount(stakedReserve)
	p.lpSupply = units.LpTokenAmount(supply)

	return units.TokenAmount(tokenOut), units.StakedTokenAmount(stakedOut), nil
}
