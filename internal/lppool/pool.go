// Package lppool models a single-asset liquidity pool that buys a staked token
// for the underlying token at a fixed price, charging a fee that grows as the
// underlying reserve is drained below a liquidity target.
//
// A Pool is not safe for concurrent use: every mutating call needs exclusive
// access for its duration. Each operation validates and computes everything
// before touching state, so a failed call leaves the pool unchanged.
package lppool

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// Params are the immutable parameters of a pool.
type Params struct {
	Price           units.Price
	MinFee          units.Percentage
	MaxFee          units.Percentage
	LiquidityTarget units.TokenAmount
}

// Validate checks params the same way New does.
func (p Params) Validate() error {
	if p.Price == 0 {
		return errors.Wrap(apperrors.ErrZeroValue, "price")
	}
	if p.LiquidityTarget == 0 {
		return errors.Wrap(apperrors.ErrZeroValue, "liquidity target")
	}
	if p.MaxFee < p.MinFee {
		return errors.Wrapf(apperrors.ErrInvalidFees, "max fee %s is below min fee %s", p.MaxFee, p.MinFee)
	}
	if p.MaxFee > units.PercentDenominator {
		return errors.Wrapf(apperrors.ErrInvalidFees, "max fee %s is above 100%%", p.MaxFee)
	}
	return nil
}

// Pool is the pool aggregate. The zero value is not usable; create pools with New.
type Pool struct {
	params Params

	tokenReserve  units.TokenAmount
	stakedReserve units.StakedTokenAmount
	lpSupply      units.LpTokenAmount
}

// New creates an empty pool.
//
// Fails with apperrors.ErrZeroValue if price or liquidityTarget is zero and
// with apperrors.ErrInvalidFees if maxFee < minFee or maxFee exceeds 100%.
func New(
	price units.Price,
	minFee units.Percentage,
	maxFee units.Percentage,
	liquidityTarget units.TokenAmount,
) (*Pool, error) {
	params := Params{
		Price:           price,
		MinFee:          minFee,
		MaxFee:          maxFee,
		LiquidityTarget: liquidityTarget,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Pool{params: params}, nil
}

// Params returns the immutable parameters of the pool.
func (p *Pool) Params() Params {
	return p.params
}

// State returns a copy of the current pool state.
func (p *Pool) State() State {
	return State{
		Params:        p.params,
		TokenReserve:  p.tokenReserve,
		StakedReserve: p.stakedReserve,
		LpSupply:      p.lpSupply,
	}
}

// Empty reports whether the pool holds no reserves and no LP tokens are outstanding.
func (p *Pool) Empty() bool {
	return p.lpSupply == 0
}
