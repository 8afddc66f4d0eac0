package lppool

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/dexmath"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// State is a point-in-time copy of a pool.
type State struct {
	Params

	TokenReserve  units.TokenAmount
	StakedReserve units.StakedTokenAmount
	LpSupply      units.LpTokenAmount
}

// TotalValue is the pool value in underlying-token units, with the staked
// reserve valued at the pool price.
func (s State) TotalValue() (units.TokenAmount, error) {
	staked, err := s.StakedReserve.TokenValue(s.Price)
	if err != nil {
		return 0, err
	}
	total, err := dexmath.Add(uint64(s.TokenReserve), uint64(staked))
	if err != nil {
		return 0, errors.Wrap(err, "total value")
	}
	return units.TokenAmount(total), nil
}

// LpPrice is the underlying-token value of one whole LP token
// (total value * Scale / lp supply). An empty pool prices LP tokens at 1.
func (s State) LpPrice() (units.TokenAmount, error) {
	if s.LpSupply == 0 {
		return units.TokenAmount(units.Scale), nil
	}
	total, err := s.TotalValue()
	if err != nil {
		return 0, err
	}
	price, err := dexmath.MulDiv(uint64(total), units.Scale, uint64(s.LpSupply))
	if err != nil {
		return 0, errors.Wrap(err, "lp price")
	}
	return units.TokenAmount(price), nil
}
