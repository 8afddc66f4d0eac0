package dto

import (
	"github.com/fleshka4/liquidity-pool/internal/lppool"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// CreatePoolRequest represents a request to register a new pool.
type CreatePoolRequest struct {
	Name   string
	Params lppool.Params
}

// AddLiquidityRequest represents a deposit of underlying tokens into a pool.
type AddLiquidityRequest struct {
	Pool   string
	Amount units.TokenAmount
}

// RemoveLiquidityRequest represents a burn of LP tokens.
type RemoveLiquidityRequest struct {
	Pool     string
	LpAmount units.LpTokenAmount
}

// SwapRequest represents a swap of staked tokens for underlying tokens.
type SwapRequest struct {
	Pool         string
	StakedAmount units.StakedTokenAmount
}

// Withdrawal is what a liquidity removal pays out.
type Withdrawal struct {
	Token  units.TokenAmount
	Staked units.StakedTokenAmount
}

// PoolInfo is a named pool snapshot.
type PoolInfo struct {
	Name  string
	State lppool.State
}
