package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/liquidity-pool/internal/lppool"
	"github.com/fleshka4/liquidity-pool/internal/service/dto"
	"github.com/fleshka4/liquidity-pool/internal/service/validate"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// CreatePool registers a new empty pool.
func (s *PoolService) CreatePool(ctx context.Context, req dto.CreatePoolRequest) (lppool.State, error) {
	if err := ctx.Err(); err != nil {
		return lppool.State{}, err
	}
	if err := validate.CreatePoolRequestValidate(req); err != nil {
		s.reject("create_pool", req.Name, err)
		return lppool.State{}, err
	}

	st, err := s.pools.Create(req.Name, req.Params)
	if err != nil {
		s.reject("create_pool", req.Name, err)
		return lppool.State{}, err
	}

	s.log.Info("pool created",
		zap.String("pool", req.Name),
		zap.Stringer("price", st.Price),
		zap.Stringer("min_fee", st.MinFee),
		zap.Stringer("max_fee", st.MaxFee),
		zap.Stringer("liquidity_target", st.LiquidityTarget),
	)
	return st, nil
}

// AddLiquidity deposits underlying tokens and returns the LP tokens minted.
func (s *PoolService) AddLiquidity(ctx context.Context, req dto.AddLiquidityRequest) (units.LpTokenAmount, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validate.AddLiquidityRequestValidate(req); err != nil {
		s.reject("add_liquidity", req.Pool, err)
		return 0, err
	}

	var (
		minted units.LpTokenAmount
		st     lppool.State
	)
	err := s.pools.Do(req.Pool, func(p *lppool.Pool) error {
		var err error
		if minted, err = p.AddLiquidity(req.Amount); err != nil {
			return err
		}
		st = p.State()
		return nil
	})
	if err != nil {
		s.reject("add_liquidity", req.Pool, err, zap.Stringer("amount", req.Amount))
		return 0, err
	}

	s.log.Debug("liquidity added",
		zap.String("pool", req.Pool),
		zap.Stringer("amount", req.Amount),
		zap.Stringer("minted", minted),
		zap.Stringer("token_reserve", st.TokenReserve),
		zap.Stringer("lp_supply", st.LpSupply),
	)
	return minted, nil
}

// RemoveLiquidity burns LP tokens and returns the proportional share of both reserves.
func (s *PoolService) RemoveLiquidity(ctx context.Context, req dto.RemoveLiquidityRequest) (dto.Withdrawal, error) {
	if err := ctx.Err(); err != nil {
		return dto.Withdrawal{}, err
	}
	if err := validate.RemoveLiquidityRequestValidate(req); err != nil {
		s.reject("remove_liquidity", req.Pool, err)
		return dto.Withdrawal{}, err
	}

	var (
		out dto.Withdrawal
		st  lppool.State
	)
	err := s.pools.Do(req.Pool, func(p *lppool.Pool) error {
		var err error
		if out.Token, out.Staked, err = p.RemoveLiquidity(req.LpAmount); err != nil {
			return err
		}
		st = p.State()
		return nil
	})
	if err != nil {
		s.reject("remove_liquidity", req.Pool, err, zap.Stringer("lp_amount", req.LpAmount))
		return dto.Withdrawal{}, err
	}

	s.log.Debug("liquidity removed",
		zap.String("pool", req.Pool),
		zap.Stringer("lp_amount", req.LpAmount),
		zap.Stringer("token_out", out.Token),
		zap.Stringer("staked_out", out.Staked),
		zap.Stringer("lp_supply", st.LpSupply),
	)
	return out, nil
}

// Swap exchanges staked tokens for underlying tokens and returns the executed quote.
func (s *PoolService) Swap(ctx context.Context, req dto.SwapRequest) (lppool.Quote, error) {
	if err := ctx.Err(); err != nil {
		return lppool.Quote{}, err
	}
	if err := validate.SwapRequestValidate(req); err != nil {
		s.reject("swap", req.Pool, err)
		return lppool.Quote{}, err
	}

	var (
		q  lppool.Quote
		st lppool.State
	)
	err := s.pools.Do(req.Pool, func(p *lppool.Pool) error {
		var err error
		if q, err = p.SwapQuoted(req.StakedAmount); err != nil {
			return err
		}
		st = p.State()
		return nil
	})
	if err != nil {
		s.reject("swap", req.Pool, err, zap.Stringer("staked_amount", req.StakedAmount))
		return lppool.Quote{}, err
	}

	s.log.Debug("swap executed",
		zap.String("pool", req.Pool),
		zap.Stringer("staked_amount", req.StakedAmount),
		zap.Stringer("gross", q.Gross),
		zap.Stringer("fee", q.Fee),
		zap.Stringer("net", q.Net),
		zap.Stringer("token_reserve", st.TokenReserve),
	)
	return q, nil
}

// Quote previews a swap without changing the pool.
func (s *PoolService) Quote(ctx context.Context, req dto.SwapRequest) (lppool.Quote, error) {
	if err := ctx.Err(); err != nil {
		return lppool.Quote{}, err
	}
	if err := validate.SwapRequestValidate(req); err != nil {
		return lppool.Quote{}, err
	}

	var q lppool.Quote
	err := s.pools.Do(req.Pool, func(p *lppool.Pool) error {
		var err error
		q, err = p.Quote(req.StakedAmount)
		return err
	})
	if err != nil {
		return lppool.Quote{}, err
	}
	return q, nil
}

// Pool returns a snapshot of the named pool.
func (s *PoolService) Pool(ctx context.Context, name string) (lppool.State, error) {
	if err := ctx.Err(); err != nil {
		return lppool.State{}, err
	}
	if err := validate.PoolName(name); err != nil {
		return lppool.State{}, err
	}
	return s.pools.Get(name)
}

// Pools returns snapshots of every registered pool ordered by name.
func (s *PoolService) Pools(ctx context.Context) ([]dto.PoolInfo, error) {
	names := s.pools.Names()
	out := make([]dto.PoolInfo, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := s.pools.Get(name)
		if err != nil {
			return nil, errors.Wrap(err, "pools.Get")
		}
		out = append(out, dto.PoolInfo{Name: name, State: st})
	}
	return out, nil
}

func (s *PoolService) reject(op, pool string, err error, fields ...zap.Field) {
	s.log.Warn("operation rejected",
		append([]zap.Field{zap.String("op", op), zap.String("pool", pool), zap.Error(err)}, fields...)...,
	)
}
