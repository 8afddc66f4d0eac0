package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fleshka4/liquidity-pool/internal/lppool"
	"github.com/fleshka4/liquidity-pool/internal/registry"
	"github.com/fleshka4/liquidity-pool/internal/service/dto"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

//go:generate mockgen -source=service.go -destination=mock/mock_service.go -package=mock

// Service represents interface for business logic.
type Service interface {
	CreatePool(ctx context.Context, req dto.CreatePoolRequest) (lppool.State, error)
	AddLiquidity(ctx context.Context, req dto.AddLiquidityRequest) (units.LpTokenAmount, error)
	RemoveLiquidity(ctx context.Context, req dto.RemoveLiquidityRequest) (dto.Withdrawal, error)
	Swap(ctx context.Context, req dto.SwapRequest) (lppool.Quote, error)
	Quote(ctx context.Context, req dto.SwapRequest) (lppool.Quote, error)
	Pool(ctx context.Context, name string) (lppool.State, error)
	Pools(ctx context.Context) ([]dto.PoolInfo, error)
}

// PoolService represents struct for business logic over a pool registry.
type PoolService struct {
	pools *registry.Registry
	log   *zap.Logger
}

// NewPoolService creates PoolService. A nil logger disables logging.
func NewPoolService(pools *registry.Registry, log *zap.Logger) *PoolService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PoolService{pools: pools, log: log}
}
