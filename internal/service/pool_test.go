package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/lppool"
	"github.com/fleshka4/liquidity-pool/internal/registry"
	"github.com/fleshka4/liquidity-pool/internal/service/dto"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

var referenceParams = lppool.Params{
	Price:           150_000,
	MinFee:          10_000,
	MaxFee:          900_000,
	LiquidityTarget: 9_000_000,
}

func newTestService(t *testing.T) (*PoolService, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewPoolService(registry.New(), zap.New(core))

	_, err := svc.CreatePool(context.Background(), dto.CreatePoolRequest{Name: "msol", Params: referenceParams})
	require.NoError(t, err)
	return svc, logs
}

func TestPoolService_ReferenceScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	minted, err := svc.AddLiquidity(ctx, dto.AddLiquidityRequest{Pool: "msol", Amount: 10_000_000})
	require.NoError(t, err)
	require.Equal(t, units.LpTokenAmount(10_000_000), minted)

	preview, err := svc.Quote(ctx, dto.SwapRequest{Pool: "msol", StakedAmount: 600_000})
	require.NoError(t, err)

	q, err := svc.Swap(ctx, dto.SwapRequest{Pool: "msol", StakedAmount: 600_000})
	require.NoError(t, err)
	require.Equal(t, preview, q)
	require.Equal(t, units.TokenAmount(899_100), q.Net)

	minted, err = svc.AddLiquidity(ctx, dto.AddLiquidityRequest{Pool: "msol", Amount: 1_000_000})
	require.NoError(t, err)
	require.Equal(t, units.LpTokenAmount(999_910), minted)

	q, err = svc.Swap(ctx, dto.SwapRequest{Pool: "msol", StakedAmount: 3_000_000})
	require.NoError(t, err)
	require.Equal(t, units.Percentage(346_134), q.Fee)
	require.Equal(t, units.TokenAmount(4_344_239), q.Net)

	st, err := svc.Pool(ctx, "msol")
	require.NoError(t, err)
	require.Equal(t, units.TokenAmount(5_756_661), st.TokenReserve)
	require.Equal(t, units.StakedTokenAmount(3_600_000), st.StakedReserve)
	require.Equal(t, units.LpTokenAmount(10_999_910), st.LpSupply)

	out, err := svc.RemoveLiquidity(ctx, dto.RemoveLiquidityRequest{Pool: "msol", LpAmount: st.LpSupply})
	require.NoError(t, err)
	require.Equal(t, dto.Withdrawal{Token: st.TokenReserve, Staked: st.StakedReserve}, out)

	st, err = svc.Pool(ctx, "msol")
	require.NoError(t, err)
	require.Equal(t, lppool.State{Params: referenceParams}, st)
}

func TestPoolService_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, logs := newTestService(t)

	_, err := svc.CreatePool(ctx, dto.CreatePoolRequest{Name: "msol", Params: referenceParams})
	require.True(t, errors.Is(err, apperrors.ErrPoolExists))

	_, err = svc.AddLiquidity(ctx, dto.AddLiquidityRequest{Pool: "missing", Amount: 1})
	require.True(t, errors.Is(err, apperrors.ErrPoolNotFound))

	_, err = svc.AddLiquidity(ctx, dto.AddLiquidityRequest{Pool: "msol"})
	require.True(t, errors.Is(err, apperrors.ErrZeroValue))

	_, err = svc.Swap(ctx, dto.SwapRequest{Pool: "msol", StakedAmount: 1})
	require.True(t, errors.Is(err, apperrors.ErrInsufficientLiquidity))

	_, err = svc.RemoveLiquidity(ctx, dto.RemoveLiquidityRequest{Pool: "msol", LpAmount: 1})
	require.True(t, errors.Is(err, apperrors.ErrInsufficientLpTokens))

	_, err = svc.Pool(ctx, "")
	require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))

	rejected := logs.FilterMessage("operation rejected")
	require.Equal(t, 5, rejected.Len())
	for _, e := range rejected.All() {
		require.Equal(t, zapcore.WarnLevel, e.Level)
	}

	st, err := svc.Pool(ctx, "msol")
	require.NoError(t, err)
	require.Equal(t, lppool.State{Params: referenceParams}, st)
}

func TestPoolService_CanceledContext(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AddLiquidity(ctx, dto.AddLiquidityRequest{Pool: "msol", Amount: 1})
	require.ErrorIs(t, err, context.Canceled)

	_, err = svc.Pools(ctx)
	require.ErrorIs(t, err, context.Canceled)

	st, err := svc.Pool(context.Background(), "msol")
	require.NoError(t, err)
	require.True(t, st.LpSupply == 0)
}

func TestPoolService_Pools(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, logs := newTestService(t)

	_, err := svc.CreatePool(ctx, dto.CreatePoolRequest{Name: "jitosol", Params: referenceParams})
	require.NoError(t, err)
	require.Equal(t, 2, logs.FilterMessage("pool created").Len())

	pools, err := svc.Pools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	require.Equal(t, "jitosol", pools[0].Name)
	require.Equal(t, "msol", pools[1].Name)
}

func TestNewPoolService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewPoolService(registry.New(), nil)
	_, err := svc.CreatePool(context.Background(), dto.CreatePoolRequest{Name: "msol", Params: referenceParams})
	require.NoError(t, err)
}
