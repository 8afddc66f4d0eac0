// Package scenario replays a scripted sequence of pool operations and
// reports what each one did.
package scenario

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/config"
	"github.com/fleshka4/liquidity-pool/internal/service"
	"github.com/fleshka4/liquidity-pool/internal/service/dto"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// Setup creates every configured pool through svc.
func Setup(ctx context.Context, svc service.Service, pools []config.Pool) error {
	for i, p := range pools {
		params, err := p.Params()
		if err != nil {
			return errors.Wrapf(err, "pools[%d]", i)
		}
		if _, err := svc.CreatePool(ctx, dto.CreatePoolRequest{Name: p.Name, Params: params}); err != nil {
			return errors.Wrapf(err, "create pool %q", p.Name)
		}
	}
	return nil
}

// Run executes steps in order, writing one line per step to out, followed by
// the final state of every pool. It stops at the first failing step.
func Run(ctx context.Context, svc service.Service, steps []config.Step, out io.Writer) error {
	for i, step := range steps {
		line, err := runStep(ctx, svc, step)
		if err != nil {
			return errors.Wrapf(err, "step %d (%s %s %s)", i+1, step.Op, step.Pool, step.Amount)
		}
		if _, err := fmt.Fprintf(out, "[%d] %s\n", i+1, line); err != nil {
			return errors.Wrap(err, "write report")
		}
	}

	pools, err := svc.Pools(ctx)
	if err != nil {
		return errors.Wrap(err, "svc.Pools")
	}
	for _, p := range pools {
		s := p.State
		if _, err := fmt.Fprintf(out, "pool %s: token %s, staked %s, lp %s\n",
			p.Name, s.TokenReserve, s.StakedReserve, s.LpSupply); err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	return nil
}

func runStep(ctx context.Context, svc service.Service, step config.Step) (string, error) {
	amount, err := step.Value()
	if err != nil {
		return "", err
	}

	switch step.Op {
	case config.OpAddLiquidity:
		in := units.TokenAmount(amount)
		minted, err := svc.AddLiquidity(ctx, dto.AddLiquidityRequest{Pool: step.Pool, Amount: in})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: deposit %s -> minted %s LP", step.Pool, in, minted), nil

	case config.OpSwap:
		in := units.StakedTokenAmount(amount)
		q, err := svc.Swap(ctx, dto.SwapRequest{Pool: step.Pool, StakedAmount: in})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: swap %s staked -> gross %s, fee %s, net %s",
			step.Pool, in, q.Gross, q.Fee, q.Net), nil

	case config.OpRemoveLiquidity:
		in := units.LpTokenAmount(amount)
		w, err := svc.RemoveLiquidity(ctx, dto.RemoveLiquidityRequest{Pool: step.Pool, LpAmount: in})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: burn %s LP -> %s token + %s staked", step.Pool, in, w.Token, w.Staked), nil

	default:
		return "", errors.Errorf("unknown op %q", step.Op)
	}
}
