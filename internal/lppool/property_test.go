package lppool

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"pgregory.net/rapid"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// Keeps generated pools far from uint64 limits so only the properties under
// test can fail.
const maxDrawnAmount = 1_000_000_000_000

func drawParams(t *rapid.T) Params {
	minFee := rapid.Uint64Range(0, uint64(units.PercentDenominator)).Draw(t, "minFee")
	maxFee := rapid.Uint64Range(minFee, uint64(units.PercentDenominator)).Draw(t, "maxFee")

	return Params{
		Price:           units.Price(rapid.Uint64Range(1, 100*units.Scale).Draw(t, "price")),
		MinFee:          units.Percentage(minFee),
		MaxFee:          units.Percentage(maxFee),
		LiquidityTarget: units.TokenAmount(rapid.Uint64Range(1, maxDrawnAmount).Draw(t, "target")),
	}
}

func drawPool(t *rapid.T) *Pool {
	params := drawParams(t)
	p, err := New(params.Price, params.MinFee, params.MaxFee, params.LiquidityTarget)
	if err != nil {
		t.Fatalf("New(%+v): %v", params, err)
	}
	return p
}

func mulDivBig(x, y, d uint64) uint64 {
	r := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	return r.Quo(r, new(big.Int).SetUint64(d)).Uint64()
}

func checkInvariants(t *rapid.T, p *Pool) {
	s := p.State()
	empty := s.TokenReserve == 0 && s.StakedReserve == 0
	if (s.LpSupply == 0) != empty {
		t.Fatalf("lp supply %d with reserves %d/%d", s.LpSupply, s.TokenReserve, s.StakedReserve)
	}
	if s.MaxFee < s.MinFee || s.Price == 0 || s.LiquidityTarget == 0 {
		t.Fatalf("params changed: %+v", s.Params)
	}
}

func TestProperty_NewValidation(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		price := units.Price(rapid.Uint64Range(0, 3).Draw(t, "price"))
		target := units.TokenAmount(rapid.Uint64Range(0, 3).Draw(t, "target"))
		minFee := units.Percentage(rapid.Uint64Range(0, 2*uint64(units.PercentDenominator)).Draw(t, "minFee"))
		maxFee := units.Percentage(rapid.Uint64Range(0, 2*uint64(units.PercentDenominator)).Draw(t, "maxFee"))

		p, err := New(price, minFee, maxFee, target)
		switch {
		case price == 0 || target == 0:
			if !errors.Is(err, apperrors.ErrZeroValue) {
				t.Fatalf("want ErrZeroValue, got %v", err)
			}
		case maxFee < minFee || maxFee > units.PercentDenominator:
			if !errors.Is(err, apperrors.ErrInvalidFees) {
				t.Fatalf("want ErrInvalidFees, got %v", err)
			}
		default:
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !p.Empty() {
				t.Fatal("new pool is not empty")
			}
			return
		}
		if p != nil {
			t.Fatal("pool returned alongside an error")
		}
	})
}

func TestProperty_BootstrapMintsOneToOne(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := drawPool(t)
		amount := units.TokenAmount(rapid.Uint64Min(1).Draw(t, "amount"))

		minted, err := p.AddLiquidity(amount)
		if err != nil {
			t.Fatalf("AddLiquidity: %v", err)
		}
		if uint64(minted) != uint64(amount) {
			t.Fatalf("minted %d for %d", minted, amount)
		}
	})
}

func TestProperty_ProportionalWithdrawal(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := drawPool(t)
		deposit := rapid.Uint64Range(1, maxDrawnAmount).Draw(t, "deposit")
		if _, err := p.AddLiquidity(units.TokenAmount(deposit)); err != nil {
			t.Fatalf("AddLiquidity: %v", err)
		}
		staked := units.StakedTokenAmount(rapid.Uint64Range(1, maxDrawnAmount).Draw(t, "staked"))
		_, _ = p.Swap(staked) // may legitimately fail; the pool is unchanged then

		before := p.State()
		lp := rapid.Uint64Range(1, uint64(before.LpSupply)).Draw(t, "lp")

		tokenOut, stakedOut, err := p.RemoveLiquidity(units.LpTokenAmount(lp))
		if err != nil {
			t.Fatalf("RemoveLiquidity: %v", err)
		}
		wantToken := mulDivBig(lp, uint64(before.TokenReserve), uint64(before.LpSupply))
		wantStaked := mulDivBig(lp, uint64(before.StakedReserve), uint64(before.LpSupply))
		if uint64(tokenOut) != wantToken || uint64(stakedOut) != wantStaked {
			t.Fatalf("got %d/%d want %d/%d", tokenOut, stakedOut, wantToken, wantStaked)
		}
		checkInvariants(t, p)

		if rest := p.State().LpSupply; rest > 0 {
			if _, _, err := p.RemoveLiquidity(rest); err != nil {
				t.Fatalf("RemoveLiquidity(rest): %v", err)
			}
		}
		if s := p.State(); s != (State{Params: before.Params}) {
			t.Fatalf("pool not drained: %+v", s)
		}
	})
}

func TestProperty_FeeMonotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := drawPool(t)
		params := p.Params()

		a := units.TokenAmount(rapid.Uint64Range(0, 2*maxDrawnAmount).Draw(t, "a"))
		b := units.TokenAmount(rapid.Uint64Range(0, 2*maxDrawnAmount).Draw(t, "b"))
		if a > b {
			a, b = b, a
		}

		feeA, err := p.Fee(a)
		if err != nil {
			t.Fatalf("Fee(%d): %v", a, err)
		}
		feeB, err := p.Fee(b)
		if err != nil {
			t.Fatalf("Fee(%d): %v", b, err)
		}
		if feeA < feeB {
			t.Fatalf("fee rose with the reserve: Fee(%d)=%d < Fee(%d)=%d", a, feeA, b, feeB)
		}
		if feeA < params.MinFee || feeA > params.MaxFee {
			t.Fatalf("fee %d outside [%d, %d]", feeA, params.MinFee, params.MaxFee)
		}
		if b >= params.LiquidityTarget && feeB != params.MinFee {
			t.Fatalf("Fee(%d) = %d above target", b, feeB)
		}

		drained, err := p.Fee(0)
		if err != nil {
			t.Fatalf("Fee(0): %v", err)
		}
		if drained != params.MaxFee {
			t.Fatalf("Fee(0) = %d, want %d", drained, params.MaxFee)
		}
	})
}

func TestProperty_LiquidityGuard(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := drawPool(t)
		deposit := rapid.Uint64Range(1, maxDrawnAmount).Draw(t, "deposit")
		if _, err := p.AddLiquidity(units.TokenAmount(deposit)); err != nil {
			t.Fatalf("AddLiquidity: %v", err)
		}
		before := p.State()

		staked := rapid.Uint64Range(1, 2*maxDrawnAmount).Draw(t, "staked")
		gross := mulDivBig(staked, uint64(before.Price), units.Scale)

		_, err := p.Swap(units.StakedTokenAmount(staked))
		if gross > uint64(before.TokenReserve) {
			if !errors.Is(err, apperrors.ErrInsufficientLiquidity) {
				t.Fatalf("want ErrInsufficientLiquidity, got %v", err)
			}
		}
		if err != nil && p.State() != before {
			t.Fatalf("failed swap mutated the pool: %+v -> %+v", before, p.State())
		}
		checkInvariants(t, p)
	})
}

func TestProperty_OperationSequences(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := drawPool(t)

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := p.State()

			var err error
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				_, err = p.AddLiquidity(units.TokenAmount(rapid.Uint64Range(0, maxDrawnAmount).Draw(t, "deposit")))
			case 1:
				_, err = p.Swap(units.StakedTokenAmount(rapid.Uint64Range(0, maxDrawnAmount).Draw(t, "staked")))
			case 2:
				_, _, err = p.RemoveLiquidity(units.LpTokenAmount(rapid.Uint64Range(0, uint64(before.LpSupply)+1).Draw(t, "lp")))
			}

			if err != nil && p.State() != before {
				t.Fatalf("failed operation mutated the pool: %v", err)
			}
			checkInvariants(t, p)
		}
	})
}
