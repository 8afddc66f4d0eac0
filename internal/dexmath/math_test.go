package dexmath

import (
	"math"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
)

func TestMulDiv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		x, y, d uint64
		want    uint64
		wantErr error
	}{
		{name: "exact", x: 600_000, y: 150_000, d: 100_000, want: 900_000},
		{name: "truncates", x: 1_000_000, y: 100_000, d: 100_009, want: 999_910},
		{name: "zero numerator", x: 0, y: math.MaxUint64, d: 7, want: 0},
		{name: "wide intermediate", x: math.MaxUint64, y: math.MaxUint64, d: math.MaxUint64, want: math.MaxUint64},
		{name: "quotient overflows", x: math.MaxUint64, y: 2, d: 1, wantErr: apperrors.ErrArithmeticOverflow},
		{name: "division by zero", x: 1, y: 1, d: 0, wantErr: apperrors.ErrArithmeticOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MulDiv(tt.x, tt.y, tt.d)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.Zero(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMulDiv_MatchesBigInt(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Uint64().Draw(t, "x")
		y := rapid.Uint64().Draw(t, "y")
		d := rapid.Uint64Min(1).Draw(t, "d")

		want := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
		want.Quo(want, new(big.Int).SetUint64(d))

		got, err := MulDiv(x, y, d)
		if !want.IsUint64() {
			if !errors.Is(err, apperrors.ErrArithmeticOverflow) {
				t.Fatalf("expected overflow for %d*%d/%d, got %v", x, y, d, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want.Uint64() {
			t.Fatalf("%d*%d/%d: want %s got %d", x, y, d, want, got)
		}
	})
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	sum, err := Add(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum)

	_, err = Add(math.MaxUint64, 1)
	require.True(t, errors.Is(err, apperrors.ErrArithmeticOverflow))

	diff, err := Sub(5, 5)
	require.NoError(t, err)
	require.Zero(t, diff)

	_, err = Sub(4, 5)
	require.True(t, errors.Is(err, apperrors.ErrArithmeticOverflow))
}

func BenchmarkMulDiv(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := MulDiv(1_234_567_890_123, 150_000, 100_000); err != nil {
			b.Fatal(err)
		}
	}
}
