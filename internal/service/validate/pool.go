package validate

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/service/dto"
)

// MaxPoolNameLen bounds pool names so they stay usable as path segments.
const MaxPoolNameLen = 64

// PoolName validates a pool name.
func PoolName(name string) error {
	if name == "" {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pool name cannot be empty")
	}
	if len(name) > MaxPoolNameLen {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "pool name longer than %d bytes", MaxPoolNameLen)
	}
	if strings.ContainsAny(name, "/?# \t\n") {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "pool name %q contains reserved characters", name)
	}
	return nil
}

// CreatePoolRequestValidate validates a pool creation request.
func CreatePoolRequestValidate(req dto.CreatePoolRequest) error {
	if err := PoolName(req.Name); err != nil {
		return err
	}
	return req.Params.Validate()
}

// AddLiquidityRequestValidate validates a deposit request.
func AddLiquidityRequestValidate(req dto.AddLiquidityRequest) error {
	return PoolName(req.Pool)
}

// RemoveLiquidityRequestValidate validates a withdrawal request.
func RemoveLiquidityRequestValidate(req dto.RemoveLiquidityRequest) error {
	return PoolName(req.Pool)
}

// SwapRequestValidate validates a swap or quote request.
func SwapRequestValidate(req dto.SwapRequest) error {
	return PoolName(req.Pool)
}
