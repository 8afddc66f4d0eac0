package apperrors

import "github.com/pkg/errors"

var (
	// ErrZeroValue is returned when a quantity that must be positive is zero:
	// a deposit, swap or burn amount, or the price or liquidity target of a new pool.
	ErrZeroValue = errors.New("zero value")

	// ErrInvalidFees is returned when the fee bounds of a new pool are inconsistent.
	ErrInvalidFees = errors.New("invalid fees")

	// ErrInsufficientLiquidity is returned when the pool does not hold enough
	// underlying tokens to cover the gross value of a swap.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrInsufficientLpTokens is returned when a withdrawal burns more LP tokens
	// than are outstanding.
	ErrInsufficientLpTokens = errors.New("insufficient lp tokens")

	// ErrArithmeticOverflow is an internal fault: an intermediate result
	// overflowed, underflowed or divided by zero.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPoolNotFound is returned when a named pool is not registered.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrPoolExists is returned when a pool name is already taken.
	ErrPoolExists = errors.New("pool already exists")
)
