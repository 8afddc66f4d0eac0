package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/lppool"
	servicedto "github.com/fleshka4/liquidity-pool/internal/service/dto"
	"github.com/fleshka4/liquidity-pool/internal/transport/http/dto"
	"github.com/fleshka4/liquidity-pool/internal/transport/http/validate"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	pools, err := s.svc.Pools(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]dto.PoolResponse, 0, len(pools))
	for _, p := range pools {
		resp = append(resp, dto.NewPoolResponse(p.Name, p.State))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	name := r.PathValue("name")
	st, err := s.svc.Pool(ctx, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.NewPoolResponse(name, st))
}

func (s *Server) handleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.AmountRequestValidate(r, validate.ParamAmount)
	if err != nil {
		s.writeJSON(w, code, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	minted, err := s.svc.AddLiquidity(ctx, servicedto.AddLiquidityRequest{
		Pool:   req.Pool,
		Amount: units.TokenAmount(req.Amount),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.AddLiquidityResponse{Minted: minted.String()})
}

func (s *Server) handleRemoveLiquidity(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.AmountRequestValidate(r, validate.ParamLpAmount)
	if err != nil {
		s.writeJSON(w, code, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.RemoveLiquidity(ctx, servicedto.RemoveLiquidityRequest{
		Pool:     req.Pool,
		LpAmount: units.LpTokenAmount(req.Amount),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.RemoveLiquidityResponse{
		Token:  out.Token.String(),
		Staked: out.Staked.String(),
	})
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	s.handleSwapLike(w, r, s.svc.Swap)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	s.handleSwapLike(w, r, s.svc.Quote)
}

func (s *Server) handleSwapLike(
	w http.ResponseWriter,
	r *http.Request,
	call func(context.Context, servicedto.SwapRequest) (lppool.Quote, error),
) {
	req, code, err := validate.AmountRequestValidate(r, validate.ParamStakedAmount)
	if err != nil {
		s.writeJSON(w, code, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	q, err := call(ctx, servicedto.SwapRequest{
		Pool:         req.Pool,
		StakedAmount: units.StakedTokenAmount(req.Amount),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.NewQuoteResponse(q))
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrZeroValue),
		errors.Is(err, apperrors.ErrInvalidFees):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPoolNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrPoolExists),
		errors.Is(err, apperrors.ErrInsufficientLiquidity),
		errors.Is(err, apperrors.ErrInsufficientLpTokens):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.log.Error("internal error", zap.Error(err))
		msg = "internal error"
	}
	s.writeJSON(w, code, dto.ErrorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response write error", zap.Error(err))
	}
}
