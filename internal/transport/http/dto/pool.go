package dto

import "github.com/fleshka4/liquidity-pool/internal/lppool"

// AmountRequest represents a parsed pool operation request: the pool from
// the path and a scaled amount from the query.
type AmountRequest struct {
	Pool   string
	Amount uint64
}

// PoolResponse is the JSON view of a pool. Quantities are decimal strings.
type PoolResponse struct {
	Name            string `json:"name"`
	Price           string `json:"price"`
	MinFee          string `json:"min_fee"`
	MaxFee          string `json:"max_fee"`
	LiquidityTarget string `json:"liquidity_target"`
	TokenReserve    string `json:"token_reserve"`
	StakedReserve   string `json:"staked_reserve"`
	LpSupply        string `json:"lp_supply"`
	LpPrice         string `json:"lp_price,omitempty"`
}

// NewPoolResponse renders a pool snapshot.
func NewPoolResponse(name string, s lppool.State) PoolResponse {
	resp := PoolResponse{
		Name:            name,
		Price:           s.Price.String(),
		MinFee:          s.MinFee.String(),
		MaxFee:          s.MaxFee.String(),
		LiquidityTarget: s.LiquidityTarget.String(),
		TokenReserve:    s.TokenReserve.String(),
		StakedReserve:   s.StakedReserve.String(),
		LpSupply:        s.LpSupply.String(),
	}
	if lpPrice, err := s.LpPrice(); err == nil {
		resp.LpPrice = lpPrice.String()
	}
	return resp
}

// AddLiquidityResponse is returned by the add_liquidity endpoint.
type AddLiquidityResponse struct {
	Minted string `json:"minted"`
}

// RemoveLiquidityResponse is returned by the remove_liquidity endpoint.
type RemoveLiquidityResponse struct {
	Token  string `json:"token"`
	Staked string `json:"staked"`
}

// QuoteResponse is returned by the swap and quote endpoints.
type QuoteResponse struct {
	Gross       string `json:"gross"`
	AmountAfter string `json:"amount_after"`
	Fee         string `json:"fee"`
	Net         string `json:"net"`
}

// NewQuoteResponse renders a swap breakdown.
func NewQuoteResponse(q lppool.Quote) QuoteResponse {
	return QuoteResponse{
		Gross:       q.Gross.String(),
		AmountAfter: q.AmountAfter.String(),
		Fee:         q.Fee.String(),
		Net:         q.Net.String(),
	}
}

// ErrorResponse carries a failed request's message.
type ErrorResponse struct {
	Error string `json:"error"`
}
