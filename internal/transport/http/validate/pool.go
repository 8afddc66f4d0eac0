package validate

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/transport/http/dto"
	"github.com/fleshka4/liquidity-pool/internal/units"
)

// Query parameters.
const (
	ParamAmount       = "amount"
	ParamLpAmount     = "lp_amount"
	ParamStakedAmount = "staked_amount"
)

// AmountRequestValidate reads the {name} path value and the scaled amount
// from query parameter param. Amounts are decimals ("1.5") or scaled
// integers with a "u" suffix ("150000u").
func AmountRequestValidate(r *http.Request, param string) (*dto.AmountRequest, int, error) {
	name := r.PathValue("name")
	if name == "" {
		return nil, http.StatusBadRequest, errors.New("missing pool name")
	}

	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, http.StatusBadRequest, errors.Errorf("missing %s", param)
	}
	amount, err := units.Parse(raw)
	if err != nil {
		return nil, http.StatusBadRequest, errors.Wrapf(err, "bad %s", param)
	}

	return &dto.AmountRequest{Pool: name, Amount: amount}, 0, nil
}
