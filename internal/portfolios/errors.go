package portfolios

import (
	"errors"

	"github.com/rs/zerolog/log"
)

var (
	ErrContractNotFound = errors.New("Contract not found")
	ErrHoldingNotFound  = errors.New("Portfolio holding not found")
)

// logUnexpected records persistence failures with operation context. Domain
// errors pass through silently.
func logUnexpected(op string, userID int64, err error) {
	if errors.Is(err, ErrContractNotFound) || errors.Is(err, ErrHoldingNotFound) {
		return
	}
	log.Error().Err(err).Str("op", op).Int64("user_id", userID).Msg("portfolios: persistence failure")
}
