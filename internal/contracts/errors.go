package contracts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrContractNotFound    = errors.New("Contract not found")
	ErrDuplicateCompareIDs = errors.New("Contract ids must be unique")
)

// ValidationError marks input rejected before any query runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// MissingContractsError lists every id in a compare request that did not
// resolve, in request order.
type MissingContractsError struct {
	IDs []uint
}

func (e *MissingContractsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return "Contracts not found: " + strings.Join(parts, ", ")
}

// logUnexpected records persistence failures with operation context. Domain
// errors (validation, not-found, duplicate ids) pass through silently.
func logUnexpected(op string, err error) {
	var ve *ValidationError
	var me *MissingContractsError
	if errors.Is(err, ErrContractNotFound) || errors.Is(err, ErrDuplicateCompareIDs) ||
		errors.As(err, &ve) || errors.As(err, &me) {
		return
	}
	log.Error().Err(err).Str("op", op).Msg("contracts: persistence failure")
}
