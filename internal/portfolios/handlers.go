package portfolios

import (
	"errors"
	"strconv"

	"wattmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles portfolio handlers.
type Handlers struct {
	Service *Service
}

// GetPortfolio GET /api/v1/portfolios/:user_id
func (h *Handlers) GetPortfolio(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	view, err := h.Service.GetPortfolio(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Portfolio fetched successfully", view, nil)
}

// GetMetrics GET /api/v1/portfolios/:user_id/metrics
func (h *Handlers) GetMetrics(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	metrics, err := h.Service.GetMetrics(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Portfolio metrics fetched successfully", metrics, nil)
}

// AddContract POST /api/v1/portfolios/:user_id/contracts/:contract_id
func (h *Handlers) AddContract(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	contractID, err := parseContractID(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	holding, err := h.Service.AddContract(c.Context(), userID, contractID)
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessCreated(c, "Contract added to portfolio", holding, nil)
}

// RemoveContract DELETE /api/v1/portfolios/:user_id/contracts/:contract_id
func (h *Handlers) RemoveContract(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	contractID, err := parseContractID(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	if err := h.Service.RemoveContract(c.Context(), userID, contractID); err != nil {
		return respondError(c, err)
	}
	return response.NoContent(c)
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	v, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("user_id must be a positive integer")
	}
	return v, nil
}

func parseContractID(c *fiber.Ctx) (uint, error) {
	v, err := strconv.ParseUint(c.Params("contract_id"), 10, 32)
	if err != nil {
		return 0, errors.New("contract_id must be a positive integer")
	}
	return uint(v), nil
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrContractNotFound), errors.Is(err, ErrHoldingNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
