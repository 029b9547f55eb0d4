package contracts

import (
	"errors"
	"strconv"

	"wattmarket-backend/internal/models"
	"wattmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handlers bundles contract handlers.
type Handlers struct {
	Service *Service
}

// ListContracts GET /api/v1/contracts
func (h *Handlers) ListContracts(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", DefaultLimit)

	page, err := h.Service.List(c.Context(), filters, offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Contracts fetched successfully", page, nil)
}

// GetContract GET /api/v1/contracts/:id
func (h *Handlers) GetContract(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	contract, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Contract fetched successfully", contract, nil)
}

type createContractRequest struct {
	EnergyType    models.EnergyType     `json:"energy_type"`
	QuantityMWh   decimal.Decimal       `json:"quantity_mwh"`
	PricePerMWh   decimal.Decimal       `json:"price_per_mwh"`
	DeliveryStart models.Date           `json:"delivery_start"`
	DeliveryEnd   models.Date           `json:"delivery_end"`
	Location      string                `json:"location"`
	Status        models.ContractStatus `json:"status"`
}

// CreateContract POST /api/v1/contracts
func (h *Handlers) CreateContract(c *fiber.Ctx) error {
	var req createContractRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	contract, err := h.Service.Create(c.Context(), CreateContractInput{
		EnergyType:    req.EnergyType,
		QuantityMWh:   req.QuantityMWh,
		PricePerMWh:   req.PricePerMWh,
		DeliveryStart: req.DeliveryStart,
		DeliveryEnd:   req.DeliveryEnd,
		Location:      req.Location,
		Status:        req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessCreated(c, "Contract created successfully", contract, nil)
}

type updateContractRequest struct {
	EnergyType    *models.EnergyType     `json:"energy_type"`
	QuantityMWh   *decimal.Decimal       `json:"quantity_mwh"`
	PricePerMWh   *decimal.Decimal       `json:"price_per_mwh"`
	DeliveryStart *models.Date           `json:"delivery_start"`
	DeliveryEnd   *models.Date           `json:"delivery_end"`
	Location      *string                `json:"location"`
	Status        *models.ContractStatus `json:"status"`
}

// UpdateContract PATCH /api/v1/contracts/:id
func (h *Handlers) UpdateContract(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	var req updateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	contract, err := h.Service.Update(c.Context(), id, UpdateContractInput{
		EnergyType:    req.EnergyType,
		QuantityMWh:   req.QuantityMWh,
		PricePerMWh:   req.PricePerMWh,
		DeliveryStart: req.DeliveryStart,
		DeliveryEnd:   req.DeliveryEnd,
		Location:      req.Location,
		Status:        req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Contract updated successfully", contract, nil)
}

// DeleteContract DELETE /api/v1/contracts/:id
func (h *Handlers) DeleteContract(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return response.NoContent(c)
}

// CompareContracts GET /api/v1/contracts/compare?ids=..&ids=..
func (h *Handlers) CompareContracts(c *fiber.Ctx) error {
	raw := c.Context().QueryArgs().PeekMulti("ids")
	ids := make([]uint, 0, len(raw))
	for _, b := range raw {
		v, err := strconv.ParseUint(string(b), 10, 32)
		if err != nil {
			return response.Error(c, "ids must be positive integers", fiber.StatusBadRequest, nil)
		}
		ids = append(ids, uint(v))
	}
	comparison, err := h.Service.Compare(c.Context(), ids)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Contracts compared successfully", comparison, nil)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, invalidf("%s must be a positive integer", name)
	}
	return uint(v), nil
}

func parseFilters(c *fiber.Ctx) (Filters, error) {
	var f Filters

	for _, b := range c.Context().QueryArgs().PeekMulti("energy_types") {
		f.EnergyTypes = append(f.EnergyTypes, models.EnergyType(b))
	}
	var err error
	if f.PriceMin, err = parseDecimalQuery(c, "price_min"); err != nil {
		return f, err
	}
	if f.PriceMax, err = parseDecimalQuery(c, "price_max"); err != nil {
		return f, err
	}
	if f.QuantityMin, err = parseDecimalQuery(c, "quantity_min"); err != nil {
		return f, err
	}
	if f.QuantityMax, err = parseDecimalQuery(c, "quantity_max"); err != nil {
		return f, err
	}
	f.Location = c.Query("location")
	if f.DeliveryStartFrom, err = parseDateQuery(c, "delivery_start_from"); err != nil {
		return f, err
	}
	if f.DeliveryEndTo, err = parseDateQuery(c, "delivery_end_to"); err != nil {
		return f, err
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ContractStatus(raw)
		f.Status = &status
	}
	f.Search = c.Query("search")
	f.SortBy = SortBy(c.Query("sort_by"))
	f.SortDirection = SortDirection(c.Query("sort_direction"))
	return f, nil
}

func parseDecimalQuery(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalidf("%s must be a decimal number", name)
	}
	return &v, nil
}

func parseDateQuery(c *fiber.Ctx, name string) (*models.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, invalidf("%s must be a YYYY-MM-DD date", name)
	}
	return &d, nil
}

func respondError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	var me *MissingContractsError
	switch {
	case errors.As(err, &ve), errors.Is(err, ErrDuplicateCompareIDs):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, ErrContractNotFound), errors.As(err, &me):
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
