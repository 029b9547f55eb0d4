package contracts

import (
	"context"
	"errors"
	"strings"

	"wattmarket-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Service encapsulates contract operations.
type Service struct {
	DB *gorm.DB
}

// List returns one page of contracts matching the filters, sorted with an id
// tie-break. No total count is computed.
func (s *Service) List(ctx context.Context, f Filters, offset, limit int) ([]models.Contract, error) {
	if offset < 0 {
		return nil, invalidf("offset must not be negative")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, invalidf("limit must be between 1 and %d", MaxLimit)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var page []models.Contract
	q := f.apply(s.DB.WithContext(ctx).Model(&models.Contract{}))
	if err := q.Offset(offset).Limit(limit).Find(&page).Error; err != nil {
		logUnexpected("list contracts", err)
		return nil, err
	}
	return page, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.DB.WithContext(ctx).First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		logUnexpected("get contract", err)
		return nil, err
	}
	return &contract, nil
}

// CreateContractInput is the validated create payload.
type CreateContractInput struct {
	EnergyType    models.EnergyType
	QuantityMWh   decimal.Decimal
	PricePerMWh   decimal.Decimal
	DeliveryStart models.Date
	DeliveryEnd   models.Date
	Location      string
	Status        models.ContractStatus
}

func (in *CreateContractInput) validate() error {
	if !in.EnergyType.Valid() {
		return invalidf("unknown energy_type %q", string(in.EnergyType))
	}
	if !in.QuantityMWh.IsPositive() {
		return invalidf("quantity_mwh must be greater than zero")
	}
	if !in.PricePerMWh.IsPositive() {
		return invalidf("price_per_mwh must be greater than zero")
	}
	if in.DeliveryStart.IsZero() || in.DeliveryEnd.IsZero() {
		return invalidf("delivery_start and delivery_end are required")
	}
	if in.DeliveryEnd.Before(in.DeliveryStart.Time) {
		return invalidf("delivery_end must be on or after delivery_start")
	}
	if n := len(strings.TrimSpace(in.Location)); n < 2 || n > 80 {
		return invalidf("location must be 2-80 characters")
	}
	if in.Status == "" {
		in.Status = models.StatusAvailable
	} else if !in.Status.Valid() {
		return invalidf("unknown status %q", string(in.Status))
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateContractInput) (*models.Contract, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	contract := &models.Contract{
		EnergyType:    in.EnergyType,
		QuantityMWh:   in.QuantityMWh,
		PricePerMWh:   in.PricePerMWh,
		DeliveryStart: in.DeliveryStart,
		DeliveryEnd:   in.DeliveryEnd,
		Location:      strings.TrimSpace(in.Location),
		Status:        in.Status,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(contract).Error
	})
	if err != nil {
		logUnexpected("create contract", err)
		return nil, err
	}
	return contract, nil
}

// UpdateContractInput carries a partial update; nil fields are left unchanged.
type UpdateContractInput struct {
	EnergyType    *models.EnergyType
	QuantityMWh   *decimal.Decimal
	PricePerMWh   *decimal.Decimal
	DeliveryStart *models.Date
	DeliveryEnd   *models.Date
	Location      *string
	Status        *models.ContractStatus
}

func (in *UpdateContractInput) validate() error {
	if in.EnergyType != nil && !in.EnergyType.Valid() {
		return invalidf("unknown energy_type %q", string(*in.EnergyType))
	}
	if in.QuantityMWh != nil && !in.QuantityMWh.IsPositive() {
		return invalidf("quantity_mwh must be greater than zero")
	}
	if in.PricePerMWh != nil && !in.PricePerMWh.IsPositive() {
		return invalidf("price_per_mwh must be greater than zero")
	}
	if in.Location != nil {
		if n := len(strings.TrimSpace(*in.Location)); n < 2 || n > 80 {
			return invalidf("location must be 2-80 characters")
		}
	}
	if in.Status != nil && !in.Status.Valid() {
		return invalidf("unknown status %q", string(*in.Status))
	}
	return nil
}

// Update applies the supplied fields and re-checks the delivery window
// ordering against the merged result.
func (s *Service) Update(ctx context.Context, id uint, in UpdateContractInput) (*models.Contract, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var updated *models.Contract
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := tx.First(&contract, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContractNotFound
			}
			return err
		}
		if in.EnergyType != nil {
			contract.EnergyType = *in.EnergyType
		}
		if in.QuantityMWh != nil {
			contract.QuantityMWh = *in.QuantityMWh
		}
		if in.PricePerMWh != nil {
			contract.PricePerMWh = *in.PricePerMWh
		}
		if in.DeliveryStart != nil {
			contract.DeliveryStart = *in.DeliveryStart
		}
		if in.DeliveryEnd != nil {
			contract.DeliveryEnd = *in.DeliveryEnd
		}
		if in.Location != nil {
			contract.Location = strings.TrimSpace(*in.Location)
		}
		if in.Status != nil {
			contract.Status = *in.Status
		}
		if contract.DeliveryEnd.Before(contract.DeliveryStart.Time) {
			return invalidf("delivery_end must be on or after delivery_start")
		}
		if err := tx.Save(&contract).Error; err != nil {
			return err
		}
		updated = &contract
		return nil
	})
	if err != nil {
		logUnexpected("update contract", err)
		return nil, err
	}
	return updated, nil
}

// Delete removes a contract permanently; the schema cascades to any portfolio
// holdings referencing it.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Contract{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrContractNotFound
		}
		return nil
	})
	if err != nil {
		logUnexpected("delete contract", err)
		return err
	}
	return nil
}
