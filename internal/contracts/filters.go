package contracts

import (
	"strings"

	"wattmarket-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SortBy names the supported sort keys.
type SortBy string

const (
	SortByID            SortBy = "id"
	SortByPrice         SortBy = "price_per_mwh"
	SortByQuantity      SortBy = "quantity_mwh"
	SortByDeliveryStart SortBy = "delivery_start"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Column names are looked up here, never interpolated from user input.
var sortColumns = map[SortBy]string{
	SortByID:            "id",
	SortByPrice:         "price_per_mwh",
	SortByQuantity:      "quantity_mwh",
	SortByDeliveryStart: "delivery_start",
}

// Filters is the structured contract listing filter. All fields are optional
// and compose with logical AND.
type Filters struct {
	EnergyTypes       []models.EnergyType
	PriceMin          *decimal.Decimal
	PriceMax          *decimal.Decimal
	QuantityMin       *decimal.Decimal
	QuantityMax       *decimal.Decimal
	Location          string
	DeliveryStartFrom *models.Date
	DeliveryEndTo     *models.Date
	Status            *models.ContractStatus
	Search            string
	SortBy            SortBy
	SortDirection     SortDirection
}

// Validate rejects malformed filters before any query runs.
func (f *Filters) Validate() error {
	for _, et := range f.EnergyTypes {
		if !et.Valid() {
			return invalidf("unknown energy_type %q", string(et))
		}
	}
	if f.Status != nil && !f.Status.Valid() {
		return invalidf("unknown status %q", string(*f.Status))
	}
	if err := validateBound("price_min", f.PriceMin); err != nil {
		return err
	}
	if err := validateBound("price_max", f.PriceMax); err != nil {
		return err
	}
	if err := validateBound("quantity_min", f.QuantityMin); err != nil {
		return err
	}
	if err := validateBound("quantity_max", f.QuantityMax); err != nil {
		return err
	}
	if f.PriceMin != nil && f.PriceMax != nil && f.PriceMin.GreaterThan(*f.PriceMax) {
		return invalidf("price_min must not exceed price_max")
	}
	if f.QuantityMin != nil && f.QuantityMax != nil && f.QuantityMin.GreaterThan(*f.QuantityMax) {
		return invalidf("quantity_min must not exceed quantity_max")
	}
	if f.DeliveryStartFrom != nil && f.DeliveryEndTo != nil && f.DeliveryStartFrom.After(f.DeliveryEndTo.Time) {
		return invalidf("delivery_start_from must not be after delivery_end_to")
	}
	if f.Location != "" {
		if n := len(strings.TrimSpace(f.Location)); n < 2 || n > 80 {
			return invalidf("location filter must be 2-80 characters")
		}
	}
	if f.Search != "" {
		if n := len(strings.TrimSpace(f.Search)); n < 2 || n > 120 {
			return invalidf("search must be 2-120 characters")
		}
	}
	if f.SortBy != "" {
		if _, ok := sortColumns[f.SortBy]; !ok {
			return invalidf("unknown sort_by %q", string(f.SortBy))
		}
	}
	if f.SortDirection != "" && f.SortDirection != SortAsc && f.SortDirection != SortDesc {
		return invalidf("sort_direction must be asc or desc")
	}
	return nil
}

func validateBound(name string, v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return invalidf("%s must not be negative", name)
	}
	return nil
}

// apply builds the WHERE and ORDER BY chain. Call only after Validate.
func (f *Filters) apply(q *gorm.DB) *gorm.DB {
	if len(f.EnergyTypes) > 0 {
		q = q.Where("energy_type IN ?", f.EnergyTypes)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.PriceMin != nil {
		q = q.Where("price_per_mwh >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price_per_mwh <= ?", *f.PriceMax)
	}
	if f.QuantityMin != nil {
		q = q.Where("quantity_mwh >= ?", *f.QuantityMin)
	}
	if f.QuantityMax != nil {
		q = q.Where("quantity_mwh <= ?", *f.QuantityMax)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", substringPattern(f.Location))
	}
	// Window overlap, each bound applied independently when present.
	if f.DeliveryStartFrom != nil {
		q = q.Where("delivery_end >= ?", *f.DeliveryStartFrom)
	}
	if f.DeliveryEndTo != nil {
		q = q.Where("delivery_start <= ?", *f.DeliveryEndTo)
	}
	if f.Search != "" {
		term := substringPattern(f.Search)
		q = q.Where("LOWER(location) LIKE ? OR LOWER(energy_type) LIKE ? OR LOWER(status) LIKE ?", term, term, term)
	}

	column := sortColumns[f.SortBy]
	if column == "" {
		column = "id"
	}
	direction := "ASC"
	if f.SortDirection == SortDesc {
		direction = "DESC"
	}
	q = q.Order(column + " " + direction)
	// id tie-break keeps pagination deterministic when the sort key repeats
	if column != "id" {
		q = q.Order("id ASC")
	}
	return q
}

func substringPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
