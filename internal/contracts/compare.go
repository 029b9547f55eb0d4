package contracts

import (
	"context"

	"wattmarket-backend/internal/models"

	"github.com/shopspring/decimal"
)

const (
	MinCompareIDs = 2
	MaxCompareIDs = 3
)

// RangeMetric is min/max/spread over a decimal attribute.
type RangeMetric struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Spread decimal.Decimal `json:"spread"`
}

// IntRangeMetric is min/max/spread over an integer attribute.
type IntRangeMetric struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Spread int `json:"spread"`
}

// ComparedContract is a contract plus its computed delivery duration.
type ComparedContract struct {
	models.Contract
	DurationDays int `json:"duration_days"`
}

// ComparisonMetrics are the cross-contract range statistics.
type ComparisonMetrics struct {
	PricePerMWh  RangeMetric    `json:"price_per_mwh"`
	QuantityMWh  RangeMetric    `json:"quantity_mwh"`
	DurationDays IntRangeMetric `json:"duration_days"`
}

// Comparison is the compare response: contracts in request order plus the
// three metric blocks.
type Comparison struct {
	Contracts []ComparedContract `json:"contracts"`
	Metrics   ComparisonMetrics  `json:"metrics"`
}

// Compare computes range statistics across 2-3 contracts. Duplicate ids are
// rejected before resolution; unresolved ids are reported all at once, in
// request order. Read-only.
func (s *Service) Compare(ctx context.Context, ids []uint) (*Comparison, error) {
	if len(ids) < MinCompareIDs || len(ids) > MaxCompareIDs {
		return nil, invalidf("between %d and %d contract ids required", MinCompareIDs, MaxCompareIDs)
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateCompareIDs
		}
		seen[id] = struct{}{}
	}

	var found []models.Contract
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		logUnexpected("compare contracts", err)
		return nil, err
	}
	byID := make(map[uint]models.Contract, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingContractsError{IDs: missing}
	}

	compared := make([]ComparedContract, 0, len(ids))
	prices := make([]decimal.Decimal, 0, len(ids))
	quantities := make([]decimal.Decimal, 0, len(ids))
	durations := make([]int, 0, len(ids))
	for _, id := range ids {
		contract := byID[id]
		days := contract.DurationDays()
		compared = append(compared, ComparedContract{Contract: contract, DurationDays: days})
		prices = append(prices, contract.PricePerMWh)
		quantities = append(quantities, contract.QuantityMWh)
		durations = append(durations, days)
	}

	return &Comparison{
		Contracts: compared,
		Metrics: ComparisonMetrics{
			PricePerMWh:  decimalRange(prices),
			QuantityMWh:  decimalRange(quantities),
			DurationDays: intRange(durations),
		},
	}, nil
}

func decimalRange(values []decimal.Decimal) RangeMetric {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	return RangeMetric{Min: min, Max: max, Spread: max.Sub(min)}
}

func intRange(values []int) IntRangeMetric {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return IntRangeMetric{Min: min, Max: max, Spread: max - min}
}
