package portfolios

import (
	"context"

	"wattmarket-backend/internal/models"

	"github.com/shopspring/decimal"
)

// MetricTotals are the aggregate financials over a set of held contracts.
// total_cost is a monetary total (quantity x price summed), not a per-unit
// price; the weighted average divides it back out by capacity.
type MetricTotals struct {
	TotalContracts         int             `json:"total_contracts"`
	TotalCapacityMWh       decimal.Decimal `json:"total_capacity_mwh"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	WeightedAvgPricePerMWh decimal.Decimal `json:"weighted_avg_price_per_mwh"`
}

// EnergyBreakdown is MetricTotals for a single energy type.
type EnergyBreakdown struct {
	EnergyType models.EnergyType `json:"energy_type"`
	MetricTotals
}

// Metrics is the full portfolio summary: overall totals plus one breakdown
// row per energy type present, in canonical enum order.
type Metrics struct {
	MetricTotals
	BreakdownByEnergyType []EnergyBreakdown `json:"breakdown_by_energy_type"`
}

// GetMetrics computes the financial summary for the user's held contracts,
// lazily creating the portfolio when absent. All arithmetic is exact decimal.
func (s *Service) GetMetrics(ctx context.Context, userID int64) (*Metrics, error) {
	if _, err := s.EnsurePortfolio(ctx, userID); err != nil {
		return nil, err
	}
	holdings, err := s.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	held := make([]models.Contract, len(holdings))
	byType := make(map[models.EnergyType][]models.Contract)
	for i, h := range holdings {
		held[i] = h.Contract
		byType[h.Contract.EnergyType] = append(byType[h.Contract.EnergyType], h.Contract)
	}

	breakdown := []EnergyBreakdown{}
	for _, energyType := range models.EnergyTypes {
		group, present := byType[energyType]
		if !present {
			continue
		}
		breakdown = append(breakdown, EnergyBreakdown{
			EnergyType:   energyType,
			MetricTotals: foldTotals(group),
		})
	}

	return &Metrics{
		MetricTotals:          foldTotals(held),
		BreakdownByEnergyType: breakdown,
	}, nil
}

// foldTotals sums capacity and cost with decimal arithmetic. An empty set
// yields all zeros; the weighted average is zero when there is no capacity.
func foldTotals(contracts []models.Contract) MetricTotals {
	totals := MetricTotals{
		TotalCapacityMWh:       decimal.Zero,
		TotalCost:              decimal.Zero,
		WeightedAvgPricePerMWh: decimal.Zero,
	}
	for _, c := range contracts {
		totals.TotalContracts++
		totals.TotalCapacityMWh = totals.TotalCapacityMWh.Add(c.QuantityMWh)
		totals.TotalCost = totals.TotalCost.Add(c.QuantityMWh.Mul(c.PricePerMWh))
	}
	if totals.TotalCapacityMWh.IsPositive() {
		totals.WeightedAvgPricePerMWh = totals.TotalCost.Div(totals.TotalCapacityMWh)
	}
	return totals
}
