package portfolios

import (
	"context"
	"testing"

	"wattmarket-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEmptyPortfolio(t *testing.T) {
	svc := setupPortfoliosTest(t)

	metrics, err := svc.GetMetrics(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.TotalContracts)
	assert.True(t, metrics.TotalCapacityMWh.IsZero())
	assert.True(t, metrics.TotalCost.IsZero())
	assert.True(t, metrics.WeightedAvgPricePerMWh.IsZero())
	assert.Empty(t, metrics.BreakdownByEnergyType)

	// the metrics call itself lazily created the portfolio
	var count int64
	require.NoError(t, svc.DB.Model(&models.Portfolio{}).Where("user_id = ?", 20).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMetricsSingleHolding(t *testing.T) {
	svc := setupPortfoliosTest(t)
	contract := seedContract(t, svc.DB, func(c *models.Contract) {
		c.EnergyType = models.EnergyWind
		c.QuantityMWh = decimal.RequireFromString("200.000")
		c.PricePerMWh = decimal.RequireFromString("30.000000")
	})
	_, err := svc.AddContract(context.Background(), 20, contract.ID)
	require.NoError(t, err)

	metrics, err := svc.GetMetrics(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.TotalContracts)
	assert.True(t, metrics.TotalCapacityMWh.Equal(decimal.RequireFromString("200.000")), "capacity=%s", metrics.TotalCapacityMWh)
	assert.True(t, metrics.TotalCost.Equal(decimal.RequireFromString("6000.000000")), "cost=%s", metrics.TotalCost)
	assert.True(t, metrics.WeightedAvgPricePerMWh.Equal(decimal.RequireFromString("30.000000")), "avg=%s", metrics.WeightedAvgPricePerMWh)

	require.Len(t, metrics.BreakdownByEnergyType, 1)
	row := metrics.BreakdownByEnergyType[0]
	assert.Equal(t, models.EnergyWind, row.EnergyType)
	assert.Equal(t, 1, row.TotalContracts)
	assert.True(t, row.WeightedAvgPricePerMWh.Equal(decimal.RequireFromString("30")))
}

func TestMetricsWeightedAverageAcrossHoldings(t *testing.T) {
	svc := setupPortfoliosTest(t)
	cheap := seedContract(t, svc.DB, func(c *models.Contract) {
		c.QuantityMWh = decimal.RequireFromString("100.000")
		c.PricePerMWh = decimal.RequireFromString("20.000000")
	})
	costly := seedContract(t, svc.DB, func(c *models.Contract) {
		c.QuantityMWh = decimal.RequireFromString("300.000")
		c.PricePerMWh = decimal.RequireFromString("40.000000")
	})
	for _, id := range []uint{cheap.ID, costly.ID} {
		_, err := svc.AddContract(context.Background(), 9, id)
		require.NoError(t, err)
	}

	metrics, err := svc.GetMetrics(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.TotalContracts)
	assert.True(t, metrics.TotalCapacityMWh.Equal(decimal.RequireFromString("400")))
	// 100*20 + 300*40 = 14000; weighted by capacity, not a simple mean
	assert.True(t, metrics.TotalCost.Equal(decimal.RequireFromString("14000")))
	assert.True(t, metrics.WeightedAvgPricePerMWh.Equal(decimal.RequireFromString("35")), "avg=%s", metrics.WeightedAvgPricePerMWh)
}

func TestMetricsBreakdownCanonicalOrder(t *testing.T) {
	svc := setupPortfoliosTest(t)
	// seeded out of canonical order on purpose
	coal := seedContract(t, svc.DB, func(c *models.Contract) { c.EnergyType = models.EnergyCoal })
	solar := seedContract(t, svc.DB, func(c *models.Contract) { c.EnergyType = models.EnergySolar })
	wind := seedContract(t, svc.DB, func(c *models.Contract) { c.EnergyType = models.EnergyWind })
	for _, id := range []uint{coal.ID, solar.ID, wind.ID} {
		_, err := svc.AddContract(context.Background(), 33, id)
		require.NoError(t, err)
	}

	metrics, err := svc.GetMetrics(context.Background(), 33)
	require.NoError(t, err)
	require.Len(t, metrics.BreakdownByEnergyType, 3)
	assert.Equal(t, models.EnergySolar, metrics.BreakdownByEnergyType[0].EnergyType)
	assert.Equal(t, models.EnergyWind, metrics.BreakdownByEnergyType[1].EnergyType)
	assert.Equal(t, models.EnergyCoal, metrics.BreakdownByEnergyType[2].EnergyType)
}

func TestMetricsReflectCascadedDeletes(t *testing.T) {
	svc := setupPortfoliosTest(t)
	contract := seedContract(t, svc.DB)
	_, err := svc.AddContract(context.Background(), 8, contract.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Delete(&models.Contract{}, contract.ID).Error)

	metrics, err := svc.GetMetrics(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.TotalContracts)
	assert.True(t, metrics.WeightedAvgPricePerMWh.IsZero())
}
