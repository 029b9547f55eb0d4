package portfolios

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"wattmarket-backend/internal/models"
	"wattmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPortfoliosApp(t *testing.T) (*fiber.App, *Service) {
	svc := setupPortfoliosTest(t)
	h := &Handlers{Service: svc}
	app := fiber.New()
	group := app.Group("/api/v1/portfolios")
	group.Get("/:user_id", h.GetPortfolio)
	group.Get("/:user_id/metrics", h.GetMetrics)
	group.Post("/:user_id/contracts/:contract_id", h.AddContract)
	group.Delete("/:user_id/contracts/:contract_id", h.RemoveContract)
	return app, svc
}

func decodeData(t *testing.T, resp io.Reader, out interface{}) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp).Decode(&envelope))
	require.Equal(t, "success", envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, resp io.Reader) response.ErrorDetail {
	t.Helper()
	var envelope response.ErrorBody
	require.NoError(t, json.NewDecoder(resp).Decode(&envelope))
	require.Equal(t, "error", envelope.Status)
	return envelope.Error
}

func TestAddContractEndpoint(t *testing.T) {
	app, svc := setupPortfoliosApp(t)
	contract := seedContract(t, svc.DB)

	req := httptest.NewRequest("POST", "/api/v1/portfolios/10/contracts/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var holding models.PortfolioHolding
	decodeData(t, resp.Body, &holding)
	assert.Equal(t, contract.ID, holding.ContractID)
	assert.Equal(t, models.EnergySolar, holding.Contract.EnergyType)
}

func TestAddContractEndpointMissingContract(t *testing.T) {
	app, _ := setupPortfoliosApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/portfolios/99/contracts/99999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	detail := decodeError(t, resp.Body)
	assert.Equal(t, "Contract not found", detail.Message)
}

func TestGetPortfolioEndpoint(t *testing.T) {
	app, svc := setupPortfoliosApp(t)
	seedContract(t, svc.DB, func(c *models.Contract) { c.Location = "Utah" })

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/portfolios/12/contracts/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/portfolios/12", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view PortfolioView
	decodeData(t, resp.Body, &view)
	assert.Equal(t, int64(12), view.UserID)
	require.Len(t, view.Holdings, 1)
	assert.Equal(t, "Utah", view.Holdings[0].Contract.Location)
}

func TestGetPortfolioEndpointBadUserID(t *testing.T) {
	app, _ := setupPortfoliosApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/portfolios/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRemoveContractEndpoint(t *testing.T) {
	app, svc := setupPortfoliosApp(t)
	seedContract(t, svc.DB)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/portfolios/3/contracts/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/portfolios/3/contracts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/portfolios/3/contracts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	detail := decodeError(t, resp.Body)
	assert.Equal(t, "Portfolio holding not found", detail.Message)
}

func TestMetricsEndpoint(t *testing.T) {
	app, svc := setupPortfoliosApp(t)
	seedContract(t, svc.DB, func(c *models.Contract) {
		c.EnergyType = models.EnergyWind
		c.QuantityMWh = decimal.RequireFromString("200.000")
		c.PricePerMWh = decimal.RequireFromString("30.000000")
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/portfolios/20/contracts/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/portfolios/20/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var metrics Metrics
	decodeData(t, resp.Body, &metrics)
	assert.Equal(t, 1, metrics.TotalContracts)
	assert.True(t, metrics.TotalCost.Equal(decimal.RequireFromString("6000.000000")))
	require.Len(t, metrics.BreakdownByEnergyType, 1)
	assert.Equal(t, models.EnergyWind, metrics.BreakdownByEnergyType[0].EnergyType)
}
