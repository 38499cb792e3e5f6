package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
)

func TestProjectLegacy_ClavesPlanasIdenticasALasAnidadas(t *testing.T) {
	m := &dto.ProfitPredictionMetrics{
		Historical:   dto.ProfitFigures{Revenue: 1000, Cost: 600, Profit: 400, MarginPct: 40},
		DailyAverage: dto.ProfitDailyAverageDTO{Revenue: 100, Cost: 60, Profit: 40, MarginPerDay: 40},
		Prediction:   dto.ProfitFigures{Revenue: 3000, Cost: 1800, Profit: 1200, MarginPct: 40},
	}
	m.ProjectLegacy()

	assert.Equal(t, m.Historical.Revenue, m.CurrentTotalRevenue)
	assert.Equal(t, m.Historical.Cost, m.CurrentTotalCost)
	assert.Equal(t, m.Historical.Profit, m.CurrentTotalProfit)
	assert.Equal(t, m.Historical.MarginPct, m.CurrentProfitMargin)
	assert.Equal(t, m.DailyAverage.Profit, m.AvgDailyProfit)
	assert.Equal(t, m.Prediction.Revenue, m.PredictedTotalRevenue)
	assert.Equal(t, m.Prediction.Cost, m.PredictedTotalCost)
	assert.Equal(t, m.Prediction.Profit, m.PredictedTotalProfit)
	assert.Equal(t, m.Prediction.MarginPct, m.PredictedProfitMargin)
}

func TestTopicoNoData_OmiteLasMetricas(t *testing.T) {
	block := dto.SalesPredictionDTO{Status: dto.StatusNoData, Message: "sin datos"}

	raw, err := json.Marshal(block)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "no_data", decoded["status"])
	assert.Equal(t, "sin datos", decoded["message"])
	assert.NotContains(t, decoded, "predicted_total_sales")
	assert.NotContains(t, decoded, "trend")
}

func TestTopicoSuccess_AplanaLasMetricasEnElMismoObjeto(t *testing.T) {
	block := dto.SalesPredictionDTO{
		Status: dto.StatusSuccess,
		SalesPredictionMetrics: &dto.SalesPredictionMetrics{
			CurrentAvgDailySales: 120,
			PredictedDailySales:  180,
			PredictedTotalSales:  5400,
			Trend:                "up",
			Confidence:           "low",
			DataPoints:           3,
		},
	}

	raw, err := json.Marshal(block)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.NotContains(t, decoded, "message")
	assert.Equal(t, 5400.0, decoded["predicted_total_sales"])
	assert.Equal(t, "up", decoded["trend"])
	assert.Equal(t, 3.0, decoded["historical_data_points"])
}
