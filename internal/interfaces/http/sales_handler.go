package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/dto"
)

// SalesHandler maneja los endpoints de analítica de facturas de venta.
type SalesHandler struct {
	predictions *appanalytics.SalesPredictionUseCase
	dashboard   *appanalytics.SalesDashboardUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(predictions *appanalytics.SalesPredictionUseCase, dashboard *appanalytics.SalesDashboardUseCase) *SalesHandler {
	return &SalesHandler{predictions: predictions, dashboard: dashboard}
}

// GetPredictions devuelve las seis predicciones de facturas del período.
// GET|POST /api/analytics/sales-invoices/predictions
//
// Parámetros: company (obligatorio), customer_group, territory, date_from,
// date_to, prediction_days.
func (h *SalesHandler) GetPredictions(c *fiber.Ctx) error {
	pr := requestPrinter(c)

	params, err := parseRequest(c).Normalize(time.Now(), dto.PredictionHistoryDays)
	if err != nil {
		return respondError(c, pr, err)
	}

	out, err := h.predictions.GetPredictions(c.Context(), params, pr)
	if err != nil {
		return respondError(c, pr, err)
	}
	return c.JSON(out)
}

// GetDashboard devuelve el resumen de KPIs de facturación y cobranza.
// GET|POST /api/analytics/sales-invoices/dashboard
func (h *SalesHandler) GetDashboard(c *fiber.Ctx) error {
	pr := requestPrinter(c)

	params, err := parseRequest(c).Normalize(time.Now(), dto.DashboardHistoryDays)
	if err != nil {
		return respondError(c, pr, err)
	}

	out, err := h.dashboard.GetDashboard(c.Context(), params)
	if err != nil {
		return respondError(c, pr, err)
	}
	return c.JSON(out)
}
