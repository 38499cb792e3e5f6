package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/message"

	appanalytics "github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/pkg/i18n"
)

// POSHandler maneja los endpoints de analítica POS.
type POSHandler struct {
	predictions *appanalytics.POSPredictionUseCase
	dashboard   *appanalytics.POSDashboardUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(predictions *appanalytics.POSPredictionUseCase, dashboard *appanalytics.POSDashboardUseCase) *POSHandler {
	return &POSHandler{predictions: predictions, dashboard: dashboard}
}

// GetPredictions devuelve las seis predicciones POS del período.
// GET|POST /api/analytics/pos/predictions
//
// Parámetros: company (obligatorio), pos_profiles, date_from, date_to,
// prediction_days. GET los toma del query string; POST también acepta un
// body JSON con los mismos nombres.
func (h *POSHandler) GetPredictions(c *fiber.Ctx) error {
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

// GetDashboard devuelve el resumen de KPIs POS del período (30 días por
// defecto).
// GET|POST /api/analytics/pos/dashboard
func (h *POSHandler) GetDashboard(c *fiber.Ctx) error {
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

// parseRequest llena la petición desde el query string y, si allí no venía
// company, reintenta con el body JSON. Un body malformado no es error:
// degrada a defaults, igual que el sistema origen.
func parseRequest(c *fiber.Ctx) dto.AnalyticsRequest {
	var req dto.AnalyticsRequest
	_ = c.QueryParser(&req)
	if strings.TrimSpace(req.Company) == "" && len(c.Body()) > 0 {
		_ = c.BodyParser(&req)
	}
	return req
}

// requestPrinter resuelve el idioma de los mensajes desde Accept-Language.
func requestPrinter(c *fiber.Ctx) *message.Printer {
	return i18n.Printer(c.Get(fiber.HeaderAcceptLanguage))
}

// respondError mapea los errores de dominio a 400 con mensaje localizado;
// cualquier otro error es un 500.
func respondError(c *fiber.Ctx, pr *message.Printer, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingCompany):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_PARAMETER", Message: pr.Sprintf(i18n.CompanyRequired),
		})
	case errors.Is(err, domain.ErrNoActiveProfiles):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "NO_ACTIVE_PROFILES", Message: pr.Sprintf(i18n.NoActiveProfiles),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
