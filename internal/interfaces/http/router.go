package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Analitica-api/internal/application/analytics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	POSPredictions   *appanalytics.POSPredictionUseCase
	POSDashboard     *appanalytics.POSDashboardUseCase
	SalesPredictions *appanalytics.SalesPredictionUseCase
	SalesDashboard   *appanalytics.SalesDashboardUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Todos los endpoints de analítica
// aceptan GET y POST (el POST admite los parámetros en el body JSON) y
// requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	analytics := api.Group("/analytics", AuthMiddleware(deps.JWTSecret))

	pos := analytics.Group("/pos")
	posHandler := NewPOSHandler(deps.POSPredictions, deps.POSDashboard)
	pos.Get("/predictions", posHandler.GetPredictions)
	pos.Post("/predictions", posHandler.GetPredictions)
	pos.Get("/dashboard", posHandler.GetDashboard)
	pos.Post("/dashboard", posHandler.GetDashboard)

	sales := analytics.Group("/sales-invoices")
	salesHandler := NewSalesHandler(deps.SalesPredictions, deps.SalesDashboard)
	sales.Get("/predictions", salesHandler.GetPredictions)
	sales.Post("/predictions", salesHandler.GetPredictions)
	sales.Get("/dashboard", salesHandler.GetDashboard)
	sales.Post("/dashboard", salesHandler.GetDashboard)
}
