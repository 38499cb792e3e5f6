package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain/forecast"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

// SalesDashboardUseCase arma el resumen de KPIs de facturas de venta,
// incluyendo el estado de cobranza del período.
type SalesDashboardUseCase struct {
	repo repository.SalesAnalyticsRepository
}

// NewSalesDashboardUseCase construye el caso de uso.
func NewSalesDashboardUseCase(repo repository.SalesAnalyticsRepository) *SalesDashboardUseCase {
	return &SalesDashboardUseCase{repo: repo}
}

// GetDashboard devuelve el agregado del período. Sin facturas el summary
// queda en ceros, no es un error.
func (uc *SalesDashboardUseCase) GetDashboard(ctx context.Context, p dto.Params) (*dto.SalesDashboardDTO, error) {
	summary, err := uc.repo.Summary(ctx, repository.SalesFilter{
		Company:       p.Company,
		CustomerGroup: p.CustomerGroup,
		Territory:     p.Territory,
		From:          p.From,
		To:            p.To,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard si: summary: %w", err)
	}

	totalSales := summary.TotalSales.InexactFloat64()
	totalOutstanding := summary.TotalOutstanding.InexactFloat64()
	var collectionRate float64
	if totalSales > 0 {
		collectionRate = (1 - totalOutstanding/totalSales) * 100
	}

	return &dto.SalesDashboardDTO{
		Company:   p.Company,
		Filters:   dto.SalesFiltersDTO{CustomerGroup: p.CustomerGroup, Territory: p.Territory},
		DateRange: p.DateRange(),
		Summary: dto.SalesSummaryDTO{
			TotalInvoices:    summary.TotalInvoices,
			TotalSales:       forecast.Round2(totalSales),
			TotalOutstanding: forecast.Round2(totalOutstanding),
			TotalCollected:   forecast.Round2(totalSales - totalOutstanding),
			CollectionRate:   forecast.Round2(collectionRate),
			UniqueCustomers:  summary.UniqueCustomers,
			AvgInvoiceValue:  forecast.Round2(summary.AvgInvoice.InexactFloat64()),
		},
	}, nil
}
