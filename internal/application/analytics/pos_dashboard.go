package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/forecast"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

// POSDashboardUseCase arma el resumen de KPIs del período para POS.
type POSDashboardUseCase struct {
	repo     repository.POSAnalyticsRepository
	profiles repository.ProfileRepository
}

// NewPOSDashboardUseCase construye el caso de uso.
func NewPOSDashboardUseCase(repo repository.POSAnalyticsRepository, profiles repository.ProfileRepository) *POSDashboardUseCase {
	return &POSDashboardUseCase{repo: repo, profiles: profiles}
}

// GetDashboard resuelve los profiles y devuelve el agregado del período.
// Un período sin facturas devuelve el summary en ceros, no un error.
func (uc *POSDashboardUseCase) GetDashboard(ctx context.Context, p dto.Params) (*dto.POSDashboardDTO, error) {
	profiles := p.Profiles
	if len(profiles) == 0 {
		var err error
		profiles, err = uc.profiles.ActiveProfiles(ctx, p.Company, dto.DefaultProfileLimit)
		if err != nil {
			return nil, fmt.Errorf("dashboard pos: profiles: %w", err)
		}
		if len(profiles) == 0 {
			return nil, domain.ErrNoActiveProfiles
		}
	}

	summary, err := uc.repo.Summary(ctx, repository.POSFilter{
		Company:  p.Company,
		Profiles: profiles,
		From:     p.From,
		To:       p.To,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard pos: summary: %w", err)
	}

	return &dto.POSDashboardDTO{
		Company:     p.Company,
		POSProfiles: profiles,
		DateRange:   p.DateRange(),
		Summary: dto.POSSummaryDTO{
			TotalInvoices:       summary.TotalInvoices,
			TotalSales:          forecast.Round2(summary.TotalSales.InexactFloat64()),
			UniqueCustomers:     summary.UniqueCustomers,
			AvgTransactionValue: forecast.Round2(summary.AvgTransaction.InexactFloat64()),
		},
	}, nil
}
