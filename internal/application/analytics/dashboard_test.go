package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

func TestPOSDashboard_ResumenDelPeriodo(t *testing.T) {
	repo := &fakePOSRepo{
		summary: repository.POSSummaryRow{
			TotalInvoices:   120,
			TotalSales:      decimal.RequireFromString("45000.507"),
			UniqueCustomers: 38,
			AvgTransaction:  decimal.RequireFromString("375.004"),
		},
	}
	uc := analytics.NewPOSDashboardUseCase(repo, &fakeProfileRepo{})

	out, err := uc.GetDashboard(context.Background(), testParams(30))
	require.NoError(t, err)

	assert.Equal(t, "ACME", out.Company)
	assert.Equal(t, []string{"POS1"}, out.POSProfiles)
	assert.Equal(t, 120, out.Summary.TotalInvoices)
	assert.InDelta(t, 45000.51, out.Summary.TotalSales, 1e-9)
	assert.Equal(t, 38, out.Summary.UniqueCustomers)
	assert.InDelta(t, 375.0, out.Summary.AvgTransactionValue, 1e-9)
}

func TestPOSDashboard_SinProfilesActivos(t *testing.T) {
	uc := analytics.NewPOSDashboardUseCase(&fakePOSRepo{}, &fakeProfileRepo{})

	p := testParams(30)
	p.Profiles = nil
	_, err := uc.GetDashboard(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrNoActiveProfiles)
}

func TestPOSDashboard_PeriodoVacioEsCeros(t *testing.T) {
	uc := analytics.NewPOSDashboardUseCase(&fakePOSRepo{}, &fakeProfileRepo{})

	out, err := uc.GetDashboard(context.Background(), testParams(30))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Summary.TotalInvoices)
	assert.Equal(t, 0.0, out.Summary.TotalSales)
}

func TestSalesDashboard_DerivaCobradoYTasa(t *testing.T) {
	repo := &fakeSalesRepo{
		summary: repository.SalesSummaryRow{
			TotalInvoices:    50,
			TotalSales:       decimal.NewFromInt(10000),
			TotalOutstanding: decimal.NewFromInt(2500),
			UniqueCustomers:  12,
			AvgInvoice:       decimal.NewFromInt(200),
		},
	}
	uc := analytics.NewSalesDashboardUseCase(repo)

	p := salesParams(30)
	p.CustomerGroup = "Retail"
	out, err := uc.GetDashboard(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "Retail", out.Filters.CustomerGroup)
	assert.InDelta(t, 7500, out.Summary.TotalCollected, 1e-9)
	assert.InDelta(t, 75, out.Summary.CollectionRate, 1e-9)
	assert.Equal(t, 12, out.Summary.UniqueCustomers)
}

func TestSalesDashboard_SinVentasNoDividePorCero(t *testing.T) {
	uc := analytics.NewSalesDashboardUseCase(&fakeSalesRepo{})

	out, err := uc.GetDashboard(context.Background(), salesParams(30))
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Summary.CollectionRate)
	assert.Equal(t, 0.0, out.Summary.TotalCollected)
}
