package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/analytics"
	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain/forecast"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

type fakeSalesRepo struct {
	daily     []repository.DailyRevenueRow
	demand    []repository.SalesItemDemandRow
	profit    []repository.ProfitDailyRow
	costs     []repository.DailyCostRow
	customers []repository.SalesCustomerRow
	best      []repository.BestsellerRow
	payments  []repository.PaymentDailyRow
	aging     []repository.AgingBucketRow
	summary   repository.SalesSummaryRow

	lastFilter repository.SalesFilter
}

func (f *fakeSalesRepo) DailyRevenue(_ context.Context, filter repository.SalesFilter) ([]repository.DailyRevenueRow, error) {
	f.lastFilter = filter
	return f.daily, nil
}
func (f *fakeSalesRepo) ItemDemand(context.Context, repository.SalesFilter, int) ([]repository.SalesItemDemandRow, error) {
	return f.demand, nil
}
func (f *fakeSalesRepo) ProfitDaily(context.Context, repository.SalesFilter) ([]repository.ProfitDailyRow, error) {
	return f.profit, nil
}
func (f *fakeSalesRepo) DailyCosts(context.Context, repository.SalesFilter) ([]repository.DailyCostRow, error) {
	return f.costs, nil
}
func (f *fakeSalesRepo) CustomerActivity(context.Context, repository.SalesFilter) ([]repository.SalesCustomerRow, error) {
	return f.customers, nil
}
func (f *fakeSalesRepo) Bestsellers(context.Context, repository.SalesFilter, int) ([]repository.BestsellerRow, error) {
	return f.best, nil
}
func (f *fakeSalesRepo) PaymentDaily(context.Context, repository.SalesFilter) ([]repository.PaymentDailyRow, error) {
	return f.payments, nil
}
func (f *fakeSalesRepo) AgingBuckets(context.Context, repository.SalesFilter) ([]repository.AgingBucketRow, error) {
	return f.aging, nil
}
func (f *fakeSalesRepo) Summary(context.Context, repository.SalesFilter) (repository.SalesSummaryRow, error) {
	return f.summary, nil
}

func salesParams(days int) dto.Params {
	return dto.Params{
		Company:        "ACME",
		From:           day(1),
		To:             day(days),
		PredictionDays: 30,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Envelope y filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_EnvelopeConFiltros(t *testing.T) {
	repo := &fakeSalesRepo{}
	uc := analytics.NewSalesPredictionUseCase(repo)

	p := salesParams(30)
	p.CustomerGroup = "Mayoristas"
	p.Territory = "Bogotá"
	out, err := uc.GetPredictions(context.Background(), p, english)
	require.NoError(t, err)

	assert.Equal(t, "ACME", out.Company)
	assert.Equal(t, "Mayoristas", out.Filters.CustomerGroup)
	assert.Equal(t, "Bogotá", out.Filters.Territory)
	assert.Equal(t, "Mayoristas", repo.lastFilter.CustomerGroup)
	assert.Equal(t, "Bogotá", repo.lastFilter.Territory)
	assert.Equal(t, "30 days ahead", out.PredictionPeriod)

	// Sin datos en la fuente todos los tópicos responden no_data.
	assert.Equal(t, dto.StatusNoData, out.Sales.Status)
	assert.Equal(t, dto.StatusNoData, out.ProductDemand.Status)
	assert.Equal(t, dto.StatusNoData, out.Profit.Status)
	assert.Equal(t, dto.StatusNoData, out.Customers.Status)
	assert.Equal(t, dto.StatusNoData, out.Bestsellers.Status)
	assert.Equal(t, dto.StatusNoData, out.Payment.Status)
	assert.Equal(t, "No payment data for this period.", out.Payment.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingresos
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_IngresosConSaldoYCobranza(t *testing.T) {
	repo := &fakeSalesRepo{
		daily: []repository.DailyRevenueRow{
			{Date: day(1), Total: decimal.NewFromInt(100), Outstanding: decimal.NewFromInt(10), Invoices: 2},
			{Date: day(2), Total: decimal.NewFromInt(100), Outstanding: decimal.NewFromInt(10), Invoices: 4},
		},
	}
	uc := analytics.NewSalesPredictionUseCase(repo)

	out, err := uc.GetPredictions(context.Background(), salesParams(2), english)
	require.NoError(t, err)

	m := out.Sales.SalesRevenueMetrics
	require.NotNil(t, m)
	assert.InDelta(t, 200, m.CurrentTotalSales, 1e-9)
	assert.Equal(t, 6, m.CurrentTotalInvoices)
	assert.InDelta(t, 33.33, m.CurrentAvgInvoiceValue, 0.01) // 200/6
	assert.InDelta(t, 20, m.TotalOutstanding, 1e-9)
	assert.InDelta(t, 90, m.CollectionRate, 1e-9) // (1 − 20/200) × 100
	assert.Equal(t, 90, m.PredictedInvoiceCount)  // 3 facturas/día × 30
	assert.Equal(t, forecast.TrendFlat, m.Trend)
	assert.Equal(t, 2, m.DataPoints)
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilidad con fallback del 65%
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_UtilidadConFallbackDelSesentaYCinco(t *testing.T) {
	repo := &fakeSalesRepo{
		profit: []repository.ProfitDailyRow{
			{Date: day(1), Revenue: decimal.NewFromInt(100), Taxes: decimal.NewFromInt(19), Discount: decimal.NewFromInt(5)},
			{Date: day(2), Revenue: decimal.NewFromInt(100)},
		},
		costs: []repository.DailyCostRow{
			// Solo el día 1 tiene costo estimado en SQL; el día 2 cae al 65%.
			{Date: day(1), EstimatedCost: decimal.NewFromInt(40)},
		},
	}
	uc := analytics.NewSalesPredictionUseCase(repo)

	out, err := uc.GetPredictions(context.Background(), salesParams(2), english)
	require.NoError(t, err)

	m := out.Profit.SalesProfitMetrics
	require.NotNil(t, m)
	assert.InDelta(t, 200, m.CurrentTotalRevenue, 1e-9)
	assert.InDelta(t, 105, m.CurrentTotalCost, 1e-9) // 40 + 100×0.65
	assert.InDelta(t, 95, m.CurrentTotalProfit, 1e-9)
	assert.InDelta(t, 47.5, m.CurrentProfitMargin, 1e-9)
	assert.InDelta(t, 19, m.CurrentTotalTaxes, 1e-9)
	assert.InDelta(t, 5, m.CurrentTotalDiscount, 1e-9)
	assert.Equal(t, m.CurrentProfitMargin, m.PredictedProfitMargin)
	assert.Equal(t, "Cost is estimated from the item valuation rate; lines without one assume 65% of the selling price.", m.Note)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes con score de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_ClientesConScoreDePago(t *testing.T) {
	repo := &fakeSalesRepo{
		customers: []repository.SalesCustomerRow{
			{
				Customer: "C1", CustomerName: "Puntual", CustomerGroup: "Retail", Territory: "Norte",
				Invoices: 6, TotalSpent: decimal.NewFromInt(1000), Outstanding: decimal.NewFromInt(100),
				AvgInvoice: decimal.RequireFromString("166.67"),
			},
			{
				Customer: "C2", CustomerName: "Moroso",
				Invoices: 2, TotalSpent: decimal.NewFromInt(500), Outstanding: decimal.NewFromInt(500),
			},
		},
	}
	uc := analytics.NewSalesPredictionUseCase(repo)

	out, err := uc.GetPredictions(context.Background(), salesParams(30), english)
	require.NoError(t, err)

	m := out.Customers.CustomerAnalysisMetrics
	require.NotNil(t, m)
	assert.Equal(t, 2, m.CurrentTotalCustomers)
	assert.Equal(t, 2, m.RepeatCustomers)
	assert.Equal(t, 1, m.LoyalCustomers)
	assert.InDelta(t, 100, m.RetentionRate, 1e-9)
	// (1500 − 600) / 1500 × 100.
	assert.InDelta(t, 60, m.CollectionEfficiency, 1e-9)

	require.Len(t, m.TopCustomers, 2)
	assert.InDelta(t, 90, m.TopCustomers[0].PaymentScore, 1e-9)
	assert.Equal(t, forecast.CustomerLoyal, m.TopCustomers[0].CustomerType)
	assert.InDelta(t, 0, m.TopCustomers[1].PaymentScore, 1e-9)
	assert.Equal(t, "Retail", m.TopCustomers[0].CustomerGroup)
	assert.Equal(t, "Norte", m.TopCustomers[0].Territory)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobranza
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_CobranzaReplicaLaTasaHistorica(t *testing.T) {
	repo := &fakeSalesRepo{
		payments: []repository.PaymentDailyRow{
			{Date: day(1), Invoiced: decimal.NewFromInt(100), Outstanding: decimal.NewFromInt(20)},
			{Date: day(2), Invoiced: decimal.NewFromInt(100), Outstanding: decimal.NewFromInt(20)},
		},
		aging: []repository.AgingBucketRow{
			{Bucket: "Not Due", Invoices: 3, Outstanding: decimal.NewFromInt(25)},
			{Bucket: "1-30 Days", Invoices: 1, Outstanding: decimal.NewFromInt(15)},
		},
	}
	uc := analytics.NewSalesPredictionUseCase(repo)

	out, err := uc.GetPredictions(context.Background(), salesParams(2), english)
	require.NoError(t, err)

	m := out.Payment.PaymentPredictionMetrics
	require.NotNil(t, m)
	assert.InDelta(t, 200, m.CurrentTotalInvoiced, 1e-9)
	assert.InDelta(t, 160, m.CurrentTotalCollected, 1e-9)
	assert.InDelta(t, 40, m.CurrentTotalOutstanding, 1e-9)
	assert.InDelta(t, 80, m.CurrentCollectionRate, 1e-9)

	// La tasa prevista es la histórica, sin ajuste.
	assert.Equal(t, m.CurrentCollectionRate, m.PredictedCollectionRate)
	assert.InDelta(t, 3000, m.PredictedInvoiced, 1e-9)   // 100/día × 30
	assert.InDelta(t, 2400, m.PredictedCollection, 1e-9) // 80/día × 30
	assert.InDelta(t, 600, m.PredictedOutstanding, 1e-9)

	// El aging pasa tal cual, bucket por bucket.
	require.Len(t, m.AgingAnalysis, 2)
	assert.Equal(t, "Not Due", m.AgingAnalysis[0].Bucket)
	assert.Equal(t, 3, m.AgingAnalysis[0].InvoiceCount)
	assert.InDelta(t, 25, m.AgingAnalysis[0].Outstanding, 1e-9)
	assert.Equal(t, "1-30 Days", m.AgingAnalysis[1].Bucket)
}

// ──────────────────────────────────────────────────────────────────────────────
// Más vendidos (sin categorías en esta familia)
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_BestsellersSinCategorias(t *testing.T) {
	repo := &fakeSalesRepo{
		best: []repository.BestsellerRow{
			{ItemCode: "A", ItemGroup: "Bebidas", TotalQty: decimal.NewFromInt(60), TotalAmount: decimal.NewFromInt(600), Transactions: 6, UniqueCustomers: 10},
		},
	}
	uc := analytics.NewSalesPredictionUseCase(repo)

	out, err := uc.GetPredictions(context.Background(), salesParams(30), english)
	require.NoError(t, err)

	m := out.Bestsellers.SalesBestsellerMetrics
	require.NotNil(t, m)
	require.Len(t, m.AllBestsellers, 1)
	assert.Equal(t, 1, m.AllBestsellers[0].Rank)
	assert.Equal(t, 6, m.AllBestsellers[0].InvoiceFrequency)
	assert.InDelta(t, 2, m.AllBestsellers[0].PopularityScore, 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Demanda
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_DemandaFacturada(t *testing.T) {
	repo := &fakeSalesRepo{
		demand: []repository.SalesItemDemandRow{
			{
				ItemCode: "CEM-01", ItemName: "Cemento", ItemGroup: "Construcción",
				TotalQty: decimal.NewFromInt(300), Invoices: 15,
				TotalAmount: decimal.NewFromInt(9000),
				AvgQty:      decimal.NewFromInt(20), AvgRate: decimal.NewFromInt(30),
			},
		},
	}
	uc := analytics.NewSalesPredictionUseCase(repo)

	out, err := uc.GetPredictions(context.Background(), salesParams(30), english)
	require.NoError(t, err)

	m := out.ProductDemand.SalesDemandMetrics
	require.NotNil(t, m)
	require.Len(t, m.TopProducts, 1)
	p := m.TopProducts[0]
	assert.Equal(t, "Construcción", p.ItemGroup)
	assert.InDelta(t, 10, p.DailyAverageDemand, 1e-9)
	assert.InDelta(t, 300, p.PredictedDemand, 1e-9)
	assert.Equal(t, 15, p.InvoiceFrequency)
	assert.InDelta(t, 30, p.AvgRate, 1e-9)
	assert.InDelta(t, 9000, p.TotalRevenue, 1e-9)
	assert.Equal(t, 1, m.TotalProductsAnalyzed)
}
