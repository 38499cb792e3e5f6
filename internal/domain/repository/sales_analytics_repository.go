package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesFilter delimita las consultas de la familia Sales Invoice: company,
// filtros opcionales de grupo de clientes y territorio, y rango de fechas de
// posteo inclusive. Solo docstatus = 1.
type SalesFilter struct {
	Company       string
	CustomerGroup string
	Territory     string
	From          time.Time
	To            time.Time
}

// DailyRevenueRow ingresos facturados de un día con su saldo pendiente.
type DailyRevenueRow struct {
	Date        time.Time
	Total       decimal.Decimal
	BaseTotal   decimal.Decimal
	Outstanding decimal.Decimal
	Invoices    int
	AvgInvoice  decimal.Decimal
}

// SalesItemDemandRow demanda de un ítem facturado.
type SalesItemDemandRow struct {
	ItemCode    string
	ItemName    string
	ItemGroup   string
	TotalQty    decimal.Decimal
	StockQty    decimal.Decimal
	Invoices    int
	TotalAmount decimal.Decimal
	AvgQty      decimal.Decimal
	AvgRate     decimal.Decimal
}

// DailyCostRow costo estimado de las líneas de un día, resuelto en SQL con
// los fallbacks del maestro de ítems (valuation_rate, last_purchase_rate).
type DailyCostRow struct {
	Date          time.Time
	LineAmount    decimal.Decimal
	EstimatedCost decimal.Decimal
}

// SalesCustomerRow rollup de un cliente facturado.
type SalesCustomerRow struct {
	Customer      string
	CustomerName  string
	CustomerGroup string
	Territory     string
	Invoices      int
	TotalSpent    decimal.Decimal
	Outstanding   decimal.Decimal
	AvgInvoice    decimal.Decimal
	FirstInvoice  time.Time
	LastInvoice   time.Time
	ActiveDays    int
}

// PaymentDailyRow facturación y cobro de un día.
type PaymentDailyRow struct {
	Date        time.Time
	Invoiced    decimal.Decimal
	Outstanding decimal.Decimal
	Paid        decimal.Decimal
	Invoices    int
}

// AgingBucketRow saldo pendiente clasificado por días de vencimiento.
type AgingBucketRow struct {
	Bucket      string // "Not Due", "1-30 Days", "31-60 Days", "61-90 Days", "Over 90 Days"
	Invoices    int
	Outstanding decimal.Decimal
}

// SalesSummaryRow agregado de un solo renglón para el dashboard.
type SalesSummaryRow struct {
	TotalInvoices    int
	TotalSales       decimal.Decimal
	TotalOutstanding decimal.Decimal
	UniqueCustomers  int
	AvgInvoice       decimal.Decimal
}

// SalesAnalyticsRepository consultas de solo lectura sobre Sales Invoices.
type SalesAnalyticsRepository interface {
	// DailyRevenue ingresos, saldo y conteo de facturas por día.
	DailyRevenue(ctx context.Context, f SalesFilter) ([]DailyRevenueRow, error)

	// ItemDemand ítems facturados por cantidad descendente, hasta limit.
	ItemDemand(ctx context.Context, f SalesFilter, limit int) ([]SalesItemDemandRow, error)

	// ProfitDaily ingresos diarios con impuestos y descuentos.
	ProfitDaily(ctx context.Context, f SalesFilter) ([]ProfitDailyRow, error)

	// DailyCosts costo estimado por día vía maestro de ítems.
	DailyCosts(ctx context.Context, f SalesFilter) ([]DailyCostRow, error)

	// CustomerActivity rollup por cliente, descendente por total gastado.
	CustomerActivity(ctx context.Context, f SalesFilter) ([]SalesCustomerRow, error)

	// Bestsellers ítems con métricas de popularidad, hasta limit.
	Bestsellers(ctx context.Context, f SalesFilter, limit int) ([]BestsellerRow, error)

	// PaymentDaily facturado/cobrado/pendiente por día.
	PaymentDaily(ctx context.Context, f SalesFilter) ([]PaymentDailyRow, error)

	// AgingBuckets clasifica el saldo de las facturas impagas por
	// (hoy − due_date) en {Not Due, 1-30, 31-60, 61-90, Over 90}. Ignora el
	// rango de fechas del filtro: el aging es una foto del presente.
	AgingBuckets(ctx context.Context, f SalesFilter) ([]AgingBucketRow, error)

	// Summary agregado único para el dashboard de Sales Invoices.
	Summary(ctx context.Context, f SalesFilter) (SalesSummaryRow, error)
}
