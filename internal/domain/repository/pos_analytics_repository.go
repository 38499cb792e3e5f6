package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// POSFilter delimita todas las consultas de la familia POS: company, lista de
// POS Profiles resuelta y rango de fechas de posteo (inclusive en ambos
// extremos). Solo se agregan documentos con docstatus = 1 (submitted).
type POSFilter struct {
	Company  string
	Profiles []string
	From     time.Time
	To       time.Time
}

// DailySalesRow ventas agregadas de un día calendario.
type DailySalesRow struct {
	Date         time.Time
	Total        decimal.Decimal
	Transactions int
}

// ItemDemandRow demanda agregada de un ítem en el período.
type ItemDemandRow struct {
	ItemCode     string
	ItemName     string
	TotalQty     decimal.Decimal
	Transactions int
	TotalAmount  decimal.Decimal
	AvgQty       decimal.Decimal
}

// ProfitDailyRow ingresos de un día con el detalle fiscal del documento.
type ProfitDailyRow struct {
	Date         time.Time
	Revenue      decimal.Decimal
	NetRevenue   decimal.Decimal
	Taxes        decimal.Decimal
	Discount     decimal.Decimal
	Transactions int
}

// LineCostRow una línea de factura con sus candidatos de costo: el snapshot
// de valoración más reciente no posterior al momento de posteo (si existe,
// en la bodega de la línea) y los fallbacks del maestro de ítems.
type LineCostRow struct {
	PostingDate      time.Time
	ItemCode         string
	Warehouse        string
	Qty              decimal.Decimal
	Amount           decimal.Decimal
	SnapshotRate     *decimal.Decimal // nil cuando no hay entrada en el stock ledger
	ItemValuation    decimal.Decimal
	LastPurchaseRate decimal.Decimal
}

// CustomerActivityRow rollup de un cliente en el período.
type CustomerActivityRow struct {
	Customer      string
	CustomerName  string
	Transactions  int
	TotalSpent    decimal.Decimal
	FirstPurchase time.Time
	LastPurchase  time.Time
	ActiveDays    int
}

// BestsellerRow métricas de popularidad de un ítem.
type BestsellerRow struct {
	ItemCode        string
	ItemName        string
	ItemGroup       string
	TotalQty        decimal.Decimal
	TotalAmount     decimal.Decimal
	Transactions    int
	UniqueCustomers int
	AvgPrice        decimal.Decimal
}

// ItemSalesRow consumo de un ítem para la proyección de stock.
type ItemSalesRow struct {
	ItemCode     string
	ItemName     string
	UOM          string
	TotalSold    decimal.Decimal
	AvgQty       decimal.Decimal
	Transactions int
}

// POSSummaryRow agregado de un solo renglón para el dashboard.
type POSSummaryRow struct {
	TotalInvoices   int
	TotalSales      decimal.Decimal
	UniqueCustomers int
	AvgTransaction  decimal.Decimal
}

// POSAnalyticsRepository consultas de solo lectura sobre POS Invoices.
// Las implementaciones no modifican datos; cualquier error de la fuente se
// propaga sin reintentos.
type POSAnalyticsRepository interface {
	// DailySales ingresos y conteo de transacciones por día calendario.
	DailySales(ctx context.Context, f POSFilter) ([]DailySalesRow, error)

	// ItemDemand ítems más vendidos por cantidad, descendente, hasta limit.
	ItemDemand(ctx context.Context, f POSFilter, limit int) ([]ItemDemandRow, error)

	// ProfitDaily ingresos diarios con impuestos y descuentos.
	ProfitDaily(ctx context.Context, f POSFilter) ([]ProfitDailyRow, error)

	// LineCosts cada línea del período con su snapshot de valoración más
	// reciente (orden posting_date, posting_time, creation) y los fallbacks
	// del maestro de ítems. La cascada se resuelve en el dominio.
	LineCosts(ctx context.Context, f POSFilter) ([]LineCostRow, error)

	// CustomerActivity rollup por cliente, descendente por transacciones.
	// Excluye documentos sin cliente.
	CustomerActivity(ctx context.Context, f POSFilter) ([]CustomerActivityRow, error)

	// Bestsellers ítems con métricas de popularidad, hasta limit.
	Bestsellers(ctx context.Context, f POSFilter, limit int) ([]BestsellerRow, error)

	// SalesByItem consumo por ítem para la proyección de stock, hasta limit.
	SalesByItem(ctx context.Context, f POSFilter, limit int) ([]ItemSalesRow, error)

	// ProfileWarehouses bodegas distintas mapeadas desde los profiles.
	ProfileWarehouses(ctx context.Context, profiles []string) ([]string, error)

	// StockBalances existencia actual (suma de bins) por ítem en las bodegas
	// dadas. Ítems sin bin no aparecen en el mapa.
	StockBalances(ctx context.Context, itemCodes, warehouses []string) (map[string]decimal.Decimal, error)

	// Summary agregado único para el dashboard POS.
	Summary(ctx context.Context, f POSFilter) (POSSummaryRow, error)
}

// ProfileRepository resuelve los POS Profiles por defecto de una company.
type ProfileRepository interface {
	// ActiveProfiles primeros `limit` profiles no deshabilitados de la
	// company, en el orden por defecto del sistema origen (modified DESC).
	ActiveProfiles(ctx context.Context, company string, limit int) ([]string, error)
}
