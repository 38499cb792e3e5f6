package dto

// ──────────────────────────────────────────────────────────────────────────────
// Familia POS: GET|POST /api/analytics/pos/{predictions,dashboard}
//
// Cada tópico es una unión etiquetada: Status "success" con las métricas
// aplanadas en el mismo objeto, o "no_data" con un Message y sin métricas.
// El puntero embebido se omite del JSON cuando es nil.
// ──────────────────────────────────────────────────────────────────────────────

// POSPredictionsDTO respuesta completa del endpoint de predicciones POS.
type POSPredictionsDTO struct {
	Company          string                  `json:"company"`
	POSProfiles      []string                `json:"pos_profiles"`
	DateRange        DateRangeDTO            `json:"date_range"`
	PredictionPeriod string                  `json:"prediction_period"`
	Sales            SalesPredictionDTO      `json:"sales_prediction"`
	ProductDemand    ProductDemandDTO        `json:"product_demand_prediction"`
	Profit           ProfitPredictionDTO     `json:"profit_prediction"`
	ActiveCustomers  CustomerPredictionDTO   `json:"active_customer_prediction"`
	Bestsellers      BestsellerPredictionDTO `json:"bestseller_prediction"`
	Stock            StockPredictionDTO      `json:"stock_prediction"`
}

// POSDashboardDTO respuesta del dashboard POS.
type POSDashboardDTO struct {
	Company     string          `json:"company"`
	POSProfiles []string        `json:"pos_profiles"`
	DateRange   DateRangeDTO    `json:"date_range"`
	Summary     POSSummaryDTO   `json:"summary"`
}

// POSSummaryDTO KPIs del período para el dashboard.
type POSSummaryDTO struct {
	TotalInvoices       int     `json:"total_invoices"`
	TotalSales          float64 `json:"total_sales"`
	UniqueCustomers     int     `json:"unique_customers"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
}

// ── Predicción de ventas ──────────────────────────────────────────────────────

type SalesPredictionDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*SalesPredictionMetrics
}

type SalesPredictionMetrics struct {
	CurrentAvgDailySales float64 `json:"current_avg_daily_sales"`
	PredictedDailySales  float64 `json:"predicted_daily_sales"`
	PredictedTotalSales  float64 `json:"predicted_total_sales"`
	GrowthRatePct        float64 `json:"growth_rate_percentage"`
	Trend                string  `json:"trend"`
	Confidence           string  `json:"confidence"`
	DataPoints           int     `json:"historical_data_points"`
}

// ── Demanda de productos ──────────────────────────────────────────────────────

type ProductDemandDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*ProductDemandMetrics
}

type ProductDemandMetrics struct {
	TopProducts           []ProductForecastDTO `json:"top_products"`
	TotalProductsAnalyzed int                  `json:"total_products_analyzed"`
}

type ProductForecastDTO struct {
	ItemCode             string  `json:"item_code"`
	ItemName             string  `json:"item_name"`
	HistoricalTotalQty   float64 `json:"historical_total_qty"`
	DailyAverageDemand   float64 `json:"daily_average_demand"`
	PredictedDemand      float64 `json:"predicted_demand"`
	TransactionFrequency int     `json:"transaction_frequency"`
	AvgQtyPerTransaction float64 `json:"avg_qty_per_transaction"`
}

// ── Predicción de utilidad (con cascada de costos) ────────────────────────────

type ProfitPredictionDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*ProfitPredictionMetrics
}

// ProfitFigures cifras agregadas de un período (histórico o previsto).
type ProfitFigures struct {
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"margin_pct"`
}

// ProfitDailyAverageDTO promedios diarios; margin_per_day se redondea a 1
// decimal, el resto a 2.
type ProfitDailyAverageDTO struct {
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	MarginPerDay float64 `json:"margin_per_day"`
}

// CostSourcesDTO líneas resueltas por cada escalón de la cascada.
type CostSourcesDTO struct {
	StockLedger   int `json:"stock_ledger"`
	ItemValuation int `json:"item_valuation"`
	LastPurchase  int `json:"last_purchase"`
	None          int `json:"none"`
}

// CostDataQualityDTO procedencia del costo usado en la estimación.
// ItemsWithoutCost lista todos los ítems resueltos en cero (escalón 4).
type CostDataQualityDTO struct {
	LinesAnalyzed        int            `json:"lines_analyzed"`
	ValuationCoveragePct float64        `json:"valuation_coverage_pct"`
	CostSources          CostSourcesDTO `json:"cost_sources"`
	ItemsWithoutCost     []string       `json:"items_without_cost"`
}

// ProfitPredictionMetrics expone la estructura nueva (historical /
// daily_average / prediction) y, duplicadas, las claves planas legacy que
// los consumidores antiguos siguen leyendo. La duplicación es contrato:
// ambas vistas se derivan de la misma estructura canónica vía ProjectLegacy
// y deben ser numéricamente idénticas.
type ProfitPredictionMetrics struct {
	Historical   ProfitFigures         `json:"historical"`
	DailyAverage ProfitDailyAverageDTO `json:"daily_average"`
	Prediction   ProfitFigures         `json:"prediction"`
	DataQuality  CostDataQualityDTO    `json:"data_quality"`
	Warnings     []WarningDTO          `json:"warnings,omitempty"`

	CurrentTotalRevenue   float64 `json:"current_total_revenue"`
	CurrentTotalCost      float64 `json:"current_total_cost"`
	CurrentTotalProfit    float64 `json:"current_total_profit"`
	CurrentProfitMargin   float64 `json:"current_profit_margin"`
	AvgDailyProfit        float64 `json:"avg_daily_profit"`
	PredictedTotalRevenue float64 `json:"predicted_total_revenue"`
	PredictedTotalCost    float64 `json:"predicted_total_cost"`
	PredictedTotalProfit  float64 `json:"predicted_total_profit"`
	PredictedProfitMargin float64 `json:"predicted_profit_margin"`
}

// ProjectLegacy copia la estructura canónica sobre las claves planas legacy.
// Es una proyección pura: no recalcula nada.
func (m *ProfitPredictionMetrics) ProjectLegacy() {
	m.CurrentTotalRevenue = m.Historical.Revenue
	m.CurrentTotalCost = m.Historical.Cost
	m.CurrentTotalProfit = m.Historical.Profit
	m.CurrentProfitMargin = m.Historical.MarginPct
	m.AvgDailyProfit = m.DailyAverage.Profit
	m.PredictedTotalRevenue = m.Prediction.Revenue
	m.PredictedTotalCost = m.Prediction.Cost
	m.PredictedTotalProfit = m.Prediction.Profit
	m.PredictedProfitMargin = m.Prediction.MarginPct
}

// ── Clientes activos ──────────────────────────────────────────────────────────

type CustomerPredictionDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*CustomerPredictionMetrics
}

type CustomerPredictionMetrics struct {
	CurrentTotalCustomers    int              `json:"current_total_customers"`
	RepeatCustomers          int              `json:"repeat_customers"`
	LoyalCustomers           int              `json:"loyal_customers"`
	RetentionRate            float64          `json:"retention_rate"`
	PredictedNewCustomers    int              `json:"predicted_new_customers"`
	PredictedActiveCustomers int              `json:"predicted_active_customers"`
	TopCustomers             []TopCustomerDTO `json:"top_customers"`
}

type TopCustomerDTO struct {
	Customer            string  `json:"customer"`
	CustomerName        string  `json:"customer_name"`
	TransactionCount    int     `json:"transaction_count"`
	TotalSpent          float64 `json:"total_spent"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
	CustomerType        string  `json:"customer_type"`
}

// ── Productos más vendidos ────────────────────────────────────────────────────

type BestsellerPredictionDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*BestsellerPredictionMetrics
}

type BestsellerPredictionMetrics struct {
	TopBestsellers      []BestsellerForecastDTO           `json:"top_bestsellers"`
	AllBestsellers      []BestsellerForecastDTO           `json:"all_bestsellers"`
	CategoryPerformance map[string]CategoryPerformanceDTO `json:"category_performance"`
}

type BestsellerForecastDTO struct {
	Rank                 int     `json:"rank"`
	ItemCode             string  `json:"item_code"`
	ItemName             string  `json:"item_name"`
	ItemGroup            string  `json:"item_group"`
	HistoricalQtySold    float64 `json:"historical_qty_sold"`
	PredictedQtyNeeded   float64 `json:"predicted_qty_needed"`
	DailyAvgSales        float64 `json:"daily_avg_sales"`
	TransactionFrequency int     `json:"transaction_frequency"`
	UniqueCustomers      int     `json:"unique_customers"`
	AvgPrice             float64 `json:"avg_price"`
	RevenueContribution  float64 `json:"revenue_contribution"`
	PopularityScore      float64 `json:"popularity_score"`
}

type CategoryPerformanceDTO struct {
	TotalQty     float64 `json:"total_qty"`
	TotalRevenue float64 `json:"total_revenue"`
	ItemCount    int     `json:"item_count"`
}

// ── Necesidades de stock ──────────────────────────────────────────────────────

type StockPredictionDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*StockPredictionMetrics
}

type StockPredictionMetrics struct {
	CriticalItems []StockForecastDTO `json:"critical_items"`
	LowStockItems []StockForecastDTO `json:"low_stock_items"`
	AllItems      []StockForecastDTO `json:"all_items"`
	Summary       StockSummaryDTO    `json:"summary"`
}

type StockForecastDTO struct {
	ItemCode              string  `json:"item_code"`
	ItemName              string  `json:"item_name"`
	UOM                   string  `json:"uom"`
	CurrentStock          float64 `json:"current_stock"`
	DailySalesRate        float64 `json:"daily_sales_rate"`
	PredictedConsumption  float64 `json:"predicted_consumption"`
	SafetyStock           float64 `json:"safety_stock"`
	RecommendedStockLevel float64 `json:"recommended_stock_level"`
	ReorderQuantity       float64 `json:"reorder_quantity"`
	StockStatus           string  `json:"stock_status"`
	DaysUntilStockout     float64 `json:"days_until_stockout"`
}

type StockSummaryDTO struct {
	TotalItemsAnalyzed int `json:"total_items_analyzed"`
	CriticalStockCount int `json:"critical_stock_count"`
	LowStockCount      int `json:"low_stock_count"`
}
