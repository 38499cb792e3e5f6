package dto

// ──────────────────────────────────────────────────────────────────────────────
// Familia Sales Invoice: GET|POST /api/analytics/sales-invoices/{predictions,dashboard}
//
// Misma unión etiquetada por tópico que la familia POS, pero con filtros de
// customer_group/territory en lugar de POS Profiles y con los tópicos de
// cobranza (payment_prediction) y comportamiento de clientes.
// ──────────────────────────────────────────────────────────────────────────────

// SalesFiltersDTO filtros opcionales aplicados, ecos de la petición.
type SalesFiltersDTO struct {
	CustomerGroup string `json:"customer_group"`
	Territory     string `json:"territory"`
}

// SalesPredictionsDTO respuesta completa de predicciones de Sales Invoice.
type SalesPredictionsDTO struct {
	Company          string                 `json:"company"`
	Filters          SalesFiltersDTO        `json:"filters"`
	DateRange        DateRangeDTO           `json:"date_range"`
	PredictionPeriod string                 `json:"prediction_period"`
	Sales            SalesRevenueDTO        `json:"sales_prediction"`
	ProductDemand    SalesDemandDTO         `json:"product_demand_prediction"`
	Profit           SalesProfitDTO         `json:"profit_prediction"`
	Customers        CustomerAnalysisDTO    `json:"customer_analysis"`
	Bestsellers      SalesBestsellerDTO     `json:"bestseller_prediction"`
	Payment          PaymentPredictionDTO   `json:"payment_prediction"`
}

// SalesDashboardDTO respuesta del dashboard de Sales Invoice.
type SalesDashboardDTO struct {
	Company   string            `json:"company"`
	Filters   SalesFiltersDTO   `json:"filters"`
	DateRange DateRangeDTO      `json:"date_range"`
	Summary   SalesSummaryDTO   `json:"summary"`
}

// SalesSummaryDTO KPIs del período incluyendo cobranza.
type SalesSummaryDTO struct {
	TotalInvoices    int     `json:"total_invoices"`
	TotalSales       float64 `json:"total_sales"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalCollected   float64 `json:"total_collected"`
	CollectionRate   float64 `json:"collection_rate"`
	UniqueCustomers  int     `json:"unique_customers"`
	AvgInvoiceValue  float64 `json:"avg_invoice_value"`
}

// ── Predicción de revenue ─────────────────────────────────────────────────────

type SalesRevenueDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*SalesRevenueMetrics
}

type SalesRevenueMetrics struct {
	CurrentTotalSales      float64 `json:"current_total_sales"`
	CurrentAvgDailySales   float64 `json:"current_avg_daily_sales"`
	CurrentTotalInvoices   int     `json:"current_total_invoices"`
	CurrentAvgInvoiceValue float64 `json:"current_avg_invoice_value"`
	PredictedDailySales    float64 `json:"predicted_daily_sales"`
	PredictedTotalSales    float64 `json:"predicted_total_sales"`
	PredictedInvoiceCount  int     `json:"predicted_invoice_count"`
	GrowthRatePct          float64 `json:"growth_rate_percentage"`
	Trend                  string  `json:"trend"`
	TotalOutstanding       float64 `json:"total_outstanding"`
	CollectionRate         float64 `json:"collection_rate"`
	Confidence             string  `json:"confidence"`
	DataPoints             int     `json:"historical_data_points"`
}

// ── Demanda de productos facturados ───────────────────────────────────────────

type SalesDemandDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*SalesDemandMetrics
}

type SalesDemandMetrics struct {
	TopProducts           []SalesProductForecastDTO `json:"top_products"`
	TotalProductsAnalyzed int                       `json:"total_products_analyzed"`
}

type SalesProductForecastDTO struct {
	ItemCode           string  `json:"item_code"`
	ItemName           string  `json:"item_name"`
	ItemGroup          string  `json:"item_group"`
	HistoricalTotalQty float64 `json:"historical_total_qty"`
	DailyAverageDemand float64 `json:"daily_average_demand"`
	PredictedDemand    float64 `json:"predicted_demand"`
	InvoiceFrequency   int     `json:"invoice_frequency"`
	AvgQtyPerInvoice   float64 `json:"avg_qty_per_invoice"`
	AvgRate            float64 `json:"avg_rate"`
	TotalRevenue       float64 `json:"total_revenue"`
}

// ── Predicción de utilidad (costo estimado vía maestro de ítems) ──────────────

type SalesProfitDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*SalesProfitMetrics
}

// SalesProfitMetrics contrato plano de la familia de facturas: el costo se
// estima en SQL con el maestro de ítems y el margen previsto replica el
// histórico.
type SalesProfitMetrics struct {
	CurrentTotalRevenue   float64 `json:"current_total_revenue"`
	CurrentTotalCost      float64 `json:"current_total_cost"`
	CurrentTotalProfit    float64 `json:"current_total_profit"`
	CurrentProfitMargin   float64 `json:"current_profit_margin"`
	CurrentTotalTaxes     float64 `json:"current_total_taxes"`
	CurrentTotalDiscount  float64 `json:"current_total_discount"`
	AvgDailyProfit        float64 `json:"avg_daily_profit"`
	PredictedTotalRevenue float64 `json:"predicted_total_revenue"`
	PredictedTotalCost    float64 `json:"predicted_total_cost"`
	PredictedTotalProfit  float64 `json:"predicted_total_profit"`
	PredictedProfitMargin float64 `json:"predicted_profit_margin"`
	Note                  string  `json:"note"`
}

// ── Análisis de clientes ──────────────────────────────────────────────────────

type CustomerAnalysisDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*CustomerAnalysisMetrics
}

type CustomerAnalysisMetrics struct {
	CurrentTotalCustomers    int                   `json:"current_total_customers"`
	RepeatCustomers          int                   `json:"repeat_customers"`
	LoyalCustomers           int                   `json:"loyal_customers"`
	RetentionRate            float64               `json:"retention_rate"`
	CollectionEfficiency     float64               `json:"collection_efficiency"`
	PredictedNewCustomers    int                   `json:"predicted_new_customers"`
	PredictedActiveCustomers int                   `json:"predicted_active_customers"`
	TopCustomers             []SalesTopCustomerDTO `json:"top_customers"`
}

type SalesTopCustomerDTO struct {
	Customer        string  `json:"customer"`
	CustomerName    string  `json:"customer_name"`
	CustomerGroup   string  `json:"customer_group"`
	Territory       string  `json:"territory"`
	InvoiceCount    int     `json:"invoice_count"`
	TotalSpent      float64 `json:"total_spent"`
	Outstanding     float64 `json:"outstanding"`
	AvgInvoiceValue float64 `json:"avg_invoice_value"`
	PaymentScore    float64 `json:"payment_score"`
	CustomerType    string  `json:"customer_type"`
}

// ── Productos más facturados ──────────────────────────────────────────────────

type SalesBestsellerDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*SalesBestsellerMetrics
}

type SalesBestsellerMetrics struct {
	TopBestsellers []SalesBestsellerForecastDTO `json:"top_bestsellers"`
	AllBestsellers []SalesBestsellerForecastDTO `json:"all_bestsellers"`
}

type SalesBestsellerForecastDTO struct {
	Rank                int     `json:"rank"`
	ItemCode            string  `json:"item_code"`
	ItemName            string  `json:"item_name"`
	ItemGroup           string  `json:"item_group"`
	HistoricalQtySold   float64 `json:"historical_qty_sold"`
	PredictedQtyNeeded  float64 `json:"predicted_qty_needed"`
	DailyAvgSales       float64 `json:"daily_avg_sales"`
	InvoiceFrequency    int     `json:"invoice_frequency"`
	UniqueCustomers     int     `json:"unique_customers"`
	AvgPrice            float64 `json:"avg_price"`
	RevenueContribution float64 `json:"revenue_contribution"`
	PopularityScore     float64 `json:"popularity_score"`
}

// ── Predicción de cobranza ────────────────────────────────────────────────────

type PaymentPredictionDTO struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	*PaymentPredictionMetrics
}

// PaymentPredictionMetrics la tasa de cobro prevista replica la histórica:
// el modelo asume que el comportamiento de pago no cambia en el horizonte.
type PaymentPredictionMetrics struct {
	CurrentTotalInvoiced    float64          `json:"current_total_invoiced"`
	CurrentTotalCollected   float64          `json:"current_total_collected"`
	CurrentTotalOutstanding float64          `json:"current_total_outstanding"`
	CurrentCollectionRate   float64          `json:"current_collection_rate"`
	AvgDailyInvoiced        float64          `json:"avg_daily_invoiced"`
	AvgDailyCollection      float64          `json:"avg_daily_collection"`
	PredictedInvoiced       float64          `json:"predicted_invoiced"`
	PredictedCollection     float64          `json:"predicted_collection"`
	PredictedOutstanding    float64          `json:"predicted_outstanding"`
	PredictedCollectionRate float64          `json:"predicted_collection_rate"`
	AgingAnalysis           []AgingBucketDTO `json:"aging_analysis"`
}

// AgingBucketDTO saldo pendiente por antigüedad de vencimiento.
type AgingBucketDTO struct {
	Bucket       string  `json:"bucket"`
	InvoiceCount int     `json:"invoice_count"`
	Outstanding  float64 `json:"outstanding"`
}
