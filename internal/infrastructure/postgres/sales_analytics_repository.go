package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.SalesAnalyticsRepository = (*SalesAnalyticsRepo)(nil)

// SalesAnalyticsRepo consultas de solo lectura sobre facturas de venta.
// Los filtros de customer_group y territory son opcionales y se agregan al
// WHERE solo cuando vienen en la petición.
type SalesAnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewSalesAnalyticsRepository construye el adaptador de facturas de venta.
func NewSalesAnalyticsRepository(pool *pgxpool.Pool) *SalesAnalyticsRepo {
	return &SalesAnalyticsRepo{pool: pool}
}

// salesWhere arma el WHERE común de la familia. alias prefija las columnas
// del documento cuando la consulta hace join con las líneas.
func salesWhere(f repository.SalesFilter, alias string, withDates bool) (string, []any) {
	if alias != "" {
		alias += "."
	}
	conds := []string{
		alias + "company = $1",
		alias + "docstatus = 1",
	}
	args := []any{f.Company}

	if withDates {
		args = append(args, f.From, f.To)
		conds = append(conds, fmt.Sprintf("%sposting_date BETWEEN $2 AND $3", alias))
	}
	if f.CustomerGroup != "" {
		args = append(args, f.CustomerGroup)
		conds = append(conds, fmt.Sprintf("%scustomer_group = $%d", alias, len(args)))
	}
	if f.Territory != "" {
		args = append(args, f.Territory)
		conds = append(conds, fmt.Sprintf("%sterritory = $%d", alias, len(args)))
	}
	return strings.Join(conds, "\n	  AND "), args
}

// DailyRevenue ingresos, saldo y conteo de facturas por día.
func (r *SalesAnalyticsRepo) DailyRevenue(ctx context.Context, f repository.SalesFilter) ([]repository.DailyRevenueRow, error) {
	where, args := salesWhere(f, "", true)
	query := fmt.Sprintf(`
	SELECT
	    posting_date                        AS date,
	    SUM(grand_total)                    AS total_sales,
	    SUM(base_grand_total)               AS base_total_sales,
	    SUM(outstanding_amount)             AS outstanding,
	    COUNT(name)                         AS invoice_count,
	    AVG(grand_total)                    AS avg_invoice_value
	FROM sales_invoices
	WHERE %s
	GROUP BY posting_date
	ORDER BY posting_date`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.DailyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyRevenueRow
	for rows.Next() {
		var row repository.DailyRevenueRow
		if err := rows.Scan(
			&row.Date,
			&row.Total,
			&row.BaseTotal,
			&row.Outstanding,
			&row.Invoices,
			&row.AvgInvoice,
		); err != nil {
			return nil, fmt.Errorf("sales.DailyRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ItemDemand ítems facturados por cantidad descendente.
func (r *SalesAnalyticsRepo) ItemDemand(ctx context.Context, f repository.SalesFilter, limit int) ([]repository.SalesItemDemandRow, error) {
	where, args := salesWhere(f, "si", true)
	args = append(args, limit)
	query := fmt.Sprintf(`
	SELECT
	    sii.item_code,
	    sii.item_name,
	    COALESCE(sii.item_group, '')        AS item_group,
	    SUM(sii.qty)                        AS total_qty,
	    SUM(sii.stock_qty)                  AS total_stock_qty,
	    COUNT(DISTINCT si.name)             AS invoice_count,
	    SUM(sii.amount)                     AS total_amount,
	    AVG(sii.qty)                        AS avg_qty_per_invoice,
	    AVG(sii.rate)                       AS avg_rate
	FROM sales_invoice_items sii
	JOIN sales_invoices si ON sii.parent = si.name
	WHERE %s
	GROUP BY sii.item_code, sii.item_name, sii.item_group
	ORDER BY total_qty DESC
	LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.ItemDemand: %w", err)
	}
	defer rows.Close()

	var results []repository.SalesItemDemandRow
	for rows.Next() {
		var row repository.SalesItemDemandRow
		if err := rows.Scan(
			&row.ItemCode,
			&row.ItemName,
			&row.ItemGroup,
			&row.TotalQty,
			&row.StockQty,
			&row.Invoices,
			&row.TotalAmount,
			&row.AvgQty,
			&row.AvgRate,
		); err != nil {
			return nil, fmt.Errorf("sales.ItemDemand scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProfitDaily ingresos diarios con impuestos y descuentos.
func (r *SalesAnalyticsRepo) ProfitDaily(ctx context.Context, f repository.SalesFilter) ([]repository.ProfitDailyRow, error) {
	where, args := salesWhere(f, "", true)
	query := fmt.Sprintf(`
	SELECT
	    posting_date                        AS date,
	    SUM(grand_total)                    AS revenue,
	    SUM(net_total)                      AS net_revenue,
	    SUM(total_taxes_and_charges)        AS taxes,
	    SUM(discount_amount)                AS discount,
	    COUNT(name)                         AS invoice_count
	FROM sales_invoices
	WHERE %s
	GROUP BY posting_date
	ORDER BY posting_date`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.ProfitDaily: %w", err)
	}
	defer rows.Close()

	var results []repository.ProfitDailyRow
	for rows.Next() {
		var row repository.ProfitDailyRow
		if err := rows.Scan(
			&row.Date,
			&row.Revenue,
			&row.NetRevenue,
			&row.Taxes,
			&row.Discount,
			&row.Transactions,
		); err != nil {
			return nil, fmt.Errorf("sales.ProfitDaily scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DailyCosts costo estimado por día. La resolución es del maestro de ítems
// (valuation_rate, luego el 65% del standard_rate o del precio de venta),
// igual que en el sistema origen.
func (r *SalesAnalyticsRepo) DailyCosts(ctx context.Context, f repository.SalesFilter) ([]repository.DailyCostRow, error) {
	where, args := salesWhere(f, "si", true)
	query := fmt.Sprintf(`
	SELECT
	    si.posting_date                     AS date,
	    SUM(sii.qty * sii.rate)             AS item_amount,
	    SUM(sii.qty * COALESCE(
	        NULLIF(i.valuation_rate, 0),
	        i.standard_rate * 0.65,
	        sii.rate * 0.65
	    ))                                  AS estimated_cost
	FROM sales_invoice_items sii
	JOIN sales_invoices si ON sii.parent = si.name
	LEFT JOIN items i ON i.item_code = sii.item_code
	WHERE %s
	GROUP BY si.posting_date`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.DailyCosts: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyCostRow
	for rows.Next() {
		var row repository.DailyCostRow
		if err := rows.Scan(&row.Date, &row.LineAmount, &row.EstimatedCost); err != nil {
			return nil, fmt.Errorf("sales.DailyCosts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CustomerActivity rollup por cliente, descendente por total gastado.
func (r *SalesAnalyticsRepo) CustomerActivity(ctx context.Context, f repository.SalesFilter) ([]repository.SalesCustomerRow, error) {
	where, args := salesWhere(f, "", true)
	query := fmt.Sprintf(`
	SELECT
	    customer,
	    MAX(customer_name)                  AS customer_name,
	    MAX(customer_group)                 AS customer_group,
	    MAX(territory)                      AS territory,
	    COUNT(name)                         AS invoice_count,
	    SUM(grand_total)                    AS total_spent,
	    SUM(outstanding_amount)             AS total_outstanding,
	    AVG(grand_total)                    AS avg_invoice_value,
	    MIN(posting_date)                   AS first_invoice,
	    MAX(posting_date)                   AS last_invoice,
	    COUNT(DISTINCT posting_date)        AS active_days
	FROM sales_invoices
	WHERE %s
	GROUP BY customer
	ORDER BY total_spent DESC`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.CustomerActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.SalesCustomerRow
	for rows.Next() {
		var row repository.SalesCustomerRow
		if err := rows.Scan(
			&row.Customer,
			&row.CustomerName,
			&row.CustomerGroup,
			&row.Territory,
			&row.Invoices,
			&row.TotalSpent,
			&row.Outstanding,
			&row.AvgInvoice,
			&row.FirstInvoice,
			&row.LastInvoice,
			&row.ActiveDays,
		); err != nil {
			return nil, fmt.Errorf("sales.CustomerActivity scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Bestsellers ítems con métricas de popularidad.
func (r *SalesAnalyticsRepo) Bestsellers(ctx context.Context, f repository.SalesFilter, limit int) ([]repository.BestsellerRow, error) {
	where, args := salesWhere(f, "si", true)
	args = append(args, limit)
	query := fmt.Sprintf(`
	SELECT
	    sii.item_code,
	    sii.item_name,
	    COALESCE(sii.item_group, '')        AS item_group,
	    SUM(sii.qty)                        AS total_qty,
	    SUM(sii.amount)                     AS total_amount,
	    COUNT(DISTINCT si.name)             AS invoice_count,
	    COUNT(DISTINCT si.customer)         AS unique_customers,
	    AVG(sii.rate)                       AS avg_price
	FROM sales_invoice_items sii
	JOIN sales_invoices si ON sii.parent = si.name
	WHERE %s
	GROUP BY sii.item_code, sii.item_name, sii.item_group
	ORDER BY total_qty DESC
	LIMIT $%d`, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.Bestsellers: %w", err)
	}
	defer rows.Close()

	var results []repository.BestsellerRow
	for rows.Next() {
		var row repository.BestsellerRow
		if err := rows.Scan(
			&row.ItemCode,
			&row.ItemName,
			&row.ItemGroup,
			&row.TotalQty,
			&row.TotalAmount,
			&row.Transactions,
			&row.UniqueCustomers,
			&row.AvgPrice,
		); err != nil {
			return nil, fmt.Errorf("sales.Bestsellers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// PaymentDaily facturado, saldo y cobro por día.
func (r *SalesAnalyticsRepo) PaymentDaily(ctx context.Context, f repository.SalesFilter) ([]repository.PaymentDailyRow, error) {
	where, args := salesWhere(f, "", true)
	query := fmt.Sprintf(`
	SELECT
	    posting_date                        AS date,
	    SUM(grand_total)                    AS invoiced_amount,
	    SUM(outstanding_amount)             AS outstanding,
	    SUM(paid_amount)                    AS paid_amount,
	    COUNT(name)                         AS invoice_count
	FROM sales_invoices
	WHERE %s
	GROUP BY posting_date
	ORDER BY posting_date`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.PaymentDaily: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentDailyRow
	for rows.Next() {
		var row repository.PaymentDailyRow
		if err := rows.Scan(
			&row.Date,
			&row.Invoiced,
			&row.Outstanding,
			&row.Paid,
			&row.Invoices,
		); err != nil {
			return nil, fmt.Errorf("sales.PaymentDaily scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// AgingBuckets clasifica el saldo de las facturas impagas por antigüedad de
// vencimiento contra hoy. Es una foto del presente: ignora deliberadamente
// el rango de fechas del filtro.
func (r *SalesAnalyticsRepo) AgingBuckets(ctx context.Context, f repository.SalesFilter) ([]repository.AgingBucketRow, error) {
	where, args := salesWhere(f, "", false)
	query := fmt.Sprintf(`
	SELECT
	    CASE
	        WHEN t.days_overdue <= 0  THEN 'Not Due'
	        WHEN t.days_overdue <= 30 THEN '1-30 Days'
	        WHEN t.days_overdue <= 60 THEN '31-60 Days'
	        WHEN t.days_overdue <= 90 THEN '61-90 Days'
	        ELSE 'Over 90 Days'
	    END                                 AS aging_bucket,
	    COUNT(t.name)                       AS invoice_count,
	    SUM(t.outstanding_amount)           AS outstanding_amount
	FROM (
	    SELECT name, outstanding_amount, CURRENT_DATE - due_date AS days_overdue
	    FROM sales_invoices
	    WHERE %s
	      AND outstanding_amount > 0
	) t
	GROUP BY aging_bucket
	ORDER BY MIN(t.days_overdue)`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales.AgingBuckets: %w", err)
	}
	defer rows.Close()

	var results []repository.AgingBucketRow
	for rows.Next() {
		var row repository.AgingBucketRow
		if err := rows.Scan(&row.Bucket, &row.Invoices, &row.Outstanding); err != nil {
			return nil, fmt.Errorf("sales.AgingBuckets scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Summary agregado único para el dashboard de facturas de venta.
func (r *SalesAnalyticsRepo) Summary(ctx context.Context, f repository.SalesFilter) (repository.SalesSummaryRow, error) {
	where, args := salesWhere(f, "", true)
	query := fmt.Sprintf(`
	SELECT
	    COUNT(name)                             AS total_invoices,
	    COALESCE(SUM(grand_total), 0)           AS total_sales,
	    COALESCE(SUM(outstanding_amount), 0)    AS total_outstanding,
	    COUNT(DISTINCT customer)                AS unique_customers,
	    COALESCE(AVG(grand_total), 0)           AS avg_invoice_value
	FROM sales_invoices
	WHERE %s`, where)

	var row repository.SalesSummaryRow
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&row.TotalInvoices,
		&row.TotalSales,
		&row.TotalOutstanding,
		&row.UniqueCustomers,
		&row.AvgInvoice,
	)
	if err != nil {
		return repository.SalesSummaryRow{}, fmt.Errorf("sales.Summary: %w", err)
	}
	return row, nil
}
