package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.POSAnalyticsRepository = (*POSAnalyticsRepo)(nil)

// POSAnalyticsRepo consultas de solo lectura sobre las tablas POS replicadas
// del ERP. Todas filtran por company, lista de profiles, docstatus = 1 y
// rango de posting_date inclusive.
type POSAnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewPOSAnalyticsRepository construye el adaptador POS.
func NewPOSAnalyticsRepository(pool *pgxpool.Pool) *POSAnalyticsRepo {
	return &POSAnalyticsRepo{pool: pool}
}

// DailySales ingresos y transacciones por día calendario.
func (r *POSAnalyticsRepo) DailySales(ctx context.Context, f repository.POSFilter) ([]repository.DailySalesRow, error) {
	const query = `
	SELECT
	    posting_date              AS date,
	    SUM(grand_total)          AS total_sales,
	    COUNT(name)               AS transaction_count
	FROM pos_invoices
	WHERE company = $1
	  AND pos_profile = ANY($2)
	  AND docstatus = 1
	  AND posting_date BETWEEN $3 AND $4
	GROUP BY posting_date
	ORDER BY posting_date`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("pos.DailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Date, &row.Total, &row.Transactions); err != nil {
			return nil, fmt.Errorf("pos.DailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ItemDemand ítems vendidos por cantidad descendente.
func (r *POSAnalyticsRepo) ItemDemand(ctx context.Context, f repository.POSFilter, limit int) ([]repository.ItemDemandRow, error) {
	const query = `
	SELECT
	    pii.item_code,
	    pii.item_name,
	    SUM(pii.qty)              AS total_qty,
	    COUNT(DISTINCT pi.name)   AS transaction_count,
	    SUM(pii.amount)           AS total_amount,
	    AVG(pii.qty)              AS avg_qty_per_transaction
	FROM pos_invoice_items pii
	JOIN pos_invoices pi ON pii.parent = pi.name
	WHERE pi.company = $1
	  AND pi.pos_profile = ANY($2)
	  AND pi.docstatus = 1
	  AND pi.posting_date BETWEEN $3 AND $4
	GROUP BY pii.item_code, pii.item_name
	ORDER BY total_qty DESC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To, limit)
	if err != nil {
		return nil, fmt.Errorf("pos.ItemDemand: %w", err)
	}
	defer rows.Close()

	var results []repository.ItemDemandRow
	for rows.Next() {
		var row repository.ItemDemandRow
		if err := rows.Scan(
			&row.ItemCode,
			&row.ItemName,
			&row.TotalQty,
			&row.Transactions,
			&row.TotalAmount,
			&row.AvgQty,
		); err != nil {
			return nil, fmt.Errorf("pos.ItemDemand scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProfitDaily ingresos diarios con el detalle fiscal del documento.
func (r *POSAnalyticsRepo) ProfitDaily(ctx context.Context, f repository.POSFilter) ([]repository.ProfitDailyRow, error) {
	const query = `
	SELECT
	    posting_date                        AS date,
	    SUM(grand_total)                    AS revenue,
	    SUM(net_total)                      AS net_revenue,
	    SUM(total_taxes_and_charges)        AS taxes,
	    SUM(discount_amount)                AS discount,
	    COUNT(name)                         AS transaction_count
	FROM pos_invoices
	WHERE company = $1
	  AND pos_profile = ANY($2)
	  AND docstatus = 1
	  AND posting_date BETWEEN $3 AND $4
	GROUP BY posting_date
	ORDER BY posting_date`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("pos.ProfitDaily: %w", err)
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
			return nil, fmt.Errorf("pos.ProfitDaily scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LineCosts cada línea del período con su candidato de costo por escalón:
// el snapshot de valoración más reciente no posterior al momento de posteo
// del documento (LATERAL, en la bodega de la línea, desempatado por
// posting_date, posting_time, creation) y los fallbacks del maestro de
// ítems. La cascada se resuelve en el dominio, no aquí.
func (r *POSAnalyticsRepo) LineCosts(ctx context.Context, f repository.POSFilter) ([]repository.LineCostRow, error) {
	const query = `
	SELECT
	    pi.posting_date,
	    pii.item_code,
	    pii.warehouse,
	    pii.qty,
	    pii.amount,
	    sle.valuation_rate                       AS snapshot_rate,
	    COALESCE(i.valuation_rate, 0)            AS item_valuation,
	    COALESCE(i.last_purchase_rate, 0)        AS last_purchase_rate
	FROM pos_invoice_items pii
	JOIN pos_invoices pi ON pii.parent = pi.name
	LEFT JOIN items i ON i.item_code = pii.item_code
	LEFT JOIN LATERAL (
	    SELECT valuation_rate
	    FROM stock_ledger_entries s
	    WHERE s.item_code = pii.item_code
	      AND s.warehouse = pii.warehouse
	      AND (s.posting_date, s.posting_time) <= (pi.posting_date, pi.posting_time)
	    ORDER BY s.posting_date DESC, s.posting_time DESC, s.creation DESC
	    LIMIT 1
	) sle ON TRUE
	WHERE pi.company = $1
	  AND pi.pos_profile = ANY($2)
	  AND pi.docstatus = 1
	  AND pi.posting_date BETWEEN $3 AND $4`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("pos.LineCosts: %w", err)
	}
	defer rows.Close()

	var results []repository.LineCostRow
	for rows.Next() {
		var row repository.LineCostRow
		if err := rows.Scan(
			&row.PostingDate,
			&row.ItemCode,
			&row.Warehouse,
			&row.Qty,
			&row.Amount,
			&row.SnapshotRate,
			&row.ItemValuation,
			&row.LastPurchaseRate,
		); err != nil {
			return nil, fmt.Errorf("pos.LineCosts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CustomerActivity rollup por cliente; excluye documentos sin cliente.
func (r *POSAnalyticsRepo) CustomerActivity(ctx context.Context, f repository.POSFilter) ([]repository.CustomerActivityRow, error) {
	const query = `
	SELECT
	    customer,
	    MAX(customer_name)                  AS customer_name,
	    COUNT(name)                         AS transaction_count,
	    SUM(grand_total)                    AS total_spent,
	    MIN(posting_date)                   AS first_purchase,
	    MAX(posting_date)                   AS last_purchase,
	    COUNT(DISTINCT posting_date)        AS active_days
	FROM pos_invoices
	WHERE company = $1
	  AND pos_profile = ANY($2)
	  AND docstatus = 1
	  AND posting_date BETWEEN $3 AND $4
	  AND customer IS NOT NULL
	  AND customer <> ''
	GROUP BY customer
	ORDER BY transaction_count DESC`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("pos.CustomerActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.CustomerActivityRow
	for rows.Next() {
		var row repository.CustomerActivityRow
		if err := rows.Scan(
			&row.Customer,
			&row.CustomerName,
			&row.Transactions,
			&row.TotalSpent,
			&row.FirstPurchase,
			&row.LastPurchase,
			&row.ActiveDays,
		); err != nil {
			return nil, fmt.Errorf("pos.CustomerActivity scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Bestsellers ítems con métricas de popularidad, por cantidad descendente.
func (r *POSAnalyticsRepo) Bestsellers(ctx context.Context, f repository.POSFilter, limit int) ([]repository.BestsellerRow, error) {
	const query = `
	SELECT
	    pii.item_code,
	    pii.item_name,
	    COALESCE(pii.item_group, '')        AS item_group,
	    SUM(pii.qty)                        AS total_qty,
	    SUM(pii.amount)                     AS total_amount,
	    COUNT(DISTINCT pi.name)             AS transaction_count,
	    COUNT(DISTINCT pi.customer)         AS unique_customers,
	    AVG(pii.rate)                       AS avg_price
	FROM pos_invoice_items pii
	JOIN pos_invoices pi ON pii.parent = pi.name
	WHERE pi.company = $1
	  AND pi.pos_profile = ANY($2)
	  AND pi.docstatus = 1
	  AND pi.posting_date BETWEEN $3 AND $4
	GROUP BY pii.item_code, pii.item_name, pii.item_group
	ORDER BY total_qty DESC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To, limit)
	if err != nil {
		return nil, fmt.Errorf("pos.Bestsellers: %w", err)
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
			return nil, fmt.Errorf("pos.Bestsellers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesByItem consumo por ítem para la proyección de stock.
func (r *POSAnalyticsRepo) SalesByItem(ctx context.Context, f repository.POSFilter, limit int) ([]repository.ItemSalesRow, error) {
	const query = `
	SELECT
	    pii.item_code,
	    pii.item_name,
	    COALESCE(pii.uom, '')               AS uom,
	    SUM(pii.qty)                        AS total_sold,
	    AVG(pii.qty)                        AS avg_qty_per_transaction,
	    COUNT(DISTINCT pi.name)             AS transaction_count
	FROM pos_invoice_items pii
	JOIN pos_invoices pi ON pii.parent = pi.name
	WHERE pi.company = $1
	  AND pi.pos_profile = ANY($2)
	  AND pi.docstatus = 1
	  AND pi.posting_date BETWEEN $3 AND $4
	GROUP BY pii.item_code, pii.item_name, pii.uom
	ORDER BY total_sold DESC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, f.Company, f.Profiles, f.From, f.To, limit)
	if err != nil {
		return nil, fmt.Errorf("pos.SalesByItem: %w", err)
	}
	defer rows.Close()

	var results []repository.ItemSalesRow
	for rows.Next() {
		var row repository.ItemSalesRow
		if err := rows.Scan(
			&row.ItemCode,
			&row.ItemName,
			&row.UOM,
			&row.TotalSold,
			&row.AvgQty,
			&row.Transactions,
		); err != nil {
			return nil, fmt.Errorf("pos.SalesByItem scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProfileWarehouses bodegas distintas mapeadas desde los profiles.
func (r *POSAnalyticsRepo) ProfileWarehouses(ctx context.Context, profiles []string) ([]string, error) {
	const query = `
	SELECT DISTINCT warehouse
	FROM pos_profiles
	WHERE name = ANY($1)
	  AND warehouse IS NOT NULL`

	rows, err := r.pool.Query(ctx, query, profiles)
	if err != nil {
		return nil, fmt.Errorf("pos.ProfileWarehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("pos.ProfileWarehouses scan: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

// StockBalances existencia actual por ítem (suma de bins en las bodegas
// dadas). Ítems sin bin no aparecen en el mapa.
func (r *POSAnalyticsRepo) StockBalances(ctx context.Context, itemCodes, warehouses []string) (map[string]decimal.Decimal, error) {
	const query = `
	SELECT item_code, SUM(actual_qty) AS current_stock
	FROM bins
	WHERE item_code = ANY($1)
	  AND warehouse = ANY($2)
	GROUP BY item_code`

	rows, err := r.pool.Query(ctx, query, itemCodes, warehouses)
	if err != nil {
		return nil, fmt.Errorf("pos.StockBalances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal, len(itemCodes))
	for rows.Next() {
		var code string
		var qty decimal.Decimal
		if err := rows.Scan(&code, &qty); err != nil {
			return nil, fmt.Errorf("pos.StockBalances scan: %w", err)
		}
		balances[code] = qty
	}
	return balances, rows.Err()
}

// Summary agregado único para el dashboard POS.
func (r *POSAnalyticsRepo) Summary(ctx context.Context, f repository.POSFilter) (repository.POSSummaryRow, error) {
	const query = `
	SELECT
	    COUNT(name)                             AS total_invoices,
	    COALESCE(SUM(grand_total), 0)           AS total_sales,
	    COUNT(DISTINCT customer)                AS unique_customers,
	    COALESCE(AVG(grand_total), 0)           AS avg_transaction_value
	FROM pos_invoices
	WHERE company = $1
	  AND pos_profile = ANY($2)
	  AND docstatus = 1
	  AND posting_date BETWEEN $3 AND $4`

	var row repository.POSSummaryRow
	err := r.pool.QueryRow(ctx, query, f.Company, f.Profiles, f.From, f.To).Scan(
		&row.TotalInvoices,
		&row.TotalSales,
		&row.UniqueCustomers,
		&row.AvgTransaction,
	)
	if err != nil {
		return repository.POSSummaryRow{}, fmt.Errorf("pos.Summary: %w", err)
	}
	return row, nil
}
