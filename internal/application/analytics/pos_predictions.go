// Package analytics contiene los casos de uso de predicción y dashboard
// sobre las familias POS Invoice y Sales Invoice. Cada tópico responde de
// forma independiente: los que no tienen datos devuelven "no_data" sin
// afectar a los demás.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/message"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/forecast"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/i18n"
)

// Cortes de la familia POS: límite de la consulta y tope publicado.
const (
	posDemandQueryLimit     = 20
	posDemandTopProducts    = 10
	posBestsellerQueryLimit = 20
	posBestsellerTop        = 10
	posTopCustomers         = 10
	posStockQueryLimit      = 50
	posStockTopItems        = 10
	posStockAllItems        = 20

	warningItemsCap = 10
)

// POSPredictionUseCase arma la respuesta completa de predicciones POS.
type POSPredictionUseCase struct {
	repo     repository.POSAnalyticsRepository
	profiles repository.ProfileRepository
}

// NewPOSPredictionUseCase construye el caso de uso.
func NewPOSPredictionUseCase(repo repository.POSAnalyticsRepository, profiles repository.ProfileRepository) *POSPredictionUseCase {
	return &POSPredictionUseCase{repo: repo, profiles: profiles}
}

// GetPredictions resuelve los POS Profiles, ejecuta los seis tópicos en
// paralelo y ensambla el envelope. Un tópico sin datos no invalida a los
// demás; un error de la fuente sí aborta la respuesta completa.
func (uc *POSPredictionUseCase) GetPredictions(
	ctx context.Context,
	p dto.Params,
	pr *message.Printer,
) (*dto.POSPredictionsDTO, error) {
	profiles, err := uc.resolveProfiles(ctx, p)
	if err != nil {
		return nil, err
	}

	f := repository.POSFilter{
		Company:  p.Company,
		Profiles: profiles,
		From:     p.From,
		To:       p.To,
	}
	periodDays := p.PeriodDays()

	type salesResult struct {
		block dto.SalesPredictionDTO
		err   error
	}
	type demandResult struct {
		block dto.ProductDemandDTO
		err   error
	}
	type profitResult struct {
		block dto.ProfitPredictionDTO
		err   error
	}
	type customerResult struct {
		block dto.CustomerPredictionDTO
		err   error
	}
	type bestsellerResult struct {
		block dto.BestsellerPredictionDTO
		err   error
	}
	type stockResult struct {
		block dto.StockPredictionDTO
		err   error
	}

	salesCh := make(chan salesResult, 1)
	demandCh := make(chan demandResult, 1)
	profitCh := make(chan profitResult, 1)
	customerCh := make(chan customerResult, 1)
	bestsellerCh := make(chan bestsellerResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		block, err := uc.predictSales(ctx, f, p.PredictionDays, pr)
		salesCh <- salesResult{block, err}
	}()
	go func() {
		block, err := uc.predictDemand(ctx, f, periodDays, p.PredictionDays, pr)
		demandCh <- demandResult{block, err}
	}()
	go func() {
		block, err := uc.predictProfit(ctx, f, p.PredictionDays, pr)
		profitCh <- profitResult{block, err}
	}()
	go func() {
		block, err := uc.predictCustomers(ctx, f, periodDays, p.PredictionDays, pr)
		customerCh <- customerResult{block, err}
	}()
	go func() {
		block, err := uc.predictBestsellers(ctx, f, periodDays, p.PredictionDays, pr)
		bestsellerCh <- bestsellerResult{block, err}
	}()
	go func() {
		block, err := uc.predictStock(ctx, f, periodDays, p.PredictionDays, pr)
		stockCh <- stockResult{block, err}
	}()

	sales := <-salesCh
	demand := <-demandCh
	profit := <-profitCh
	customers := <-customerCh
	bestsellers := <-bestsellerCh
	stock := <-stockCh

	if sales.err != nil {
		return nil, fmt.Errorf("predicciones pos: ventas: %w", sales.err)
	}
	if demand.err != nil {
		return nil, fmt.Errorf("predicciones pos: demanda: %w", demand.err)
	}
	if profit.err != nil {
		return nil, fmt.Errorf("predicciones pos: utilidad: %w", profit.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("predicciones pos: clientes: %w", customers.err)
	}
	if bestsellers.err != nil {
		return nil, fmt.Errorf("predicciones pos: más vendidos: %w", bestsellers.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("predicciones pos: stock: %w", stock.err)
	}

	return &dto.POSPredictionsDTO{
		Company:          p.Company,
		POSProfiles:      profiles,
		DateRange:        p.DateRange(),
		PredictionPeriod: pr.Sprintf(i18n.PredictionPeriod, p.PredictionDays),
		Sales:            sales.block,
		ProductDemand:    demand.block,
		Profit:           profit.block,
		ActiveCustomers:  customers.block,
		Bestsellers:      bestsellers.block,
		Stock:            stock.block,
	}, nil
}

// resolveProfiles usa los profiles de la petición o, en su ausencia, los
// primeros activos de la company. Sin profiles no hay qué consultar.
func (uc *POSPredictionUseCase) resolveProfiles(ctx context.Context, p dto.Params) ([]string, error) {
	if len(p.Profiles) > 0 {
		return p.Profiles, nil
	}
	profiles, err := uc.profiles.ActiveProfiles(ctx, p.Company, dto.DefaultProfileLimit)
	if err != nil {
		return nil, fmt.Errorf("predicciones pos: profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, domain.ErrNoActiveProfiles
	}
	return profiles, nil
}

func (uc *POSPredictionUseCase) predictSales(
	ctx context.Context,
	f repository.POSFilter,
	predictionDays int,
	pr *message.Printer,
) (dto.SalesPredictionDTO, error) {
	rows, err := uc.repo.DailySales(ctx, f)
	if err != nil {
		return dto.SalesPredictionDTO{}, err
	}
	if len(rows) == 0 {
		return dto.SalesPredictionDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoSalesData)}, nil
	}

	series := make([]float64, len(rows))
	for i, r := range rows {
		series[i] = r.Total.InexactFloat64()
	}
	slope := forecast.Slope(series)
	daily, total := forecast.Forecast(series, predictionDays)

	return dto.SalesPredictionDTO{
		Status: dto.StatusSuccess,
		SalesPredictionMetrics: &dto.SalesPredictionMetrics{
			CurrentAvgDailySales: forecast.Round2(forecast.Mean(series)),
			PredictedDailySales:  forecast.Round2(daily),
			PredictedTotalSales:  forecast.Round2(total),
			GrowthRatePct:        forecast.Round2(forecast.GrowthRate(series)),
			Trend:                forecast.TrendLabel(slope),
			Confidence:           forecast.Confidence(len(series)),
			DataPoints:           len(series),
		},
	}, nil
}

func (uc *POSPredictionUseCase) predictDemand(
	ctx context.Context,
	f repository.POSFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.ProductDemandDTO, error) {
	rows, err := uc.repo.ItemDemand(ctx, f, posDemandQueryLimit)
	if err != nil {
		return dto.ProductDemandDTO{}, err
	}
	if len(rows) == 0 {
		return dto.ProductDemandDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoProductData)}, nil
	}

	products := make([]dto.ProductForecastDTO, len(rows))
	for i, r := range rows {
		totalQty := r.TotalQty.InexactFloat64()
		dailyAvg := forecast.DailyRate(totalQty, periodDays)
		products[i] = dto.ProductForecastDTO{
			ItemCode:             r.ItemCode,
			ItemName:             r.ItemName,
			HistoricalTotalQty:   forecast.Round2(totalQty),
			DailyAverageDemand:   forecast.Round2(dailyAvg),
			PredictedDemand:      forecast.Round2(dailyAvg * float64(predictionDays)),
			TransactionFrequency: r.Transactions,
			AvgQtyPerTransaction: forecast.Round2(r.AvgQty.InexactFloat64()),
		}
	}

	return dto.ProductDemandDTO{
		Status: dto.StatusSuccess,
		ProductDemandMetrics: &dto.ProductDemandMetrics{
			TopProducts:           head(products, posDemandTopProducts),
			TotalProductsAnalyzed: len(products),
		},
	}, nil
}

// predictProfit resuelve el costo de cada línea con la cascada de fuentes
// (stock ledger → maestro → cero) y agrega por día. El margen previsto
// replica el histórico.
func (uc *POSPredictionUseCase) predictProfit(
	ctx context.Context,
	f repository.POSFilter,
	predictionDays int,
	pr *message.Printer,
) (dto.ProfitPredictionDTO, error) {
	days, err := uc.repo.ProfitDaily(ctx, f)
	if err != nil {
		return dto.ProfitPredictionDTO{}, err
	}
	if len(days) == 0 {
		return dto.ProfitPredictionDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoProfitData)}, nil
	}

	lines, err := uc.repo.LineCosts(ctx, f)
	if err != nil {
		return dto.ProfitPredictionDTO{}, err
	}

	breakdown := forecast.NewCostBreakdown()
	costByDay := make(map[string]float64, len(days))
	for _, ln := range lines {
		unit, src := forecast.ResolveUnitCost(ln.SnapshotRate, ln.ItemValuation, ln.LastPurchaseRate)
		breakdown.Observe(ln.ItemCode, src)
		costByDay[dayKey(ln.PostingDate)] += ln.Qty.Mul(unit).InexactFloat64()
	}

	var totalRevenue, totalCost float64
	profits := make([]float64, len(days))
	for i, d := range days {
		revenue := d.Revenue.InexactFloat64()
		cost := costByDay[dayKey(d.Date)]
		profits[i] = revenue - cost
		totalRevenue += revenue
		totalCost += cost
	}

	n := float64(len(days))
	totalProfit := totalRevenue - totalCost
	avgDailyProfit := forecast.Mean(profits)
	var margin float64
	if totalRevenue > 0 {
		margin = totalProfit / totalRevenue * 100
	}

	predictedProfit := avgDailyProfit * float64(predictionDays)
	predictedRevenue := totalRevenue / n * float64(predictionDays)
	predictedCost := predictedRevenue - predictedProfit

	metrics := &dto.ProfitPredictionMetrics{
		Historical: dto.ProfitFigures{
			Revenue:   forecast.Round2(totalRevenue),
			Cost:      forecast.Round2(totalCost),
			Profit:    forecast.Round2(totalProfit),
			MarginPct: forecast.Round2(margin),
		},
		DailyAverage: dto.ProfitDailyAverageDTO{
			Revenue:      forecast.Round2(totalRevenue / n),
			Cost:         forecast.Round2(totalCost / n),
			Profit:       forecast.Round2(avgDailyProfit),
			MarginPerDay: forecast.Round1(margin),
		},
		Prediction: dto.ProfitFigures{
			Revenue:   forecast.Round2(predictedRevenue),
			Cost:      forecast.Round2(predictedCost),
			Profit:    forecast.Round2(predictedProfit),
			MarginPct: forecast.Round2(margin),
		},
		DataQuality: dto.CostDataQualityDTO{
			LinesAnalyzed:        breakdown.Lines,
			ValuationCoveragePct: forecast.Round2(breakdown.SnapshotCoveragePct()),
			CostSources: dto.CostSourcesDTO{
				StockLedger:   breakdown.BySource[forecast.CostSourceStockLedger],
				ItemValuation: breakdown.BySource[forecast.CostSourceItemValuation],
				LastPurchase:  breakdown.BySource[forecast.CostSourceLastPurchase],
				None:          breakdown.BySource[forecast.CostSourceNone],
			},
			ItemsWithoutCost: breakdown.ItemsWithoutCost(),
		},
		Warnings: costWarnings(breakdown, pr),
	}
	metrics.ProjectLegacy()

	return dto.ProfitPredictionDTO{Status: dto.StatusSuccess, ProfitPredictionMetrics: metrics}, nil
}

func (uc *POSPredictionUseCase) predictCustomers(
	ctx context.Context,
	f repository.POSFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.CustomerPredictionDTO, error) {
	rows, err := uc.repo.CustomerActivity(ctx, f)
	if err != nil {
		return dto.CustomerPredictionDTO{}, err
	}
	if len(rows) == 0 {
		return dto.CustomerPredictionDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoCustomerData)}, nil
	}

	counts := make([]int, len(rows))
	for i, r := range rows {
		counts[i] = r.Transactions
	}
	model := forecast.Retention(counts, periodDays, predictionDays)

	top := make([]dto.TopCustomerDTO, 0, posTopCustomers)
	for _, r := range rows[:min(len(rows), posTopCustomers)] {
		spent := r.TotalSpent.InexactFloat64()
		top = append(top, dto.TopCustomerDTO{
			Customer:            r.Customer,
			CustomerName:        r.CustomerName,
			TransactionCount:    r.Transactions,
			TotalSpent:          forecast.Round2(spent),
			AvgTransactionValue: forecast.Round2(spent / float64(r.Transactions)),
			CustomerType:        forecast.CustomerType(r.Transactions),
		})
	}

	return dto.CustomerPredictionDTO{
		Status: dto.StatusSuccess,
		CustomerPredictionMetrics: &dto.CustomerPredictionMetrics{
			CurrentTotalCustomers:    model.TotalCustomers,
			RepeatCustomers:          model.RepeatCustomers,
			LoyalCustomers:           model.LoyalCustomers,
			RetentionRate:            forecast.Round2(model.RetentionRate),
			PredictedNewCustomers:    model.PredictedNewCustomers,
			PredictedActiveCustomers: model.PredictedActiveCustomers,
			TopCustomers:             top,
		},
	}, nil
}

func (uc *POSPredictionUseCase) predictBestsellers(
	ctx context.Context,
	f repository.POSFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.BestsellerPredictionDTO, error) {
	rows, err := uc.repo.Bestsellers(ctx, f, posBestsellerQueryLimit)
	if err != nil {
		return dto.BestsellerPredictionDTO{}, err
	}
	if len(rows) == 0 {
		return dto.BestsellerPredictionDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoBestsellerData)}, nil
	}

	all := make([]dto.BestsellerForecastDTO, len(rows))
	categories := make(map[string]dto.CategoryPerformanceDTO)
	for i, r := range rows {
		qty := r.TotalQty.InexactFloat64()
		dailySales := forecast.DailyRate(qty, periodDays)
		all[i] = dto.BestsellerForecastDTO{
			Rank:                 i + 1,
			ItemCode:             r.ItemCode,
			ItemName:             r.ItemName,
			ItemGroup:            r.ItemGroup,
			HistoricalQtySold:    forecast.Round2(qty),
			PredictedQtyNeeded:   forecast.Round2(dailySales * float64(predictionDays)),
			DailyAvgSales:        forecast.Round2(dailySales),
			TransactionFrequency: r.Transactions,
			UniqueCustomers:      r.UniqueCustomers,
			AvgPrice:             forecast.Round2(r.AvgPrice.InexactFloat64()),
			RevenueContribution:  forecast.Round2(r.TotalAmount.InexactFloat64()),
			PopularityScore:      forecast.Round2(forecast.PopularityScore(r.Transactions, r.UniqueCustomers, periodDays)),
		}

		cat := categories[r.ItemGroup]
		cat.TotalQty += all[i].HistoricalQtySold
		cat.TotalRevenue += all[i].RevenueContribution
		cat.ItemCount++
		categories[r.ItemGroup] = cat
	}

	return dto.BestsellerPredictionDTO{
		Status: dto.StatusSuccess,
		BestsellerPredictionMetrics: &dto.BestsellerPredictionMetrics{
			TopBestsellers:      head(all, posBestsellerTop),
			AllBestsellers:      all,
			CategoryPerformance: categories,
		},
	}, nil
}

func (uc *POSPredictionUseCase) predictStock(
	ctx context.Context,
	f repository.POSFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.StockPredictionDTO, error) {
	rows, err := uc.repo.SalesByItem(ctx, f, posStockQueryLimit)
	if err != nil {
		return dto.StockPredictionDTO{}, err
	}
	if len(rows) == 0 {
		return dto.StockPredictionDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoStockData)}, nil
	}

	warehouses, err := uc.repo.ProfileWarehouses(ctx, f.Profiles)
	if err != nil {
		return dto.StockPredictionDTO{}, err
	}

	// Sin bodegas mapeadas todo ítem queda con stock 0 (y por tanto crítico).
	balances := map[string]float64{}
	if len(warehouses) > 0 {
		codes := make([]string, len(rows))
		for i, r := range rows {
			codes[i] = r.ItemCode
		}
		raw, err := uc.repo.StockBalances(ctx, codes, warehouses)
		if err != nil {
			return dto.StockPredictionDTO{}, err
		}
		for code, qty := range raw {
			balances[code] = qty.InexactFloat64()
		}
	}

	items := make([]dto.StockForecastDTO, len(rows))
	var critical, low []dto.StockForecastDTO
	for i, r := range rows {
		currentStock := balances[r.ItemCode]
		need := forecast.StockNeeds(r.TotalSold.InexactFloat64(), currentStock, periodDays, predictionDays)

		stockout := need.DaysUntilStockout
		if stockout != forecast.StockoutSentinel {
			stockout = forecast.Round1(stockout)
		}
		items[i] = dto.StockForecastDTO{
			ItemCode:              r.ItemCode,
			ItemName:              r.ItemName,
			UOM:                   r.UOM,
			CurrentStock:          forecast.Round2(currentStock),
			DailySalesRate:        forecast.Round2(need.DailyRate),
			PredictedConsumption:  forecast.Round2(need.PredictedConsumption),
			SafetyStock:           forecast.Round2(need.SafetyStock),
			RecommendedStockLevel: forecast.Round2(need.RecommendedStock),
			ReorderQuantity:       forecast.Round2(need.ReorderQty),
			StockStatus:           need.Status,
			DaysUntilStockout:     stockout,
		}

		switch need.Status {
		case forecast.StatusCritical:
			critical = append(critical, items[i])
		case forecast.StatusLow:
			low = append(low, items[i])
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].DaysUntilStockout < critical[j].DaysUntilStockout
	})
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].DaysUntilStockout < low[j].DaysUntilStockout
	})
	byConsumption := append([]dto.StockForecastDTO(nil), items...)
	sort.SliceStable(byConsumption, func(i, j int) bool {
		return byConsumption[i].PredictedConsumption > byConsumption[j].PredictedConsumption
	})

	return dto.StockPredictionDTO{
		Status: dto.StatusSuccess,
		StockPredictionMetrics: &dto.StockPredictionMetrics{
			CriticalItems: head(critical, posStockTopItems),
			LowStockItems: head(low, posStockTopItems),
			AllItems:      head(byConsumption, posStockAllItems),
			Summary: dto.StockSummaryDTO{
				TotalItemsAnalyzed: len(items),
				CriticalStockCount: len(critical),
				LowStockCount:      len(low),
			},
		},
	}, nil
}

// costWarnings arma las advertencias de calidad de costo: cobertura cero del
// stock ledger e ítems sin costo. La lista de ítems se acota; el detalle
// completo vive en data_quality.items_without_cost.
func costWarnings(b *forecast.CostBreakdown, pr *message.Printer) []dto.WarningDTO {
	var warnings []dto.WarningDTO
	if b.Lines > 0 && b.BySource[forecast.CostSourceStockLedger] == 0 {
		warnings = append(warnings, dto.WarningDTO{
			Code:    "NO_VALUATION_HISTORY",
			Message: pr.Sprintf(i18n.WarnNoValuationHistory),
		})
	}
	if items := b.ItemsWithoutCost(); len(items) > 0 {
		warnings = append(warnings, dto.WarningDTO{
			Code:    "ITEMS_WITHOUT_COST",
			Message: pr.Sprintf(i18n.WarnItemsWithoutCost, len(items)),
			Items:   head(items, warningItemsCap),
		})
	}
	return warnings
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func head[T any](list []T, n int) []T {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
