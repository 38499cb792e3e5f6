package analytics

import (
	"context"
	"fmt"

	"golang.org/x/text/message"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain/forecast"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
	"github.com/jhoicas/Analitica-api/pkg/i18n"
)

// Cortes de la familia Sales Invoice.
const (
	siDemandQueryLimit     = 50
	siDemandTopProducts    = 20
	siBestsellerQueryLimit = 30
	siBestsellerTop        = 15
	siTopCustomers         = 15
)

// siCostFallbackFactor: las líneas sin valuation rate asumen este porcentaje
// del precio de venta como costo, igual que los días sin líneas costeadas.
const siCostFallbackFactor = 0.65

// SalesPredictionUseCase arma la respuesta de predicciones sobre facturas de
// venta, filtrable por customer_group y territory.
type SalesPredictionUseCase struct {
	repo repository.SalesAnalyticsRepository
}

// NewSalesPredictionUseCase construye el caso de uso.
func NewSalesPredictionUseCase(repo repository.SalesAnalyticsRepository) *SalesPredictionUseCase {
	return &SalesPredictionUseCase{repo: repo}
}

// GetPredictions ejecuta los seis tópicos en paralelo y ensambla el envelope.
func (uc *SalesPredictionUseCase) GetPredictions(
	ctx context.Context,
	p dto.Params,
	pr *message.Printer,
) (*dto.SalesPredictionsDTO, error) {
	f := repository.SalesFilter{
		Company:       p.Company,
		CustomerGroup: p.CustomerGroup,
		Territory:     p.Territory,
		From:          p.From,
		To:            p.To,
	}
	periodDays := p.PeriodDays()

	type revenueResult struct {
		block dto.SalesRevenueDTO
		err   error
	}
	type demandResult struct {
		block dto.SalesDemandDTO
		err   error
	}
	type profitResult struct {
		block dto.SalesProfitDTO
		err   error
	}
	type customerResult struct {
		block dto.CustomerAnalysisDTO
		err   error
	}
	type bestsellerResult struct {
		block dto.SalesBestsellerDTO
		err   error
	}
	type paymentResult struct {
		block dto.PaymentPredictionDTO
		err   error
	}

	revenueCh := make(chan revenueResult, 1)
	demandCh := make(chan demandResult, 1)
	profitCh := make(chan profitResult, 1)
	customerCh := make(chan customerResult, 1)
	bestsellerCh := make(chan bestsellerResult, 1)
	paymentCh := make(chan paymentResult, 1)

	go func() {
		block, err := uc.predictRevenue(ctx, f, p.PredictionDays, pr)
		revenueCh <- revenueResult{block, err}
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
		block, err := uc.analyzeCustomers(ctx, f, periodDays, p.PredictionDays, pr)
		customerCh <- customerResult{block, err}
	}()
	go func() {
		block, err := uc.predictBestsellers(ctx, f, periodDays, p.PredictionDays, pr)
		bestsellerCh <- bestsellerResult{block, err}
	}()
	go func() {
		block, err := uc.predictPayment(ctx, f, p.PredictionDays, pr)
		paymentCh <- paymentResult{block, err}
	}()

	revenue := <-revenueCh
	demand := <-demandCh
	profit := <-profitCh
	customers := <-customerCh
	bestsellers := <-bestsellerCh
	payment := <-paymentCh

	if revenue.err != nil {
		return nil, fmt.Errorf("predicciones si: revenue: %w", revenue.err)
	}
	if demand.err != nil {
		return nil, fmt.Errorf("predicciones si: demanda: %w", demand.err)
	}
	if profit.err != nil {
		return nil, fmt.Errorf("predicciones si: utilidad: %w", profit.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("predicciones si: clientes: %w", customers.err)
	}
	if bestsellers.err != nil {
		return nil, fmt.Errorf("predicciones si: más vendidos: %w", bestsellers.err)
	}
	if payment.err != nil {
		return nil, fmt.Errorf("predicciones si: cobranza: %w", payment.err)
	}

	return &dto.SalesPredictionsDTO{
		Company:          p.Company,
		Filters:          dto.SalesFiltersDTO{CustomerGroup: p.CustomerGroup, Territory: p.Territory},
		DateRange:        p.DateRange(),
		PredictionPeriod: pr.Sprintf(i18n.PredictionPeriod, p.PredictionDays),
		Sales:            revenue.block,
		ProductDemand:    demand.block,
		Profit:           profit.block,
		Customers:        customers.block,
		Bestsellers:      bestsellers.block,
		Payment:          payment.block,
	}, nil
}

func (uc *SalesPredictionUseCase) predictRevenue(
	ctx context.Context,
	f repository.SalesFilter,
	predictionDays int,
	pr *message.Printer,
) (dto.SalesRevenueDTO, error) {
	rows, err := uc.repo.DailyRevenue(ctx, f)
	if err != nil {
		return dto.SalesRevenueDTO{}, err
	}
	if len(rows) == 0 {
		return dto.SalesRevenueDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoSalesData)}, nil
	}

	series := make([]float64, len(rows))
	var totalSales, totalOutstanding, totalInvoices float64
	for i, r := range rows {
		series[i] = r.Total.InexactFloat64()
		totalSales += series[i]
		totalOutstanding += r.Outstanding.InexactFloat64()
		totalInvoices += float64(r.Invoices)
	}

	slope := forecast.Slope(series)
	daily, total := forecast.Forecast(series, predictionDays)
	avgDailyInvoices := totalInvoices / float64(len(rows))

	var avgInvoiceValue, collectionRate float64
	if totalInvoices > 0 {
		avgInvoiceValue = totalSales / totalInvoices
	}
	if totalSales > 0 {
		collectionRate = (1 - totalOutstanding/totalSales) * 100
	}

	return dto.SalesRevenueDTO{
		Status: dto.StatusSuccess,
		SalesRevenueMetrics: &dto.SalesRevenueMetrics{
			CurrentTotalSales:      forecast.Round2(totalSales),
			CurrentAvgDailySales:   forecast.Round2(forecast.Mean(series)),
			CurrentTotalInvoices:   int(totalInvoices),
			CurrentAvgInvoiceValue: forecast.Round2(avgInvoiceValue),
			PredictedDailySales:    forecast.Round2(daily),
			PredictedTotalSales:    forecast.Round2(total),
			PredictedInvoiceCount:  int(avgDailyInvoices * float64(predictionDays)),
			GrowthRatePct:          forecast.Round2(forecast.GrowthRate(series)),
			Trend:                  forecast.TrendLabel(slope),
			TotalOutstanding:       forecast.Round2(totalOutstanding),
			CollectionRate:         forecast.Round2(collectionRate),
			Confidence:             forecast.Confidence(len(series)),
			DataPoints:             len(series),
		},
	}, nil
}

func (uc *SalesPredictionUseCase) predictDemand(
	ctx context.Context,
	f repository.SalesFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.SalesDemandDTO, error) {
	rows, err := uc.repo.ItemDemand(ctx, f, siDemandQueryLimit)
	if err != nil {
		return dto.SalesDemandDTO{}, err
	}
	if len(rows) == 0 {
		return dto.SalesDemandDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoProductData)}, nil
	}

	products := make([]dto.SalesProductForecastDTO, len(rows))
	for i, r := range rows {
		totalQty := r.TotalQty.InexactFloat64()
		dailyAvg := forecast.DailyRate(totalQty, periodDays)
		products[i] = dto.SalesProductForecastDTO{
			ItemCode:           r.ItemCode,
			ItemName:           r.ItemName,
			ItemGroup:          r.ItemGroup,
			HistoricalTotalQty: forecast.Round2(totalQty),
			DailyAverageDemand: forecast.Round2(dailyAvg),
			PredictedDemand:    forecast.Round2(dailyAvg * float64(predictionDays)),
			InvoiceFrequency:   r.Invoices,
			AvgQtyPerInvoice:   forecast.Round2(r.AvgQty.InexactFloat64()),
			AvgRate:            forecast.Round2(r.AvgRate.InexactFloat64()),
			TotalRevenue:       forecast.Round2(r.TotalAmount.InexactFloat64()),
		}
	}

	return dto.SalesDemandDTO{
		Status: dto.StatusSuccess,
		SalesDemandMetrics: &dto.SalesDemandMetrics{
			TopProducts:           head(products, siDemandTopProducts),
			TotalProductsAnalyzed: len(products),
		},
	}, nil
}

// predictProfit estima el costo con el maestro de ítems resuelto en SQL;
// los días sin líneas costeadas asumen el fallback del 65%.
func (uc *SalesPredictionUseCase) predictProfit(
	ctx context.Context,
	f repository.SalesFilter,
	predictionDays int,
	pr *message.Printer,
) (dto.SalesProfitDTO, error) {
	days, err := uc.repo.ProfitDaily(ctx, f)
	if err != nil {
		return dto.SalesProfitDTO{}, err
	}
	if len(days) == 0 {
		return dto.SalesProfitDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoProfitData)}, nil
	}

	costs, err := uc.repo.DailyCosts(ctx, f)
	if err != nil {
		return dto.SalesProfitDTO{}, err
	}
	costByDay := make(map[string]float64, len(costs))
	for _, c := range costs {
		costByDay[dayKey(c.Date)] = c.EstimatedCost.InexactFloat64()
	}

	var totalRevenue, totalCost, totalTaxes, totalDiscount float64
	profits := make([]float64, len(days))
	for i, d := range days {
		revenue := d.Revenue.InexactFloat64()
		cost, ok := costByDay[dayKey(d.Date)]
		if !ok {
			cost = revenue * siCostFallbackFactor
		}
		profits[i] = revenue - cost
		totalRevenue += revenue
		totalCost += cost
		totalTaxes += d.Taxes.InexactFloat64()
		totalDiscount += d.Discount.InexactFloat64()
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

	return dto.SalesProfitDTO{
		Status: dto.StatusSuccess,
		SalesProfitMetrics: &dto.SalesProfitMetrics{
			CurrentTotalRevenue:   forecast.Round2(totalRevenue),
			CurrentTotalCost:      forecast.Round2(totalCost),
			CurrentTotalProfit:    forecast.Round2(totalProfit),
			CurrentProfitMargin:   forecast.Round2(margin),
			CurrentTotalTaxes:     forecast.Round2(totalTaxes),
			CurrentTotalDiscount:  forecast.Round2(totalDiscount),
			AvgDailyProfit:        forecast.Round2(avgDailyProfit),
			PredictedTotalRevenue: forecast.Round2(predictedRevenue),
			PredictedTotalCost:    forecast.Round2(predictedCost),
			PredictedTotalProfit:  forecast.Round2(predictedProfit),
			PredictedProfitMargin: forecast.Round2(margin),
			Note:                  pr.Sprintf(i18n.SalesCostNote),
		},
	}, nil
}

func (uc *SalesPredictionUseCase) analyzeCustomers(
	ctx context.Context,
	f repository.SalesFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.CustomerAnalysisDTO, error) {
	rows, err := uc.repo.CustomerActivity(ctx, f)
	if err != nil {
		return dto.CustomerAnalysisDTO{}, err
	}
	if len(rows) == 0 {
		return dto.CustomerAnalysisDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoCustomerData)}, nil
	}

	counts := make([]int, len(rows))
	var totalRevenue, totalOutstanding float64
	for i, r := range rows {
		counts[i] = r.Invoices
		totalRevenue += r.TotalSpent.InexactFloat64()
		totalOutstanding += r.Outstanding.InexactFloat64()
	}
	model := forecast.Retention(counts, periodDays, predictionDays)

	var collectionEfficiency float64
	if totalRevenue > 0 {
		collectionEfficiency = (totalRevenue - totalOutstanding) / totalRevenue * 100
	}

	top := make([]dto.SalesTopCustomerDTO, 0, siTopCustomers)
	for _, r := range rows[:min(len(rows), siTopCustomers)] {
		spent := r.TotalSpent.InexactFloat64()
		outstanding := r.Outstanding.InexactFloat64()
		var paymentScore float64
		if spent > 0 {
			paymentScore = (spent - outstanding) / spent * 100
		}
		top = append(top, dto.SalesTopCustomerDTO{
			Customer:        r.Customer,
			CustomerName:    r.CustomerName,
			CustomerGroup:   r.CustomerGroup,
			Territory:       r.Territory,
			InvoiceCount:    r.Invoices,
			TotalSpent:      forecast.Round2(spent),
			Outstanding:     forecast.Round2(outstanding),
			AvgInvoiceValue: forecast.Round2(r.AvgInvoice.InexactFloat64()),
			PaymentScore:    forecast.Round2(paymentScore),
			CustomerType:    forecast.CustomerType(r.Invoices),
		})
	}

	return dto.CustomerAnalysisDTO{
		Status: dto.StatusSuccess,
		CustomerAnalysisMetrics: &dto.CustomerAnalysisMetrics{
			CurrentTotalCustomers:    model.TotalCustomers,
			RepeatCustomers:          model.RepeatCustomers,
			LoyalCustomers:           model.LoyalCustomers,
			RetentionRate:            forecast.Round2(model.RetentionRate),
			CollectionEfficiency:     forecast.Round2(collectionEfficiency),
			PredictedNewCustomers:    model.PredictedNewCustomers,
			PredictedActiveCustomers: model.PredictedActiveCustomers,
			TopCustomers:             top,
		},
	}, nil
}

func (uc *SalesPredictionUseCase) predictBestsellers(
	ctx context.Context,
	f repository.SalesFilter,
	periodDays, predictionDays int,
	pr *message.Printer,
) (dto.SalesBestsellerDTO, error) {
	rows, err := uc.repo.Bestsellers(ctx, f, siBestsellerQueryLimit)
	if err != nil {
		return dto.SalesBestsellerDTO{}, err
	}
	if len(rows) == 0 {
		return dto.SalesBestsellerDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoBestsellerData)}, nil
	}

	all := make([]dto.SalesBestsellerForecastDTO, len(rows))
	for i, r := range rows {
		qty := r.TotalQty.InexactFloat64()
		dailySales := forecast.DailyRate(qty, periodDays)
		all[i] = dto.SalesBestsellerForecastDTO{
			Rank:                i + 1,
			ItemCode:            r.ItemCode,
			ItemName:            r.ItemName,
			ItemGroup:           r.ItemGroup,
			HistoricalQtySold:   forecast.Round2(qty),
			PredictedQtyNeeded:  forecast.Round2(dailySales * float64(predictionDays)),
			DailyAvgSales:       forecast.Round2(dailySales),
			InvoiceFrequency:    r.Transactions,
			UniqueCustomers:     r.UniqueCustomers,
			AvgPrice:            forecast.Round2(r.AvgPrice.InexactFloat64()),
			RevenueContribution: forecast.Round2(r.TotalAmount.InexactFloat64()),
			PopularityScore:     forecast.Round2(forecast.PopularityScore(r.Transactions, r.UniqueCustomers, periodDays)),
		}
	}

	return dto.SalesBestsellerDTO{
		Status: dto.StatusSuccess,
		SalesBestsellerMetrics: &dto.SalesBestsellerMetrics{
			TopBestsellers: head(all, siBestsellerTop),
			AllBestsellers: all,
		},
	}, nil
}

// predictPayment proyecta facturación y cobro linealmente. La tasa prevista
// replica la histórica; el saldo previsto se deriva por diferencia.
func (uc *SalesPredictionUseCase) predictPayment(
	ctx context.Context,
	f repository.SalesFilter,
	predictionDays int,
	pr *message.Printer,
) (dto.PaymentPredictionDTO, error) {
	rows, err := uc.repo.PaymentDaily(ctx, f)
	if err != nil {
		return dto.PaymentPredictionDTO{}, err
	}
	if len(rows) == 0 {
		return dto.PaymentPredictionDTO{Status: dto.StatusNoData, Message: pr.Sprintf(i18n.NoPaymentData)}, nil
	}

	var totalInvoiced, totalOutstanding float64
	for _, r := range rows {
		totalInvoiced += r.Invoiced.InexactFloat64()
		totalOutstanding += r.Outstanding.InexactFloat64()
	}
	totalCollected := totalInvoiced - totalOutstanding

	var collectionRate float64
	if totalInvoiced > 0 {
		collectionRate = totalCollected / totalInvoiced * 100
	}
	n := float64(len(rows))
	avgDailyInvoiced := totalInvoiced / n
	avgDailyCollection := totalCollected / n

	predictedInvoiced := avgDailyInvoiced * float64(predictionDays)
	predictedCollection := avgDailyCollection * float64(predictionDays)

	buckets, err := uc.repo.AgingBuckets(ctx, f)
	if err != nil {
		return dto.PaymentPredictionDTO{}, err
	}
	aging := make([]dto.AgingBucketDTO, len(buckets))
	for i, b := range buckets {
		aging[i] = dto.AgingBucketDTO{
			Bucket:       b.Bucket,
			InvoiceCount: b.Invoices,
			Outstanding:  forecast.Round2(b.Outstanding.InexactFloat64()),
		}
	}

	return dto.PaymentPredictionDTO{
		Status: dto.StatusSuccess,
		PaymentPredictionMetrics: &dto.PaymentPredictionMetrics{
			CurrentTotalInvoiced:    forecast.Round2(totalInvoiced),
			CurrentTotalCollected:   forecast.Round2(totalCollected),
			CurrentTotalOutstanding: forecast.Round2(totalOutstanding),
			CurrentCollectionRate:   forecast.Round2(collectionRate),
			AvgDailyInvoiced:        forecast.Round2(avgDailyInvoiced),
			AvgDailyCollection:      forecast.Round2(avgDailyCollection),
			PredictedInvoiced:       forecast.Round2(predictedInvoiced),
			PredictedCollection:     forecast.Round2(predictedCollection),
			PredictedOutstanding:    forecast.Round2(predictedInvoiced - predictedCollection),
			PredictedCollectionRate: forecast.Round2(collectionRate),
			AgingAnalysis:           aging,
		},
	}, nil
}
