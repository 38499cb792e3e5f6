// Package forecast contiene los estimadores puros del servicio: tendencia
// lineal, tasa de crecimiento, retención de clientes, necesidades de stock y
// la cascada de fuentes de costo. Ninguna función toca la base de datos.
//
// El modelo es deliberadamente ingenuo (sin estacionalidad ni intervalos de
// confianza); las fórmulas reproducen el comportamiento histórico del
// reporte y no deben "corregirse".
package forecast

import "math"

// Etiquetas de tendencia y confianza expuestas en el contrato JSON.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"

	StatusCritical   = "critical"
	StatusLow        = "low"
	StatusSufficient = "sufficient"

	CustomerLoyal  = "loyal"
	CustomerRepeat = "repeat"
	CustomerNew    = "new"
)

// StockoutSentinel se reporta como days_until_stockout cuando la tasa diaria
// es cero y el agotamiento no es computable.
const StockoutSentinel = 999

// safetyStockFactor es el buffer fijo del 20% sobre el consumo previsto.
const safetyStockFactor = 0.2

// Mean devuelve el promedio aritmético; 0 para una serie vacía.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Slope ajusta un polinomio de primer grado (mínimos cuadrados ordinarios)
// sobre (índice de día, valor) y devuelve la pendiente. Con menos de dos
// puntos no hay tendencia y devuelve 0.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}

// TrendLabel clasifica la pendiente: "up", "down" o "flat".
func TrendLabel(slope float64) string {
	switch {
	case slope > 0:
		return TrendUp
	case slope < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Forecast proyecta la serie diaria: el valor diario previsto es el promedio
// más la pendiente extrapolada un paso más allá de la ventana observada
// (mean + slope×n), y el total es ese diario multiplicado por el horizonte.
// La extrapolación a un solo paso es intencional; no usar el punto medio del
// horizonte.
func Forecast(values []float64, predictionDays int) (daily, total float64) {
	daily = Mean(values) + Slope(values)*float64(len(values))
	total = daily * float64(predictionDays)
	return daily, total
}

// GrowthRate compara el promedio de los últimos 7 días contra los primeros 7:
// (mean(últimos7) − mean(primeros7)) / mean(primeros7) × 100.
// Con menos de 7 puntos devuelve 0. Entre 7 y 13 puntos ambas ventanas se
// solapan; ese solape es parte del contrato.
func GrowthRate(values []float64) float64 {
	if len(values) < 7 {
		return 0
	}
	older := Mean(values[:7])
	if older <= 0 {
		return 0
	}
	recent := Mean(values[len(values)-7:])
	return (recent - older) / older * 100
}

// Confidence etiqueta la serie por cantidad de puntos: >30 high, >14 medium,
// el resto low.
func Confidence(dataPoints int) string {
	switch {
	case dataPoints > 30:
		return ConfidenceHigh
	case dataPoints > 14:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DailyRate reparte una cantidad total sobre los días del período observado.
func DailyRate(total float64, periodDays int) float64 {
	if periodDays <= 0 {
		return 0
	}
	return total / float64(periodDays)
}

// PopularityScore pondera frecuencia de transacciones por alcance de clientes:
// (transacciones × clientes únicos) / días del período.
func PopularityScore(transactions, uniqueCustomers, periodDays int) float64 {
	if periodDays <= 0 {
		return 0
	}
	return float64(transactions*uniqueCustomers) / float64(periodDays)
}

// CustomerType clasifica a un cliente por su número de transacciones:
// loyal (≥5), repeat (>1) o new.
func CustomerType(transactions int) string {
	switch {
	case transactions >= 5:
		return CustomerLoyal
	case transactions > 1:
		return CustomerRepeat
	default:
		return CustomerNew
	}
}

// RetentionModel resume el comportamiento de la base de clientes y su
// proyección. El modelo de activos es aditivo, no compuesto:
// predicted_active = round(total × (1 + retención/100)).
type RetentionModel struct {
	TotalCustomers           int
	RepeatCustomers          int
	LoyalCustomers           int
	RetentionRate            float64 // porcentaje
	PredictedNewCustomers    int
	PredictedActiveCustomers int
}

// Retention calcula el modelo de retención a partir del número de
// transacciones de cada cliente del período.
func Retention(transactionCounts []int, periodDays, predictionDays int) RetentionModel {
	m := RetentionModel{TotalCustomers: len(transactionCounts)}
	for _, c := range transactionCounts {
		if c > 1 {
			m.RepeatCustomers++
		}
		if c >= 5 {
			m.LoyalCustomers++
		}
	}
	if m.TotalCustomers > 0 {
		m.RetentionRate = float64(m.RepeatCustomers) / float64(m.TotalCustomers) * 100
	}
	if periodDays > 0 {
		perDay := float64(m.TotalCustomers) / float64(periodDays)
		m.PredictedNewCustomers = int(math.Round(perDay * float64(predictionDays)))
	}
	m.PredictedActiveCustomers = int(math.Round(float64(m.TotalCustomers) * (1 + m.RetentionRate/100)))
	return m
}

// StockNeed es la proyección de stock de un ítem para el horizonte dado.
type StockNeed struct {
	DailyRate            float64
	PredictedConsumption float64
	SafetyStock          float64
	RecommendedStock     float64
	ReorderQty           float64
	Status               string
	DaysUntilStockout    float64
}

// StockNeeds proyecta el consumo de un ítem y lo contrasta con el stock
// actual. El buffer de seguridad es un 20% fijo del consumo previsto y la
// cantidad a reordenar nunca es negativa.
func StockNeeds(totalSold, currentStock float64, periodDays, predictionDays int) StockNeed {
	rate := DailyRate(totalSold, periodDays)
	consumption := rate * float64(predictionDays)
	safety := consumption * safetyStockFactor
	recommended := consumption + safety

	status := StatusSufficient
	if currentStock < consumption {
		status = StatusCritical
	} else if currentStock < recommended {
		status = StatusLow
	}

	stockout := float64(StockoutSentinel)
	if rate > 0 {
		stockout = currentStock / rate
	}

	return StockNeed{
		DailyRate:            rate,
		PredictedConsumption: consumption,
		SafetyStock:          safety,
		RecommendedStock:     recommended,
		ReorderQty:           math.Max(0, recommended-currentStock),
		Status:               status,
		DaysUntilStockout:    stockout,
	}
}

// Round2 redondea a 2 decimales (cifras monetarias y porcentajes).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 redondea a 1 decimal (conteos de días y márgenes por día).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
