package forecast

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CostSource identifica el escalón de la cascada que resolvió el costo
// unitario de una línea.
type CostSource int

const (
	// CostSourceNone: ningún escalón aportó costo; la línea queda en cero.
	CostSourceNone CostSource = iota
	// CostSourceStockLedger: snapshot de valoración más reciente a la fecha
	// del documento, en la bodega de la línea.
	CostSourceStockLedger
	// CostSourceItemValuation: valuation_rate del maestro de ítems.
	CostSourceItemValuation
	// CostSourceLastPurchase: last_purchase_rate del maestro de ítems.
	CostSourceLastPurchase
)

func (s CostSource) String() string {
	switch s {
	case CostSourceStockLedger:
		return "stock_ledger"
	case CostSourceItemValuation:
		return "item_valuation"
	case CostSourceLastPurchase:
		return "last_purchase"
	default:
		return "none"
	}
}

// ResolveUnitCost aplica la cascada de fuentes de costo en orden de
// prioridad: (1) snapshot del stock ledger, (2) valuation_rate del maestro
// si es > 0, (3) last_purchase_rate del maestro si es > 0, (4) cero.
// Exactamente un escalón resuelve cada línea.
func ResolveUnitCost(snapshot *decimal.Decimal, itemValuation, lastPurchase decimal.Decimal) (decimal.Decimal, CostSource) {
	if snapshot != nil {
		return *snapshot, CostSourceStockLedger
	}
	if itemValuation.IsPositive() {
		return itemValuation, CostSourceItemValuation
	}
	if lastPurchase.IsPositive() {
		return lastPurchase, CostSourceLastPurchase
	}
	return decimal.Zero, CostSourceNone
}

// CostBreakdown acumula la procedencia del costo de cada línea analizada:
// conteo por escalón y el conjunto de ítems que quedaron con costo cero.
type CostBreakdown struct {
	Lines    int
	BySource map[CostSource]int

	zeroCost map[string]struct{}
}

// NewCostBreakdown crea un acumulador vacío.
func NewCostBreakdown() *CostBreakdown {
	return &CostBreakdown{
		BySource: make(map[CostSource]int),
		zeroCost: make(map[string]struct{}),
	}
}

// Observe registra la resolución de una línea.
func (b *CostBreakdown) Observe(itemCode string, src CostSource) {
	b.Lines++
	b.BySource[src]++
	if src == CostSourceNone {
		b.zeroCost[itemCode] = struct{}{}
	}
}

// SnapshotCoveragePct devuelve el porcentaje de líneas resueltas por el
// escalón 1 (stock ledger). 0 si no se analizó ninguna línea.
func (b *CostBreakdown) SnapshotCoveragePct() float64 {
	if b.Lines == 0 {
		return 0
	}
	return float64(b.BySource[CostSourceStockLedger]) / float64(b.Lines) * 100
}

// ItemsWithoutCost devuelve los códigos de ítem con costo cero, ordenados
// para que la salida sea determinista.
func (b *CostBreakdown) ItemsWithoutCost() []string {
	items := make([]string, 0, len(b.zeroCost))
	for code := range b.zeroCost {
		items = append(items, code)
	}
	sort.Strings(items)
	return items
}
