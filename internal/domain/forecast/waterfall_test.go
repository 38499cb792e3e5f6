package forecast_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Analitica-api/internal/domain/forecast"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveUnitCost_PrioridadDeEscalones(t *testing.T) {
	snapshot := dec("8.50")

	// Escalón 1: el snapshot gana aunque el maestro tenga valores.
	cost, src := forecast.ResolveUnitCost(&snapshot, dec("9"), dec("7"))
	assert.True(t, cost.Equal(dec("8.50")))
	assert.Equal(t, forecast.CostSourceStockLedger, src)

	// Escalón 2: sin snapshot, valuation_rate positivo.
	cost, src = forecast.ResolveUnitCost(nil, dec("9"), dec("7"))
	assert.True(t, cost.Equal(dec("9")))
	assert.Equal(t, forecast.CostSourceItemValuation, src)

	// Escalón 3: valuation_rate en cero cae al last_purchase_rate.
	cost, src = forecast.ResolveUnitCost(nil, decimal.Zero, dec("7"))
	assert.True(t, cost.Equal(dec("7")))
	assert.Equal(t, forecast.CostSourceLastPurchase, src)

	// Escalón 4: nada aporta costo.
	cost, src = forecast.ResolveUnitCost(nil, decimal.Zero, decimal.Zero)
	assert.True(t, cost.IsZero())
	assert.Equal(t, forecast.CostSourceNone, src)
}

func TestResolveUnitCost_SnapshotEnCeroSigueSiendoEscalonUno(t *testing.T) {
	// Un snapshot existente con valoración 0 es un dato, no una ausencia.
	zero := decimal.Zero
	cost, src := forecast.ResolveUnitCost(&zero, dec("9"), dec("7"))
	assert.True(t, cost.IsZero())
	assert.Equal(t, forecast.CostSourceStockLedger, src)
}

func TestCostBreakdown_ConteosYCobertura(t *testing.T) {
	b := forecast.NewCostBreakdown()
	b.Observe("A", forecast.CostSourceStockLedger)
	b.Observe("A", forecast.CostSourceStockLedger)
	b.Observe("B", forecast.CostSourceItemValuation)
	b.Observe("C", forecast.CostSourceNone)

	assert.Equal(t, 4, b.Lines)
	assert.Equal(t, 2, b.BySource[forecast.CostSourceStockLedger])
	assert.Equal(t, 1, b.BySource[forecast.CostSourceItemValuation])
	assert.Equal(t, 1, b.BySource[forecast.CostSourceNone])
	assert.InDelta(t, 50, b.SnapshotCoveragePct(), 1e-9)
}

func TestCostBreakdown_ItemsSinCostoOrdenadosYSinDuplicados(t *testing.T) {
	b := forecast.NewCostBreakdown()
	b.Observe("ZETA", forecast.CostSourceNone)
	b.Observe("ALFA", forecast.CostSourceNone)
	b.Observe("ZETA", forecast.CostSourceNone)
	b.Observe("MEDIO", forecast.CostSourceLastPurchase)

	assert.Equal(t, []string{"ALFA", "ZETA"}, b.ItemsWithoutCost())
}

func TestCostBreakdown_Vacio(t *testing.T) {
	b := forecast.NewCostBreakdown()
	assert.Equal(t, 0.0, b.SnapshotCoveragePct())
	assert.Empty(t, b.ItemsWithoutCost())
}

func TestCostSource_String(t *testing.T) {
	assert.Equal(t, "stock_ledger", forecast.CostSourceStockLedger.String())
	assert.Equal(t, "item_valuation", forecast.CostSourceItemValuation.String())
	assert.Equal(t, "last_purchase", forecast.CostSourceLastPurchase.String())
	assert.Equal(t, "none", forecast.CostSourceNone.String())
}
