// Package i18n centraliza los mensajes dirigidos al usuario final.
// La clave de cada mensaje es su texto en inglés; el catálogo aporta la
// traducción al español (idioma por defecto del producto).
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Claves de mensajes. La clave funciona también como format string de fallback.
const (
	CompanyRequired  = "Parameter 'company' is required."
	NoActiveProfiles = "No active POS Profile for this company."
	PredictionPeriod = "%d days ahead"

	NoSalesData      = "No sales data for this period."
	NoProductData    = "No product data for this period."
	NoProfitData     = "No profit data for this period."
	NoCustomerData   = "No customer data for this period."
	NoBestsellerData = "No bestseller data for this period."
	NoStockData      = "No stock data for this period."
	NoPaymentData    = "No payment data for this period."

	WarnNoValuationHistory = "No stock ledger valuation was found for any line in the period; all costs come from item master fallbacks."
	WarnItemsWithoutCost   = "%d item(s) resolved to zero cost; profit equals revenue for those lines."

	SalesCostNote = "Cost is estimated from the item valuation rate; lines without one assume 65%% of the selling price."
)

var translations = map[string]string{
	CompanyRequired:  "El parámetro 'company' es obligatorio.",
	NoActiveProfiles: "No hay POS Profile activos para esta company.",
	PredictionPeriod: "%d días hacia adelante",

	NoSalesData:      "No hay datos de ventas para este período.",
	NoProductData:    "No hay datos de productos para este período.",
	NoProfitData:     "No hay datos de utilidad para este período.",
	NoCustomerData:   "No hay datos de clientes para este período.",
	NoBestsellerData: "No hay datos de productos más vendidos para este período.",
	NoStockData:      "No hay datos de stock para este período.",
	NoPaymentData:    "No hay datos de cobros para este período.",

	WarnNoValuationHistory: "No se encontró valoración en el stock ledger para ninguna línea del período; todos los costos provienen de los fallbacks del maestro de ítems.",
	WarnItemsWithoutCost:   "%d ítem(s) quedaron con costo cero; la utilidad equivale al ingreso en esas líneas.",

	SalesCostNote: "El costo se estima con el valuation rate del ítem; las líneas sin uno asumen el 65%% del precio de venta.",
}

var (
	supported = []language.Tag{language.Spanish, language.English}
	matcher   = language.NewMatcher(supported)
	messages  *catalog.Builder
)

func init() {
	messages = catalog.NewBuilder(catalog.Fallback(language.English))
	for key, es := range translations {
		if err := messages.SetString(language.Spanish, key, es); err != nil {
			panic("i18n: " + err.Error())
		}
		if err := messages.SetString(language.English, key, key); err != nil {
			panic("i18n: " + err.Error())
		}
	}
}

// Printer devuelve el printer adecuado para un header Accept-Language.
// Con header vacío o no reconocido se usa español.
func Printer(acceptLanguage string) *message.Printer {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	return message.NewPrinter(tag, message.Catalog(messages))
}
