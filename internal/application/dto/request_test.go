package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/dto"
	"github.com/jhoicas/Analitica-api/internal/domain"
)

var now = time.Date(2026, 3, 15, 17, 42, 0, 0, time.UTC)

func TestNormalize_CompanyObligatorio(t *testing.T) {
	_, err := dto.AnalyticsRequest{}.Normalize(now, dto.PredictionHistoryDays)
	assert.ErrorIs(t, err, domain.ErrMissingCompany)

	_, err = dto.AnalyticsRequest{Company: "   "}.Normalize(now, dto.PredictionHistoryDays)
	assert.ErrorIs(t, err, domain.ErrMissingCompany)
}

func TestNormalize_DefaultsDeFechas(t *testing.T) {
	p, err := dto.AnalyticsRequest{Company: "ACME"}.Normalize(now, dto.PredictionHistoryDays)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-15", p.To.Format("2006-01-02"))
	assert.Equal(t, "2025-12-15", p.From.Format("2006-01-02"))
	assert.Equal(t, dto.DefaultPredictionDays, p.PredictionDays)
}

func TestNormalize_VentanaDeDashboard(t *testing.T) {
	p, err := dto.AnalyticsRequest{Company: "ACME"}.Normalize(now, dto.DashboardHistoryDays)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-13", p.From.Format("2006-01-02"))
}

func TestNormalize_FechasExplicitasYMalformadas(t *testing.T) {
	p, err := dto.AnalyticsRequest{
		Company:  "ACME",
		DateFrom: "2026-01-01",
		DateTo:   "2026-01-31",
	}.Normalize(now, dto.PredictionHistoryDays)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", p.From.Format("2006-01-02"))
	assert.Equal(t, "2026-01-31", p.To.Format("2006-01-02"))

	// Fecha malformada degrada al default, no es error.
	p, err = dto.AnalyticsRequest{Company: "ACME", DateTo: "31/01/2026"}.Normalize(now, dto.PredictionHistoryDays)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", p.To.Format("2006-01-02"))
}

func TestNormalize_PredictionDaysTolerante(t *testing.T) {
	cases := []struct {
		name string
		req  dto.AnalyticsRequest
		want int
	}{
		{"query numérico", dto.AnalyticsRequest{Company: "A", PredictionDays: "45"}, 45},
		{"query basura", dto.AnalyticsRequest{Company: "A", PredictionDays: "abc"}, 30},
		{"body número JSON", dto.AnalyticsRequest{Company: "A", PredictionDaysJSON: json.RawMessage(`15`)}, 15},
		{"body string JSON", dto.AnalyticsRequest{Company: "A", PredictionDaysJSON: json.RawMessage(`"60"`)}, 60},
		{"body basura", dto.AnalyticsRequest{Company: "A", PredictionDaysJSON: json.RawMessage(`{"x":1}`)}, 30},
		{"ausente", dto.AnalyticsRequest{Company: "A"}, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.req.Normalize(now, dto.PredictionHistoryDays)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.PredictionDays)
		})
	}
}

func TestNormalize_Profiles(t *testing.T) {
	// Query string con array JSON codificado.
	p, err := dto.AnalyticsRequest{Company: "A", POSProfiles: `["POS1","POS2"]`}.Normalize(now, 90)
	require.NoError(t, err)
	assert.Equal(t, []string{"POS1", "POS2"}, p.Profiles)

	// Body con array nativo.
	p, err = dto.AnalyticsRequest{Company: "A", POSProfilesJSON: json.RawMessage(`["POS3"]`)}.Normalize(now, 90)
	require.NoError(t, err)
	assert.Equal(t, []string{"POS3"}, p.Profiles)

	// Body con el array doblemente codificado como string.
	p, err = dto.AnalyticsRequest{Company: "A", POSProfilesJSON: json.RawMessage(`"[\"POS4\"]"`)}.Normalize(now, 90)
	require.NoError(t, err)
	assert.Equal(t, []string{"POS4"}, p.Profiles)

	// Malformado: degrada a vacío (el caso de uso resuelve contra la DB).
	p, err = dto.AnalyticsRequest{Company: "A", POSProfiles: `[POS1`}.Normalize(now, 90)
	require.NoError(t, err)
	assert.Nil(t, p.Profiles)

	// Entradas en blanco se descartan.
	p, err = dto.AnalyticsRequest{Company: "A", POSProfiles: `["", "  ", "POS5"]`}.Normalize(now, 90)
	require.NoError(t, err)
	assert.Equal(t, []string{"POS5"}, p.Profiles)
}

func TestPeriodDays_InclusiveEnAmbosExtremos(t *testing.T) {
	p := dto.Params{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 31, p.PeriodDays())

	// Mismo día: 1, nunca 0.
	p.To = p.From
	assert.Equal(t, 1, p.PeriodDays())

	// Rango invertido no divide por cero ni da negativo.
	p.To = p.From.AddDate(0, 0, -5)
	assert.Equal(t, 1, p.PeriodDays())
}

func TestDateRange_Proyeccion(t *testing.T) {
	p := dto.Params{
		From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	r := p.DateRange()
	assert.Equal(t, "2026-02-01", r.From)
	assert.Equal(t, "2026-02-28", r.To)
}
