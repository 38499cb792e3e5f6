package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain"
)

// Ventanas por defecto del rango histórico y del horizonte de predicción.
const (
	DefaultPredictionDays = 30
	PredictionHistoryDays = 90 // endpoints de predicción miran 90 días atrás
	DashboardHistoryDays  = 30 // dashboards miran 30 días atrás
	DefaultProfileLimit   = 3  // profiles a resolver cuando no se envían
)

// AnalyticsRequest parámetros crudos de cualquiera de los endpoints. Se
// llena dos veces: primero desde el query string (tags `query`) y, si allí
// no venía company, desde el body JSON (tags `json`). Los campos *JSON
// admiten tanto el tipo nativo como su versión codificada en string.
type AnalyticsRequest struct {
	Company        string `query:"company" json:"company"`
	CustomerGroup  string `query:"customer_group" json:"customer_group"`
	Territory      string `query:"territory" json:"territory"`
	DateFrom       string `query:"date_from" json:"date_from"`
	DateTo         string `query:"date_to" json:"date_to"`
	POSProfiles    string `query:"pos_profiles" json:"-"`
	PredictionDays string `query:"prediction_days" json:"-"`

	POSProfilesJSON    json.RawMessage `query:"-" json:"pos_profiles"`
	PredictionDaysJSON json.RawMessage `query:"-" json:"prediction_days"`
}

// Params es el conjunto canónico de parámetros tras aplicar defaults.
// Profiles puede quedar vacío: el caso de uso lo resuelve contra la DB.
type Params struct {
	Company        string
	Profiles       []string
	CustomerGroup  string
	Territory      string
	From           time.Time
	To             time.Time
	PredictionDays int
}

// Normalize valida y aplica defaults sobre la petición cruda.
// Reglas:
//   - company es obligatorio; sin él retorna domain.ErrMissingCompany.
//   - date_to por defecto es hoy; date_from, `historyDays` días atrás.
//   - prediction_days tolera número o string; cualquier fallo de parseo cae
//     silenciosamente en 30.
//   - pos_profiles acepta array JSON nativo o string con un array JSON
//     codificado; si está malformado se descarta sin error.
func (r AnalyticsRequest) Normalize(now time.Time, historyDays int) (Params, error) {
	company := strings.TrimSpace(r.Company)
	if company == "" {
		return Params{}, domain.ErrMissingCompany
	}

	today := dateOnly(now)
	to := parseDateOr(r.DateTo, today)
	from := parseDateOr(r.DateFrom, today.AddDate(0, 0, -historyDays))

	return Params{
		Company:        company,
		Profiles:       r.profiles(),
		CustomerGroup:  strings.TrimSpace(r.CustomerGroup),
		Territory:      strings.TrimSpace(r.Territory),
		From:           from,
		To:             to,
		PredictionDays: r.predictionDays(),
	}, nil
}

// PeriodDays días calendario del rango observado, inclusive en ambos
// extremos (mínimo 1).
func (p Params) PeriodDays() int {
	days := int(p.To.Sub(p.From).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DateRange proyección del rango al contrato JSON.
func (p Params) DateRange() DateRangeDTO {
	return DateRangeDTO{
		From: p.From.Format("2006-01-02"),
		To:   p.To.Format("2006-01-02"),
	}
}

func (r AnalyticsRequest) predictionDays() int {
	if len(r.PredictionDaysJSON) > 0 {
		var n int
		if err := json.Unmarshal(r.PredictionDaysJSON, &n); err == nil {
			return n
		}
		var s string
		if err := json.Unmarshal(r.PredictionDaysJSON, &s); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n
			}
		}
		return DefaultPredictionDays
	}
	if s := strings.TrimSpace(r.PredictionDays); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return DefaultPredictionDays
}

func (r AnalyticsRequest) profiles() []string {
	if len(r.POSProfilesJSON) > 0 {
		var list []string
		if err := json.Unmarshal(r.POSProfilesJSON, &list); err == nil {
			return compact(list)
		}
		// Doble codificación: el body traía el array como string JSON.
		var s string
		if err := json.Unmarshal(r.POSProfilesJSON, &s); err == nil {
			return decodeProfileList(s)
		}
		return nil
	}
	return decodeProfileList(r.POSProfiles)
}

func decodeProfileList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil
	}
	return compact(list)
}

func compact(list []string) []string {
	out := list[:0]
	for _, p := range list {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseDateOr(s string, def time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return def
	}
	return t
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
