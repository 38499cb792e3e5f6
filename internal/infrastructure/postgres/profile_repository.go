package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo resuelve los POS Profiles por defecto de una company.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository construye el adaptador de profiles.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// ActiveProfiles primeros `limit` profiles no deshabilitados de la company.
// El orden por modified DESC replica el orden por defecto del sistema origen.
func (r *ProfileRepo) ActiveProfiles(ctx context.Context, company string, limit int) ([]string, error) {
	const query = `
	SELECT name
	FROM pos_profiles
	WHERE company = $1
	  AND disabled = FALSE
	ORDER BY modified DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, company, limit)
	if err != nil {
		return nil, fmt.Errorf("profiles.ActiveProfiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("profiles.ActiveProfiles scan: %w", err)
		}
		profiles = append(profiles, name)
	}
	return profiles, rows.Err()
}
