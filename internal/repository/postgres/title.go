// Package postgres implements the title repository against the storefront's
// relational schema (titles and title_languages).
package postgres

import (
	"context"
	"fmt"

	"github.com/jaumet/avook-catalog/pkg/database"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// TitleRepository reads titles from PostgreSQL.
type TitleRepository struct {
	pool database.DBTX
}

// NewTitleRepository builds a repository on pool.
func NewTitleRepository(pool database.DBTX) *TitleRepository {
	return &TitleRepository{pool: pool}
}

// ListTitles returns all titles with their language codes aggregated per
// row, ordered by id so the rendered catalog keeps the source order.
func (r *TitleRepository) ListTitles(ctx context.Context) ([]domain.RawTitle, error) {
	query := `
		SELECT t.id, t.machine_name, t.human_name, t.description,
		       t.levels, t.ages, t.collection, t.duration,
		       COALESCE(array_remove(array_agg(tl.language ORDER BY tl.language), NULL), '{}') AS languages
		FROM titles t
		LEFT JOIN title_languages tl ON tl.title_id = t.id
		GROUP BY t.id, t.machine_name, t.human_name, t.description,
		         t.levels, t.ages, t.collection, t.duration
		ORDER BY t.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	var titles []domain.RawTitle
	for rows.Next() {
		var (
			t      domain.RawTitle
			levels string
			langs  []string
		)
		if err := rows.Scan(
			&t.ID, &t.MachineName, &t.HumanName, &t.Description,
			&levels, &t.Ages, &t.Collection, &t.Duration, &langs,
		); err != nil {
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		t.Levels = domain.SplitList(levels)
		t.Languages = langs
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate title rows: %w", err)
	}

	return titles, nil
}
