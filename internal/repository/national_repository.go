package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// NationalRepository handles database reads for the state/national museum
// visit summaries used as a comparison baseline.
type NationalRepository struct {
	db *sql.DB
}

// NewNationalRepository creates a new national repository
func NewNationalRepository(db *sql.DB) *NationalRepository {
	return &NationalRepository{db: db}
}

// GetVisits retrieves national museum visit summaries, optionally restricted
// to a set of month names.
func (r *NationalRepository) GetVisits(months []string) ([]models.NationalMuseumVisit, error) {
	query := `SELECT museum_id, visit_month, total_visitors FROM state_national_museum_visits`

	var args []interface{}
	if len(months) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(months)), ",")
		query += " WHERE visit_month IN (" + placeholders + ")"
		for _, m := range months {
			args = append(args, m)
		}
	}
	query += " ORDER BY museum_id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query national museum visits: %w", err)
	}
	defer rows.Close()

	var visits []models.NationalMuseumVisit
	for rows.Next() {
		var v models.NationalMuseumVisit
		if err := rows.Scan(&v.MuseumID, &v.VisitMonth, &v.TotalVisitors); err != nil {
			return nil, fmt.Errorf("failed to scan national museum visit: %w", err)
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

// TotalsByMonth sums national visitor counts per month.
func (r *NationalRepository) TotalsByMonth(months []string) (map[string]int, error) {
	visits, err := r.GetVisits(months)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, v := range visits {
		totals[v.VisitMonth] += v.TotalVisitors
	}
	return totals, nil
}
