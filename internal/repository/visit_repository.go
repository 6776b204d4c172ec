package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// timeLayout is the storage format for entry_time.
const timeLayout = "2006-01-02 15:04:05"

// VisitRepository handles database reads for FirenzeCard swipe logs.
type VisitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// GetVisits retrieves swipe logs, optionally restricted to a date window or a
// single museum, ordered by entry time ascending.
func (r *VisitRepository) GetVisits(filter models.VisitFilter) ([]models.VisitRecord, error) {
	query := `SELECT id, user_id, museum_id, museum_name, entry_time, total_adults, minors
		FROM firenze_card_logs`

	var conditions []string
	var args []interface{}

	if !filter.Window.Start.IsZero() {
		conditions = append(conditions, "entry_time >= ?")
		args = append(args, filter.Window.Start.Format(timeLayout))
	}
	if !filter.Window.End.IsZero() {
		// End is inclusive at day granularity.
		end := filter.Window.End.AddDate(0, 0, 1)
		conditions = append(conditions, "entry_time < ?")
		args = append(args, end.Format(timeLayout))
	}
	if filter.MuseumID > 0 {
		conditions = append(conditions, "museum_id = ?")
		args = append(args, filter.MuseumID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_time ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []models.VisitRecord
	for rows.Next() {
		var v models.VisitRecord
		var userID sql.NullString
		var entryTime string

		if err := rows.Scan(&v.ID, &userID, &v.MuseumID, &v.MuseumName, &entryTime, &v.TotalAdults, &v.Minors); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		if userID.Valid && userID.String != "" {
			v.UserID = &userID.String
		}

		t, err := parseEntryTime(entryTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry_time for visit %d: %w", v.ID, err)
		}
		v.EntryTime = t

		visits = append(visits, v)
	}

	return visits, rows.Err()
}

// CountVisits returns the total number of swipe logs.
func (r *VisitRepository) CountVisits() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM firenze_card_logs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return n, nil
}

// parseEntryTime accepts the storage layout and the RFC3339-ish variants
// sqlite drivers hand back.
func parseEntryTime(s string) (time.Time, error) {
	formats := []string{
		timeLayout,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable entry time %q", s)
}
