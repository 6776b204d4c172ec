package repository

import (
	"database/sql"
	"fmt"

	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// MuseumRepository handles database reads for museum location metadata.
type MuseumRepository struct {
	db *sql.DB
}

// NewMuseumRepository creates a new museum repository
func NewMuseumRepository(db *sql.DB) *MuseumRepository {
	return &MuseumRepository{db: db}
}

// GetLocations retrieves all museum locations ordered by museum id.
func (r *MuseumRepository) GetLocations() ([]models.MuseumLocation, error) {
	query := `SELECT museum_id, museum_name, short_name, latitude, longitude
		FROM firenze_card_locations ORDER BY museum_id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query museum locations: %w", err)
	}
	defer rows.Close()

	var locations []models.MuseumLocation
	for rows.Next() {
		var m models.MuseumLocation
		if err := rows.Scan(&m.MuseumID, &m.MuseumName, &m.ShortName, &m.Latitude, &m.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan museum location: %w", err)
		}
		locations = append(locations, m)
	}

	return locations, rows.Err()
}

// GetLocationByID retrieves a single museum location.
func (r *MuseumRepository) GetLocationByID(museumID int) (*models.MuseumLocation, error) {
	query := `SELECT museum_id, museum_name, short_name, latitude, longitude
		FROM firenze_card_locations WHERE museum_id = ?`

	var m models.MuseumLocation
	err := r.db.QueryRow(query, museumID).Scan(&m.MuseumID, &m.MuseumName, &m.ShortName, &m.Latitude, &m.Longitude)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get museum location: %w", err)
	}
	return &m, nil
}
