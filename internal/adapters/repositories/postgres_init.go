package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sales-route-service/internal/domain"
	"slices"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLeadsQuery := `
	CREATE TABLE IF NOT EXISTS leads (
		lead_id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new',
		lat DOUBLE PRECISION CHECK (lat BETWEEN -90 AND 90),
		lon DOUBLE PRECISION CHECK (lon BETWEEN -180 AND 180)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_leads_owner_status
    ON leads(owner_id, status);
	`

	statements := []string{
		createLeadsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LeadSeed struct {
	LeadID  string   `json:"lead_id"`
	OwnerID string   `json:"owner_id"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Status  string   `json:"status"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

var knownStatuses = []string{
	domain.LeadStatusNew,
	domain.LeadStatusContacted,
	domain.LeadStatusQualified,
	domain.LeadStatusProposal,
	domain.LeadStatusWon,
	domain.LeadStatusLost,
}

// ParseLeadSeeds validates seed records. Coordinates are optional but must be
// complete and in range when present.
func ParseLeadSeeds(data []byte) ([]LeadSeed, error) {
	var items []LeadSeed
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("seed leads: parse json: %w", err)
	}

	rows := make([]LeadSeed, 0, len(items))
	for i, item := range items {
		item.LeadID = strings.TrimSpace(item.LeadID)
		if item.LeadID == "" {
			return nil, fmt.Errorf("seed leads: item at index %d: lead_id cannot be empty", i+1)
		}

		item.OwnerID = strings.TrimSpace(item.OwnerID)
		if item.OwnerID == "" {
			return nil, fmt.Errorf("seed leads: lead_id=%q: owner_id cannot be empty", item.LeadID)
		}

		if item.Status == "" {
			item.Status = domain.LeadStatusNew
		}
		if !slices.Contains(knownStatuses, item.Status) {
			return nil, fmt.Errorf("seed leads: lead_id=%q: unknown status %q", item.LeadID, item.Status)
		}

		if (item.Lat == nil) != (item.Lon == nil) {
			return nil, fmt.Errorf("seed leads: lead_id=%q: lat and lon must be set together", item.LeadID)
		}
		if item.Lat != nil {
			p := domain.GeoPoint{Lat: *item.Lat, Lon: *item.Lon}
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("seed leads: lead_id=%q: %w", item.LeadID, err)
			}
		}

		rows = append(rows, item)
	}

	return rows, nil
}

// Populate the database with lead data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed leads: read %q: %w", jsonPath, err)
	}

	rows, err := ParseLeadSeeds(bytes)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed leads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO leads (lead_id, owner_id, name, phone, address, status, lat, lon)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (lead_id) DO UPDATE
	SET owner_id = EXCLUDED.owner_id,
		name = EXCLUDED.name,
		phone = EXCLUDED.phone,
		address = EXCLUDED.address,
		status = EXCLUDED.status,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`)
	if err != nil {
		return fmt.Errorf("seed leads: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.ExecContext(ctx, l.LeadID, l.OwnerID, l.Name, l.Phone, l.Address, l.Status, l.Lat, l.Lon); err != nil {
			return fmt.Errorf("seed leads: insert lead_id=%q: %w", l.LeadID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed leads: commit tx: %w", err)
	}

	return nil
}
