package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/platform/obs"
	"sales-route-service/internal/ports"
	"strings"
)

// Postgres-backed implementation of the LeadRepository port.
type PostgresLeadRepository struct{ DB *sql.DB }

func NewPostgresLeadRepository(db *sql.DB) *PostgresLeadRepository {
	return &PostgresLeadRepository{DB: db}
}

// Return leads matching the filter, ordered by lead_id.
func (s *PostgresLeadRepository) ListLeads(
	ctx context.Context,
	filter ports.LeadFilter,
) (_ []*domain.Lead, err error) {
	defer obs.Time(ctx, "leads.ListLeads")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres lead repository: DB is nil")
	}

	query, args := buildListLeadsQuery(filter)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: query leads table: %w", err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0, 64)
	for rows.Next() {
		var (
			lead     domain.Lead
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(
			&lead.ID,
			&lead.OwnerID,
			&lead.Name,
			&lead.Phone,
			&lead.Address,
			&lead.Status,
			&lat,
			&lon,
		); err != nil {
			return nil, fmt.Errorf("list leads: scan row: %w", err)
		}
		if lat.Valid {
			lead.Lat = &lat.Float64
		}
		if lon.Valid {
			lead.Lon = &lon.Float64
		}
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: row iteration: %w", err)
	}

	return leads, nil
}

// Store geocoded coordinates for a single lead.
func (s *PostgresLeadRepository) UpdateCoordinates(ctx context.Context, leadID string, p domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("postgres lead repository: DB is nil")
	}

	if strings.TrimSpace(leadID) == "" {
		return errors.New("update lead coordinates: lead id must not be empty")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE leads
	SET lat = $2,
		lon = $3
	WHERE lead_id = $1;
	`, leadID, p.Lat, p.Lon)
	if err != nil {
		return fmt.Errorf("update lead coordinates lead_id=%q: %w", leadID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead coordinates lead_id=%q: rows affected: %w", leadID, err)
	}
	if n == 0 {
		return fmt.Errorf("update lead coordinates: lead_id=%q not found", leadID)
	}

	return nil
}

// buildListLeadsQuery appends one positional condition per non-empty filter field.
func buildListLeadsQuery(filter ports.LeadFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if owner := strings.TrimSpace(filter.OwnerID); owner != "" {
		args = append(args, owner)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d::text[])", len(args)))
	}
	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		conds = append(conds, fmt.Sprintf("lead_id = ANY($%d::text[])", len(args)))
	}

	var b strings.Builder
	b.WriteString(`
	SELECT
		lead_id,
		owner_id,
		name,
		phone,
		address,
		status,
		lat,
		lon
	FROM leads`)
	if len(conds) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(conds, "\n\t\tAND "))
	}
	b.WriteString("\n\tORDER BY lead_id;")

	return b.String(), args
}
