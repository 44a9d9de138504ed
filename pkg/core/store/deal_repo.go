package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dealscope/pkg/models"
)

// ErrDealNotFound is returned when a deal id has no stored analysis.
var ErrDealNotFound = errors.New("deal not found")

// DealRepo stores analyses as a JSONB blob keyed by deal id.
//
// Schema assumption (managed by migrations, not this code):
//
//	CREATE TABLE IF NOT EXISTS deal_analyses (
//	  id UUID PRIMARY KEY,
//	  name TEXT NOT NULL,
//	  address TEXT,
//	  analysis_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	);
type DealRepo struct {
	pool *pgxpool.Pool
}

func NewDealRepo(pool *pgxpool.Pool) *DealRepo {
	return &DealRepo{pool: pool}
}

// Save upserts the deal. The analysis struct is stored verbatim; the store
// has no awareness of the projection schema beyond JSON round-tripping.
func (r *DealRepo) Save(ctx context.Context, deal *models.Deal) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	jsonData, err := json.Marshal(deal.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO deal_analyses (id, name, address, analysis_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			analysis_json = EXCLUDED.analysis_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = r.pool.Exec(ctx, query, deal.ID, deal.Name, deal.Address, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

// Get loads one deal with its full analysis.
func (r *DealRepo) Get(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `SELECT name, address, analysis_json, created_at, updated_at FROM deal_analyses WHERE id = $1`

	deal := &models.Deal{ID: id}
	var jsonData []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&deal.Name, &deal.Address, &jsonData, &deal.CreatedAt, &deal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}

	if err := json.Unmarshal(jsonData, &deal.Analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return deal, nil
}

// List returns lightweight rows for all saved deals, newest first.
func (r *DealRepo) List(ctx context.Context) ([]models.DealListing, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `SELECT id, name, address, updated_at FROM deal_analyses ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	var listings []models.DealListing
	for rows.Next() {
		var l models.DealListing
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Delete removes a saved deal.
func (r *DealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM deal_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDealNotFound
	}
	return nil
}
