package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type QuoteRequestRepo struct {
	db db.DB
}

func NewQuoteRequestRepo(db db.DB) storage.QuoteRequestRepository {
	return &QuoteRequestRepo{db: db}
}

func (r *QuoteRequestRepo) CreateTx(ctx context.Context, tx db.Tx, req *repository.QuoteRequest) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO quote_requests (
            id, customer_id, service_type, pickup_location, destinations,
            gross_weight_kg, volume_cbm, carton_count, cargo_ready_date,
            special_notes, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `, req.ID, req.CustomerID, req.ServiceType, req.PickupLocation, req.Destinations,
		req.GrossWeightKg, req.VolumeCbm, req.CartonCount, req.CargoReadyDate,
		req.SpecialNotes, req.Status, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *QuoteRequestRepo) GetByID(ctx context.Context, id string) (*repository.QuoteRequest, error) {
	var req repository.QuoteRequest
	err := r.db.Get(ctx, &req, "SELECT * FROM quote_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *QuoteRequestRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.QuoteRequest, error) {
	var req repository.QuoteRequest
	err := tx.Get(ctx, &req, "SELECT * FROM quote_requests WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *QuoteRequestRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE quote_requests
        SET status = $1, updated_at = now()
        WHERE id = $2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *QuoteRequestRepo) GetByCustomerID(ctx context.Context, customerID string) ([]*repository.QuoteRequest, error) {
	var reqs []*repository.QuoteRequest
	err := r.db.Select(ctx, &reqs, `
        SELECT * FROM quote_requests
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `, customerID)
	return reqs, err
}

func (r *QuoteRequestRepo) GetAll(ctx context.Context) ([]*repository.QuoteRequest, error) {
	var reqs []*repository.QuoteRequest
	err := r.db.Select(ctx, &reqs, "SELECT * FROM quote_requests ORDER BY created_at DESC")
	return reqs, err
}
