package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type QuoteRepo struct {
	db db.DB
}

func NewQuoteRepo(db db.DB) storage.QuoteRepository {
	return &QuoteRepo{db: db}
}

func (r *QuoteRepo) CreateTx(ctx context.Context, tx db.Tx, quote *repository.Quote) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO quotes (
            id, request_id, customer_id, staff_id, freight_cost, insurance_cost,
            additional_charges, destination_rates, commission_rate, total_cost,
            valid_until, status, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
    `, quote.ID, quote.RequestID, quote.CustomerID, quote.StaffID, quote.FreightCost,
		quote.InsuranceCost, quote.AdditionalCharges, quote.DestinationRates,
		quote.CommissionRate, quote.TotalCost, quote.ValidUntil, quote.Status,
		quote.Notes, quote.CreatedAt, quote.UpdatedAt)
	return err
}

func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*repository.Quote, error) {
	var quote repository.Quote
	err := r.db.Get(ctx, &quote, "SELECT * FROM quotes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// GetByIDTx locks the quote row for the duration of the transaction. The
// conversion path relies on this lock to serialize concurrent accepts of the
// same quote.
func (r *QuoteRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Quote, error) {
	var quote repository.Quote
	err := tx.Get(ctx, &quote, "SELECT * FROM quotes WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE quotes
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

func (r *QuoteRepo) GetByCustomerID(ctx context.Context, customerID string) ([]*repository.Quote, error) {
	var quotes []*repository.Quote
	err := r.db.Select(ctx, &quotes, `
        SELECT * FROM quotes
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `, customerID)
	return quotes, err
}

func (r *QuoteRepo) GetAll(ctx context.Context) ([]*repository.Quote, error) {
	var quotes []*repository.Quote
	err := r.db.Select(ctx, &quotes, "SELECT * FROM quotes ORDER BY created_at DESC")
	return quotes, err
}

// CountAcceptedByRequestID reports how many quotes against the request are
// already accepted. Used when issuing a new quote to keep the
// one-conversion-per-request invariant.
func (r *QuoteRepo) CountAcceptedByRequestID(ctx context.Context, tx db.Tx, requestID string) (int, error) {
	var count int
	err := tx.ExecQueryRow(ctx, `
        SELECT COUNT(*) FROM quotes WHERE request_id = $1 AND status = $2
    `, requestID, repository.QuoteStatusAccepted).Scan(&count)
	return count, err
}
