package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type ShipmentRepo struct {
	db db.DB
}

func NewShipmentRepo(db db.DB) storage.ShipmentRepository {
	return &ShipmentRepo{db: db}
}

func (r *ShipmentRepo) CreateTx(ctx context.Context, tx db.Tx, shipment *repository.Shipment) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO shipments (
            id, quote_id, customer_id, status, origin, destinations,
            carton_count, gross_weight_kg, chargeable_weight_kg,
            estimated_delivery, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, shipment.ID, shipment.QuoteID, shipment.CustomerID, shipment.Status,
		shipment.Origin, shipment.Destinations, shipment.CartonCount,
		shipment.GrossWeightKg, shipment.ChargeableWeightKg,
		shipment.EstimatedDelivery, shipment.CreatedAt, shipment.UpdatedAt)
	return err
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*repository.Shipment, error) {
	var shipment repository.Shipment
	err := r.db.Get(ctx, &shipment, "SELECT * FROM shipments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Shipment, error) {
	var shipment repository.Shipment
	err := tx.Get(ctx, &shipment, "SELECT * FROM shipments WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE shipments
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

// UpdateCargo patches only the closed set of cargo columns. Absent fields
// keep their current value.
func (r *ShipmentRepo) UpdateCargo(ctx context.Context, id string, upd repository.ShipmentCargoUpdate) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE shipments
        SET carton_count         = COALESCE($1, carton_count),
            gross_weight_kg      = COALESCE($2, gross_weight_kg),
            chargeable_weight_kg = COALESCE($3, chargeable_weight_kg),
            updated_at           = now()
        WHERE id = $4
    `, upd.CartonCount, upd.GrossWeightKg, upd.ChargeableWeightKg, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ShipmentRepo) GetByCustomerID(ctx context.Context, customerID string) ([]*repository.Shipment, error) {
	var shipments []*repository.Shipment
	err := r.db.Select(ctx, &shipments, `
        SELECT * FROM shipments
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `, customerID)
	return shipments, err
}

func (r *ShipmentRepo) GetAll(ctx context.Context) ([]*repository.Shipment, error) {
	var shipments []*repository.Shipment
	err := r.db.Select(ctx, &shipments, "SELECT * FROM shipments ORDER BY created_at DESC")
	return shipments, err
}
