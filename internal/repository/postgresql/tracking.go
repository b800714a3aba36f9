package postgresql

import (
	"context"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type TrackingRepo struct {
	db db.DB
}

func NewTrackingRepo(db db.DB) storage.TrackingRepository {
	return &TrackingRepo{db: db}
}

const insertEventQuery = `
        INSERT INTO tracking_events (
            shipment_id, status, location, description, occurred_at, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `

func (r *TrackingRepo) Create(ctx context.Context, event *repository.TrackingEvent) error {
	return r.db.ExecQueryRow(ctx, insertEventQuery,
		event.ShipmentID, event.Status, event.Location, event.Description,
		event.OccurredAt, event.CreatedAt).Scan(&event.ID)
}

func (r *TrackingRepo) CreateTx(ctx context.Context, tx db.Tx, event *repository.TrackingEvent) error {
	return tx.ExecQueryRow(ctx, insertEventQuery,
		event.ShipmentID, event.Status, event.Location, event.Description,
		event.OccurredAt, event.CreatedAt).Scan(&event.ID)
}

// GetByShipmentID returns the audit log newest-first, which is the order the
// portal displays it in.
func (r *TrackingRepo) GetByShipmentID(ctx context.Context, shipmentID string) ([]*repository.TrackingEvent, error) {
	var events []*repository.TrackingEvent
	err := r.db.Select(ctx, &events, `
        SELECT * FROM tracking_events
        WHERE shipment_id = $1
        ORDER BY occurred_at DESC, id DESC
    `, shipmentID)
	return events, err
}
