package storage

import (
	"context"
	"fmt"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/metrics"
	"github.com/freightlink/portal/internal/notify"
	"github.com/freightlink/portal/internal/repository"
)

// GetShipment returns a shipment with its tracking log, newest event first.
func (s *Storage) GetShipment(ctx context.Context, sess auth.Session, id string) (*ShipmentDetail, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanView(sess, shipment.CustomerID); err != nil {
		return nil, err
	}

	repoEvents, err := s.trackingRepo.GetByShipmentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracking log for shipment %s: %w", id, err)
	}

	events := make([]TrackingEvent, len(repoEvents))
	for i, event := range repoEvents {
		events[i] = eventFromRepo(event)
	}

	return &ShipmentDetail{
		Shipment: shipmentFromRepo(shipment),
		Events:   events,
	}, nil
}

func (s *Storage) ListShipments(ctx context.Context, sess auth.Session) ([]Shipment, error) {
	var (
		shipments []*repository.Shipment
		err       error
	)
	if sess.IsStaff() {
		shipments, err = s.shipmentRepo.GetAll(ctx)
	} else {
		shipments, err = s.shipmentRepo.GetByCustomerID(ctx, sess.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	result := make([]Shipment, len(shipments))
	for i, shipment := range shipments {
		result[i] = shipmentFromRepo(shipment)
	}
	return result, nil
}

// UpdateShipmentStatus moves a shipment to a new operational stage. The
// status write and its audit event share one transaction: a status change
// without a tracking entry must never be observable.
func (s *Storage) UpdateShipmentStatus(ctx context.Context, sess auth.Session, id string, in ShipmentStatusUpdate) (*Shipment, error) {
	if err := auth.CanMutateShipment(sess); err != nil {
		return nil, err
	}
	if in.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrTxFailed, err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	shipment, err := s.shipmentRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.UpdateStatusTx(ctx, tx, id, in.Status); err != nil {
		return nil, fmt.Errorf("failed to update shipment %s: %w", id, err)
	}

	now := s.timeNow()
	event := &repository.TrackingEvent{
		ShipmentID:  id,
		Status:      in.Status,
		Location:    in.Location,
		Description: in.Description,
		OccurredAt:  now,
		CreatedAt:   now,
	}
	if err := s.trackingRepo.CreateTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append tracking event for shipment %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	metrics.TrackingEventsTotal.Inc()
	s.notifier.Enqueue(ctx, notify.Message{
		Recipient:  shipment.CustomerID,
		TemplateID: "shipment_status_changed",
		Variables: map[string]string{
			"shipment_id": id,
			"status":      in.Status,
		},
	})

	shipment.Status = in.Status
	shipment.UpdatedAt = now
	result := shipmentFromRepo(shipment)
	return &result, nil
}

// AppendTrackingEvent adds a manual audit entry without touching the
// shipment's status column.
func (s *Storage) AppendTrackingEvent(ctx context.Context, sess auth.Session, shipmentID string, in NewTrackingEvent) (*TrackingEvent, error) {
	if err := auth.CanMutateShipment(sess); err != nil {
		return nil, err
	}
	if in.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	if _, err := s.shipmentRepo.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}

	now := s.timeNow()
	occurredAt := now
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	event := &repository.TrackingEvent{
		ShipmentID:  shipmentID,
		Status:      in.Status,
		Location:    in.Location,
		Description: in.Description,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}
	if err := s.trackingRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to append tracking event for shipment %s: %w", shipmentID, err)
	}

	metrics.TrackingEventsTotal.Inc()
	result := eventFromRepo(event)
	return &result, nil
}

// UpdateShipmentCargo patches the cargo totals. Staff only; deliberately
// does not append a tracking event.
func (s *Storage) UpdateShipmentCargo(ctx context.Context, sess auth.Session, id string, upd repository.ShipmentCargoUpdate) (*Shipment, error) {
	if err := auth.CanMutateShipment(sess); err != nil {
		return nil, err
	}
	if upd.CartonCount == nil && upd.GrossWeightKg == nil && upd.ChargeableWeightKg == nil {
		return nil, fmt.Errorf("%w: no cargo fields to update", ErrValidation)
	}

	if err := s.shipmentRepo.UpdateCargo(ctx, id, upd); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("update_shipment_cargo").Inc()
		return nil, err
	}

	shipment, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := shipmentFromRepo(shipment)
	return &result, nil
}
