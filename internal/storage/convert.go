package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/metrics"
	"github.com/freightlink/portal/internal/notify"
	"github.com/freightlink/portal/internal/repository"
)

const (
	// ShipmentStatusBookingConfirmed seeds every shipment created from an
	// accepted quote; later stages are free-form staff-entered labels.
	ShipmentStatusBookingConfirmed = "Booking Confirmed"

	bookingConfirmedDescription = "Quote accepted, booking confirmed. Cargo awaiting pickup."

	deliveryEstimateOffset = 14 * 24 * time.Hour
)

// AcceptQuote converts an accepted quote into a shipment. The quote status
// flip, the request status flip, the shipment identifier allocation, the
// shipment insert and the seed tracking event commit as one transaction, so
// no caller can ever observe an accepted quote without its shipment.
//
// The FOR UPDATE read serializes concurrent accepts of the same quote: the
// loser of the race blocks until the winner commits, then re-reads the
// quote as accepted and fails the precondition instead of creating a second
// shipment.
func (s *Storage) AcceptQuote(ctx context.Context, sess auth.Session, quoteID string) (*ConversionResult, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrTxFailed, err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	quote, err := s.quoteRepo.GetByIDTx(ctx, tx, quoteID)
	if err != nil {
		return nil, err
	}

	if err := auth.CanAcceptQuote(sess, quote.CustomerID); err != nil {
		return nil, err
	}

	if quote.Status != repository.QuoteStatusPending && quote.Status != repository.QuoteStatusFinalized {
		return nil, fmt.Errorf("%w: quote %s is %s, expected pending or finalized",
			ErrInvalidTransition, quote.ID, quote.Status)
	}

	req, err := s.requestRepo.GetByIDTx(ctx, tx, quote.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load request %s for quote %s: %w", quote.RequestID, quote.ID, err)
	}

	// A request converts at most once. Several pending quotes may exist
	// against it; accepting any of them closes the request for the rest.
	if req.Status == repository.RequestStatusQuoteAccepted {
		return nil, fmt.Errorf("%w: request %s already has an accepted quote", ErrInvalidTransition, req.ID)
	}

	if err := s.quoteRepo.UpdateStatusTx(ctx, tx, quote.ID, repository.QuoteStatusAccepted); err != nil {
		return nil, fmt.Errorf("failed to accept quote %s: %w", quote.ID, err)
	}
	if err := s.requestRepo.UpdateStatusTx(ctx, tx, req.ID, repository.RequestStatusQuoteAccepted); err != nil {
		return nil, fmt.Errorf("failed to mark request %s accepted: %w", req.ID, err)
	}

	seq, err := s.sequenceRepo.NextTx(ctx, tx, repository.SequenceKindShipment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTxFailed, err)
	}

	now := s.timeNow()
	shipment := &repository.Shipment{
		ID:                 repository.SequenceKindShipment.FormatID(seq),
		QuoteID:            quote.ID,
		CustomerID:         quote.CustomerID,
		Status:             ShipmentStatusBookingConfirmed,
		Origin:             req.PickupLocation,
		Destinations:       req.Destinations,
		CartonCount:        req.CartonCount,
		GrossWeightKg:      req.GrossWeightKg,
		ChargeableWeightKg: req.GrossWeightKg,
		EstimatedDelivery:  now.Add(deliveryEstimateOffset),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.shipmentRepo.CreateTx(ctx, tx, shipment); err != nil {
		return nil, fmt.Errorf("failed to create shipment for quote %s: %w", quote.ID, err)
	}

	location := req.PickupLocation
	description := bookingConfirmedDescription
	seedEvent := &repository.TrackingEvent{
		ShipmentID:  shipment.ID,
		Status:      ShipmentStatusBookingConfirmed,
		Location:    &location,
		Description: &description,
		OccurredAt:  now,
		CreatedAt:   now,
	}
	if err := s.trackingRepo.CreateTx(ctx, tx, seedEvent); err != nil {
		return nil, fmt.Errorf("failed to seed tracking log for shipment %s: %w", shipment.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	metrics.QuotesConvertedTotal.Inc()
	metrics.TrackingEventsTotal.Inc()
	s.logger.Info("Quote converted to shipment",
		zap.String("quote_id", quote.ID),
		zap.String("shipment_id", shipment.ID),
		zap.String("customer_id", quote.CustomerID),
	)

	s.notifier.Enqueue(ctx, notify.Message{
		Recipient:  quote.CustomerID,
		TemplateID: "booking_confirmed",
		Variables: map[string]string{
			"quote_id":           quote.ID,
			"shipment_id":        shipment.ID,
			"origin":             shipment.Origin,
			"estimated_delivery": shipment.EstimatedDelivery.Format(time.RFC3339),
		},
	})

	quote.Status = repository.QuoteStatusAccepted
	quote.UpdatedAt = now
	return &ConversionResult{
		Quote:    quoteFromRepo(quote),
		Shipment: shipmentFromRepo(shipment),
	}, nil
}
