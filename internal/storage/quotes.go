package storage

import (
	"context"
	"fmt"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/metrics"
	"github.com/freightlink/portal/internal/notify"
	"github.com/freightlink/portal/internal/repository"
)

// CreateQuoteRequest registers a customer's shipping inquiry. The sequencer
// allocation and the insert share one transaction so an insert failure never
// burns a visible identifier without a row behind it.
func (s *Storage) CreateQuoteRequest(ctx context.Context, sess auth.Session, in NewQuoteRequest) (*QuoteRequest, error) {
	if in.PickupLocation == "" {
		return nil, fmt.Errorf("%w: pickup location is required", ErrValidation)
	}
	if len(in.Destinations) == 0 {
		return nil, fmt.Errorf("%w: at least one destination is required", ErrValidation)
	}
	if in.CargoReadyDate.IsZero() {
		return nil, fmt.Errorf("%w: cargo ready date is required", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrTxFailed, err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	seq, err := s.sequenceRepo.NextTx(ctx, tx, repository.SequenceKindQuoteRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTxFailed, err)
	}

	now := s.timeNow()
	req := &repository.QuoteRequest{
		ID:             repository.SequenceKindQuoteRequest.FormatID(seq),
		CustomerID:     sess.UserID,
		ServiceType:    in.ServiceType,
		PickupLocation: in.PickupLocation,
		Destinations:   in.Destinations,
		GrossWeightKg:  in.GrossWeightKg,
		VolumeCbm:      in.VolumeCbm,
		CartonCount:    in.CartonCount,
		CargoReadyDate: in.CargoReadyDate,
		SpecialNotes:   in.SpecialNotes,
		Status:         repository.RequestStatusAwaitingQuote,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.requestRepo.CreateTx(ctx, tx, req); err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	metrics.QuoteRequestsCreatedTotal.Inc()
	result := requestFromRepo(req)
	return &result, nil
}

func (s *Storage) GetQuoteRequest(ctx context.Context, sess auth.Session, id string) (*QuoteRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanView(sess, req.CustomerID); err != nil {
		return nil, err
	}
	result := requestFromRepo(req)
	return &result, nil
}

func (s *Storage) ListQuoteRequests(ctx context.Context, sess auth.Session) ([]QuoteRequest, error) {
	var (
		reqs []*repository.QuoteRequest
		err  error
	)
	if sess.IsStaff() {
		reqs, err = s.requestRepo.GetAll(ctx)
	} else {
		reqs, err = s.requestRepo.GetByCustomerID(ctx, sess.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}

	result := make([]QuoteRequest, len(reqs))
	for i, req := range reqs {
		result[i] = requestFromRepo(req)
	}
	return result, nil
}

// CreateQuote prices a request. Staff only. Flips the request to quoted and
// refuses requests that already carry an accepted quote.
func (s *Storage) CreateQuote(ctx context.Context, sess auth.Session, in NewQuote) (*Quote, error) {
	if err := auth.CanIssueQuote(sess); err != nil {
		return nil, err
	}
	if in.RequestID == "" {
		return nil, fmt.Errorf("%w: request id is required", ErrValidation)
	}
	if in.ValidUntil.IsZero() {
		return nil, fmt.Errorf("%w: validity deadline is required", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrTxFailed, err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	req, err := s.requestRepo.GetByIDTx(ctx, tx, in.RequestID)
	if err != nil {
		return nil, err
	}

	if req.Status == repository.RequestStatusQuoteAccepted {
		return nil, fmt.Errorf("%w: request %s already has an accepted quote", ErrInvalidTransition, req.ID)
	}
	accepted, err := s.quoteRepo.CountAcceptedByRequestID(ctx, tx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check accepted quotes for request %s: %w", req.ID, err)
	}
	if accepted > 0 {
		return nil, fmt.Errorf("%w: request %s already has an accepted quote", ErrInvalidTransition, req.ID)
	}

	seq, err := s.sequenceRepo.NextTx(ctx, tx, repository.SequenceKindQuote)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTxFailed, err)
	}

	total := in.FreightCost.Add(in.InsuranceCost)
	for _, charge := range in.AdditionalCharges {
		total = total.Add(charge.Amount)
	}

	now := s.timeNow()
	quote := &repository.Quote{
		ID:                repository.SequenceKindQuote.FormatID(seq),
		RequestID:         req.ID,
		CustomerID:        req.CustomerID,
		StaffID:           sess.UserID,
		FreightCost:       in.FreightCost,
		InsuranceCost:     in.InsuranceCost,
		AdditionalCharges: in.AdditionalCharges,
		DestinationRates:  in.DestinationRates,
		CommissionRate:    in.CommissionRate,
		TotalCost:         total,
		ValidUntil:        in.ValidUntil,
		Status:            repository.QuoteStatusPending,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.quoteRepo.CreateTx(ctx, tx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	if err := s.requestRepo.UpdateStatusTx(ctx, tx, req.ID, repository.RequestStatusQuoted); err != nil {
		return nil, fmt.Errorf("failed to mark request %s quoted: %w", req.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	metrics.QuotesIssuedTotal.Inc()
	s.notifier.Enqueue(ctx, notify.Message{
		Recipient:  quote.CustomerID,
		TemplateID: "quote_ready",
		Variables: map[string]string{
			"quote_id":   quote.ID,
			"request_id": quote.RequestID,
			"total_cost": quote.TotalCost.String(),
		},
	})

	result := quoteFromRepo(quote)
	return &result, nil
}

func (s *Storage) GetQuote(ctx context.Context, sess auth.Session, id string) (*Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanView(sess, quote.CustomerID); err != nil {
		return nil, err
	}
	result := quoteFromRepo(quote)
	return &result, nil
}

func (s *Storage) ListQuotes(ctx context.Context, sess auth.Session) ([]Quote, error) {
	var (
		quotes []*repository.Quote
		err    error
	)
	if sess.IsStaff() {
		quotes, err = s.quoteRepo.GetAll(ctx)
	} else {
		quotes, err = s.quoteRepo.GetByCustomerID(ctx, sess.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	result := make([]Quote, len(quotes))
	for i, quote := range quotes {
		result[i] = quoteFromRepo(quote)
	}
	return result, nil
}

// UpdateQuoteStatus handles the direct transitions (rejected, finalized,
// expired). Accepting goes through AcceptQuote, which also creates the
// shipment; routing accepted here would skip the conversion.
func (s *Storage) UpdateQuoteStatus(ctx context.Context, sess auth.Session, id, status string) (*Quote, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
	if status == repository.QuoteStatusAccepted {
		return nil, fmt.Errorf("%w: accepting a quote requires the conversion endpoint", ErrInvalidTransition)
	}
	switch status {
	case repository.QuoteStatusPending, repository.QuoteStatusRejected,
		repository.QuoteStatusFinalized, repository.QuoteStatusExpired:
	default:
		return nil, fmt.Errorf("%w: unknown quote status %q", ErrValidation, status)
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanSetQuoteStatus(sess, quote.CustomerID, status); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrTxFailed, err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	// Re-read under lock: a quote superseded by a shipment is immutable.
	quote, err = s.quoteRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == repository.QuoteStatusAccepted {
		return nil, fmt.Errorf("%w: quote %s is already accepted", ErrInvalidTransition, id)
	}

	if err := s.quoteRepo.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update quote %s: %w", id, err)
	}
	if status == repository.QuoteStatusRejected {
		if err := s.requestRepo.UpdateStatusTx(ctx, tx, quote.RequestID, repository.RequestStatusQuoteRejected); err != nil {
			return nil, fmt.Errorf("failed to mark request %s rejected: %w", quote.RequestID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	quote.Status = status
	quote.UpdatedAt = s.timeNow()
	result := quoteFromRepo(quote)
	return &result, nil
}
