package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
)

func TestStorage_CreateQuoteRequest(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	customer := auth.Session{UserID: "cust-1", Role: auth.RoleCustomer}

	validInput := NewQuoteRequest{
		ServiceType:    "sea_freight",
		PickupLocation: "Guangzhou",
		Destinations: []repository.Destination{
			{Warehouse: "LAX-1", Address: "Los Angeles", CartonCount: 10, WeightKg: decimal.NewFromInt(120)},
		},
		GrossWeightKg:  decimal.NewFromInt(120),
		VolumeCbm:      decimal.NewFromFloat(1.8),
		CartonCount:    10,
		CargoReadyDate: fixedTime.Add(72 * time.Hour),
	}

	t.Run("successful creation", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindQuoteRequest).Return(int64(10), nil)
		f.requests.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, r *repository.QuoteRequest) error {
				assert.Equal(t, "QR-00010", r.ID)
				assert.Equal(t, "cust-1", r.CustomerID)
				assert.Equal(t, repository.RequestStatusAwaitingQuote, r.Status)
				assert.Equal(t, fixedTime, r.CreatedAt)
				return nil
			})
		f.tx.EXPECT().Commit(ctx).Return(nil)

		req, err := f.storage.CreateQuoteRequest(ctx, customer, validInput)

		assert.NoError(t, err)
		assert.Equal(t, "QR-00010", req.ID)
		assert.Equal(t, repository.RequestStatusAwaitingQuote, req.Status)
	})

	t.Run("missing pickup location", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		in := validInput
		in.PickupLocation = ""

		_, err := f.storage.CreateQuoteRequest(ctx, customer, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing destinations", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		in := validInput
		in.Destinations = nil

		_, err := f.storage.CreateQuoteRequest(ctx, customer, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing cargo ready date", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		in := validInput
		in.CargoReadyDate = time.Time{}

		_, err := f.storage.CreateQuoteRequest(ctx, customer, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("sequencer failure aborts the transaction", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindQuoteRequest).Return(int64(0), errors.New("lock timeout"))

		_, err := f.storage.CreateQuoteRequest(ctx, customer, validInput)
		assert.ErrorIs(t, err, ErrTxFailed)
	})
}

func TestStorage_CreateQuote(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	staff := auth.Session{UserID: "staff-1", Role: auth.RoleStaff}

	validInput := NewQuote{
		RequestID:     "QR-00010",
		FreightCost:   decimal.NewFromInt(2800),
		InsuranceCost: decimal.NewFromInt(150),
		AdditionalCharges: []repository.Charge{
			{Label: "fuel surcharge", Amount: decimal.NewFromInt(250)},
		},
		CommissionRate: decimal.NewFromFloat(0.05),
		ValidUntil:     fixedTime.Add(7 * 24 * time.Hour),
	}

	awaitingRequest := func() *repository.QuoteRequest {
		req := quotedRequest()
		req.Status = repository.RequestStatusAwaitingQuote
		return req
	}

	t.Run("successful quote issue", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(awaitingRequest(), nil)
		f.quotes.EXPECT().CountAcceptedByRequestID(ctx, f.tx, "QR-00010").Return(0, nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindQuote).Return(int64(10), nil)
		f.quotes.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, q *repository.Quote) error {
				assert.Equal(t, "Q-00010", q.ID)
				assert.Equal(t, "cust-1", q.CustomerID)
				assert.Equal(t, "staff-1", q.StaffID)
				assert.Equal(t, repository.QuoteStatusPending, q.Status)
				assert.True(t, q.TotalCost.Equal(decimal.NewFromInt(3200)),
					"total should be freight + insurance + charges, got %s", q.TotalCost)
				return nil
			})
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoted).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		quote, err := f.storage.CreateQuote(ctx, staff, validInput)

		assert.NoError(t, err)
		assert.Equal(t, "Q-00010", quote.ID)

		sent := f.notifier.sent()
		if assert.Len(t, sent, 1) {
			assert.Equal(t, "quote_ready", sent[0].TemplateID)
		}
	})

	t.Run("customer may not issue quotes", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		customer := auth.Session{UserID: "cust-1", Role: auth.RoleCustomer}

		_, err := f.storage.CreateQuote(ctx, customer, validInput)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("request already converted", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		converted := quotedRequest()
		converted.Status = repository.RequestStatusQuoteAccepted

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(converted, nil)

		_, err := f.storage.CreateQuote(ctx, staff, validInput)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("request with a lingering accepted quote", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(awaitingRequest(), nil)
		f.quotes.EXPECT().CountAcceptedByRequestID(ctx, f.tx, "QR-00010").Return(1, nil)

		_, err := f.storage.CreateQuote(ctx, staff, validInput)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00099").Return(nil, repository.ErrObjectNotFound)

		in := validInput
		in.RequestID = "QR-00099"

		_, err := f.storage.CreateQuote(ctx, staff, in)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestStorage_UpdateQuoteStatus(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	owner := auth.Session{UserID: "cust-1", Role: auth.RoleCustomer}
	staff := auth.Session{UserID: "staff-1", Role: auth.RoleStaff}

	t.Run("customer rejects own quote", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.quotes.EXPECT().GetByID(ctx, "Q-00010").Return(pendingQuote(), nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusRejected).Return(nil)
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoteRejected).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		quote, err := f.storage.UpdateQuoteStatus(ctx, owner, "Q-00010", repository.QuoteStatusRejected)

		assert.NoError(t, err)
		assert.Equal(t, repository.QuoteStatusRejected, quote.Status)
	})

	t.Run("staff finalizes a quote", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.quotes.EXPECT().GetByID(ctx, "Q-00010").Return(pendingQuote(), nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusFinalized).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		quote, err := f.storage.UpdateQuoteStatus(ctx, staff, "Q-00010", repository.QuoteStatusFinalized)

		assert.NoError(t, err)
		assert.Equal(t, repository.QuoteStatusFinalized, quote.Status)
	})

	t.Run("accepted is refused here", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		_, err := f.storage.UpdateQuoteStatus(ctx, owner, "Q-00010", repository.QuoteStatusAccepted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("customer may not finalize", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.quotes.EXPECT().GetByID(ctx, "Q-00010").Return(pendingQuote(), nil)

		_, err := f.storage.UpdateQuoteStatus(ctx, owner, "Q-00010", repository.QuoteStatusFinalized)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		_, err := f.storage.UpdateQuoteStatus(ctx, staff, "Q-00010", "misplaced")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("converted quote is immutable", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		accepted := pendingQuote()
		accepted.Status = repository.QuoteStatusAccepted

		f.quotes.EXPECT().GetByID(ctx, "Q-00010").Return(pendingQuote(), nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(accepted, nil)

		_, err := f.storage.UpdateQuoteStatus(ctx, staff, "Q-00010", repository.QuoteStatusExpired)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestStorage_ListQuotes(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("customer sees only own quotes", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		customer := auth.Session{UserID: "cust-1", Role: auth.RoleCustomer}

		f.quotes.EXPECT().GetByCustomerID(ctx, "cust-1").Return([]*repository.Quote{pendingQuote()}, nil)

		quotes, err := f.storage.ListQuotes(ctx, customer)
		assert.NoError(t, err)
		assert.Len(t, quotes, 1)
	})

	t.Run("staff sees everything", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		staff := auth.Session{UserID: "staff-1", Role: auth.RoleStaff}

		f.quotes.EXPECT().GetAll(ctx).Return([]*repository.Quote{pendingQuote(), pendingQuote()}, nil)

		quotes, err := f.storage.ListQuotes(ctx, staff)
		assert.NoError(t, err)
		assert.Len(t, quotes, 2)
	})
}

func TestStorage_GetQuote(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	t.Run("owner reads own quote", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		owner := auth.Session{UserID: "cust-1", Role: auth.RoleCustomer}

		f.quotes.EXPECT().GetByID(ctx, "Q-00010").Return(pendingQuote(), nil)

		quote, err := f.storage.GetQuote(ctx, owner, "Q-00010")
		assert.NoError(t, err)
		assert.Equal(t, "Q-00010", quote.ID)
	})

	t.Run("stranger is denied, not told absent", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		stranger := auth.Session{UserID: "cust-2", Role: auth.RoleCustomer}

		f.quotes.EXPECT().GetByID(ctx, "Q-00010").Return(pendingQuote(), nil)

		_, err := f.storage.GetQuote(ctx, stranger, "Q-00010")
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
		assert.NotErrorIs(t, err, repository.ErrObjectNotFound)
	})
}
