package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/db"
	mock_database "github.com/freightlink/portal/internal/db/mocks"
	"github.com/freightlink/portal/internal/notify"
	"github.com/freightlink/portal/internal/repository"
	mock_storage "github.com/freightlink/portal/internal/storage/mocks"
)

type stubNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (n *stubNotifier) Enqueue(_ context.Context, msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *stubNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

type storageFixture struct {
	db       *mock_database.MockDB
	tx       *mock_database.MockTx
	requests *mock_storage.MockQuoteRequestRepository
	quotes   *mock_storage.MockQuoteRepository
	shipm    *mock_storage.MockShipmentRepository
	tracking *mock_storage.MockTrackingRepository
	seq      *mock_storage.MockSequenceRepository
	notifier *stubNotifier
	storage  *Storage
}

func newStorageFixture(t *testing.T, fixedTime time.Time) *storageFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &storageFixture{
		db:       mock_database.NewMockDB(ctrl),
		tx:       mock_database.NewMockTx(ctrl),
		requests: mock_storage.NewMockQuoteRequestRepository(ctrl),
		quotes:   mock_storage.NewMockQuoteRepository(ctrl),
		shipm:    mock_storage.NewMockShipmentRepository(ctrl),
		tracking: mock_storage.NewMockTrackingRepository(ctrl),
		seq:      mock_storage.NewMockSequenceRepository(ctrl),
		notifier: &stubNotifier{},
	}
	f.storage = NewStorage(f.db, f.requests, f.quotes, f.shipm, f.tracking, f.seq, f.notifier, zap.NewNop())
	f.storage.timeNow = func() time.Time { return fixedTime }
	return f
}

func pendingQuote() *repository.Quote {
	return &repository.Quote{
		ID:         "Q-00010",
		RequestID:  "QR-00010",
		CustomerID: "cust-1",
		StaffID:    "staff-1",
		TotalCost:  decimal.NewFromInt(3200),
		Status:     repository.QuoteStatusPending,
	}
}

func quotedRequest() *repository.QuoteRequest {
	return &repository.QuoteRequest{
		ID:             "QR-00010",
		CustomerID:     "cust-1",
		PickupLocation: "Guangzhou",
		Destinations: repository.DestinationList{
			{Warehouse: "LAX-1", Address: "Los Angeles", CartonCount: 30, WeightKg: decimal.NewFromInt(300)},
			{Warehouse: "JFK-2", Address: "New York", CartonCount: 20, WeightKg: decimal.NewFromInt(200)},
		},
		GrossWeightKg: decimal.NewFromInt(500),
		CartonCount:   50,
		Status:        repository.RequestStatusQuoted,
	}
}

func TestStorage_AcceptQuote(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := auth.Session{UserID: "cust-1", Role: auth.RoleCustomer}

	t.Run("successful conversion", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(quotedRequest(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusAccepted).Return(nil)
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoteAccepted).Return(nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindShipment).Return(int64(1), nil)

		f.shipm.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, s *repository.Shipment) error {
				assert.Equal(t, "FS-00001", s.ID)
				assert.Equal(t, "Q-00010", s.QuoteID)
				assert.Equal(t, "cust-1", s.CustomerID)
				assert.Equal(t, ShipmentStatusBookingConfirmed, s.Status)
				assert.Equal(t, "Guangzhou", s.Origin)
				assert.Len(t, s.Destinations, 2)
				assert.Equal(t, 50, s.CartonCount)
				assert.True(t, s.GrossWeightKg.Equal(decimal.NewFromInt(500)))
				assert.Equal(t, fixedTime.Add(14*24*time.Hour), s.EstimatedDelivery)
				return nil
			})
		f.tracking.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, e *repository.TrackingEvent) error {
				assert.Equal(t, "FS-00001", e.ShipmentID)
				assert.Equal(t, ShipmentStatusBookingConfirmed, e.Status)
				if assert.NotNil(t, e.Location) {
					assert.Equal(t, "Guangzhou", *e.Location)
				}
				assert.Equal(t, fixedTime, e.OccurredAt)
				return nil
			})
		f.tx.EXPECT().Commit(ctx).Return(nil)

		result, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")

		assert.NoError(t, err)
		assert.Equal(t, repository.QuoteStatusAccepted, result.Quote.Status)
		assert.Equal(t, "FS-00001", result.Shipment.ID)

		sent := f.notifier.sent()
		if assert.Len(t, sent, 1) {
			assert.Equal(t, "booking_confirmed", sent[0].TemplateID)
			assert.Equal(t, "cust-1", sent[0].Recipient)
		}
	})

	t.Run("staff may accept a customer's quote", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		staff := auth.Session{UserID: "staff-9", Role: auth.RoleStaff}

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(quotedRequest(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusAccepted).Return(nil)
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoteAccepted).Return(nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindShipment).Return(int64(2), nil)
		f.shipm.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tracking.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		result, err := f.storage.AcceptQuote(ctx, staff, "Q-00010")
		assert.NoError(t, err)
		assert.Equal(t, "FS-00002", result.Shipment.ID)
	})

	t.Run("finalized quote is accepted", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		finalized := pendingQuote()
		finalized.Status = repository.QuoteStatusFinalized

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(finalized, nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(quotedRequest(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusAccepted).Return(nil)
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoteAccepted).Return(nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindShipment).Return(int64(3), nil)
		f.shipm.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tracking.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		_, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")
		assert.NoError(t, err)
	})

	t.Run("already accepted quote is rejected without writes", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		accepted := pendingQuote()
		accepted.Status = repository.QuoteStatusAccepted

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(accepted, nil)

		result, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("rejected quote is rejected", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		rejected := pendingQuote()
		rejected.Status = repository.QuoteStatusRejected

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(rejected, nil)

		_, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("second quote on a converted request is rejected", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		secondQuote := pendingQuote()
		secondQuote.ID = "Q-00011"

		converted := quotedRequest()
		converted.Status = repository.RequestStatusQuoteAccepted

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00011").Return(secondQuote, nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(converted, nil)

		result, err := f.storage.AcceptQuote(ctx, owner, "Q-00011")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("foreign customer is denied before any write", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)
		stranger := auth.Session{UserID: "cust-2", Role: auth.RoleCustomer}

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)

		result, err := f.storage.AcceptQuote(ctx, stranger, "Q-00010")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("unknown quote", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-99999").Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.AcceptQuote(ctx, owner, "Q-99999")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("shipment insert failure rolls everything back", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(quotedRequest(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusAccepted).Return(nil)
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoteAccepted).Return(nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindShipment).Return(int64(4), nil)
		f.shipm.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(errors.New("disk full"))

		result, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")

		assert.Nil(t, result)
		assert.Error(t, err)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("commit failure surfaces as retryable transaction error", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.quotes.EXPECT().GetByIDTx(ctx, f.tx, "Q-00010").Return(pendingQuote(), nil)
		f.requests.EXPECT().GetByIDTx(ctx, f.tx, "QR-00010").Return(quotedRequest(), nil)
		f.quotes.EXPECT().UpdateStatusTx(ctx, f.tx, "Q-00010", repository.QuoteStatusAccepted).Return(nil)
		f.requests.EXPECT().UpdateStatusTx(ctx, f.tx, "QR-00010", repository.RequestStatusQuoteAccepted).Return(nil)
		f.seq.EXPECT().NextTx(ctx, f.tx, repository.SequenceKindShipment).Return(int64(5), nil)
		f.shipm.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tracking.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(errors.New("serialization failure"))

		_, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")
		assert.ErrorIs(t, err, ErrTxFailed)
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("begin failure", func(t *testing.T) {
		f := newStorageFixture(t, fixedTime)

		f.db.EXPECT().BeginTx(ctx).Return(nil, errors.New("pool exhausted"))

		_, err := f.storage.AcceptQuote(ctx, owner, "Q-00010")
		assert.ErrorIs(t, err, ErrTxFailed)
	})
}
