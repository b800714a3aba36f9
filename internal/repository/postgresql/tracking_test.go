package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/freightlink/portal/internal/db/mocks"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/repository/postgresql"
)

func TestTrackingRepo_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("generated id is written back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewTrackingRepo(mockDB)

		loc := "Port of Long Beach"
		event := &repository.TrackingEvent{
			ShipmentID: "FS-00001",
			Status:     "Arrived at Port",
			Location:   &loc,
			OccurredAt: now,
			CreatedAt:  now,
		}

		mockDB.EXPECT().ExecQueryRow(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(event.ShipmentID),
			gomock.Eq(event.Status),
			gomock.Eq(event.Location),
			gomock.Eq(event.Description),
			gomock.Eq(event.OccurredAt),
			gomock.Eq(event.CreatedAt),
		).Return(&fakeRow{values: []interface{}{int64(17)}})

		err := repo.Create(ctx, event)
		assert.NoError(t, err)
		assert.Equal(t, int64(17), event.ID)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewTrackingRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&fakeRow{err: errors.New("database error")})

		err := repo.Create(ctx, &repository.TrackingEvent{ShipmentID: "FS-00001", Status: "In Transit"})
		assert.Error(t, err)
	})
}

func TestTrackingRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewTrackingRepo(mockDB)

		event := &repository.TrackingEvent{
			ShipmentID: "FS-00001",
			Status:     "Booking Confirmed",
			OccurredAt: now,
			CreatedAt:  now,
		}

		mockTx.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&fakeRow{values: []interface{}{int64(1)}})

		err := repo.CreateTx(ctx, mockTx, event)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), event.ID)
	})
}

func TestTrackingRepo_GetByShipmentID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("events newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewTrackingRepo(mockDB)

		expected := []*repository.TrackingEvent{
			{ID: 2, ShipmentID: "FS-00001", Status: "In Transit", OccurredAt: now},
			{ID: 1, ShipmentID: "FS-00001", Status: "Booking Confirmed", OccurredAt: now.Add(-48 * time.Hour)},
		}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("FS-00001")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.TrackingEvent, _ string, _ string) error {
				*dest = expected
				return nil
			})

		events, err := repo.GetByShipmentID(ctx, "FS-00001")
		assert.NoError(t, err)
		assert.Equal(t, expected, events)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewTrackingRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		events, err := repo.GetByShipmentID(ctx, "FS-00001")
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, events)
	})
}
