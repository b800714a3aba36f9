package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/freightlink/portal/internal/db/mocks"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/repository/postgresql"
)

// fakeRow satisfies pgx.Row for queries that RETURNING a single value.
type fakeRow struct {
	values []interface{}
	err    error
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) {
			break
		}
		switch v := d.(type) {
		case *int64:
			*v = r.values[i].(int64)
		case *int:
			*v = r.values[i].(int)
		}
	}
	return nil
}

func pgconnTag(s string) pgconn.CommandTag {
	return pgconn.CommandTag(s)
}

func TestSequenceRepo_Next(t *testing.T) {
	ctx := context.Background()

	t.Run("first allocation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewSequenceRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("shipment")).
			Return(&fakeRow{values: []interface{}{int64(1)}})

		value, err := repo.Next(ctx, repository.SequenceKindShipment)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), value)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewSequenceRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&fakeRow{err: errors.New("deadlock detected")})

		_, err := repo.Next(ctx, repository.SequenceKindQuote)
		assert.Error(t, err)
	})
}

func TestSequenceRepo_NextTx(t *testing.T) {
	ctx := context.Background()

	t.Run("allocation joins the caller's transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewSequenceRepo(mockDB)

		mockTx.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("quote_request")).
			Return(&fakeRow{values: []interface{}{int64(42)}})

		value, err := repo.NextTx(ctx, mockTx, repository.SequenceKindQuoteRequest)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), value)
	})
}
