package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/papinesquik/SmokeRider/internal/db/mocks"
	"github.com/papinesquik/SmokeRider/internal/repository"
	"github.com/papinesquik/SmokeRider/internal/repository/postgresql"
)

func testOrder(now time.Time) *repository.Order {
	return &repository.Order{
		ID:        "order-123",
		ClientID:  "client-456",
		Items:     []byte(`[{"productId":"p1","name":"Cola","quantity":1,"price":3.5}]`),
		Total:     decimal.RequireFromString("3.5"),
		Status:    "pending",
		CreatedAt: now,
		ExpiresAt: now.Add(10 * time.Minute),
		UpdatedAt: now,
	}
}

func TestOrderRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		order := testOrder(now)

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(order.ID),
			gomock.Eq(order.ClientID),
			gomock.Eq(order.Items),
			gomock.Eq(order.Total),
			gomock.Eq(order.Status),
			gomock.Eq(order.CreatedAt),
			gomock.Eq(order.ExpiresAt),
			gomock.Eq(order.AcceptedBy),
			gomock.Eq(order.UpdatedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, order)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
		).Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, testOrder(now))
		assert.Equal(t, expectedErr, err)
	})
}

func TestOrderRepo_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("order found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		want := testOrder(now)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(want.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Order, _ string, _ string) error {
				*dest = *want
				return nil
			})

		order, err := repo.GetByID(ctx, want.ID)
		assert.NoError(t, err)
		assert.Equal(t, want, order)
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		order, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, order)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		order, err := repo.GetByID(ctx, "order-123")
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, order)
	})
}

func TestOrderRepo_GetByIDTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("locks and returns the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		want := testOrder(now)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(want.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Order, query string, _ string) error {
				assert.Contains(t, query, "FOR UPDATE")
				*dest = *want
				return nil
			})

		order, err := repo.GetByIDTx(ctx, mockTx, want.ID)
		assert.NoError(t, err)
		assert.Equal(t, want, order)
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		order, err := repo.GetByIDTx(ctx, mockTx, "missing")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, order)
	})
}

func TestOrderRepo_ClaimTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("order-123"), gomock.Eq("rider-1"), gomock.Eq(now)).
			Return(nil, nil)

		err := repo.ClaimTx(ctx, mockTx, "order-123", "rider-1", now)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.ClaimTx(ctx, mockTx, "order-123", "rider-1", now)
		assert.Equal(t, expectedErr, err)
	})
}

func TestOrderRepo_LatestByClientAndStatuses(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("order found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		want := testOrder(now)
		want.Status = "accepted"
		statuses := []string{"accepted", "on_the_way", "delivered"}

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(want.ClientID), gomock.Eq(statuses)).
			DoAndReturn(func(_ context.Context, dest *repository.Order, _ string, _ ...interface{}) error {
				*dest = *want
				return nil
			})

		order, err := repo.LatestByClientAndStatuses(ctx, want.ClientID, statuses)
		assert.NoError(t, err)
		assert.Equal(t, want, order)
	})

	t.Run("nothing matches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		order, err := repo.LatestByClientAndStatuses(ctx, "client-456", []string{"pending"})
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, order)
	})
}

func TestOrderRepo_ListPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("without city filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		want := []*repository.Order{testOrder(now)}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(now)).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Order, query string, _ time.Time) error {
				assert.NotContains(t, query, "JOIN positions")
				*dest = want
				return nil
			})

		orders, err := repo.ListPending(ctx, "", now)
		assert.NoError(t, err)
		assert.Equal(t, want, orders)
	})

	t.Run("with city filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(now), gomock.Eq("Belgrade")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Order, query string, _ ...interface{}) error {
				assert.Contains(t, query, "JOIN positions")
				return nil
			})

		_, err := repo.ListPending(ctx, "Belgrade", now)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		orders, err := repo.ListPending(ctx, "", now)
		assert.Error(t, err)
		assert.Nil(t, orders)
	})
}

func TestOrderRepo_DeleteTerminalBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("reports deleted rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		statuses := []string{"cancelled", "expired"}

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(statuses), gomock.Eq(450)).
			Return(pgconn.CommandTag("DELETE 3"), nil)

		n, err := repo.DeleteTerminalBatch(ctx, statuses, 450)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		n, err := repo.DeleteTerminalBatch(ctx, []string{"cancelled"}, 450)
		assert.Error(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestOrderRepo_AttachETA(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success with estimate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		minutes := 17.0
		debug := []byte(`{"ruleApplied":"5..10 => +10"}`)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("order-123"), gomock.Eq(&minutes), gomock.Eq(now), gomock.Any()).
			Return(nil, nil)

		err := repo.AttachETA(ctx, "order-123", &minutes, debug, now)
		assert.NoError(t, err)
	})

	t.Run("nil estimate still persists debug", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("order-123"), gomock.Nil(), gomock.Eq(now), gomock.Any()).
			Return(nil, nil)

		err := repo.AttachETA(ctx, "order-123", nil, []byte(`{}`), now)
		assert.NoError(t, err)
	})
}

func TestOrderRepo_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("order-123")).
			Return(nil, nil)

		err := repo.Delete(ctx, "order-123")
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("order-123")).
			Return(nil, expectedErr)

		err := repo.Delete(ctx, "order-123")
		assert.Equal(t, expectedErr, err)
	})
}
