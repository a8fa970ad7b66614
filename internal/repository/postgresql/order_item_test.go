package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_db "tailorshop-backend/internal/db/mocks"
	"tailorshop-backend/internal/repository"
	"tailorshop-backend/internal/repository/postgresql"
)

func testOrderItem() *repository.OrderItem {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &repository.OrderItem{
		ID:           "item-123",
		OrderID:      "order-456",
		OrderType:    "online",
		Status:       "pending",
		CustomerID:   "cust-789",
		CustomerName: "Alice Reyes",
		ItemName:     "Barong Tagalog",
		RentalStart:  now,
		RentalEnd:    now.Add(5 * 24 * time.Hour),
		FinalPrice:   1000,
		Downpayment:  500,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestOrderItemRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		mockTx := mock_db.NewMockTx(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)
		item := testOrderItem()

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(item.ID),
			gomock.Eq(item.OrderID),
			gomock.Eq(item.OrderType),
			gomock.Eq(item.Status),
			gomock.Eq(item.CustomerID),
			gomock.Eq(item.CustomerName),
			gomock.Eq(item.ItemName),
			gomock.Eq(item.IsBundle),
			gomock.Eq(item.BundleItems),
			gomock.Eq(item.RentalStart),
			gomock.Eq(item.RentalEnd),
			gomock.Eq(item.FinalPrice),
			gomock.Eq(item.Downpayment),
			gomock.Eq(item.Penalty),
			gomock.Eq(item.PenaltyDays),
			gomock.Eq(item.CustomerNotes),
			gomock.Eq(item.AdminNotes),
			gomock.Eq(item.DamageNotes),
			gomock.Eq(item.CreatedAt),
			gomock.Eq(item.UpdatedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, item)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		mockTx := mock_db.NewMockTx(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("insert failed"))

		err := repo.CreateTx(ctx, mockTx, testOrderItem())
		assert.Error(t, err)
	})
}

func TestOrderItemRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found maps to ErrObjectNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("missing")).
			Return(pgx.ErrNoRows)

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)
		want := testOrderItem()

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(want.ID)).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.OrderItem) = *want
				return nil
			})

		got, err := repo.GetByID(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestOrderItemRepo_GetByIDTx(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the row for update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		mockTx := mock_db.NewMockTx(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)
		want := testOrderItem()

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(),
			gomock.Eq("SELECT * FROM order_items WHERE id = $1 FOR UPDATE"), gomock.Eq(want.ID)).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.OrderItem) = *want
				return nil
			})

		got, err := repo.GetByIDTx(ctx, mockTx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
	})
}

func TestOrderItemRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("active only filters terminal statuses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, query string, _ ...interface{}) error {
				assert.Contains(t, query, "status NOT IN ('completed', 'cancelled')")
				assert.Contains(t, query, "CASE WHEN status IN ('pending', 'pending_review')")
				return nil
			})

		_, err := repo.List(ctx, true, 0)
		assert.NoError(t, err)
	})

	t.Run("limit is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewOrderItemRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(25)).
			Return(nil)

		_, err := repo.List(ctx, false, 25)
		assert.NoError(t, err)
	})
}

func TestOrderItemRepo_BillingSummary(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	repo := postgresql.NewOrderItemRepo(mockDB)

	mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*repository.BillingSummary) = repository.BillingSummary{
				PaidCount:         3,
				PaidAmount:        4500,
				UnpaidCount:       2,
				OutstandingAmount: 1500,
				PenaltiesAccrued:  200,
			}
			return nil
		})

	summary, err := repo.BillingSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.PaidCount)
	assert.Equal(t, int64(1500), summary.OutstandingAmount)
}
