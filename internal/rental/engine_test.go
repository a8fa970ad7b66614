package rental

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"tailorshop-backend/internal/cache"
	mock_db "tailorshop-backend/internal/db/mocks"
	"tailorshop-backend/internal/lifecycle"
	mock_rental "tailorshop-backend/internal/rental/mocks"
	"tailorshop-backend/internal/repository"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type engineMocks struct {
	db        *mock_db.MockDB
	tx        *mock_db.MockTx
	orders    *mock_rental.MockOrderItemRepository
	payments  *mock_rental.MockPaymentRepository
	inventory *mock_rental.MockInventoryRepository
	damages   *mock_rental.MockDamageRepository
	history   *mock_rental.MockHistoryRepository
	outbox    *mock_rental.MockOutboxTaskRepository
}

func newTestEngine(t *testing.T) (*Engine, *engineMocks) {
	ctrl := gomock.NewController(t)
	m := &engineMocks{
		db:        mock_db.NewMockDB(ctrl),
		tx:        mock_db.NewMockTx(ctrl),
		orders:    mock_rental.NewMockOrderItemRepository(ctrl),
		payments:  mock_rental.NewMockPaymentRepository(ctrl),
		inventory: mock_rental.NewMockInventoryRepository(ctrl),
		damages:   mock_rental.NewMockDamageRepository(ctrl),
		history:   mock_rental.NewMockHistoryRepository(ctrl),
		outbox:    mock_rental.NewMockOutboxTaskRepository(ctrl),
	}

	engine := NewEngine(m.db, m.orders, m.payments, m.inventory, m.damages, m.history, m.outbox,
		cache.NewOrderCache(m.orders), zap.NewNop())
	engine.timeNow = func() time.Time { return testNow }
	return engine, m
}

// expectTx arms one BeginTx with a tx whose Rollback is always safe to
// call; Commit must be expected separately when the flow should commit.
func (m *engineMocks) expectTx() {
	m.db.EXPECT().BeginTx(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
}

func pendingItem(orderType string) *repository.OrderItem {
	return &repository.OrderItem{
		ID:           "item-1",
		OrderID:      "order-1",
		OrderType:    orderType,
		Status:       string(lifecycle.StatusPending),
		CustomerID:   "cust-1",
		CustomerName: "Alice Reyes",
		ItemName:     "Barong Tagalog",
		RentalStart:  testNow,
		RentalEnd:    testNow.Add(5 * 24 * time.Hour),
		FinalPrice:   1000,
		Downpayment:  500,
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending item with half downpayment", func(t *testing.T) {
		engine, m := newTestEngine(t)
		m.expectTx()

		var created *repository.OrderItem
		m.orders.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, item *repository.OrderItem) error {
				created = item
				return nil
			})
		m.history.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		item, err := engine.Checkout(ctx, NewOrderItem{
			ID:          "item-1",
			OrderID:     "order-1",
			OrderType:   lifecycle.OrderTypeOnline,
			CustomerID:  "cust-1",
			ItemName:    "Barong Tagalog",
			RentalStart: testNow,
			RentalEnd:   testNow.Add(5 * 24 * time.Hour),
			FinalPrice:  1001,
		})

		require.NoError(t, err)
		assert.Equal(t, string(lifecycle.StatusPending), item.Status)
		assert.Equal(t, int64(500), item.Downpayment)
		assert.False(t, item.IsBundle)
		assert.Equal(t, created, item)
	})

	t.Run("bundle composition is recorded", func(t *testing.T) {
		engine, m := newTestEngine(t)
		m.expectTx()
		m.orders.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.history.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		item, err := engine.Checkout(ctx, NewOrderItem{
			ID:          "item-2",
			OrderType:   lifecycle.OrderTypeOnline,
			CustomerID:  "cust-1",
			BundleItems: []string{"Gown", "Veil", "Tiara"},
			RentalStart: testNow,
			RentalEnd:   testNow.Add(48 * time.Hour),
			FinalPrice:  5000,
		})

		require.NoError(t, err)
		assert.True(t, item.IsBundle)
		assert.Len(t, item.BundleItems, 3)
	})

	t.Run("rejects end date before start", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		_, err := engine.Checkout(ctx, NewOrderItem{
			ID:          "item-3",
			OrderType:   lifecycle.OrderTypeOnline,
			CustomerID:  "cust-1",
			RentalStart: testNow,
			RentalEnd:   testNow.Add(-time.Hour),
			FinalPrice:  1000,
		})

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeValidation, refusal.Code)
	})

	t.Run("rejects single-garment bundle", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		_, err := engine.Checkout(ctx, NewOrderItem{
			ID:          "item-4",
			OrderType:   lifecycle.OrderTypeWalkIn,
			CustomerID:  "cust-1",
			BundleItems: []string{"Gown"},
			RentalStart: testNow,
			RentalEnd:   testNow.Add(time.Hour),
			FinalPrice:  1000,
		})

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeValidation, refusal.Code)
	})
}

func (m *engineMocks) expectTransitionWrites() {
	m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.history.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
}

func TestAcceptOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("online order moves to ready_to_pickup", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))

		m.orders.EXPECT().GetByID(gomock.Any(), item.ID).Return(item, nil)
		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.expectTransitionWrites()

		newStatus, err := engine.AcceptOrder(ctx, item.ID)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusReadyToPickup, newStatus)
	})

	t.Run("walk-in order goes straight to rented without payment check", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeWalkIn))

		m.orders.EXPECT().GetByID(gomock.Any(), item.ID).Return(item, nil)
		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.expectTransitionWrites()

		newStatus, err := engine.AcceptOrder(ctx, item.ID)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusRented, newStatus)
	})
}

func TestDeclineOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("reason is mandatory", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		_, err := engine.DeclineOrder(ctx, item.ID, "   ")

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeValidation, refusal.Code)
	})

	t.Run("reason lands in admin notes", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		var updated *repository.OrderItem
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, it *repository.OrderItem) error {
				updated = it
				return nil
			})
		m.history.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		newStatus, err := engine.DeclineOrder(ctx, item.ID, "fabric stained")

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusCancelled, newStatus)
		assert.Equal(t, string(lifecycle.StatusCancelled), updated.Status)
		assert.Equal(t, "Declined: fabric stained", updated.AdminNotes)
	})
}

func TestAdvanceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("re-requesting the current status is a no-op success", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		status, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusRented, nil)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusRented, status)
	})

	t.Run("alias statuses normalize before comparison", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = "pending_review"

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		status, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusPending, nil)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusPending, status)
	})

	t.Run("skipping ahead is refused", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		_, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusReturned, nil)

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeInvalidTransition, refusal.Code)
	})

	t.Run("cancelling a rented item is refused", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		_, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusCancelled,
			&AdvanceOptions{DeclineReason: "changed my mind"})

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeInvalidTransition, refusal.Code)
	})

	t.Run("rented requires the downpayment for online orders", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusReadyToPickup)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.payments.EXPECT().SumByOrderItemTx(gomock.Any(), m.tx, item.ID).Return(int64(400), nil)

		_, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusRented, nil)

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodePaymentRequired, refusal.Code)

		target, queued := engine.takeQueuedTransition(item.ID)
		assert.True(t, queued)
		assert.Equal(t, lifecycle.StatusRented, target)
	})

	t.Run("rented proceeds once the downpayment is covered", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusReadyToPickup)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.payments.EXPECT().SumByOrderItemTx(gomock.Any(), m.tx, item.ID).Return(int64(500), nil)
		m.expectTransitionWrites()

		status, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusRented, nil)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusRented, status)
	})

	t.Run("returned refuses while a balance is outstanding", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.payments.EXPECT().SumByOrderItemTx(gomock.Any(), m.tx, item.ID).Return(int64(700), nil)

		_, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusReturned, nil)

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodePaymentRequired, refusal.Code)
	})

	t.Run("on-time settled return carries no penalty", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.payments.EXPECT().SumByOrderItemTx(gomock.Any(), m.tx, item.ID).Return(int64(1000), nil)
		m.inventory.EXPECT().GetByName(gomock.Any(), item.ItemName).
			Return(&repository.InventoryItem{ID: "inv-1", Name: item.ItemName}, nil)
		m.inventory.EXPECT().UpdateStatus(gomock.Any(), "inv-1", repository.InventoryAvailable, "", "").Return(nil)

		var updated *repository.OrderItem
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, it *repository.OrderItem) error {
				updated = it
				return nil
			})
		m.history.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		status, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusReturned, nil)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusReturned, status)
		assert.Equal(t, int64(0), updated.Penalty)
		assert.Equal(t, 0, updated.PenaltyDays)
	})

	t.Run("late return persists the accrued penalty", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)
		item.RentalEnd = testNow.Add(-3 * 24 * time.Hour)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.payments.EXPECT().SumByOrderItemTx(gomock.Any(), m.tx, item.ID).Return(int64(1000), nil)
		m.inventory.EXPECT().GetByName(gomock.Any(), item.ItemName).
			Return(&repository.InventoryItem{ID: "inv-1", Name: item.ItemName}, nil)
		m.inventory.EXPECT().UpdateStatus(gomock.Any(), "inv-1", repository.InventoryAvailable, "", "").Return(nil)

		var updated *repository.OrderItem
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, it *repository.OrderItem) error {
				updated = it
				return nil
			})
		m.history.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		_, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusReturned, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(300), updated.Penalty)
		assert.Equal(t, 3, updated.PenaltyDays)
	})

	t.Run("damage against a foreign garment is refused", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.payments.EXPECT().SumByOrderItemTx(gomock.Any(), m.tx, item.ID).Return(int64(1000), nil)

		_, err := engine.AdvanceStatus(ctx, item.ID, lifecycle.StatusReturned,
			&AdvanceOptions{DamageByItem: map[string]string{"Someone Else's Coat": "torn"}})

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeValidation, refusal.Code)
	})
}

func TestDeleteOrderItem(t *testing.T) {
	ctx := context.Background()

	t.Run("active items cannot be deleted", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)

		err := engine.DeleteOrderItem(ctx, item.ID)

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeInvalidTransition, refusal.Code)
	})

	t.Run("completed items delete cleanly", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusCompleted)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, item.ID).Return(item, nil)
		m.orders.EXPECT().DeleteTx(gomock.Any(), m.tx, item.ID).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		err := engine.DeleteOrderItem(ctx, item.ID)
		require.NoError(t, err)
	})
}

func TestComputePenalty(t *testing.T) {
	ctx := context.Background()

	t.Run("only rented items accrue penalties", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))

		m.orders.EXPECT().GetByID(gomock.Any(), item.ID).Return(item, nil)

		_, err := engine.ComputePenalty(ctx, item.ID, testNow)

		refusal, ok := lifecycle.AsRefusal(err)
		require.True(t, ok)
		assert.Equal(t, lifecycle.CodeInvalidTransition, refusal.Code)
	})

	t.Run("overdue rented item reports the accrued amount", func(t *testing.T) {
		engine, m := newTestEngine(t)
		item := pendingItem(string(lifecycle.OrderTypeOnline))
		item.Status = string(lifecycle.StatusRented)
		item.RentalEnd = testNow.Add(-2 * 24 * time.Hour)

		m.orders.EXPECT().GetByID(gomock.Any(), item.ID).Return(item, nil)

		assessment, err := engine.ComputePenalty(ctx, item.ID, testNow)

		require.NoError(t, err)
		assert.Equal(t, int64(200), assessment.PenaltyAmount)
		assert.Equal(t, 2, assessment.DaysOverdue)
	})
}
