package rental

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tailorshop-backend/internal/cache"
	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/metrics"
	"tailorshop-backend/internal/penalty"
	"tailorshop-backend/internal/repository"
)

const statusEventsTopic = "rental-status-events"

// Engine owns the rental order lifecycle: it enforces transition
// preconditions against the payments ledger, persists status changes
// atomically per order item, and fans out inventory updates when a
// bundle comes back. All transitions on one order item serialize on its
// row lock; different items never block each other.
type Engine struct {
	db        db.DB
	orders    OrderItemRepository
	payments  PaymentRepository
	inventory InventoryRepository
	damages   DamageRepository
	history   HistoryRepository
	outbox    OutboxTaskRepository
	cache     *cache.OrderCache
	logger    *zap.Logger

	dailyRate int64
	timeNow   func() time.Time

	// queuedMu guards transitions parked behind a payment_required
	// refusal; a successful payment re-attempts them.
	queuedMu      sync.Mutex
	queuedTargets map[string]lifecycle.Status
}

func NewEngine(
	database db.DB,
	orders OrderItemRepository,
	payments PaymentRepository,
	inventory InventoryRepository,
	damages DamageRepository,
	history HistoryRepository,
	outbox OutboxTaskRepository,
	orderCache *cache.OrderCache,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		db:            database,
		orders:        orders,
		payments:      payments,
		inventory:     inventory,
		damages:       damages,
		history:       history,
		outbox:        outbox,
		cache:         orderCache,
		logger:        logger,
		dailyRate:     penalty.DefaultDailyRate,
		timeNow:       func() time.Time { return time.Now().UTC() },
		queuedTargets: make(map[string]lifecycle.Status),
	}
}

// NewOrderItem is the checkout payload for one rentable line.
type NewOrderItem struct {
	ID            string
	OrderID       string
	OrderType     lifecycle.OrderType
	CustomerID    string
	CustomerName  string
	ItemName      string
	BundleItems   []string
	RentalStart   time.Time
	RentalEnd     time.Time
	FinalPrice    int64
	CustomerNotes string
}

// AdvanceOptions carries per-transition inputs: the decline reason for
// cancellations, and the per-garment damage descriptions for returns.
type AdvanceOptions struct {
	DeclineReason string
	DamageByItem  map[string]string
}

// Checkout creates the order item in pending. The bundle composition is
// fixed here and never changes afterwards.
func (e *Engine) Checkout(ctx context.Context, in NewOrderItem) (*repository.OrderItem, error) {
	if in.ID == "" || in.CustomerID == "" {
		return nil, lifecycle.NewRefusal(lifecycle.CodeValidation, "order item id and customer id are required")
	}
	if in.FinalPrice <= 0 {
		return nil, lifecycle.NewRefusal(lifecycle.CodeValidation, "final price must be positive")
	}
	if !in.RentalEnd.After(in.RentalStart) {
		return nil, lifecycle.NewRefusal(lifecycle.CodeValidation, "rental end date must be after start date")
	}
	if in.OrderType != lifecycle.OrderTypeOnline && in.OrderType != lifecycle.OrderTypeWalkIn {
		return nil, lifecycle.NewRefusal(lifecycle.CodeValidation, "unknown order type %q", in.OrderType)
	}
	isBundle := len(in.BundleItems) > 0
	if isBundle && len(in.BundleItems) < 2 {
		return nil, lifecycle.NewRefusal(lifecycle.CodeValidation, "a bundle needs at least two garments")
	}

	now := e.timeNow()
	item := &repository.OrderItem{
		ID:            in.ID,
		OrderID:       in.OrderID,
		OrderType:     string(in.OrderType),
		Status:        string(lifecycle.StatusPending),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		ItemName:      in.ItemName,
		IsBundle:      isBundle,
		BundleItems:   in.BundleItems,
		RentalStart:   in.RentalStart,
		RentalEnd:     in.RentalEnd,
		FinalPrice:    in.FinalPrice,
		Downpayment:   in.FinalPrice / 2,
		CustomerNotes: in.CustomerNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := e.orders.CreateTx(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("failed to add order item: %w", err)
	}
	if err := e.history.CreateTx(ctx, tx, &repository.HistoryEntry{
		OrderItemID: item.ID,
		Status:      item.Status,
		ChangedAt:   now,
	}); err != nil {
		return nil, fmt.Errorf("failed to add status history entry: %w", err)
	}
	if err := e.appendStatusEvent(ctx, tx, item, "", item.Status); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	e.cache.Set(item)
	metrics.OrderItemsCreatedTotal.Inc()
	e.logger.Info("Order item created",
		zap.String("order_item_id", item.ID),
		zap.String("order_type", item.OrderType),
		zap.Bool("is_bundle", item.IsBundle))
	return item, nil
}

// AcceptOrder moves a pending item one step forward: ready_to_pickup for
// online orders, straight to rented for walk-ins.
func (e *Engine) AcceptOrder(ctx context.Context, orderItemID string) (lifecycle.Status, error) {
	item, err := e.orders.GetByID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return lifecycle.StatusUnknown, fmt.Errorf("order item not found")
		}
		return lifecycle.StatusUnknown, fmt.Errorf("failed to get order item: %w", err)
	}

	target := lifecycle.NextStatus(lifecycle.OrderType(item.OrderType), lifecycle.StatusPending)
	return e.AdvanceStatus(ctx, orderItemID, target, nil)
}

// DeclineOrder cancels a pending item. The reason is mandatory and lands
// in the admin notes with a "Declined: " prefix.
func (e *Engine) DeclineOrder(ctx context.Context, orderItemID, reason string) (lifecycle.Status, error) {
	return e.AdvanceStatus(ctx, orderItemID, lifecycle.StatusCancelled, &AdvanceOptions{DeclineReason: reason})
}

// AdvanceStatus attempts a transition to target. Re-requesting the
// current status is a no-op success so client retries stay harmless. A
// refused transition leaves no state change behind.
func (e *Engine) AdvanceStatus(ctx context.Context, orderItemID string, target lifecycle.Status, opts *AdvanceOptions) (lifecycle.Status, error) {
	if opts == nil {
		opts = &AdvanceOptions{}
	}
	if target == lifecycle.StatusUnknown {
		return lifecycle.StatusUnknown, e.refuse(lifecycle.NewRefusal(lifecycle.CodeInvalidTransition, "unknown target status"))
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return lifecycle.StatusUnknown, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	item, err := e.orders.GetByIDTx(ctx, tx, orderItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return lifecycle.StatusUnknown, fmt.Errorf("order item not found")
		}
		return lifecycle.StatusUnknown, fmt.Errorf("failed to get order item: %w", err)
	}

	orderType := lifecycle.OrderType(item.OrderType)
	current := lifecycle.Normalize(item.Status)

	if current == target {
		return current, nil
	}
	if !lifecycle.CanTransition(orderType, current, target) {
		return current, e.refuse(lifecycle.NewRefusal(lifecycle.CodeInvalidTransition,
			"cannot move %s order from %s to %s", orderType, current, target))
	}

	switch target {
	case lifecycle.StatusCancelled:
		if strings.TrimSpace(opts.DeclineReason) == "" {
			return current, e.refuse(lifecycle.NewRefusal(lifecycle.CodeValidation, "decline reason is required"))
		}
		item.AdminNotes = appendNote(item.AdminNotes, "Declined: "+strings.TrimSpace(opts.DeclineReason))

	case lifecycle.StatusRented:
		// Walk-in customers pay in person; everyone else must cover
		// the downpayment before the garment leaves the shop.
		if orderType != lifecycle.OrderTypeWalkIn {
			paid, err := e.payments.SumByOrderItemTx(ctx, tx, item.ID)
			if err != nil {
				return current, fmt.Errorf("failed to sum payments: %w", err)
			}
			if paid < item.Downpayment {
				e.queueTransition(item.ID, target)
				return current, e.refuse(lifecycle.NewRefusal(lifecycle.CodePaymentRequired,
					"downpayment not met: paid %d of %d", paid, item.Downpayment))
			}
		}

	case lifecycle.StatusReturned:
		paid, err := e.payments.SumByOrderItemTx(ctx, tx, item.ID)
		if err != nil {
			return current, fmt.Errorf("failed to sum payments: %w", err)
		}
		if item.FinalPrice-paid > 0 {
			e.queueTransition(item.ID, target)
			return current, e.refuse(lifecycle.NewRefusal(lifecycle.CodePaymentRequired,
				"outstanding balance of %d must be settled before return", item.FinalPrice-paid))
		}
		if err := validateDamageInput(item, opts.DamageByItem); err != nil {
			return current, e.refuse(err)
		}

		assessment := penalty.Assess(item.RentalEnd, e.timeNow(), e.dailyRate)
		item.Penalty = assessment.PenaltyAmount
		item.PenaltyDays = assessment.DaysOverdue
		item.DamageNotes = serializeDamageNotes(item, opts.DamageByItem)
	}

	oldStatus := item.Status
	now := e.timeNow()
	item.Status = string(target)
	item.UpdatedAt = now

	if err := e.orders.UpdateTx(ctx, tx, item); err != nil {
		return current, fmt.Errorf("failed to update order item: %w", err)
	}
	if err := e.history.CreateTx(ctx, tx, &repository.HistoryEntry{
		OrderItemID: item.ID,
		Status:      item.Status,
		ChangedAt:   now,
	}); err != nil {
		return current, fmt.Errorf("failed to add status history entry: %w", err)
	}
	if err := e.appendStatusEvent(ctx, tx, item, oldStatus, item.Status); err != nil {
		return current, err
	}
	if err := tx.Commit(ctx); err != nil {
		return current, fmt.Errorf("failed to commit transition: %w", err)
	}

	// The order-level status write above is the authoritative outcome;
	// everything below is best-effort follow-up.
	e.clearQueuedTransition(item.ID)
	e.cache.Set(item)
	metrics.TransitionsTotal.WithLabelValues(string(target)).Inc()
	e.logger.Info("Order item transitioned",
		zap.String("order_item_id", item.ID),
		zap.String("from", oldStatus),
		zap.String("to", item.Status))

	if target == lifecycle.StatusReturned {
		e.fanOutReturn(ctx, item, opts.DamageByItem)
	}

	return target, nil
}

// DeleteOrderItem hard-deletes a terminal order item at staff's request.
func (e *Engine) DeleteOrderItem(ctx context.Context, orderItemID string) error {
	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	item, err := e.orders.GetByIDTx(ctx, tx, orderItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return fmt.Errorf("order item not found")
		}
		return fmt.Errorf("failed to get order item: %w", err)
	}

	if !lifecycle.IsTerminal(lifecycle.Normalize(item.Status)) {
		return e.refuse(lifecycle.NewRefusal(lifecycle.CodeInvalidTransition,
			"only completed or cancelled order items can be deleted (status %s)", item.Status))
	}

	if err := e.orders.DeleteTx(ctx, tx, orderItemID); err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	e.cache.Delete(orderItemID)
	return nil
}

// ComputePenalty is the read-only advisory check used by listings; it
// never writes anything.
func (e *Engine) ComputePenalty(ctx context.Context, orderItemID string, asOf time.Time) (*penalty.Assessment, error) {
	item, err := e.orders.GetByID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order item not found")
		}
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}

	if lifecycle.Normalize(item.Status) != lifecycle.StatusRented {
		return nil, e.refuse(lifecycle.NewRefusal(lifecycle.CodeInvalidTransition,
			"penalty applies only to rented items (status %s)", item.Status))
	}

	assessment := penalty.Assess(item.RentalEnd, asOf, e.dailyRate)
	return &assessment, nil
}

func (e *Engine) appendStatusEvent(ctx context.Context, tx db.Tx, item *repository.OrderItem, oldStatus, newStatus string) error {
	payload, err := json.Marshal(repository.StatusEventPayload{
		OrderItemID: item.ID,
		OrderID:     item.OrderID,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedAt:   e.timeNow(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}
	if err := e.outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		Topic:   statusEventsTopic,
		Payload: payload,
	}); err != nil {
		return fmt.Errorf("failed to enqueue status event: %w", err)
	}
	return nil
}

func (e *Engine) refuse(err error) error {
	if r, ok := lifecycle.AsRefusal(err); ok {
		metrics.RefusalsTotal.WithLabelValues(string(r.Code)).Inc()
	}
	return err
}

func (e *Engine) queueTransition(orderItemID string, target lifecycle.Status) {
	e.queuedMu.Lock()
	defer e.queuedMu.Unlock()
	e.queuedTargets[orderItemID] = target
}

func (e *Engine) clearQueuedTransition(orderItemID string) {
	e.queuedMu.Lock()
	defer e.queuedMu.Unlock()
	delete(e.queuedTargets, orderItemID)
}

func (e *Engine) takeQueuedTransition(orderItemID string) (lifecycle.Status, bool) {
	e.queuedMu.Lock()
	defer e.queuedMu.Unlock()
	target, ok := e.queuedTargets[orderItemID]
	return target, ok
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
