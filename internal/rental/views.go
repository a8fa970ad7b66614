package rental

import (
	"context"
	"errors"
	"fmt"

	"tailorshop-backend/internal/repository"
)

// OrderItemView is an order item with its ledger position attached; the
// paid/balance figures are derived on read, never stored.
type OrderItemView struct {
	repository.OrderItem
	AmountPaid       int64
	RemainingBalance int64
}

func (e *Engine) GetOrderItem(ctx context.Context, orderItemID string) (*OrderItemView, error) {
	item, err := e.orders.GetByID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order item not found")
		}
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}

	paid, err := e.payments.SumByOrderItem(ctx, orderItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	return &OrderItemView{
		OrderItem:        *item,
		AmountPaid:       paid,
		RemainingBalance: flooredBalance(item.FinalPrice - paid),
	}, nil
}

// ListOrderItems returns items for the admin console, pending first.
func (e *Engine) ListOrderItems(ctx context.Context, activeOnly bool, limit int) ([]*repository.OrderItem, error) {
	items, err := e.orders.List(ctx, activeOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

func (e *Engine) GetHistory(ctx context.Context, orderItemID string) ([]*repository.HistoryEntry, error) {
	entries, err := e.history.GetByOrderItemID(ctx, orderItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	return entries, nil
}

func (e *Engine) BillingSummary(ctx context.Context) (*repository.BillingSummary, error) {
	summary, err := e.orders.BillingSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get billing summary: %w", err)
	}
	return summary, nil
}
