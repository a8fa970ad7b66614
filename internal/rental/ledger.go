package rental

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/metrics"
	"tailorshop-backend/internal/repository"
)

// PaymentResult reports the ledger position after a recording.
// RemainingBalance is floored at zero for display; RawBalance keeps the
// sign so over-payment stays detectable.
type PaymentResult struct {
	AmountPaid       int64
	RemainingBalance int64
	RawBalance       int64
	// NewStatus is set when the payment unblocked a previously refused
	// transition and that transition then went through.
	NewStatus lifecycle.Status
}

// RecordPayment appends a ledger entry for the order item and recomputes
// the running totals from the ledger itself. If a transition was parked
// behind a payment_required refusal, it is re-attempted right away.
//
// Over-payment is allowed: the ledger records what was handed over and
// keeps a negative raw balance rather than rejecting the cash.
func (e *Engine) RecordPayment(ctx context.Context, orderItemID string, amount int64) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, e.refuse(lifecycle.NewRefusal(lifecycle.CodeValidation, "payment amount must be positive"))
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	item, err := e.orders.GetByIDTx(ctx, tx, orderItemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order item not found")
		}
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}
	if lifecycle.Normalize(item.Status) == lifecycle.StatusCancelled {
		return nil, e.refuse(lifecycle.NewRefusal(lifecycle.CodeValidation, "cannot record a payment on a cancelled order"))
	}

	paidBefore, err := e.payments.SumByOrderItemTx(ctx, tx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	amountPaid := paidBefore + amount
	rawBalance := item.FinalPrice - amountPaid

	if err := e.payments.CreateTx(ctx, tx, &repository.Payment{
		OrderItemID:  item.ID,
		Amount:       amount,
		BalanceAfter: rawBalance,
		RecordedAt:   e.timeNow(),
	}); err != nil {
		return nil, fmt.Errorf("failed to append payment: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	metrics.PaymentsRecordedTotal.Inc()
	e.logger.Info("Payment recorded",
		zap.String("order_item_id", item.ID),
		zap.Int64("amount", amount),
		zap.Int64("amount_paid", amountPaid),
		zap.Int64("raw_balance", rawBalance))

	result := &PaymentResult{
		AmountPaid:       amountPaid,
		RemainingBalance: flooredBalance(rawBalance),
		RawBalance:       rawBalance,
	}

	if target, ok := e.takeQueuedTransition(item.ID); ok {
		newStatus, err := e.AdvanceStatus(ctx, item.ID, target, nil)
		if err != nil {
			// Still short, or blocked some other way; the caller will
			// retry once the rest comes in.
			e.logger.Debug("Queued transition still blocked",
				zap.String("order_item_id", item.ID),
				zap.String("target", string(target)),
				zap.Error(err))
		} else {
			result.NewStatus = newStatus
		}
	}

	return result, nil
}

// Balance derives the ledger position of an order item without changing
// anything.
func (e *Engine) Balance(ctx context.Context, orderItemID string) (*PaymentResult, error) {
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

	raw := item.FinalPrice - paid
	return &PaymentResult{
		AmountPaid:       paid,
		RemainingBalance: flooredBalance(raw),
		RawBalance:       raw,
	}, nil
}

func (e *Engine) ListPayments(ctx context.Context, orderItemID string) ([]*repository.Payment, error) {
	payments, err := e.payments.ListByOrderItem(ctx, orderItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func flooredBalance(raw int64) int64 {
	if raw < 0 {
		return 0
	}
	return raw
}
