package postgresql

import (
	"context"

	"github.com/google/uuid"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

// PaymentRepo is the append-only ledger. There is no Update or Delete on
// purpose: entries are an audit trail.
type PaymentRepo struct {
	db db.DB
}

func NewPaymentRepo(db db.DB) rental.PaymentRepository {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) CreateTx(ctx context.Context, tx db.Tx, payment *repository.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	_, err := tx.Exec(ctx, `
        INSERT INTO payments (
            id, order_item_id, amount, balance_after, recorded_at
        ) VALUES ($1, $2, $3, $4, $5)
    `, payment.ID, payment.OrderItemID, payment.Amount, payment.BalanceAfter, payment.RecordedAt)
	return err
}

func (r *PaymentRepo) SumByOrderItemTx(ctx context.Context, tx db.Tx, orderItemID string) (int64, error) {
	var total int64
	err := tx.Get(ctx, &total, `
        SELECT COALESCE(SUM(amount), 0) FROM payments WHERE order_item_id = $1
    `, orderItemID)
	return total, err
}

func (r *PaymentRepo) SumByOrderItem(ctx context.Context, orderItemID string) (int64, error) {
	var total int64
	err := r.db.Get(ctx, &total, `
        SELECT COALESCE(SUM(amount), 0) FROM payments WHERE order_item_id = $1
    `, orderItemID)
	return total, err
}

func (r *PaymentRepo) ListByOrderItem(ctx context.Context, orderItemID string) ([]*repository.Payment, error) {
	var payments []*repository.Payment
	err := r.db.Select(ctx, &payments, `
        SELECT * FROM payments
        WHERE order_item_id = $1
        ORDER BY recorded_at ASC
    `, orderItemID)
	return payments, err
}
