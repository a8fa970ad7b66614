package postgresql

import (
	"context"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) rental.HistoryRepository {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO status_history (
            order_item_id, status, changed_at
        ) VALUES ($1, $2, $3)
    `, entry.OrderItemID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByOrderItemID(ctx context.Context, orderItemID string) ([]*repository.HistoryEntry, error) {
	var entries []*repository.HistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM status_history
        WHERE order_item_id = $1
        ORDER BY changed_at ASC
    `, orderItemID)
	return entries, err
}
