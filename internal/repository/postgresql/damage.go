package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

type DamageRepo struct {
	db db.DB
}

func NewDamageRepo(db db.DB) rental.DamageRepository {
	return &DamageRepo{db: db}
}

func (r *DamageRepo) Create(ctx context.Context, rec *repository.DamageRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO damage_records (
            id, inventory_item_id, order_item_id, customer_name, description, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `, rec.ID, rec.InventoryItemID, rec.OrderItemID, rec.CustomerName, rec.Description, rec.CreatedAt)
	return err
}
