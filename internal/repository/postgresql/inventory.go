package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

type InventoryRepo struct {
	db db.DB
}

func NewInventoryRepo(db db.DB) rental.InventoryRepository {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) GetByName(ctx context.Context, name string) (*repository.InventoryItem, error) {
	var item repository.InventoryItem
	err := r.db.Get(ctx, &item, "SELECT * FROM inventory_items WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepo) UpdateStatus(ctx context.Context, id, status, damageNotes, damagedBy string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE inventory_items
        SET status = $1, damage_notes = $2, damaged_by = $3, updated_at = $4
        WHERE id = $5
    `, status, damageNotes, damagedBy, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
