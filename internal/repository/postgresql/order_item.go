package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

type OrderItemRepo struct {
	db db.DB
}

func NewOrderItemRepo(db db.DB) rental.OrderItemRepository {
	return &OrderItemRepo{db: db}
}

const orderItemColumns = `
        id, order_id, order_type, status, customer_id, customer_name,
        item_name, is_bundle, bundle_items, rental_start, rental_end,
        final_price, downpayment, penalty, penalty_days,
        customer_notes, admin_notes, damage_notes, created_at, updated_at`

func (r *OrderItemRepo) CreateTx(ctx context.Context, tx db.Tx, item *repository.OrderItem) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO order_items (`+orderItemColumns+`
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
    `, item.ID, item.OrderID, item.OrderType, item.Status, item.CustomerID, item.CustomerName,
		item.ItemName, item.IsBundle, item.BundleItems, item.RentalStart, item.RentalEnd,
		item.FinalPrice, item.Downpayment, item.Penalty, item.PenaltyDays,
		item.CustomerNotes, item.AdminNotes, item.DamageNotes, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *OrderItemRepo) GetByID(ctx context.Context, id string) (*repository.OrderItem, error) {
	var item repository.OrderItem
	err := r.db.Get(ctx, &item, "SELECT * FROM order_items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *OrderItemRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.OrderItem, error) {
	var item repository.OrderItem
	err := tx.Get(ctx, &item, "SELECT * FROM order_items WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *OrderItemRepo) UpdateTx(ctx context.Context, tx db.Tx, item *repository.OrderItem) error {
	_, err := tx.Exec(ctx, `
        UPDATE order_items
        SET
            status = $1,
            penalty = $2,
            penalty_days = $3,
            admin_notes = $4,
            damage_notes = $5,
            updated_at = $6
        WHERE id = $7
    `, item.Status, item.Penalty, item.PenaltyDays, item.AdminNotes, item.DamageNotes, item.UpdatedAt, item.ID)
	return err
}

func (r *OrderItemRepo) DeleteTx(ctx context.Context, tx db.Tx, id string) error {
	_, err := tx.Exec(ctx, "DELETE FROM order_items WHERE id = $1", id)
	return err
}

// List returns order items for the admin console with pending (or
// unknown) statuses surfaced first.
func (r *OrderItemRepo) List(ctx context.Context, activeOnly bool, limit int) ([]*repository.OrderItem, error) {
	query := "SELECT * FROM order_items"
	args := []interface{}{}

	if activeOnly {
		query += " WHERE status NOT IN ('completed', 'cancelled')"
	}

	query += `
        ORDER BY
            CASE WHEN status IN ('pending', 'pending_review') OR status = '' THEN 0 ELSE 1 END,
            created_at DESC`

	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var items []*repository.OrderItem
	err := r.db.Select(ctx, &items, query, args...)
	return items, err
}

func (r *OrderItemRepo) GetAllActive(ctx context.Context) ([]*repository.OrderItem, error) {
	query := `
        SELECT * FROM order_items
        WHERE status NOT IN ('completed', 'cancelled')
        ORDER BY created_at ASC
    `
	var items []*repository.OrderItem
	err := r.db.Select(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active order items: %w", err)
	}
	return items, nil
}

// BillingSummary aggregates paid/unpaid figures across non-cancelled
// order items, deriving amount paid from the payments ledger.
func (r *OrderItemRepo) BillingSummary(ctx context.Context) (*repository.BillingSummary, error) {
	query := `
        WITH totals AS (
            SELECT oi.id, oi.final_price, oi.penalty, COALESCE(SUM(p.amount), 0) AS paid
            FROM order_items oi
            LEFT JOIN payments p ON p.order_item_id = oi.id
            WHERE oi.status <> 'cancelled'
            GROUP BY oi.id
        )
        SELECT
            COUNT(*) FILTER (WHERE paid >= final_price)                  AS paid_count,
            COALESCE(SUM(paid), 0)                                      AS paid_amount,
            COUNT(*) FILTER (WHERE paid < final_price)                  AS unpaid_count,
            COALESCE(SUM(GREATEST(final_price - paid, 0)), 0)           AS outstanding_amount,
            COALESCE(SUM(penalty), 0)                                   AS penalties_accrued
        FROM totals
    `
	var summary repository.BillingSummary
	if err := r.db.Get(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("failed to build billing summary: %w", err)
	}
	return &summary, nil
}
