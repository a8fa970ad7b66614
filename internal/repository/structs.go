package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

// OrderItem is one rentable line of a checkout: a single garment or a
// bundle of garments rented together under one price and date range.
// Amount paid is never stored here; it is always derived from the
// payments ledger so the two cannot drift.
type OrderItem struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	OrderType     string    `db:"order_type"`
	Status        string    `db:"status"`
	CustomerID    string    `db:"customer_id"`
	CustomerName  string    `db:"customer_name"`
	ItemName      string    `db:"item_name"`
	IsBundle      bool      `db:"is_bundle"`
	BundleItems   []string  `db:"bundle_items"`
	RentalStart   time.Time `db:"rental_start"`
	RentalEnd     time.Time `db:"rental_end"`
	FinalPrice    int64     `db:"final_price"`
	Downpayment   int64     `db:"downpayment"`
	Penalty       int64     `db:"penalty"`
	PenaltyDays   int       `db:"penalty_days"`
	CustomerNotes string    `db:"customer_notes"`
	AdminNotes    string    `db:"admin_notes"`
	DamageNotes   string    `db:"damage_notes"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Payment is an append-only ledger entry. BalanceAfter is the signed
// remaining balance snapshotted at recording time; the authoritative
// running total is always recomputed from the amounts.
type Payment struct {
	ID           string    `db:"id"`
	OrderItemID  string    `db:"order_item_id"`
	Amount       int64     `db:"amount"`
	BalanceAfter int64     `db:"balance_after"`
	RecordedAt   time.Time `db:"recorded_at"`
}

type InventoryItem struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Status      string    `db:"status"`
	DamageNotes string    `db:"damage_notes"`
	DamagedBy   string    `db:"damaged_by"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	InventoryAvailable   = "available"
	InventoryRented      = "rented"
	InventoryMaintenance = "maintenance"
)

type DamageRecord struct {
	ID              string    `db:"id"`
	InventoryItemID string    `db:"inventory_item_id"`
	OrderItemID     string    `db:"order_item_id"`
	CustomerName    string    `db:"customer_name"`
	Description     string    `db:"description"`
	CreatedAt       time.Time `db:"created_at"`
}

type HistoryEntry struct {
	ID          int64     `db:"id"`
	OrderItemID string    `db:"order_item_id"`
	Status      string    `db:"status"`
	ChangedAt   time.Time `db:"changed_at"`
}

// BillingSummary is the read-only paid/unpaid projection over order items
// and the payments ledger.
type BillingSummary struct {
	PaidCount         int   `db:"paid_count"`
	PaidAmount        int64 `db:"paid_amount"`
	UnpaidCount       int   `db:"unpaid_count"`
	OutstandingAmount int64 `db:"outstanding_amount"`
	PenaltiesAccrued  int64 `db:"penalties_accrued"`
}
