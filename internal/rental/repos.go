//go:generate mockgen -source ./repos.go -destination=./mocks/rental.go -package=mock_rental
package rental

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/repository"
)

type OrderItemRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, item *repository.OrderItem) error
	GetByID(ctx context.Context, id string) (*repository.OrderItem, error)
	// GetByIDTx locks the row for the duration of the transaction so
	// concurrent transitions on the same order item serialize.
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.OrderItem, error)
	UpdateTx(ctx context.Context, tx db.Tx, item *repository.OrderItem) error
	DeleteTx(ctx context.Context, tx db.Tx, id string) error
	List(ctx context.Context, activeOnly bool, limit int) ([]*repository.OrderItem, error)
	GetAllActive(ctx context.Context) ([]*repository.OrderItem, error)
	BillingSummary(ctx context.Context) (*repository.BillingSummary, error)
}

type PaymentRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, payment *repository.Payment) error
	SumByOrderItemTx(ctx context.Context, tx db.Tx, orderItemID string) (int64, error)
	SumByOrderItem(ctx context.Context, orderItemID string) (int64, error)
	ListByOrderItem(ctx context.Context, orderItemID string) ([]*repository.Payment, error)
}

type InventoryRepository interface {
	GetByName(ctx context.Context, name string) (*repository.InventoryItem, error)
	UpdateStatus(ctx context.Context, id, status, damageNotes, damagedBy string) error
}

type DamageRepository interface {
	Create(ctx context.Context, rec *repository.DamageRecord) error
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByOrderItemID(ctx context.Context, orderItemID string) ([]*repository.HistoryEntry, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasks(ctx context.Context, db db.DB, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

type StaffRepository interface {
	CreateUser(ctx context.Context, username, password string) error
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}
