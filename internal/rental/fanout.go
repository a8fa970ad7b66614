package rental

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/metrics"
	"tailorshop-backend/internal/repository"
)

// constituents lists the inventory garments an order item covers: the
// bundle members for a bundle, otherwise the single named garment.
func constituents(item *repository.OrderItem) []string {
	if item.IsBundle {
		return item.BundleItems
	}
	return []string{item.ItemName}
}

// validateDamageInput rejects damage maps that reference garments
// outside the order or flag damage with no description, before any state
// is touched.
func validateDamageInput(item *repository.OrderItem, damage map[string]string) error {
	if len(damage) == 0 {
		return nil
	}
	known := make(map[string]bool, len(constituents(item)))
	for _, name := range constituents(item) {
		known[name] = true
	}
	for name, desc := range damage {
		if !known[name] {
			return lifecycle.NewRefusal(lifecycle.CodeValidation, "garment %q is not part of this order item", name)
		}
		if strings.TrimSpace(desc) == "" {
			return lifecycle.NewRefusal(lifecycle.CodeValidation, "damage description for %q must not be empty", name)
		}
	}
	return nil
}

// serializeDamageNotes produces the order-level damage annotation: a
// plain description for a single garment, a name->description JSON map
// for a bundle. Undamaged items do not appear.
func serializeDamageNotes(item *repository.OrderItem, damage map[string]string) string {
	if len(damage) == 0 {
		return ""
	}
	if !item.IsBundle {
		return damage[item.ItemName]
	}
	raw, err := json.Marshal(damage)
	if err != nil {
		return ""
	}
	return string(raw)
}

// fanOutReturn pushes per-garment availability and damage updates after
// a committed returned transition. Each constituent is independent: one
// failed write is logged and counted but never rolls back the order
// status or blocks the remaining garments.
func (e *Engine) fanOutReturn(ctx context.Context, item *repository.OrderItem, damage map[string]string) {
	failed := 0
	for _, name := range constituents(item) {
		if err := e.returnConstituent(ctx, item, name, damage[name]); err != nil {
			failed++
			metrics.FanoutFailuresTotal.Inc()
			e.logger.Warn("Inventory update failed for returned garment",
				zap.String("order_item_id", item.ID),
				zap.String("garment", name),
				zap.Error(err))
		}
	}

	if failed > 0 {
		// Leave a breadcrumb for staff; the return itself stands.
		e.flagForReview(ctx, item, failed)
	}
}

func (e *Engine) returnConstituent(ctx context.Context, item *repository.OrderItem, name, damageDesc string) error {
	inv, err := e.inventory.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if damageDesc == "" {
		return e.inventory.UpdateStatus(ctx, inv.ID, repository.InventoryAvailable, "", "")
	}

	if err := e.inventory.UpdateStatus(ctx, inv.ID, repository.InventoryMaintenance, damageDesc, item.CustomerName); err != nil {
		return err
	}
	if err := e.damages.Create(ctx, &repository.DamageRecord{
		InventoryItemID: inv.ID,
		OrderItemID:     item.ID,
		CustomerName:    item.CustomerName,
		Description:     damageDesc,
	}); err != nil {
		return err
	}
	return nil
}

func (e *Engine) flagForReview(ctx context.Context, item *repository.OrderItem, failedCount int) {
	note := "needs_review: inventory update failed for returned garment(s)"
	_, err := e.db.Exec(ctx, `
        UPDATE order_items
        SET admin_notes = CASE WHEN admin_notes = '' THEN $1 ELSE admin_notes || E'\n' || $1 END
        WHERE id = $2
    `, note, item.ID)
	if err != nil {
		e.logger.Warn("Failed to flag order item for review",
			zap.String("order_item_id", item.ID),
			zap.Int("failed_constituents", failedCount),
			zap.Error(err))
	}
}
