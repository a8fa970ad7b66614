package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/metrics"
	"tailorshop-backend/internal/repository"
)

type OrderItemSource interface {
	GetAllActive(ctx context.Context) ([]*repository.OrderItem, error)
}

// OrderCache keeps the active (non-terminal) order items in memory so
// the overdue sweep and hot listings do not hit the database. The
// lifecycle engine refreshes entries after every committed transition.
type OrderCache struct {
	mu     sync.RWMutex
	items  map[string]*repository.OrderItem
	source OrderItemSource
}

func NewOrderCache(source OrderItemSource) *OrderCache {
	return &OrderCache{
		items:  make(map[string]*repository.OrderItem),
		source: source,
	}
}

func (c *OrderCache) LoadInitialData(ctx context.Context) error {
	items, err := c.source.GetAllActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		itemCopy := *item
		c.items[item.ID] = &itemCopy
	}
	metrics.OrderCacheItems.Set(float64(len(c.items)))
	zap.L().Info("Order cache primed", zap.Int("items", len(c.items)))
	return nil
}

func (c *OrderCache) Get(orderItemID string) (*repository.OrderItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, found := c.items[orderItemID]
	if !found {
		return nil, false
	}
	itemCopy := *item
	return &itemCopy, true
}

// Set stores the item, or evicts it once its status goes terminal.
func (c *OrderCache) Set(item *repository.OrderItem) {
	if !lifecycle.IsActive(lifecycle.Normalize(item.Status)) {
		c.Delete(item.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	itemCopy := *item
	c.items[item.ID] = &itemCopy
	metrics.OrderCacheItems.Set(float64(len(c.items)))
}

func (c *OrderCache) Delete(orderItemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.items[orderItemID]; found {
		delete(c.items, orderItemID)
		metrics.OrderCacheItems.Set(float64(len(c.items)))
	}
}

// ListByStatus returns copies of cached items in the given canonical
// status.
func (c *OrderCache) ListByStatus(status lifecycle.Status) []*repository.OrderItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*repository.OrderItem
	for _, item := range c.items {
		if lifecycle.Normalize(item.Status) == status {
			itemCopy := *item
			out = append(out, &itemCopy)
		}
	}
	return out
}

func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
