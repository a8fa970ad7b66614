package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tailorshop-backend/internal/cache"
	"tailorshop-backend/internal/lifecycle"
	mock_rental "tailorshop-backend/internal/rental/mocks"
	"tailorshop-backend/internal/repository"
)

func TestOrderCache_LoadInitialData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_rental.NewMockOrderItemRepository(ctrl)
	source.EXPECT().GetAllActive(gomock.Any()).Return([]*repository.OrderItem{
		{ID: "item-1", Status: "pending"},
		{ID: "item-2", Status: "rented"},
	}, nil)

	c := cache.NewOrderCache(source)
	require.NoError(t, c.LoadInitialData(context.Background()))
	assert.Equal(t, 2, c.Len())

	item, found := c.Get("item-1")
	require.True(t, found)
	assert.Equal(t, "pending", item.Status)
}

func TestOrderCache_SetEvictsTerminalItems(t *testing.T) {
	c := cache.NewOrderCache(nil)

	c.Set(&repository.OrderItem{ID: "item-1", Status: "rented"})
	assert.Equal(t, 1, c.Len())

	c.Set(&repository.OrderItem{ID: "item-1", Status: "completed"})
	assert.Equal(t, 0, c.Len())

	_, found := c.Get("item-1")
	assert.False(t, found)
}

func TestOrderCache_GetReturnsACopy(t *testing.T) {
	c := cache.NewOrderCache(nil)
	c.Set(&repository.OrderItem{ID: "item-1", Status: "rented", AdminNotes: "original"})

	item, found := c.Get("item-1")
	require.True(t, found)
	item.AdminNotes = "mutated"

	again, _ := c.Get("item-1")
	assert.Equal(t, "original", again.AdminNotes)
}

func TestOrderCache_ListByStatus(t *testing.T) {
	c := cache.NewOrderCache(nil)
	c.Set(&repository.OrderItem{ID: "item-1", Status: "rented"})
	c.Set(&repository.OrderItem{ID: "item-2", Status: "picked_up"})
	c.Set(&repository.OrderItem{ID: "item-3", Status: "pending"})

	rented := c.ListByStatus(lifecycle.StatusRented)
	assert.Len(t, rented, 2)

	pending := c.ListByStatus(lifecycle.StatusPending)
	assert.Len(t, pending, 1)
}

func TestOrderCache_Delete(t *testing.T) {
	c := cache.NewOrderCache(nil)
	c.Set(&repository.OrderItem{ID: "item-1", Status: "pending"})

	c.Delete("item-1")
	assert.Equal(t, 0, c.Len())

	c.Delete("item-1")
	assert.Equal(t, 0, c.Len())
}
