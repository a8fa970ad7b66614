package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"pending", StatusPending},
		{"pending_review", StatusPending},
		{"Ready_For_Pickup", StatusReadyToPickup},
		{"accepted", StatusReadyToPickup},
		{"ready_to_pickup", StatusReadyToPickup},
		{"picked_up", StatusRented},
		{"rented", StatusRented},
		{"  returned ", StatusReturned},
		{"canceled", StatusCancelled},
		{"cancelled", StatusCancelled},
		{"completed", StatusCompleted},
		{"", StatusUnknown},
		{"garbage", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestCanTransition_OnlineChain(t *testing.T) {
	assert.True(t, CanTransition(OrderTypeOnline, StatusPending, StatusReadyToPickup))
	assert.True(t, CanTransition(OrderTypeOnline, StatusReadyToPickup, StatusRented))
	assert.True(t, CanTransition(OrderTypeOnline, StatusRented, StatusReturned))
	assert.True(t, CanTransition(OrderTypeOnline, StatusReturned, StatusCompleted))

	// no skipping ahead
	assert.False(t, CanTransition(OrderTypeOnline, StatusPending, StatusRented))
	assert.False(t, CanTransition(OrderTypeOnline, StatusReadyToPickup, StatusReturned))
	// no moving backwards
	assert.False(t, CanTransition(OrderTypeOnline, StatusRented, StatusReadyToPickup))
}

func TestCanTransition_WalkInSkipsPickup(t *testing.T) {
	assert.True(t, CanTransition(OrderTypeWalkIn, StatusPending, StatusRented))
	assert.False(t, CanTransition(OrderTypeWalkIn, StatusPending, StatusReadyToPickup))
	assert.Equal(t, StatusRented, NextStatus(OrderTypeWalkIn, StatusPending))
}

func TestCanTransition_Cancellation(t *testing.T) {
	assert.True(t, CanTransition(OrderTypeOnline, StatusPending, StatusCancelled))
	assert.True(t, CanTransition(OrderTypeWalkIn, StatusPending, StatusCancelled))

	for _, from := range []Status{StatusReadyToPickup, StatusRented, StatusReturned, StatusCompleted, StatusCancelled} {
		assert.False(t, CanTransition(OrderTypeOnline, from, StatusCancelled), "cancel from %s", from)
	}
}

func TestCanTransition_TerminalStatesAreDeadEnds(t *testing.T) {
	targets := []Status{StatusPending, StatusReadyToPickup, StatusRented, StatusReturned, StatusCompleted, StatusCancelled}
	for _, to := range targets {
		assert.False(t, CanTransition(OrderTypeOnline, StatusCompleted, to), "completed -> %s", to)
		assert.False(t, CanTransition(OrderTypeOnline, StatusCancelled, to), "cancelled -> %s", to)
	}
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusRented))
}

func TestSortRank_PendingFirst(t *testing.T) {
	assert.Equal(t, 0, SortRank(StatusPending))
	assert.Equal(t, 0, SortRank(StatusUnknown))
	for _, s := range []Status{StatusReadyToPickup, StatusRented, StatusReturned, StatusCompleted, StatusCancelled} {
		assert.Greater(t, SortRank(s), SortRank(StatusPending), "%s should sort after pending", s)
	}
}

func TestRefusal(t *testing.T) {
	err := NewRefusal(CodePaymentRequired, "paid %d of %d", 400, 500)
	assert.EqualError(t, err, "payment_required: paid 400 of 500")

	r, ok := AsRefusal(err)
	assert.True(t, ok)
	assert.Equal(t, CodePaymentRequired, r.Code)

	_, ok = AsRefusal(assert.AnError)
	assert.False(t, ok)
}
