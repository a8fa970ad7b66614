package lifecycle

import "strings"

// Status is the canonical state of a rental order item. Legacy synonyms
// accumulated by older clients ("accepted", "ready_for_pickup",
// "pending_review", "picked_up") are folded into these values by Normalize
// at the system boundary; no other package checks aliases.
type Status string

const (
	StatusPending       Status = "pending"
	StatusReadyToPickup Status = "ready_to_pickup"
	StatusRented        Status = "rented"
	StatusReturned      Status = "returned"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"

	StatusUnknown Status = ""
)

type OrderType string

const (
	OrderTypeOnline OrderType = "online"
	OrderTypeWalkIn OrderType = "walk_in"
)

var aliases = map[string]Status{
	"pending":          StatusPending,
	"pending_review":   StatusPending,
	"ready_to_pickup":  StatusReadyToPickup,
	"ready_for_pickup": StatusReadyToPickup,
	"accepted":         StatusReadyToPickup,
	"rented":           StatusRented,
	"picked_up":        StatusRented,
	"returned":         StatusReturned,
	"completed":        StatusCompleted,
	"cancelled":        StatusCancelled,
	"canceled":         StatusCancelled,
}

// Normalize maps a raw status string, alias or canonical, to its canonical
// Status. Unrecognized or empty input yields StatusUnknown.
func Normalize(raw string) Status {
	if s, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// next holds the forward chain per order type. Walk-in orders skip the
// pickup step entirely: the customer is already in the shop.
var next = map[OrderType]map[Status]Status{
	OrderTypeOnline: {
		StatusPending:       StatusReadyToPickup,
		StatusReadyToPickup: StatusRented,
		StatusRented:        StatusReturned,
		StatusReturned:      StatusCompleted,
	},
	OrderTypeWalkIn: {
		StatusPending:  StatusRented,
		StatusRented:   StatusReturned,
		StatusReturned: StatusCompleted,
	},
}

// NextStatus returns the single legal forward step from the given state,
// or StatusUnknown when the state is terminal or unrecognized.
func NextStatus(orderType OrderType, from Status) Status {
	chain, ok := next[orderType]
	if !ok {
		chain = next[OrderTypeOnline]
	}
	return chain[from]
}

// CanTransition reports whether from -> to is a defined transition for the
// order type. Cancellation is only reachable from pending; nothing leaves
// cancelled or completed.
func CanTransition(orderType OrderType, from, to Status) bool {
	if to == StatusCancelled {
		return from == StatusPending
	}
	return NextStatus(orderType, from) == to
}

// IsTerminal reports whether no transition leads out of the status.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the order item still needs staff attention and
// belongs in the hot cache.
func IsActive(s Status) bool {
	switch s {
	case StatusPending, StatusReadyToPickup, StatusRented, StatusReturned:
		return true
	}
	return false
}

// SortRank orders statuses for listings: pending (and anything
// unrecognized) surfaces first so items needing review lead the page.
func SortRank(s Status) int {
	switch s {
	case StatusPending, StatusUnknown:
		return 0
	case StatusReadyToPickup:
		return 1
	case StatusRented:
		return 2
	case StatusReturned:
		return 3
	case StatusCompleted:
		return 4
	default:
		return 5
	}
}
