package server

import (
	"time"
)

// AuditLogEntry captures one staff-console request end to end, including
// the status move it caused when the request was a transition.
type AuditLogEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Handler     string    `json:"handler"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	StatusCode  int       `json:"status_code"`
	StaffUser   string    `json:"staff_user,omitempty"`
	OrderItemID string    `json:"order_item_id,omitempty"`
	OldStatus   string    `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status,omitempty"`
	Request     string    `json:"request,omitempty"`
	Response    string    `json:"response,omitempty"`
}
