package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   getHandlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.StaffUser = username
		}

		if strings.HasPrefix(r.URL.Path, "/orders/") {
			parts := strings.Split(r.URL.Path, "/")
			if len(parts) > 2 && parts[2] != "" {
				entry.OrderItemID = parts[2]
			}
		}

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.OrderItemID != "" && strings.HasSuffix(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if view, err := s.engine.GetOrderItem(r.Context(), entry.OrderItemID); err == nil {
						entry.OldStatus = view.Status
						entry.NewStatus = statusRequest.Status
					}
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func getHandlerName(path string, method string) string {
	if strings.HasPrefix(path, "/orders") {
		switch {
		case strings.HasSuffix(path, "/accept"):
			return "handleAccept"
		case strings.HasSuffix(path, "/decline"):
			return "handleDecline"
		case strings.HasSuffix(path, "/payments") && method == http.MethodPost:
			return "handleRecordPayment"
		case strings.HasSuffix(path, "/payments"):
			return "handleListPayments"
		case strings.HasSuffix(path, "/status"):
			return "handleAdvanceStatus"
		case strings.HasSuffix(path, "/penalty"):
			return "handlePenalty"
		case strings.HasSuffix(path, "/history"):
			return "handleHistory"
		case method == http.MethodPost:
			return "handleCheckout"
		case method == http.MethodDelete:
			return "handleDeleteOrderItem"
		case path == "/orders":
			return "handleListOrderItems"
		case method == http.MethodGet:
			return "handleGetOrderItem"
		}
	} else if strings.HasPrefix(path, "/billing") {
		return "handleBillingSummary"
	}

	return "unknown"
}
