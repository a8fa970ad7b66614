package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type checkoutRequest struct {
	ID            string   `json:"id"`
	OrderID       string   `json:"order_id"`
	OrderType     string   `json:"order_type"`
	CustomerID    string   `json:"customer_id"`
	CustomerName  string   `json:"customer_name"`
	ItemName      string   `json:"item_name"`
	BundleItems   []string `json:"bundle_items,omitempty"`
	RentalStart   string   `json:"rental_start"`
	RentalEnd     string   `json:"rental_end"`
	FinalPrice    int64    `json:"final_price"`
	CustomerNotes string   `json:"customer_notes,omitempty"`
}

type orderItemResponse struct {
	ID            string   `json:"id"`
	OrderID       string   `json:"order_id"`
	OrderType     string   `json:"order_type"`
	Status        string   `json:"status"`
	CustomerID    string   `json:"customer_id"`
	CustomerName  string   `json:"customer_name"`
	ItemName      string   `json:"item_name"`
	IsBundle      bool     `json:"is_bundle"`
	BundleItems   []string `json:"bundle_items,omitempty"`
	RentalStart   string   `json:"rental_start"`
	RentalEnd     string   `json:"rental_end"`
	FinalPrice    int64    `json:"final_price"`
	Downpayment   int64    `json:"downpayment"`
	Penalty       int64    `json:"penalty"`
	PenaltyDays   int      `json:"penalty_days"`
	CustomerNotes string   `json:"customer_notes,omitempty"`
	AdminNotes    string   `json:"admin_notes,omitempty"`
	DamageNotes   string   `json:"damage_notes,omitempty"`

	AmountPaid       *int64 `json:"amount_paid,omitempty"`
	RemainingBalance *int64 `json:"remaining_balance,omitempty"`
}

func toOrderItemResponse(item *repository.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:            item.ID,
		OrderID:       item.OrderID,
		OrderType:     item.OrderType,
		Status:        string(lifecycle.Normalize(item.Status)),
		CustomerID:    item.CustomerID,
		CustomerName:  item.CustomerName,
		ItemName:      item.ItemName,
		IsBundle:      item.IsBundle,
		BundleItems:   item.BundleItems,
		RentalStart:   item.RentalStart.Format(dateLayout),
		RentalEnd:     item.RentalEnd.Format(dateLayout),
		FinalPrice:    item.FinalPrice,
		Downpayment:   item.Downpayment,
		Penalty:       item.Penalty,
		PenaltyDays:   item.PenaltyDays,
		CustomerNotes: item.CustomerNotes,
		AdminNotes:    item.AdminNotes,
		DamageNotes:   item.DamageNotes,
	}
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start, err := time.Parse(dateLayout, req.RentalStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid rental_start, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.RentalEnd)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid rental_end, expected YYYY-MM-DD")
		return
	}

	item, err := s.engine.Checkout(r.Context(), rental.NewOrderItem{
		ID:            req.ID,
		OrderID:       req.OrderID,
		OrderType:     lifecycle.OrderType(req.OrderType),
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		ItemName:      req.ItemName,
		BundleItems:   req.BundleItems,
		RentalStart:   start,
		RentalEnd:     end,
		FinalPrice:    req.FinalPrice,
		CustomerNotes: req.CustomerNotes,
	})
	if err != nil {
		respondRefusal(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderItemResponse(item))
}

func (s *Server) handleGetOrderItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	view, err := s.engine.GetOrderItem(r.Context(), id)
	if err != nil {
		respondRefusal(w, err)
		return
	}

	resp := toOrderItemResponse(&view.OrderItem)
	resp.AmountPaid = &view.AmountPaid
	resp.RemainingBalance = &view.RemainingBalance
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListOrderItems(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	items, err := s.engine.ListOrderItems(r.Context(), activeOnly, limit)
	if err != nil {
		respondRefusal(w, err)
		return
	}

	resp := make([]orderItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toOrderItemResponse(item))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": resp, "count": len(resp)})
}

func (s *Server) handleDeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.engine.DeleteOrderItem(r.Context(), id); err != nil {
		respondRefusal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	newStatus, err := s.engine.AcceptOrder(r.Context(), id)
	if err != nil {
		respondRefusal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(newStatus)})
}

func (s *Server) handleDecline(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	newStatus, err := s.engine.DeclineOrder(r.Context(), id, req.Reason)
	if err != nil {
		respondRefusal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(newStatus)})
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.engine.RecordPayment(r.Context(), id, req.Amount)
	if err != nil {
		respondRefusal(w, err)
		return
	}

	resp := map[string]interface{}{
		"amount_paid":       result.AmountPaid,
		"remaining_balance": result.RemainingBalance,
		"raw_balance":       result.RawBalance,
	}
	if result.NewStatus != "" {
		resp["new_status"] = string(result.NewStatus)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	payments, err := s.engine.ListPayments(r.Context(), id)
	if err != nil {
		respondRefusal(w, err)
		return
	}

	type paymentResponse struct {
		ID         string    `json:"id"`
		Amount     int64     `json:"amount"`
		RecordedAt time.Time `json:"recorded_at"`
	}
	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentResponse{ID: p.ID, Amount: p.Amount, RecordedAt: p.RecordedAt})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"payments": resp})
}

func (s *Server) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status       string            `json:"status"`
		Reason       string            `json:"reason,omitempty"`
		DamageByItem map[string]string `json:"damage_by_item,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	target := lifecycle.Normalize(req.Status)
	if target == lifecycle.StatusUnknown {
		respondError(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	newStatus, err := s.engine.AdvanceStatus(r.Context(), id, target, &rental.AdvanceOptions{
		DeclineReason: req.Reason,
		DamageByItem:  req.DamageByItem,
	})
	if err != nil {
		respondRefusal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(newStatus)})
}

func (s *Server) handlePenalty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid as_of, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	assessment, err := s.engine.ComputePenalty(r.Context(), id, asOf)
	if err != nil {
		respondRefusal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entries, err := s.engine.GetHistory(r.Context(), id)
	if err != nil {
		respondRefusal(w, err)
		return
	}

	type historyResponse struct {
		Status    string    `json:"status"`
		ChangedAt time.Time `json:"changed_at"`
	}
	resp := make([]historyResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, historyResponse{Status: entry.Status, ChangedAt: entry.ChangedAt})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"history": resp})
}

func (s *Server) handleBillingSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.BillingSummary(r.Context())
	if err != nil {
		respondRefusal(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"paid_count":         summary.PaidCount,
		"paid_amount":        summary.PaidAmount,
		"unpaid_count":       summary.UnpaidCount,
		"outstanding_amount": summary.OutstandingAmount,
		"penalties_accrued":  summary.PenaltiesAccrued,
	})
}
