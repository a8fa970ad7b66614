//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/penalty"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository"
)

// Engine is the slice of the lifecycle engine the HTTP layer needs.
type Engine interface {
	Checkout(ctx context.Context, in rental.NewOrderItem) (*repository.OrderItem, error)
	AcceptOrder(ctx context.Context, orderItemID string) (lifecycle.Status, error)
	DeclineOrder(ctx context.Context, orderItemID, reason string) (lifecycle.Status, error)
	RecordPayment(ctx context.Context, orderItemID string, amount int64) (*rental.PaymentResult, error)
	AdvanceStatus(ctx context.Context, orderItemID string, target lifecycle.Status, opts *rental.AdvanceOptions) (lifecycle.Status, error)
	ComputePenalty(ctx context.Context, orderItemID string, asOf time.Time) (*penalty.Assessment, error)
	GetOrderItem(ctx context.Context, orderItemID string) (*rental.OrderItemView, error)
	ListOrderItems(ctx context.Context, activeOnly bool, limit int) ([]*repository.OrderItem, error)
	ListPayments(ctx context.Context, orderItemID string) ([]*repository.Payment, error)
	GetHistory(ctx context.Context, orderItemID string) ([]*repository.HistoryEntry, error)
	DeleteOrderItem(ctx context.Context, orderItemID string) error
	BillingSummary(ctx context.Context) (*repository.BillingSummary, error)
}

type StaffRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	engine       Engine
	staffRepo    StaffRepo
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(engine Engine, staffRepo StaffRepo, logger *zap.Logger) *Server {
	return &Server{
		engine:       engine,
		staffRepo:    staffRepo,
		logger:       logger,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond),
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	handler := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("Server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.AuditManager.Shutdown(ctx)
	s.logger.Info("Server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/orders", s.handleCheckout).Methods(http.MethodPost)
	r.HandleFunc("/orders", s.handleListOrderItems).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", s.handleGetOrderItem).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", s.handleDeleteOrderItem).Methods(http.MethodDelete)
	r.HandleFunc("/orders/{id}/accept", s.handleAccept).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/decline", s.handleDecline).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/payments", s.handleRecordPayment).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/payments", s.handleListPayments).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", s.handleAdvanceStatus).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/penalty", s.handlePenalty).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/billing/summary", s.handleBillingSummary).Methods(http.MethodGet)

	protected := s.auditLogMiddleware(s.basicAuthMiddleware(r))

	outer := http.NewServeMux()
	outer.Handle("/metrics", promhttp.Handler())
	outer.Handle("/", protected)
	return outer
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.staffRepo.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondRefusal maps engine errors onto HTTP statuses: validation
// problems are 400s, business-rule refusals 409s with their code so the
// console can open the right dialog, lookups 404, the rest 500.
func respondRefusal(w http.ResponseWriter, err error) {
	if refusal, ok := lifecycle.AsRefusal(err); ok {
		status := http.StatusConflict
		if refusal.Code == lifecycle.CodeValidation {
			status = http.StatusBadRequest
		}
		respondJSON(w, status, map[string]string{
			"error": refusal.Detail,
			"code":  string(refusal.Code),
		})
		return
	}
	if err.Error() == "order item not found" {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
}
