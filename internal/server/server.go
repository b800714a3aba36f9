//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/cache"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type Storage interface {
	CreateQuoteRequest(ctx context.Context, sess auth.Session, in storage.NewQuoteRequest) (*storage.QuoteRequest, error)
	GetQuoteRequest(ctx context.Context, sess auth.Session, id string) (*storage.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context, sess auth.Session) ([]storage.QuoteRequest, error)
	CreateQuote(ctx context.Context, sess auth.Session, in storage.NewQuote) (*storage.Quote, error)
	GetQuote(ctx context.Context, sess auth.Session, id string) (*storage.Quote, error)
	ListQuotes(ctx context.Context, sess auth.Session) ([]storage.Quote, error)
	UpdateQuoteStatus(ctx context.Context, sess auth.Session, id, status string) (*storage.Quote, error)
	AcceptQuote(ctx context.Context, sess auth.Session, quoteID string) (*storage.ConversionResult, error)
	GetShipment(ctx context.Context, sess auth.Session, id string) (*storage.ShipmentDetail, error)
	ListShipments(ctx context.Context, sess auth.Session) ([]storage.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, sess auth.Session, id string, in storage.ShipmentStatusUpdate) (*storage.Shipment, error)
	AppendTrackingEvent(ctx context.Context, sess auth.Session, shipmentID string, in storage.NewTrackingEvent) (*storage.TrackingEvent, error)
	UpdateShipmentCargo(ctx context.Context, sess auth.Session, id string, upd repository.ShipmentCargoUpdate) (*storage.Shipment, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, username, password, role string) (*repository.User, error)
	Authenticate(ctx context.Context, username, password string) (*repository.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, session *repository.Session) error
	GetByToken(ctx context.Context, token string) (*repository.Session, error)
}

const sessionTTL = 24 * time.Hour

type Server struct {
	storage  Storage
	users    UserRepo
	sessions SessionRepo
	cache    *cache.SessionCache
	logger   *zap.Logger
	server   *http.Server
	timeNow  func() time.Time
}

func New(storage Storage, users UserRepo, sessions SessionRepo, logger *zap.Logger) *Server {
	return &Server{
		storage:  storage,
		users:    users,
		sessions: sessions,
		cache:    cache.NewSessionCache(),
		logger:   logger,
		timeNow:  func() time.Time { return time.Now().UTC() },
	}
}

// Run blocks until the listener fails or Shutdown is called.
func (s *Server) Run(port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// Routes wires the full HTTP surface. Everything except login and metrics
// sits behind the bearer-token middleware.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)

	router.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(s.authMiddleware)

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)

	api.HandleFunc("/quotes/requests", s.handleCreateQuoteRequest).Methods(http.MethodPost)
	api.HandleFunc("/quotes/requests", s.handleListQuoteRequests).Methods(http.MethodGet)
	api.HandleFunc("/quotes/requests/{id}", s.handleGetQuoteRequest).Methods(http.MethodGet)

	api.HandleFunc("/quotes", s.handleCreateQuote).Methods(http.MethodPost)
	api.HandleFunc("/quotes", s.handleListQuotes).Methods(http.MethodGet)
	api.HandleFunc("/quotes/{id}", s.handleGetQuote).Methods(http.MethodGet)
	api.HandleFunc("/quotes/{id}/status", s.handleUpdateQuoteStatus).Methods(http.MethodPatch)
	api.HandleFunc("/quotes/{id}/accept", s.handleAcceptQuote).Methods(http.MethodPost)

	api.HandleFunc("/shipments", s.handleListShipments).Methods(http.MethodGet)
	api.HandleFunc("/shipments/{id}", s.handleGetShipment).Methods(http.MethodGet)
	api.HandleFunc("/shipments/{id}/status", s.handleUpdateShipmentStatus).Methods(http.MethodPatch)
	api.HandleFunc("/shipments/{id}/cargo", s.handleUpdateShipmentCargo).Methods(http.MethodPatch)
	api.HandleFunc("/shipments/{id}/tracking", s.handleAppendTrackingEvent).Methods(http.MethodPost)

	return router
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

// writeError maps the storage error taxonomy onto HTTP statuses. Transaction
// failures come back as 500 and are safe for the client to retry.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrAccessDenied):
		respondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, repository.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
