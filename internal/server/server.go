//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
	"github.com/papinesquik/SmokeRider/internal/service"
	"github.com/papinesquik/SmokeRider/internal/watch"
)

// OrderService is everything the HTTP surface needs from the core.
type OrderService interface {
	CreateOrder(ctx context.Context, clientID string, items []model.OrderItem) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	AcceptOrder(ctx context.Context, orderID, riderID string) (bool, error)
	MarkOnTheWay(ctx context.Context, orderID, riderID string) (*model.Order, error)
	MarkDelivered(ctx context.Context, orderID, riderID string) error
	CancelOrder(ctx context.Context, orderID, clientID string) error
	ExpireIfElapsed(ctx context.Context, orderID string) (bool, error)
	DeleteTerminal(ctx context.Context, orderID, clientID string) error
	ListPending(ctx context.Context, city string) ([]*model.Order, error)
	OrderHistory(ctx context.Context, orderID string) ([]*repository.HistoryEntry, error)
	FindClientRedirect(ctx context.Context, clientID string) service.Redirect
	FindRiderRedirect(ctx context.Context, riderID string) service.Redirect
	UpdatePosition(ctx context.Context, pos *model.Position) error
	Sweep(ctx context.Context) (int, error)
}

// watchPollInterval paces the snapshot stream behind /orders/{id}/watch.
const watchPollInterval = 2 * time.Second

type Server struct {
	svc     OrderService
	watcher *watch.Watcher
	logger  *zap.Logger
	server  *http.Server
}

func New(svc OrderService, logger *zap.Logger) *Server {
	return &Server{
		svc:     svc,
		watcher: watch.NewWatcher(watchSource{svc: svc}, watchPollInterval, logger),
		logger:  logger,
	}
}

// watchSource adapts the service read to the watcher's contract: a missing
// order is reported as gone, not as a failure.
type watchSource struct {
	svc OrderService
}

func (g watchSource) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := g.svc.GetOrder(ctx, orderID)
	if errors.Is(err, service.ErrOrderNotFound) {
		return nil, watch.ErrGone
	}
	return order, err
}

func (s *Server) Run(port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.logger.Info("http server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogMiddleware)

	r.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders", s.handleListPending).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", s.handleDeleteOrder).Methods(http.MethodDelete)
	r.HandleFunc("/orders/{id}/history", s.handleOrderHistory).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/watch", s.handleWatchOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/accept", s.handleAcceptOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/dispatch", s.handleDispatchOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/deliver", s.handleDeliverOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/cancel", s.handleCancelOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/expire", s.handleExpireOrder).Methods(http.MethodPost)

	r.HandleFunc("/clients/{uid}/redirect", s.handleClientRedirect).Methods(http.MethodGet)
	r.HandleFunc("/riders/{uid}/redirect", s.handleRiderRedirect).Methods(http.MethodGet)

	r.HandleFunc("/positions/{uid}", s.handleUpdatePosition).Methods(http.MethodPut)

	r.HandleFunc("/admin/sweep", s.handleSweep).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
