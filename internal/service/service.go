// Package service implements the order lifecycle: creation, the atomic claim
// protocol, rider progress updates, redirect resolution and the maintenance
// sweep. Concurrency control relies entirely on the store's transaction
// primitive; the service never takes locks of its own.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/cache"
	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
	"github.com/papinesquik/SmokeRider/internal/routing"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOwner      = errors.New("order belongs to another user")
	ErrWrongRider    = errors.New("order is assigned to another rider")
	ErrNotTerminal   = errors.New("order is not in a terminal state")
)

type OrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	ClaimTx(ctx context.Context, tx db.Tx, id, riderID string, now time.Time) error
	UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string, now time.Time) error
	UpdateStatusAndEtaTx(ctx context.Context, tx db.Tx, id, status string, etaMinutes *float64, now time.Time) error
	AttachETA(ctx context.Context, id string, etaMinutes *float64, debug json.RawMessage, now time.Time) error
	LatestByClientAndStatuses(ctx context.Context, clientID string, statuses []string) (*repository.Order, error)
	FindActiveByRider(ctx context.Context, riderID string) (*repository.Order, error)
	ListPending(ctx context.Context, city string, now time.Time) ([]*repository.Order, error)
	DeleteTerminalBatch(ctx context.Context, statuses []string, limit int) (int64, error)
	Delete(ctx context.Context, id string) error
}

type PositionRepository interface {
	GetByUID(ctx context.Context, uid string) (*repository.Position, error)
	Upsert(ctx context.Context, pos *repository.Position) error
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByOrderID(ctx context.Context, orderID string) ([]*repository.HistoryEntry, error)
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

type TxBeginner interface {
	BeginTx(ctx context.Context) (db.Tx, error)
}

type Service struct {
	db        TxBeginner
	orders    OrderRepository
	positions PositionRepository
	history   HistoryRepository
	outbox    OutboxRepository
	router    routing.Client
	cache     *cache.OrderCache
	topic     string
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCache attaches the advisory open-order cache.
func WithCache(c *cache.OrderCache) Option {
	return func(s *Service) { s.cache = c }
}

func New(
	database TxBeginner,
	orders OrderRepository,
	positions PositionRepository,
	history HistoryRepository,
	outbox OutboxRepository,
	router routing.Client,
	eventTopic string,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		db:        database,
		orders:    orders,
		positions: positions,
		history:   history,
		outbox:    outbox,
		router:    router,
		topic:     eventTopic,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// writeStatusChange records a history entry and enqueues the outbox event
// inside the same transaction as the status change itself.
func (s *Service) writeStatusChange(ctx context.Context, tx db.Tx, orderID, clientID string, old, next model.Status, now time.Time) error {
	entry := &repository.HistoryEntry{
		OrderID:   orderID,
		Status:    string(next),
		ChangedAt: now,
	}
	if err := s.history.CreateTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("record status history: %w", err)
	}

	payload, err := json.Marshal(repository.OrderEvent{
		OrderID:   orderID,
		ClientID:  clientID,
		OldStatus: string(old),
		NewStatus: string(next),
		ChangedAt: now,
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	task := &repository.OutboxTask{
		Topic:   s.topic,
		Payload: payload,
	}
	if err := s.outbox.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("enqueue order event: %w", err)
	}
	return nil
}

func (s *Service) cacheSet(order *model.Order) {
	if s.cache != nil {
		s.cache.Set(order)
	}
}

func (s *Service) cacheDelete(orderID string) {
	if s.cache != nil {
		s.cache.Delete(orderID)
	}
}
