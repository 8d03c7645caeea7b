package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgconn"

	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

// fakeStore is an in-memory stand-in for the postgres layer. A single mutex
// plays the role of the row lock: BeginTx acquires it, Commit and Rollback
// release it, so transactions serialize exactly like competing claims do
// against the real store.
type fakeStore struct {
	mu        sync.Mutex
	orders    map[string]*repository.Order
	positions map[string]*repository.Position
	history   []*repository.HistoryEntry
	outbox    []*repository.OutboxTask

	beginErr error
	claimErr error
	getErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    make(map[string]*repository.Order),
		positions: make(map[string]*repository.Position),
	}
}

type fakeTx struct {
	store *fakeStore
	done  bool
}

func (s *fakeStore) BeginTx(_ context.Context) (db.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.mu.Lock()
	return &fakeTx{store: s}, nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) Exec(_ context.Context, _ string, _ ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func (t *fakeTx) Get(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
	return nil
}

func (t *fakeTx) Select(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
	return nil
}

func copyOrder(o *repository.Order) *repository.Order {
	c := *o
	return &c
}

// OrderRepository

func (s *fakeStore) CreateTx(_ context.Context, _ db.Tx, order *repository.Order) error {
	s.orders[order.ID] = copyOrder(order)
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*repository.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	return copyOrder(o), nil
}

func (s *fakeStore) GetByIDTx(_ context.Context, _ db.Tx, id string) (*repository.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	return copyOrder(o), nil
}

func (s *fakeStore) ClaimTx(_ context.Context, _ db.Tx, id, riderID string, now time.Time) error {
	if s.claimErr != nil {
		return s.claimErr
	}
	o := s.orders[id]
	o.Status = "accepted"
	o.AcceptedBy = &riderID
	o.UpdatedAt = now
	return nil
}

func (s *fakeStore) UpdateStatusTx(_ context.Context, _ db.Tx, id, status string, now time.Time) error {
	o := s.orders[id]
	o.Status = status
	o.UpdatedAt = now
	return nil
}

func (s *fakeStore) UpdateStatusAndEtaTx(_ context.Context, _ db.Tx, id, status string, etaMinutes *float64, now time.Time) error {
	o := s.orders[id]
	o.Status = status
	o.EstimatedDeliveryTime = etaMinutes
	o.UpdatedAt = now
	return nil
}

func (s *fakeStore) AttachETA(_ context.Context, id string, etaMinutes *float64, debug json.RawMessage, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return repository.ErrObjectNotFound
	}
	o.EstimatedDeliveryTime = etaMinutes
	o.EtaCalculatedAt = &now
	o.EtaDebug = debug
	o.UpdatedAt = now
	return nil
}

func (s *fakeStore) matchLatest(filter func(*repository.Order) bool) (*repository.Order, error) {
	var matches []*repository.Order
	for _, o := range s.orders {
		if filter(o) {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return nil, repository.ErrObjectNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})
	return copyOrder(matches[0]), nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (s *fakeStore) LatestByClientAndStatuses(_ context.Context, clientID string, statuses []string) (*repository.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchLatest(func(o *repository.Order) bool {
		return o.ClientID == clientID && contains(statuses, o.Status)
	})
}

func (s *fakeStore) FindActiveByRider(_ context.Context, riderID string) (*repository.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchLatest(func(o *repository.Order) bool {
		return o.AcceptedBy != nil && *o.AcceptedBy == riderID &&
			contains([]string{"accepted", "on_the_way"}, o.Status)
	})
}

func (s *fakeStore) ListPending(_ context.Context, city string, now time.Time) ([]*repository.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*repository.Order
	for _, o := range s.orders {
		if o.Status != "pending" || !o.ExpiresAt.After(now) {
			continue
		}
		if city != "" {
			pos, ok := s.positions[o.ClientID]
			if !ok || !strings.EqualFold(pos.City, city) {
				continue
			}
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (s *fakeStore) DeleteTerminalBatch(_ context.Context, statuses []string, limit int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, o := range s.orders {
		if n >= int64(limit) {
			break
		}
		if contains(statuses, o.Status) {
			delete(s.orders, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	return nil
}

// PositionRepository

func (s *fakeStore) GetByUID(_ context.Context, uid string) (*repository.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.positions[uid]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	c := *p
	return &c, nil
}

func (s *fakeStore) Upsert(_ context.Context, pos *repository.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *pos
	s.positions[pos.UID] = &c
	return nil
}

// HistoryRepository

func (s *fakeStore) GetByOrderID(_ context.Context, orderID string) ([]*repository.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*repository.HistoryEntry
	for _, e := range s.history {
		if e.OrderID == orderID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

// historyStore and outboxStore give the shared fake distinct method sets for
// the two CreateTx interfaces.
type historyStore struct{ *fakeStore }

func (h historyStore) CreateTx(_ context.Context, _ db.Tx, entry *repository.HistoryEntry) error {
	c := *entry
	h.fakeStore.history = append(h.fakeStore.history, &c)
	return nil
}

type outboxStore struct{ *fakeStore }

func (o outboxStore) CreateTx(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
	c := *task
	o.fakeStore.outbox = append(o.fakeStore.outbox, &c)
	return nil
}

// fakeRouter returns a canned travel duration.
type fakeRouter struct {
	minutes float64
	err     error
	calls   int
	mu      sync.Mutex
}

func (f *fakeRouter) TravelMinutes(_ context.Context, _, _, _, _ float64) (float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.minutes, nil
}
