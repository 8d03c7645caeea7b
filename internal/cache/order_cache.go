package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/metrics"
	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

// PendingLister loads the cache's initial working set.
type PendingLister interface {
	ListPending(ctx context.Context, city string, now time.Time) ([]*repository.Order, error)
}

// OrderCache keeps open orders (pending, accepted, on_the_way) in memory so
// hot reads skip the store. It is advisory: the store stays authoritative and
// every mutation path refreshes or evicts its entry.
type OrderCache struct {
	mu     sync.RWMutex
	cache  map[string]*model.Order
	src    PendingLister
	logger *zap.Logger
}

func NewOrderCache(src PendingLister, logger *zap.Logger) *OrderCache {
	return &OrderCache{
		cache:  make(map[string]*model.Order),
		src:    src,
		logger: logger,
	}
}

func (c *OrderCache) LoadInitialData(ctx context.Context) error {
	rows, err := c.src.ListPending(ctx, "", time.Now().UTC())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, row := range rows {
		order, err := row.ToModel()
		if err != nil {
			c.logger.Warn("skipping undecodable order", zap.String("order_id", row.ID), zap.Error(err))
			continue
		}
		c.cache[order.ID] = order
	}
	metrics.OrderCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("order cache warmed", zap.Int("orders", len(c.cache)))
	return nil
}

func (c *OrderCache) Get(orderID string) (*model.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order, found := c.cache[orderID]
	if !found {
		return nil, false
	}
	copied := *order
	return &copied, true
}

// Set stores an open order; terminal orders are evicted instead.
func (c *OrderCache) Set(order *model.Order) {
	if order.Status.Terminal() {
		c.Delete(order.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *order
	c.cache[order.ID] = &copied
	metrics.OrderCacheItems.Set(float64(len(c.cache)))
}

func (c *OrderCache) Delete(orderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[orderID]; found {
		delete(c.cache, orderID)
		metrics.OrderCacheItems.Set(float64(len(c.cache)))
	}
}
