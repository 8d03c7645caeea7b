// Package watch turns point reads into a lazy, restartable stream of order
// snapshots. Consumers reduce the latest snapshot to a view state instead of
// mutating shared variables from callback sites.
package watch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/model"
)

// Snapshot is one observation of an order. Order is nil when the document has
// disappeared (purged or deleted).
type Snapshot struct {
	Order      *model.Order
	ObservedAt time.Time
}

// Getter is the read side the watcher polls. ErrGone signals a vanished order.
type Getter interface {
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// ErrGone is returned by Getter implementations when the order no longer
// exists; the watcher emits a nil-order snapshot and keeps going.
var ErrGone = errors.New("order gone")

type Watcher struct {
	src      Getter
	interval time.Duration
	logger   *zap.Logger
}

func NewWatcher(src Getter, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{src: src, interval: interval, logger: logger}
}

// Watch emits a snapshot whenever the observed order changes, starting with
// the current state. The channel closes when ctx is done; calling Watch again
// restarts the stream.
func (w *Watcher) Watch(ctx context.Context, orderID string) <-chan Snapshot {
	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		var last *model.Order
		first := true

		emit := func() {
			order, err := w.src.GetOrder(ctx, orderID)
			switch {
			case err == nil:
			case errors.Is(err, ErrGone):
				order = nil
			default:
				w.logger.Warn("watch poll failed", zap.String("order_id", orderID), zap.Error(err))
				return
			}

			if !first && !changed(last, order) {
				return
			}
			first = false
			last = order

			select {
			case out <- Snapshot{Order: order, ObservedAt: time.Now().UTC()}:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				emit()
			}
		}
	}()

	return out
}

func changed(prev, next *model.Order) bool {
	if prev == nil || next == nil {
		return prev != next
	}
	if prev.Status != next.Status || !prev.UpdatedAt.Equal(next.UpdatedAt) {
		return true
	}
	return !floatPtrEqual(prev.EstimatedDeliveryTime, next.EstimatedDeliveryTime)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
