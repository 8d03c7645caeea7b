package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/metrics"
)

// sweepBatchSize stays under the store's per-batch operation limit.
const sweepBatchSize = 450

var sweepStatuses = []string{"cancelled", "expired"}

// Sweep purges terminal cancelled and expired orders in bounded batches and
// returns how many were removed. Running it again immediately deletes
// nothing.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := s.orders.DeleteTerminalBatch(ctx, sweepStatuses, sweepBatchSize)
		if err != nil {
			metrics.OperationErrorsTotal.WithLabelValues("sweep").Inc()
			return total, fmt.Errorf("sweep batch: %w", err)
		}
		total += int(n)
		metrics.OrdersSweptTotal.Add(float64(n))
		if n < sweepBatchSize {
			break
		}
	}

	s.logger.Info("maintenance sweep finished", zap.Int("deleted", total))
	return total, nil
}
