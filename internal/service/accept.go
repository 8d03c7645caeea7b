package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/eta"
	"github.com/papinesquik/SmokeRider/internal/metrics"
	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

// AcceptOrder is the atomic claim protocol. Step 1 runs inside a single
// transaction: read the order under a row lock, check the guard, write the
// claim. When several riders race, the store serializes them and everyone
// after the winner sees the guard fail and gets a clean false.
//
// A false return with a nil error is an expected outcome (already claimed,
// expired, not found); a non-nil error means the store itself failed and the
// rider may retry.
func (s *Service) AcceptOrder(ctx context.Context, orderID, riderID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("begin claim transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	row, err := s.orders.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			metrics.ClaimRejectedTotal.WithLabelValues("not_found").Inc()
			return false, nil
		}
		return false, fmt.Errorf("read order for claim: %w", err)
	}

	order, err := row.ToModel()
	if err != nil {
		return false, fmt.Errorf("decode order for claim: %w", err)
	}

	now := s.now()
	if !order.Acceptable(now) {
		metrics.ClaimRejectedTotal.WithLabelValues(claimRejectReason(order, now)).Inc()
		return false, nil
	}

	if err := s.orders.ClaimTx(ctx, tx, orderID, riderID, now); err != nil {
		return false, fmt.Errorf("write claim: %w", err)
	}
	if err := s.writeStatusChange(ctx, tx, order.ID, order.ClientID, model.StatusPending, model.StatusAccepted, now); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit claim: %w", err)
	}

	metrics.OrdersAcceptedTotal.Inc()
	order.Status = model.StatusAccepted
	order.AcceptedBy = &riderID
	order.UpdatedAt = now
	s.cacheSet(order)

	// The claim stands regardless of what happens to the estimate.
	s.enrichETA(ctx, orderID, riderID)

	return true, nil
}

func claimRejectReason(order *model.Order, now time.Time) string {
	switch {
	case order.Status != model.StatusPending:
		return "not_pending"
	case order.AcceptedBy != nil && *order.AcceptedBy != "":
		return "already_claimed"
	case !now.Before(order.ExpiresAt):
		return "expired"
	default:
		return "unknown"
	}
}

// enrichETA is the best-effort second step of acceptance. Every failure is
// logged and swallowed: a missing estimate must never undo a won claim.
func (s *Service) enrichETA(ctx context.Context, orderID, riderID string) {
	log := s.logger.With(zap.String("order_id", orderID), zap.String("rider_id", riderID))

	fail := func(stage string, err error) {
		metrics.EtaEnrichmentFailuresTotal.WithLabelValues(stage).Inc()
		log.Warn("eta enrichment skipped", zap.String("stage", stage), zap.Error(err))
	}

	row, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		fail("refetch", err)
		return
	}
	order, err := row.ToModel()
	if err != nil {
		fail("decode", err)
		return
	}

	clientRow, err := s.positions.GetByUID(ctx, order.ClientID)
	if err != nil {
		fail("client_position", err)
		return
	}
	riderRow, err := s.positions.GetByUID(ctx, riderID)
	if err != nil {
		fail("rider_position", err)
		return
	}

	clientPos := clientRow.ToModel()
	riderPos := riderRow.ToModel()
	if !clientPos.HasCoordinates() || !riderPos.HasCoordinates() {
		fail("coordinates", errors.New("position has no coordinates"))
		return
	}

	var raw *float64
	minutes, err := s.router.TravelMinutes(ctx, *riderPos.Latitude, *riderPos.Longitude, *clientPos.Latitude, *clientPos.Longitude)
	if err != nil {
		// No estimate, but the debug metadata is still worth keeping.
		metrics.EtaEnrichmentFailuresTotal.WithLabelValues("routing").Inc()
		log.Warn("routing call failed", zap.Error(err))
	} else {
		raw = &minutes
	}

	result := eta.Estimate(raw,
		eta.LatLng{Lat: *riderPos.Latitude, Lng: *riderPos.Longitude},
		eta.LatLng{Lat: *clientPos.Latitude, Lng: *clientPos.Longitude},
		s.now(),
	)

	debug, err := json.Marshal(result.Debug)
	if err != nil {
		fail("encode_debug", err)
		return
	}

	if err := s.orders.AttachETA(ctx, orderID, result.Adjusted, debug, s.now()); err != nil {
		fail("persist", err)
		return
	}

	order.EstimatedDeliveryTime = result.Adjusted
	s.cacheSet(order)

	if result.Adjusted != nil {
		log.Info("delivery estimate attached", zap.Float64("minutes", *result.Adjusted))
	}
}
