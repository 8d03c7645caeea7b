package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/repository"
)

type RedirectKind string

const (
	RedirectNone     RedirectKind = "none"
	RedirectTracking RedirectKind = "tracking"
	RedirectWaiting  RedirectKind = "waiting"
)

// Redirect tells a freshly logged-in client which screen to resume into.
type Redirect struct {
	Kind    RedirectKind `json:"kind"`
	OrderID string       `json:"orderId,omitempty"`
}

var trackingStatuses = []string{"accepted", "on_the_way", "delivered"}

// FindClientRedirect resumes a customer: a tracked order wins over a pending
// one regardless of recency; within each group the most recently created
// order is picked. Any query failure degrades to "no redirect" so the user is
// never blocked on login.
func (s *Service) FindClientRedirect(ctx context.Context, clientID string) Redirect {
	row, err := s.orders.LatestByClientAndStatuses(ctx, clientID, trackingStatuses)
	if err == nil {
		return Redirect{Kind: RedirectTracking, OrderID: row.ID}
	}
	if !errors.Is(err, repository.ErrObjectNotFound) {
		s.logger.Warn("client redirect query failed", zap.String("client_id", clientID), zap.Error(err))
		return Redirect{Kind: RedirectNone}
	}

	row, err = s.orders.LatestByClientAndStatuses(ctx, clientID, []string{"pending"})
	if err == nil {
		return Redirect{Kind: RedirectWaiting, OrderID: row.ID}
	}
	if !errors.Is(err, repository.ErrObjectNotFound) {
		s.logger.Warn("client redirect query failed", zap.String("client_id", clientID), zap.Error(err))
	}
	return Redirect{Kind: RedirectNone}
}

// FindRiderRedirect resumes a rider into the order they are working, if any.
func (s *Service) FindRiderRedirect(ctx context.Context, riderID string) Redirect {
	row, err := s.orders.FindActiveByRider(ctx, riderID)
	if err == nil {
		return Redirect{Kind: RedirectTracking, OrderID: row.ID}
	}
	if !errors.Is(err, repository.ErrObjectNotFound) {
		s.logger.Warn("rider redirect query failed", zap.String("rider_id", riderID), zap.Error(err))
	}
	return Redirect{Kind: RedirectNone}
}
