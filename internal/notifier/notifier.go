// Package notifier consumes order status events and fans out data-only push
// notifications to riders who can take a newly pending order.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papinesquik/SmokeRider/internal/metrics"
	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

// PushSender delivers a single data-only payload to a device token.
type PushSender interface {
	Send(ctx context.Context, token string, data map[string]string) error
}

type UserDirectory interface {
	ListEligibleRiders(ctx context.Context) ([]*repository.User, error)
}

type PositionDirectory interface {
	GetByUID(ctx context.Context, uid string) (*repository.Position, error)
}

type Notifier struct {
	users     UserDirectory
	positions PositionDirectory
	sender    PushSender
	logger    *zap.Logger
}

func New(users UserDirectory, positions PositionDirectory, sender PushSender, logger *zap.Logger) *Notifier {
	return &Notifier{
		users:     users,
		positions: positions,
		sender:    sender,
		logger:    logger,
	}
}

// HandleEvent reacts to an order becoming pending: it resolves the customer's
// city, finds online approved riders whose position matches it
// case-insensitively and pushes to each registered token. Per-token failures
// are logged and never block other recipients.
func (n *Notifier) HandleEvent(ctx context.Context, event repository.OrderEvent) error {
	if event.NewStatus != string(model.StatusPending) || event.OldStatus == string(model.StatusPending) {
		return nil
	}

	log := n.logger.With(zap.String("order_id", event.OrderID), zap.String("client_id", event.ClientID))

	if strings.TrimSpace(event.ClientID) == "" {
		log.Warn("pending order without client id")
		return nil
	}

	clientPos, err := n.positions.GetByUID(ctx, event.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			log.Info("client city unknown, nobody to notify")
			return nil
		}
		return err
	}
	clientCity := strings.TrimSpace(clientPos.City)
	if clientCity == "" {
		log.Info("client city unknown, nobody to notify")
		return nil
	}

	riders, err := n.users.ListEligibleRiders(ctx)
	if err != nil {
		return err
	}
	log.Info("order became pending", zap.String("client_city", clientCity), zap.Int("candidate_riders", len(riders)))

	// token -> uid, deduplicated across riders sharing a device.
	var mu sync.Mutex
	tokens := make(map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	for _, rider := range riders {
		rider := rider
		g.Go(func() error {
			if rider.FCMToken == nil || strings.TrimSpace(*rider.FCMToken) == "" {
				return nil
			}
			pos, err := n.positions.GetByUID(gctx, rider.UID)
			if err != nil {
				if !errors.Is(err, repository.ErrObjectNotFound) {
					n.logger.Warn("rider position lookup failed", zap.String("rider_id", rider.UID), zap.Error(err))
				}
				return nil
			}
			if !strings.EqualFold(strings.TrimSpace(pos.City), clientCity) {
				return nil
			}
			mu.Lock()
			tokens[strings.TrimSpace(*rider.FCMToken)] = rider.UID
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(tokens) == 0 {
		log.Info("no riders in the client's city")
		return nil
	}

	data := map[string]string{
		"kind":       "order_pending",
		"orderId":    event.OrderID,
		"clientCity": clientCity,
	}

	var delivered, failed int
	var dmu sync.Mutex
	g, gctx = errgroup.WithContext(ctx)
	for token := range tokens {
		token := token
		g.Go(func() error {
			if err := n.sender.Send(gctx, token, data); err != nil {
				metrics.PushNotificationsTotal.WithLabelValues("failed").Inc()
				n.logger.Warn("push delivery failed",
					zap.String("token_suffix", tokenSuffix(token)),
					zap.Error(err),
				)
				dmu.Lock()
				failed++
				dmu.Unlock()
				return nil
			}
			metrics.PushNotificationsTotal.WithLabelValues("delivered").Inc()
			dmu.Lock()
			delivered++
			dmu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	log.Info("push fan-out finished", zap.Int("delivered", delivered), zap.Int("failed", failed))
	return nil
}

// HandleMessage decodes a raw event payload and dispatches it.
func (n *Notifier) HandleMessage(ctx context.Context, value []byte) error {
	var event repository.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		n.logger.Warn("dropping undecodable order event", zap.Error(err))
		return nil
	}
	return n.HandleEvent(ctx, event)
}

func tokenSuffix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[len(token)-8:]
}
