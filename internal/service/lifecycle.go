package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/eta"
	"github.com/papinesquik/SmokeRider/internal/metrics"
	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

// CreateOrder validates the cart, computes the total server-side and persists
// a pending order with a fixed acceptance deadline.
func (s *Service) CreateOrder(ctx context.Context, clientID string, items []model.OrderItem) (*model.Order, error) {
	if clientID == "" {
		return nil, errors.New("client id required")
	}
	if err := model.ValidateItems(items); err != nil {
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Items:     items,
		Total:     model.ComputeTotal(items),
		Status:    model.StatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(model.AcceptanceWindow),
		UpdatedAt: now,
	}

	row, err := repository.NewOrderRow(order)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := s.orders.CreateTx(ctx, tx, row); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if err := s.writeStatusChange(ctx, tx, order.ID, clientID, "", model.StatusPending, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	s.cacheSet(order)
	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("client_id", clientID),
		zap.String("total", order.Total.String()),
	)
	return order, nil
}

// CancelOrder is customer-initiated and only valid while the order is still
// pending; the lifecycle table refuses everything else.
func (s *Service) CancelOrder(ctx context.Context, orderID, clientID string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	order, err := s.getForUpdate(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if order.ClientID != clientID {
		return ErrNotOwner
	}
	if err := model.CheckTransition(order.Status, model.StatusCancelled); err != nil {
		return err
	}

	now := s.now()
	if err := s.orders.UpdateStatusTx(ctx, tx, orderID, string(model.StatusCancelled), now); err != nil {
		return fmt.Errorf("write cancel: %w", err)
	}
	if err := s.writeStatusChange(ctx, tx, orderID, order.ClientID, order.Status, model.StatusCancelled, now); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancel: %w", err)
	}

	s.cacheDelete(orderID)
	s.logger.Info("order cancelled", zap.String("order_id", orderID))
	return nil
}

// MarkOnTheWay moves an accepted order into delivery. A prior positive
// estimate is shrunk by the dispatch rule; without one the estimate is left
// untouched.
func (s *Service) MarkOnTheWay(ctx context.Context, orderID, riderID string) (*model.Order, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin dispatch transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	order, err := s.getForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AcceptedBy == nil || *order.AcceptedBy != riderID {
		return nil, ErrWrongRider
	}
	if err := model.CheckTransition(order.Status, model.StatusOnTheWay); err != nil {
		return nil, err
	}

	newEta := order.EstimatedDeliveryTime
	if newEta != nil && *newEta > 0 {
		v := eta.DecrementForDispatch(*newEta)
		newEta = &v
	}

	now := s.now()
	if err := s.orders.UpdateStatusAndEtaTx(ctx, tx, orderID, string(model.StatusOnTheWay), newEta, now); err != nil {
		return nil, fmt.Errorf("write dispatch: %w", err)
	}
	if err := s.writeStatusChange(ctx, tx, orderID, order.ClientID, order.Status, model.StatusOnTheWay, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit dispatch: %w", err)
	}

	order.Status = model.StatusOnTheWay
	order.EstimatedDeliveryTime = newEta
	order.UpdatedAt = now
	s.cacheSet(order)
	return order, nil
}

// MarkDelivered completes the delivery.
func (s *Service) MarkDelivered(ctx context.Context, orderID, riderID string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin deliver transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	order, err := s.getForUpdate(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if order.AcceptedBy == nil || *order.AcceptedBy != riderID {
		return ErrWrongRider
	}
	if err := model.CheckTransition(order.Status, model.StatusDelivered); err != nil {
		return err
	}

	now := s.now()
	if err := s.orders.UpdateStatusTx(ctx, tx, orderID, string(model.StatusDelivered), now); err != nil {
		return fmt.Errorf("write delivered: %w", err)
	}
	if err := s.writeStatusChange(ctx, tx, orderID, order.ClientID, order.Status, model.StatusDelivered, now); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delivered: %w", err)
	}

	s.cacheDelete(orderID)
	s.logger.Info("order delivered", zap.String("order_id", orderID), zap.String("rider_id", riderID))
	return nil
}

// ExpireIfElapsed writes back the expired status once a client observed the
// deadline pass. Expiry is never enforced by a server timer: a pending order
// nobody looks at stays pending in storage.
func (s *Service) ExpireIfElapsed(ctx context.Context, orderID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("begin expire transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	order, err := s.getForUpdate(ctx, tx, orderID)
	if err != nil {
		return false, err
	}

	now := s.now()
	if !order.DeadlineElapsed(now) {
		return false, nil
	}

	if err := s.orders.UpdateStatusTx(ctx, tx, orderID, string(model.StatusExpired), now); err != nil {
		return false, fmt.Errorf("write expired: %w", err)
	}
	if err := s.writeStatusChange(ctx, tx, orderID, order.ClientID, order.Status, model.StatusExpired, now); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit expired: %w", err)
	}

	s.cacheDelete(orderID)
	return true, nil
}

// DeleteTerminal lets a customer clear their own finished order.
func (s *Service) DeleteTerminal(ctx context.Context, orderID, clientID string) error {
	row, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	order, err := row.ToModel()
	if err != nil {
		return err
	}
	if order.ClientID != clientID {
		return ErrNotOwner
	}
	if !order.Status.Terminal() {
		return ErrNotTerminal
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	s.cacheDelete(orderID)
	return nil
}

// GetOrder prefers the advisory cache and falls back to the store. Cached
// reads can lag a concurrent mutation; claim decisions never rely on this
// path, AcceptOrder re-reads under the row lock.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.cache != nil {
		if order, ok := s.cache.Get(orderID); ok {
			return order, nil
		}
	}

	row, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return row.ToModel()
}

// ListPending returns claimable orders for the rider list, optionally scoped
// to the rider's city.
func (s *Service) ListPending(ctx context.Context, city string) ([]*model.Order, error) {
	rows, err := s.orders.ListPending(ctx, city, s.now())
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("list_pending").Inc()
		return nil, err
	}

	orders := make([]*model.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.ToModel()
		if err != nil {
			s.logger.Warn("skipping undecodable order", zap.String("order_id", row.ID), zap.Error(err))
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// OrderHistory exposes the recorded status changes of an order.
func (s *Service) OrderHistory(ctx context.Context, orderID string) ([]*repository.HistoryEntry, error) {
	return s.history.GetByOrderID(ctx, orderID)
}

// UpdatePosition stores the caller's current position, used for city matching
// and delivery-time geocoding.
func (s *Service) UpdatePosition(ctx context.Context, pos *model.Position) error {
	if pos.UID == "" {
		return errors.New("position uid required")
	}
	if pos.City == "" {
		return errors.New("position city required")
	}
	return s.positions.Upsert(ctx, &repository.Position{
		UID:       pos.UID,
		City:      pos.City,
		Street:    pos.Street,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
	})
}

func (s *Service) getForUpdate(ctx context.Context, tx db.Tx, orderID string) (*model.Order, error) {
	row, err := s.orders.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("read order: %w", err)
	}
	return row.ToModel()
}
