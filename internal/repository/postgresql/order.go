package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `id, client_id, items, total, status, created_at, expires_at, accepted_by, estimated_delivery_time, eta_calculated_at, eta_debug, updated_at`

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO orders (
            id, client_id, items, total, status, created_at, expires_at, accepted_by, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, order.ID, order.ClientID, order.Items, order.Total, order.Status, order.CreatedAt, order.ExpiresAt, order.AcceptedBy, order.UpdatedAt)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDTx reads the order with a row lock. This is the serialization point
// for concurrent claims: whoever holds the lock decides, everyone else waits
// and then re-reads the committed state.
func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) ClaimTx(ctx context.Context, tx db.Tx, id, riderID string, now time.Time) error {
	_, err := tx.Exec(ctx, `
        UPDATE orders
        SET status = 'accepted', accepted_by = $2, updated_at = $3
        WHERE id = $1
    `, id, riderID, now)
	return err
}

func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string, now time.Time) error {
	_, err := tx.Exec(ctx, `
        UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1
    `, id, status, now)
	return err
}

func (r *OrderRepo) UpdateStatusAndEtaTx(ctx context.Context, tx db.Tx, id, status string, etaMinutes *float64, now time.Time) error {
	_, err := tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, estimated_delivery_time = $3, updated_at = $4
        WHERE id = $1
    `, id, status, etaMinutes, now)
	return err
}

// AttachETA persists the best-effort delivery estimate outside of any claim
// transaction. The estimate may be nil when routing failed; the debug
// metadata is kept either way.
func (r *OrderRepo) AttachETA(ctx context.Context, id string, etaMinutes *float64, debug json.RawMessage, now time.Time) error {
	_, err := r.db.Exec(ctx, `
        UPDATE orders
        SET estimated_delivery_time = $2, eta_calculated_at = $3, eta_debug = $4, updated_at = $3
        WHERE id = $1
    `, id, etaMinutes, now, debug)
	return err
}

// LatestByClientAndStatuses returns the most recently created order of the
// client in any of the given statuses, ties broken by id for determinism.
func (r *OrderRepo) LatestByClientAndStatuses(ctx context.Context, clientID string, statuses []string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, `
        SELECT `+orderColumns+` FROM orders
        WHERE client_id = $1 AND status = ANY($2)
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `, clientID, statuses)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindActiveByRider returns the order a rider is currently working, if any.
func (r *OrderRepo) FindActiveByRider(ctx context.Context, riderID string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, `
        SELECT `+orderColumns+` FROM orders
        WHERE accepted_by = $1 AND status = ANY($2)
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `, riderID, []string{"accepted", "on_the_way"})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListPending returns unexpired pending orders, newest first. When city is
// non-empty the client's position must match it case-insensitively.
func (r *OrderRepo) ListPending(ctx context.Context, city string, now time.Time) ([]*repository.Order, error) {
	query := `
        SELECT o.id, o.client_id, o.items, o.total, o.status, o.created_at, o.expires_at,
               o.accepted_by, o.estimated_delivery_time, o.eta_calculated_at, o.eta_debug, o.updated_at
        FROM orders o
    `
	args := []interface{}{now}
	if city != "" {
		query += ` JOIN positions p ON p.uid = o.client_id AND lower(p.city) = lower($2)`
		args = append(args, city)
	}
	query += `
        WHERE o.status = 'pending' AND o.expires_at > $1
        ORDER BY o.created_at DESC
    `

	var orders []*repository.Order
	if err := r.db.Select(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return orders, nil
}

// DeleteTerminalBatch removes up to limit orders in the given statuses and
// reports how many went away.
func (r *OrderRepo) DeleteTerminalBatch(ctx context.Context, statuses []string, limit int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM orders
        WHERE id IN (
            SELECT id FROM orders WHERE status = ANY($1) LIMIT $2
        )
    `, statuses, limit)
	if err != nil {
		return 0, fmt.Errorf("delete terminal orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	return err
}
