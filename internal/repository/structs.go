package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrObjectNotFound = errors.New("not found")

// Order is the stored shape of an order. Items and ETA debug metadata live in
// JSONB columns; the service layer decodes them defensively.
type Order struct {
	ID                    string          `db:"id"`
	ClientID              string          `db:"client_id"`
	Items                 json.RawMessage `db:"items"`
	Total                 decimal.Decimal `db:"total"`
	Status                string          `db:"status"`
	CreatedAt             time.Time       `db:"created_at"`
	ExpiresAt             time.Time       `db:"expires_at"`
	AcceptedBy            *string         `db:"accepted_by"`
	EstimatedDeliveryTime *float64        `db:"estimated_delivery_time"`
	EtaCalculatedAt       *time.Time      `db:"eta_calculated_at"`
	EtaDebug              json.RawMessage `db:"eta_debug"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

type Position struct {
	UID       string    `db:"uid"`
	City      string    `db:"city"`
	Street    *string   `db:"street"`
	Latitude  *float64  `db:"latitude"`
	Longitude *float64  `db:"longitude"`
	UpdatedAt time.Time `db:"updated_at"`
}

type User struct {
	UID              string  `db:"uid"`
	Email            string  `db:"email"`
	Role             string  `db:"role"`
	Active           bool    `db:"active"`
	Online           bool    `db:"online"`
	FCMToken         *string `db:"fcm_token"`
	IdentityDocument *string `db:"identity_document"`
}

// HistoryEntry records one status change of an order.
type HistoryEntry struct {
	ID        int64     `db:"id"`
	OrderID   string    `db:"order_id"`
	Status    string    `db:"status"`
	ChangedAt time.Time `db:"changed_at"`
}

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

// OutboxTask is a pending event delivery, written in the same transaction as
// the state change it describes.
type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// OrderEvent is the payload published for every order status change. The
// notifier reacts to transitions into pending; everything else is consumed
// for audit only.
type OrderEvent struct {
	OrderID   string    `json:"order_id"`
	ClientID  string    `json:"client_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}
