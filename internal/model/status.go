package model

import "errors"

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusOnTheWay  Status = "on_the_way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Allowed lifecycle transitions. Delivered, cancelled and expired are terminal.
var transitions = map[Status]map[Status]bool{
	StatusPending:   {StatusAccepted: true, StatusCancelled: true, StatusExpired: true},
	StatusAccepted:  {StatusOnTheWay: true},
	StatusOnTheWay:  {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusExpired:   {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	allowed := transitions[s]
	return allowed != nil && allowed[next]
}

// CheckTransition refuses any move the lifecycle does not permit.
func CheckTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	return nil
}
