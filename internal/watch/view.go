package watch

import (
	"time"

	"github.com/papinesquik/SmokeRider/internal/model"
)

// ViewState is what a waiting or tracking screen should present.
type ViewState string

const (
	ViewWaiting   ViewState = "waiting"
	ViewExpired   ViewState = "expired"
	ViewCancelled ViewState = "cancelled"
	ViewTracking  ViewState = "tracking"
	ViewDelivered ViewState = "delivered"
	ViewGone      ViewState = "gone"
)

// Reduce maps the latest snapshot to a view state. The deadline is evaluated
// locally against the clock: a stored status of pending past its window is
// presented as expired even before any write-back happens.
func Reduce(snap Snapshot, now time.Time) ViewState {
	if snap.Order == nil {
		return ViewGone
	}
	order := snap.Order

	switch order.Status {
	case model.StatusPending:
		if order.DeadlineElapsed(now) {
			return ViewExpired
		}
		return ViewWaiting
	case model.StatusAccepted, model.StatusOnTheWay:
		return ViewTracking
	case model.StatusDelivered:
		return ViewDelivered
	case model.StatusCancelled:
		return ViewCancelled
	case model.StatusExpired:
		return ViewExpired
	default:
		return ViewWaiting
	}
}
