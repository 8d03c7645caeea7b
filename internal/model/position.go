package model

import "time"

// Position is a user's current whereabouts, one record per uid. City drives
// rider eligibility; coordinates feed the delivery-time estimate.
type Position struct {
	UID       string    `json:"uid"`
	City      string    `json:"city"`
	Street    *string   `json:"street,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasCoordinates reports whether the position can be geocoded.
func (p *Position) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

type User struct {
	UID              string  `json:"uid"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	Active           bool    `json:"active"`
	Online           bool    `json:"online"`
	FCMToken         *string `json:"fcmToken,omitempty"`
	IdentityDocument *string `json:"identityDocument,omitempty"`
}

const (
	RoleCustomer = "customer"
	RoleRider    = "rider"
	RoleAdmin    = "admin"
)
