package repository

import (
	"encoding/json"
	"fmt"

	"github.com/papinesquik/SmokeRider/internal/model"
)

// ToModel converts a stored row into the domain order, coercing loosely typed
// JSONB content defensively. Unknown statuses collapse to pending and broken
// item entries fall back to safe defaults instead of failing the read.
func (o *Order) ToModel() (*model.Order, error) {
	items, err := model.DecodeItems(o.Items)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}

	return &model.Order{
		ID:                    o.ID,
		ClientID:              o.ClientID,
		Items:                 items,
		Total:                 o.Total,
		Status:                model.DecodeStatus(o.Status),
		CreatedAt:             o.CreatedAt,
		ExpiresAt:             o.ExpiresAt,
		AcceptedBy:            o.AcceptedBy,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		EtaCalculatedAt:       o.EtaCalculatedAt,
		UpdatedAt:             o.UpdatedAt,
	}, nil
}

// NewOrderRow converts a domain order into its stored shape.
func NewOrderRow(m *model.Order) (*Order, error) {
	items, err := json.Marshal(m.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	return &Order{
		ID:                    m.ID,
		ClientID:              m.ClientID,
		Items:                 items,
		Total:                 m.Total,
		Status:                string(m.Status),
		CreatedAt:             m.CreatedAt,
		ExpiresAt:             m.ExpiresAt,
		AcceptedBy:            m.AcceptedBy,
		EstimatedDeliveryTime: m.EstimatedDeliveryTime,
		EtaCalculatedAt:       m.EtaCalculatedAt,
		UpdatedAt:             m.UpdatedAt,
	}, nil
}

func (p *Position) ToModel() *model.Position {
	return &model.Position{
		UID:       p.UID,
		City:      p.City,
		Street:    p.Street,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		UpdatedAt: p.UpdatedAt,
	}
}

func (u *User) ToModel() *model.User {
	return &model.User{
		UID:              u.UID,
		Email:            u.Email,
		Role:             u.Role,
		Active:           u.Active,
		Online:           u.Online,
		FCMToken:         u.FCMToken,
		IdentityDocument: u.IdentityDocument,
	}
}
