package repository_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

func TestOrderRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	riderID := "rider-1"
	eta := 17.0

	items := []model.OrderItem{
		{ProductID: "p1", Name: "Cola", Quantity: 3, Price: decimal.RequireFromString("4.50")},
		{ProductID: "p2", Name: "Chips", Quantity: 1, Price: decimal.RequireFromString("2.05")},
	}
	in := &model.Order{
		ID:                    "order-1",
		ClientID:              "client-1",
		Items:                 items,
		Total:                 model.ComputeTotal(items),
		Status:                model.StatusAccepted,
		CreatedAt:             now,
		ExpiresAt:             now.Add(model.AcceptanceWindow),
		AcceptedBy:            &riderID,
		EstimatedDeliveryTime: &eta,
		EtaCalculatedAt:       &now,
		UpdatedAt:             now,
	}

	row, err := repository.NewOrderRow(in)
	require.NoError(t, err)

	out, err := row.ToModel()
	require.NoError(t, err)

	require.Len(t, out.Items, len(in.Items))
	for i, item := range in.Items {
		assert.Equal(t, item.ProductID, out.Items[i].ProductID)
		assert.Equal(t, item.Name, out.Items[i].Name)
		assert.Equal(t, item.Quantity, out.Items[i].Quantity)
		assert.True(t, item.Price.Equal(out.Items[i].Price),
			"price %s survives the trip, got %s", item.Price, out.Items[i].Price)
	}

	assert.True(t, in.Total.Equal(out.Total))
	assert.True(t, model.ComputeTotal(out.Items).Equal(out.Total),
		"total recomputed from the decoded items matches the stored one")

	assert.Equal(t, in.Status, out.Status)
	assert.Equal(t, in.AcceptedBy, out.AcceptedBy)
	assert.Equal(t, in.EstimatedDeliveryTime, out.EstimatedDeliveryTime)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	assert.True(t, in.ExpiresAt.Equal(out.ExpiresAt))
}
