package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/papinesquik/SmokeRider/internal/model"
)

func item(qty int, price string) model.OrderItem {
	return model.OrderItem{
		ProductID: "p1",
		Name:      "item",
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
	}
}

func TestValidateItems(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		assert.ErrorIs(t, model.ValidateItems(nil), model.ErrNoItems)
	})

	t.Run("zero quantity", func(t *testing.T) {
		assert.ErrorIs(t, model.ValidateItems([]model.OrderItem{item(0, "10")}), model.ErrInvalidQuantity)
	})

	t.Run("negative price", func(t *testing.T) {
		assert.ErrorIs(t, model.ValidateItems([]model.OrderItem{item(1, "-1")}), model.ErrInvalidPrice)
	})

	t.Run("all-free cart", func(t *testing.T) {
		assert.ErrorIs(t, model.ValidateItems([]model.OrderItem{item(2, "0")}), model.ErrZeroTotal)
	})

	t.Run("valid cart", func(t *testing.T) {
		assert.NoError(t, model.ValidateItems([]model.OrderItem{item(2, "4.50"), item(1, "0")}))
	})
}

func TestComputeTotal(t *testing.T) {
	items := []model.OrderItem{item(3, "4.50"), item(1, "2.05")}

	total := model.ComputeTotal(items)
	assert.True(t, total.Equal(decimal.RequireFromString("15.55")), "got %s", total)

	// Recomputing over the same items is stable.
	assert.True(t, model.ComputeTotal(items).Equal(total))
}

func TestOrderAcceptable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rider := "rider-1"

	base := func() *model.Order {
		return &model.Order{
			Status:    model.StatusPending,
			CreatedAt: now,
			ExpiresAt: now.Add(model.AcceptanceWindow),
		}
	}

	t.Run("fresh pending order", func(t *testing.T) {
		assert.True(t, base().Acceptable(now.Add(time.Minute)))
	})

	t.Run("already claimed", func(t *testing.T) {
		o := base()
		o.AcceptedBy = &rider
		assert.False(t, o.Acceptable(now.Add(time.Minute)))
	})

	t.Run("not pending", func(t *testing.T) {
		o := base()
		o.Status = model.StatusAccepted
		assert.False(t, o.Acceptable(now.Add(time.Minute)))
	})

	t.Run("deadline passed exactly", func(t *testing.T) {
		assert.False(t, base().Acceptable(now.Add(model.AcceptanceWindow)))
	})

	t.Run("one instant before deadline", func(t *testing.T) {
		assert.True(t, base().Acceptable(now.Add(model.AcceptanceWindow-time.Nanosecond)))
	})
}

func TestOrderDeadlineElapsed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := &model.Order{
		Status:    model.StatusPending,
		ExpiresAt: now.Add(model.AcceptanceWindow),
	}

	assert.False(t, o.DeadlineElapsed(now.Add(9*time.Minute)))
	assert.True(t, o.DeadlineElapsed(now.Add(model.AcceptanceWindow)))

	o.Status = model.StatusAccepted
	assert.False(t, o.DeadlineElapsed(now.Add(time.Hour)), "non-pending orders never expire")
}
