package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, _ := newTestService(store, &fakeRouter{})

	for i := 0; i < 3; i++ {
		seedPending(store, fmt.Sprintf("cancelled-%d", i), "client-1", baseTime).Status = "cancelled"
	}
	for i := 0; i < 2; i++ {
		seedPending(store, fmt.Sprintf("expired-%d", i), "client-1", baseTime).Status = "expired"
	}
	seedPending(store, "still-pending", "client-1", baseTime)
	seedPending(store, "done", "client-1", baseTime).Status = "delivered"

	deleted, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)

	assert.Contains(t, store.orders, "still-pending")
	assert.Contains(t, store.orders, "done", "delivered orders are kept for the customer to clear")

	deleted, err = svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted, "an immediate second sweep removes nothing")
}
