package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/lifecycle"
	"github.com/nikolayk812/foodfleet/internal/pricing"
	"github.com/nikolayk812/foodfleet/internal/repository"
	"github.com/nikolayk812/foodfleet/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/currency"
)

func TestTracking_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	orders := repository.NewOrderMemory()
	tracking := newTracking(t, orders)
	order := placeOrder(t, orders)

	path := []domain.OrderStatus{
		domain.OrderStatusConfirmed,
		domain.OrderStatusPreparing,
		domain.OrderStatusOutForDelivery,
		domain.OrderStatusDelivered,
	}
	for _, to := range path {
		got, err := tracking.UpdateStatus(ctx, order.ID, to)
		require.NoError(t, err)
		assert.Equal(t, to, got.Status)
	}

	stored, err := tracking.Order(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusDelivered, stored.Status)
	require.Len(t, stored.History, len(path)+1)
	for i, to := range path {
		assert.Equal(t, domain.StatusChange{Status: to, At: trackedAt}, stored.History[i+1])
	}

	_, err = tracking.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestTracking_UpdateStatus_IllegalLeavesOrderUntouched(t *testing.T) {
	ctx := context.Background()
	orders := repository.NewOrderMemory()
	tracking := newTracking(t, orders)
	order := placeOrder(t, orders)

	_, err := tracking.UpdateStatus(ctx, order.ID, domain.OrderStatusOutForDelivery)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)

	stored, err := orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.Len(t, stored.History, 1)
}

func TestTracking_UpdateStatus_NotFound(t *testing.T) {
	tracking := newTracking(t, repository.NewOrderMemory())

	_, err := tracking.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = tracking.Order(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestTracking_UpdateStatus_Stale(t *testing.T) {
	ctx := context.Background()
	orders := &racingOrders{MemoryOrders: repository.NewOrderMemory()}

	core, logs := observer.New(zapcore.WarnLevel)
	machine := lifecycle.NewMachine(lifecycle.WithClock(func() time.Time { return trackedAt }))
	tracking := service.NewTracking(orders, machine, zap.New(core))

	order := placeOrder(t, orders.MemoryOrders)

	// the restaurant cancels while the courier flow confirms
	orders.interleave = func() {
		err := orders.MemoryOrders.UpdateStatus(ctx, order.ID, domain.OrderStatusPending,
			domain.StatusChange{Status: domain.OrderStatusCancelled, At: trackedAt})
		require.NoError(t, err)
	}

	_, err := tracking.UpdateStatus(ctx, order.ID, domain.OrderStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrStaleOrder)
	assert.Equal(t, 1, logs.FilterMessage("order status not recorded").Len())

	stored, err := orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
	assert.Len(t, stored.History, 2)
}

func TestTracking_History(t *testing.T) {
	ctx := context.Background()
	orders := repository.NewOrderMemory()
	tracking := newTracking(t, orders)

	now := fixedNow
	checkout, err := service.NewCheckout(
		pricing.DefaultPolicy(currency.USD),
		orders,
		zaptest.NewLogger(t),
		service.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		service.WithIDGenerator(uuid.New),
	)
	require.NoError(t, err)

	place := func(ownerID string) domain.Order {
		order, err := checkout.Place(ctx, service.PlaceRequest{
			OwnerID: ownerID,
			Cart:    filledCart(t).Snapshot(),
			Details: fakeDetails(),
		})
		require.NoError(t, err)
		return order
	}

	first := place("alice")
	place("bob")
	second := place("alice")

	_, err = tracking.UpdateStatus(ctx, first.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	history, err := tracking.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, domain.OrderStatusCancelled, history[1].Status)

	history, err = tracking.History(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = tracking.History(ctx, "")
	require.Error(t, err)

	failing := service.NewTracking(failingOrders{}, lifecycle.NewMachine(), nil)
	_, err = failing.History(ctx, "alice")
	require.ErrorIs(t, err, errDatabaseDown)
}

var trackedAt = fixedNow.Add(15 * time.Minute)

// racingOrders runs interleave once, right after the first read.
type racingOrders struct {
	*repository.MemoryOrders
	interleave func()
}

func (r *racingOrders) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := r.MemoryOrders.GetOrder(ctx, orderID)
	if r.interleave != nil {
		interleave := r.interleave
		r.interleave = nil
		interleave()
	}

	return order, err
}

func newTracking(t *testing.T, orders *repository.MemoryOrders) *service.Tracking {
	t.Helper()

	machine := lifecycle.NewMachine(lifecycle.WithClock(func() time.Time { return trackedAt }))

	return service.NewTracking(orders, machine, zaptest.NewLogger(t))
}

func placeOrder(t *testing.T, orders *repository.MemoryOrders) domain.Order {
	t.Helper()

	order, err := newCheckout(t, orders).Place(context.Background(), service.PlaceRequest{
		OwnerID: "guest",
		Cart:    filledCart(t).Snapshot(),
		Details: fakeDetails(),
	})
	require.NoError(t, err)

	return order
}
