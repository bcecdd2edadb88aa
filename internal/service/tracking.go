package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/lifecycle"
	"github.com/nikolayk812/foodfleet/internal/port"
	"go.uber.org/zap"
)

// Tracking applies status updates to stored orders.
type Tracking struct {
	orders  port.OrderRepository
	machine *lifecycle.Machine
	logger  *zap.Logger
}

func NewTracking(orders port.OrderRepository, machine *lifecycle.Machine, logger *zap.Logger) *Tracking {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tracking{
		orders:  orders,
		machine: machine,
		logger:  logger,
	}
}

func (t *Tracking) Order(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := t.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

// History lists the orders placed by ownerID, newest first.
func (t *Tracking) History(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	orders, err := t.orders.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves the stored order to status to. If another actor changed
// the order between the read and the write, domain.ErrStaleOrder is returned and
// nothing is recorded.
func (t *Tracking) UpdateStatus(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) (domain.Order, error) {
	order, err := t.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	next, err := t.machine.Transition(order, to)
	if err != nil {
		return domain.Order{}, fmt.Errorf("machine.Transition: %w", err)
	}

	change := next.History[len(next.History)-1]
	if err := t.orders.UpdateStatus(ctx, orderID, order.Status, change); err != nil {
		t.logger.Warn("order status not recorded",
			zap.Stringer("order_id", orderID),
			zap.Stringer("to", to),
			zap.Error(err))

		return domain.Order{}, fmt.Errorf("orders.UpdateStatus: %w", err)
	}

	return next, nil
}
