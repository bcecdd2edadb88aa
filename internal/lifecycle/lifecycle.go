// Package lifecycle is the order status state machine.
//
// The happy path runs PENDING -> CONFIRMED -> PREPARING -> OUT_FOR_DELIVERY ->
// DELIVERED. Until the order leaves the kitchen it may be CANCELLED, and it may
// FAIL at any point before delivery. DELIVERED, CANCELLED and FAILED are terminal.
package lifecycle

import (
	"slices"
	"time"

	"github.com/nikolayk812/foodfleet/internal/domain"
	"go.uber.org/zap"
)

var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending: {
		domain.OrderStatusConfirmed,
		domain.OrderStatusCancelled,
		domain.OrderStatusFailed,
	},
	domain.OrderStatusConfirmed: {
		domain.OrderStatusPreparing,
		domain.OrderStatusCancelled,
		domain.OrderStatusFailed,
	},
	domain.OrderStatusPreparing: {
		domain.OrderStatusOutForDelivery,
		domain.OrderStatusCancelled,
		domain.OrderStatusFailed,
	},
	domain.OrderStatusOutForDelivery: {
		domain.OrderStatusDelivered,
		domain.OrderStatusFailed,
	},
	domain.OrderStatusDelivered: nil,
	domain.OrderStatusCancelled: nil,
	domain.OrderStatusFailed:    nil,
}

// Allowed lists the statuses reachable from status in one step.
func Allowed(status domain.OrderStatus) []domain.OrderStatus {
	return slices.Clone(transitions[status])
}

func CanTransition(from, to domain.OrderStatus) bool {
	return slices.Contains(transitions[from], to)
}

// IsTerminal reports whether status has no outgoing transitions.
func IsTerminal(status domain.OrderStatus) bool {
	next, known := transitions[status]
	return known && len(next) == 0
}

// IsFailure reports whether the order ended without being delivered.
func IsFailure(status domain.OrderStatus) bool {
	return status == domain.OrderStatusCancelled || status == domain.OrderStatusFailed
}

// Trigger names who is expected to move an order into a status.
type Trigger string

const (
	TriggerCustomer   Trigger = "customer"
	TriggerRestaurant Trigger = "restaurant"
	TriggerCourier    Trigger = "courier"
	TriggerSystem     Trigger = "system"
)

var triggers = map[domain.OrderStatus]Trigger{
	domain.OrderStatusPending:        TriggerCustomer,
	domain.OrderStatusConfirmed:      TriggerRestaurant,
	domain.OrderStatusPreparing:      TriggerRestaurant,
	domain.OrderStatusOutForDelivery: TriggerCourier,
	domain.OrderStatusDelivered:      TriggerCourier,
	domain.OrderStatusCancelled:      TriggerCustomer,
	domain.OrderStatusFailed:         TriggerSystem,
}

func TriggeredBy(status domain.OrderStatus) Trigger {
	return triggers[status]
}

type Machine struct {
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Machine)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Transition returns a copy of order moved to status to, with the change appended
// to its history. The argument is left untouched. An illegal move means the
// caller tracked the order state wrongly, so it is logged as well as returned.
func (m *Machine) Transition(order domain.Order, to domain.OrderStatus) (domain.Order, error) {
	if !CanTransition(order.Status, to) {
		err := &domain.TransitionError{From: order.Status, To: to}
		m.logger.Warn("illegal order status transition",
			zap.Stringer("order_id", order.ID),
			zap.Stringer("from", order.Status),
			zap.Stringer("to", to),
			zap.Error(err))

		return domain.Order{}, err
	}

	next := order.Clone()
	next.Status = to
	next.History = append(next.History, domain.StatusChange{Status: to, At: m.now()})

	m.logger.Info("order status changed",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("from", order.Status),
		zap.Stringer("to", to),
		zap.String("trigger", string(TriggeredBy(to))))

	return next, nil
}
