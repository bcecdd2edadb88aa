package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusFailed         OrderStatus = "FAILED"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusFailed,
}

func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderStatuses...)
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range orderStatuses {
		if string(st) == s {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s OrderStatus) String() string {
	return string(s)
}

type StatusChange struct {
	Status OrderStatus
	At     time.Time
}

// Order is created from a cart snapshot at checkout. Lines and money fields are
// frozen at that moment; only Status and History change afterwards.
type Order struct {
	ID      uuid.UUID
	OwnerID string
	Lines   []CartLine

	Subtotal    Money
	DeliveryFee Money
	Total       Money

	DeliveryAddress string
	PaymentMethod   string

	Status  OrderStatus
	History []StatusChange

	CreatedAt time.Time
}

func (o Order) Clone() Order {
	if o.Lines != nil {
		lines := make([]CartLine, len(o.Lines))
		for i, l := range o.Lines {
			lines[i] = l.Clone()
		}
		o.Lines = lines
	}
	o.History = append([]StatusChange(nil), o.History...)

	return o
}
