package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	// ListOrders returns the orders of ownerID, newest first.
	ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error)
	// UpdateStatus records change only if the order is still in status from.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from domain.OrderStatus, change domain.StatusChange) error
}
