package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/domain"
)

// MemoryOrders keeps orders in process memory. It backs the demo when no
// database is configured and is handy in tests.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func NewOrderMemory() *MemoryOrders {
	return &MemoryOrders{
		orders: make(map[uuid.UUID]domain.Order),
	}
}

func (s *MemoryOrders) CreateOrder(_ context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if err := validateOrderRecord(order); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("order[%s] already exists", order.ID)
	}
	s.orders[order.ID] = order.Clone()

	return nil
}

func (s *MemoryOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[orderID]
	if !exists {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}

	return order.Clone(), nil
}

func (s *MemoryOrders) ListOrders(_ context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0)
	for _, order := range s.orders {
		if order.OwnerID == ownerID {
			orders = append(orders, order.Clone())
		}
	}

	slices.SortFunc(orders, func(a, b domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return orders, nil
}

func (s *MemoryOrders) UpdateStatus(_ context.Context, orderID uuid.UUID, from domain.OrderStatus, change domain.StatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[orderID]
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.Status != from {
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrStaleOrder, orderID, from)
	}

	order = order.Clone()
	order.Status = change.Status
	order.History = append(order.History, change)
	s.orders[orderID] = order

	return nil
}
