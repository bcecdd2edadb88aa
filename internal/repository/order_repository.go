package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodfleet/internal/customization"
	"github.com/nikolayk812/foodfleet/internal/db"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/port"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if len(order.History) == 0 {
		return fmt.Errorf("order[%s] has no status history", order.ID)
	}

	if err := validateOrderRecord(order); err != nil {
		return err
	}

	cur := order.Total.Currency

	return execTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:              order.ID,
			OwnerID:         order.OwnerID,
			Currency:        cur.String(),
			Subtotal:        order.Subtotal.Amount,
			DeliveryFee:     order.DeliveryFee.Amount,
			Total:           order.Total.Amount,
			DeliveryAddress: order.DeliveryAddress,
			PaymentMethod:   order.PaymentMethod,
			Status:          order.Status.String(),
			CreatedAt:       order.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("q.CreateOrder: %w", err)
		}

		for i, line := range order.Lines {
			err := q.AddOrderLine(ctx, db.AddOrderLineParams{
				OrderID:       order.ID,
				Position:      int32(i),
				LineID:        line.ID,
				MenuItemID:    line.MenuItemID,
				Name:          line.Name,
				Customization: line.CanonicalKey,
				UnitPrice:     line.UnitPrice.Amount,
				Quantity:      int32(line.Quantity),
				AddedAt:       line.AddedAt,
			})
			if err != nil {
				return fmt.Errorf("q.AddOrderLine[%s]: %w", line.ID, err)
			}
		}

		for _, change := range order.History {
			err := q.AppendStatusChange(ctx, db.AppendStatusChangeParams{
				OrderID:   order.ID,
				Status:    change.Status.String(),
				ChangedAt: change.At,
			})
			if err != nil {
				return fmt.Errorf("q.AppendStatusChange: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	return loadOrder(ctx, r.q, row)
}

// ListOrders reads every order of ownerID, newest first, each with its lines
// and status history. The reads share one transaction so the list is consistent.
func (r *orderRepository) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) ([]domain.Order, error) {
		rows, err := q.ListOrdersByOwner(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("q.ListOrdersByOwner: %w", err)
		}

		orders := make([]domain.Order, 0, len(rows))
		for _, row := range rows {
			order, err := loadOrder(ctx, q, row)
			if err != nil {
				return nil, err
			}
			orders = append(orders, order)
		}

		return orders, nil
	})
}

func loadOrder(ctx context.Context, q *db.Queries, row db.Order) (domain.Order, error) {
	lineRows, err := q.GetOrderLines(ctx, row.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderLines: %w", err)
	}

	historyRows, err := q.GetStatusHistory(ctx, row.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetStatusHistory: %w", err)
	}

	order, err := mapOrderToDomain(row, lineRows, historyRows)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}

// UpdateStatus moves the order from one status to the next and appends the
// change to its history, both or neither.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from domain.OrderStatus, change domain.StatusChange) error {
	return execTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		rowsAffected, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ToStatus:   change.Status.String(),
			ID:         orderID,
			FromStatus: from.String(),
		})
		if err != nil {
			return fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		if rowsAffected == 0 {
			if _, err := q.GetOrder(ctx, orderID); errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
			}
			return fmt.Errorf("%w: order %s is no longer %s", domain.ErrStaleOrder, orderID, from)
		}

		err = q.AppendStatusChange(ctx, db.AppendStatusChangeParams{
			OrderID:   orderID,
			Status:    change.Status.String(),
			ChangedAt: change.At,
		})
		if err != nil {
			return fmt.Errorf("q.AppendStatusChange: %w", err)
		}

		return nil
	})
}

func mapOrderToDomain(row db.Order, lineRows []db.GetOrderLinesRow, historyRows []db.GetStatusHistoryRow) (domain.Order, error) {
	cur, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	status, err := domain.ParseOrderStatus(row.Status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.ParseOrderStatus: %w", err)
	}

	order := domain.Order{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Subtotal:        domain.NewMoney(row.Subtotal, cur),
		DeliveryFee:     domain.NewMoney(row.DeliveryFee, cur),
		Total:           domain.NewMoney(row.Total, cur),
		DeliveryAddress: row.DeliveryAddress,
		PaymentMethod:   row.PaymentMethod,
		Status:          status,
		CreatedAt:       row.CreatedAt,
	}

	for _, lr := range lineRows {
		selection, err := customization.ParseCanonicalKey(lr.Customization)
		if err != nil {
			return domain.Order{}, fmt.Errorf("customization[%s] is not valid: %w", lr.Customization, err)
		}

		order.Lines = append(order.Lines, domain.CartLine{
			ID:           lr.LineID,
			MenuItemID:   lr.MenuItemID,
			Name:         lr.Name,
			Selection:    selection,
			CanonicalKey: lr.Customization,
			UnitPrice:    domain.NewMoney(lr.UnitPrice, cur),
			Quantity:     int(lr.Quantity),
			AddedAt:      lr.AddedAt,
		})
	}

	for _, hr := range historyRows {
		st, err := domain.ParseOrderStatus(hr.Status)
		if err != nil {
			return domain.Order{}, fmt.Errorf("domain.ParseOrderStatus: %w", err)
		}

		order.History = append(order.History, domain.StatusChange{Status: st, At: hr.ChangedAt})
	}

	return order, nil
}

// validateOrderRecord checks what the record store relies on: one currency for
// the totals and every line, and line quantities that fit the quantity column.
func validateOrderRecord(order domain.Order) error {
	cur := order.Total.Currency

	if order.Subtotal.Currency != cur {
		return fmt.Errorf("subtotal: %w", domain.ErrCurrencyMismatch)
	}
	if order.DeliveryFee.Currency != cur {
		return fmt.Errorf("deliveryFee: %w", domain.ErrCurrencyMismatch)
	}

	for _, line := range order.Lines {
		if line.UnitPrice.Currency != cur {
			return fmt.Errorf("line[%s]: %w", line.ID, domain.ErrCurrencyMismatch)
		}
		if !domain.ValidQuantity(line.Quantity) {
			return fmt.Errorf("line[%s]: %w: %d", line.ID, domain.ErrInvalidQuantity, line.Quantity)
		}
	}

	return nil
}
