package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodfleet/internal/customization"
	"github.com/nikolayk812/foodfleet/internal/db"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.CartSnapshot, error) {
	if ownerID == "" {
		return domain.CartSnapshot{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("q.GetCart: %w", err)
	}

	lines, err := mapGetCartRowsToDomain(rows)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.CartSnapshot{Lines: lines}, nil
}

// SaveCart replaces whatever was stored for ownerID with the given lines,
// keeping their order.
func (r *cartRepository) SaveCart(ctx context.Context, ownerID string, cart domain.CartSnapshot) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	for _, line := range cart.Lines {
		if !domain.ValidQuantity(line.Quantity) {
			return fmt.Errorf("line[%s]: %w: %d", line.ID, domain.ErrInvalidQuantity, line.Quantity)
		}
	}

	return execTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		if _, err := q.DeleteCart(ctx, ownerID); err != nil {
			return fmt.Errorf("q.DeleteCart: %w", err)
		}

		for i, line := range cart.Lines {
			err := q.AddLine(ctx, db.AddLineParams{
				OwnerID:           ownerID,
				LineID:            line.ID,
				Position:          int32(i),
				MenuItemID:        line.MenuItemID,
				Name:              line.Name,
				Customization:     line.CanonicalKey,
				UnitPriceAmount:   line.UnitPrice.Amount,
				UnitPriceCurrency: line.UnitPrice.Currency.String(),
				Quantity:          int32(line.Quantity),
				AddedAt:           line.AddedAt,
			})
			if err != nil {
				return fmt.Errorf("q.AddLine[%s]: %w", line.ID, err)
			}
		}

		return nil
	})
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteCart(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteCart: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartLine, error) {
	parsedCurrency, err := currency.ParseISO(row.UnitPriceCurrency)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("currency[%s] is not valid: %w", row.UnitPriceCurrency, err)
	}

	selection, err := customization.ParseCanonicalKey(row.Customization)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("customization[%s] is not valid: %w", row.Customization, err)
	}

	return domain.CartLine{
		ID:           row.LineID,
		MenuItemID:   row.MenuItemID,
		Name:         row.Name,
		Selection:    selection,
		CanonicalKey: row.Customization,
		UnitPrice:    domain.Money{Amount: row.UnitPriceAmount, Currency: parsedCurrency},
		Quantity:     int(row.Quantity),
		AddedAt:      row.AddedAt,
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartLine, error) {
	var lines []domain.CartLine

	for _, row := range rows {
		line, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}
