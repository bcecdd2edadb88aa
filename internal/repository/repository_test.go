package repository_test

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/customization"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_cart_lines.up.sql",
			"../migrations/02_orders.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// randomLine builds a line the way the cart store would. Postgres keeps
// microseconds, so AddedAt is truncated to survive the round trip.
func randomLine(cur currency.Unit) domain.CartLine {
	menuItemID := gofakeit.UUID()

	selection := domain.Selection{}
	if gofakeit.Bool() {
		selection.Choose("size", gofakeit.RandomString([]string{"Regular", "Large"}))
	}
	if gofakeit.Bool() {
		selection.Choose("sauce", gofakeit.RandomString([]string{"Chili oil", "Pesto & basil", "50/50"}))
	}
	if gofakeit.Bool() {
		selection.Toggle("extraCheese", true)
	}
	key := customization.CanonicalKey(selection)

	return domain.CartLine{
		ID:           customization.LineID(menuItemID, key),
		MenuItemID:   menuItemID,
		Name:         gofakeit.Dinner(),
		Selection:    selection,
		CanonicalKey: key,
		UnitPrice:    randomMoney(cur),
		Quantity:     gofakeit.IntRange(1, 9),
		AddedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func randomMoney(cur currency.Unit) domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: cur,
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func randomOrder(cur currency.Unit, lines int) domain.Order {
	placedAt := time.Now().UTC().Truncate(time.Microsecond)

	order := domain.Order{
		ID:              uuid.New(),
		OwnerID:         gofakeit.UUID(),
		Subtotal:        domain.ZeroMoney(cur),
		DeliveryFee:     domain.MustParseMoney("5.00", cur),
		DeliveryAddress: gofakeit.Street() + ", " + gofakeit.City(),
		PaymentMethod:   gofakeit.RandomString([]string{"card", "cash", "paypal"}),
		Status:          domain.OrderStatusPending,
		History:         []domain.StatusChange{{Status: domain.OrderStatusPending, At: placedAt}},
		CreatedAt:       placedAt,
	}

	for range lines {
		line := randomLine(cur)
		order.Lines = append(order.Lines, line)
		order.Subtotal, _ = order.Subtotal.Add(line.Total())
	}
	order.Total, _ = order.Subtotal.Add(order.DeliveryFee)

	return order
}
