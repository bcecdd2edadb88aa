package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodfleet/internal/cart"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/lifecycle"
	"github.com/nikolayk812/foodfleet/internal/port"
	"github.com/nikolayk812/foodfleet/internal/pricing"
	"github.com/nikolayk812/foodfleet/internal/repository"
	"github.com/nikolayk812/foodfleet/internal/service"
	"go.uber.org/zap"
)

type application struct {
	config   config
	logger   *zap.Logger
	sugar    *zap.SugaredLogger
	policy   pricing.FeePolicy
	menu     map[string]domain.MenuItem
	pool     *pgxpool.Pool
	carts    port.CartRepository
	checkout *service.Checkout
	tracking *service.Tracking
}

func newApplication(ctx context.Context, cfg config, logger *zap.Logger) (*application, error) {
	policy, err := cfg.feePolicy()
	if err != nil {
		return nil, fmt.Errorf("cfg.feePolicy: %w", err)
	}

	app := &application{
		config: cfg,
		logger: logger,
		sugar:  logger.Sugar(),
		policy: policy,
		menu:   sampleMenu(policy.Currency()),
	}

	var orders port.OrderRepository = repository.NewOrderMemory()

	if cfg.db.URL != "" {
		pool, err := connect(ctx, cfg.db)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		app.pool = pool
		app.carts = repository.NewCart(pool)
		orders = repository.NewOrder(pool)

		app.sugar.Info("connected to PostgreSQL")
	} else {
		app.sugar.Warn("DATABASE_URL not set, orders are kept in memory and carts are not saved")
	}

	app.checkout, err = service.NewCheckout(policy, orders, logger)
	if err != nil {
		return nil, fmt.Errorf("service.NewCheckout: %w", err)
	}

	machine := lifecycle.NewMachine(lifecycle.WithLogger(logger))
	app.tracking = service.NewTracking(orders, machine, logger)

	return app, nil
}

func connect(ctx context.Context, cfg dbConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

func (app *application) close() {
	if app.pool != nil {
		app.pool.Close()
	}
}

// run plays one customer session: fill the cart, check out, follow the order.
func (app *application) run(ctx context.Context) error {
	store, err := app.openCart(ctx)
	if err != nil {
		return err
	}

	adds := []struct {
		itemID    string
		selection domain.Selection
		quantity  int
	}{
		{itemID: "m1", quantity: 2},
		{itemID: "m3", selection: domain.Selection{}.Choose("size", "Large").Toggle("extraCheese", true), quantity: 1},
		{itemID: "m4", selection: domain.Selection{"crust": "Thin"}, quantity: 1},
	}

	for _, add := range adds {
		line, err := store.AddItem(app.menu[add.itemID], add.selection, add.quantity)
		if err != nil {
			return fmt.Errorf("store.AddItem[%s]: %w", add.itemID, err)
		}
		app.sugar.Infow("added to cart", "item", line.Name, "customization", line.CanonicalKey,
			"unit_price", line.UnitPrice.String(), "quantity", line.Quantity)
	}

	totals, err := pricing.ComputeTotals(store.Snapshot(), app.policy)
	if err != nil {
		return fmt.Errorf("pricing.ComputeTotals: %w", err)
	}
	app.sugar.Infow("cart totals", "subtotal", totals.Subtotal.String(),
		"delivery_fee", totals.DeliveryFee.String(), "total", totals.Total.String())

	if err := app.saveCart(ctx, store); err != nil {
		return err
	}

	order, err := app.checkout.PlaceFromCart(ctx, app.config.ownerID, store, service.Details{
		DeliveryAddress: "Home - 123 Main St",
		PaymentMethod:   "new_card",
		AcceptedTerms:   true,
	})
	if err != nil {
		return fmt.Errorf("checkout.PlaceFromCart: %w", err)
	}

	if app.carts != nil {
		if _, err := app.carts.DeleteCart(ctx, app.config.ownerID); err != nil {
			return fmt.Errorf("carts.DeleteCart: %w", err)
		}
	}

	if app.config.advance {
		for _, next := range []domain.OrderStatus{
			domain.OrderStatusConfirmed,
			domain.OrderStatusPreparing,
			domain.OrderStatusOutForDelivery,
			domain.OrderStatusDelivered,
		} {
			order, err = app.tracking.UpdateStatus(ctx, order.ID, next)
			if err != nil {
				return fmt.Errorf("tracking.UpdateStatus[%s]: %w", next, err)
			}

			view := lifecycle.Progress(order)
			app.sugar.Infow("order progress", "order_id", order.ID.String(), "status", view.Status.String(),
				"step", view.Current+1, "of", len(view.Steps), "terminal", view.Terminal)
		}
	}

	history, err := app.tracking.History(ctx, app.config.ownerID)
	if err != nil {
		return fmt.Errorf("tracking.History: %w", err)
	}
	for _, past := range history {
		app.sugar.Infow("order history", "order_id", past.ID.String(), "placed_at", past.CreatedAt,
			"status", past.Status.String(), "total", past.Total.String())
	}

	return nil
}

// openCart restores the cart saved at the end of the previous session, if any.
func (app *application) openCart(ctx context.Context) (*cart.Store, error) {
	opts := []cart.Option{cart.WithLogger(app.logger)}

	if app.carts == nil {
		return cart.New(opts...), nil
	}

	saved, err := app.carts.GetCart(ctx, app.config.ownerID)
	if err != nil {
		return nil, fmt.Errorf("carts.GetCart: %w", err)
	}

	store, err := cart.Restore(saved, opts...)
	if err != nil {
		return nil, fmt.Errorf("cart.Restore: %w", err)
	}

	if !saved.IsEmpty() {
		app.sugar.Infow("restored saved cart", "lines", len(saved.Lines), "quantity", saved.TotalQuantity())
	}

	return store, nil
}

func (app *application) saveCart(ctx context.Context, store *cart.Store) error {
	if app.carts == nil {
		return nil
	}

	if err := app.carts.SaveCart(ctx, app.config.ownerID, store.Snapshot()); err != nil {
		return fmt.Errorf("carts.SaveCart: %w", err)
	}

	return nil
}
