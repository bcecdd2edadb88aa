package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/foodfleet/internal/env"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config{
		currency:  env.GetString("CURRENCY", "USD"),
		flatFee:   valueOr(env.GetDecimal("DELIVERY_FLAT_FEE"), decimal.RequireFromString("5.00")),
		freeAbove: env.GetDecimal("DELIVERY_FREE_ABOVE"),
		ownerID:   env.GetString("OWNER_ID", "guest"),
		advance:   env.GetBool("ADVANCE_ORDER_STATUS", true),
		db: dbConfig{
			URL:      env.GetString("DATABASE_URL", ""),
			MaxConns: env.GetInt("DATABASE_MAX_CONNS", 4),
			Timeout:  10 * time.Second,
		},
	}

	// logger
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	sugar := logger.Sugar()

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalw("failed to start storefront", "error", err)
	}
	defer app.close()

	if err := app.run(ctx); err != nil {
		sugar.Fatalw("storefront session failed", "error", err)
	}
}

func valueOr(d *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if d == nil {
		return fallback
	}

	return *d
}
