package main

import (
	"fmt"
	"time"

	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/nikolayk812/foodfleet/internal/pricing"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type config struct {
	currency  string
	flatFee   decimal.Decimal
	freeAbove *decimal.Decimal
	ownerID   string
	advance   bool
	db        dbConfig
}

type dbConfig struct {
	URL      string
	MaxConns int
	Timeout  time.Duration
}

func (c config) feePolicy() (pricing.FeePolicy, error) {
	cur, err := currency.ParseISO(c.currency)
	if err != nil {
		return pricing.FeePolicy{}, fmt.Errorf("currency[%s] is not valid: %w", c.currency, err)
	}

	policy := pricing.FeePolicy{FlatFee: domain.NewMoney(c.flatFee, cur)}
	if c.freeAbove != nil {
		threshold := domain.NewMoney(*c.freeAbove, cur)
		policy.FreeAbove = &threshold
	}

	if err := policy.Validate(); err != nil {
		return pricing.FeePolicy{}, fmt.Errorf("policy.Validate: %w", err)
	}

	return policy, nil
}
