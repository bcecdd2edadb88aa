// Package pricing derives cart totals from a cart snapshot and a delivery fee
// policy. Totals are always recomputed from the lines; nothing is cached.
package pricing

import (
	"fmt"

	"github.com/nikolayk812/foodfleet/internal/domain"
	"golang.org/x/text/currency"
)

// FeePolicy describes how the delivery fee follows from the subtotal. An empty
// cart never pays a fee.
type FeePolicy struct {
	FlatFee domain.Money
	// FreeAbove waives the fee when the subtotal reaches it. Nil means never.
	FreeAbove *domain.Money
}

// DefaultPolicy is the flat 5.00 delivery fee of the storefront.
func DefaultPolicy(cur currency.Unit) FeePolicy {
	return FeePolicy{FlatFee: domain.MustParseMoney("5.00", cur)}
}

func (p FeePolicy) Currency() currency.Unit {
	return p.FlatFee.Currency
}

func (p FeePolicy) Validate() error {
	if p.FlatFee.IsNegative() {
		return fmt.Errorf("flat fee %s is negative", p.FlatFee)
	}

	if p.FreeAbove != nil {
		if p.FreeAbove.Currency != p.FlatFee.Currency {
			return fmt.Errorf("free-above threshold: %w", domain.ErrCurrencyMismatch)
		}
		if p.FreeAbove.IsNegative() {
			return fmt.Errorf("free-above threshold %s is negative", *p.FreeAbove)
		}
	}

	return nil
}

type Totals struct {
	Subtotal    domain.Money
	DeliveryFee domain.Money
	Total       domain.Money
}

// ComputeTotals is a pure function of its arguments: the same snapshot and
// policy always give the same totals.
func ComputeTotals(snapshot domain.CartSnapshot, policy FeePolicy) (Totals, error) {
	if err := policy.Validate(); err != nil {
		return Totals{}, fmt.Errorf("policy.Validate: %w", err)
	}

	subtotal := domain.ZeroMoney(policy.Currency())
	for _, line := range snapshot.Lines {
		var err error
		subtotal, err = subtotal.Add(line.Total())
		if err != nil {
			return Totals{}, fmt.Errorf("line %s: %w", line.ID, err)
		}
	}

	fee, err := deliveryFee(snapshot, subtotal, policy)
	if err != nil {
		return Totals{}, err
	}

	total, err := subtotal.Add(fee)
	if err != nil {
		return Totals{}, fmt.Errorf("subtotal.Add: %w", err)
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       total,
	}, nil
}

func deliveryFee(snapshot domain.CartSnapshot, subtotal domain.Money, policy FeePolicy) (domain.Money, error) {
	free := domain.ZeroMoney(policy.Currency())

	if snapshot.IsEmpty() {
		return free, nil
	}

	if policy.FreeAbove != nil {
		cmp, err := subtotal.Cmp(*policy.FreeAbove)
		if err != nil {
			return domain.Money{}, fmt.Errorf("subtotal.Cmp: %w", err)
		}
		if cmp >= 0 {
			return free, nil
		}
	}

	return policy.FlatFee, nil
}
