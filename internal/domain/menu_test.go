package domain_test

import (
	"testing"

	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestMenuItem_Validate(t *testing.T) {
	usd := func(s string) domain.Money { return domain.MustParseMoney(s, currency.USD) }

	tests := []struct {
		name      string
		item      domain.MenuItem
		wantError bool
	}{
		{
			name: "plain item: ok",
			item: domain.MenuItem{ID: "m1", Name: "Garlic Bread", UnitPrice: usd("5.99")},
		},
		{
			name: "zero price: ok",
			item: domain.MenuItem{ID: "m0", Name: "Water", UnitPrice: usd("0")},
		},
		{
			name:      "empty id: error",
			item:      domain.MenuItem{UnitPrice: usd("1")},
			wantError: true,
		},
		{
			name:      "negative price: error",
			item:      domain.MenuItem{ID: "m1", UnitPrice: usd("-1")},
			wantError: true,
		},
		{
			name: "duplicate group: error",
			item: domain.MenuItem{ID: "m1", UnitPrice: usd("1"), OptionGroups: []domain.OptionGroup{
				{Key: "size", Rule: domain.RuleZeroOrOne, Choices: []domain.Choice{{Value: "S", PriceDelta: usd("0")}}},
				{Key: "size", Rule: domain.RuleZeroOrOne, Choices: []domain.Choice{{Value: "L", PriceDelta: usd("0")}}},
			}},
			wantError: true,
		},
		{
			name: "toggle with two choices: error",
			item: domain.MenuItem{ID: "m1", UnitPrice: usd("1"), OptionGroups: []domain.OptionGroup{
				{Key: "cheese", Rule: domain.RuleToggle, Choices: []domain.Choice{
					{Value: "a", PriceDelta: usd("0")},
					{Value: "b", PriceDelta: usd("0")},
				}},
			}},
			wantError: true,
		},
		{
			name: "required group with empty choice value: error",
			item: domain.MenuItem{ID: "m1", UnitPrice: usd("1"), OptionGroups: []domain.OptionGroup{
				{Key: "size", Rule: domain.RuleExactlyOne, Choices: []domain.Choice{
					{Value: "", PriceDelta: usd("0")},
					{Value: "Large", PriceDelta: usd("1")},
				}},
			}},
			wantError: true,
		},
		{
			name: "toggle with empty choice value: error",
			item: domain.MenuItem{ID: "m1", UnitPrice: usd("1"), OptionGroups: []domain.OptionGroup{
				{Key: "cheese", Rule: domain.RuleToggle, Choices: []domain.Choice{{PriceDelta: usd("0.5")}}},
			}},
			wantError: true,
		},
		{
			name: "unknown rule: error",
			item: domain.MenuItem{ID: "m1", UnitPrice: usd("1"), OptionGroups: []domain.OptionGroup{
				{Key: "size", Rule: "many", Choices: []domain.Choice{{Value: "S", PriceDelta: usd("0")}}},
			}},
			wantError: true,
		},
		{
			name: "delta in other currency: error",
			item: domain.MenuItem{ID: "m1", UnitPrice: usd("1"), OptionGroups: []domain.OptionGroup{
				{Key: "size", Rule: domain.RuleExactlyOne, Choices: []domain.Choice{
					{Value: "L", PriceDelta: domain.MustParseMoney("1", currency.EUR)},
				}},
			}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantError {
				require.ErrorIs(t, err, domain.ErrInvalidMenuItem)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSelection_Builders(t *testing.T) {
	sel := domain.Selection{}.Choose("size", "Large").Toggle("extraCheese", true)

	assert.Equal(t, domain.Selection{"size": "Large", "extraCheese": "true"}, sel)

	clone := sel.Clone()
	clone["size"] = "Regular"
	assert.Equal(t, "Large", sel["size"])

	assert.Nil(t, domain.Selection(nil).Clone())
}

func TestParseOrderStatus(t *testing.T) {
	for _, st := range domain.OrderStatuses() {
		got, err := domain.ParseOrderStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := domain.ParseOrderStatus("SHIPPED")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
}
