package main

import (
	"github.com/nikolayk812/foodfleet/internal/domain"
	"golang.org/x/text/currency"
)

// sampleMenu stands in for the restaurant catalog of "The Pasta Place".
func sampleMenu(cur currency.Unit) map[string]domain.MenuItem {
	price := func(amount string) domain.Money {
		return domain.MustParseMoney(amount, cur)
	}

	items := []domain.MenuItem{
		{ID: "m1", Name: "Garlic Bread", UnitPrice: price("5.99")},
		{ID: "m2", Name: "Bruschetta", UnitPrice: price("7.50")},
		{
			ID:        "m3",
			Name:      "Spaghetti Carbonara",
			UnitPrice: price("14.99"),
			OptionGroups: []domain.OptionGroup{
				{
					Key:  "size",
					Rule: domain.RuleExactlyOne,
					Choices: []domain.Choice{
						{Value: "Regular", PriceDelta: price("0")},
						{Value: "Large", PriceDelta: price("1.50")},
					},
				},
				{
					Key:     "extraCheese",
					Rule:    domain.RuleToggle,
					Choices: []domain.Choice{{Value: "Extra cheese", PriceDelta: price("0.50")}},
				},
			},
		},
		{
			ID:        "m4",
			Name:      "Margherita Pizza",
			UnitPrice: price("12.00"),
			OptionGroups: []domain.OptionGroup{
				{
					Key:  "crust",
					Rule: domain.RuleExactlyOne,
					Choices: []domain.Choice{
						{Value: "Thin", PriceDelta: price("0")},
						{Value: "Thick", PriceDelta: price("0")},
					},
				},
			},
		},
		{ID: "m5", Name: "Tiramisu", UnitPrice: price("6.50")},
	}

	menu := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		menu[item.ID] = item
	}

	return menu
}
