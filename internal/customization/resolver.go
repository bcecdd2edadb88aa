// Package customization turns a menu item plus the options a customer picked into
// a priced, canonical customization that identifies a cart line.
package customization

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/domain"
)

// lineNamespace seeds the name-based UUIDs of cart lines. Changing it changes
// every line ID, including those of carts saved by the record store.
var lineNamespace = uuid.MustParse("8f2d6c1e-3b7a-5e4f-9a10-6c2b7d9e4f31")

type Resolved struct {
	// Selection holds only effective picks: switched-off toggles and empty
	// optional groups are dropped, toggles are spelled "true".
	Selection    domain.Selection
	CanonicalKey string
	PriceDelta   domain.Money
	UnitPrice    domain.Money
	LineID       uuid.UUID
}

// Resolve validates selection against the option groups of item. It has no side
// effects.
func Resolve(item domain.MenuItem, selection domain.Selection) (Resolved, error) {
	if err := item.Validate(); err != nil {
		return Resolved{}, err
	}

	for _, key := range slices.Sorted(maps.Keys(selection)) {
		if _, ok := item.Group(key); !ok {
			return Resolved{}, &domain.ValidationError{
				Err:    domain.ErrUnknownChoice,
				ItemID: item.ID,
				Group:  key,
				Value:  selection[key],
			}
		}
	}

	canonical := make(domain.Selection)
	delta := domain.ZeroMoney(item.UnitPrice.Currency)

	for _, g := range item.OptionGroups {
		raw, present := selection[g.Key]

		var picked domain.Choice

		switch g.Rule {
		case domain.RuleExactlyOne:
			if !present || raw == "" {
				return Resolved{}, &domain.ValidationError{
					Err:    domain.ErrMissingRequiredSelection,
					ItemID: item.ID,
					Group:  g.Key,
				}
			}
			c, ok := g.Choice(raw)
			if !ok {
				return Resolved{}, unknownChoice(item, g, raw)
			}
			picked = c
			canonical[g.Key] = c.Value

		case domain.RuleZeroOrOne:
			if !present || raw == "" {
				continue
			}
			c, ok := g.Choice(raw)
			if !ok {
				return Resolved{}, unknownChoice(item, g, raw)
			}
			picked = c
			canonical[g.Key] = c.Value

		case domain.RuleToggle:
			if !present {
				continue
			}
			on, err := strconv.ParseBool(raw)
			if err != nil {
				return Resolved{}, unknownChoice(item, g, raw)
			}
			if !on {
				continue
			}
			picked = g.Choices[0]
			canonical[g.Key] = strconv.FormatBool(true)
		}

		var err error
		delta, err = delta.Add(picked.PriceDelta)
		if err != nil {
			return Resolved{}, fmt.Errorf("item %s group %q: %w", item.ID, g.Key, err)
		}
	}

	unitPrice, err := item.UnitPrice.Add(delta)
	if err != nil {
		return Resolved{}, fmt.Errorf("item %s: %w", item.ID, err)
	}

	key := CanonicalKey(canonical)

	return Resolved{
		Selection:    canonical,
		CanonicalKey: key,
		PriceDelta:   delta,
		UnitPrice:    unitPrice,
		LineID:       LineID(item.ID, key),
	}, nil
}

// CanonicalKey encodes a selection with groups sorted by key and values escaped,
// so equal selections give equal keys whatever order they were built in.
func CanonicalKey(selection domain.Selection) string {
	values := make(url.Values, len(selection))
	for k, v := range selection {
		values.Set(k, v)
	}

	return values.Encode()
}

// ParseCanonicalKey is the inverse of CanonicalKey.
func ParseCanonicalKey(key string) (domain.Selection, error) {
	values, err := url.ParseQuery(key)
	if err != nil {
		return nil, fmt.Errorf("url.ParseQuery: %w", err)
	}

	selection := make(domain.Selection, len(values))
	for k := range values {
		selection[k] = values.Get(k)
	}

	return selection, nil
}

func LineID(menuItemID, canonicalKey string) uuid.UUID {
	return uuid.NewSHA1(lineNamespace, []byte(url.QueryEscape(menuItemID)+"?"+canonicalKey))
}

func unknownChoice(item domain.MenuItem, g domain.OptionGroup, value string) error {
	return &domain.ValidationError{
		Err:    domain.ErrUnknownChoice,
		ItemID: item.ID,
		Group:  g.Key,
		Value:  value,
	}
}
