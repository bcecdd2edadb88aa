package domain

import (
	"fmt"
	"strconv"
)

// SelectionRule tags how many choices of an option group may be picked.
type SelectionRule string

const (
	RuleExactlyOne SelectionRule = "exactly-one"
	RuleZeroOrOne  SelectionRule = "zero-or-one"
	RuleToggle     SelectionRule = "boolean-toggle"
)

func (r SelectionRule) String() string {
	return string(r)
}

// MenuItem is supplied by the menu catalog and never modified by the core.
type MenuItem struct {
	ID           string
	Name         string
	UnitPrice    Money
	OptionGroups []OptionGroup
}

// OptionGroup lists the choices of one customization axis (size, crust, add-on).
// A toggle group carries a single choice, priced when switched on.
type OptionGroup struct {
	Key     string
	Rule    SelectionRule
	Choices []Choice
}

type Choice struct {
	Value      string
	PriceDelta Money
}

func (m MenuItem) Group(key string) (OptionGroup, bool) {
	for _, g := range m.OptionGroups {
		if g.Key == key {
			return g, true
		}
	}

	return OptionGroup{}, false
}

func (g OptionGroup) Choice(value string) (Choice, bool) {
	for _, c := range g.Choices {
		if c.Value == value {
			return c, true
		}
	}

	return Choice{}, false
}

// Validate checks the catalog record before it reaches a cart.
func (m MenuItem) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidMenuItem)
	}
	if m.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: item %s has negative price %s", ErrInvalidMenuItem, m.ID, m.UnitPrice)
	}

	seen := make(map[string]struct{}, len(m.OptionGroups))
	for _, g := range m.OptionGroups {
		if g.Key == "" {
			return fmt.Errorf("%w: item %s has a group without key", ErrInvalidMenuItem, m.ID)
		}
		if _, ok := seen[g.Key]; ok {
			return fmt.Errorf("%w: item %s declares group %q twice", ErrInvalidMenuItem, m.ID, g.Key)
		}
		seen[g.Key] = struct{}{}

		switch g.Rule {
		case RuleExactlyOne, RuleZeroOrOne:
			if len(g.Choices) == 0 {
				return fmt.Errorf("%w: item %s group %q has no choices", ErrInvalidMenuItem, m.ID, g.Key)
			}
		case RuleToggle:
			if len(g.Choices) != 1 {
				return fmt.Errorf("%w: item %s toggle %q must carry exactly one choice", ErrInvalidMenuItem, m.ID, g.Key)
			}
		default:
			return fmt.Errorf("%w: item %s group %q has rule %q", ErrInvalidMenuItem, m.ID, g.Key, g.Rule)
		}

		for _, c := range g.Choices {
			// an empty value reads as "nothing picked" and could never be chosen
			if c.Value == "" {
				return fmt.Errorf("%w: item %s group %q has a choice without value", ErrInvalidMenuItem, m.ID, g.Key)
			}
			if c.PriceDelta.Currency != m.UnitPrice.Currency {
				return fmt.Errorf("%w: item %s group %q: %w", ErrInvalidMenuItem, m.ID, g.Key, ErrCurrencyMismatch)
			}
			if c.PriceDelta.IsNegative() {
				return fmt.Errorf("%w: item %s group %q has negative delta", ErrInvalidMenuItem, m.ID, g.Key)
			}
		}
	}

	return nil
}

// Selection maps an option group key to the chosen value. Toggle groups take
// "true" or "false".
type Selection map[string]string

func (s Selection) Choose(group, value string) Selection {
	s[group] = value
	return s
}

func (s Selection) Toggle(group string, on bool) Selection {
	s[group] = strconv.FormatBool(on)
	return s
}

func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}

	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}

	return out
}
