package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxLineQuantity caps the quantity of a single cart or order line. It keeps
// merged quantities far from integer overflow and inside the INTEGER columns of
// the record store.
const MaxLineQuantity = 999

// ValidQuantity reports whether q is an allowed line quantity.
func ValidQuantity(q int) bool {
	return q >= 1 && q <= MaxLineQuantity
}

// CartLine is one distinguishable purchasable unit: a menu item with a specific
// customization. UnitPrice includes the customization deltas and is fixed at the
// moment the line was created.
type CartLine struct {
	ID           uuid.UUID
	MenuItemID   string
	Name         string
	Selection    Selection
	CanonicalKey string
	UnitPrice    Money
	Quantity     int

	AddedAt time.Time
}

func (l CartLine) Total() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

func (l CartLine) Clone() CartLine {
	l.Selection = l.Selection.Clone()
	return l
}

// CartSnapshot is a detached copy of the cart lines in insertion order.
type CartSnapshot struct {
	Lines []CartLine
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

func (s CartSnapshot) TotalQuantity() int {
	var total int
	for _, l := range s.Lines {
		total += l.Quantity
	}

	return total
}

func (s CartSnapshot) Line(id uuid.UUID) (CartLine, bool) {
	for _, l := range s.Lines {
		if l.ID == id {
			return l.Clone(), true
		}
	}

	return CartLine{}, false
}

func (s CartSnapshot) Clone() CartSnapshot {
	if len(s.Lines) == 0 {
		return CartSnapshot{}
	}

	lines := make([]CartLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = l.Clone()
	}

	return CartSnapshot{Lines: lines}
}
