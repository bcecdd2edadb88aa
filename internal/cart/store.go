package cart

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodfleet/internal/customization"
	"github.com/nikolayk812/foodfleet/internal/domain"
	"go.uber.org/zap"
)

// Store owns the lines of one customer's cart. It is meant to be driven by a
// single session: a mutation that starts while another one is running fails with
// domain.ErrConcurrentMutation instead of being merged. Snapshots never make a
// mutation fail; they only delay it until the copy is taken.
type Store struct {
	// mu admits one mutation at a time and rejects the rest.
	mu sync.Mutex
	// data guards lines between the running mutation and snapshot readers.
	data  sync.RWMutex
	lines []domain.CartLine

	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Restore rebuilds a store from a snapshot taken at a session boundary.
func Restore(snapshot domain.CartSnapshot, opts ...Option) (*Store, error) {
	seen := make(map[uuid.UUID]struct{}, len(snapshot.Lines))
	for _, l := range snapshot.Lines {
		if _, ok := seen[l.ID]; ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateLine, l.ID)
		}
		seen[l.ID] = struct{}{}

		if !domain.ValidQuantity(l.Quantity) {
			return nil, fmt.Errorf("%w: line %s has quantity %d", domain.ErrInvalidQuantity, l.ID, l.Quantity)
		}
	}

	s := New(opts...)
	s.lines = snapshot.Clone().Lines

	return s, nil
}

// AddItem puts quantity units of the customized item into the cart. A line with
// the same item and canonical customization absorbs the quantity and keeps the
// price it was created with. No line may exceed domain.MaxLineQuantity.
func (s *Store) AddItem(item domain.MenuItem, selection domain.Selection, quantity int) (domain.CartLine, error) {
	if err := s.lock(); err != nil {
		return domain.CartLine{}, err
	}
	defer s.unlock()

	if !domain.ValidQuantity(quantity) {
		return domain.CartLine{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}

	resolved, err := customization.Resolve(item, selection)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("customization.Resolve: %w", err)
	}

	if i := s.index(resolved.LineID); i >= 0 {
		if quantity > domain.MaxLineQuantity-s.lines[i].Quantity {
			return domain.CartLine{}, fmt.Errorf("%w: line %s would hold %d + %d, max is %d",
				domain.ErrInvalidQuantity, resolved.LineID, s.lines[i].Quantity, quantity, domain.MaxLineQuantity)
		}

		s.lines[i].Quantity += quantity
		s.logger.Debug("cart line merged",
			zap.Stringer("line_id", resolved.LineID),
			zap.String("menu_item_id", item.ID),
			zap.Int("quantity", s.lines[i].Quantity))

		return s.lines[i].Clone(), nil
	}

	line := domain.CartLine{
		ID:           resolved.LineID,
		MenuItemID:   item.ID,
		Name:         item.Name,
		Selection:    resolved.Selection,
		CanonicalKey: resolved.CanonicalKey,
		UnitPrice:    resolved.UnitPrice,
		Quantity:     quantity,
		AddedAt:      s.now(),
	}
	s.lines = append(s.lines, line)

	s.logger.Debug("cart line added",
		zap.Stringer("line_id", line.ID),
		zap.String("menu_item_id", item.ID),
		zap.String("customization", line.CanonicalKey),
		zap.Int("quantity", quantity))

	return line.Clone(), nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1
// removes the line; one above domain.MaxLineQuantity is rejected.
func (s *Store) UpdateQuantity(lineID uuid.UUID, quantity int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	i := s.index(lineID)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrLineNotFound, lineID)
	}

	if quantity < 1 {
		s.removeAt(i)
		return nil
	}
	if quantity > domain.MaxLineQuantity {
		return fmt.Errorf("%w: %d, max is %d", domain.ErrInvalidQuantity, quantity, domain.MaxLineQuantity)
	}

	s.lines[i].Quantity = quantity
	s.logger.Debug("cart line quantity updated", zap.Stringer("line_id", lineID), zap.Int("quantity", quantity))

	return nil
}

// RemoveLine deletes the line if present. It reports whether a line was removed;
// removing an absent line is not an error.
func (s *Store) RemoveLine(lineID uuid.UUID) (bool, error) {
	if err := s.lock(); err != nil {
		return false, err
	}
	defer s.unlock()

	i := s.index(lineID)
	if i < 0 {
		return false, nil
	}
	s.removeAt(i)

	return true, nil
}

func (s *Store) Clear() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	s.lines = nil
	s.logger.Debug("cart cleared")

	return nil
}

// Snapshot returns a deep copy of the lines in insertion order. It waits for a
// running mutation, so it never sees one half applied.
func (s *Store) Snapshot() domain.CartSnapshot {
	s.data.RLock()
	defer s.data.RUnlock()

	return domain.CartSnapshot{Lines: s.lines}.Clone()
}

// lock admits the caller as the only mutation, then waits out snapshot readers.
func (s *Store) lock() error {
	if !s.mu.TryLock() {
		return domain.ErrConcurrentMutation
	}
	s.data.Lock()

	return nil
}

func (s *Store) unlock() {
	s.data.Unlock()
	s.mu.Unlock()
}

func (s *Store) index(lineID uuid.UUID) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.ID == lineID
	})
}

func (s *Store) removeAt(i int) {
	lineID := s.lines[i].ID
	s.lines = slices.Delete(s.lines, i, i+1)
	s.logger.Debug("cart line removed", zap.Stringer("line_id", lineID))
}
