package cart

import (
	"errors"
	"sync"
	"testing"

	"github.com/nikolayk812/foodfleet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStore_RejectsMutationWhileAnotherIsRunning(t *testing.T) {
	s := New()
	item := domain.MenuItem{ID: "m1", Name: "Garlic Bread", UnitPrice: domain.MustParseMoney("5.99", currency.USD)}

	line, err := s.AddItem(item, nil, 1)
	require.NoError(t, err)

	// hold the store as an in-flight mutation would
	s.mu.Lock()

	_, err = s.AddItem(item, nil, 1)
	assert.ErrorIs(t, err, domain.ErrConcurrentMutation)

	err = s.UpdateQuantity(line.ID, 5)
	assert.ErrorIs(t, err, domain.ErrConcurrentMutation)

	_, err = s.RemoveLine(line.ID)
	assert.ErrorIs(t, err, domain.ErrConcurrentMutation)

	err = s.Clear()
	assert.ErrorIs(t, err, domain.ErrConcurrentMutation)

	s.mu.Unlock()

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 1, snapshot.Lines[0].Quantity)
}

func TestStore_SnapshotDoesNotRejectMutation(t *testing.T) {
	s := New()
	item := domain.MenuItem{ID: "m1", Name: "Garlic Bread", UnitPrice: domain.MustParseMoney("5.99", currency.USD)}

	// a snapshot is being copied
	s.data.RLock()

	done := make(chan error, 1)
	go func() {
		_, err := s.AddItem(item, nil, 1)
		done <- err
	}()

	s.data.RUnlock()
	require.NoError(t, <-done)
	assert.Equal(t, 1, s.Snapshot().TotalQuantity())
}

func TestStore_SnapshotsWhileAdding(t *testing.T) {
	s := New()
	item := domain.MenuItem{ID: "m5", Name: "Tiramisu", UnitPrice: domain.MustParseMoney("6.50", currency.USD)}

	const (
		readers = 8
		adds    = 200
	)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					snapshot := s.Snapshot()
					if q := snapshot.TotalQuantity(); q < 0 || q > adds {
						t.Errorf("snapshot quantity %d out of range", q)
					}
				}
			}
		}()
	}

	// a single writer never collides with another mutation
	for range adds {
		_, err := s.AddItem(item, nil, 1)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, adds, s.Snapshot().TotalQuantity())
}

func TestStore_ConcurrentAddsAreNeverLost(t *testing.T) {
	s := New()
	item := domain.MenuItem{ID: "m5", Name: "Tiramisu", UnitPrice: domain.MustParseMoney("6.50", currency.USD)}

	const workers = 32

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := s.AddItem(item, nil, 1)
			if errors.Is(err, domain.ErrConcurrentMutation) {
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			mu.Lock()
			succeeded++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Positive(t, succeeded)
	snapshot := s.Snapshot()
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, succeeded, snapshot.Lines[0].Quantity)
}
