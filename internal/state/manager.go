package state

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/storage"
)

// Manager guards AppState with a mutex so that every store command and every
// reconciler tick runs as a complete, non-overlapping turn. After a turn that
// reports a change, the snapshot is saved best-effort (failures are logged
// and swallowed, never surfaced to the caller) and subscribers are notified.
type Manager struct {
	mu    sync.Mutex
	st    *AppState
	store storage.Store
	log   logging.Logger
	now   func() time.Time

	subMu sync.Mutex
	subs  []chan struct{}
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the wall-clock source (used in tests and by the
// reconciler scenarios).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithInitialState overrides the compiled-in default state.
func WithInitialState(st *AppState) Option {
	return func(m *Manager) { m.st = st }
}

// NewManager returns a Manager seeded with the fresh-install default state.
func NewManager(store storage.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		st:    Seed(),
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Now returns the current wall-clock time from the injected source.
func (m *Manager) Now() time.Time {
	return m.now()
}

// Load reads the persisted snapshot, if any, and merges it over the current
// state field by field. Malformed snapshots degrade gracefully: a bad field
// is skipped, an unreadable document leaves the defaults in place. Load
// never returns an error to the caller.
func (m *Manager) Load(ctx context.Context) {
	data, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "could not load app state", "error", err)
		return
	}
	if data == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	skipped, err := m.st.ApplySnapshot(data)
	if err != nil {
		m.log.Warn(ctx, "could not parse app state snapshot", "error", err)
		return
	}
	for _, field := range skipped {
		m.log.Warn(ctx, "skipping malformed snapshot field", "field", field)
	}
}

// Update runs fn as one turn under the state lock. If fn returns an error,
// nothing is persisted and the error is passed through. If fn reports a
// change, the snapshot is saved and subscribers are notified.
func (m *Manager) Update(ctx context.Context, fn func(st *AppState) (bool, error)) error {
	m.mu.Lock()

	changed, err := fn(m.st)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if changed {
		m.persistLocked(ctx)
	}
	m.mu.Unlock()

	if changed {
		m.notify()
	}
	return nil
}

// View runs fn with read access to the state under the lock. fn must not
// retain references into the state beyond the call.
func (m *Manager) View(fn func(st *AppState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.st)
}

// Reset clears the persisted snapshot and reinstates the fresh-install
// default state. Used for full reset and in tests.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.st = Seed()
	return nil
}

// Subscribe returns a channel that receives a signal after every persisted
// state change. The channel has a buffer of one; signals are dropped rather
// than blocking a slow consumer.
func (m *Manager) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	m.subMu.Lock()
	m.subs = append(m.subs, ch)
	m.subMu.Unlock()
	return ch
}

// persistLocked saves the snapshot. Storage failures must not block the
// in-memory mutation, so they are logged and swallowed here.
func (m *Manager) persistLocked(ctx context.Context) {
	data, err := m.st.MarshalSnapshot()
	if err != nil {
		m.log.Error(ctx, "could not serialize app state", "error", err)
		return
	}
	if err := m.store.Save(ctx, data); err != nil {
		m.log.Warn(ctx, "could not save app state", "error", err)
	}
}

func (m *Manager) notify() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
