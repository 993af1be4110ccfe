package deck

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/avoronov/flashdeck/internal/model"
	"github.com/avoronov/flashdeck/internal/storage"
)

// Store owns the live collection state. All mutation goes through Dispatch,
// which runs the reducer and then persists the card list; reads get a
// snapshot. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   model.State
	storage storage.Store
	logger  *zap.Logger
}

// NewStore hydrates the collection from st. A load error (storage
// unavailable) is returned alongside a usable empty-state store, so the
// caller can warn the user and continue in memory-only mode.
func NewStore(ctx context.Context, st storage.Store, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{state: model.NewState(), storage: st, logger: logger}

	cards, err := st.Load(ctx)
	if err != nil {
		logger.Warn("hydration failed, continuing with empty collection", zap.Error(err))
		return s, err
	}
	s.state = Apply(s.state, Load{Cards: cards})
	return s, nil
}

// Dispatch applies cmd and persists the result. The in-memory state keeps
// the new value even when the save fails; the storage error is returned so
// the caller can tell the user their changes are not durable yet.
func (s *Store) Dispatch(ctx context.Context, cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Apply(s.state, cmd)

	// Load carries data that just came from storage; writing it back
	// would be a pointless no-op mutation of lastModified.
	if _, ok := cmd.(Load); ok {
		return nil
	}

	if err := s.storage.Save(ctx, s.state.Cards); err != nil {
		s.logger.Error("save failed", zap.Int("cards", len(s.state.Cards)), zap.Error(err))
		return err
	}
	return nil
}

// State returns a snapshot of the current collection state.
func (s *Store) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Visible returns the cards passing the active filter.
func (s *Store) Visible() []model.Card { return VisibleCards(s.State()) }

// Current returns the card under the study cursor.
func (s *Store) Current() (model.Card, bool) { return CurrentCard(s.State()) }

// Stats returns aggregate mastery statistics.
func (s *Store) Stats() model.Stats { return ComputeStats(s.State()) }
