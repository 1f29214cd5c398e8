package domain

import (
	"fmt"
	"log/slog"
	"sync"

	m "twinpick.dev/pkg/twinpick/internal/model"
)

// PairStore owns the working set of duplicate pairs and their curation state.
// Every mutation is atomic with respect to the others.
//
//nolint:interfacebloat // The store is the single mutation point for pair state.
type PairStore interface {
	// Load replaces the working set wholesale.
	Load(pairs []m.PairInit)
	// Get returns a copy of the pair with the given original index.
	Get(index int) (m.Pair, error)
	// Pairs returns a copy of the visible working set in order.
	Pairs() []m.Pair
	// Loaded returns the number of pairs in the last load.
	Loaded() int

	// MarkDeleted replaces path with the deletion sentinel in every pair that
	// references it and returns the touched indices.
	MarkDeleted(path m.Path) []int
	// IsFullyDeleted reports whether both sides of the pair are sentineled.
	IsFullyDeleted(index int) bool
	// Remove drops a pair from the visible working set.
	Remove(index int) error

	// SetIgnored toggles the pair status. Ignoring clears the mark.
	SetIgnored(index int, ignored bool) error
	// SetMark records the deletion intent for one pair.
	SetMark(index int, side m.Side) error
	// ClearMarks removes every mark and returns how many were cleared.
	ClearMarks() int
	// ApplyMarks sets marks for several pairs at once, skipping pairs that are
	// no longer active. It returns the number of non-empty marks applied.
	ApplyMarks(marks map[int]m.Side) int
}

type pairStore struct {
	mu        sync.RWMutex
	pairs     []*m.Pair
	positions map[int]int
	loaded    int
}

// NewPairStore creates an empty PairStore.
func NewPairStore() PairStore {
	return &pairStore{positions: map[int]int{}}
}

func (s *pairStore) Load(inits []m.PairInit) {
	pairs := make([]*m.Pair, 0, len(inits))
	for i, init := range inits {
		pairs = append(pairs, &m.Pair{
			Index:      i,
			File1:      init.File1,
			File2:      init.File2,
			Similarity: init.Similarity,
			Status:     m.StatusActive,
			Marked:     m.SideNone,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pairs = pairs
	s.loaded = len(pairs)
	s.reindex()

	slog.Debug("Loaded working set", "pairs", len(pairs))
}

func (s *pairStore) Get(index int) (m.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pair, err := s.lookup(index)
	if err != nil {
		return m.Pair{}, err
	}

	return *pair, nil
}

func (s *pairStore) Pairs() []m.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pairs := make([]m.Pair, 0, len(s.pairs))
	for _, pair := range s.pairs {
		pairs = append(pairs, *pair)
	}

	return pairs
}

func (s *pairStore) Loaded() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

func (s *pairStore) MarkDeleted(path m.Path) []int {
	if path == "" || path.IsDeleted() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var touched []int

	// A file may appear in any number of pairs, on either side.
	for _, pair := range s.pairs {
		hit := false

		if pair.File1.Path == path {
			pair.File1.Path = m.DeletedPath
			hit = true

			if pair.Marked == m.SideA {
				pair.Marked = m.SideNone
			}
		}

		if pair.File2.Path == path {
			pair.File2.Path = m.DeletedPath
			hit = true

			if pair.Marked == m.SideB {
				pair.Marked = m.SideNone
			}
		}

		if hit {
			touched = append(touched, pair.Index)
		}
	}

	slog.Debug("Propagated deletion", "path", path, "pairs", touched)

	return touched
}

func (s *pairStore) IsFullyDeleted(index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pair, err := s.lookup(index)
	if err != nil {
		return false
	}

	return pair.FullyDeleted()
}

func (s *pairStore) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.positions[index]
	if !ok {
		return invalidIndex(index)
	}

	s.pairs = append(s.pairs[:pos], s.pairs[pos+1:]...)
	s.reindex()

	return nil
}

func (s *pairStore) SetIgnored(index int, ignored bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, err := s.lookup(index)
	if err != nil {
		return err
	}

	if ignored {
		pair.Status = m.StatusIgnored
		pair.Marked = m.SideNone

		return nil
	}

	pair.Status = m.StatusActive

	return nil
}

func (s *pairStore) SetMark(index int, side m.Side) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, err := s.lookup(index)
	if err != nil {
		return err
	}

	if side == m.SideNone {
		pair.Marked = m.SideNone
		return nil
	}

	if pair.Status != m.StatusActive {
		return fmt.Errorf("%w: pair %d is %s", ErrInvalidMarkState, index, pair.Status)
	}

	file := pair.File(side)
	if file == nil {
		return fmt.Errorf("%w: unknown side %d", ErrInvalidMarkState, side)
	}

	if file.Path.IsDeleted() {
		return fmt.Errorf("%w: side %s of pair %d is already deleted", ErrInvalidMarkState, side, index)
	}

	pair.Marked = side

	return nil
}

func (s *pairStore) ClearMarks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := 0

	for _, pair := range s.pairs {
		if pair.Marked != m.SideNone {
			pair.Marked = m.SideNone
			cleared++
		}
	}

	return cleared
}

func (s *pairStore) ApplyMarks(marks map[int]m.Side) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0

	for index, side := range marks {
		pair, err := s.lookup(index)
		if err != nil || pair.Status != m.StatusActive {
			continue
		}

		if side == m.SideNone {
			pair.Marked = m.SideNone
			continue
		}

		if file := pair.File(side); file == nil || file.Path.IsDeleted() {
			continue
		}

		pair.Marked = side
		applied++
	}

	return applied
}

// lookup must be called with the lock held.
func (s *pairStore) lookup(index int) (*m.Pair, error) {
	pos, ok := s.positions[index]
	if !ok {
		return nil, invalidIndex(index)
	}

	return s.pairs[pos], nil
}

func (s *pairStore) reindex() {
	s.positions = make(map[int]int, len(s.pairs))
	for pos, pair := range s.pairs {
		s.positions[pair.Index] = pos
	}
}
