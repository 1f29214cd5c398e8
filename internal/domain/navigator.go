package domain

import (
	"fmt"
	"sync"

	m "twinpick.dev/pkg/twinpick/internal/model"
)

// Navigator tracks the pair currently shown in the preview. The cursor never
// rests on an ignored pair.
type Navigator interface {
	Active() int
	Reset()
	SelectFirst()
	SelectNext()
	SelectPrevious()
	Select(index int) error
	// Advance moves the cursor off index to the next active pair after it,
	// falling back to the first active pair. It is a no-op unless index is
	// the active one.
	Advance(index int)
}

type navigator struct {
	store  PairStore
	mu     sync.Mutex
	active int
}

// NewNavigator creates a Navigator reading pairs from store.
func NewNavigator(store PairStore) Navigator {
	return &navigator{store: store, active: m.NoIndex}
}

func (n *navigator) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.active
}

func (n *navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.active = m.NoIndex
}

func (n *navigator) SelectFirst() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.active = firstActive(n.store.Pairs())
}

func (n *navigator) SelectNext() {
	n.mu.Lock()
	defer n.mu.Unlock()

	pairs := n.store.Pairs()
	if n.active == m.NoIndex {
		n.active = firstActive(pairs)
		return
	}

	if next := nextActive(pairs, n.active); next != m.NoIndex {
		n.active = next
	}
}

func (n *navigator) SelectPrevious() {
	n.mu.Lock()
	defer n.mu.Unlock()

	pairs := n.store.Pairs()
	if n.active == m.NoIndex {
		n.active = firstActive(pairs)
		return
	}

	if prev := previousActive(pairs, n.active); prev != m.NoIndex {
		n.active = prev
	}
}

// Select checks the pair status under the cursor lock. An ignore that lands
// after the check is followed by Advance, which then moves the cursor off.
func (n *navigator) Select(index int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	pair, err := n.store.Get(index)
	if err != nil {
		return err
	}

	if pair.Status != m.StatusActive {
		return fmt.Errorf("%w: %d", ErrPairIgnored, index)
	}

	n.active = index

	return nil
}

func (n *navigator) Advance(index int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.active != index {
		return
	}

	pairs := n.store.Pairs()

	n.active = nextActive(pairs, index)
	if n.active == m.NoIndex {
		n.active = firstActive(pairs)
	}
}

// Indices grow with working-set order, so "after" is a plain comparison even
// when index itself was removed.
func nextActive(pairs []m.Pair, index int) int {
	for _, pair := range pairs {
		if pair.Index > index && pair.Status == m.StatusActive {
			return pair.Index
		}
	}

	return m.NoIndex
}

func previousActive(pairs []m.Pair, index int) int {
	for i := len(pairs) - 1; i >= 0; i-- {
		if pairs[i].Index < index && pairs[i].Status == m.StatusActive {
			return pairs[i].Index
		}
	}

	return m.NoIndex
}

func firstActive(pairs []m.Pair) int {
	for _, pair := range pairs {
		if pair.Status == m.StatusActive {
			return pair.Index
		}
	}

	return m.NoIndex
}
