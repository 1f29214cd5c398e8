// Package domain implements the curation state machine for duplicate image pairs.
package domain

import (
	"context"
	"errors"
	"log/slog"

	"twinpick.dev/pkg/twinpick/internal/adapter"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// Curator is the entry point used by presentation layers. Every user intent
// maps to one method.
type Curator struct {
	scanner     adapter.ScanService
	store       PairStore
	rules       RuleEngine
	coordinator DeletionCoordinator
	navigator   Navigator
}

// NewCurator wires a Curator around the scan and delete services.
func NewCurator(scanner adapter.ScanService, deleter adapter.DeleteService) *Curator {
	store := NewPairStore()

	return &Curator{
		scanner:     scanner,
		store:       store,
		rules:       NewRuleEngine(),
		coordinator: NewDeletionCoordinator(store, deleter),
		navigator:   NewNavigator(store),
	}
}

// Scan requests a fresh scan and loads it. On failure the current working set
// is kept.
func (c *Curator) Scan(ctx context.Context, req m.ScanRequest) error {
	pairs, err := c.scanner.Scan(ctx, req)
	if err != nil {
		slog.Error("Scan failed", "path", req.Path, "error", err)

		var serviceErr *adapter.ServiceError
		if errors.As(err, &serviceErr) {
			return &ScanError{Message: serviceErr.Message}
		}

		return &ScanError{Message: err.Error()}
	}

	c.Load(pairs)

	return nil
}

// Load replaces the working set and clears the selection.
func (c *Curator) Load(pairs []m.PairInit) {
	c.store.Load(pairs)
	c.navigator.Reset()
}

// ToggleIgnore flips the ignore status of a pair. Ignoring the active pair
// moves the cursor on.
func (c *Curator) ToggleIgnore(index int) error {
	pair, err := c.store.Get(index)
	if err != nil {
		return err
	}

	ignore := pair.Status != m.StatusIgnored
	if err := c.store.SetIgnored(index, ignore); err != nil {
		return err
	}

	if ignore {
		c.navigator.Advance(index)
	}

	slog.Debug("Toggled ignore", "pair", index, "ignored", ignore)

	return nil
}

// SetMark records which side of a pair to delete. SideNone clears the mark.
func (c *Curator) SetMark(index int, side m.Side) error {
	return c.store.SetMark(index, side)
}

// ClearAllMarks removes every mark and returns how many were cleared.
func (c *Curator) ClearAllMarks() int {
	return c.store.ClearMarks()
}

// RunAutoSelect marks pairs according to config.
func (c *Curator) RunAutoSelect(config m.RuleConfig) (m.AutoSelectResult, error) {
	outcome, err := c.rules.Evaluate(c.store.Pairs(), config)
	if err != nil {
		return m.AutoSelectResult{}, err
	}

	selected := c.store.ApplyMarks(outcome.Marks)

	slog.Info("Auto-select applied", "selected", selected, "cleared", outcome.Cleared)

	return m.AutoSelectResult{Selected: selected, Cleared: outcome.Cleared}, nil
}

// Marked returns the deduplicated files that DeleteMarked would remove.
func (c *Curator) Marked() []m.DeletionItem {
	return c.coordinator.CollectMarked()
}

// DeleteMarked deletes every marked file, one at a time, and reports a summary.
// observer may be nil.
func (c *Curator) DeleteMarked(ctx context.Context, observer m.DeletionObserver) m.BatchResult {
	result := c.coordinator.DeleteBatch(ctx, c.coordinator.CollectMarked(), observer)
	c.afterRemoval(result.RemovedPairs)

	return result
}

// DeleteBothSides deletes both files of a pair.
func (c *Curator) DeleteBothSides(ctx context.Context, index int) (m.BatchResult, error) {
	result, err := c.coordinator.DeletePairBothSides(ctx, index)
	if err != nil {
		return result, err
	}

	c.afterRemoval(result.RemovedPairs)

	return result, nil
}

// DeleteFile deletes a single file and surfaces its failure.
func (c *Curator) DeleteFile(ctx context.Context, path m.Path) error {
	outcome, err := c.coordinator.DeleteOne(ctx, path)
	if err != nil {
		return err
	}

	c.afterRemoval(outcome.Removed)

	return nil
}

// SelectFirst moves the cursor to the first active pair.
func (c *Curator) SelectFirst() {
	c.navigator.SelectFirst()
}

// SelectNext moves the cursor to the next active pair.
func (c *Curator) SelectNext() {
	c.navigator.SelectNext()
}

// SelectPrevious moves the cursor to the previous active pair.
func (c *Curator) SelectPrevious() {
	c.navigator.SelectPrevious()
}

// SelectRow moves the cursor to index. Ignored pairs are rejected.
func (c *Curator) SelectRow(index int) error {
	return c.navigator.Select(index)
}

// Snapshot returns a copy of the working set and the cursor.
func (c *Curator) Snapshot() m.Snapshot {
	return m.Snapshot{
		Pairs:       c.store.Pairs(),
		ActiveIndex: c.navigator.Active(),
		TotalLoaded: c.store.Loaded(),
	}
}

func (c *Curator) afterRemoval(removed []int) {
	for _, index := range removed {
		c.navigator.Advance(index)
	}
}
