package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"twinpick.dev/pkg/twinpick/internal/adapter"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

const invalidPathMessage = "file does not exist or path is invalid"

// DeleteOutcome describes the store changes caused by one successful deletion.
type DeleteOutcome struct {
	Path    m.Path
	Touched []int // pairs that referenced the path
	Removed []int // pairs dropped because both sides are now deleted
}

// DeletionCoordinator turns marks into file deletions and propagates the
// results back into the PairStore.
type DeletionCoordinator interface {
	// CollectMarked returns one item per distinct marked path.
	CollectMarked() []m.DeletionItem
	// DeleteOne deletes a single file. Failures are returned as *DeleteError.
	DeleteOne(ctx context.Context, path m.Path) (DeleteOutcome, error)
	// DeleteBatch deletes items one after another and never stops early.
	// observer, when non-nil, is called after every settled deletion.
	DeleteBatch(ctx context.Context, items []m.DeletionItem, observer m.DeletionObserver) m.BatchResult
	// DeletePairBothSides deletes both files of a pair concurrently.
	DeletePairBothSides(ctx context.Context, index int) (m.BatchResult, error)
}

type deletionCoordinator struct {
	store   PairStore
	deleter adapter.DeleteService

	// propagation serializes MarkDeleted/Remove sequences between
	// concurrently settling deletions.
	propagation sync.Mutex
}

// NewDeletionCoordinator creates a DeletionCoordinator over store using
// deleter to remove files.
func NewDeletionCoordinator(store PairStore, deleter adapter.DeleteService) DeletionCoordinator {
	return &deletionCoordinator{
		store:   store,
		deleter: deleter,
	}
}

func (c *deletionCoordinator) CollectMarked() []m.DeletionItem {
	var items []m.DeletionItem

	for _, pair := range c.store.Pairs() {
		if pair.Status != m.StatusActive || pair.Marked == m.SideNone {
			continue
		}

		file := pair.File(pair.Marked)
		if file == nil || file.Path.IsDeleted() {
			continue
		}

		items = append(items, m.DeletionItem{Path: file.Path, Index: pair.Index, Side: pair.Marked})
	}

	return dedupeItems(items)
}

func (c *deletionCoordinator) DeleteOne(ctx context.Context, path m.Path) (DeleteOutcome, error) {
	if path == "" || path.IsDeleted() {
		return DeleteOutcome{Path: path}, &DeleteError{Path: path, Message: invalidPathMessage}
	}

	// In-flight deletions always run to completion.
	deleted, err := c.deleter.Delete(context.WithoutCancel(ctx), path)
	if err != nil {
		slog.Warn("Deletion failed", "path", path, "error", err)
		return DeleteOutcome{Path: path}, toDeleteError(path, err)
	}

	if deleted == "" {
		deleted = path
	}

	if deleted != path {
		slog.Warn("Delete service reported a different path", "requested", path, "deleted", deleted)
	}

	return c.propagate(deleted), nil
}

func (c *deletionCoordinator) DeleteBatch(ctx context.Context, items []m.DeletionItem, observer m.DeletionObserver) m.BatchResult {
	items = dedupeItems(items)
	batchID := uuid.New().String()
	result := m.BatchResult{Planned: len(items)}

	slog.Info("Starting batch deletion", "batch", batchID, "files", len(items))

	// Strictly sequential: each deletion and its propagation settle before the
	// next request is issued.
	for _, item := range items {
		outcome, err := c.DeleteOne(ctx, item.Path)
		recordOutcome(&result, item.Path, outcome, err)

		if observer != nil {
			observer(item, err)
		}
	}

	slog.Info("Batch deletion finished",
		"batch", batchID,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"removed_pairs", len(result.RemovedPairs))

	return result
}

func (c *deletionCoordinator) DeletePairBothSides(ctx context.Context, index int) (m.BatchResult, error) {
	pair, err := c.store.Get(index)
	if err != nil {
		return m.BatchResult{}, err
	}

	var paths []m.Path

	for _, path := range []m.Path{pair.File1.Path, pair.File2.Path} {
		if path.IsDeleted() || (len(paths) > 0 && paths[0] == path) {
			continue
		}

		paths = append(paths, path)
	}

	outcomes := make([]DeleteOutcome, len(paths))
	errs := make([]error, len(paths))

	// The two paths differ, so the deletions cannot race on the same sentinel.
	var group errgroup.Group

	for i, path := range paths {
		group.Go(func() error {
			outcomes[i], errs[i] = c.DeleteOne(ctx, path)
			return nil
		})
	}

	_ = group.Wait()

	result := m.BatchResult{Planned: len(paths)}
	for i, path := range paths {
		recordOutcome(&result, path, outcomes[i], errs[i])
	}

	slog.Info("Deleted both sides", "pair", index, "succeeded", result.Succeeded, "failed", result.Failed)

	return result, nil
}

func (c *deletionCoordinator) propagate(path m.Path) DeleteOutcome {
	c.propagation.Lock()
	defer c.propagation.Unlock()

	outcome := DeleteOutcome{Path: path, Touched: c.store.MarkDeleted(path)}

	for _, index := range outcome.Touched {
		if !c.store.IsFullyDeleted(index) {
			continue
		}

		if err := c.store.Remove(index); err != nil {
			slog.Warn("Failed to remove deleted pair", "pair", index, "error", err)
			continue
		}

		outcome.Removed = append(outcome.Removed, index)
	}

	return outcome
}

func recordOutcome(result *m.BatchResult, path m.Path, outcome DeleteOutcome, err error) {
	if err != nil {
		result.Failed++
		result.FailedPaths = append(result.FailedPaths, path)
		result.Errors = append(result.Errors, err)

		return
	}

	result.Succeeded++
	result.RemovedPairs = append(result.RemovedPairs, outcome.Removed...)
}

func dedupeItems(items []m.DeletionItem) []m.DeletionItem {
	seen := make(map[m.Path]struct{}, len(items))
	unique := make([]m.DeletionItem, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.Path]; ok {
			continue
		}

		seen[item.Path] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}

func toDeleteError(path m.Path, err error) error {
	var serviceErr *adapter.ServiceError
	if errors.As(err, &serviceErr) {
		return &DeleteError{Path: path, Message: serviceErr.Message}
	}

	return &DeleteError{Path: path, Message: err.Error()}
}
