package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"twinpick.dev/pkg/twinpick/internal/adapter"
	"twinpick.dev/pkg/twinpick/internal/controller"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// ErrAborted is returned when the user declines a destructive action.
var ErrAborted = errors.New("aborted by user")

// ReviewArgs contains the arguments for an interactive review.
type ReviewArgs struct {
	Scan  m.ScanRequest
	Rules m.RuleConfig
}

// ListArgs contains the arguments for listing pairs.
type ListArgs struct {
	Scan m.ScanRequest
}

// CleanArgs contains the arguments for a non-interactive clean run.
type CleanArgs struct {
	Scan  m.ScanRequest
	Rules m.RuleConfig
	// Confirm is asked before anything is deleted. Nil means yes.
	Confirm func(items []m.DeletionItem) bool
}

// Workflow runs the user facing commands.
type Workflow interface {
	Review(ctx context.Context, args ReviewArgs) error
	List(ctx context.Context, args ListArgs) error
	Clean(ctx context.Context, args CleanArgs) (m.BatchResult, error)
}

type workflow struct {
	adapter.ScanService
	adapter.DeleteService
	controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(scanner adapter.ScanService, deleter adapter.DeleteService, ui controller.UI) Workflow {
	return &workflow{
		ScanService:   scanner,
		DeleteService: deleter,
		UI:            ui,
	}
}

func (w *workflow) curator(ctx context.Context, req m.ScanRequest) (*Curator, error) {
	curator := NewCurator(w.ScanService, w.DeleteService)
	if err := curator.Scan(ctx, req); err != nil {
		return nil, err
	}

	return curator, nil
}

func (w *workflow) Review(ctx context.Context, args ReviewArgs) error {
	curator, err := w.curator(ctx, args.Scan)
	if err != nil {
		return err
	}

	if err := w.UI.Review(ctx, curator, controller.ReviewConfig{Rules: args.Rules}); err != nil {
		slog.Error("Review session failed", "error", err)
		return fmt.Errorf("review: %w", err)
	}

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	curator, err := w.curator(ctx, args.Scan)
	if err != nil {
		return err
	}

	return w.DisplayPairs(ctx, curator.Snapshot())
}

func (w *workflow) Clean(ctx context.Context, args CleanArgs) (m.BatchResult, error) {
	curator, err := w.curator(ctx, args.Scan)
	if err != nil {
		return m.BatchResult{}, err
	}

	selection, err := curator.RunAutoSelect(args.Rules)
	if err != nil {
		return m.BatchResult{}, fmt.Errorf("auto-select: %w", err)
	}

	w.DisplayAutoSelect(ctx, selection)

	items := curator.Marked()
	if len(items) == 0 {
		return m.BatchResult{}, nil
	}

	if args.Confirm != nil && !args.Confirm(items) {
		return m.BatchResult{}, ErrAborted
	}

	observer, done := w.TrackDeletion(ctx, len(items))
	result := curator.DeleteMarked(ctx, observer)

	done()
	w.DisplayBatchResult(ctx, result)

	return result, nil
}
