// Package controller provides the presentation adapters for reviewing
// duplicate pairs.
package controller

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// ErrNotInteractive is returned by Review when no terminal is attached.
var ErrNotInteractive = errors.New("interactive review requires a terminal")

// Curator is the set of intents a presentation layer may dispatch.
//
//nolint:interfacebloat // One method per user gesture.
type Curator interface {
	Snapshot() m.Snapshot
	Marked() []m.DeletionItem
	ToggleIgnore(index int) error
	SetMark(index int, side m.Side) error
	ClearAllMarks() int
	RunAutoSelect(config m.RuleConfig) (m.AutoSelectResult, error)
	DeleteMarked(ctx context.Context, observer m.DeletionObserver) m.BatchResult
	DeleteBothSides(ctx context.Context, index int) (m.BatchResult, error)
	DeleteFile(ctx context.Context, path m.Path) error
	SelectFirst()
	SelectNext()
	SelectPrevious()
	SelectRow(index int) error
}

// ReviewConfig configures an interactive review session.
type ReviewConfig struct {
	Rules m.RuleConfig
}

// UI defines how results are presented to the user.
type UI interface {
	Review(ctx context.Context, curator Curator, config ReviewConfig) error
	DisplayPairs(ctx context.Context, snapshot m.Snapshot) error
	DisplayAutoSelect(ctx context.Context, result m.AutoSelectResult)
	DisplayBatchResult(ctx context.Context, result m.BatchResult)
	// TrackDeletion returns an observer for a batch of total deletions and a
	// function to call once the batch is done.
	TrackDeletion(ctx context.Context, total int) (m.DeletionObserver, func())
}

// NewUI returns the interactive TUI when attached to a terminal and the plain
// SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
