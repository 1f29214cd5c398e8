package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return cmd, out, errOut
}

func testSnapshot() m.Snapshot {
	return m.Snapshot{
		Pairs: []m.Pair{
			{
				Index:      0,
				File1:      m.FileInfo{Path: "/p/a.jpg", Resolution: m.Resolution{Width: 800, Height: 600}, FileSize: 2048},
				File2:      m.FileInfo{Path: "/p/b.jpg", Resolution: m.Resolution{Width: 1600, Height: 1200}, FileSize: 4096},
				Similarity: 97.5,
				Marked:     m.SideA,
			},
			{
				Index:      3,
				File1:      m.FileInfo{Path: m.DeletedPath},
				File2:      m.FileInfo{Path: "/p/d.jpg"},
				Similarity: 91,
				Status:     m.StatusIgnored,
			},
		},
		ActiveIndex: 0,
		TotalLoaded: 4,
	}
}

func TestSimpleUI_DisplayPairs(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	if err := ui.DisplayPairs(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("DisplayPairs() error = %v", err)
	}

	output := strings.ToLower(out.String())
	for _, want := range []string{"file a", "/p/a.jpg", "/p/b.jpg", "97.50%", "deleted", "ignored", "pairs 2", "marked 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayPairs_Empty(t *testing.T) {
	cmd, out, _ := newTestCommand()

	if err := NewSimpleUI(cmd).DisplayPairs(context.Background(), m.Snapshot{}); err != nil {
		t.Fatalf("DisplayPairs() error = %v", err)
	}

	if !strings.Contains(out.String(), "No duplicate pairs found") {
		t.Errorf("expected empty message, got: %s", out.String())
	}
}

func TestSimpleUI_DisplayPairs_Cancelled(t *testing.T) {
	cmd, _, _ := newTestCommand()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSimpleUI(cmd).DisplayPairs(ctx, testSnapshot())
	require.ErrorIs(t, err, context.Canceled)
}

func TestSimpleUI_DisplayBatchResult(t *testing.T) {
	cmd, out, _ := newTestCommand()

	NewSimpleUI(cmd).DisplayBatchResult(context.Background(), m.BatchResult{
		Planned:      3,
		Succeeded:    2,
		Failed:       1,
		FailedPaths:  []m.Path{"/p/locked.jpg"},
		Errors:       []error{errors.New("delete /p/locked.jpg: permission denied")},
		RemovedPairs: []int{4},
	})

	output := out.String()
	assert.Contains(t, output, "Files planned (deduplicated): 3")
	assert.Contains(t, output, "Deleted: 2")
	assert.Contains(t, output, "Failed:  1")
	assert.Contains(t, output, "Pairs removed: 1")
	assert.Contains(t, output, "permission denied")
}

func TestSimpleUI_DisplayAutoSelect(t *testing.T) {
	cmd, out, _ := newTestCommand()

	NewSimpleUI(cmd).DisplayAutoSelect(context.Background(), m.AutoSelectResult{Selected: 5, Cleared: 2})

	assert.Contains(t, out.String(), "Auto-select marked 5 pair(s), cleared 2")
}

func TestSimpleUI_TrackDeletion(t *testing.T) {
	cmd, _, errOut := newTestCommand()
	ui := NewSimpleUI(cmd)

	observer, done := ui.TrackDeletion(context.Background(), 2)
	require.NotNil(t, observer)

	observer(m.DeletionItem{Path: "/a"}, nil)
	observer(m.DeletionItem{Path: "/b"}, errors.New("nope"))
	done()

	assert.NotEmpty(t, errOut.String())

	observer, done = ui.TrackDeletion(context.Background(), 0)
	assert.Nil(t, observer)
	done()
}

func TestSimpleUI_Review(t *testing.T) {
	cmd, out, _ := newTestCommand()

	curator := newFakeCurator(testSnapshot())

	err := NewSimpleUI(cmd).Review(context.Background(), curator, ReviewConfig{})
	require.ErrorIs(t, err, ErrNotInteractive)
	assert.Contains(t, out.String(), "/p/a.jpg")
}

func TestNewUI(t *testing.T) {
	cmd, out, _ := newTestCommand()

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(out))
}

func TestReasonOrPath(t *testing.T) {
	assert.Equal(t, "/x", reasonOrPath("/x", ""))
	assert.Equal(t, "boom", reasonOrPath("/x", "boom"))
}
