package controller

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Review prints the pairs and reports that no interactive session is possible.
func (s *SimpleUI) Review(ctx context.Context, curator Curator, _ ReviewConfig) error {
	if err := s.DisplayPairs(ctx, curator.Snapshot()); err != nil {
		return err
	}

	return ErrNotInteractive
}

// DisplayPairs prints the working set as a table.
func (s *SimpleUI) DisplayPairs(ctx context.Context, snapshot m.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(snapshot.Pairs) == 0 {
		s.printf("No duplicate pairs found\n")
		return nil
	}

	s.printf("\n%s", renderPairTable(snapshot))

	return nil
}

func renderPairTable(snapshot m.Snapshot) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Mark", "File A", "File B", "Similarity", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	for _, pair := range snapshot.Pairs {
		table.Append([]string{
			fmt.Sprintf("%d", pair.Index),
			pair.Marked.String(),
			pair.File1.Path.String(),
			pair.File2.Path.String(),
			fmt.Sprintf("%.2f%%", pair.Similarity),
			pair.Status.String(),
		})
	}

	active, ignored, marked := snapshot.Counts()
	table.SetFooter([]string{
		"", "",
		fmt.Sprintf("Pairs %d", len(snapshot.Pairs)),
		fmt.Sprintf("Ignored %d", ignored),
		fmt.Sprintf("Active %d", active),
		fmt.Sprintf("Marked %d", marked),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayAutoSelect prints how many pairs were marked.
func (s *SimpleUI) DisplayAutoSelect(ctx context.Context, result m.AutoSelectResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Auto-select marked %d pair(s), cleared %d\n", result.Selected, result.Cleared)
}

// DisplayBatchResult prints the summary of a batch deletion.
func (s *SimpleUI) DisplayBatchResult(ctx context.Context, result m.BatchResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	s.printf("\nBatch deletion result (%s)\n", time.Now().Format(time.TimeOnly))
	s.printf("  Files planned (deduplicated): %d\n", result.Planned)
	s.printf("  Deleted: %s\n", green(result.Succeeded))

	if result.Failed == 0 {
		s.printf("  Failed:  %s\n", gray(0))
	} else {
		s.printf("  Failed:  %s\n", red(result.Failed))
	}

	s.printf("  Pairs removed: %d\n", len(result.RemovedPairs))

	for i, path := range result.FailedPaths {
		reason := ""
		if i < len(result.Errors) && result.Errors[i] != nil {
			reason = result.Errors[i].Error()
		}

		s.printf("    %s %s\n", red("✗"), gray(reasonOrPath(path, reason)))
	}
}

// TrackDeletion shows a progress bar on stderr.
func (s *SimpleUI) TrackDeletion(ctx context.Context, total int) (m.DeletionObserver, func()) {
	if total == 0 || ctx.Err() != nil {
		return nil, func() {}
	}

	bar := pb.New(total).SetWriter(s.cmd.ErrOrStderr()).Start()

	observer := func(_ m.DeletionItem, _ error) {
		bar.Increment()
	}

	return observer, func() {
		bar.Finish()
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func reasonOrPath(path m.Path, reason string) string {
	if reason == "" {
		return string(path)
	}

	return reason
}
