package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

// TUI implements UI using Bubble Tea for interactive review. Non-interactive
// output is delegated to SimpleUI.
type TUI struct {
	*SimpleUI
	input  io.Reader
	output io.Writer
}

// NewTUI creates a new TUI bound to the command's streams.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		SimpleUI: NewSimpleUI(cmd),
		input:    cmd.InOrStdin(),
		output:   cmd.OutOrStdout(),
	}
}

// Review runs the interactive session until the user quits.
func (t *TUI) Review(ctx context.Context, curator Curator, config ReviewConfig) error {
	curator.SelectFirst()

	program := tea.NewProgram(
		newReviewModel(ctx, curator, config),
		tea.WithContext(ctx),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	if model, ok := final.(reviewModel); ok && model.session.Planned > 0 {
		t.DisplayBatchResult(ctx, model.session)
	}

	return nil
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8BB26")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DF5353")).Bold(true)
	rowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0"))
	ignoredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")).Strikethrough(true)
	markStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A1A1AA"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Italic(true)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#3F3F46")).Padding(0, 1)
	confirmStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FBBF24")).Padding(1, 2)
	mosaicOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0"))
	mosaicOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3F3F46"))
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	First        key.Binding
	Ignore       key.Binding
	Unignore     key.Binding
	MarkA        key.Binding
	MarkB        key.Binding
	ClearMark    key.Binding
	ClearAll     key.Binding
	AutoSelect   key.Binding
	DeleteA      key.Binding
	DeleteB      key.Binding
	DeleteBoth   key.Binding
	DeleteMarked key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		First:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Ignore:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "ignore")),
		Unignore:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo ignore")),
		MarkA:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark A")),
		MarkB:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "mark B")),
		ClearMark:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unmark")),
		ClearAll:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "unmark all")),
		AutoSelect:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "auto-select")),
		DeleteA:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "delete A")),
		DeleteB:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "delete B")),
		DeleteBoth:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete both")),
		DeleteMarked: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete marked")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MarkA, k.MarkB, k.Ignore, k.AutoSelect, k.DeleteMarked, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Ignore, k.Unignore},
		{k.MarkA, k.MarkB, k.ClearMark, k.ClearAll, k.AutoSelect},
		{k.DeleteA, k.DeleteB, k.DeleteBoth, k.DeleteMarked},
		{k.Help, k.Quit},
	}
}

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteFile
	confirmDeleteBoth
	confirmDeleteMarked
)

type confirmState struct {
	action confirmAction
	index  int
	path   m.Path
	lines  []string
}

// Messages produced by asynchronous deletions.
type batchDoneMsg struct {
	result m.BatchResult
}

type bothDoneMsg struct {
	index  int
	result m.BatchResult
	err    error
}

type fileDoneMsg struct {
	path m.Path
	err  error
}

// reviewModel is the Bubble Tea model of an interactive review session.
type reviewModel struct {
	ctx       context.Context
	curator   Curator
	config    ReviewConfig
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	snapshot  m.Snapshot
	ignored   []int // undo stack for ignore
	confirm   confirmState
	busy      bool
	status    string
	statusErr bool
	session   m.BatchResult // every deletion run during the session
	width     int
	height    int
}

func newReviewModel(ctx context.Context, curator Curator, config ReviewConfig) reviewModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return reviewModel{
		ctx:      ctx,
		curator:  curator,
		config:   config,
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  sp,
		snapshot: curator.Snapshot(),
	}
}

func (rm reviewModel) Init() tea.Cmd {
	return nil
}

func (rm reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.help.Width = msg.Width

		return rm, nil

	case spinner.TickMsg:
		if !rm.busy {
			return rm, nil
		}

		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd

	case batchDoneMsg:
		rm.busy = false
		rm.session.Add(msg.result)
		rm.setStatus(formatBatch("Batch deletion", msg.result), msg.result.Failed > 0)

		return rm.refresh(), nil

	case bothDoneMsg:
		rm.busy = false

		switch {
		case msg.err != nil:
			rm.setStatus(msg.err.Error(), true)
		default:
			rm.session.Add(msg.result)
			rm.setStatus(formatBatch(fmt.Sprintf("Pair %d", msg.index), msg.result), msg.result.Failed > 0)
		}

		return rm.refresh(), nil

	case fileDoneMsg:
		rm.busy = false

		single := m.BatchResult{Planned: 1}

		if msg.err != nil {
			single.Failed = 1
			single.FailedPaths = []m.Path{msg.path}
			single.Errors = []error{msg.err}
			rm.setStatus(msg.err.Error(), true)
		} else {
			single.Succeeded = 1
			rm.setStatus(fmt.Sprintf("Deleted %s", msg.path), false)
		}

		rm.session.Add(single)

		return rm.refresh(), nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

func (rm reviewModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return rm, tea.Quit
	}

	if rm.busy {
		return rm, nil
	}

	if rm.confirm.action != confirmNone {
		return rm.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, rm.keys.Quit):
		return rm, tea.Quit
	case key.Matches(msg, rm.keys.Help):
		rm.help.ShowAll = !rm.help.ShowAll
		return rm, nil
	case key.Matches(msg, rm.keys.Up):
		rm.curator.SelectPrevious()
	case key.Matches(msg, rm.keys.Down):
		rm.curator.SelectNext()
	case key.Matches(msg, rm.keys.First):
		rm.curator.SelectFirst()
	case key.Matches(msg, rm.keys.Ignore):
		rm = rm.ignoreActive()
	case key.Matches(msg, rm.keys.Unignore):
		rm = rm.undoIgnore()
	case key.Matches(msg, rm.keys.MarkA):
		rm = rm.markActive(m.SideA)
	case key.Matches(msg, rm.keys.MarkB):
		rm = rm.markActive(m.SideB)
	case key.Matches(msg, rm.keys.ClearMark):
		rm = rm.markActive(m.SideNone)
	case key.Matches(msg, rm.keys.ClearAll):
		rm.setStatus(fmt.Sprintf("Cleared %d mark(s)", rm.curator.ClearAllMarks()), false)
	case key.Matches(msg, rm.keys.AutoSelect):
		rm = rm.autoSelect()
	case key.Matches(msg, rm.keys.DeleteA):
		rm = rm.askDeleteFile(m.SideA)
	case key.Matches(msg, rm.keys.DeleteB):
		rm = rm.askDeleteFile(m.SideB)
	case key.Matches(msg, rm.keys.DeleteBoth):
		rm = rm.askDeleteBoth()
	case key.Matches(msg, rm.keys.DeleteMarked):
		rm = rm.askDeleteMarked()
	}

	return rm.refresh(), nil
}

func (rm reviewModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		action := rm.confirm
		rm.confirm = confirmState{}
		rm.busy = true

		return rm, tea.Batch(rm.spinner.Tick, rm.runConfirmed(action))
	case "n", "esc", "q":
		rm.confirm = confirmState{}
		rm.setStatus("Cancelled", false)
	}

	return rm, nil
}

func (rm reviewModel) runConfirmed(action confirmState) tea.Cmd {
	ctx := rm.ctx
	curator := rm.curator

	switch action.action {
	case confirmDeleteFile:
		return func() tea.Msg {
			return fileDoneMsg{path: action.path, err: curator.DeleteFile(ctx, action.path)}
		}
	case confirmDeleteBoth:
		return func() tea.Msg {
			result, err := curator.DeleteBothSides(ctx, action.index)
			return bothDoneMsg{index: action.index, result: result, err: err}
		}
	case confirmDeleteMarked:
		return func() tea.Msg {
			return batchDoneMsg{result: curator.DeleteMarked(ctx, nil)}
		}
	case confirmNone:
	}

	return nil
}

func (rm reviewModel) refresh() reviewModel {
	rm.snapshot = rm.curator.Snapshot()
	return rm
}

func (rm *reviewModel) setStatus(status string, isErr bool) {
	rm.status = status
	rm.statusErr = isErr
}

func (rm reviewModel) ignoreActive() reviewModel {
	index := rm.curator.Snapshot().ActiveIndex
	if index == m.NoIndex {
		return rm
	}

	if err := rm.curator.ToggleIgnore(index); err != nil {
		rm.setStatus(err.Error(), true)
		return rm
	}

	rm.ignored = append(rm.ignored, index)
	rm.setStatus(fmt.Sprintf("Ignored pair %d", index), false)

	return rm
}

func (rm reviewModel) undoIgnore() reviewModel {
	for len(rm.ignored) > 0 {
		index := rm.ignored[len(rm.ignored)-1]
		rm.ignored = rm.ignored[:len(rm.ignored)-1]

		// The pair may have been removed by a deletion meanwhile.
		if err := rm.curator.ToggleIgnore(index); err != nil {
			continue
		}

		rm.setStatus(fmt.Sprintf("Restored pair %d", index), false)

		return rm
	}

	rm.setStatus("Nothing to restore", false)

	return rm
}

func (rm reviewModel) markActive(side m.Side) reviewModel {
	index := rm.curator.Snapshot().ActiveIndex
	if index == m.NoIndex {
		return rm
	}

	if err := rm.curator.SetMark(index, side); err != nil {
		rm.setStatus(err.Error(), true)
		return rm
	}

	rm.setStatus("", false)

	return rm
}

func (rm reviewModel) autoSelect() reviewModel {
	result, err := rm.curator.RunAutoSelect(rm.config.Rules)
	if err != nil {
		rm.setStatus(fmt.Sprintf("Auto-select: %v (enable criteria in the config file or flags)", err), true)
		return rm
	}

	rm.setStatus(fmt.Sprintf("Auto-select marked %d pair(s), cleared %d", result.Selected, result.Cleared), false)

	return rm
}

func (rm reviewModel) askDeleteFile(side m.Side) reviewModel {
	pair, ok := rm.curator.Snapshot().Active()
	if !ok {
		return rm
	}

	file := pair.File(side)
	if file.Path.IsDeleted() {
		rm.setStatus(fmt.Sprintf("Side %s is already deleted", side), true)
		return rm
	}

	rm.confirm = confirmState{
		action: confirmDeleteFile,
		index:  pair.Index,
		path:   file.Path,
		lines:  []string{fmt.Sprintf("Delete %s?", file.Path)},
	}

	return rm
}

func (rm reviewModel) askDeleteBoth() reviewModel {
	pair, ok := rm.curator.Snapshot().Active()
	if !ok {
		return rm
	}

	rm.confirm = confirmState{
		action: confirmDeleteBoth,
		index:  pair.Index,
		lines: []string{
			"Delete both files?",
			pair.File1.Path.String(),
			pair.File2.Path.String(),
		},
	}

	return rm
}

func (rm reviewModel) askDeleteMarked() reviewModel {
	items := rm.curator.Marked()
	if len(items) == 0 {
		rm.setStatus("No files are marked for deletion", false)
		return rm
	}

	rm.confirm = confirmState{
		action: confirmDeleteMarked,
		lines: []string{
			fmt.Sprintf("Delete %d marked file(s)? This cannot be undone.", len(items)),
		},
	}

	return rm
}

func formatBatch(label string, result m.BatchResult) string {
	summary := fmt.Sprintf("%s: %d deleted, %d failed, %d pair(s) removed",
		label, result.Succeeded, result.Failed, len(result.RemovedPairs))

	if result.Failed > 0 {
		paths := make([]string, 0, len(result.FailedPaths))
		for _, path := range result.FailedPaths {
			paths = append(paths, string(path))
		}

		summary += " (" + strings.Join(paths, ", ") + ")"
	}

	return summary
}

func (rm reviewModel) View() string {
	var b strings.Builder

	active, ignored, marked := rm.snapshot.Counts()
	fmt.Fprintf(&b, "%s  %s\n\n",
		titleStyle.Render("twinpick - duplicate review"),
		infoStyle.Render(fmt.Sprintf("%d/%d pairs | %d ignored | %d marked",
			active, rm.snapshot.TotalLoaded, ignored, marked)))

	if len(rm.snapshot.Pairs) == 0 {
		b.WriteString(emptyStyle.Render("  No duplicate pairs left") + "\n\n")
		b.WriteString(rm.help.View(rm.keys))

		return b.String()
	}

	rm.renderList(&b)
	b.WriteString("\n")

	if pair, ok := rm.snapshot.Active(); ok {
		b.WriteString(renderPreview(pair))
		b.WriteString("\n")
	}

	if rm.confirm.action != confirmNone {
		lines := append(append([]string{}, rm.confirm.lines...), "", "y: confirm | n: cancel")
		b.WriteString(confirmStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	rm.renderStatus(&b)
	b.WriteString(rm.help.View(rm.keys))

	return b.String()
}

func (rm reviewModel) renderStatus(b *strings.Builder) {
	switch {
	case rm.busy:
		fmt.Fprintf(b, "%s Deleting...\n", rm.spinner.View())
	case rm.status == "":
		b.WriteString("\n")
	case rm.statusErr:
		b.WriteString(errorStyle.Render(rm.status) + "\n")
	default:
		b.WriteString(successStyle.Render(rm.status) + "\n")
	}
}

// listRows returns how many pair rows fit on screen.
func (rm reviewModel) listRows() int {
	if rm.height == 0 {
		return 10
	}

	// Header, preview panel, status and help take roughly this many lines.
	reserved := 22

	available := rm.height - reserved
	if available < 3 {
		return 3
	}

	return available
}

func (rm reviewModel) renderList(b *strings.Builder) {
	pairs := rm.snapshot.Pairs
	rows := rm.listRows()

	activePos := 0

	for pos, pair := range pairs {
		if pair.Index == rm.snapshot.ActiveIndex {
			activePos = pos
			break
		}
	}

	start := activePos - rows/2
	if start > len(pairs)-rows {
		start = len(pairs) - rows
	}

	if start < 0 {
		start = 0
	}

	end := start + rows
	if end > len(pairs) {
		end = len(pairs)
	}

	for _, pair := range pairs[start:end] {
		b.WriteString(rm.renderRow(pair))
		b.WriteString("\n")
	}

	if len(pairs) > rows {
		b.WriteString(infoStyle.Render(fmt.Sprintf("  showing %d-%d of %d", start+1, end, len(pairs))))
		b.WriteString("\n")
	}
}

func (rm reviewModel) renderRow(pair m.Pair) string {
	cursor := "  "
	if pair.Index == rm.snapshot.ActiveIndex {
		cursor = cursorStyle.Render("> ")
	}

	mark := "[ ]"
	if pair.Marked != m.SideNone {
		mark = markStyle.Render("[" + pair.Marked.String() + "]")
	}

	line := fmt.Sprintf("%4d  %s  %s  %6.2f%%",
		pair.Index, renderPath(pair.File1.Path), renderPath(pair.File2.Path), pair.Similarity)

	if pair.Status == m.StatusIgnored {
		return cursor + "    " + ignoredStyle.Render(line)
	}

	return cursor + mark + " " + rowStyle.Render(line)
}

func renderPath(path m.Path) string {
	if path.IsDeleted() {
		return deletedStyle.Render(path.String())
	}

	return string(path)
}

func renderPreview(pair m.Pair) string {
	left := renderFilePanel("A", pair.File1, pair.Marked == m.SideA)
	right := renderFilePanel("B", pair.File2, pair.Marked == m.SideB)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func renderFilePanel(label string, file m.FileInfo, marked bool) string {
	var b strings.Builder

	title := "Side " + label
	if marked {
		title += markStyle.Render("  marked for deletion")
	}

	b.WriteString(titleStyle.Render(title) + "\n")

	if file.Path.IsDeleted() {
		b.WriteString(deletedStyle.Render("deleted"))
		return panelStyle.Render(b.String())
	}

	fmt.Fprintf(&b, "%s\n", file.Path)
	fmt.Fprintf(&b, "%s | %.2f KB\n", file.Resolution, float64(file.FileSize)/1024)
	fmt.Fprintf(&b, "modified %s\n", time.Unix(int64(file.ModTime), 0).Format(time.DateTime))

	if mosaic := renderMosaic(file.HashMatrix); mosaic != "" {
		b.WriteString("\n" + mosaic)
	}

	return panelStyle.Render(b.String())
}

// renderMosaic draws the hash bit grid, one cell per bit.
func renderMosaic(cells []int) string {
	if len(cells) == 0 {
		return ""
	}

	side := int(math.Sqrt(float64(len(cells))))
	if side*side != len(cells) {
		side = 8
	}

	var b strings.Builder

	for i, cell := range cells {
		if cell != 0 {
			b.WriteString(mosaicOnStyle.Render("██"))
		} else {
			b.WriteString(mosaicOffStyle.Render("░░"))
		}

		if (i+1)%side == 0 && i+1 < len(cells) {
			b.WriteString("\n")
		}
	}

	return b.String()
}
