package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/jeopardy/internal/board"
	"github.com/muurk/jeopardy/internal/game"
	"github.com/muurk/jeopardy/internal/logging"
	"github.com/muurk/jeopardy/internal/ui"
)

// Controller is the part of game.Controller the board screen drives
type Controller interface {
	Start(ctx context.Context) error
	Dispatch(cellID string) error
	Status() game.Status
	TriggerLabel() string
}

// setupDoneMsg arrives when a Start issued by the model returns
type setupDoneMsg struct {
	err error
}

// boardKeyMap defines key bindings for the board screen
type boardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Reveal  key.Binding
	Start   key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Start, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reveal, k.Start, k.Dismiss},
		{k.Help, k.Quit},
	}
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "reveal"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/restart"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "dismiss alert"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Options configures NewModel
type Options struct {
	// AutoStart begins a setup as soon as the program starts
	AutoStart bool
}

// Model is the Bubble Tea model of the board screen
type Model struct {
	ctx  context.Context
	ctrl Controller
	view *View
	opts Options

	Cursor board.Coord

	// setupRunning is true from a start keypress until its setupDoneMsg
	setupRunning bool

	Width  int
	Height int

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     boardKeyMap
}

// NewModel creates the board screen. view must be the View the controller
// renders to.
func NewModel(ctx context.Context, ctrl Controller, view *View, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		view:     view,
		opts:     opts,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     help.New(),
		keys:     newBoardKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.opts.AutoStart {
		return func() tea.Msg { return autoStartMsg{} }
	}
	return nil
}

type autoStartMsg struct{}

// startSetup runs a controller Start off the event loop
func (m Model) startSetup() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	run := func() tea.Msg {
		return setupDoneMsg{err: ctrl.Start(ctx)}
	}
	return tea.Batch(run, m.spinner.Tick)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case autoStartMsg:
		m.setupRunning = true
		return m, m.startSetup()

	case setupDoneMsg:
		m.setupRunning = false
		if msg.err != nil && !errors.Is(msg.err, game.ErrSetupInProgress) {
			logging.Debug("Setup finished with error", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		// keep ticking only while something is loading
		if !m.setupRunning && !m.view.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// an alert blocks everything else until dismissed
	if _, ok := m.view.PendingAlert(); ok {
		if key.Matches(msg, m.keys.Dismiss) {
			m.view.DismissAlert()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Start):
		if m.setupRunning || m.ctrl.Status() == game.Loading {
			return m, nil
		}
		m.setupRunning = true
		return m, m.startSetup()

	case key.Matches(msg, m.keys.Up):
		m.Cursor.Clue = clamp(m.Cursor.Clue-1, board.NumClues)
	case key.Matches(msg, m.keys.Down):
		m.Cursor.Clue = clamp(m.Cursor.Clue+1, board.NumClues)
	case key.Matches(msg, m.keys.Left):
		m.Cursor.Category = clamp(m.Cursor.Category-1, board.NumCategories)
	case key.Matches(msg, m.keys.Right):
		m.Cursor.Category = clamp(m.Cursor.Category+1, board.NumCategories)

	case key.Matches(msg, m.keys.Reveal):
		if err := m.ctrl.Dispatch(m.Cursor.ID()); err != nil &&
			!errors.Is(err, game.ErrNotReady) && !errors.Is(err, game.ErrNoSubscriber) {
			logging.Warn("Reveal failed", zap.String("cell", m.Cursor.ID()), zap.Error(err))
		}
	}

	return m, nil
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// View implements tea.Model
func (m Model) View() string {
	return RenderApplicationContainer(m.buildContent(), m.help.View(m.keys), m.Width, m.Height)
}

func (m Model) buildContent() string {
	contentWidth := m.Width - 6
	if contentWidth < MinTerminalWidth-6 {
		contentWidth = MinTerminalWidth - 6
	}

	var b strings.Builder

	label := m.ctrl.TriggerLabel()
	if m.ctrl.Status() == game.Loading {
		b.WriteString(DisabledTriggerStyle.Render(label))
	} else {
		b.WriteString(TriggerStyle.Render("[s] " + label))
	}
	b.WriteString("\n\n")

	if alert, ok := m.view.PendingAlert(); ok {
		b.WriteString(AlertStyle.Width(contentWidth - 4).Render("✗ " + alert + "\n\n" + ui.HelpStyle.Render("enter/esc to dismiss")))
		b.WriteString("\n\n")
	}

	// the board is hidden while loading
	if m.view.Loading() {
		b.WriteString(m.renderLoading())
		return b.String()
	}

	snap := m.view.Snapshot()
	if snap.Empty() {
		b.WriteString(SubtitleStyle.Render("Press s to deal a board of six categories."))
		return b.String()
	}

	b.WriteString(ui.RenderBoard(snap, ui.BoardOptions{
		Width:      contentWidth,
		Cursor:     m.Cursor,
		ShowCursor: true,
	}))
	b.WriteString("\n")
	b.WriteString(m.renderDetail(snap, contentWidth))

	return b.String()
}

func (m Model) renderLoading() string {
	done, total, label := m.view.LoadProgress()

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Loading categories...")
	b.WriteString("\n\n")

	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString(fmt.Sprintf("  %d/%d", done, total))
	if label != "" {
		b.WriteString("\n\n")
		b.WriteString(SubtitleStyle.Render("Loaded: " + label))
	}
	return b.String()
}

// renderDetail shows the full text of the selected cell
func (m Model) renderDetail(snap board.Snapshot, width int) string {
	cell, ok := snap.Cell(m.Cursor)
	if !ok {
		return ""
	}

	title := ""
	if m.Cursor.Category < len(snap.Headers) {
		title = snap.Headers[m.Cursor.Category]
	}
	heading := TitleStyle.Render(fmt.Sprintf("%s #%d", title, m.Cursor.Clue+1))

	body := cell.Content
	switch {
	case cell.Content == board.Placeholder:
		body = ui.HelpStyle.Render("Hidden. Press enter to show the question.")
	case cell.Answered:
		body = ui.StepCompleteStyle.Render(cell.Content)
	}

	return DetailStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, heading, body))
}
