// Package ui is the render/input loop of the dashboard. It owns a bubbletea
// program whose model wraps the application state; background fetch cycles
// communicate with it only through the event channel, which the update loop
// drains without blocking once per tick.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/app"
	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/fetch"
)

// drainInterval is how often the update loop polls the event channel
const drainInterval = 80 * time.Millisecond

// eventBuffer sizes the sink channel for a full cycle burst of a large
// account without ever stalling the pipeline between drains
const eventBuffer = 512

// Message types for the update loop

type drainMsg struct{}

type autoRefreshMsg struct{}

type refreshRequestMsg struct{}

// Model is the bubbletea model for the dashboard
type Model struct {
	state    *app.State
	pipeline *fetch.Pipeline
	events   chan fetch.Event
	logger   *log.Logger

	spin spinner.Model
	prog progress.Model

	width        int
	height       int
	refreshEvery time.Duration
	quitting     bool
}

// NewModel wires the model together. refreshEvery of zero disables the
// periodic auto-refresh.
func NewModel(state *app.State, pipeline *fetch.Pipeline, logger *log.Logger, refreshEvery time.Duration) Model {
	return Model{
		state:        state,
		pipeline:     pipeline,
		events:       make(chan fetch.Event, eventBuffer),
		logger:       logger,
		spin:         NewAppSpinner(),
		prog:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		width:        DefaultWidth,
		height:       DefaultHeight,
		refreshEvery: refreshEvery,
	}
}

// Init implements tea.Model: start the spinner, the drain tick, the first
// fetch cycle and the organization side-channel fetch
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		m.drainTick(),
		func() tea.Msg { return refreshRequestMsg{} },
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, m.autoRefreshTick())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.state.Cursor = app.EnsureVisible(m.state.Cursor, len(m.state.Repositories), m.visibleRows())
		return m, nil

	case drainMsg:
		m.drainEvents()
		return m, m.drainTick()

	case refreshRequestMsg:
		m.startCycle(m.state.Refresh())
		if len(m.state.Organizations) == 0 && !m.state.OrgsFetching {
			m.startOrganizationsFetch()
		}
		return m, nil

	case autoRefreshMsg:
		// Skip the periodic refresh while a cycle is already running
		if !m.state.Phase.Loading() && !m.state.Phase.Enhancing() {
			m.startCycle(m.state.Refresh())
		}
		return m, m.autoRefreshTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey maps raw key presses onto the abstract dashboard commands
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	length := len(m.state.Repositories)
	window := m.visibleRows()

	switch msg.String() {
	case "q", "Q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "r", "R", "f5":
		m.startCycle(m.state.Refresh())
		return m, nil

	case "tab", "o", "O":
		m.cycleMode()
		return m, nil

	case "up", "k":
		m.state.Cursor = app.MoveUp(m.state.Cursor, length, window)
		return m, nil

	case "down", "j":
		m.state.Cursor = app.MoveDown(m.state.Cursor, length, window)
		return m, nil

	case "pgup":
		m.state.Cursor = app.PageUp(m.state.Cursor, length, window)
		return m, nil

	case "pgdown":
		m.state.Cursor = app.PageDown(m.state.Cursor, length, window)
		return m, nil

	case "home", "g":
		m.state.Cursor = app.Home(m.state.Cursor, length, window)
		return m, nil

	case "end", "G":
		m.state.Cursor = app.End(m.state.Cursor, length, window)
		return m, nil
	}

	return m, nil
}

// drainEvents applies every pending pipeline event without ever blocking on
// the channel
func (m *Model) drainEvents() {
	for {
		select {
		case ev := <-m.events:
			m.state.Apply(ev)
		default:
			m.state.Cursor = app.EnsureVisible(m.state.Cursor, len(m.state.Repositories), m.visibleRows())
			return
		}
	}
}

// cycleMode advances Personal -> Org1 -> ... -> Personal. When the
// organization list is still empty the fetch is triggered instead; the
// cycle request is not queued, the user repeats it once orgs are known.
func (m *Model) cycleMode() {
	next, ok := m.state.NextMode()
	if !ok {
		if !m.state.OrgsFetching {
			m.startOrganizationsFetch()
		}
		m.state.Notice = "Fetching organizations, try again in a moment"
		return
	}

	if gen, fetchNeeded := m.state.SwitchMode(next); fetchNeeded {
		m.startCycle(gen)
	}
}

// startCycle launches one background fetch cycle for the current mode,
// tagged with the given generation
func (m *Model) startCycle(gen int) {
	mode := m.state.Mode
	go m.pipeline.Run(context.Background(), mode, gen, m.events)
}

func (m *Model) startOrganizationsFetch() {
	gen := m.state.Generation()
	go m.pipeline.FetchOrganizations(context.Background(), gen, m.events)
}

func (m Model) drainTick() tea.Cmd {
	return tea.Tick(drainInterval, func(time.Time) tea.Msg { return drainMsg{} })
}

func (m Model) autoRefreshTick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg { return autoRefreshMsg{} })
}

// visibleRows is the number of repository rows that fit in the content area
func (m Model) visibleRows() int {
	rows := m.height - HeaderHeight - FooterHeight - TableChrome
	if rows < MinVisibleRows {
		rows = MinVisibleRows
	}
	return rows
}

// Run starts the dashboard program and blocks until it exits
func Run(state *app.State, pipeline *fetch.Pipeline, logger *log.Logger, refreshEvery time.Duration) error {
	p := tea.NewProgram(NewModel(state, pipeline, logger, refreshEvery), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
