// Package tui implements the terminal dashboard using Bubble Tea. It
// shows the live VPN status, recent connection events, and offers the
// same connect/disconnect actions as the tray.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nordvpn-indicator/config"
	"nordvpn-indicator/history"
	"nordvpn-indicator/nordvpn"
)

type statusMsg struct {
	snapshot nordvpn.Status
}

type actionMsg struct {
	action string
	err    error
}

type historyMsg struct {
	events []history.Event
}

type tickMsg time.Time

// Model is the dashboard state.
type Model struct {
	client *nordvpn.Client
	store  *history.Store
	cfg    *config.Config

	spinner  spinner.Model
	snapshot nordvpn.Status
	events   []history.Event

	checking  bool // Guard against overlapping status checks
	statusMsg string
	width     int
}

// NewModel creates the initial dashboard model. The history store may
// be nil when history is disabled.
func NewModel(client *nordvpn.Client, store *history.Store, cfg *config.Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("26"))

	return Model{
		client:   client,
		store:    store,
		cfg:      cfg,
		spinner:  sp,
		snapshot: *nordvpn.NewStatus(),
		checking: true,
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(client *nordvpn.Client, store *history.Store, cfg *config.Config) error {
	program := tea.NewProgram(NewModel(client, store, cfg))
	_, err := program.Run()
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.checkStatus(),
		m.loadHistory(),
		m.tickCmd(),
	)
}

// tickCmd schedules the next periodic refresh.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.RefreshInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// checkStatus refreshes the snapshot off the UI loop.
func (m Model) checkStatus() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		client.StatusCheck()
		return statusMsg{snapshot: client.Snapshot()}
	}
}

func (m Model) loadHistory() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		events, err := store.Recent(5)
		if err != nil {
			return historyMsg{}
		}
		return historyMsg{events: events}
	}
}

func (m Model) connect() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Connect()
		return actionMsg{action: "connect", err: err}
	}
}

func (m Model) disconnect() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Disconnect()
		return actionMsg{action: "disconnect", err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.checking {
				m.checking = true
				m.statusMsg = "Refreshing..."
				cmds = append(cmds, m.checkStatus())
			}
		case "c":
			m.statusMsg = "Connecting..."
			cmds = append(cmds, m.connect())
		case "d":
			m.statusMsg = "Disconnecting..."
			cmds = append(cmds, m.disconnect())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case statusMsg:
		m.snapshot = msg.snapshot
		m.checking = false
		m.statusMsg = ""

	case actionMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		} else {
			m.statusMsg = ""
		}
		// An action changed the connection; refresh right away.
		if !m.checking {
			m.checking = true
			cmds = append(cmds, m.checkStatus())
		}
		cmds = append(cmds, m.loadHistory())

	case historyMsg:
		m.events = msg.events

	case tickMsg:
		// Skip when a check is already in flight so slow client
		// invocations never pile up.
		if !m.checking {
			m.checking = true
			cmds = append(cmds, m.checkStatus())
		}
		cmds = append(cmds, m.tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("NordVPN Indicator"))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if len(m.events) > 0 {
		b.WriteString(m.renderHistory())
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString(statusLineStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("c connect · d disconnect · r refresh · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderStatus() string {
	var state string
	switch m.snapshot.State {
	case nordvpn.StatusConnected:
		state = connectedStyle.Render("● Connected")
	case nordvpn.StatusDisconnected:
		state = disconnectedStyle.Render("○ Disconnected")
	default:
		state = waitingStyle.Render(m.spinner.View() + " Waiting")
	}

	rows := []string{state}

	if m.snapshot.State == nordvpn.StatusConnected {
		rows = append(rows,
			labelStyle.Render("Server")+valueStyle.Render(m.snapshot.Server),
			labelStyle.Render("Location")+valueStyle.Render(m.snapshot.Country+", "+m.snapshot.City),
			labelStyle.Render("IP")+valueStyle.Render(m.snapshot.IP),
			labelStyle.Render("Protocol")+valueStyle.Render(m.snapshot.Protocol),
			labelStyle.Render("Transfer")+valueStyle.Render(m.snapshot.Transfer),
			labelStyle.Render("Uptime")+valueStyle.Render(m.snapshot.Uptime),
		)
	}

	for _, warning := range m.snapshot.Warnings() {
		rows = append(rows, warningStyle.Render("⚠ "+warning))
	}

	return boxStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderHistory() string {
	rows := []string{labelStyle.Render("Recent")}
	for _, event := range m.events {
		rows = append(rows, fmt.Sprintf("%s  %-12s %s",
			historyTimeStyle.Render(event.Timestamp.Format("Jan 02 15:04")),
			event.Kind,
			valueStyle.Render(event.Detail)))
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}
