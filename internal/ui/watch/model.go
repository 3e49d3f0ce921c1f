// Package watch provides the live capacity TUI: a polling view of the
// cluster's recent capacity history with chart, usage bar and threshold
// alerts.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/Joe-Costa/qumulo-usage-report/internal/logger"
	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
	"github.com/Joe-Costa/qumulo-usage-report/internal/qumulo"
	"github.com/Joe-Costa/qumulo-usage-report/internal/report"
	"github.com/Joe-Costa/qumulo-usage-report/internal/ui/components"
)

// keyMap defines the key bindings for the watch view.
type keyMap struct {
	Refresh     key.Binding
	Granularity key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Granularity: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "cycle granularity"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyLoadedMsg is sent when capacity history has been fetched.
type historyLoadedMsg struct {
	samples []models.CapacitySample
}

// historyErrorMsg is sent when a fetch fails.
type historyErrorMsg struct {
	err string
}

// refreshTickMsg drives the polling interval.
type refreshTickMsg time.Time

// TokenChangedMsg is sent from outside the program when the token file
// was rewritten; the new credential takes effect on the next fetch.
type TokenChangedMsg struct {
	Token string
}

// Config holds the watch view settings.
type Config struct {
	Client *qumulo.Client
	// Window is the trailing history window to display.
	Window time.Duration
	// Interval is the polling interval.
	Interval time.Duration
	// AlertPercent triggers a desktop notification when the latest
	// sample's percent used reaches it. Zero disables alerts.
	AlertPercent float64
}

// Model is the bubbletea model for the watch view.
type Model struct {
	client *qumulo.Client
	cfg    Config
	keys   keyMap
	spin   components.LoadingSpinner

	width  int
	height int

	granularity models.Granularity
	samples     []models.CapacitySample
	stats       *models.SummaryStats
	records     []models.PeriodRecord
	loading     bool
	errMsg      string
	lastRefresh time.Time
	alerted     bool
}

// New creates a watch model.
func New(cfg Config) *Model {
	return &Model{
		client:      cfg.Client,
		cfg:         cfg,
		keys:        defaultKeyMap(),
		spin:        components.NewSpinner("Fetching capacity history..."),
		granularity: models.GranularityNone,
		loading:     true,
	}
}

// Init starts the first fetch and the polling ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick(), m.fetchCmd(), m.tickCmd())
}

// fetchCmd loads the trailing window of capacity history.
func (m *Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		end := time.Now()
		begin := end.Add(-m.cfg.Window)

		samples, err := m.client.CapacityHistory(ctx, begin, end)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}
		return historyLoadedMsg{samples: samples}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update handles messages for the watch view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if !m.loading {
				m.loading = true
				cmds = append(cmds, m.fetchCmd(), m.spin.Tick())
			}
		case key.Matches(msg, m.keys.Granularity):
			m.granularity = m.granularity.Next()
			m.recompute()
		}

	case refreshTickMsg:
		if !m.loading {
			m.loading = true
			cmds = append(cmds, m.fetchCmd(), m.spin.Tick())
		}
		cmds = append(cmds, m.tickCmd())

	case historyLoadedMsg:
		m.loading = false
		m.lastRefresh = time.Now()
		m.errMsg = ""
		m.samples = msg.samples
		m.recompute()
		m.checkAlert()

	case historyErrorMsg:
		m.loading = false
		m.errMsg = msg.err

	case TokenChangedMsg:
		m.client.SetToken(msg.Token)
		logger.Info("access token reloaded from token file")
		if !m.loading {
			m.loading = true
			cmds = append(cmds, m.fetchCmd(), m.spin.Tick())
		}

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// recompute rebuilds the summary and period records from the current
// samples and granularity.
func (m *Model) recompute() {
	if len(m.samples) == 0 {
		m.stats = nil
		m.records = nil
		return
	}

	stats, err := report.Summarize(m.samples)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	records, err := report.Aggregate(m.samples, m.granularity)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.stats = stats
	m.records = records
	m.errMsg = ""
}

// checkAlert fires a desktop notification once per threshold crossing.
func (m *Model) checkAlert() {
	if m.cfg.AlertPercent <= 0 || m.stats == nil {
		return
	}

	if m.stats.EndPercent >= m.cfg.AlertPercent {
		if !m.alerted {
			m.alerted = true
			title := "Cluster capacity alert"
			body := fmt.Sprintf("%s is %.2f%% full (threshold %.0f%%)",
				m.client.Host(), m.stats.EndPercent, m.cfg.AlertPercent)
			if err := beeep.Notify(title, body, ""); err != nil {
				logger.Warn("failed to send capacity notification", "error", err)
			}
		}
	} else {
		m.alerted = false
	}
}
