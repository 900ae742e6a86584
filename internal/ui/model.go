package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockdash/internal/config"
	"stockdash/internal/domain"
	"stockdash/internal/market"
	"stockdash/internal/ui/coordinator"
	"stockdash/internal/ui/input"
	"stockdash/internal/ui/input/types"
	"stockdash/internal/ui/views"
)

// Model is the bubbletea model. Every Update is one tick of the graph: the
// overlay transitions of the previous tick are published first, then the
// message is fed in and the commands the graph emitted are run.
type Model struct {
	config *config.Config
	graph  *coordinator.Graph
	source market.Source

	width  int
	height int
	help   help.Model
	spin   spinner.Model

	renderer *views.Renderer
	helpText *HelpRenderer
	zones    *views.Zones
	frame    views.Frame // last frame handed to the terminal
	areas    input.Areas // last areas sent to the graph

	now func() time.Time
}

// NewModel creates the model over src. Zones must be the tracker the
// renderer marks targets in.
func NewModel(cfg *config.Config, src market.Source, zones *views.Zones) *Model {
	ind, hasInd, err := cfg.ParsedIndicator()
	if err != nil {
		// Validate has already run on cfg
		log.Printf("UI: ignoring indicator %q: %v", cfg.Indicator, err)
		hasInd = false
	}

	graph := coordinator.Build(coordinator.Options{
		Symbol:       cfg.Symbol,
		TimeFrame:    cfg.TimeFrame,
		Indicator:    ind,
		HasIndicator: hasInd,
		RefreshTicks: cfg.RefreshTicks,
		Keys:         types.DefaultKeyMap(),
	})

	return &Model{
		config:   cfg,
		graph:    graph,
		source:   src,
		help:     help.New(),
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205")))),
		renderer: views.NewRenderer(zones),
		helpText: NewHelpRenderer(),
		zones:    zones,
		now:      time.Now,
	}
}

// Init starts the tick loop, the spinner and the first fetch
func (m *Model) Init() tea.Cmd {
	first := domain.FetchRequestedEvent{Query: m.graph.Query()}
	log.Printf("UI: loading %s", first.Query.Key())
	return tea.Batch(m.tick(), m.spin.Tick, m.fetch(first))
}

// Update handles messages and runs the commands the graph emits
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	events := m.graph.BeginTick(m.now())
	if areas := m.zones.Areas(m.frame); areas != m.areas {
		m.areas = areas
		m.graph.SetAreas(areas)
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		events = append(events, m.graph.Feed(input.Tick())...)
		cmds = append(cmds, m.tick())

	case tea.KeyMsg:
		events = append(events, m.graph.Feed(input.Key(msg))...)

	case tea.MouseMsg:
		events = append(events, m.graph.Feed(input.Mouse(msg))...)

	case fetchResultMsg:
		if msg.result.Err != nil {
			log.Printf("UI: fetch %s failed: %v", msg.result.Query.Key(), msg.result.Err)
		}
		events = append(events, m.graph.Deliver(msg.result)...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("UI: %s pager failed: %v", msg.what, msg.err)
		}
	}

	cmds = append(cmds, m.commands(events)...)
	return m, tea.Batch(cmds...)
}

// commands turns the graph's outgoing events into bubbletea commands
func (m *Model) commands(events []domain.DomainEvent) []tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range events {
		switch e := ev.(type) {
		case domain.FetchRequestedEvent:
			cmds = append(cmds, m.fetch(e))
		case domain.QuitRequestedEvent:
			log.Printf("UI: quit requested")
			cmds = append(cmds, tea.Quit)
		case domain.BellEvent:
			cmds = append(cmds, bell(e.Reason))
		case domain.ProfileShownEvent:
			content := m.helpText.Profile(m.graph.Snapshot().Stock, m.width)
			cmds = append(cmds, showInPager("profile", content))
		case domain.HelpShownEvent:
			cmds = append(cmds, showInPager("help", m.helpText.Help(m.graph.Handler().Keys())))
		default:
			log.Printf("UI: unhandled event %s", ev.Type())
		}
	}
	return cmds
}

// View renders the dashboard and remembers where its targets were drawn
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.graph.Snapshot()
	frame := m.renderer.Render(views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Snapshot:   snap,
		TimeFrames: m.graph.TimeFrameMenu(),
		Indicators: m.graph.IndicatorMenu(),
		Spinner:    m.spin.View(),
		Help:       m.footerHelp(snap.Focus),
	})
	m.frame = frame
	return m.zones.Scan(frame.Content)
}

func (m *Model) footerHelp(focus domain.Focus) string {
	if !focus.Set {
		return m.help.ShortHelpView(m.graph.Handler().Keys().ShortHelp())
	}
	return fmt.Sprintf("%s · enter accept · esc cancel", m.graph.Handler().Mode(focus))
}

// fetch loads req from the source off the loop
func (m *Model) fetch(req domain.FetchRequestedEvent) tea.Cmd {
	src, now, timeout := m.source, m.now(), m.config.FetchTimeout.Duration
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fetchResultMsg{result: market.Load(ctx, src, req, now)}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.config.TickRate.Duration, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func bell(reason string) tea.Cmd {
	return func() tea.Msg {
		log.Printf("UI: bell (%s)", reason)
		fmt.Fprint(os.Stderr, "\a")
		return nil
	}
}
