// Package stats provides the usage statistics view for the TUI.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/components/status"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/keymap"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/messages"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/styles"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
)

// LoadState is the lifecycle state of the stats snapshot.
type LoadState int

const (
	// StateLoading means a fetch is in flight.
	StateLoading LoadState = iota
	// StateLoaded means the latest fetch succeeded.
	StateLoaded
	// StateFailed means the latest fetch failed; retry is offered.
	StateFailed
)

// View represents the statistics dashboard view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	statsService driving.StatsService
	ctx          context.Context

	state  LoadState
	stats  *domain.Stats
	errMsg string

	width  int
	height int
	ready  bool
}

// NewView creates a new stats view.
func NewView(s *styles.Styles, km *keymap.KeyMap, statsService driving.StatsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		statusbar:    status.NewBar(s, km),
		statsService: statsService,
		ctx:          context.Background(),
		state:        StateLoading,
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and starts the first fetch.
func (v *View) Init() tea.Cmd {
	return v.fetch()
}

// fetch returns a command that loads the stats snapshot.
func (v *View) fetch() tea.Cmd {
	return func() tea.Msg {
		if v.statsService == nil {
			return messages.StatsLoaded{Err: domain.ErrBackendUnavailable}
		}

		s, err := v.statsService.Fetch(v.ctx)
		return messages.StatsLoaded{Stats: s, Err: err}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		if msg.String() == "r" && v.state != StateLoading {
			v.state = StateLoading
			v.errMsg = ""
			v.statusbar.SetState(status.StateWorking)
			v.statusbar.SetMessage("Loading statistics...")
			return v, v.fetch()
		}
		return v, nil

	case messages.StatsLoaded:
		v.handleStatsLoaded(msg)
		return v, nil
	}

	return v, nil
}

// handleStatsLoaded resolves a fetch.
func (v *View) handleStatsLoaded(msg messages.StatsLoaded) {
	if msg.Err != nil {
		v.state = StateFailed
		v.errMsg = msg.Err.Error()
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.errMsg)
		return
	}

	v.state = StateLoaded
	v.stats = msg.Stats
	v.errMsg = ""
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("Press r to refresh")
}

// View renders the stats view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Statistics")
	sections = append(sections, header, "")

	switch v.state {
	case StateLoading:
		sections = append(sections, v.styles.Muted.Render("Loading statistics..."))
	case StateFailed:
		sections = append(sections, v.styles.Error.Render("Error: "+v.errMsg))
		sections = append(sections, v.styles.Muted.Render("Press r to retry"))
	case StateLoaded:
		sections = append(sections, v.renderCounters())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCounters shows the four counters and the positive share.
func (v *View) renderCounters() string {
	s := v.stats

	lines := []string{
		v.counter("Questions asked", s.TotalQuestions),
		v.counter("Feedback received", s.TotalFeedback),
		v.counter("Helpful answers", s.PositiveFeedback),
		v.counter("Unhelpful answers", s.NegativeFeedback),
		"",
		v.styles.Subtitle.Render("Positive feedback: ") +
			v.styles.Normal.Render(s.PositivePercentString()+"%"),
	}

	return strings.Join(lines, "\n")
}

// counter formats one label/value line.
func (v *View) counter(label string, value int) string {
	return v.styles.Normal.Render(fmt.Sprintf("%-20s %d", label+":", value))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// State returns the current load state.
func (v *View) State() LoadState {
	return v.state
}

// Stats returns the loaded snapshot, nil before the first success.
func (v *View) Stats() *domain.Stats {
	return v.stats
}

// ErrMessage returns the current error message, empty when none.
func (v *View) ErrMessage() string {
	return v.errMsg
}
