// Package chat provides the question/answer view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/components/input"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/components/status"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/keymap"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/messages"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/styles"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
)

// TurnState is the lifecycle state of the current chat turn.
type TurnState int

const (
	// TurnIdle means no question is in flight and no answer is shown,
	// or only a validation message is shown.
	TurnIdle TurnState = iota
	// TurnSubmitting means a question is in flight.
	TurnSubmitting
	// TurnAnswered means the latest question resolved with an answer.
	TurnAnswered
	// TurnFailed means the latest question resolved with an error.
	TurnFailed
)

// String returns the string representation of the turn state.
func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnSubmitting:
		return "submitting"
	case TurnAnswered:
		return "answered"
	case TurnFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// View represents the chat view with question input, answer display,
// evidence list, and feedback keys.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	question  *input.Field
	topK      *input.Field
	statusbar *status.Bar

	chatService     driving.ChatService
	feedbackService driving.FeedbackService
	ctx             context.Context

	state       TurnState
	seq         int // sequence of the latest submit; stale completions are discarded
	asked       string
	response    *domain.ChatResponse
	errMsg      string
	defaultTopK int

	// filter[tag] is whether retrieval is restricted to that tag.
	// All false means no restriction.
	filter map[domain.SourceTag]bool

	focusIndex int // 0 = question, 1 = top-k
	width      int
	height     int
	ready      bool
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	feedbackService driving.FeedbackService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	question := input.NewField(s, "Question", "Ask anything about your knowledge base...")
	topK := input.NewField(s, "Top K", strconv.Itoa(domain.DefaultTopK))

	return &View{
		styles:          s,
		keymap:          km,
		question:        question,
		topK:            topK,
		statusbar:       status.NewBar(s, km),
		chatService:     chatService,
		feedbackService: feedbackService,
		ctx:             context.Background(),
		state:           TurnIdle,
		defaultTopK:     domain.DefaultTopK,
		filter:          make(map[domain.SourceTag]bool),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDefaultTopK applies the configured top-k default. It becomes the
// fallback when the field is empty or non-numeric. Out-of-range values
// keep the built-in default.
func (v *View) SetDefaultTopK(k int) {
	if k < domain.MinTopK || k > domain.MaxTopK {
		return
	}
	v.defaultTopK = k
	v.topK = input.NewField(v.styles, "Top K", strconv.Itoa(k))
	v.topK.SetWidth(v.width)
}

// DefaultTopK returns the top-k value used when the field is empty.
func (v *View) DefaultTopK() int {
	return v.defaultTopK
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.question.Focus()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatCompleted:
		v.handleChatCompleted(msg)
		return v, nil

	case messages.FeedbackSubmitted:
		v.handleFeedbackSubmitted(msg)
		return v, nil
	}

	return v.forwardToFields(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Inputs are locked while a question is in flight.
	if v.state == TurnSubmitting {
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		return v.submit()
	}

	if msg.Type == tea.KeyTab {
		v.cycleFocus()
		return v, nil
	}

	// Feedback and filter toggles only when no field is capturing text.
	// The question field owns printable keys while focused, so source
	// toggles and feedback ratings use keys checked before forwarding.
	switch msg.String() {
	case "ctrl+u":
		v.toggleFilter(domain.SourceUser)
		return v, nil
	case "ctrl+w":
		v.toggleFilter(domain.SourceWikipedia)
		return v, nil
	case "+":
		if v.state == TurnAnswered && !v.question.Focused() {
			return v, v.sendFeedback(domain.RatingPositive)
		}
	case "-":
		if v.state == TurnAnswered && !v.question.Focused() {
			return v, v.sendFeedback(domain.RatingNegative)
		}
	case "n":
		if v.state == TurnAnswered && !v.question.Focused() {
			v.focusQuestion()
			return v, nil
		}
	}

	return v.forwardToFields(msg)
}

// submit starts a new chat turn. Prior answer, evidence, and error are
// cleared immediately so nothing stale is shown while the call resolves.
func (v *View) submit() (*View, tea.Cmd) {
	question := strings.TrimSpace(v.question.Value())
	if question == "" {
		v.state = TurnIdle
		v.errMsg = "Please enter a question"
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.errMsg)
		return v, nil
	}

	v.seq++
	seq := v.seq
	v.state = TurnSubmitting
	v.asked = question
	v.response = nil
	v.errMsg = ""
	v.question.Blur()
	v.topK.Blur()
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Thinking...")

	req := domain.ChatRequest{
		Question:     question,
		TopK:         v.parseTopK(),
		SourceFilter: v.selectedSources(),
	}

	return v, v.performAsk(seq, req)
}

// performAsk executes the chat call off the update loop.
func (v *View) performAsk(seq int, req domain.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.ChatCompleted{Seq: seq, Question: req.Question, Err: ErrNoChatService}
		}

		resp, err := v.chatService.Ask(v.ctx, req)
		return messages.ChatCompleted{Seq: seq, Question: req.Question, Response: resp, Err: err}
	}
}

// handleChatCompleted resolves the in-flight turn. Completions tagged
// with an older sequence belong to an abandoned submit and are dropped.
func (v *View) handleChatCompleted(msg messages.ChatCompleted) {
	if msg.Seq != v.seq {
		return
	}

	if msg.Err != nil {
		v.state = TurnFailed
		v.response = nil
		v.errMsg = msg.Err.Error()
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.errMsg)
		v.focusQuestion()
		return
	}

	v.state = TurnAnswered
	v.asked = msg.Question
	v.response = msg.Response
	v.errMsg = ""
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetMessage("Rate this answer with + or -")
}

// sendFeedback emits a rating for the answered turn. The record copies
// the turn's question and answer text at emission time, so later turns
// cannot retroactively change what was rated.
func (v *View) sendFeedback(rating domain.Rating) tea.Cmd {
	rec := domain.FeedbackRecord{
		Question: v.asked,
		Answer:   v.response.Answer,
		Rating:   rating,
	}

	return func() tea.Msg {
		if v.feedbackService == nil {
			return messages.FeedbackSubmitted{Rating: rating, Err: ErrNoFeedbackService}
		}

		err := v.feedbackService.Submit(v.ctx, rec)
		return messages.FeedbackSubmitted{Rating: rating, Err: err}
	}
}

// handleFeedbackSubmitted reports the feedback outcome without touching
// the turn state: the answer stays on screen either way.
func (v *View) handleFeedbackSubmitted(msg messages.FeedbackSubmitted) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("Feedback failed: " + msg.Err.Error())
		return
	}

	v.statusbar.SetState(status.StateSuccess)
	v.statusbar.SetMessage("Thanks for your feedback!")
}

// parseTopK reads the top-k field. Non-numeric input falls back to the
// default; range clamping happens in request normalization.
func (v *View) parseTopK() int {
	raw := strings.TrimSpace(v.topK.Value())
	if raw == "" {
		return v.defaultTopK
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return v.defaultTopK
	}
	return n
}

// selectedSources returns the active source filter, nil when unrestricted.
func (v *View) selectedSources() []domain.SourceTag {
	var tags []domain.SourceTag
	for _, tag := range domain.AllSourceTags() {
		if v.filter[tag] {
			tags = append(tags, tag)
		}
	}
	return tags
}

// toggleFilter flips one source tag. This is a local mutation only; it
// takes effect on the next submit.
func (v *View) toggleFilter(tag domain.SourceTag) {
	v.filter[tag] = !v.filter[tag]
}

// cycleFocus moves focus between the question and top-k fields.
func (v *View) cycleFocus() {
	v.focusIndex = (v.focusIndex + 1) % 2
	if v.focusIndex == 0 {
		v.question.Focus()
		v.topK.Blur()
	} else {
		v.question.Blur()
		v.topK.Focus()
	}
}

// focusQuestion returns focus to the question field for the next turn.
func (v *View) focusQuestion() {
	v.focusIndex = 0
	v.question.Focus()
	v.topK.Blur()
}

// forwardToFields routes messages to whichever field is focused.
func (v *View) forwardToFields(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.topK.Focused() {
		v.topK, cmd = v.topK.Update(msg)
	} else {
		v.question, cmd = v.question.Update(msg)
	}
	return v, cmd
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	header := v.styles.Title.Render("Ask a Question")
	sections = append(sections, header, "")

	sections = append(sections, v.question.View())
	sections = append(sections, v.topK.View())
	sections = append(sections, v.renderFilter(), "")

	switch v.state {
	case TurnSubmitting:
		sections = append(sections, v.styles.Muted.Render("Thinking..."), "")
	case TurnFailed:
		sections = append(sections, v.styles.Error.Render("Error: "+v.errMsg), "")
	case TurnAnswered:
		sections = append(sections, v.renderAnswer(), "")
	case TurnIdle:
		if v.errMsg != "" {
			sections = append(sections, v.styles.Error.Render(v.errMsg), "")
		}
	}

	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilter shows the source toggle line.
func (v *View) renderFilter() string {
	parts := make([]string, 0, len(domain.AllSourceTags()))
	for _, tag := range domain.AllSourceTags() {
		mark := "[ ]"
		if v.filter[tag] {
			mark = "[x]"
		}
		parts = append(parts, fmt.Sprintf("%s %s", mark, tag.Description()))
	}
	line := "Sources: " + strings.Join(parts, "  ") + "  (ctrl+u/ctrl+w toggle, none = all)"
	return v.styles.Muted.Render(line)
}

// renderAnswer shows the answer text and its evidence chunks in rank order.
func (v *View) renderAnswer() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Answer"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(v.response.Answer))
	b.WriteString("\n")

	if len(v.response.Context) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Sources"))
		b.WriteString("\n")
		for i, chunk := range v.response.Context {
			b.WriteString(v.renderChunk(i+1, chunk))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderChunk formats one evidence chunk line plus a text excerpt.
func (v *View) renderChunk(rank int, chunk domain.EvidenceChunk) string {
	head := fmt.Sprintf("%d. [%s] %s", rank, chunk.Source.Description(), chunk.Title)
	if chunk.Score != nil {
		head += fmt.Sprintf(" (%.3f)", *chunk.Score)
	}

	lines := []string{v.styles.Normal.Render(head)}
	if chunk.URL != "" {
		lines = append(lines, v.styles.Muted.Render("   "+chunk.URL))
	}

	// Truncate on a rune boundary so multi-byte text is never split.
	excerpt := chunk.Text
	if runes := []rune(excerpt); len(runes) > 200 {
		excerpt = string(runes[:200]) + "..."
	}
	lines = append(lines, v.styles.Muted.Render("   "+excerpt))

	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.question.SetWidth(width)
	v.topK.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// State returns the current turn state.
func (v *View) State() TurnState {
	return v.state
}

// Seq returns the sequence number of the latest submit.
func (v *View) Seq() int {
	return v.seq
}

// Question returns the question text of the latest submit.
func (v *View) Question() string {
	return v.asked
}

// Response returns the current answer, nil unless the turn is answered.
func (v *View) Response() *domain.ChatResponse {
	return v.response
}

// ErrMessage returns the current error message, empty when none.
func (v *View) ErrMessage() string {
	return v.errMsg
}

// FilterEnabled reports whether a source tag is toggled on.
func (v *View) FilterEnabled(tag domain.SourceTag) bool {
	return v.filter[tag]
}

// SetQuestion sets the question field text.
func (v *View) SetQuestion(q string) {
	v.question.SetValue(q)
}

// Reset returns the view to an idle turn with cleared fields.
func (v *View) Reset() {
	v.state = TurnIdle
	v.response = nil
	v.asked = ""
	v.errMsg = ""
	v.question.Reset()
	v.topK.Reset()
	v.focusQuestion()
	v.statusbar.Clear()
}
