// Package upload provides the knowledge ingestion view for the TUI.
// It hosts three independent forms: free text, PDF file, and Wikipedia
// import. Each form submits, succeeds, and fails on its own.
package upload

import (
	"context"
	"fmt"
	"os"
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

// FormState is the lifecycle state of one ingestion form.
type FormState int

const (
	// FormIdle means the form accepts input.
	FormIdle FormState = iota
	// FormSubmitting means the form's flow is in flight and its inputs
	// are locked.
	FormSubmitting
)

// fieldRef addresses one input field by its owning form and position.
type fieldRef struct {
	form  messages.UploadForm
	index int
}

// View represents the upload view with its three forms.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	ingestService driving.IngestService
	ctx           context.Context

	textTitle *input.Field
	textBody  *input.Field
	pdfTitle  *input.Field
	pdfPath   *input.Field
	wikiQuery *input.Field

	// formStates tracks each form independently. A submit locks only
	// the form that issued it.
	formStates map[messages.UploadForm]FormState

	// message is the single user-visible outcome line. Every terminal
	// transition replaces it, matching the one-slot message area of the
	// original interface.
	message   string
	messageOK bool

	order      []fieldRef
	focusIndex int

	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, ingestService driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		statusbar:     status.NewBar(s, km),
		ingestService: ingestService,
		ctx:           context.Background(),
		textTitle:     input.NewField(s, "Title", "Document title"),
		textBody:      input.NewField(s, "Text", "Paste or type the content"),
		pdfTitle:      input.NewField(s, "Title", "Document title"),
		pdfPath:       input.NewField(s, "File", "Path to a .pdf file"),
		wikiQuery:     input.NewField(s, "Query", "Wikipedia article to import"),
		formStates: map[messages.UploadForm]FormState{
			messages.FormText: FormIdle,
			messages.FormPDF:  FormIdle,
			messages.FormWiki: FormIdle,
		},
		order: []fieldRef{
			{messages.FormText, 0},
			{messages.FormText, 1},
			{messages.FormPDF, 0},
			{messages.FormPDF, 1},
			{messages.FormWiki, 0},
		},
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.textTitle.Focus()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.UploadFinished:
		v.handleUploadFinished(msg)
		return v, nil
	}

	return v.forwardToFocused(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyTab {
		v.cycleFocus(1)
		return v, nil
	}
	if msg.Type == tea.KeyShiftTab {
		v.cycleFocus(-1)
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		form := v.focusedForm()
		if v.formStates[form] == FormSubmitting {
			return v, nil
		}
		return v.submit(form)
	}

	// Locked forms swallow their input.
	if v.formStates[v.focusedForm()] == FormSubmitting {
		return v, nil
	}

	return v.forwardToFocused(msg)
}

// submit starts the flow owned by the focused form. Empty required
// fields are rejected synchronously without locking the form; the
// ingest service validates everything else before any network call.
func (v *View) submit(form messages.UploadForm) (*View, tea.Cmd) {
	if err := v.precheck(form); err != nil {
		v.message = err.Error()
		v.messageOK = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.message)
		return v, nil
	}

	v.formStates[form] = FormSubmitting
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage(fmt.Sprintf("Submitting %s...", form))

	switch form {
	case messages.FormText:
		title, body := v.textTitle.Value(), v.textBody.Value()
		return v, func() tea.Msg {
			err := v.ingestService.UploadText(v.ctx, title, body, domain.SourceUser)
			return messages.UploadFinished{Form: messages.FormText, Err: err}
		}

	case messages.FormPDF:
		title, path := v.pdfTitle.Value(), strings.TrimSpace(v.pdfPath.Value())
		return v, func() tea.Msg {
			f, err := os.Open(path)
			if err != nil {
				return messages.UploadFinished{
					Form: messages.FormPDF,
					Err:  domain.NewValidationError("Cannot open file: " + err.Error()),
				}
			}
			defer f.Close()

			err = v.ingestService.UploadPDF(v.ctx, title, path, f)
			return messages.UploadFinished{Form: messages.FormPDF, Err: err}
		}

	case messages.FormWiki:
		query := v.wikiQuery.Value()
		return v, func() tea.Msg {
			title, err := v.ingestService.ImportWiki(v.ctx, query)
			return messages.UploadFinished{Form: messages.FormWiki, Title: title, Err: err}
		}
	}

	return v, nil
}

// precheck rejects empty required fields before the form enters the
// submitting state.
func (v *View) precheck(form messages.UploadForm) error {
	switch form {
	case messages.FormText:
		if strings.TrimSpace(v.textTitle.Value()) == "" || strings.TrimSpace(v.textBody.Value()) == "" {
			return domain.NewValidationError("Please fill in both title and text")
		}
	case messages.FormPDF:
		if strings.TrimSpace(v.pdfTitle.Value()) == "" || strings.TrimSpace(v.pdfPath.Value()) == "" {
			return domain.NewValidationError("Please provide a title and select a PDF file")
		}
	case messages.FormWiki:
		if strings.TrimSpace(v.wikiQuery.Value()) == "" {
			return domain.NewValidationError("Please enter a Wikipedia query")
		}
	}
	return nil
}

// handleUploadFinished resolves one form's flow. Success resets that
// form's fields only; failure keeps them for correction.
func (v *View) handleUploadFinished(msg messages.UploadFinished) {
	v.formStates[msg.Form] = FormIdle

	if msg.Err != nil {
		v.message = msg.Err.Error()
		v.messageOK = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.message)
		return
	}

	switch msg.Form {
	case messages.FormText:
		v.message = "Text uploaded successfully!"
		v.textTitle.Reset()
		v.textBody.Reset()
	case messages.FormPDF:
		v.message = "PDF uploaded and processed successfully!"
		v.pdfTitle.Reset()
		v.pdfPath.Reset()
	case messages.FormWiki:
		v.message = fmt.Sprintf("Wikipedia article %q imported successfully!", msg.Title)
		v.wikiQuery.Reset()
	}

	v.messageOK = true
	v.statusbar.SetState(status.StateSuccess)
	v.statusbar.SetMessage(v.message)
}

// focusedForm returns the form owning the focused field.
func (v *View) focusedForm() messages.UploadForm {
	return v.order[v.focusIndex].form
}

// cycleFocus moves focus through all fields across the three forms.
func (v *View) cycleFocus(dir int) {
	v.fieldAt(v.focusIndex).Blur()
	v.focusIndex = (v.focusIndex + dir + len(v.order)) % len(v.order)
	v.fieldAt(v.focusIndex).Focus()
}

// fieldAt resolves a focus index to its input field.
func (v *View) fieldAt(i int) *input.Field {
	switch v.order[i] {
	case fieldRef{messages.FormText, 0}:
		return v.textTitle
	case fieldRef{messages.FormText, 1}:
		return v.textBody
	case fieldRef{messages.FormPDF, 0}:
		return v.pdfTitle
	case fieldRef{messages.FormPDF, 1}:
		return v.pdfPath
	default:
		return v.wikiQuery
	}
}

// forwardToFocused routes messages to the focused field.
func (v *View) forwardToFocused(msg tea.Msg) (*View, tea.Cmd) {
	_, cmd := v.fieldAt(v.focusIndex).Update(msg)
	return v, cmd
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)

	header := v.styles.Title.Render("Add Knowledge")
	sections = append(sections, header, "")

	sections = append(sections, v.renderForm("Upload Text", messages.FormText,
		v.textTitle.View(), v.textBody.View()))
	sections = append(sections, v.renderForm("Upload PDF", messages.FormPDF,
		v.pdfTitle.View(), v.pdfPath.View()))
	sections = append(sections, v.renderForm("Import from Wikipedia", messages.FormWiki,
		v.wikiQuery.View()))

	if v.message != "" {
		style := v.styles.Error
		if v.messageOK {
			style = v.styles.Success
		}
		sections = append(sections, style.Render(v.message), "")
	}

	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderForm renders one form section with its state indicator.
func (v *View) renderForm(title string, form messages.UploadForm, fields ...string) string {
	head := v.styles.Subtitle.Render(title)
	if v.formStates[form] == FormSubmitting {
		head += v.styles.Muted.Render("  (submitting...)")
	}

	lines := append([]string{head}, fields...)
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	for i := range v.order {
		v.fieldAt(i).SetWidth(width)
	}
	v.statusbar.SetWidth(width)
}

// FormStateOf returns the state of one form.
func (v *View) FormStateOf(form messages.UploadForm) FormState {
	return v.formStates[form]
}

// Message returns the current outcome message.
func (v *View) Message() string {
	return v.message
}

// MessageOK reports whether the current message is a success message.
func (v *View) MessageOK() bool {
	return v.messageOK
}

// Field values, exposed for navigation and tests.

// TextTitle returns the text form's title value.
func (v *View) TextTitle() string { return v.textTitle.Value() }

// TextBody returns the text form's content value.
func (v *View) TextBody() string { return v.textBody.Value() }

// PDFTitle returns the pdf form's title value.
func (v *View) PDFTitle() string { return v.pdfTitle.Value() }

// PDFPath returns the pdf form's file path value.
func (v *View) PDFPath() string { return v.pdfPath.Value() }

// WikiQuery returns the wiki form's query value.
func (v *View) WikiQuery() string { return v.wikiQuery.Value() }

// SetTextForm sets the text form's fields.
func (v *View) SetTextForm(title, body string) {
	v.textTitle.SetValue(title)
	v.textBody.SetValue(body)
}

// SetPDFForm sets the pdf form's fields.
func (v *View) SetPDFForm(title, path string) {
	v.pdfTitle.SetValue(title)
	v.pdfPath.SetValue(path)
}

// SetWikiForm sets the wiki form's query field.
func (v *View) SetWikiForm(query string) {
	v.wikiQuery.SetValue(query)
}
