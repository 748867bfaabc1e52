// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the question/answer view.
	ViewChat
	// ViewUpload holds the three ingestion forms.
	ViewUpload
	// ViewStats is the usage dashboard.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewUpload:
		return "upload"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Quit signals the application should exit.
type Quit struct{}

// ChatCompleted carries one chat turn's outcome back to the chat view.
// Seq pairs the completion with the submit that started it: a completion
// whose Seq is not the latest submit is stale and must be discarded.
type ChatCompleted struct {
	Seq      int
	Question string
	Response *domain.ChatResponse
	Err      error
}

// FeedbackSubmitted reports the outcome of one feedback emission.
// It never transitions the chat turn that produced the record.
type FeedbackSubmitted struct {
	Rating domain.Rating
	Err    error
}

// UploadForm identifies one of the three independent ingestion forms.
type UploadForm int

const (
	// FormText is the free-text upload form.
	FormText UploadForm = iota
	// FormPDF is the PDF upload form.
	FormPDF
	// FormWiki is the Wikipedia import form.
	FormWiki
)

// String returns the string representation of the form.
func (f UploadForm) String() string {
	switch f {
	case FormText:
		return "text"
	case FormPDF:
		return "pdf"
	case FormWiki:
		return "wiki"
	default:
		return "unknown"
	}
}

// UploadFinished carries one ingestion flow's terminal outcome.
// Title is the imported article title for the wiki form, empty otherwise.
type UploadFinished struct {
	Form  UploadForm
	Title string
	Err   error
}

// StatsLoaded carries the stats snapshot from the service.
type StatsLoaded struct {
	Stats *domain.Stats
	Err   error
}
