package driven

import (
	"context"
	"io"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// BackendClient is the outbound contract to the StudyBuddy backend.
// Arguments are assumed validated and normalized by the calling service.
// Every method returns either a parsed success payload or one of the two
// remote failure kinds: *domain.RequestError when the backend answered
// with a non-success status, *domain.TransportError when the call itself
// could not complete.
type BackendClient interface {
	// UploadText stores a free-text document under the given title.
	UploadText(ctx context.Context, title, text string, source domain.SourceTag) error

	// UploadPDF stores a PDF document. The file content is streamed from r
	// and sent as a multipart form under the given filename.
	UploadPDF(ctx context.Context, title, filename string, r io.Reader) error

	// ImportWiki fetches a Wikipedia article matching query into the corpus.
	// It returns the title of the imported article.
	ImportWiki(ctx context.Context, query string) (string, error)

	// Chat asks one question and returns the answer with its evidence.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)

	// SubmitFeedback sends one relevance signal. Each call is an
	// independent signal; the backend performs no deduplication.
	SubmitFeedback(ctx context.Context, rec domain.FeedbackRecord) error

	// Stats fetches the current corpus-wide counters.
	Stats(ctx context.Context) (*domain.Stats, error)

	// Health probes backend reachability without touching the corpus.
	Health(ctx context.Context) error
}
