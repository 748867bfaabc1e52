package driving

import (
	"context"
	"io"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// IngestService drives the three upload flows that populate the corpus.
// Each method validates its inputs locally and synchronously; a rejected
// input surfaces as a *domain.ValidationError before any network call.
type IngestService interface {
	// UploadText stores a free-text document. Title and text must be
	// non-empty after trimming; an empty source defaults to SourceUser.
	UploadText(ctx context.Context, title, text string, source domain.SourceTag) error

	// UploadPDF stores a PDF document. Title must be non-empty after
	// trimming and filename must name a .pdf file.
	UploadPDF(ctx context.Context, title, filename string, r io.Reader) error

	// ImportWiki imports a Wikipedia article. Query must be non-empty
	// after trimming. Returns the imported article's title.
	ImportWiki(ctx context.Context, query string) (string, error)
}
