package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driven"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService drives the three upload flows that populate the corpus.
// Validation is local and synchronous; a rejected input never produces
// a network call.
type IngestService struct {
	backend driven.BackendClient
}

// NewIngestService creates a new ingest service.
func NewIngestService(backend driven.BackendClient) *IngestService {
	return &IngestService{backend: backend}
}

// UploadText stores a free-text document under the given title.
func (s *IngestService) UploadText(ctx context.Context, title, text string, source domain.SourceTag) error {
	if s.backend == nil {
		return domain.ErrBackendUnavailable
	}

	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(text) == "" {
		return domain.NewValidationError("Please fill in both title and text")
	}
	if source == "" {
		source = domain.SourceUser
	}
	if !source.IsValid() {
		return domain.NewValidationError("Unknown source tag: " + string(source))
	}

	logger.Debug("Uploading text %q (source %s, %d bytes)", title, source, len(text))
	return s.backend.UploadText(ctx, title, text, source)
}

// UploadPDF stores a PDF document read from r.
func (s *IngestService) UploadPDF(ctx context.Context, title, filename string, r io.Reader) error {
	if s.backend == nil {
		return domain.ErrBackendUnavailable
	}

	title = strings.TrimSpace(title)
	if title == "" || filename == "" || r == nil {
		return domain.NewValidationError("Please provide a title and select a PDF file")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return domain.NewValidationError("Selected file must be a PDF")
	}

	logger.Debug("Uploading PDF %q (file %s)", title, filename)
	return s.backend.UploadPDF(ctx, title, filename, r)
}

// ImportWiki imports a Wikipedia article matching query.
func (s *IngestService) ImportWiki(ctx context.Context, query string) (string, error) {
	if s.backend == nil {
		return "", domain.ErrBackendUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", domain.NewValidationError("Please enter a Wikipedia query")
	}

	logger.Debug("Importing Wikipedia article for %q", query)
	return s.backend.ImportWiki(ctx, query)
}
