package domain

import "strings"

// Top-k bounds accepted by the backend.
const (
	// MinTopK is the smallest number of evidence chunks a request may ask for.
	MinTopK = 1

	// MaxTopK is the largest number of evidence chunks a request may ask for.
	MaxTopK = 10

	// DefaultTopK is used when the caller gives no (or an unparsable) value.
	DefaultTopK = 3
)

// ChatRequest describes one question put to the knowledge base.
type ChatRequest struct {
	// Question is the natural-language question. Must be non-empty
	// after trimming.
	Question string

	// TopK is the maximum number of evidence chunks to retrieve.
	TopK int

	// SourceFilter restricts retrieval to the given source tags.
	// Nil or empty means "search all sources".
	SourceFilter []SourceTag
}

// Normalize returns a copy of the request with the question trimmed,
// TopK clamped to [MinTopK, MaxTopK] (DefaultTopK when unset), and an
// empty source filter collapsed to nil. An empty filter and an absent
// filter mean the same thing on the wire: no filter.
func (r ChatRequest) Normalize() ChatRequest {
	out := r
	out.Question = strings.TrimSpace(r.Question)

	switch {
	case out.TopK == 0:
		out.TopK = DefaultTopK
	case out.TopK < MinTopK:
		out.TopK = MinTopK
	case out.TopK > MaxTopK:
		out.TopK = MaxTopK
	}

	if len(out.SourceFilter) == 0 {
		out.SourceFilter = nil
	}
	return out
}

// EvidenceChunk is one retrieved passage backing an answer.
// Chunks are produced only by the backend and are immutable once received.
// Their order is the backend's rank order and must be preserved.
type EvidenceChunk struct {
	// ID is the backend-assigned chunk identifier.
	ID string

	// Text is the passage content.
	Text string

	// Source tags the document the passage came from.
	Source SourceTag

	// Title is the title of the originating document.
	Title string

	// URL is the origin address for imported documents, empty otherwise.
	URL string

	// Score is the relevance score, nil when the backend omitted it.
	Score *float64
}

// ChatResponse is the answer to exactly one ChatRequest, paired by call.
type ChatResponse struct {
	// Answer is the generated answer text.
	Answer string

	// Context holds the evidence chunks in rank order.
	Context []EvidenceChunk
}
