// Package backend provides the HTTP adapter for the StudyBuddy backend.
// It implements the driven.BackendClient port over the backend's JSON API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driven"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.BackendClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend base URL (default: http://localhost:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the StudyBuddy backend over HTTP+JSON.
// Failures are normalized to exactly two kinds: *domain.RequestError when
// the backend answered with a non-2xx status, *domain.TransportError when
// no usable response arrived at all.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// uploadTextRequest is the /api/upload-text request body.
type uploadTextRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// wikiImportRequest is the /api/import-wiki request body.
type wikiImportRequest struct {
	Query string `json:"query"`
}

// wikiImportResponse carries the imported article info.
type wikiImportResponse struct {
	Title string `json:"title"`
}

// chatRequest is the /api/chat request body. Sources is deliberately not
// omitempty: an absent filter is sent as an explicit null, matching what
// the backend expects for "search all sources".
type chatRequest struct {
	Question string   `json:"question"`
	TopK     int      `json:"top_k"`
	Sources  []string `json:"sources"`
}

// chunkMeta is the per-chunk metadata object.
type chunkMeta struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// retrievedChunk is one element of the chat response context array.
type retrievedChunk struct {
	ID     uuid.UUID `json:"id"`
	Text   string    `json:"text"`
	Source string    `json:"source"`
	Score  *float64  `json:"score,omitempty"`
	Meta   chunkMeta `json:"meta"`
}

// chatResponse is the /api/chat response body.
type chatResponse struct {
	Answer  string           `json:"answer"`
	Context []retrievedChunk `json:"context"`
}

// feedbackRequest is the /api/feedback request body. Comment is a pointer
// so an absent comment serializes as null rather than "".
type feedbackRequest struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment"`
}

// statsResponse is the /api/stats response body.
type statsResponse struct {
	TotalQuestions   int `json:"total_questions"`
	TotalFeedback    int `json:"total_feedback"`
	PositiveFeedback int `json:"positive_feedback"`
	NegativeFeedback int `json:"negative_feedback"`
}

// UploadText stores a free-text document under the given title.
func (c *Client) UploadText(ctx context.Context, title, text string, source domain.SourceTag) error {
	body := uploadTextRequest{Title: title, Text: text, Source: string(source)}

	resp, err := c.postJSON(ctx, "/api/upload-text", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return c.decodeError(resp)
	}
	return nil
}

// UploadPDF stores a PDF document as a multipart form upload.
func (c *Client) UploadPDF(ctx context.Context, title, filename string, r io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("title", title); err != nil {
		return fmt.Errorf("write title field: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-pdf", &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	logger.Debug("POST %s (multipart, file %s)", "/api/upload-pdf", filename)

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return c.decodeError(resp)
	}
	return nil
}

// ImportWiki fetches a Wikipedia article into the corpus and returns its title.
func (c *Client) ImportWiki(ctx context.Context, query string) (string, error) {
	resp, err := c.postJSON(ctx, "/api/import-wiki", wikiImportRequest{Query: query})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return "", c.decodeError(resp)
	}

	var info wikiImportResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", &domain.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return info.Title, nil
}

// Chat asks one question and returns the answer with its ranked evidence.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	body := chatRequest{
		Question: req.Question,
		TopK:     req.TopK,
	}
	// nil stays nil: no filter serializes as null.
	for _, tag := range req.SourceFilter {
		body.Sources = append(body.Sources, string(tag))
	}

	resp, err := c.postJSON(ctx, "/api/chat", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, c.decodeError(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	out := &domain.ChatResponse{Answer: parsed.Answer}
	// Order is the backend's rank order; keep it as-is.
	for _, ch := range parsed.Context {
		out.Context = append(out.Context, domain.EvidenceChunk{
			ID:     ch.ID.String(),
			Text:   ch.Text,
			Source: domain.SourceTag(ch.Source),
			Title:  ch.Meta.Title,
			URL:    ch.Meta.URL,
			Score:  ch.Score,
		})
	}
	return out, nil
}

// SubmitFeedback sends one relevance signal.
func (c *Client) SubmitFeedback(ctx context.Context, rec domain.FeedbackRecord) error {
	body := feedbackRequest{
		Question: rec.Question,
		Answer:   rec.Answer,
		Rating:   int(rec.Rating),
	}
	if rec.Comment != "" {
		body.Comment = &rec.Comment
	}

	resp, err := c.postJSON(ctx, "/api/feedback", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return c.decodeError(resp)
	}
	return nil
}

// Stats fetches the current corpus-wide counters.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stats", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	logger.Debug("GET /api/stats")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, c.decodeError(resp)
	}

	var parsed statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return &domain.Stats{
		TotalQuestions:   parsed.TotalQuestions,
		TotalFeedback:    parsed.TotalFeedback,
		PositiveFeedback: parsed.PositiveFeedback,
		NegativeFeedback: parsed.NegativeFeedback,
	}, nil
}

// Health probes backend reachability via the /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return c.decodeError(resp)
	}
	return nil
}

// postJSON marshals body and POSTs it to path. Transport-level failures
// come back as *domain.TransportError; the caller owns status handling
// and must close the response body.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("POST %s", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	return resp, nil
}

// success reports whether the status code is in the 2xx range.
// Any non-2xx status is a failure regardless of body shape.
func success(status int) bool {
	return status >= 200 && status < 300
}

// decodeError derives a user-facing message from an error response.
// Checked in order against the body: a bare JSON string is used verbatim,
// else the "detail" field, else the "error" field, else a generic message.
// Failures while reading or parsing the body are swallowed - they must
// never mask the original HTTP failure.
func (c *Client) decodeError(resp *http.Response) error {
	message := domain.GenericRequestMessage(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var parsed any
		if json.Unmarshal(body, &parsed) == nil {
			switch v := parsed.(type) {
			case string:
				message = v
			case map[string]any:
				if detail, ok := v["detail"].(string); ok {
					message = detail
				} else if errMsg, ok := v["error"].(string); ok {
					message = errMsg
				}
			}
		}
	}

	logger.Warn("Backend returned %d: %s", resp.StatusCode, message)
	return &domain.RequestError{Status: resp.StatusCode, Message: message}
}
