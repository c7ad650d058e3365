package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CloudStore abstracts the remote document database. Documents are
// addressed by path (users/{userId}/data/{recordType}); every write
// replaces the document wholly. Implementations must be safe for
// concurrent use.
type CloudStore interface {
	// GetDocument fetches one document. Returns an error wrapping
	// ErrNotFound when the document does not exist.
	GetDocument(ctx context.Context, path string) (Document, error)

	// SetDocument writes one whole document, creating it if absent.
	SetDocument(ctx context.Context, path string, doc Document) error

	// DeleteDocument removes one document. Deleting a missing document
	// is not an error.
	DeleteDocument(ctx context.Context, path string) error

	// CommitBatch writes all documents atomically: either every write in
	// the batch is applied, or none are.
	CommitBatch(ctx context.Context, writes []DocumentWrite) error
}

// HTTPClient implements CloudStore using net/http.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	deviceID   string
	httpClient *http.Client
	log        *DebugLogger
}

// NewHTTPClient creates a cloud document client.
// deviceID is optional; if non-empty, it's sent as X-HawkFuel-Device-ID
// header for observability.
func NewHTTPClient(cloudURL, apiKey, deviceID string) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimSuffix(cloudURL, "/"),
		apiKey:   apiKey,
		deviceID: deviceID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithHTTPClient sets a custom http.Client (for testing or custom timeouts).
func (c *HTTPClient) WithHTTPClient(client *http.Client) *HTTPClient {
	c.httpClient = client
	return c
}

// WithLogger sets the debug logger for request/response tracing.
func (c *HTTPClient) WithLogger(l *DebugLogger) *HTTPClient {
	c.log = l
	return c
}

// do sends the request with auth headers and logs the exchange.
func (c *HTTPClient) do(req *http.Request, body []byte) (*http.Response, error) {
	c.setHeaders(req)
	c.log.LogRequest(req.Method, req.URL.String(), body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	c.log.LogResponse(resp.StatusCode, resp.Status)
	return resp, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "hawkfuel-client/1.0")
	if strings.TrimSpace(c.deviceID) != "" {
		req.Header.Set("X-HawkFuel-Device-ID", c.deviceID)
	}
}

// encodeDocPath URL-encodes a document path for use in the request URL,
// preserving the path separators.
func encodeDocPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func (c *HTTPClient) docURL(path string) string {
	return c.baseURL + "/api/v1/documents/" + encodeDocPath(path)
}

func newSyncError(op string, statusCode int, body []byte) *SyncError {
	msg := ""
	if len(body) > 0 && statusCode >= 400 {
		if len(body) > 200 {
			msg = string(body[:200]) + "..."
		} else {
			msg = string(body)
		}
	}
	return &SyncError{
		Operation:  op,
		StatusCode: statusCode,
		Err:        fmt.Errorf("HTTP %d: %s", statusCode, msg),
	}
}

func (c *HTTPClient) GetDocument(ctx context.Context, path string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docURL(path), nil)
	if err != nil {
		return nil, &SyncError{Operation: "get_document", Err: err}
	}

	resp, err := c.do(req, nil)
	if err != nil {
		return nil, &SyncError{Operation: "get_document", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &SyncError{
			Operation:  "get_document",
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("%w: %s", ErrNotFound, path),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newSyncError("get_document", resp.StatusCode, body)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &SyncError{Operation: "get_document", Err: err}
	}
	return doc, nil
}

func (c *HTTPClient) SetDocument(ctx context.Context, path string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &SyncError{Operation: "set_document", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.docURL(path), bytes.NewReader(body))
	if err != nil {
		return &SyncError{Operation: "set_document", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, body)
	if err != nil {
		return &SyncError{Operation: "set_document", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return newSyncError("set_document", resp.StatusCode, respBody)
	}
	return nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.docURL(path), nil)
	if err != nil {
		return &SyncError{Operation: "delete_document", Err: err}
	}

	resp, err := c.do(req, nil)
	if err != nil {
		return &SyncError{Operation: "delete_document", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// 404 is success: the document is already gone
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		respBody, _ := io.ReadAll(resp.Body)
		return newSyncError("delete_document", resp.StatusCode, respBody)
	}
	return nil
}

func (c *HTTPClient) CommitBatch(ctx context.Context, writes []DocumentWrite) error {
	body, err := json.Marshal(BatchCommitRequest{Writes: writes})
	if err != nil {
		return &SyncError{Operation: "batch_commit", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/batch", bytes.NewReader(body))
	if err != nil {
		return &SyncError{Operation: "batch_commit", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, body)
	if err != nil {
		return &SyncError{Operation: "batch_commit", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return newSyncError("batch_commit", resp.StatusCode, respBody)
	}

	var result BatchCommitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &SyncError{Operation: "batch_commit", Err: err}
	}
	return nil
}
