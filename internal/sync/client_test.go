package sync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewHTTPClient(srv.URL, "test-key", "device-1")
	return client, srv
}

func TestHTTPClientGetDocument(t *testing.T) {
	var gotPath, gotAuth, gotDevice string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDevice = r.Header.Get("X-HawkFuel-Device-ID")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"current":   5,
			"updatedAt": "2025-02-23T00:00:00Z",
		})
	})
	defer srv.Close()

	doc, err := client.GetDocument(context.Background(), "users/u1/data/streakData")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/v1/documents/users/u1/data/streakData" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotDevice != "device-1" {
		t.Errorf("device header = %q", gotDevice)
	}
	if doc["current"] != float64(5) {
		t.Errorf("doc current = %v, want 5", doc["current"])
	}
}

func TestHTTPClientGetDocumentNotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such document", http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.GetDocument(context.Background(), "users/u1/data/profile")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("error type = %T, want *SyncError", err)
	}
	if syncErr.Operation != "get_document" {
		t.Errorf("operation = %q", syncErr.Operation)
	}
	if syncErr.StatusCode != http.StatusNotFound {
		t.Errorf("status code = %d", syncErr.StatusCode)
	}
}

func TestHTTPClientGetDocumentServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.GetDocument(context.Background(), "users/u1/data/profile")
	if errors.Is(err, ErrNotFound) {
		t.Fatal("server error must not look like not-found")
	}
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("error type = %T, want *SyncError", err)
	}
	if syncErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status code = %d", syncErr.StatusCode)
	}
}

func TestHTTPClientSetDocument(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody Document
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	doc := Document{"items": []any{}, "updatedAt": "2025-02-23T00:00:00Z"}
	if err := client.SetDocument(context.Background(), "users/u1/data/favorites", doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotBody["updatedAt"] != "2025-02-23T00:00:00Z" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestHTTPClientDeleteDocumentMissingIsSuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such document", http.StatusNotFound)
	})
	defer srv.Close()

	if err := client.DeleteDocument(context.Background(), "users/u1/data/profile"); err != nil {
		t.Fatalf("deleting a missing document must succeed, got %v", err)
	}
}

func TestHTTPClientDeleteDocumentServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	err := client.DeleteDocument(context.Background(), "users/u1/data/profile")
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("error = %v, want *SyncError", err)
	}
	if syncErr.Operation != "delete_document" {
		t.Errorf("operation = %q", syncErr.Operation)
	}
}

func TestHTTPClientCommitBatch(t *testing.T) {
	var gotPath string
	var gotReq BatchCommitRequest
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(BatchCommitResponse{Committed: len(gotReq.Writes)})
	})
	defer srv.Close()

	writes := []DocumentWrite{
		{Path: "users/u1/data/profile", Data: Document{"onboardingComplete": true}},
		{Path: "users/u1/data/streakData", Data: Document{"current": 3}},
	}
	if err := client.CommitBatch(context.Background(), writes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/v1/batch" {
		t.Errorf("request path = %q", gotPath)
	}
	if len(gotReq.Writes) != 2 {
		t.Fatalf("writes in request = %d, want 2", len(gotReq.Writes))
	}
	if gotReq.Writes[0].Path != "users/u1/data/profile" {
		t.Errorf("first write path = %q", gotReq.Writes[0].Path)
	}
}

func TestHTTPClientCommitBatchFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conflict", http.StatusConflict)
	})
	defer srv.Close()

	err := client.CommitBatch(context.Background(), []DocumentWrite{
		{Path: "users/u1/data/profile", Data: Document{}},
	})
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("error = %v, want *SyncError", err)
	}
	if syncErr.Operation != "batch_commit" {
		t.Errorf("operation = %q", syncErr.Operation)
	}
	if syncErr.StatusCode != http.StatusConflict {
		t.Errorf("status code = %d", syncErr.StatusCode)
	}
}

func TestEncodeDocPath(t *testing.T) {
	if got := encodeDocPath("users/u 1/data/foodLog"); got != "users/u%201/data/foodLog" {
		t.Errorf("encoded path = %q", got)
	}
	if got := encodeDocPath("users/u1/data/profile"); got != "users/u1/data/profile" {
		t.Errorf("plain path changed: %q", got)
	}
}
