package datastore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDatasetteClient_UpsertBooks_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/-/insert/bookview/books") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer testtoken" {
			t.Errorf("unexpected auth header: %s", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		if _, ok := payload["rows"]; !ok {
			t.Errorf("payload missing rows key")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	records := []map[string]any{{"id": "abc", "title": "Dune"}}
	if err := client.UpsertBooks("bookview", records); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestDatasetteClient_UpsertBooks_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		if err := json.NewEncoder(w).Encode(map[string]any{"error": "forbidden"}); err != nil {
			t.Errorf("Failed to encode error response: %v", err)
		}
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	records := []map[string]any{{"id": "abc"}}
	if err := client.UpsertBooks("bookview", records); err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestDatasetteClient_UpsertEmptyIsNoOp(t *testing.T) {
	client := NewDatasetteClient("http://127.0.0.1:1", "")
	if err := client.UpsertBooks("bookview", nil); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
