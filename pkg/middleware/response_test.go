package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteError(rec, http.StatusForbidden, "forbidden", "project password is missing or incorrect"); err != nil {
		t.Fatalf("WriteError returned %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "forbidden" {
		t.Errorf("expected error code forbidden, got %q", body["error"])
	}
	if body["message"] == "" {
		t.Error("expected a human-readable message")
	}
	if len(body) != 2 {
		t.Errorf("expected exactly error and message keys, got %v", body)
	}
}
