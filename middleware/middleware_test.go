// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kzhou57/stagevote/models"
)

func TestOKEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, "all good")

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var res models.Res
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if !res.Success || res.Data != "all good" {
		t.Errorf("Unexpected envelope: %+v", res)
	}
}

func TestFailEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, http.StatusBadRequest, "points must be an integer")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	var res models.Res
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if res.Success {
		t.Error("Expected success=false")
	}
	if res.Data != "points must be an integer" {
		t.Errorf("Expected reason in data, got %v", res.Data)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"alice"}`))

	var body models.LoginRequest
	if err := ParseJSONBody(req, &body); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body.Username != "alice" {
		t.Errorf("Expected alice, got %q", body.Username)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`not json`))
	if err := ParseJSONBody(req, &body); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/vote", nil)
	req.Header.Set("Origin", "https://contest.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://contest.example" {
		t.Errorf("Expected origin echoed back, got %q", got)
	}
}
