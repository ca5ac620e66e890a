// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/kzhou57/stagevote/auth"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/db"
	"github.com/kzhou57/stagevote/models"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full
// schema. One connection max: every statement sees the same memory DB and
// sqlite never reports busy.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         44555,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKey:     "test-admin-key",
		MinPoints:    0,
		MaxPoints:    100,
		Policy:       models.PolicyWeighted,
	}
}

// CreateTestUser inserts an account and returns its userId. weight may be
// empty for the default weight of 1.
func CreateTestUser(t *testing.T, conn *sql.DB, username, weight string) string {
	t.Helper()

	userID, err := auth.NewID()
	if err != nil {
		t.Fatalf("Failed to generate user id: %v", err)
	}

	var w any
	if weight != "" {
		w = weight
	}
	_, err = conn.Exec(`
		INSERT INTO account (user_id, username, password, weight)
		VALUES ($1, $2, 'pw', $3)
	`, userID, username, w)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestWork inserts a work and returns its workId
func CreateTestWork(t *testing.T, conn *sql.DB, title string) string {
	t.Helper()

	workID, err := auth.NewID()
	if err != nil {
		t.Fatalf("Failed to generate work id: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO work (work_id, title) VALUES ($1, $2)
	`, workID, title)
	if err != nil {
		t.Fatalf("Failed to create test work: %v", err)
	}

	return workID
}

// InsertTestVote appends one row to the vote log
func InsertTestVote(t *testing.T, conn *sql.DB, workID, userID string, points int, ts int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (work_id, user_id, points, ts)
		VALUES ($1, $2, $3, $4)
	`, workID, userID, points, ts)
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// DecodeRes decodes the {success, data} envelope from the response body
func DecodeRes(t *testing.T, w *httptest.ResponseRecorder) models.Res {
	t.Helper()
	var res models.Res
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}
	return res
}

// DecodeData re-marshals the envelope's data field into v, for responses
// whose data is a structured value rather than a string.
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	res := DecodeRes(t, w)
	if !res.Success {
		t.Fatalf("Expected success envelope, got failure: %v", res.Data)
	}
	raw, err := json.Marshal(res.Data)
	if err != nil {
		t.Fatalf("Failed to re-marshal envelope data: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("Failed to decode envelope data: %v", err)
	}
}
