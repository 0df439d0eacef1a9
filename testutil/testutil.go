// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/camp-relief/auth"
	"github.com/danielhkuo/camp-relief/cliparse"
	"github.com/danielhkuo/camp-relief/db"
	"github.com/danielhkuo/camp-relief/models"
)

// TestPassword is the credential every fixture user gets.
const TestPassword = "password123"

// SetupTestDB creates a fresh sqlite database under the test's temp
// directory with the full schema. Each test gets its own file, so tests
// can run in parallel without sharing state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "camp-relief-test.db")
	conn, err := db.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3320,
		DatabaseURL:  "camp-relief-test.db",
		DatabaseType: "sqlite",
		JWTSecret:    "test-secret",
	}
}

// CreateTestUser inserts a user with the given role and returns it.
// The stored credential is TestPassword.
func CreateTestUser(t *testing.T, conn *sql.DB, name, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	_, err = conn.Exec(`
		INSERT INTO app_user (id, name, email, pass_hash, role, address, needs, skills, availability, created_at)
		VALUES ($1, $2, $3, $4, $5, '', '', '', '', $6)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestCamp inserts a camp with current = original = beds.
func CreateTestCamp(t *testing.T, conn *sql.DB, name string, beds int, campType string) models.Camp {
	t.Helper()

	camp := models.Camp{
		ID:           uuid.NewString(),
		Name:         name,
		CurrentBeds:  beds,
		OriginalBeds: beds,
		Resources:    []string{"water", "blankets"},
		Contact:      "+1-555-0199",
		Ambulance:    false,
		Type:         campType,
		CreatedAt:    time.Now(),
	}

	resources, _ := json.Marshal(camp.Resources)
	_, err := conn.Exec(`
		INSERT INTO camp (id, name, current_beds, original_beds, resources, contact, ambulance, camp_type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', $9)
	`, camp.ID, camp.Name, camp.CurrentBeds, camp.OriginalBeds, string(resources),
		camp.Contact, camp.Ambulance, camp.Type, camp.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test camp: %v", err)
	}

	return camp
}

// CreateTestSelection links a user to a camp and takes one bed, keeping
// the bed-count invariant intact.
func CreateTestSelection(t *testing.T, conn *sql.DB, user models.User, camp models.Camp) models.Selection {
	t.Helper()

	sel := models.Selection{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CampID:    camp.ID,
		UserName:  user.Name,
		CampName:  camp.Name,
		CreatedAt: time.Now(),
	}

	_, err := conn.Exec(`
		INSERT INTO selection (id, user_id, camp_id, user_name, camp_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sel.ID, sel.UserID, sel.CampID, sel.UserName, sel.CampName, sel.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test selection: %v", err)
	}

	_, err = conn.Exec(`UPDATE camp SET current_beds = current_beds - 1 WHERE id = $1`, camp.ID)
	if err != nil {
		t.Fatalf("Failed to decrement test camp beds: %v", err)
	}

	return sel
}

// TokenFor issues a bearer token for a fixture user using the test secret.
func TokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.IssueToken(user, GetTestConfig().JWTSecret)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// AuthHeader builds the header map for a bearer token.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
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

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// CampBeds reads the current bed count straight from the store.
func CampBeds(t *testing.T, conn *sql.DB, campID string) int {
	t.Helper()

	var beds int
	if err := conn.QueryRow(`SELECT current_beds FROM camp WHERE id = $1`, campID).Scan(&beds); err != nil {
		t.Fatalf("Failed to read camp beds: %v", err)
	}
	return beds
}

// SelectionCount counts active selections, optionally scoped to a camp.
func SelectionCount(t *testing.T, conn *sql.DB, campID string) int {
	t.Helper()

	var n int
	var err error
	if campID == "" {
		err = conn.QueryRow(`SELECT COUNT(*) FROM selection`).Scan(&n)
	} else {
		err = conn.QueryRow(`SELECT COUNT(*) FROM selection WHERE camp_id = $1`, campID).Scan(&n)
	}
	if err != nil {
		t.Fatalf("Failed to count selections: %v", err)
	}
	return n
}
