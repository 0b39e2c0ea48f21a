// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/survey-intake/auth"
	"github.com/danielhkuo/survey-intake/cliparse"
	"github.com/danielhkuo/survey-intake/db"
)

// TestDBURL opens a private in-memory SQLite database per connection pool
const TestDBURL = "file::memory:?_pragma=foreign_keys(1)"

const (
	TestAdminUsername = "admin"
	TestAdminPassword = "test-admin-password"
	TestJWTSecret     = "test-secret-0123456789abcdef012345"
	TestIPHashSalt    = "test-ip-hash-salt"
)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// PostgresURLEnv names the variable holding a disposable Postgres database
// for dialect tests; they are skipped when it is unset.
const PostgresURLEnv = "TEST_POSTGRES_URL"

// SetupPostgresDB drops and recreates the schema in the database named by
// PostgresURLEnv. Callers must not run in parallel.
func SetupPostgresDB(t *testing.T) *db.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, db.Postgres, url)
	if err != nil {
		t.Fatalf("Failed to open postgres test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	_, err = conn.ExecContext(ctx, `
		DROP TABLE IF EXISTS platform_features_opinions CASCADE;
		DROP TABLE IF EXISTS digital_work_feedback CASCADE;
		DROP TABLE IF EXISTS feedback_forms CASCADE;
		DROP TABLE IF EXISTS users CASCADE;
		DROP TABLE IF EXISTS not_interested_users CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration.
// The admin password is a low-cost bcrypt hash to keep tests fast.
func GetTestConfig() cliparse.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt: %v", err))
	}

	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       TestDBURL,
		DatabaseType:      cliparse.DatabaseSQLite,
		JWTSecret:         TestJWTSecret,
		JWTAlgorithm:      "HS256",
		TokenTTL:          30 * time.Minute,
		AdminUsername:     TestAdminUsername,
		AdminPassword:     string(hash),
		IPHashSalt:        TestIPHashSalt,
		CORSMaxAge:        600,
		RateLimitRequests: 1000,
		LogLevel:          "error",
		LogFormat:         "json",
	}
}

// TokenManager builds the token manager for cfg
func TokenManager(t *testing.T, cfg cliparse.Config) *auth.TokenManager {
	t.Helper()

	tm, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}
	return tm
}

// AdminToken issues a bearer token carrying the admin role
func AdminToken(t *testing.T, cfg cliparse.Config) string {
	t.Helper()
	return issueToken(t, cfg, auth.RoleAdmin)
}

// UserToken issues a validly signed token without the admin role
func UserToken(t *testing.T, cfg cliparse.Config) string {
	t.Helper()
	return issueToken(t, cfg, "user")
}

func issueToken(t *testing.T, cfg cliparse.Config, role string) string {
	t.Helper()

	raw, _, err := TokenManager(t, cfg).Issue(TestAdminUsername, role)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return raw
}

// AuthHeader returns headers for MakeRequest carrying the bearer token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// InsertTestFeedback inserts a bare feedback form and returns its ID
func InsertTestFeedback(t *testing.T, d *db.DB, email *string, createdAt time.Time) int64 {
	t.Helper()

	var emailArg any
	if email != nil {
		emailArg = *email
	}

	var id int64
	err := d.QueryRow(d.Rebind(`
		INSERT INTO feedback_forms (user_email, created_at)
		VALUES ($1, $2)
		RETURNING id
	`), emailArg, createdAt).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test feedback: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, d *db.DB, table string) int {
	t.Helper()

	var n int
	if err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// IgnoreInserts makes every insert into table a silent no-op, so an
// INSERT ... RETURNING yields no row.
func IgnoreInserts(t *testing.T, d *db.DB, table string) {
	t.Helper()
	createTrigger(t, d, table, "RAISE(IGNORE)")
}

// FailInserts makes every insert into table abort with an error.
func FailInserts(t *testing.T, d *db.DB, table string) {
	t.Helper()
	createTrigger(t, d, table, "RAISE(ABORT, 'simulated failure')")
}

func createTrigger(t *testing.T, d *db.DB, table, action string) {
	t.Helper()

	_, err := d.Exec(fmt.Sprintf(`
		CREATE TRIGGER fail_%[1]s BEFORE INSERT ON %[1]s
		BEGIN
			SELECT %[2]s;
		END
	`, table, action))
	if err != nil {
		t.Fatalf("Failed to install trigger on %s: %v", table, err)
	}
}

// DropTable removes table so every query against it fails
func DropTable(t *testing.T, d *db.DB, table string) {
	t.Helper()
	if _, err := d.Exec("DROP TABLE " + table); err != nil {
		t.Fatalf("Failed to drop %s: %v", table, err)
	}
}

// MakeRequest creates an HTTP test request.
// A string or []byte body is sent as-is; anything else is JSON-encoded.
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	case []byte:
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
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
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Envelope is a decoded response envelope with data left raw
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeEnvelope decodes the envelope and, when data is non-nil, its data field
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) Envelope {
	t.Helper()

	var env Envelope
	AssertJSON(t, w, &env)
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("Failed to decode envelope data: %v", err)
		}
	}
	return env
}
