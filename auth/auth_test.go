// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return m
}

func TestNewTokenManager(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		alg     string
		ttl     time.Duration
		wantErr bool
	}{
		{"HS256", testSecret, "HS256", time.Minute, false},
		{"HS512", testSecret, "HS512", time.Minute, false},
		{"short secret", "short", "HS256", time.Minute, true},
		{"asymmetric alg", testSecret, "RS256", time.Minute, true},
		{"unknown alg", testSecret, "none", time.Minute, true},
		{"zero ttl", testSecret, "HS256", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenManager(tt.secret, tt.alg, tt.ttl)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTokenManager() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)

	raw, issued, err := m.Issue("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := m.VerifyToken(raw)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Subject != "admin" || !claims.IsAdmin() {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.Expiry().Equal(issued.Expiry()) {
		t.Errorf("expiry = %v, want %v", claims.Expiry(), issued.Expiry())
	}
}

func TestVerifyToken_Rejects(t *testing.T) {
	m := newTestManager(t)

	valid, _, _ := m.Issue("admin", RoleAdmin)

	other, _ := NewTokenManager("ffffffffffffffffffffffffffffffff", "HS256", time.Minute)
	wrongSecret, _, _ := other.Issue("admin", RoleAdmin)

	hs512, _ := NewTokenManager(testSecret, "HS512", time.Minute)
	wrongAlg, _, _ := hs512.Issue("admin", RoleAdmin)

	expired := newTestManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, _ := expired.Issue("admin", RoleAdmin)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: RoleAdmin}).SignedString([]byte(testSecret))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"tampered", valid + "x"},
		{"wrong secret", wrongSecret},
		{"wrong algorithm", wrongAlg},
		{"expired", expiredToken},
		{"missing exp", noExp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifyToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyToken_NonAdminRole(t *testing.T) {
	m := newTestManager(t)

	raw, _, _ := m.Issue("someone", "user")
	claims, err := m.VerifyToken(raw)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.IsAdmin() {
		t.Error("user role should not be admin")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer abc", "abc", false},
		{"  Bearer   abc  ", "abc", false},
		{"", "", true},
		{"Bearer", "", true},
		{"Bearer   ", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestClaimsContext(t *testing.T) {
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("empty context should have no claims")
	}

	want := &Claims{Role: RoleAdmin}
	got, ok := ClaimsFromContext(WithClaims(context.Background(), want))
	if !ok || got != want {
		t.Errorf("ClaimsFromContext() = %v, %v", got, ok)
	}
}

func TestAdminCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}

	for name, password := range map[string]string{"plaintext": "s3cret", "bcrypt hash": string(hash)} {
		t.Run(name, func(t *testing.T) {
			creds, err := NewAdminCredentials("admin", password)
			if err != nil {
				t.Fatalf("NewAdminCredentials() error = %v", err)
			}

			if err := creds.Authenticate("admin", "s3cret"); err != nil {
				t.Errorf("valid login rejected: %v", err)
			}
			if err := creds.Authenticate("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("wrong password: err = %v", err)
			}
			if err := creds.Authenticate("root", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("wrong username: err = %v", err)
			}
		})
	}

	if _, err := NewAdminCredentials("", "x"); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334"},
		{"localhost", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, "ip-salt")

			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}
			if hash != HashIP(tt.ip, "ip-salt") {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkVerifyToken(b *testing.B) {
	m, _ := NewTokenManager(testSecret, "HS256", time.Hour)
	raw, _, _ := m.Issue("admin", RoleAdmin)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.VerifyToken(raw)
	}
}
