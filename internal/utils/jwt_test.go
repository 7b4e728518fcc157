package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestNewTokenPair(t *testing.T) {
	pair, err := NewTokenPair(testSecret, 42, "alice", "alice@example.com", "user", 7, 30)
	if err != nil {
		t.Fatalf("NewTokenPair() unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("NewTokenPair() returned an empty token")
	}
	if !pair.RefreshExpiresAt.After(pair.AccessExpiresAt) {
		t.Error("refresh token should outlive the access token")
	}
}

func TestVerifyAccessRoundTrip(t *testing.T) {
	pair, err := NewTokenPair(testSecret, 42, "alice", "alice@example.com", "admin", 7, 30)
	if err != nil {
		t.Fatalf("NewTokenPair() unexpected error: %v", err)
	}

	claims, err := VerifyAccess(pair.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("VerifyAccess() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
}

func TestVerifyRefreshRoundTrip(t *testing.T) {
	pair, err := NewTokenPair(testSecret, 42, "alice", "alice@example.com", "user", 7, 30)
	if err != nil {
		t.Fatalf("NewTokenPair() unexpected error: %v", err)
	}

	claims, err := VerifyRefresh(pair.RefreshToken, testSecret)
	if err != nil {
		t.Fatalf("VerifyRefresh() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestVerifyRefreshRejectsAccessToken(t *testing.T) {
	pair, err := NewTokenPair(testSecret, 42, "alice", "alice@example.com", "user", 7, 30)
	if err != nil {
		t.Fatalf("NewTokenPair() unexpected error: %v", err)
	}

	if _, err := VerifyRefresh(pair.AccessToken, testSecret); err == nil {
		t.Error("VerifyRefresh() accepted an access token")
	}
}

func TestVerifyAccessWrongSecret(t *testing.T) {
	access, _, err := NewAccessToken(testSecret, 1, "bob", "bob@example.com", "user", 1)
	if err != nil {
		t.Fatalf("NewAccessToken() unexpected error: %v", err)
	}
	if _, err := VerifyAccess(access, "other-secret"); err == nil {
		t.Error("VerifyAccess() accepted a token signed with another secret")
	}
}

func TestVerifyAccessMalformed(t *testing.T) {
	if _, err := VerifyAccess("not-a-token", testSecret); err != ErrTokenMalformed {
		t.Errorf("VerifyAccess() error = %v, want ErrTokenMalformed", err)
	}
}

// signWith covers the verification branches that need a deliberately bad
// registered-claims block.
func signWith(t *testing.T, rc jwt.RegisteredClaims) string {
	t.Helper()
	claims := AccessClaims{RegisteredClaims: rc, UserID: 1, Username: "bob", Email: "bob@example.com", Role: "user"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestVerifyAccessExpired(t *testing.T) {
	raw := signWith(t, jwt.RegisteredClaims{
		Issuer:    "skillpath",
		Audience:  jwt.ClaimStrings{"skillpath-api"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	})
	if _, err := VerifyAccess(raw, testSecret); err != ErrTokenExpired {
		t.Errorf("VerifyAccess() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyAccessWrongIssuer(t *testing.T) {
	raw := signWith(t, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Audience:  jwt.ClaimStrings{"skillpath-api"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	if _, err := VerifyAccess(raw, testSecret); err != ErrTokenInvalid {
		t.Errorf("VerifyAccess() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyAccessWrongAudience(t *testing.T) {
	raw := signWith(t, jwt.RegisteredClaims{
		Issuer:    "skillpath",
		Audience:  jwt.ClaimStrings{"another-api"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	if _, err := VerifyAccess(raw, testSecret); err != ErrTokenInvalid {
		t.Errorf("VerifyAccess() error = %v, want ErrTokenInvalid", err)
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"empty", "", ""},
		{"no prefix", "abc.def.ghi", ""},
		{"wrong scheme", "Basic abc", ""},
		{"extra spaces", "Bearer   abc ", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBearer(tt.header); got != tt.want {
				t.Errorf("ExtractBearer(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestHashRefreshRaw(t *testing.T) {
	a := HashRefreshRaw("token-one")
	b := HashRefreshRaw("token-two")
	if a == b {
		t.Error("different tokens produced the same hash")
	}
	if a != HashRefreshRaw("token-one") {
		t.Error("hashing is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
