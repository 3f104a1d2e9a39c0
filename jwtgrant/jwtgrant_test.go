package jwtgrant

import (
	"crypto/ed25519"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func signHS256(t *testing.T, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return token
}

func newHS256Manager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(Config{
		SigningMethod: MethodHS256,
		Key:           testSecret,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func grantToken(t *testing.T, subject string, grants []string, ttl time.Duration) string {
	t.Helper()

	return signHS256(t, grantClaims{
		Grants: grants,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func TestParseReturnsSubjectAndGrants(t *testing.T) {
	m := newHS256Manager(t)
	token := grantToken(t, "alice", []string{"Admin", "Editor"}, time.Minute)

	identity, set, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if identity != "alice" {
		t.Fatalf("identity = %q", identity)
	}
	if !set.Has("Admin") || !set.Has("Editor") || len(set) != 2 {
		t.Fatalf("set = %v", set)
	}
}

func TestParseRejectsBadSignature(t *testing.T) {
	m := newHS256Manager(t)

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("another-secret-another-secret-xx"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, _, err := m.Parse(other); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := newHS256Manager(t)
	token := grantToken(t, "alice", []string{"Admin"}, -time.Minute)

	if _, _, err := m.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseRejectsWrongAlgorithm(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	m, err := NewManager(Config{SigningMethod: MethodEd25519, Key: pub})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	// HS256 token against an Ed25519 manager must fail method validation.
	token := grantToken(t, "alice", []string{"Admin"}, time.Minute)
	if _, _, err := m.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestEd25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	m, err := NewManager(Config{SigningMethod: MethodEd25519, Key: pub})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, grantClaims{
		Grants: []string{"Viewer"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "bob",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(priv)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	identity, set, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if identity != "bob" || !set.Has("Viewer") {
		t.Fatalf("identity=%q set=%v", identity, set)
	}
}

func TestManagerConfigValidation(t *testing.T) {
	if _, err := NewManager(Config{SigningMethod: MethodHS256}); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := NewManager(Config{SigningMethod: MethodEd25519, Key: []byte("short")}); err == nil {
		t.Fatal("expected error for short ed25519 key")
	}
	if _, err := NewManager(Config{SigningMethod: "rsa"}); err == nil {
		t.Fatal("expected error for unsupported method")
	}
	if _, err := NewManager(Config{SigningMethod: MethodHS256, Key: testSecret, Leeway: time.Hour}); err == nil {
		t.Fatal("expected error for oversized leeway")
	}
}

func TestRequestSource(t *testing.T) {
	m := newHS256Manager(t)
	token := grantToken(t, "alice", []string{"Admin"}, time.Minute)

	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	if _, ok := m.RequestSource(r); ok {
		t.Fatal("expected no source without Authorization header")
	}

	r.Header.Set("Authorization", "Bearer "+token)
	src, ok := m.RequestSource(r)
	if !ok {
		t.Fatal("expected source for bearer token")
	}

	set, err := src.Permissions(r.Context())
	if err != nil {
		t.Fatalf("Permissions failed: %v", err)
	}
	if !set.Has("Admin") {
		t.Fatalf("set = %v", set)
	}
	if src.Identity() != "alice" {
		t.Fatalf("identity = %q", src.Identity())
	}
}

func TestEmptySourceFails(t *testing.T) {
	var src TokenSource
	if _, err := src.Permissions(nil); !errors.Is(err, ErrNoBearerToken) {
		t.Fatalf("expected ErrNoBearerToken, got %v", err)
	}
}
