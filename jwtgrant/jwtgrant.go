package jwtgrant

import (
	"context"
	"crypto/ed25519"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mwestra/actiongate/permission"
)

// SigningMethod selects the token verification algorithm.
type SigningMethod string

const (
	// MethodEd25519 verifies EdDSA tokens with an Ed25519 public key.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 verifies HMAC-SHA256 tokens with a shared secret.
	MethodHS256 SigningMethod = "hs256"
)

var (
	// ErrTokenInvalid is returned for any token that fails verification.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrNoBearerToken is returned when a request carries no bearer token.
	ErrNoBearerToken = errors.New("no bearer token")
)

// Config configures token verification.
type Config struct {
	SigningMethod SigningMethod
	// Key is the HS256 shared secret or the raw Ed25519 public key.
	Key      []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
}

type grantClaims struct {
	Grants []string `json:"grants,omitempty"`
	jwt.RegisteredClaims
}

// Manager verifies tokens and extracts grants. Safe for concurrent use.
type Manager struct {
	config    Config
	verifyKey any
	methods   []string
}

// NewManager validates the configuration and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	m := &Manager{config: cfg}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Key) == 0 {
			return nil, errors.New("hs256 requires a shared secret")
		}
		m.verifyKey = cfg.Key
		m.methods = []string{jwt.SigningMethodHS256.Alg()}
	case MethodEd25519, "":
		if len(cfg.Key) != ed25519.PublicKeySize {
			return nil, errors.New("ed25519 requires a 32-byte public key")
		}
		m.verifyKey = ed25519.PublicKey(cfg.Key)
		m.methods = []string{jwt.SigningMethodEdDSA.Alg()}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return m, nil
}

// Parse verifies a token and returns the caller identity (the subject
// claim) and the granted tag set.
func (m *Manager) Parse(token string) (string, permission.Set, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(m.methods),
		jwt.WithExpirationRequired(),
	}
	if m.config.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.config.Issuer))
	}
	if m.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.config.Audience))
	}

	var claims grantClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.verifyKey, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return "", nil, ErrTokenInvalid
	}

	return claims.Subject, permission.NewSetFromStrings(claims.Grants), nil
}

// Source binds the manager to one request's bearer token, implementing
// actiongate.GrantedPermissionSource.
func (m *Manager) Source(token string) TokenSource {
	return TokenSource{manager: m, token: token}
}

// RequestSource extracts the Authorization bearer token from r and binds
// it. The second return is false when the request carries none.
func (m *Manager) RequestSource(r *http.Request) (TokenSource, bool) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return TokenSource{}, false
	}
	return m.Source(token), true
}

// TokenSource yields the grants of one verified token.
type TokenSource struct {
	manager *Manager
	token   string
}

// Permissions verifies the bound token and returns its granted set.
func (s TokenSource) Permissions(context.Context) (permission.Set, error) {
	if s.manager == nil || s.token == "" {
		return nil, ErrNoBearerToken
	}
	_, set, err := s.manager.Parse(s.token)
	return set, err
}

// Identity verifies the bound token and returns its subject, or "".
func (s TokenSource) Identity() string {
	if s.manager == nil || s.token == "" {
		return ""
	}
	identity, _, err := s.manager.Parse(s.token)
	if err != nil {
		return ""
	}
	return identity
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
