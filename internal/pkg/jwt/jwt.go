package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	// AdminTTL is the lifetime of an admin session token.
	AdminTTL = 24 * time.Hour
	// CaptchaTTL is the lifetime of a captcha challenge token.
	CaptchaTTL = 5 * time.Minute

	ClaimExp  = "exp"
	ClaimRole = "role"
	RoleAdmin = "admin"
)

var errEmptySecret = errors.New("jwt: signing secret is empty")

// Claims is the decoded payload of a verified token.
type Claims = jwtlib.MapClaims

// Signer issues and verifies HS256 tokens with a shared secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock overrides the time source used for exp stamping and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner returns a Signer for the given secret. An empty secret is refused.
func NewSigner(secret string, opts ...Option) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errEmptySecret
	}
	s := &Signer{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs payload merged with exp = now + ttl (unix seconds).
func (s *Signer) Issue(payload map[string]any, ttl time.Duration) (string, error) {
	claims := jwtlib.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims[ClaimExp] = s.now().Add(ttl).Unix()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry. It never returns an error: any
// failure (malformed, tampered, expired, missing exp) yields ok == false.
func (s *Signer) Verify(raw string) (Claims, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)
	claims := jwtlib.MapClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// VerifyBearer extracts the token from an "Authorization: Bearer <token>"
// header value. A missing or malformed header fails without verification.
func (s *Signer) VerifyBearer(header string) (Claims, bool) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, false
	}
	return s.Verify(token)
}

// IssueAdmin issues a 24h session token carrying role=admin.
func (s *Signer) IssueAdmin() (string, error) {
	return s.Issue(map[string]any{ClaimRole: RoleAdmin}, AdminTTL)
}

// IsAdmin reports whether verified claims belong to an admin session.
func IsAdmin(claims Claims) bool {
	role, _ := claims[ClaimRole].(string)
	return role == RoleAdmin
}

// BearerToken strips the "Bearer " prefix from an Authorization header.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
