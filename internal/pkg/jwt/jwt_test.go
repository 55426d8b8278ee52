package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestSigner(t *testing.T, secret string, clock *fakeClock) *Signer {
	t.Helper()
	s, err := NewSigner(secret, WithClock(clock.Now))
	require.NoError(t, err)
	return s
}

func TestNewSignerRejectsEmptySecret(t *testing.T) {
	_, err := NewSigner("   ")
	require.Error(t, err)
}

func TestVerifyRespectsTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestSigner(t, "secret", clock)

	const ttl = 300
	token, err := s.Issue(map[string]any{"answer": 12}, ttl*time.Second)
	require.NoError(t, err)

	clock.t = clock.t.Add((ttl - 1) * time.Second)
	claims, ok := s.Verify(token)
	require.True(t, ok)
	assert.EqualValues(t, 12, claims["answer"])

	clock.t = clock.t.Add(2 * time.Second)
	_, ok = s.Verify(token)
	assert.False(t, ok)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestSigner(t, "other-secret", clock)
	verifier := newTestSigner(t, "secret", clock)

	token, err := issuer.Issue(map[string]any{"answer": 1}, time.Minute)
	require.NoError(t, err)

	_, ok := verifier.Verify(token)
	assert.False(t, ok)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestSigner(t, "secret", clock)

	token, err := s.Issue(map[string]any{"answer": 12}, time.Minute)
	require.NoError(t, err)
	forged, err := s.Issue(map[string]any{"answer": 99}, time.Minute)
	require.NoError(t, err)

	// Splice the forged payload onto the original signature.
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, ok := s.Verify(tampered)
	assert.False(t, ok)
}

func TestVerifyMalformedInputs(t *testing.T) {
	s := newTestSigner(t, "secret", &fakeClock{t: time.Now()})
	for _, raw := range []string{"", "   ", "abc", "a.b.c", "...."} {
		_, ok := s.Verify(raw)
		assert.False(t, ok, "token %q", raw)
	}
}

func TestVerifyRequiresExp(t *testing.T) {
	s := newTestSigner(t, "secret", &fakeClock{t: time.Now()})
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"role": "admin"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	_, ok := s.Verify(token)
	assert.False(t, ok)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	s := newTestSigner(t, "secret", &fakeClock{t: time.Now()})
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := s.Verify(token)
	assert.False(t, ok)
}

func TestVerifyBearer(t *testing.T) {
	s := newTestSigner(t, "secret", &fakeClock{t: time.Now()})
	token, err := s.IssueAdmin()
	require.NoError(t, err)

	claims, ok := s.VerifyBearer("Bearer " + token)
	require.True(t, ok)
	assert.True(t, IsAdmin(claims))

	for _, header := range []string{"", token, "bearer " + token, "Bearer ", "Basic " + token} {
		_, ok := s.VerifyBearer(header)
		assert.False(t, ok, "header %q", header)
	}
}

func TestIssueAdminExpiresAfterADay(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newTestSigner(t, "secret", clock)
	token, err := s.IssueAdmin()
	require.NoError(t, err)

	claims, ok := s.Verify(token)
	require.True(t, ok)
	assert.EqualValues(t, clock.t.Add(AdminTTL).Unix(), claims["exp"])

	clock.t = clock.t.Add(AdminTTL + time.Second)
	_, ok = s.Verify(token)
	assert.False(t, ok)
}
