package captcha

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/lightsmap/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence replays fixed draws in order.
func sequence(draws ...int) func(int) int {
	return func(n int) int {
		v := draws[0]
		draws = draws[1:]
		if v >= n {
			panic("draw out of range")
		}
		return v
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T, clk *clock, opts ...Option) *Service {
	t.Helper()
	signer, err := jwt.NewSigner("captcha-secret", jwt.WithClock(clk.now))
	require.NoError(t, err)
	return NewService(signer, opts...)
}

func TestIssueRendersQuestion(t *testing.T) {
	clk := &clock{t: time.Now()}
	cases := []struct {
		draws    []int
		question string
		answer   string
	}{
		{[]int{6, 4, 0}, "7 + 5 = ?", "12"},
		{[]int{8, 2, 2}, "9 × 3 = ?", "27"},
		{[]int{0, 19, 1}, "1 - 20 = ?", "-19"},
	}
	for _, tc := range cases {
		svc := newService(t, clk, WithIntn(sequence(tc.draws...)))
		ch, err := svc.Issue()
		require.NoError(t, err)
		assert.Equal(t, tc.question, ch.Question)
		assert.NoError(t, svc.Check(ch.Token, json.RawMessage(tc.answer)), tc.question)
	}
}

func TestIssueOperandRange(t *testing.T) {
	svc := newService(t, &clock{t: time.Now()})
	for i := 0; i < 200; i++ {
		ch, err := svc.Issue()
		require.NoError(t, err)
		var a, b int
		var op string
		_, err = fmt.Sscanf(ch.Question, "%d %s %d = ?", &a, &op, &b)
		require.NoError(t, err, ch.Question)
		assert.True(t, a >= 1 && a <= 20, ch.Question)
		assert.True(t, b >= 1 && b <= 20, ch.Question)
		assert.Contains(t, []string{"+", "-", "×"}, op)
	}
}

func TestCheck(t *testing.T) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clk)
	ch, err := svc.IssueFor(7, 5, OpAdd)
	require.NoError(t, err)

	assert.NoError(t, svc.Check(ch.Token, json.RawMessage(`12`)))
	assert.NoError(t, svc.Check(ch.Token, json.RawMessage(`"12"`)))
	assert.ErrorIs(t, svc.Check(ch.Token, json.RawMessage(`13`)), ErrIncorrectAnswer)
	assert.ErrorIs(t, svc.Check(ch.Token, json.RawMessage(`"twelve"`)), ErrIncorrectAnswer)
	assert.ErrorIs(t, svc.Check("garbage", json.RawMessage(`12`)), ErrInvalidToken)
	assert.ErrorIs(t, svc.Check("", json.RawMessage(`12`)), ErrInvalidToken)

	// A token is reusable until it expires; nothing is stored server-side.
	assert.NoError(t, svc.Check(ch.Token, json.RawMessage(`12`)))

	clk.t = clk.t.Add(jwt.CaptchaTTL + time.Second)
	assert.ErrorIs(t, svc.Check(ch.Token, json.RawMessage(`12`)), ErrInvalidToken)
}

func TestCheckRejectsForeignToken(t *testing.T) {
	clk := &clock{t: time.Now()}
	svc := newService(t, clk)

	other, err := jwt.NewSigner("someone-else")
	require.NoError(t, err)
	forged, err := other.Issue(map[string]any{claimAnswer: 1}, time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Check(forged, json.RawMessage(`1`)), ErrInvalidToken)
}

func TestCheckRejectsTokenWithoutAnswer(t *testing.T) {
	clk := &clock{t: time.Now()}
	signer, err := jwt.NewSigner("captcha-secret", jwt.WithClock(clk.now))
	require.NoError(t, err)
	svc := NewService(signer)

	admin, err := signer.IssueAdmin()
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Check(admin, json.RawMessage(`0`)), ErrInvalidToken)
}
