package captcha

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/lightsmap/core/internal/pkg/jwt"
)

// Service issues arithmetic challenges and checks answers against them.
// It holds no challenge state; the signed token is the only record.
type Service struct {
	signer *jwt.Signer
	intn   func(n int) int
}

type Option func(*Service)

// WithIntn replaces the random source, for deterministic challenges.
func WithIntn(intn func(n int) int) Option {
	return func(s *Service) {
		if intn != nil {
			s.intn = intn
		}
	}
}

func NewService(signer *jwt.Signer, opts ...Option) *Service {
	s := &Service{signer: signer, intn: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue draws two operands in [1,20] and an operator, then signs the
// expected answer into a token valid for jwt.CaptchaTTL.
func (s *Service) Issue() (*Challenge, error) {
	a := minOperand + s.intn(maxOperand-minOperand+1)
	b := minOperand + s.intn(maxOperand-minOperand+1)
	op := operators[s.intn(len(operators))]
	return s.IssueFor(a, b, op)
}

// IssueFor signs a challenge for fixed operands.
func (s *Service) IssueFor(a, b int, op Operator) (*Challenge, error) {
	token, err := s.signer.Issue(map[string]any{claimAnswer: op.apply(a, b)}, jwt.CaptchaTTL)
	if err != nil {
		return nil, err
	}
	return &Challenge{Question: question(a, b, op), Token: token}, nil
}

// Check verifies the token first, then the answer. An answer that cannot
// be parsed counts as incorrect.
func (s *Service) Check(token string, rawAnswer json.RawMessage) error {
	claims, valid := s.signer.Verify(token)
	if !valid {
		return ErrInvalidToken
	}
	expected, found := claimedAnswer(claims)
	if !found {
		return ErrInvalidToken
	}
	answer, ok := ParseAnswer(rawAnswer)
	if !ok || answer != expected {
		return ErrIncorrectAnswer
	}
	return nil
}
