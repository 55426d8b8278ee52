package captcha

import "errors"

const (
	minOperand = 1
	maxOperand = 20

	claimAnswer = "answer"
)

// Operator is one of the arithmetic operations a challenge may use.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
)

var operators = []Operator{OpAdd, OpSubtract, OpMultiply}

// Challenge is what a visitor receives: a printable question and the
// signed token that carries the expected answer.
type Challenge struct {
	Question string `json:"question"`
	Token    string `json:"token"`
}

const (
	msgIssueFailed = "Failed to generate captcha"
)

var (
	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired captcha")
	// ErrIncorrectAnswer never carries the expected value.
	ErrIncorrectAnswer = errors.New("incorrect captcha answer")
)
