package captcha

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

func (op Operator) symbol() string {
	switch op {
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	default:
		return "+"
	}
}

func (op Operator) apply(a, b int) int {
	switch op {
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	default:
		return a + b
	}
}

func question(a, b int, op Operator) string {
	return strconv.Itoa(a) + " " + op.symbol() + " " + strconv.Itoa(b) + " = ?"
}

// ParseAnswer reads a submitted answer that may be a JSON number or a
// numeric string. Non-integral or unparseable input reports ok == false.
func ParseAnswer(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// claimedAnswer extracts the integer answer from verified claims.
func claimedAnswer(claims map[string]interface{}) (int, bool) {
	switch v := claims[claimAnswer].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}
