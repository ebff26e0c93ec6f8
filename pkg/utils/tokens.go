package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenStatus buckets a token count against the nearest common context size
type TokenStatus string

const (
	TokenStatusGood    TokenStatus = "good"
	TokenStatusWarning TokenStatus = "warning"
	TokenStatusDanger  TokenStatus = "danger"
)

var contextLimits = []int{4096, 8192, 16384, 32768, 131072}

// EstimateTokens gives a rough token count for source code.
// Code runs denser than prose, about 3 characters per token, so the
// character estimate is averaged with a word based one (1.3 tokens per word).
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	charEstimate := utf8.RuneCountInString(text) / 3
	wordEstimate := len(strings.Fields(text)) * 13 / 10

	estimate := (charEstimate + wordEstimate) / 2
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

// FormatTokenCount formats the token count for display
func FormatTokenCount(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("~%d tokens", tokens)
	case tokens < 10000:
		return fmt.Sprintf("~%.1fK tokens", float64(tokens)/1000)
	default:
		return fmt.Sprintf("~%.0fK tokens", float64(tokens)/1000)
	}
}

// TokenLimitStatus picks the smallest common limit that fits tokens and
// reports how full it is
func TokenLimitStatus(tokens int) (limit int, status TokenStatus) {
	limit = contextLimits[len(contextLimits)-1]
	for _, l := range contextLimits {
		if tokens <= l {
			limit = l
			break
		}
	}

	percentage := tokens * 100 / limit
	switch {
	case percentage < 50:
		status = TokenStatusGood
	case percentage < 80:
		status = TokenStatusWarning
	default:
		status = TokenStatusDanger
	}
	return limit, status
}
