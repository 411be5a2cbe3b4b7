package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlExpr     = regexp.MustCompile(`(https?://|www\.)\S+`)
	allowedExpr = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?]`)
)

// Normalize prepares raw text for scoring: lowercase, drop URL-like
// tokens, keep only letters, digits, whitespace and basic punctuation,
// trim the edges. Pure and idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlExpr.ReplaceAllString(text, "")
	text = allowedExpr.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
