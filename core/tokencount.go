package core

import (
	"strings"
)

// EstimateTokens provides a rough token count estimation for a chat
// completion payload. The gateway only needs ballpark numbers for usage
// accounting, so estimation avoids an extra round-trip to the provider.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}

	words := strings.Fields(content)
	wordCount := len(words)

	charCount := len(strings.ReplaceAll(content, " ", ""))

	// ~1.3 tokens per word for English text, character-based for very
	// short strings, plus a small buffer for punctuation and formatting.
	tokenEstimate := float64(wordCount) * 1.3
	if wordCount < 10 {
		tokenEstimate = float64(charCount) / 3.5
	}
	tokenEstimate *= 1.1

	return int(tokenEstimate)
}

// EstimateTokensWithSystem estimates tokens for a system instruction plus a
// user message sent together.
func EstimateTokensWithSystem(systemMsg, userMsg string) int {
	if systemMsg == "" && userMsg == "" {
		return 0
	}
	return EstimateTokens(systemMsg + " " + userMsg)
}
