package utils

import (
	"regexp"
	"strings"
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// StripMentions removes Discord mentions (<@USER_ID> or <@!USER_ID>) from
// message text.
func StripMentions(text string) string {
	mentionRegex := regexp.MustCompile(`<@!?[0-9]+>`)
	text = mentionRegex.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// SanitizePrompt strips characters that commonly trip upstream content
// filters so a rejected prompt can be retried once in a softer form.
func SanitizePrompt(prompt string) string {
	cleaned := regexp.MustCompile(`[^\p{L}\p{N}\s.,!?'-]`).ReplaceAllString(prompt, " ")
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
