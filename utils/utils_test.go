package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMentions(t *testing.T) {
	t.Run("removes plain mention", func(t *testing.T) {
		result := StripMentions("<@123456789> hello there")
		assert.Equal(t, "hello there", result)
	})

	t.Run("removes nickname mention", func(t *testing.T) {
		result := StripMentions("<@!123456789> hello")
		assert.Equal(t, "hello", result)
	})

	t.Run("removes multiple mentions", func(t *testing.T) {
		result := StripMentions("<@111> hey <@222> there")
		assert.Equal(t, "hey  there", result)
	})

	t.Run("leaves text without mentions untouched", func(t *testing.T) {
		result := StripMentions("no mentions here")
		assert.Equal(t, "no mentions here", result)
	})
}

func TestSanitizePrompt(t *testing.T) {
	t.Run("strips special characters", func(t *testing.T) {
		result := SanitizePrompt("a red fox <script>@#$%</script>")
		assert.Equal(t, "a red fox script script", result)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		result := SanitizePrompt("a   red\t\tfox")
		assert.Equal(t, "a red fox", result)
	})

	t.Run("keeps punctuation used in prose", func(t *testing.T) {
		result := SanitizePrompt("Hello, world! Isn't it nice?")
		assert.Equal(t, "Hello, world! Isn't it nice?", result)
	})
}

func TestAssertInvariant(t *testing.T) {
	t.Run("panics when condition is false", func(t *testing.T) {
		assert.Panics(t, func() {
			AssertInvariant(false, "should panic")
		})
	})

	t.Run("does nothing when condition is true", func(t *testing.T) {
		assert.NotPanics(t, func() {
			AssertInvariant(true, "should not panic")
		})
	})
}
