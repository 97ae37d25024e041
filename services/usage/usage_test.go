package usage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCostFor(t *testing.T) {
	t.Run("known model prices input and output separately", func(t *testing.T) {
		// 1M input tokens at $2.50 + 1M output tokens at $10.00
		cost := CostFor("gpt-4o", 1_000_000, 1_000_000)
		assert.True(t, cost.Equal(decimal.NewFromFloat(12.50)), "got %s", cost)
	})

	t.Run("fractional token counts stay exact", func(t *testing.T) {
		cost := CostFor("gpt-4o-mini", 1000, 2000)
		expected := decimal.NewFromFloat(0.00015).Add(decimal.NewFromFloat(0.0012))
		assert.True(t, cost.Equal(expected), "got %s", cost)
	})

	t.Run("unknown model costs zero", func(t *testing.T) {
		cost := CostFor("some-unlisted-model", 5000, 5000)
		assert.True(t, cost.IsZero())
	})

	t.Run("zero tokens cost zero", func(t *testing.T) {
		cost := CostFor("gpt-4o", 0, 0)
		assert.True(t, cost.IsZero())
	})
}
