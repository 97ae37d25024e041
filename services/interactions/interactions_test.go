package interactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurabot/models"
)

func TestSaveInteraction_Validation(t *testing.T) {
	s := NewInteractionsService(nil, nil)

	_, err := s.SaveInteraction(context.Background(), "", "token", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord_id cannot be empty")

	_, err = s.SaveInteraction(context.Background(), "500000000000000001", "", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token cannot be empty")
}

func TestSaveResponse_Validation(t *testing.T) {
	s := NewInteractionsService(nil, nil)

	t.Run("rejects empty interaction id", func(t *testing.T) {
		_, err := s.SaveResponse(context.Background(), "", "{}", nil, []string{"page"})
		require.Error(t, err)
	})

	t.Run("rejects mixed page kinds", func(t *testing.T) {
		_, err := s.SaveResponse(
			context.Background(),
			"500000000000000001",
			"{}",
			[]models.Embed{{Description: "page"}},
			[]string{"page"},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "both embed and content pages")
	})

	t.Run("rejects empty page set", func(t *testing.T) {
		_, err := s.SaveResponse(context.Background(), "500000000000000001", "{}", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one page")
	})
}

func TestSetCurrentPage_Validation(t *testing.T) {
	s := NewInteractionsService(nil, nil)

	require.Error(t, s.SetCurrentPage(context.Background(), "", 0))
	require.Error(t, s.SetCurrentPage(context.Background(), "ir_1", -1))
}
