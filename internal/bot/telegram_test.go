package bot

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertUpdate(t *testing.T) {
	u, ok := ConvertUpdate(&models.Update{Message: &models.Message{
		Chat: models.Chat{ID: 11, FirstName: "Ann", LastName: "Lee", Username: "annlee"},
		Text: "/start",
	}})
	require.True(t, ok)
	msg, ok := u.(TextMessage)
	require.True(t, ok)
	assert.Equal(t, int64(11), msg.Chat.ID)
	assert.Equal(t, "annlee", msg.Chat.Username)
	assert.Equal(t, "/start", msg.Text)

	u, ok = ConvertUpdate(&models.Update{PollAnswer: &models.PollAnswer{
		User:      &models.User{ID: 11, FirstName: "Ann"},
		OptionIDs: []int{0, 2},
	}})
	require.True(t, ok)
	answer, ok := u.(PollAnswer)
	require.True(t, ok)
	assert.Equal(t, int64(11), answer.User.ID)
	assert.Equal(t, []int{0, 2}, answer.OptionIDs)

	_, ok = ConvertUpdate(&models.Update{Message: &models.Message{Chat: models.Chat{ID: 1}}})
	assert.False(t, ok)
	_, ok = ConvertUpdate(&models.Update{})
	assert.False(t, ok)
	_, ok = ConvertUpdate(nil)
	assert.False(t, ok)
}

func TestNewSendPollParams(t *testing.T) {
	params := NewSendPollParams(5, PollRequest{
		Question:        "2+2=?",
		Options:         []string{"3", "4"},
		Quiz:            true,
		CorrectOptionID: 1,
	})
	assert.Equal(t, int64(5), params.ChatID)
	require.Len(t, params.Options, 2)
	assert.Equal(t, "4", params.Options[1].Text)
	require.NotNil(t, params.IsAnonymous)
	assert.False(t, *params.IsAnonymous)
	assert.Equal(t, "quiz", params.Type)
	assert.Equal(t, 1, params.CorrectOptionID)
	assert.False(t, params.AllowsMultipleAnswers)

	params = NewSendPollParams(5, PollRequest{Question: "q", Options: []string{"a", "b"}, AllowMultipleAnswers: true})
	assert.Empty(t, params.Type)
	assert.True(t, params.AllowsMultipleAnswers)
}
