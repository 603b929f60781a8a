package bot

import (
	"context"
	"testing"

	"survey_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("quiz group", func(t *testing.T) {
		c := newCatalog()
		g := c.addGroup("Quiz1", 3)
		q := c.addQuestion(g.ID, "2+2=?", "3", "*4", "5")

		survey, err := NewAssembler(c, c, c).Build(ctx, "Quiz1")
		require.NoError(t, err)
		require.Len(t, survey.Polls, 1)

		poll := survey.Polls[0]
		assert.Equal(t, q.ID, poll.SurveyID)
		assert.True(t, poll.Quiz)
		assert.False(t, poll.MultipleChoice)
		assert.Equal(t, 1, poll.CorrectOption)
		assert.Equal(t, []string{"3", "4", "5"}, poll.OptionTexts())
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := NewAssembler(newCatalog(), newCatalog(), newCatalog()).Build(ctx, "nope")
		assert.ErrorIs(t, err, util.ErrSurveyGroupNotFound)
	})

	t.Run("group without surveys", func(t *testing.T) {
		c := newCatalog()
		c.addGroup("Empty1", 1)
		survey, err := NewAssembler(c, c, c).Build(ctx, "Empty1")
		require.NoError(t, err)
		assert.NotNil(t, survey.Polls)
		assert.True(t, survey.Empty())
	})

	t.Run("unsupported option counts are skipped", func(t *testing.T) {
		c := newCatalog()
		g := c.addGroup("mixed", 2)
		c.addQuestion(g.ID, "one option", "only")
		c.addQuestion(g.ID, "no options")
		c.addQuestion(g.ID, "eleven", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11")
		c.addQuestion(g.ID, "two", "a", "b")
		c.addQuestion(g.ID, "ten", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10")

		survey, err := NewAssembler(c, c, c).Build(ctx, "MIXED")
		require.NoError(t, err)
		require.Len(t, survey.Polls, 2)
		assert.Equal(t, "two", survey.Polls[0].Question)
		assert.Equal(t, "ten", survey.Polls[1].Question)
		assert.True(t, survey.Polls[0].MultipleChoice)
	})

	t.Run("only a single-option question", func(t *testing.T) {
		c := newCatalog()
		g := c.addGroup("single", 1)
		c.addQuestion(g.ID, "lonely", "yes")
		survey, err := NewAssembler(c, c, c).Build(ctx, "single")
		require.NoError(t, err)
		assert.Empty(t, survey.Polls)
		assert.NotNil(t, survey.Polls)
	})

	t.Run("last correct option wins", func(t *testing.T) {
		c := newCatalog()
		g := c.addGroup("ambiguous", 3)
		c.addQuestion(g.ID, "pick", "*a", "b", "*c")
		survey, err := NewAssembler(c, c, c).Build(ctx, "ambiguous")
		require.NoError(t, err)
		assert.Equal(t, 2, survey.Polls[0].CorrectOption)
	})
}

func TestPoll_AnswerIDsRoundTrip(t *testing.T) {
	c := newCatalog()
	g := c.addGroup("g", 2)
	q := c.addQuestion(g.ID, "q", "a", "b", "c", "d")
	survey, err := NewAssembler(c, c, c).Build(context.Background(), "g")
	require.NoError(t, err)
	poll := survey.Polls[0]

	for i, a := range q.Answers {
		ids, ok := poll.AnswerIDs([]int{i})
		require.True(t, ok)
		assert.Equal(t, []uint{a.ID}, ids)
		assert.Equal(t, a.Text, poll.Options[i].Text)
	}

	ids, ok := poll.AnswerIDs([]int{3, 0})
	require.True(t, ok)
	assert.Equal(t, []uint{q.Answers[3].ID, q.Answers[0].ID}, ids)

	_, ok = poll.AnswerIDs([]int{4})
	assert.False(t, ok)
	_, ok = poll.AnswerIDs([]int{-1})
	assert.False(t, ok)
}
