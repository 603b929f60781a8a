package bot

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"survey_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chat int64 = 100

type fixture struct {
	catalog   *catalog
	users     *directory
	results   *results
	transport *transport
	store     *MemoryStore
	bot       *SurveyBot
}

func newFixture() *fixture {
	f := &fixture{
		catalog:   newCatalog(),
		users:     &directory{},
		results:   &results{},
		transport: &transport{},
		store:     NewMemoryStore(),
	}
	f.bot = NewSurveyBot(f.transport, f.store, NewAssembler(f.catalog, f.catalog, f.catalog),
		f.users, f.catalog, f.results, 3)
	return f
}

func (f *fixture) text(s string) {
	f.bot.HandleUpdate(context.Background(), TextMessage{Chat: model.TelegramProfile{ID: chat, FirstName: "Ann"}, Text: s})
}

func (f *fixture) answer(options ...int) {
	f.bot.HandleUpdate(context.Background(), PollAnswer{User: model.TelegramProfile{ID: chat}, OptionIDs: options})
}

func (f *fixture) session(t *testing.T) *Session {
	t.Helper()
	s, ok, err := f.store.Get(context.Background(), chat)
	require.NoError(t, err)
	require.True(t, ok)
	return s
}

func (f *fixture) hasSession() bool {
	_, ok, _ := f.store.Get(context.Background(), chat)
	return ok
}

func TestSurveyBot_StartShowsRecentGroups(t *testing.T) {
	f := newFixture()
	f.text("/start")
	assert.Equal(t, []string{msgEnterSurveyName}, f.transport.allTexts(chat))

	for _, name := range []string{"a", "b", "c", "d"} {
		f.catalog.addGroup(name, 1)
	}
	f.transport.reset()
	f.text("/start")
	assert.Equal(t, []string{msgEnterSurveyName, "Последние 3 созданных опроса:", "d, c, b"}, f.transport.allTexts(chat))

	s := f.session(t)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 0, s.Cursor)
	assert.Nil(t, s.Survey)
}

func TestSurveyBot_TextWithoutSession(t *testing.T) {
	f := newFixture()
	f.text("hello")
	assert.Equal(t, msgStartHint, f.transport.lastText(chat))

	f.answer(0)
	assert.Equal(t, msgStartHint, f.transport.lastText(chat))
}

func TestSurveyBot_UnknownAndEmptySurvey(t *testing.T) {
	f := newFixture()
	f.catalog.addGroup("Empty1", 1)
	f.text("/start")

	f.text("missing")
	assert.Equal(t, msgNoSuchSurvey, f.transport.lastText(chat))
	assert.Equal(t, StateIdle, f.session(t).State)

	f.text("Empty1")
	assert.Equal(t, msgSurveyEmpty, f.transport.lastText(chat))
	assert.Equal(t, StateIdle, f.session(t).State)

	// 空问卷后仍可输入其他名字
	g := f.catalog.addGroup("real", 1)
	f.catalog.addQuestion(g.ID, "q", "a", "b")
	f.text("real")
	assert.True(t, f.session(t).InProgress())
}

func TestSurveyBot_FullQuiz(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("Quiz1", 3)
	q1 := f.catalog.addQuestion(g.ID, "2+2=?", "3", "*4", "5")
	q2 := f.catalog.addQuestion(g.ID, "3*3=?", "*9", "6")

	f.text("/start")
	f.text("quiz1")
	assert.Contains(t, f.transport.allTexts(chat), msgSurveyStarted)
	require.Len(t, f.transport.polls, 1)
	first := f.transport.polls[0].req
	assert.Equal(t, "2+2=?", first.Question)
	assert.Equal(t, []string{"3", "4", "5"}, first.Options)
	assert.True(t, first.Quiz)
	assert.Equal(t, 1, first.CorrectOptionID)
	assert.False(t, first.IsAnonymous)
	assert.Equal(t, 1, f.session(t).Cursor)

	f.answer(1)
	user := f.users.users[chat]
	saved, ok := f.results.get(user.ID, q1.ID)
	require.True(t, ok)
	assert.Equal(t, "["+itoa(q1.Answers[1].ID)+"]", saved)
	require.Len(t, f.transport.polls, 2)
	assert.Equal(t, 2, f.session(t).Cursor)

	f.answer(0)
	saved, ok = f.results.get(user.ID, q2.ID)
	require.True(t, ok)
	assert.Equal(t, "["+itoa(q2.Answers[0].ID)+"]", saved)

	texts := f.transport.allTexts(chat)
	assert.Equal(t, []string{msgAllAnswered, msgChooseAnother}, texts[len(texts)-2:])
	assert.False(t, f.hasSession())

	// 会话结束后需要重新 /start
	f.answer(0)
	assert.Equal(t, msgStartHint, f.transport.lastText(chat))
	f.text("quiz1")
	assert.Equal(t, msgStartHint, f.transport.lastText(chat))
}

func TestSurveyBot_SkipsAnsweredQuestions(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("three", 1)
	q1 := f.catalog.addQuestion(g.ID, "q1", "a", "b")
	f.catalog.addQuestion(g.ID, "q2", "a", "b")
	f.catalog.addQuestion(g.ID, "q3", "a", "b")

	f.text("/start")
	user := f.users.users[chat]
	_, err := f.results.CreateResult(context.Background(), user.ID, q1.ID, "[1]")
	require.NoError(t, err)

	f.text("three")
	require.Len(t, f.transport.polls, 1)
	assert.Equal(t, "q2", f.transport.polls[0].req.Question)
	assert.Equal(t, 2, f.session(t).Cursor)
}

func TestSurveyBot_AlreadyCompletedSurvey(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("done", 1)
	q := f.catalog.addQuestion(g.ID, "q", "a", "b")

	f.text("/start")
	user := f.users.users[chat]
	_, err := f.results.CreateResult(context.Background(), user.ID, q.ID, "[1]")
	require.NoError(t, err)

	f.text("done")
	texts := f.transport.allTexts(chat)
	assert.Equal(t, []string{msgAlreadyAnswered, msgChooseAnother}, texts[len(texts)-2:])
	assert.Empty(t, f.transport.polls)
	assert.False(t, f.hasSession())
}

func TestSurveyBot_MultipleChoiceAndInvalidAnswers(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("multi", 2)
	q := f.catalog.addQuestion(g.ID, "pick", "a", "b", "c")
	f.catalog.addQuestion(g.ID, "next", "x", "y")

	f.text("/start")
	f.text("multi")
	assert.True(t, f.transport.polls[0].req.AllowMultipleAnswers)
	user := f.users.users[chat]

	// 越界下标不保存，但仍继续下一题
	f.answer(7)
	_, ok := f.results.get(user.ID, q.ID)
	assert.False(t, ok)
	assert.Len(t, f.transport.polls, 2)

	f.transport.reset()
	f.text("/quit")
	f.text("multi")
	require.Len(t, f.transport.polls, 1)
	assert.Equal(t, "pick", f.transport.polls[0].req.Question)
	f.answer(2, 0)
	saved, ok := f.results.get(user.ID, q.ID)
	require.True(t, ok)
	assert.Equal(t, "["+itoa(q.Answers[2].ID)+", "+itoa(q.Answers[0].ID)+"]", saved)
}

func TestSurveyBot_RetractedVoteIgnored(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("g", 1)
	f.catalog.addQuestion(g.ID, "q1", "a", "b")
	f.catalog.addQuestion(g.ID, "q2", "a", "b")

	f.text("/start")
	f.text("g")
	f.answer()
	assert.Len(t, f.transport.polls, 1)
	assert.Equal(t, 1, f.session(t).Cursor)
}

func TestSurveyBot_PollSendFailureKeepsCursor(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("g", 1)
	f.catalog.addQuestion(g.ID, "q1", "a", "b")
	f.transport.failPoll = true

	f.text("/start")
	f.text("g")
	s := f.session(t)
	assert.True(t, s.InProgress())
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, msgSomethingWrong, f.transport.lastText(chat))

	// 恢复后任意文本会重发同一道题
	f.transport.failPoll = false
	f.text("hello")
	require.Len(t, f.transport.polls, 1)
	assert.Equal(t, "q1", f.transport.polls[0].req.Question)
	assert.Equal(t, 1, f.session(t).Cursor)
}

func TestSurveyBot_TextSkipsCurrentQuestion(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("g", 1)
	q1 := f.catalog.addQuestion(g.ID, "q1", "a", "b")
	f.catalog.addQuestion(g.ID, "q2", "a", "b")

	f.text("/start")
	f.text("g")
	require.Len(t, f.transport.polls, 1)

	f.text("some text")
	require.Len(t, f.transport.polls, 2)
	assert.Equal(t, "q2", f.transport.polls[1].req.Question)
	assert.Equal(t, 2, f.session(t).Cursor)
	_, ok := f.results.get(f.users.users[chat].ID, q1.ID)
	assert.False(t, ok)

	// 最后一题也被跳过时结束会话
	f.text("again")
	assert.Len(t, f.transport.polls, 2)
	texts := f.transport.allTexts(chat)
	assert.Equal(t, []string{msgAllAnswered, msgChooseAnother}, texts[len(texts)-2:])
	assert.False(t, f.hasSession())
}

func TestSurveyBot_StartReplacesSession(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("g", 1)
	f.catalog.addQuestion(g.ID, "q1", "a", "b")
	f.text("/start")
	f.text("g")
	require.True(t, f.session(t).InProgress())

	f.text("/start")
	s := f.session(t)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 0, s.Cursor)
	assert.Nil(t, s.Survey)
}

func TestSurveyBot_ConcurrentChats(t *testing.T) {
	f := newFixture()
	g := f.catalog.addGroup("g", 1)
	f.catalog.addQuestion(g.ID, "q1", "a", "b")

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			ctx := context.Background()
			f.bot.HandleUpdate(ctx, TextMessage{Chat: model.TelegramProfile{ID: id}, Text: "/start"})
			f.bot.HandleUpdate(ctx, TextMessage{Chat: model.TelegramProfile{ID: id}, Text: "g"})
			f.bot.HandleUpdate(ctx, PollAnswer{User: model.TelegramProfile{ID: id}, OptionIDs: []int{0}})
		}(i)
	}
	wg.Wait()

	assert.Len(t, f.transport.pollQuestions(), 20)
	for i := int64(1); i <= 20; i++ {
		assert.Equal(t, msgChooseAnother, f.transport.lastText(i))
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
