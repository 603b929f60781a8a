package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"
	"survey_backend/pkg/monitoring"
	"survey_backend/pkg/tracing"

	"go.uber.org/zap"
)

// Update 入站事件，只有 TextMessage 和 PollAnswer 两种
type Update interface {
	isUpdate()
}

type TextMessage struct {
	Chat model.TelegramProfile
	Text string
}

// PollAnswer 按作答用户的 id 路由到会话
type PollAnswer struct {
	User      model.TelegramProfile
	OptionIDs []int
}

func (TextMessage) isUpdate() {}
func (PollAnswer) isUpdate()  {}

type PollRequest struct {
	Question             string
	Options              []string
	IsAnonymous          bool
	AllowMultipleAnswers bool
	Quiz                 bool
	CorrectOptionID      int
}

// Transport 出站消息通道
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPoll(ctx context.Context, chatID int64, req PollRequest) error
}

type SurveyBuilder interface {
	Build(ctx context.Context, groupName string) (*Survey, error)
}

type UserDirectory interface {
	ResolveTelegramUser(ctx context.Context, profile model.TelegramProfile) (*model.User, error)
}

type GroupLister interface {
	ListRecentSurveyGroups(ctx context.Context, limit int) ([]model.SurveyGroup, error)
}

type ResultRecorder interface {
	ResultExists(ctx context.Context, userID, surveyID uint) (bool, error)
	CreateResult(ctx context.Context, userID, surveyID uint, userResult string) (*model.Result, error)
}

// SurveyBot 会话控制器：同一聊天的事件串行处理，不同聊天互不阻塞
type SurveyBot struct {
	transport    Transport
	sessions     SessionStore
	surveys      SurveyBuilder
	users        UserDirectory
	groups       GroupLister
	results      ResultRecorder
	recentGroups int

	locks sync.Map // chatID -> *sync.Mutex
}

func NewSurveyBot(transport Transport, sessions SessionStore, surveys SurveyBuilder, users UserDirectory,
	groups GroupLister, results ResultRecorder, recentGroups int) *SurveyBot {
	return &SurveyBot{
		transport:    transport,
		sessions:     sessions,
		surveys:      surveys,
		users:        users,
		groups:       groups,
		results:      results,
		recentGroups: recentGroups,
	}
}

func (b *SurveyBot) lock(chatID int64) func() {
	m, _ := b.locks.LoadOrStore(chatID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (b *SurveyBot) HandleUpdate(ctx context.Context, u Update) {
	switch u := u.(type) {
	case TextMessage:
		monitoring.BotUpdates.WithLabelValues("text").Inc()
		ctx, span := tracing.StartBotSpan(ctx, "text", u.Chat.ID)
		defer span.End()
		defer b.lock(u.Chat.ID)()
		b.handleText(ctx, u)
	case PollAnswer:
		monitoring.BotUpdates.WithLabelValues("poll_answer").Inc()
		ctx, span := tracing.StartBotSpan(ctx, "poll_answer", u.User.ID)
		defer span.End()
		defer b.lock(u.User.ID)()
		b.handlePollAnswer(ctx, u)
	}
}

func (b *SurveyBot) send(ctx context.Context, chatID int64, text string) {
	if err := b.transport.SendText(ctx, chatID, text); err != nil {
		logger.Log.Error("failed to send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

// fail 记录错误并引导用户重新 /start
func (b *SurveyBot) fail(ctx context.Context, chatID int64, msg string, err error) {
	logger.Log.Error(msg, zap.Int64("chatID", chatID), zap.Error(err))
	b.send(ctx, chatID, msgSomethingWrong)
}

func (b *SurveyBot) handleText(ctx context.Context, m TextMessage) {
	chatID := m.Chat.ID
	text := strings.TrimSpace(m.Text)

	if text == cmdStart || text == cmdQuit {
		b.startSession(ctx, m.Chat)
		return
	}

	session, ok, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.fail(ctx, chatID, "failed to load session", err)
		return
	}
	if !ok {
		b.send(ctx, chatID, msgStartHint)
		return
	}
	if session.InProgress() {
		// 文本不保存答案，直接推进到下一道未答的题
		b.advance(ctx, session)
		return
	}
	b.selectSurvey(ctx, session, text)
}

func (b *SurveyBot) startSession(ctx context.Context, chat model.TelegramProfile) {
	user, err := b.users.ResolveTelegramUser(ctx, chat)
	if err != nil {
		b.fail(ctx, chat.ID, "failed to resolve telegram user", err)
		return
	}

	session := NewSession(chat.ID, user.ID)
	if err := b.sessions.Put(ctx, session); err != nil {
		b.fail(ctx, chat.ID, "failed to store session", err)
		return
	}
	logger.Log.Debug("session started", zap.Int64("chatID", chat.ID), zap.Uint("userID", user.ID))

	b.send(ctx, chat.ID, msgEnterSurveyName)

	groups, err := b.groups.ListRecentSurveyGroups(ctx, b.recentGroups)
	if err != nil {
		logger.Log.Warn("failed to list recent survey groups", zap.Error(err))
		return
	}
	if len(groups) == 0 {
		return
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	b.send(ctx, chat.ID, fmt.Sprintf(msgRecentSurveys, len(names)))
	b.send(ctx, chat.ID, strings.Join(names, ", "))
}

func (b *SurveyBot) answered(userID uint) answeredFunc {
	return func(ctx context.Context, surveyID uint) (bool, error) {
		return b.results.ResultExists(ctx, userID, surveyID)
	}
}

func (b *SurveyBot) selectSurvey(ctx context.Context, session *Session, name string) {
	chatID := session.ChatID
	survey, err := b.surveys.Build(ctx, name)
	if errors.Is(err, util.ErrSurveyGroupNotFound) {
		b.send(ctx, chatID, msgNoSuchSurvey)
		return
	}
	if err != nil {
		b.fail(ctx, chatID, "failed to assemble survey", err)
		return
	}
	if survey.Empty() {
		b.send(ctx, chatID, msgSurveyEmpty)
		return
	}

	cursor, err := firstPending(ctx, survey.Polls, 0, b.answered(session.UserID))
	if err != nil {
		b.fail(ctx, chatID, "failed to check answered questions", err)
		return
	}
	if cursor >= len(survey.Polls) {
		b.send(ctx, chatID, msgAlreadyAnswered)
		b.closeSession(ctx, session)
		b.send(ctx, chatID, msgChooseAnother)
		return
	}

	if err := session.Select(ctx, survey); err != nil {
		b.fail(ctx, chatID, "invalid session transition", err)
		return
	}
	session.Cursor = cursor
	logger.Log.Info("survey started",
		zap.Int64("chatID", chatID),
		zap.String("survey", survey.Name),
		zap.Int("polls", len(survey.Polls)),
		zap.Int("cursor", cursor))

	b.send(ctx, chatID, msgSurveyStarted)
	b.dispatch(ctx, session)
	b.save(ctx, session)
}

func (b *SurveyBot) handlePollAnswer(ctx context.Context, a PollAnswer) {
	chatID := a.User.ID

	session, ok, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.fail(ctx, chatID, "failed to load session", err)
		return
	}
	if !ok || !session.InProgress() {
		b.send(ctx, chatID, msgStartHint)
		return
	}

	// 撤回投票时 option_ids 为空
	if len(a.OptionIDs) == 0 {
		logger.Log.Debug("vote retracted, ignoring", zap.Int64("chatID", chatID))
		return
	}

	if poll, ok := session.LastDispatched(); ok {
		if err := b.recordAnswer(ctx, session, poll, a.OptionIDs); err != nil {
			b.fail(ctx, chatID, "failed to save result", err)
			return
		}
	}

	b.advance(ctx, session)
}

// advance 跳过已答的题，全部答完则结束会话，否则发送游标处的投票
func (b *SurveyBot) advance(ctx context.Context, session *Session) {
	chatID := session.ChatID
	if err := session.SkipAnswered(ctx, b.answered(session.UserID)); err != nil {
		b.fail(ctx, chatID, "failed to check answered questions", err)
		return
	}
	if session.Done() {
		b.send(ctx, chatID, msgAllAnswered)
		b.closeSession(ctx, session)
		b.send(ctx, chatID, msgChooseAnother)
		return
	}

	b.dispatch(ctx, session)
	b.save(ctx, session)
}

// recordAnswer 重复提交只记录日志；下标越界时不保存
func (b *SurveyBot) recordAnswer(ctx context.Context, session *Session, poll *Poll, optionIDs []int) error {
	ids, ok := poll.AnswerIDs(optionIDs)
	if !ok {
		logger.Log.Warn("poll answer out of range",
			zap.Int64("chatID", session.ChatID),
			zap.Uint("surveyID", poll.SurveyID),
			zap.Ints("optionIDs", optionIDs))
		monitoring.BotResultsSaved.WithLabelValues("invalid").Inc()
		return nil
	}

	_, err := b.results.CreateResult(ctx, session.UserID, poll.SurveyID, util.FormatResult(ids))
	if errors.Is(err, util.ErrResultExists) {
		logger.Log.Warn("duplicate poll answer ignored",
			zap.Uint("userID", session.UserID),
			zap.Uint("surveyID", poll.SurveyID))
		monitoring.BotResultsSaved.WithLabelValues("duplicate").Inc()
		return nil
	}
	if err != nil {
		monitoring.BotResultsSaved.WithLabelValues("error").Inc()
		return err
	}
	monitoring.BotResultsSaved.WithLabelValues("ok").Inc()
	return nil
}

// dispatch 发送游标处的投票，成功后游标加一；失败时游标不变
func (b *SurveyBot) dispatch(ctx context.Context, session *Session) {
	poll, ok := session.Current()
	if !ok {
		return
	}
	req := PollRequest{
		Question:             poll.Question,
		Options:              poll.OptionTexts(),
		IsAnonymous:          false,
		AllowMultipleAnswers: poll.MultipleChoice,
		Quiz:                 poll.Quiz,
		CorrectOptionID:      poll.CorrectOption,
	}
	if err := b.transport.SendPoll(ctx, session.ChatID, req); err != nil {
		logger.Log.Error("failed to send poll",
			zap.Int64("chatID", session.ChatID),
			zap.Uint("surveyID", poll.SurveyID),
			zap.Error(err))
		monitoring.BotPollsSent.WithLabelValues("error").Inc()
		b.send(ctx, session.ChatID, msgSomethingWrong)
		return
	}
	monitoring.BotPollsSent.WithLabelValues("ok").Inc()
	session.Cursor++
}

func (b *SurveyBot) save(ctx context.Context, session *Session) {
	if err := b.sessions.Put(ctx, session); err != nil {
		logger.Log.Error("failed to store session", zap.Int64("chatID", session.ChatID), zap.Error(err))
	}
}

func (b *SurveyBot) closeSession(ctx context.Context, session *Session) {
	if err := session.Finish(ctx); err != nil {
		logger.Log.Warn("invalid session transition", zap.Int64("chatID", session.ChatID), zap.Error(err))
	}
	if err := b.sessions.Remove(ctx, session.ChatID); err != nil {
		logger.Log.Error("failed to remove session", zap.Int64("chatID", session.ChatID), zap.Error(err))
	}
}
