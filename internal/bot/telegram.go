package bot

import (
	"context"
	"survey_backend/internal/model"
	"survey_backend/pkg/logger"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UpdateHandler 由 SurveyBot 实现
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, u Update)
}

// Telegram 基于 go-telegram/bot 的 Transport 实现，使用长轮询接收更新
type Telegram struct {
	client  *tgbot.Bot
	handler UpdateHandler
}

func NewTelegram(token string, opts ...tgbot.Option) (*Telegram, error) {
	t := &Telegram{}
	opts = append([]tgbot.Option{
		tgbot.WithDefaultHandler(t.onUpdate),
		tgbot.WithAllowedUpdates(tgbot.AllowedUpdates{"message", "poll_answer"}),
	}, opts...)

	client, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, err
	}
	t.client = client
	return t, nil
}

// Start 阻塞直到 ctx 取消
func (t *Telegram) Start(ctx context.Context, handler UpdateHandler) {
	t.handler = handler
	logger.Log.Info("telegram bot polling started")
	t.client.Start(ctx)
	logger.Log.Info("telegram bot polling stopped")
}

func (t *Telegram) onUpdate(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	if t.handler == nil {
		return
	}
	u, ok := ConvertUpdate(update)
	if !ok {
		return
	}
	t.handler.HandleUpdate(ctx, u)
}

func (t *Telegram) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := t.client.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (t *Telegram) SendPoll(ctx context.Context, chatID int64, req PollRequest) error {
	_, err := t.client.SendPoll(ctx, NewSendPollParams(chatID, req))
	if err != nil {
		logger.Log.Debug("telegram sendPoll failed", zap.Int64("chatID", chatID), zap.String("question", req.Question))
	}
	return err
}

// NewSendPollParams 把 PollRequest 转成 Telegram API 参数
func NewSendPollParams(chatID int64, req PollRequest) *tgbot.SendPollParams {
	options := make([]models.InputPollOption, len(req.Options))
	for i, o := range req.Options {
		options[i] = models.InputPollOption{Text: o}
	}
	params := &tgbot.SendPollParams{
		ChatID:                chatID,
		Question:              req.Question,
		Options:               options,
		AllowsMultipleAnswers: req.AllowMultipleAnswers,
	}
	if req.IsAnonymous {
		params.IsAnonymous = tgbot.True()
	} else {
		params.IsAnonymous = tgbot.False()
	}
	if req.Quiz {
		params.Type = "quiz"
		params.CorrectOptionID = req.CorrectOptionID
	}
	return params
}

// ConvertUpdate 只识别文本消息和投票作答，其余更新忽略
func ConvertUpdate(update *models.Update) (Update, bool) {
	if update == nil {
		return nil, false
	}
	if m := update.Message; m != nil && m.Text != "" {
		return TextMessage{
			Chat: model.TelegramProfile{
				ID:        m.Chat.ID,
				FirstName: m.Chat.FirstName,
				LastName:  m.Chat.LastName,
				Username:  m.Chat.Username,
			},
			Text: m.Text,
		}, true
	}
	if a := update.PollAnswer; a != nil && a.User != nil {
		return PollAnswer{
			User: model.TelegramProfile{
				ID:        a.User.ID,
				FirstName: a.User.FirstName,
				LastName:  a.User.LastName,
				Username:  a.User.Username,
			},
			OptionIDs: a.OptionIDs,
		}, true
	}
	return nil, false
}
