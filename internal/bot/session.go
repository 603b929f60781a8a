package bot

import (
	"context"

	"github.com/looplab/fsm"
)

// 会话状态
const (
	StateIdle       = "idle"
	StateInProgress = "in_progress"
	StateCompleted  = "completed"
)

const (
	eventSelect = "select"
	eventFinish = "finish"
)

// Session 单个聊天的会话状态，可序列化后存入 redis
type Session struct {
	ChatID int64   `json:"chatId"`
	UserID uint    `json:"userId"`
	Survey *Survey `json:"survey,omitempty"`
	Cursor int     `json:"cursor"`
	State  string  `json:"state"`

	machine *fsm.FSM
}

func NewSession(chatID int64, userID uint) *Session {
	return &Session{ChatID: chatID, UserID: userID, State: StateIdle}
}

// stateMachine 反序列化后按 State 重建
func (s *Session) stateMachine() *fsm.FSM {
	if s.machine != nil && s.machine.Current() == s.State {
		return s.machine
	}
	if s.State == "" {
		s.State = StateIdle
	}
	s.machine = fsm.NewFSM(
		s.State,
		fsm.Events{
			{Name: eventSelect, Src: []string{StateIdle}, Dst: StateInProgress},
			{Name: eventFinish, Src: []string{StateIdle, StateInProgress}, Dst: StateCompleted},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.State = e.Dst
			},
		},
	)
	return s.machine
}

// Select 挂载问卷并进入答题状态
func (s *Session) Select(ctx context.Context, survey *Survey) error {
	if err := s.stateMachine().Event(ctx, eventSelect); err != nil {
		return err
	}
	s.Survey = survey
	return nil
}

func (s *Session) Finish(ctx context.Context) error {
	return s.stateMachine().Event(ctx, eventFinish)
}

func (s *Session) InProgress() bool {
	return s.State == StateInProgress && s.Survey != nil
}

type answeredFunc func(ctx context.Context, surveyID uint) (bool, error)

// firstPending 返回 from 之后第一个未作答题目的下标
func firstPending(ctx context.Context, polls []Poll, from int, answered answeredFunc) (int, error) {
	i := from
	for i < len(polls) {
		ok, err := answered(ctx, polls[i].SurveyID)
		if err != nil {
			return i, err
		}
		if !ok {
			break
		}
		i++
	}
	return i, nil
}

// SkipAnswered 从游标开始跳过已作答的题目
func (s *Session) SkipAnswered(ctx context.Context, answered answeredFunc) error {
	if s.Survey == nil {
		return nil
	}
	cursor, err := firstPending(ctx, s.Survey.Polls, s.Cursor, answered)
	s.Cursor = cursor
	return err
}

// Done 所有题目都已发送或已作答
func (s *Session) Done() bool {
	return s.Survey != nil && s.Cursor >= len(s.Survey.Polls)
}

// LastDispatched 最近一次发送的投票，即游标前一题
func (s *Session) LastDispatched() (*Poll, bool) {
	if s.Survey == nil {
		return nil, false
	}
	i := s.Cursor - 1
	if i < 0 || i >= len(s.Survey.Polls) {
		return nil, false
	}
	return &s.Survey.Polls[i], true
}

// Current 游标处待发送的投票
func (s *Session) Current() (*Poll, bool) {
	if s.Survey == nil || s.Cursor < 0 || s.Cursor >= len(s.Survey.Polls) {
		return nil, false
	}
	return &s.Survey.Polls[s.Cursor], true
}
