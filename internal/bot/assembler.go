package bot

import (
	"context"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
)

type GroupSource interface {
	GetSurveyGroupByName(ctx context.Context, name string) (*model.SurveyGroup, error)
}

type SurveySource interface {
	ListSurveysWithAnswers(ctx context.Context, groupID uint) ([]model.Survey, error)
}

type TypeSource interface {
	GetSurveyTypeByID(ctx context.Context, id uint) (*model.SurveyType, error)
}

// Assembler 把问卷组名解析为可发送的投票序列
type Assembler struct {
	groups  GroupSource
	surveys SurveySource
	types   TypeSource
}

func NewAssembler(groups GroupSource, surveys SurveySource, types TypeSource) *Assembler {
	return &Assembler{groups: groups, surveys: surveys, types: types}
}

// Build 找不到分组时返回包装了 util.ErrSurveyGroupNotFound 的错误；
// 分组没有可用题目时返回空序列而不是错误
func (a *Assembler) Build(ctx context.Context, groupName string) (*Survey, error) {
	group, err := a.groups.GetSurveyGroupByName(ctx, groupName)
	if err != nil {
		return nil, err
	}

	survey := &Survey{Name: group.Name, Polls: []Poll{}}

	questions, err := a.surveys.ListSurveysWithAnswers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return survey, nil
	}

	surveyType, err := a.types.GetSurveyTypeByID(ctx, group.SurveyTypeID)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("assembling survey",
		zap.String("group", group.Name),
		zap.Bool("quiz", surveyType.Quiz),
		zap.Bool("multipleChoice", surveyType.MultipleChoice),
		zap.Int("questions", len(questions)))

	for _, q := range questions {
		n := len(q.Answers)
		if n < util.MinPollOptions || n > util.MaxPollOptions {
			logger.Log.Warn("question skipped, unsupported option count",
				zap.Uint("surveyID", q.ID),
				zap.Int("options", n))
			continue
		}
		survey.Polls = append(survey.Polls, newPoll(q, surveyType))
	}
	return survey, nil
}

func newPoll(q model.Survey, surveyType *model.SurveyType) Poll {
	poll := Poll{
		SurveyID:       q.ID,
		Question:       q.Question,
		Options:        make([]Option, len(q.Answers)),
		MultipleChoice: surveyType.MultipleChoice,
		Quiz:           surveyType.Quiz,
	}
	for i, a := range q.Answers {
		poll.Options[i] = Option{AnswerID: a.ID, Text: a.Text, Correct: a.Correct}
		// 多个正确选项时以最后一个为准
		if surveyType.Quiz && a.Correct {
			poll.CorrectOption = i
		}
	}
	return poll
}
