package seed

import (
	"context"
	"errors"
	"fmt"
	"survey_backend/internal/model"
	"survey_backend/internal/service"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixture 以 YAML 描述的一组问卷，用于演示数据和手工导入
type Fixture struct {
	Groups []GroupFixture `yaml:"groups"`
}

type GroupFixture struct {
	Name         string            `yaml:"name"`
	SurveyTypeID uint              `yaml:"survey_type_id"`
	Questions    []QuestionFixture `yaml:"questions"`
}

type QuestionFixture struct {
	Text    string          `yaml:"text"`
	Answers []AnswerFixture `yaml:"answers"`
}

type AnswerFixture struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, g := range f.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("%w: group #%d has no name", util.ErrValidation, i+1)
		}
	}
	return &f, nil
}

type GroupCreator interface {
	CreateSurveyGroup(ctx context.Context, in service.SurveyGroupInput) (*model.SurveyGroup, error)
}

type SurveyCreator interface {
	CreateSurvey(ctx context.Context, groupID uint, in service.SurveyInput) (*model.Survey, error)
}

type AnswerCreator interface {
	CreateAnswer(ctx context.Context, in service.AnswerInput) (*model.Answer, error)
}

type Importer struct {
	Groups  GroupCreator
	Surveys SurveyCreator
	Answers AnswerCreator
}

// Import 逐组写入；同名分组已存在时跳过整组，返回新建的分组数
func (im *Importer) Import(ctx context.Context, f *Fixture) (int, error) {
	created := 0
	for _, g := range f.Groups {
		group, err := im.Groups.CreateSurveyGroup(ctx, service.SurveyGroupInput{Name: g.Name, SurveyTypeID: g.SurveyTypeID})
		if errors.Is(err, util.ErrSurveyGroupExists) {
			logger.Log.Info("fixture group already exists, skipped", zap.String("name", g.Name))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("group %q: %w", g.Name, err)
		}

		for _, q := range g.Questions {
			survey, err := im.Surveys.CreateSurvey(ctx, group.ID, service.SurveyInput{Question: q.Text, SurveyTypeID: g.SurveyTypeID})
			if err != nil {
				return created, fmt.Errorf("group %q question %q: %w", g.Name, q.Text, err)
			}
			for _, a := range q.Answers {
				in := service.AnswerInput{Text: a.Text, Correct: a.Correct, SurveyID: survey.ID}
				if _, err := im.Answers.CreateAnswer(ctx, in); err != nil {
					return created, fmt.Errorf("question %q answer %q: %w", q.Text, a.Text, err)
				}
			}
		}
		created++
	}
	return created, nil
}
