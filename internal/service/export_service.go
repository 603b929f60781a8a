package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportService 把一个问卷组的答题结果导出为 CSV
type ExportService struct {
	Groups   *SurveyGroupService
	Surveys  SurveyStore
	Results  ResultStore
	Users    UserStore
	Provider StorageProvider
}

func NewExportService(groups *SurveyGroupService, surveys SurveyStore, results ResultStore, users UserStore, provider StorageProvider) *ExportService {
	return &ExportService{Groups: groups, Surveys: surveys, Results: results, Users: users, Provider: provider}
}

var exportHeader = []string{"survey_id", "question", "user_id", "username", "answer_ids", "answers", "correct"}

// ExportGroupResults 返回上传后的文件地址
func (s *ExportService) ExportGroupResults(ctx context.Context, groupName string) (string, error) {
	if s.Provider == nil {
		return "", util.ErrStorageNotConfigured
	}
	group, err := s.Groups.GetSurveyGroupByName(ctx, groupName)
	if err != nil {
		return "", err
	}

	data, rows, err := s.buildCSV(ctx, group)
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", fmt.Errorf("group %q: %w", group.Name, util.ErrExportEmpty)
	}

	filename := fmt.Sprintf("results/%d-%s-%s.csv", group.ID, time.Now().Format("20060102150405"), uuid.NewString()[:8])
	if err := s.Provider.Put(ctx, filename, bytes.NewReader(data), int64(len(data)), util.MimeCSV); err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}
	url, err := s.Provider.Link(ctx, filename)
	if err != nil {
		return "", fmt.Errorf("link export: %w", err)
	}
	logger.Log.Info("results exported",
		zap.String("group", group.Name),
		zap.Int("rows", rows),
		zap.String("url", url))
	return url, nil
}

func (s *ExportService) buildCSV(ctx context.Context, group *model.SurveyGroup) ([]byte, int, error) {
	surveys, err := s.Surveys.FindByGroupID(ctx, group.ID, true)
	if err != nil {
		return nil, 0, err
	}
	surveyByID := make(map[uint]*model.Survey, len(surveys))
	answerByID := make(map[uint]model.Answer)
	for i := range surveys {
		surveyByID[surveys[i].ID] = &surveys[i]
		for _, a := range surveys[i].Answers {
			answerByID[a.ID] = a
		}
	}

	results, err := s.Results.FindByGroupID(ctx, group.ID)
	if err != nil {
		return nil, 0, err
	}

	usernames := make(map[uint]string)
	written := 0
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, 0, err
	}

	for _, r := range results {
		survey, ok := surveyByID[r.SurveyID]
		if !ok {
			continue
		}
		username, ok := usernames[r.UserID]
		if !ok {
			if u, err := s.Users.FindByID(ctx, r.UserID); err == nil {
				username = u.Username
			}
			usernames[r.UserID] = username
		}

		ids, err := util.ParseResult(r.UserResult)
		if err != nil {
			logger.Log.Warn("skipping malformed result", zap.Uint("resultID", r.ID), zap.Error(err))
			continue
		}
		texts := make([]string, 0, len(ids))
		correct := len(ids) > 0
		for _, id := range ids {
			a, ok := answerByID[id]
			if !ok {
				correct = false
				continue
			}
			texts = append(texts, a.Text)
			correct = correct && a.Correct
		}

		record := []string{
			strconv.FormatUint(uint64(survey.ID), 10),
			survey.Question,
			strconv.FormatUint(uint64(r.UserID), 10),
			username,
			r.UserResult,
			strings.Join(texts, "; "),
			strconv.FormatBool(correct),
		}
		if err := w.Write(record); err != nil {
			return nil, 0, err
		}
		written++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), written, nil
}
