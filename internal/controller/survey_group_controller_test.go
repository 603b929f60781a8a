package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"survey_backend/internal/model"
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type groupStore struct {
	groups []model.SurveyGroup
}

func (s *groupStore) FindAll(context.Context) ([]model.SurveyGroup, error) { return s.groups, nil }

func (s *groupStore) FindRecent(_ context.Context, limit int) ([]model.SurveyGroup, error) {
	return s.groups, nil
}

func (s *groupStore) FindByName(_ context.Context, name string) (*model.SurveyGroup, error) {
	for i := range s.groups {
		if s.groups[i].Name == name {
			return &s.groups[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *groupStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := s.FindByName(ctx, name)
	return err == nil, nil
}

func (s *groupStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	for _, g := range s.groups {
		if g.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *groupStore) Create(_ context.Context, g *model.SurveyGroup) error {
	g.ID = uint(len(s.groups) + 1)
	s.groups = append(s.groups, *g)
	return nil
}

func (s *groupStore) Update(context.Context, *model.SurveyGroup) error { return nil }

func (s *groupStore) Delete(_ context.Context, id uint) error {
	kept := s.groups[:0]
	for _, g := range s.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.groups = kept
	return nil
}

type typeStore struct{}

func (typeStore) FindAll(context.Context) ([]model.SurveyType, error) { return nil, nil }

func (typeStore) FindByID(_ context.Context, id uint) (*model.SurveyType, error) {
	if id != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.SurveyType{Name: "single"}, nil
}

func (typeStore) FindByFlags(context.Context, bool, bool) (*model.SurveyType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (typeStore) ExistsByID(_ context.Context, id uint) (bool, error) { return id == 1, nil }

func newGroupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewSurveyGroupController(service.NewSurveyGroupService(&groupStore{}, typeStore{}))
	r := gin.New()
	r.GET("/survey-group", c.ListSurveyGroups)
	r.GET("/survey-group/:name", c.GetSurveyGroup)
	r.POST("/survey-group", c.CreateSurveyGroup)
	r.DELETE("/survey-group/:name", c.DeleteSurveyGroup)
	return r
}

func request(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSurveyGroupController(t *testing.T) {
	r := newGroupRouter()

	w := request(r, http.MethodPost, "/survey-group", `{"surveyGroupName":"Quiz1","surveyTypeId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Code)

	assert.Equal(t, http.StatusConflict, request(r, http.MethodPost, "/survey-group", `{"surveyGroupName":"quiz1","surveyTypeId":1}`).Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodPost, "/survey-group", `{"surveyGroupName":"x","surveyTypeId":7}`).Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/survey-group", `{"surveyTypeId":1}`).Code)

	w = request(r, http.MethodGet, "/survey-group/QUIZ1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"surveyGroupName":"quiz1"`)

	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/survey-group/missing", "").Code)
	assert.Equal(t, http.StatusNoContent, request(r, http.MethodDelete, "/survey-group/quiz1", "").Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodDelete, "/survey-group/quiz1", "").Code)
}
