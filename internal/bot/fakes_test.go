package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

// catalog 内存问卷目录，实现 GroupSource/SurveySource/TypeSource/GroupLister
type catalog struct {
	groups  []model.SurveyGroup
	surveys map[uint][]model.Survey
	types   map[uint]model.SurveyType
	nextID  uint
}

func newCatalog() *catalog {
	c := &catalog{surveys: map[uint][]model.Survey{}, types: map[uint]model.SurveyType{}}
	c.types[1] = model.SurveyType{Name: "single"}
	c.types[2] = model.SurveyType{Name: "multiple", MultipleChoice: true}
	c.types[3] = model.SurveyType{Name: "quiz", Quiz: true}
	return c
}

func (c *catalog) id() uint {
	c.nextID++
	return c.nextID
}

func (c *catalog) addGroup(name string, typeID uint) *model.SurveyGroup {
	g := model.SurveyGroup{Name: strings.ToLower(name), SurveyTypeID: typeID}
	g.ID = c.id()
	c.groups = append(c.groups, g)
	return &c.groups[len(c.groups)-1]
}

// addQuestion 选项文本以 * 开头表示正确答案
func (c *catalog) addQuestion(groupID uint, question string, options ...string) model.Survey {
	s := model.Survey{Question: question, SurveyGroupID: groupID}
	s.ID = c.id()
	for _, o := range options {
		a := model.Answer{Text: strings.TrimPrefix(o, "*"), Correct: strings.HasPrefix(o, "*"), SurveyID: s.ID}
		a.ID = c.id()
		s.Answers = append(s.Answers, a)
	}
	c.surveys[groupID] = append(c.surveys[groupID], s)
	return s
}

func (c *catalog) GetSurveyGroupByName(_ context.Context, name string) (*model.SurveyGroup, error) {
	for i := range c.groups {
		if c.groups[i].Name == strings.ToLower(strings.TrimSpace(name)) {
			return &c.groups[i], nil
		}
	}
	return nil, fmt.Errorf("survey group %q: %w", name, util.ErrSurveyGroupNotFound)
}

func (c *catalog) ListSurveysWithAnswers(_ context.Context, groupID uint) ([]model.Survey, error) {
	out := c.surveys[groupID]
	if out == nil {
		out = []model.Survey{}
	}
	return out, nil
}

func (c *catalog) GetSurveyTypeByID(_ context.Context, id uint) (*model.SurveyType, error) {
	t, ok := c.types[id]
	if !ok {
		return nil, util.ErrSurveyTypeNotFound
	}
	return &t, nil
}

func (c *catalog) ListRecentSurveyGroups(_ context.Context, limit int) ([]model.SurveyGroup, error) {
	out := make([]model.SurveyGroup, 0, limit)
	for i := len(c.groups) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, c.groups[i])
	}
	return out, nil
}

type directory struct {
	mu    sync.Mutex
	users map[int64]*model.User
}

func (d *directory) ResolveTelegramUser(_ context.Context, p model.TelegramProfile) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.users == nil {
		d.users = map[int64]*model.User{}
	}
	if u, ok := d.users[p.ID]; ok {
		return u, nil
	}
	u := &model.User{Username: p.LocalUsername(), TgFlag: true}
	u.ID = uint(len(d.users) + 1)
	d.users[p.ID] = u
	return u, nil
}

type resultKey struct{ user, survey uint }

type results struct {
	mu    sync.Mutex
	saved map[resultKey]string
}

func (r *results) ResultExists(_ context.Context, userID, surveyID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.saved[resultKey{userID, surveyID}]
	return ok, nil
}

func (r *results) CreateResult(_ context.Context, userID, surveyID uint, userResult string) (*model.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		r.saved = map[resultKey]string{}
	}
	k := resultKey{userID, surveyID}
	if _, ok := r.saved[k]; ok {
		return nil, util.ErrResultExists
	}
	r.saved[k] = userResult
	return &model.Result{UserID: userID, SurveyID: surveyID, UserResult: userResult}, nil
}

func (r *results) get(userID, surveyID uint) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.saved[resultKey{userID, surveyID}]
	return v, ok
}

type sentPoll struct {
	chatID int64
	req    PollRequest
}

// transport 记录所有出站消息
type transport struct {
	mu       sync.Mutex
	texts    map[int64][]string
	polls    []sentPoll
	failPoll bool
}

func (t *transport) SendText(_ context.Context, chatID int64, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.texts == nil {
		t.texts = map[int64][]string{}
	}
	t.texts[chatID] = append(t.texts[chatID], text)
	return nil
}

func (t *transport) SendPoll(_ context.Context, chatID int64, req PollRequest) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failPoll {
		return fmt.Errorf("telegram unavailable")
	}
	t.polls = append(t.polls, sentPoll{chatID: chatID, req: req})
	return nil
}

func (t *transport) lastText(chatID int64) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs := t.texts[chatID]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func (t *transport) allTexts(chatID int64) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.texts[chatID]...)
}

func (t *transport) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.texts = nil
	t.polls = nil
}

func (t *transport) pollQuestions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	qs := make([]string, len(t.polls))
	for i, p := range t.polls {
		qs[i] = p.req.Question
	}
	sort.Strings(qs)
	return qs
}
