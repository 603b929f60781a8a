package service

import (
	"context"
	"io"
	"sort"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

// 内存实现的 store，供 service 测试使用

type memUsers struct {
	seq   uint
	users map[uint]*model.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[uint]*model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.seq++
	u.ID = m.seq
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) FindAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint, hashed string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashed
	return nil
}

func (m *memUsers) AddRole(_ context.Context, user *model.User, role *model.Role) error {
	m.users[user.ID].Roles = append(m.users[user.ID].Roles, *role)
	return nil
}

func (m *memUsers) RemoveRole(_ context.Context, user *model.User, role *model.Role) error {
	u := m.users[user.ID]
	kept := u.Roles[:0]
	for _, r := range u.Roles {
		if r.Name != role.Name {
			kept = append(kept, r)
		}
	}
	u.Roles = kept
	return nil
}

func (m *memUsers) Delete(_ context.Context, user *model.User) error {
	delete(m.users, user.ID)
	return nil
}

type memRoles struct {
	seq   uint
	roles map[string]*model.Role
}

func newMemRoles(names ...string) *memRoles {
	m := &memRoles{roles: map[string]*model.Role{}}
	for _, n := range names {
		m.Create(context.Background(), &model.Role{Name: n})
	}
	return m
}

func (m *memRoles) FindByName(_ context.Context, name string) (*model.Role, error) {
	r, ok := m.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *memRoles) Create(_ context.Context, role *model.Role) error {
	m.seq++
	role.ID = m.seq
	m.roles[role.Name] = role
	return nil
}

func (m *memRoles) FindOrCreate(ctx context.Context, name string) (*model.Role, error) {
	if r, ok := m.roles[name]; ok {
		return r, nil
	}
	r := &model.Role{Name: name}
	return r, m.Create(ctx, r)
}

type memTypes struct {
	types []model.SurveyType
}

func newMemTypes() *memTypes {
	t := &memTypes{}
	for i, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
		st := model.SurveyType{MultipleChoice: flags[0], Quiz: flags[1]}
		st.ID = uint(i + 1)
		t.types = append(t.types, st)
	}
	return t
}

func (m *memTypes) FindAll(_ context.Context) ([]model.SurveyType, error) { return m.types, nil }

func (m *memTypes) FindByID(_ context.Context, id uint) (*model.SurveyType, error) {
	for i := range m.types {
		if m.types[i].ID == id {
			return &m.types[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memTypes) FindByFlags(_ context.Context, multipleChoice, quiz bool) (*model.SurveyType, error) {
	for i := range m.types {
		if m.types[i].MultipleChoice == multipleChoice && m.types[i].Quiz == quiz {
			return &m.types[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memTypes) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

type memGroups struct {
	seq    uint
	groups []model.SurveyGroup
}

func (m *memGroups) FindAll(_ context.Context) ([]model.SurveyGroup, error) { return m.groups, nil }

func (m *memGroups) FindRecent(_ context.Context, limit int) ([]model.SurveyGroup, error) {
	out := make([]model.SurveyGroup, 0, limit)
	for i := len(m.groups) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.groups[i])
	}
	return out, nil
}

func (m *memGroups) FindByName(_ context.Context, name string) (*model.SurveyGroup, error) {
	for i := range m.groups {
		if m.groups[i].Name == name {
			cp := m.groups[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memGroups) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := m.FindByName(ctx, name)
	return err == nil, nil
}

func (m *memGroups) ExistsByID(_ context.Context, id uint) (bool, error) {
	for _, g := range m.groups {
		if g.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memGroups) Create(_ context.Context, g *model.SurveyGroup) error {
	m.seq++
	g.ID = m.seq
	m.groups = append(m.groups, *g)
	return nil
}

func (m *memGroups) Update(_ context.Context, g *model.SurveyGroup) error {
	for i := range m.groups {
		if m.groups[i].ID == g.ID {
			m.groups[i] = *g
		}
	}
	return nil
}

func (m *memGroups) Delete(_ context.Context, id uint) error {
	kept := m.groups[:0]
	for _, g := range m.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	m.groups = kept
	return nil
}

type memSurveys struct {
	seq     uint
	surveys []model.Survey
	answers *memAnswers
}

func (m *memSurveys) withAnswers(s model.Survey) model.Survey {
	if m.answers != nil {
		s.Answers, _ = m.answers.FindBySurveyID(context.Background(), s.ID)
	}
	return s
}

func (m *memSurveys) FindByGroupID(_ context.Context, groupID uint, withAnswers bool) ([]model.Survey, error) {
	var out []model.Survey
	for _, s := range m.surveys {
		if s.SurveyGroupID != groupID {
			continue
		}
		if withAnswers {
			s = m.withAnswers(s)
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSurveys) FindByID(_ context.Context, id uint) (*model.Survey, error) {
	for _, s := range m.surveys {
		if s.ID == id {
			s = m.withAnswers(s)
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memSurveys) FindByIDs(ctx context.Context, ids []uint) ([]model.Survey, error) {
	var out []model.Survey
	for _, id := range ids {
		if s, err := m.FindByID(ctx, id); err == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memSurveys) Create(_ context.Context, s *model.Survey) error {
	m.seq++
	s.ID = m.seq
	cp := *s
	cp.Answers = nil
	m.surveys = append(m.surveys, cp)
	return nil
}

func (m *memSurveys) Update(_ context.Context, s *model.Survey) error {
	for i := range m.surveys {
		if m.surveys[i].ID == s.ID {
			m.surveys[i].Question = s.Question
			m.surveys[i].SurveyTypeID = s.SurveyTypeID
		}
	}
	return nil
}

func (m *memSurveys) Delete(_ context.Context, id uint) error {
	kept := m.surveys[:0]
	for _, s := range m.surveys {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.surveys = kept
	return nil
}

type memAnswers struct {
	seq     uint
	answers []model.Answer
}

func (m *memAnswers) FindBySurveyID(_ context.Context, surveyID uint) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range m.answers {
		if a.SurveyID == surveyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAnswers) FindByID(_ context.Context, id uint) (*model.Answer, error) {
	for _, a := range m.answers {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAnswers) Create(_ context.Context, a *model.Answer) error {
	m.seq++
	a.ID = m.seq
	m.answers = append(m.answers, *a)
	return nil
}

func (m *memAnswers) Update(_ context.Context, a *model.Answer) error {
	for i := range m.answers {
		if m.answers[i].ID == a.ID {
			m.answers[i] = *a
		}
	}
	return nil
}

func (m *memAnswers) Delete(_ context.Context, id uint) error {
	kept := m.answers[:0]
	for _, a := range m.answers {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.answers = kept
	return nil
}

type memResults struct {
	seq     uint
	results []model.Result
	surveys *memSurveys
}

func (m *memResults) FindByUserAndSurvey(_ context.Context, userID, surveyID uint) (*model.Result, error) {
	for _, r := range m.results {
		if r.UserID == userID && r.SurveyID == surveyID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memResults) FindByID(_ context.Context, id uint) (*model.Result, error) {
	for _, r := range m.results {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memResults) ExistsByUserAndSurvey(ctx context.Context, userID, surveyID uint) (bool, error) {
	_, err := m.FindByUserAndSurvey(ctx, userID, surveyID)
	return err == nil, nil
}

func (m *memResults) FindByGroupID(ctx context.Context, groupID uint) ([]model.Result, error) {
	inGroup := map[uint]bool{}
	surveys, _ := m.surveys.FindByGroupID(ctx, groupID, false)
	for _, s := range surveys {
		inGroup[s.ID] = true
	}
	var out []model.Result
	for _, r := range m.results {
		if inGroup[r.SurveyID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memResults) Create(_ context.Context, r *model.Result) error {
	m.seq++
	r.ID = m.seq
	m.results = append(m.results, *r)
	return nil
}

func (m *memResults) Update(_ context.Context, r *model.Result) error {
	for i := range m.results {
		if m.results[i].ID == r.ID {
			m.results[i] = *r
		}
	}
	return nil
}

func (m *memResults) Delete(_ context.Context, id uint) error {
	kept := m.results[:0]
	for _, r := range m.results {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.results = kept
	return nil
}

// memProvider 记录上传内容
type memProvider struct {
	files map[string]string
}

func (p *memProvider) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if p.files == nil {
		p.files = map[string]string{}
	}
	p.files[key] = string(data)
	return nil
}

func (p *memProvider) Link(_ context.Context, key string) (string, error) { return "mem://" + key, nil }

func (p *memProvider) Remove(_ context.Context, key string) error {
	delete(p.files, key)
	return nil
}
