package bot

// Option 一个答案选项；在切片中的下标即 Telegram 投票的 option id
type Option struct {
	AnswerID uint   `json:"answerId"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
}

// Poll 一道题在 Telegram 投票中的投影，构建后不再修改
type Poll struct {
	SurveyID       uint     `json:"surveyId"`
	Question       string   `json:"question"`
	Options        []Option `json:"options"`
	MultipleChoice bool     `json:"multipleChoice"`
	Quiz           bool     `json:"quiz"`
	// CorrectOption 仅在 Quiz 时有意义
	CorrectOption int `json:"correctOption"`
}

// OptionTexts 按顺序返回选项文本
func (p *Poll) OptionTexts() []string {
	texts := make([]string, len(p.Options))
	for i, o := range p.Options {
		texts[i] = o.Text
	}
	return texts
}

// AnswerIDs 把 Telegram 返回的选项下标映射回答案 id
func (p *Poll) AnswerIDs(optionIDs []int) ([]uint, bool) {
	ids := make([]uint, 0, len(optionIDs))
	for _, idx := range optionIDs {
		if idx < 0 || idx >= len(p.Options) {
			return nil, false
		}
		ids = append(ids, p.Options[idx].AnswerID)
	}
	return ids, true
}

// Survey 一个问卷组的有序投票序列
type Survey struct {
	Name  string `json:"name"`
	Polls []Poll `json:"polls"`
}

func (s *Survey) Empty() bool {
	return len(s.Polls) == 0
}
