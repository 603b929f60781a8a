package model

// swagger:model SurveyType
type SurveyType struct {
	BaseModel
	Name           string `gorm:"size:100;uniqueIndex;not null" json:"surveyTypeName"`
	MultipleChoice bool   `gorm:"default:false" json:"multipleChoiceFlg"`
	Quiz           bool   `gorm:"default:false" json:"quizFlg"`
	Anonymous      bool   `gorm:"default:false" json:"anonymousFlg"`
}

func (SurveyType) TableName() string {
	return "survey_types"
}

// swagger:model SurveyGroup
type SurveyGroup struct {
	BaseModel
	Name         string `gorm:"size:255;uniqueIndex;not null" json:"surveyGroupName"`
	SurveyTypeID uint   `gorm:"index" json:"surveyTypeId"`
}

func (SurveyGroup) TableName() string {
	return "survey_groups"
}

// swagger:model Survey
type Survey struct {
	BaseModel
	Question      string   `gorm:"size:1000;not null" json:"surveyQuestion"`
	SurveyTypeID  uint     `json:"surveyTypeId"`
	SurveyGroupID uint     `gorm:"index;not null" json:"surveyGroupId"`
	Answers       []Answer `gorm:"constraint:OnDelete:CASCADE;" json:"answers,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	Text     string `gorm:"size:255;not null" json:"answer"`
	Correct  bool   `gorm:"default:false" json:"correctFlg"`
	SurveyID uint   `gorm:"index;not null" json:"surveyId"`
}

func (Answer) TableName() string {
	return "answers"
}

// swagger:model Result
type Result struct {
	BaseModel
	UserID     uint   `gorm:"not null;uniqueIndex:idx_result_user_survey" json:"userId"`
	SurveyID   uint   `gorm:"not null;uniqueIndex:idx_result_user_survey" json:"surveyId"`
	UserResult string `gorm:"size:1000;not null" json:"userResult"`
}

func (Result) TableName() string {
	return "results"
}
