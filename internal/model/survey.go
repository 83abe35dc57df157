package model

import "time"

// Survey 课程问卷
// swagger:model Survey
type Survey struct {
	BaseModel
	CourseID     uint             `gorm:"index" json:"courseId"`
	CourseWeekID uint             `gorm:"index" json:"courseWeekId"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Status       string           `gorm:"size:20;default:'published'" json:"status"`
	Questions    []SurveyQuestion `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}

// swagger:model SurveyQuestion
type SurveyQuestion struct {
	BaseModel
	SurveyID uint       `gorm:"index;not null" json:"surveyId"`
	Type     string     `gorm:"size:20;default:'choice'" json:"type"` // choice, text
	Title    string     `gorm:"size:500;not null" json:"title"`
	Options  StringList `gorm:"type:json" json:"options"`
	Required bool       `gorm:"default:false" json:"required"`
	Order    int        `gorm:"column:sort_order;default:0" json:"order"`
}

func (SurveyQuestion) TableName() string {
	return "survey_questions"
}

// SurveyResponse 学生提交的一份问卷答卷
// swagger:model SurveyResponse
type SurveyResponse struct {
	BaseModel
	SurveyID    uint      `gorm:"index:idx_survey_user,unique" json:"surveyId"`
	UserID      uint      `gorm:"index:idx_survey_user,unique" json:"userId"`
	Answers     string    `gorm:"type:json" json:"answers"` // [{questionId, answer}]
	SubmittedAt time.Time `json:"submittedAt"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}
