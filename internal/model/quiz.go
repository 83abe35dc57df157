package model

import "time"

// Quiz 随堂测验
// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID     uint           `gorm:"index" json:"courseId"`
	CourseWeekID uint           `gorm:"index" json:"courseWeekId"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Duration     int            `gorm:"default:30" json:"duration"` // 答题时长（分钟）
	TotalScore   int            `gorm:"default:100" json:"totalScore"`
	Status       string         `gorm:"size:20;default:'draft'" json:"status"` // draft, published, closed
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuestionType string

const (
	SingleChoice QuestionType = "single_choice"
	MultiChoice  QuestionType = "multi_choice"
	ShortAnswer  QuestionType = "short_answer"
)

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID  uint         `gorm:"index;not null" json:"quizId"`
	Type    QuestionType `gorm:"size:20;default:'single_choice'" json:"type"`
	Content string       `gorm:"type:text;not null" json:"content"`
	Options StringList   `gorm:"type:json" json:"options"`
	Answer  string       `gorm:"size:255" json:"answer"` // 选择题为选项下标，简答题为参考答案
	Score   int          `gorm:"default:10" json:"score"`
	Order   int          `gorm:"column:sort_order;default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizSubmission 学生的一次测验作答，选择题自动判分
// swagger:model QuizSubmission
type QuizSubmission struct {
	BaseModel
	QuizID      uint      `gorm:"index:idx_quiz_user,unique" json:"quizId"`
	UserID      uint      `gorm:"index:idx_quiz_user,unique" json:"userId"`
	Answers     string    `gorm:"type:json" json:"answers"` // [{questionId, answer}]
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
