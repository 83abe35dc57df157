package model

import "time"

// Submission 学生对某次作业的一次提交
//
// score 和 feedback 要么同时为空（未批改），要么同时有值（已批改），
// 不存在只写入其中一个的中间态。唯一的写入路径是
// SubmissionRepository.UpdateGrade，单条语句同时更新两列。
// swagger:model Submission
type Submission struct {
	BaseModel
	AssignmentID uint        `gorm:"index;not null" json:"assignmentId"`
	Assignment   *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	UserID       uint        `gorm:"index;not null" json:"userId"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FileKey      string      `gorm:"size:255" json:"fileKey"` // 对象存储中的不透明键
	FileName     string      `gorm:"size:255" json:"fileName"`
	Description  string      `gorm:"type:text" json:"description"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	Score        *int        `json:"score"`
	Feedback     *string     `gorm:"type:text" json:"feedback"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Grade 已确认的批改结果，分数与评语成对出现
type Grade struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Grade 返回批改结果；未批改时 ok 为 false
func (s *Submission) Grade() (g Grade, ok bool) {
	if s.Score == nil || s.Feedback == nil {
		return Grade{}, false
	}
	return Grade{Score: *s.Score, Feedback: *s.Feedback}, true
}

// Graded 是否已批改
func (s *Submission) Graded() bool {
	_, ok := s.Grade()
	return ok
}

// GradingProposal AI 给出的批改建议，仅在教师确认前存在于响应中，从不落库
type GradingProposal struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
