package model

import (
	"math"
	"time"
)

// Assignment 作业，归属于某个课程教学周，仅由开课教师编辑
// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID       uint       `gorm:"index" json:"courseId"`
	CourseWeekID   uint       `gorm:"index" json:"courseWeekId"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	InstructorName string     `gorm:"size:100" json:"instructorName"`
	Deadline       time.Time  `json:"deadline"`
	PublishDate    time.Time  `json:"publishDate"`
	MaxScore       int        `gorm:"default:100" json:"maxScore"`
	Requirements   StringList `gorm:"type:json" json:"requirements"` // 环境要求列表
}

func (Assignment) TableName() string {
	return "assignments"
}

// IsOverdue 截止时间严格早于 now 才算逾期，恰好等于截止时间不算
func (a *Assignment) IsOverdue(now time.Time) bool {
	return a.Deadline.Before(now)
}

// DaysRemaining 距截止日期的剩余天数，向上取整，逾期为负
func (a *Assignment) DaysRemaining(now time.Time) int {
	return int(math.Ceil(a.Deadline.Sub(now).Hours() / 24))
}
