package model

import "time"

// Course 课程，按教学周组织课件、作业、测验和问卷
// swagger:model Course
type Course struct {
	BaseModel
	Name         string  `gorm:"size:255;not null" json:"name"`
	Info         string  `gorm:"type:text" json:"info"`
	InstructorID uint    `gorm:"index" json:"instructorId"`
	Instructor   *User   `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	TotalWeeks   int     `gorm:"default:16" json:"totalWeeks"`
	CurrentWeek  int     `gorm:"default:1" json:"currentWeek"`
	StudentCount int     `gorm:"default:0" json:"studentCount"`
	Color        string  `gorm:"size:50" json:"color"` // 前端课程卡片渐变色
	Progress     float64 `gorm:"default:0" json:"progress"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseWeek 一个教学周，课程内容的挂载点
// swagger:model CourseWeek
type CourseWeek struct {
	BaseModel
	CourseID uint      `gorm:"index;not null" json:"courseId"`
	Week     int       `gorm:"not null" json:"week"`
	Title    string    `gorm:"size:255" json:"title"`
	Date     time.Time `json:"date"`

	Materials   []Material   `gorm:"foreignKey:CourseWeekID" json:"materials,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:CourseWeekID" json:"assignments,omitempty"`
	Quizzes     []Quiz       `gorm:"foreignKey:CourseWeekID" json:"quizzes,omitempty"`
	Surveys     []Survey     `gorm:"foreignKey:CourseWeekID" json:"surveys,omitempty"`
}

func (CourseWeek) TableName() string {
	return "course_weeks"
}

// CourseEnrollment 选课关系
type CourseEnrollment struct {
	BaseModel
	CourseID uint `gorm:"index:idx_course_user,unique" json:"courseId"`
	UserID   uint `gorm:"index:idx_course_user,unique" json:"userId"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
