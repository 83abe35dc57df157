package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"size:20;default:'student'" json:"role"`
	StudentNo   string    `gorm:"size:50" json:"studentNo"` // 学号/工号
	College     string    `gorm:"size:100" json:"college"`
	Major       string    `gorm:"size:100" json:"major"`
	Avatar      string    `gorm:"size:255" json:"avatar"`
	Language    string    `gorm:"size:10;default:'zh'" json:"language"`
	Disabled    bool      `gorm:"default:false" json:"disabled"`
	EmailNotify bool      `gorm:"default:true" json:"emailNotify"` // 截止日期提醒等邮件通知开关
	LastLogin   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"lastLogin"`
	LastSeen    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
