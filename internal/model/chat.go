package model

import "time"

// AssistantMessage AI 学习助手的一轮问答，按会话组织支持多轮对话
type AssistantMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	SessionID string    `gorm:"size:50;index" json:"sessionId"` // 会话 ID，用于切断历史边界
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Source    string    `gorm:"size:20" json:"source"` // course_content 或 llm
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (AssistantMessage) TableName() string {
	return "assistant_messages"
}
