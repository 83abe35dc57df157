package repository

import (
	"blackboard_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	sessionCacheTTL  = 30 * time.Minute
	sessionCacheSize = 20 // 缓存的最近问答轮数
)

type ChatRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{DB: db, RDB: rdb}
}

func sessionCacheKey(sessionID string) string {
	return fmt.Sprintf("assistant:session:%s", sessionID)
}

func (r *ChatRepository) Save(msg *model.AssistantMessage) error {
	if err := r.DB.Create(msg).Error; err != nil {
		return err
	}
	r.appendToCache(msg)
	return nil
}

// RecentBySession 先查 Redis 缓存，未命中再回源数据库
func (r *ChatRepository) RecentBySession(sessionID string, limit int) ([]model.AssistantMessage, error) {
	if r.RDB != nil {
		if cached, err := r.readCache(sessionID, limit); err == nil && cached != nil {
			return cached, nil
		}
	}

	var messages []model.AssistantMessage
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// 倒序查出，翻回时间正序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ChatRepository) ListSessions(userID uint) ([]string, error) {
	var sessionIDs []string
	err := r.DB.Model(&model.AssistantMessage{}).
		Where("user_id = ?", userID).
		Group("session_id").
		Order("MAX(created_at) DESC").
		Pluck("session_id", &sessionIDs).Error
	return sessionIDs, err
}

func (r *ChatRepository) appendToCache(msg *model.AssistantMessage) {
	if r.RDB == nil {
		return
	}
	ctx := context.Background()
	key := sessionCacheKey(msg.SessionID)
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	pipe := r.RDB.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -sessionCacheSize, -1)
	pipe.Expire(ctx, key, sessionCacheTTL)
	pipe.Exec(ctx)
}

func (r *ChatRepository) readCache(sessionID string, limit int) ([]model.AssistantMessage, error) {
	ctx := context.Background()
	items, err := r.RDB.LRange(ctx, sessionCacheKey(sessionID), int64(-limit), -1).Result()
	if err != nil || len(items) == 0 {
		return nil, err
	}
	messages := make([]model.AssistantMessage, 0, len(items))
	for _, item := range items {
		var msg model.AssistantMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
