package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sourceCourseContent = "course_content"
	sourceLLM           = "llm"

	historyRounds = 10 // 带入上下文的最近问答轮数
)

// ChatService AI 学习助手：优先用课程内容做上下文，回答按会话存档
type ChatService struct {
	chatRepo     *repository.ChatRepository
	materialRepo *repository.MaterialRepository
	aiService    *AIService
	logger       *zap.Logger
}

func NewChatService(chatRepo *repository.ChatRepository, materialRepo *repository.MaterialRepository, aiService *AIService, logger *zap.Logger) *ChatService {
	return &ChatService{
		chatRepo:     chatRepo,
		materialRepo: materialRepo,
		aiService:    aiService,
		logger:       logger,
	}
}

// NewSessionID 开启新会话
func (s *ChatService) NewSessionID() string {
	return uuid.New().String()
}

// buildContext 用问题关键词在课程资料名里捞相关内容作为回答上下文
func (s *ChatService) buildContext(question string) (string, string) {
	materials, err := s.materialRepo.ListAll()
	if err != nil || len(materials) == 0 {
		return "", sourceLLM
	}

	var matched []string
	for _, m := range materials {
		name := strings.TrimSuffix(m.Name, "."+m.Format)
		if name != "" && strings.Contains(question, strings.TrimSpace(name)) {
			matched = append(matched, fmt.Sprintf("课程资料《%s》（类型：%s）", m.Name, m.Type))
		}
	}
	if len(matched) == 0 {
		return "", sourceLLM
	}
	return strings.Join(matched, "\n"), sourceCourseContent
}

func (s *ChatService) history(sessionID string) []AIChatMessage {
	records, err := s.chatRepo.RecentBySession(sessionID, historyRounds)
	if err != nil {
		s.logger.Warn("读取会话历史失败", zap.String("sessionId", sessionID), zap.Error(err))
		return nil
	}

	history := make([]AIChatMessage, 0, len(records)*2)
	for _, r := range records {
		history = append(history,
			AIChatMessage{Role: "user", Content: r.Question},
			AIChatMessage{Role: "assistant", Content: r.Answer},
		)
	}
	return history
}

// Ask 单轮阻塞问答，回答后整轮问答落库
func (s *ChatService) Ask(ctx context.Context, userID uint, sessionID, question string) (*model.AssistantMessage, error) {
	if sessionID == "" {
		sessionID = s.NewSessionID()
	}

	contextText, source := s.buildContext(question)
	answer, err := s.aiService.Chat(ctx, question, contextText, s.history(sessionID))
	if err != nil {
		return nil, err
	}

	msg := &model.AssistantMessage{
		UserID:    userID,
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Source:    source,
	}
	if err := s.chatRepo.Save(msg); err != nil {
		s.logger.Warn("保存问答记录失败", zap.Error(err))
	}
	return msg, nil
}

// AskStream 流式问答。onChunk 逐段回调，整段回答完成后落库。
// onChunk 返回 false 表示客户端已断开，此时取消上游流并带着已收到的部分回答返回。
func (s *ChatService) AskStream(ctx context.Context, userID uint, sessionID, question string, onChunk func(chunk string) bool) (*model.AssistantMessage, error) {
	if sessionID == "" {
		sessionID = s.NewSessionID()
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	contextText, source := s.buildContext(question)
	chunks, errChan := s.aiService.ChatStream(streamCtx, question, contextText, s.history(sessionID))

	aborted := false
	var answer strings.Builder
	for chunk := range chunks {
		answer.WriteString(chunk)
		if !onChunk(chunk) {
			aborted = true
			cancel()
			break
		}
	}
	// 排空剩余分段，等生产者退出后再读错误通道
	for range chunks {
	}
	if err := <-errChan; err != nil && !aborted {
		return nil, err
	}

	msg := &model.AssistantMessage{
		UserID:    userID,
		SessionID: sessionID,
		Question:  question,
		Answer:    answer.String(),
		Source:    source,
	}
	if err := s.chatRepo.Save(msg); err != nil {
		s.logger.Warn("保存问答记录失败", zap.Error(err))
	}
	return msg, nil
}

func (s *ChatService) History(sessionID string, limit int) ([]model.AssistantMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.chatRepo.RecentBySession(sessionID, limit)
}

func (s *ChatService) Sessions(userID uint) ([]string, error) {
	return s.chatRepo.ListSessions(userID)
}
