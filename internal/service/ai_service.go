package service

import (
	"blackboard_backend/internal/config"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// AIService 对接 OpenAI 兼容的大模型接口：助教问答、作业批改、AI 出题
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg}
}

// SetConfig 配置热更新时替换接口地址和密钥
func (s *AIService) SetConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) getConfig() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
		Delta   AIChatMessage `json:"delta"` // 流式响应
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) complete(ctx context.Context, messages []AIChatMessage) (string, error) {
	cfg := s.getConfig()
	reqBody := ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// Chat 单轮阻塞问答
func (s *AIService) Chat(ctx context.Context, prompt string, contextText string, history []AIChatMessage) (string, error) {
	messages := buildAssistantMessages(prompt, contextText, history)
	return s.complete(ctx, messages)
}

// ChatStream 流式问答，SSE 逐段返回。ctx 取消后生产者停止推送并退出，
// 两个通道都会被关闭，消费方不会被挂住。
func (s *AIService) ChatStream(ctx context.Context, prompt string, contextText string, history []AIChatMessage) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	cfg := s.getConfig()
	messages := buildAssistantMessages(prompt, contextText, history)

	reqBody := map[string]interface{}{
		"model":    cfg.Model,
		"messages": messages,
		"stream":   true,
	}

	jsonData, _ := json.Marshal(reqBody)

	go func() {
		defer close(out)
		defer close(errChan)

		req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			errChan <- err
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			errChan <- fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
			return
		}

		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					errChan <- err
				}
				break
			}

			line = strings.TrimSpace(line)
			if line == "" || !strings.HasPrefix(line, "data: ") {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				break
			}

			var streamResp ChatCompletionResponse
			if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
				continue
			}

			if len(streamResp.Choices) > 0 {
				content := streamResp.Choices[0].Delta.Content
				if content != "" {
					select {
					case out <- content:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, errChan
}

func buildAssistantMessages(prompt, contextText string, history []AIChatMessage) []AIChatMessage {
	messages := []AIChatMessage{}

	systemContent := "你是AI黑板报平台的课程学习助教，请尽力回答学生的问题。严禁回答与课程学习无关的问题。"
	if contextText != "" {
		systemContent = fmt.Sprintf("你是AI黑板报平台的课程学习助教。请结合以下课程内容回答问题：\n\n%s", contextText)
	}
	messages = append(messages, AIChatMessage{
		Role:    "system",
		Content: systemContent,
	})

	// 注入历史对话记录，多轮对话核心
	for _, h := range history {
		messages = append(messages, AIChatMessage{
			Role:    h.Role,
			Content: h.Content,
		})
	}

	messages = append(messages, AIChatMessage{
		Role:    "user",
		Content: prompt,
	})

	return messages
}

// aiGradeResult 模型按约定返回的 JSON 批改结果
type aiGradeResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// GradeSubmission 对照作业要求（和可选的教师参考文件）批改学生提交，
// 返回建议分数和评语。只产生建议，不落库。
func (s *AIService) GradeSubmission(ctx context.Context, assignmentName, description string, maxScore int, submissionURL, graderFileURL string) (int, string, error) {
	prompt := fmt.Sprintf(
		"请批改学生作业。\n作业名称：%s\n作业要求：%s\n满分：%d\n学生提交文件：%s\n",
		assignmentName, description, maxScore, submissionURL)
	if graderFileURL != "" {
		prompt += fmt.Sprintf("教师参考文件：%s\n", graderFileURL)
	}
	prompt += fmt.Sprintf(
		"请给出 0 到 %d 之间的整数分数和中文评语，只输出 JSON：{\"score\": 分数, \"feedback\": \"评语\"}",
		maxScore)

	messages := []AIChatMessage{
		{Role: "system", Content: "你是一名严谨的课程作业批改助教，只输出要求的 JSON，不要输出其他内容。"},
		{Role: "user", Content: prompt},
	}

	content, err := s.complete(ctx, messages)
	if err != nil {
		return 0, "", err
	}

	var result aiGradeResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return 0, "", fmt.Errorf("解析AI批改结果失败: %v", err)
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > maxScore {
		result.Score = maxScore
	}

	return result.Score, result.Feedback, nil
}

// GeneratedQuestion AI 根据参考资料生成的单道测验题
type GeneratedQuestion struct {
	Content string   `json:"content"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// GenerateQuestion 根据已上传参考文件生成一道单选题
func (s *AIService) GenerateQuestion(ctx context.Context, fileURL string) (*GeneratedQuestion, error) {
	prompt := fmt.Sprintf(
		"请根据以下参考资料出一道单选题：%s\n只输出 JSON：{\"content\": \"题干\", \"options\": [\"A\", \"B\", \"C\", \"D\"], \"answer\": \"正确选项下标，从0开始\"}",
		fileURL)

	messages := []AIChatMessage{
		{Role: "system", Content: "你是一名课程出题助教，只输出要求的 JSON，不要输出其他内容。"},
		{Role: "user", Content: prompt},
	}

	content, err := s.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	var question GeneratedQuestion
	if err := json.Unmarshal([]byte(extractJSON(content)), &question); err != nil {
		return nil, fmt.Errorf("解析AI出题结果失败: %v", err)
	}
	return &question, nil
}

// extractJSON 模型偶尔会把 JSON 包在 Markdown 代码块或说明文字里
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
