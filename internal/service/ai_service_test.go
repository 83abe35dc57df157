package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"纯JSON", `{"score": 90}`, `{"score": 90}`},
		{"Markdown代码块", "```json\n{\"score\": 90}\n```", `{"score": 90}`},
		{"前后带说明文字", `批改结果如下：{"score": 90} 请确认`, `{"score": 90}`},
		{"没有JSON原样返回", "无法批改", "无法批改"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.content))
		})
	}
}

func TestGradeSubmissionParsesAndClamps(t *testing.T) {
	tests := []struct {
		name         string
		aiContent    string
		wantScore    int
		wantFeedback string
	}{
		{"正常范围", `{"score": 85, "feedback": "很好"}`, 85, "很好"},
		{"超出满分夹到满分", `{"score": 120, "feedback": "超纲"}`, 100, "超纲"},
		{"负分夹到零", `{"score": -5, "feedback": "未完成"}`, 0, "未完成"},
		{"包在代码块里", "```json\n{\"score\": 77, \"feedback\": \"合格\"}\n```", 77, "合格"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newFakeAIServer(t, tt.aiContent, http.StatusOK)
			defer server.Close()

			svc := newAIService(server.URL)
			score, feedback, err := svc.GradeSubmission(context.Background(), "作业", "要求", 100, "http://f/1", "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantFeedback, feedback)
		})
	}
}

func TestGradeSubmissionInvalidResponse(t *testing.T) {
	server := newFakeAIServer(t, "我拒绝回答", http.StatusOK)
	defer server.Close()

	svc := newAIService(server.URL)
	_, _, err := svc.GradeSubmission(context.Background(), "作业", "要求", 100, "http://f/1", "")
	assert.Error(t, err)
}

func TestGenerateQuestion(t *testing.T) {
	content := `{"content": "感知机属于哪类模型？", "options": ["线性分类器", "决策树", "聚类", "降维"], "answer": "0"}`
	server := newFakeAIServer(t, content, http.StatusOK)
	defer server.Close()

	svc := newAIService(server.URL)
	question, err := svc.GenerateQuestion(context.Background(), "http://f/ref.pdf")
	require.NoError(t, err)
	assert.Equal(t, "感知机属于哪类模型？", question.Content)
	assert.Len(t, question.Options, 4)
	assert.Equal(t, "0", question.Answer)
}

func TestSetConfigHotReload(t *testing.T) {
	svc := newAIService("http://old")
	cfg := svc.getConfig()
	cfg.BaseURL = "http://new"
	svc.SetConfig(cfg)
	assert.Equal(t, "http://new", svc.getConfig().BaseURL)
}
