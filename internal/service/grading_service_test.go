package service

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 不落盘的存储实现，记录签发过的键
type fakeProvider struct {
	presigned []string
}

func (p *fakeProvider) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	p.presigned = append(p.presigned, key)
	return "http://storage.test/upload/" + key, nil
}

func (p *fakeProvider) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://storage.test/download/" + key, nil
}

func (p *fakeProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return nil
}

func (p *fakeProvider) Delete(ctx context.Context, key string) error {
	return nil
}

func newFakeStorage() *StorageService {
	return &StorageService{Provider: &fakeProvider{}, URLExpiry: 15 * time.Minute}
}

// newFakeAIServer 返回 OpenAI 兼容格式的固定回答
func newFakeAIServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newAIService(serverURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func TestRequestAIGradeReturnsProposalWithoutPersisting(t *testing.T) {
	db := newTestDB(t)
	_, submissionRepo := newTestRepos(db)

	student := createTestUser(t, db, "student1", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)
	submission := createTestSubmission(t, db, assignment.ID, student.ID, "2026/03/c1/u1/hw.pdf")

	server := newFakeAIServer(t, `{"score": 88, "feedback": "结构清晰，推导完整"}`, http.StatusOK)
	defer server.Close()

	svc := NewGradingService(submissionRepo, newFakeStorage(), newAIService(server.URL))

	proposal, err := svc.RequestAIGrade(context.Background(), submission.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 88, proposal.Score)
	assert.Equal(t, "结构清晰，推导完整", proposal.Feedback)

	// 建议不落库，提交仍是未批改状态
	stored, err := submissionRepo.FindByID(submission.ID)
	require.NoError(t, err)
	assert.False(t, stored.Graded())
}

func TestRequestAIGradeWithoutFile(t *testing.T) {
	db := newTestDB(t)
	_, submissionRepo := newTestRepos(db)

	student := createTestUser(t, db, "student2", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)
	submission := &model.Submission{
		AssignmentID: assignment.ID,
		UserID:       student.ID,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, db.Create(submission).Error)

	svc := NewGradingService(submissionRepo, newFakeStorage(), newAIService("http://unused"))

	_, err := svc.RequestAIGrade(context.Background(), submission.ID, "")
	assert.ErrorIs(t, err, util.ErrSubmissionNoFile)
}

func TestRequestAIGradeFailureLeavesSubmissionUntouched(t *testing.T) {
	db := newTestDB(t)
	_, submissionRepo := newTestRepos(db)

	student := createTestUser(t, db, "student3", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)
	submission := createTestSubmission(t, db, assignment.ID, student.ID, "key")

	server := newFakeAIServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	svc := NewGradingService(submissionRepo, newFakeStorage(), newAIService(server.URL))

	_, err := svc.RequestAIGrade(context.Background(), submission.ID, "")
	require.Error(t, err)

	// 失败后可以直接重试，提交记录原样
	stored, err := submissionRepo.FindByID(submission.ID)
	require.NoError(t, err)
	assert.False(t, stored.Graded())

	server2 := newFakeAIServer(t, `{"score": 60, "feedback": "基本完成"}`, http.StatusOK)
	defer server2.Close()

	svc2 := NewGradingService(submissionRepo, newFakeStorage(), newAIService(server2.URL))
	proposal, err := svc2.RequestAIGrade(context.Background(), submission.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 60, proposal.Score)
}

func TestConfirmGrade(t *testing.T) {
	db := newTestDB(t)
	_, submissionRepo := newTestRepos(db)

	student := createTestUser(t, db, "student4", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)
	submission := createTestSubmission(t, db, assignment.ID, student.ID, "key")

	svc := NewGradingService(submissionRepo, newFakeStorage(), newAIService("http://unused"))

	// 分数必填
	err := svc.ConfirmGrade(submission.ID, nil, "不错")
	assert.ErrorIs(t, err, util.ErrScoreRequired)

	// 分数越界
	score := 101
	err = svc.ConfirmGrade(submission.ID, &score, "")
	assert.ErrorIs(t, err, util.ErrScoreOutOfRange)
	score = -1
	err = svc.ConfirmGrade(submission.ID, &score, "")
	assert.ErrorIs(t, err, util.ErrScoreOutOfRange)

	// 越界尝试不留半批改状态
	stored, err := submissionRepo.FindByID(submission.ID)
	require.NoError(t, err)
	assert.False(t, stored.Graded())

	// 教师可以修改 AI 建议后确认；评语允许为空
	score = 95
	require.NoError(t, svc.ConfirmGrade(submission.ID, &score, ""))

	stored, err = submissionRepo.FindByID(submission.ID)
	require.NoError(t, err)
	grade, ok := stored.Grade()
	require.True(t, ok)
	assert.Equal(t, 95, grade.Score)
	assert.Equal(t, "", grade.Feedback)

	// 不存在的提交
	err = svc.ConfirmGrade(9999, &score, "")
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestConfirmGradeRespectsAssignmentMaxScore(t *testing.T) {
	db := newTestDB(t)
	_, submissionRepo := newTestRepos(db)

	student := createTestUser(t, db, "student5", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 50)
	submission := createTestSubmission(t, db, assignment.ID, student.ID, "key")

	svc := NewGradingService(submissionRepo, newFakeStorage(), newAIService("http://unused"))

	score := 51
	err := svc.ConfirmGrade(submission.ID, &score, "")
	assert.ErrorIs(t, err, util.ErrScoreOutOfRange)

	score = 50
	require.NoError(t, svc.ConfirmGrade(submission.ID, &score, fmt.Sprintf("满分 %d", assignment.MaxScore)))
}
