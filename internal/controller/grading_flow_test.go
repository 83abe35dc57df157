package controller

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"blackboard_backend/pkg/database"
	"blackboard_backend/pkg/logger"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubProvider struct{}

func (stubProvider) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://storage.test/upload/" + key, nil
}

func (stubProvider) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://storage.test/download/" + key, nil
}

func (stubProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return nil
}

func (stubProvider) Delete(ctx context.Context, key string) error { return nil }

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

// newTestEnv 组装走真实路由的测试环境，认证中间件替换为固定用户注入
func newTestEnv(t *testing.T, aiBaseURL string, claims *util.Claims) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	storage := &service.StorageService{Provider: stubProvider{}, URLExpiry: 15 * time.Minute}
	ai := service.NewAIService(config.AIConfig{BaseURL: aiBaseURL, APIKey: "test-key", Model: "test"})

	assignmentSvc := service.NewAssignmentService(assignmentRepo, submissionRepo, courseRepo)
	submissionSvc := service.NewSubmissionService(submissionRepo, assignmentRepo)
	gradingSvc := service.NewGradingService(submissionRepo, storage, ai)

	assignmentCtrl := NewAssignmentController(assignmentSvc)
	submissionCtrl := NewSubmissionController(submissionSvc)
	gradeCtrl := NewGradeController(gradingSvc)
	fileCtrl := NewFileController(storage)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", claims)
		c.Next()
	})

	api := router.Group("/api")
	api.GET("/assignments/:id", assignmentCtrl.Get)
	api.PUT("/assignments/:id", assignmentCtrl.Update)
	api.GET("/assignments/:id/submissions", submissionCtrl.List)
	api.POST("/assignments/:id/submissions", submissionCtrl.Submit)
	api.POST("/files/upload-url", fileCtrl.CreateUploadURL)
	api.POST("/submissions/:id/ai-grade", gradeCtrl.AIGrade)
	api.PUT("/submissions/:id/grade", gradeCtrl.Confirm)

	return &testEnv{router: router, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func fakeAIHandler(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestSubmitAndGradeFlow(t *testing.T) {
	aiServer := httptest.NewServer(fakeAIHandler(`{"score": 88, "feedback": "推导完整"}`))
	defer aiServer.Close()

	claims := &util.Claims{UserID: 1, Role: model.Teacher}
	env := newTestEnv(t, aiServer.URL, claims)

	assignment := &model.Assignment{
		CourseID: 1,
		Name:     "期中作业",
		Deadline: time.Now().AddDate(0, 0, 7),
		MaxScore: 100,
	}
	require.NoError(t, env.db.Create(assignment).Error)

	// 1. 签发上传地址
	w := env.do(t, http.MethodPost, "/api/files/upload-url", gin.H{
		"fileName": "midterm.pdf",
		"size":     2048,
		"courseId": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var target service.UploadTarget
	decodeData(t, w, &target)
	assert.NotEmpty(t, target.FileKey)
	assert.NotEmpty(t, target.UploadURL)

	// 超限请求返回 413
	w = env.do(t, http.MethodPost, "/api/files/upload-url", gin.H{
		"fileName": "huge.zip",
		"size":     util.MaxUploadBytes + 1,
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// 2. 记录提交
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/assignments/%d/submissions", assignment.ID), gin.H{
		"fileKey":  target.FileKey,
		"fileName": "midterm.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var submission model.Submission
	decodeData(t, w, &submission)

	// 3. 列表渲染哨兵值
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/assignments/%d/submissions", assignment.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []service.SubmissionView
	decodeData(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, util.SentinelUngraded, views[0].Score)
	assert.Equal(t, util.SentinelUngraded, views[0].Feedback)

	// 4. AI 批改只返回建议
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/submissions/%d/ai-grade", submission.ID), gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var proposal model.GradingProposal
	decodeData(t, w, &proposal)
	assert.Equal(t, 88, proposal.Score)

	// 建议未落库
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/assignments/%d/submissions", assignment.ID), nil)
	decodeData(t, w, &views)
	assert.Equal(t, util.SentinelUngraded, views[0].Score)

	// 5. 教师修改建议后确认
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/submissions/%d/grade", submission.ID), gin.H{
		"score":    90,
		"feedback": "修正笔误后满分边缘",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/assignments/%d/submissions", assignment.ID), nil)
	decodeData(t, w, &views)
	assert.Equal(t, "90", views[0].Score)
	assert.Equal(t, "修正笔误后满分边缘", views[0].Feedback)
}

func TestConfirmGradeValidation(t *testing.T) {
	claims := &util.Claims{UserID: 1, Role: model.Teacher}
	env := newTestEnv(t, "http://unused", claims)

	assignment := &model.Assignment{CourseID: 1, Name: "作业", Deadline: time.Now().AddDate(0, 0, 1), MaxScore: 100}
	require.NoError(t, env.db.Create(assignment).Error)
	submission := &model.Submission{AssignmentID: assignment.ID, UserID: 1, FileKey: "k", FileName: "f", SubmittedAt: time.Now()}
	require.NoError(t, env.db.Create(submission).Error)

	// 缺少分数
	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/submissions/%d/grade", submission.ID), gin.H{"feedback": "不错"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 分数越界
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/submissions/%d/grade", submission.ID), gin.H{"score": 101})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 没有文件的提交无法 AI 批改
	noFile := &model.Submission{AssignmentID: assignment.ID, UserID: 2, SubmittedAt: time.Now()}
	require.NoError(t, env.db.Create(noFile).Error)
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/submissions/%d/ai-grade", noFile.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentUpdateEndpoint(t *testing.T) {
	claims := &util.Claims{UserID: 1, Role: model.Teacher}
	env := newTestEnv(t, "http://unused", claims)

	assignment := &model.Assignment{CourseID: 1, Name: "旧名字", Deadline: time.Now().AddDate(0, 0, 1), MaxScore: 100}
	require.NoError(t, env.db.Create(assignment).Error)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/assignments/%d", assignment.ID), gin.H{
		"name":         "新名字",
		"description":  "更新后的要求",
		"deadline":     time.Now().AddDate(0, 0, 14).Format(util.TimeFormat),
		"maxScore":     60,
		"requirements": []string{"Jupyter"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var view service.AssignmentView
	decodeData(t, w, &view)
	assert.Equal(t, "新名字", view.Name)
	assert.Equal(t, 60, view.MaxScore)
	assert.False(t, view.IsOverdue)
	assert.Equal(t, 14, view.DaysRemaining)

	// 不存在的作业
	w = env.do(t, http.MethodPut, "/api/assignments/9999", gin.H{
		"name":     "x",
		"deadline": time.Now().Format(util.TimeFormat),
		"maxScore": 10,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
