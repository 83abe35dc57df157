package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"blackboard_backend/pkg/monitoring"
	"context"
	"errors"

	"gorm.io/gorm"
)

// GradingService 批改流程：AI 先给建议，教师确认后才落库。
// AI 建议只在响应里存在，数据库中永远只有教师确认过的成绩。
type GradingService struct {
	submissionRepo *repository.SubmissionRepository
	storageService *StorageService
	aiService      *AIService
}

func NewGradingService(submissionRepo *repository.SubmissionRepository, storageService *StorageService, aiService *AIService) *GradingService {
	return &GradingService{
		submissionRepo: submissionRepo,
		storageService: storageService,
		aiService:      aiService,
	}
}

// RequestAIGrade 请求 AI 批改建议。失败或未确认都不会改动提交记录，
// 教师可以直接重试。graderFileKey 可选，传入教师参考文件的存储键。
func (s *GradingService) RequestAIGrade(ctx context.Context, submissionID uint, graderFileKey string) (*model.GradingProposal, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.FileKey == "" {
		return nil, util.ErrSubmissionNoFile
	}

	submissionURL, err := s.storageService.DownloadURL(ctx, submission.FileKey)
	if err != nil {
		return nil, err
	}

	graderFileURL := ""
	if graderFileKey != "" {
		graderFileURL, err = s.storageService.DownloadURL(ctx, graderFileKey)
		if err != nil {
			return nil, err
		}
	}

	assignmentName := ""
	description := ""
	maxScore := 100
	if submission.Assignment != nil {
		assignmentName = submission.Assignment.Name
		description = submission.Assignment.Description
		maxScore = submission.Assignment.MaxScore
	}

	score, feedback, err := s.aiService.GradeSubmission(ctx, assignmentName, description, maxScore, submissionURL, graderFileURL)
	if err != nil {
		monitoring.AIGradeCounter.WithLabelValues("error").Inc()
		return nil, err
	}
	monitoring.AIGradeCounter.WithLabelValues("ok").Inc()

	return &model.GradingProposal{Score: score, Feedback: feedback}, nil
}

// ConfirmGrade 教师确认成绩。分数必填且不超过作业满分；评语允许为空，
// 分数评语同一条语句写入。
func (s *GradingService) ConfirmGrade(submissionID uint, score *int, feedback string) error {
	if score == nil {
		return util.ErrScoreRequired
	}

	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubmissionNotFound
		}
		return err
	}

	maxScore := 100
	if submission.Assignment != nil {
		maxScore = submission.Assignment.MaxScore
	}
	if *score < 0 || *score > maxScore {
		return util.ErrScoreOutOfRange
	}

	return s.submissionRepo.UpdateGrade(submissionID, *score, feedback)
}
