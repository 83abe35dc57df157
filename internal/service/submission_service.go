package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SubmissionService 维护作业的提交列表。列表永远从数据库重新拉取，
// 任何可能改变列表的变更（新提交、批改落库）之后调用方都应重新查询，
// 不做增量或乐观更新。
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	assignmentRepo *repository.AssignmentRepository
}

func NewSubmissionService(submissionRepo *repository.SubmissionRepository, assignmentRepo *repository.AssignmentRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
	}
}

// SubmissionView 提交记录的对外视图。score/feedback 未批改时渲染为
// 哨兵值"待批改"，仅为兼容旧版前端，模型层不存哨兵字符串。
type SubmissionView struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"userId"`
	UserName    string `json:"userName"`
	FileKey     string `json:"fileKey"`
	FileName    string `json:"fileName"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Score       string `json:"score"`
	Feedback    string `json:"feedback"`
}

func NewSubmissionView(s *model.Submission) SubmissionView {
	view := SubmissionView{
		ID:          s.ID,
		UserID:      s.UserID,
		FileKey:     s.FileKey,
		FileName:    s.FileName,
		Description: s.Description,
		Date:        s.SubmittedAt.Format(util.TimeFormat),
		Score:       util.SentinelUngraded,
		Feedback:    util.SentinelUngraded,
	}
	if s.User != nil {
		view.UserName = s.User.Name
	}
	if grade, ok := s.Grade(); ok {
		view.Score = strconv.Itoa(grade.Score)
		view.Feedback = grade.Feedback
	}
	return view
}

// SubmitHomework 上传完成后记录提交。文件此前已经 PUT 到存储，
// 这一步失败时可以带着同一个 fileKey 重试，不会重复占用存储。
func (s *SubmissionService) SubmitHomework(assignmentID, userID uint, fileKey, fileName, description string) (*model.Submission, error) {
	if _, err := s.assignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(fileKey) == "" || strings.TrimSpace(fileName) == "" {
		return nil, util.ErrEmptyFileName
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		FileKey:      fileKey,
		FileName:     fileName,
		Description:  description,
		SubmittedAt:  time.Now(),
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListForAssignment 返回作业下全部提交的最新快照
func (s *SubmissionService) ListForAssignment(assignmentID uint) ([]SubmissionView, error) {
	submissions, err := s.submissionRepo.ListByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}

	views := make([]SubmissionView, len(submissions))
	for i := range submissions {
		views[i] = NewSubmissionView(&submissions[i])
	}
	return views, nil
}

func (s *SubmissionService) Get(id uint) (*model.Submission, error) {
	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}
