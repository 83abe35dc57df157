package repository

import (
	"blackboard_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Preload("User").Preload("Assignment").First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByAssignment 返回后端给出的顺序，调用方每次变更后重新拉取
func (r *SubmissionRepository) ListByAssignment(assignmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("assignment_id = ?", assignmentID).
		Preload("User").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByAssignmentAndUser(assignmentID, userID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		Order("submitted_at DESC").
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// UpdateGrade 分数与评语必须同一条语句写入，保证不出现半批改状态
func (r *SubmissionRepository) UpdateGrade(id uint, score int, feedback string) error {
	result := r.DB.Model(&model.Submission{}).Where("id = ?", id).Updates(map[string]interface{}{
		"score":    score,
		"feedback": feedback,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubmissionRepository) CountByAssignment(assignmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).Where("assignment_id = ?", assignmentID).Count(&count).Error
	return count, err
}
