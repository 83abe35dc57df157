package repository

import (
	"blackboard_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) ListByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ?", courseID).Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListAll() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Order("deadline ASC").Find(&assignments).Error
	return assignments, err
}

// UpdateDraft 整份草稿单条语句落库，失败则库中记录保持原样
func (r *AssignmentRepository) UpdateDraft(id uint, fields map[string]interface{}) error {
	result := r.DB.Model(&model.Assignment{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
