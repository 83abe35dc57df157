package repository

import (
	"blackboard_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	err := r.DB.First(&material, id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) ListByCourse(courseID uint) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Where("course_id = ?", courseID).Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) ListAll() ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) IncrementViewCount(id uint) error {
	return r.DB.Model(&model.Material{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
