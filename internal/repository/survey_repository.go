package repository

import (
	"blackboard_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) FindByID(id uint) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&survey, id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *SurveyRepository) ListAll() ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.DB.Order("created_at DESC").Find(&surveys).Error
	return surveys, err
}

func (r *SurveyRepository) Create(survey *model.Survey) error {
	return r.DB.Create(survey).Error
}

// UpdateWithQuestions 问卷信息和题目在同一事务里整体替换
func (r *SurveyRepository) UpdateWithQuestions(survey *model.Survey, questions []model.SurveyQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Survey{}).Where("id = ?", survey.ID).Updates(map[string]interface{}{
			"name":        survey.Name,
			"description": survey.Description,
			"status":      survey.Status,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("survey_id = ?", survey.ID).Delete(&model.SurveyQuestion{}).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].SurveyID = survey.ID
			questions[i].Order = i + 1
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *SurveyRepository) CreateResponse(resp *model.SurveyResponse) error {
	return r.DB.Create(resp).Error
}

func (r *SurveyRepository) CountResponses(surveyID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SurveyResponse{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}
