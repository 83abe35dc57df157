package repository

import (
	"blackboard_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// UpdateWithQuestions 测验信息和题目在同一事务里整体替换
func (r *QuizRepository) UpdateWithQuestions(quiz *model.Quiz, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Updates(map[string]interface{}{
			"name":        quiz.Name,
			"description": quiz.Description,
			"duration":    quiz.Duration,
			"total_score": quiz.TotalScore,
			"status":      quiz.Status,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].QuizID = quiz.ID
			questions[i].Order = i + 1
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *QuizRepository) CreateSubmission(sub *model.QuizSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *QuizRepository) FindSubmission(quizID, userID uint) (*model.QuizSubmission, error) {
	var sub model.QuizSubmission
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
