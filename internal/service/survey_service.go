package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SurveyService struct {
	surveyRepo *repository.SurveyRepository
}

func NewSurveyService(surveyRepo *repository.SurveyRepository) *SurveyService {
	return &SurveyService{surveyRepo: surveyRepo}
}

func (s *SurveyService) Get(id uint) (*model.Survey, error) {
	survey, err := s.surveyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) List() ([]model.Survey, error) {
	return s.surveyRepo.ListAll()
}

type SurveyInput struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Questions   []model.SurveyQuestion `json:"questions"`
}

func (s *SurveyService) Create(courseID, courseWeekID uint, input SurveyInput) (*model.Survey, error) {
	survey := &model.Survey{
		CourseID:     courseID,
		CourseWeekID: courseWeekID,
		Name:         input.Name,
		Description:  input.Description,
		Status:       input.Status,
		Questions:    input.Questions,
	}
	if survey.Status == "" {
		survey.Status = "draft"
	}
	for i := range survey.Questions {
		survey.Questions[i].Order = i + 1
	}

	if err := s.surveyRepo.Create(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) Update(id uint, input SurveyInput) (*model.Survey, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	survey.Name = input.Name
	survey.Description = input.Description
	if input.Status != "" {
		survey.Status = input.Status
	}

	if err := s.surveyRepo.UpdateWithQuestions(survey, input.Questions); err != nil {
		return nil, err
	}
	return s.Get(id)
}

type SurveyAnswer struct {
	QuestionID uint   `json:"questionId"`
	Answer     string `json:"answer"`
}

// SubmitResponse 必答题全部作答后才接受提交
func (s *SurveyService) SubmitResponse(surveyID, userID uint, answers []SurveyAnswer) error {
	survey, err := s.Get(surveyID)
	if err != nil {
		return err
	}

	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if a.Answer != "" {
			answered[a.QuestionID] = true
		}
	}
	for _, q := range survey.Questions {
		if q.Required && !answered[q.ID] {
			return errors.New("必答题未作答: " + q.Title)
		}
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	return s.surveyRepo.CreateResponse(&model.SurveyResponse{
		SurveyID:    surveyID,
		UserID:      userID,
		Answers:     string(raw),
		SubmittedAt: time.Now(),
	})
}

func (s *SurveyService) ResponseCount(surveyID uint) (int64, error) {
	return s.surveyRepo.CountResponses(surveyID)
}
