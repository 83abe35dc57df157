package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	quizRepo       *repository.QuizRepository
	storageService *StorageService
	aiService      *AIService
}

func NewQuizService(quizRepo *repository.QuizRepository, storageService *StorageService, aiService *AIService) *QuizService {
	return &QuizService{
		quizRepo:       quizRepo,
		storageService: storageService,
		aiService:      aiService,
	}
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetForStudent 学生拿到的测验不带参考答案
func (s *QuizService) GetForStudent(id uint) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	for i := range quiz.Questions {
		quiz.Questions[i].Answer = ""
	}
	return quiz, nil
}

func (s *QuizService) List() ([]model.Quiz, error) {
	return s.quizRepo.ListAll()
}

type QuizInput struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Duration    int                  `json:"duration"`
	TotalScore  int                  `json:"totalScore"`
	Status      string               `json:"status"`
	Questions   []model.QuizQuestion `json:"questions"`
}

func (s *QuizService) Create(courseID, courseWeekID uint, input QuizInput) (*model.Quiz, error) {
	quiz := &model.Quiz{
		CourseID:     courseID,
		CourseWeekID: courseWeekID,
		Name:         input.Name,
		Description:  input.Description,
		Duration:     input.Duration,
		TotalScore:   input.TotalScore,
		Status:       input.Status,
		Questions:    input.Questions,
	}
	if quiz.Duration <= 0 {
		quiz.Duration = 30
	}
	if quiz.Status == "" {
		quiz.Status = "draft"
	}
	for i := range quiz.Questions {
		quiz.Questions[i].Order = i + 1
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Update 整体替换测验和题目
func (s *QuizService) Update(id uint, input QuizInput) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	quiz.Name = input.Name
	quiz.Description = input.Description
	if input.Duration > 0 {
		quiz.Duration = input.Duration
	}
	if input.TotalScore > 0 {
		quiz.TotalScore = input.TotalScore
	}
	if input.Status != "" {
		quiz.Status = input.Status
	}

	if err := s.quizRepo.UpdateWithQuestions(quiz, input.Questions); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// GenerateQuestion 根据已上传参考文件让 AI 出一道单选题，
// 只返回草稿，教师编辑确认后才随测验落库
func (s *QuizService) GenerateQuestion(ctx context.Context, fileKey string) (*GeneratedQuestion, error) {
	fileURL, err := s.storageService.DownloadURL(ctx, fileKey)
	if err != nil {
		return nil, err
	}
	return s.aiService.GenerateQuestion(ctx, fileURL)
}

type QuizAnswer struct {
	QuestionID uint   `json:"questionId"`
	Answer     string `json:"answer"`
}

// Submit 学生提交作答，选择题对照答案自动判分，每人只能交一次
func (s *QuizService) Submit(quizID, userID uint, answers []QuizAnswer) (*model.QuizSubmission, error) {
	quiz, err := s.Get(quizID)
	if err != nil {
		return nil, err
	}

	if _, err := s.quizRepo.FindSubmission(quizID, userID); err == nil {
		return nil, util.ErrQuizAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	answerByQuestion := make(map[uint]string, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuestionID] = a.Answer
	}

	score := 0
	for _, q := range quiz.Questions {
		if q.Type == model.ShortAnswer {
			continue // 简答题不自动判分
		}
		if answer, ok := answerByQuestion[q.ID]; ok && answer == q.Answer {
			score += q.Score
		}
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	submission := &model.QuizSubmission{
		QuizID:      quizID,
		UserID:      userID,
		Answers:     string(raw),
		Score:       score,
		SubmittedAt: time.Now(),
	}
	if err := s.quizRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *QuizService) Result(quizID, userID uint) (*model.QuizSubmission, error) {
	sub, err := s.quizRepo.FindSubmission(quizID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return sub, nil
}
