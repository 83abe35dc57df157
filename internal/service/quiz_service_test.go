package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, *repository.QuizRepository) {
	db := newTestDB(t)
	quizRepo := repository.NewQuizRepository(db)
	return NewQuizService(quizRepo, newFakeStorage(), newAIService("http://unused")), quizRepo
}

func createTestQuiz(t *testing.T, svc *QuizService) *model.Quiz {
	t.Helper()
	quiz, err := svc.Create(1, 0, QuizInput{
		Name:       "第一周小测",
		TotalScore: 30,
		Status:     "published",
		Questions: []model.QuizQuestion{
			{Type: model.SingleChoice, Content: "1+1=?", Options: model.StringList{"1", "2", "3"}, Answer: "1", Score: 10},
			{Type: model.SingleChoice, Content: "2+2=?", Options: model.StringList{"3", "4", "5"}, Answer: "1", Score: 10},
			{Type: model.ShortAnswer, Content: "简述梯度下降", Answer: "参考答案", Score: 10},
		},
	})
	require.NoError(t, err)
	return quiz
}

func TestQuizSubmitAutoScoring(t *testing.T) {
	svc, quizRepo := newQuizService(t)
	quiz := createTestQuiz(t, svc)
	student := createTestUser(t, quizRepo.DB, "quiztaker", model.Student)

	stored, err := svc.Get(quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 3)

	// 一对一错，简答题不计入自动得分
	submission, err := svc.Submit(quiz.ID, student.ID, []QuizAnswer{
		{QuestionID: stored.Questions[0].ID, Answer: "1"},
		{QuestionID: stored.Questions[1].ID, Answer: "0"},
		{QuestionID: stored.Questions[2].ID, Answer: "随便写写"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, submission.Score)

	// 重复提交拒绝
	_, err = svc.Submit(quiz.ID, student.ID, nil)
	assert.ErrorIs(t, err, util.ErrQuizAlreadySubmitted)
}

func TestQuizGetForStudentHidesAnswers(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := createTestQuiz(t, svc)

	forStudent, err := svc.GetForStudent(quiz.ID)
	require.NoError(t, err)
	for _, q := range forStudent.Questions {
		assert.Empty(t, q.Answer)
	}

	// 教师视角保留答案
	full, err := svc.Get(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", full.Questions[0].Answer)
}

func TestQuizUpdateReplacesQuestions(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := createTestQuiz(t, svc)

	updated, err := svc.Update(quiz.ID, QuizInput{
		Name: "第一周小测（修订）",
		Questions: []model.QuizQuestion{
			{Type: model.SingleChoice, Content: "3+3=?", Options: model.StringList{"5", "6"}, Answer: "1", Score: 20},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "第一周小测（修订）", updated.Name)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "3+3=?", updated.Questions[0].Content)
	assert.Equal(t, 1, updated.Questions[0].Order)
}
