package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignmentService(t *testing.T) (*AssignmentService, *repository.AssignmentRepository, *repository.SubmissionRepository) {
	db := newTestDB(t)
	assignmentRepo, submissionRepo := newTestRepos(db)
	courseRepo := repository.NewCourseRepository(db)
	return NewAssignmentService(assignmentRepo, submissionRepo, courseRepo), assignmentRepo, submissionRepo
}

func TestAssignmentOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		overdue  bool
	}{
		{"截止前一秒", now.Add(time.Second), false},
		{"恰好等于截止时间", now, false},
		{"截止后一秒", now.Add(-time.Second), true},
		{"截止后一天", now.AddDate(0, 0, -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Assignment{Deadline: tt.deadline}
			assert.Equal(t, tt.overdue, a.IsOverdue(now))
		})
	}
}

func TestAssignmentDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"还剩半天算一天", now.Add(12 * time.Hour), 1},
		{"还剩一小时算一天", now.Add(time.Hour), 1},
		{"还剩两天半算三天", now.Add(60 * time.Hour), 3},
		{"恰好等于当前时刻", now, 0},
		{"已逾期半天", now.Add(-12 * time.Hour), 0},
		{"已逾期两天", now.Add(-48 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Assignment{Deadline: tt.deadline}
			assert.Equal(t, tt.want, a.DaysRemaining(now))
		})
	}
}

func TestUpdateDraftPersistsAllFields(t *testing.T) {
	svc, repo, _ := newAssignmentService(t)

	deadline := time.Now().AddDate(0, 0, 7).Truncate(time.Second)
	assignment := createTestAssignment(t, repo.DB, deadline, 100)

	newDeadline := deadline.AddDate(0, 0, 3)
	view, err := svc.UpdateDraft(assignment.ID, AssignmentDraft{
		Name:         "卷积网络作业",
		Description:  "改为实现 CNN",
		Deadline:     newDeadline,
		PublishDate:  time.Now().Truncate(time.Second),
		MaxScore:     80,
		Requirements: []string{"Python 3.10", "PyTorch"},
	})
	require.NoError(t, err)

	assert.Equal(t, "卷积网络作业", view.Name)
	assert.Equal(t, 80, view.MaxScore)
	assert.Equal(t, []string{"Python 3.10", "PyTorch"}, view.Requirements)

	// 读库确认整份草稿都已落地
	stored, err := repo.FindByID(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, "卷积网络作业", stored.Name)
	assert.Equal(t, "改为实现 CNN", stored.Description)
	assert.Equal(t, 80, stored.MaxScore)
	assert.WithinDuration(t, newDeadline, stored.Deadline, time.Second)
}

func TestUpdateDraftRejectsInvalidDraft(t *testing.T) {
	svc, repo, _ := newAssignmentService(t)
	assignment := createTestAssignment(t, repo.DB, time.Now().AddDate(0, 0, 7), 100)

	_, err := svc.UpdateDraft(assignment.ID, AssignmentDraft{
		Name:     "",
		Deadline: time.Now(),
		MaxScore: 100,
	})
	assert.Error(t, err)

	_, err = svc.UpdateDraft(assignment.ID, AssignmentDraft{
		Name:     "作业",
		Deadline: time.Now(),
		MaxScore: 0,
	})
	assert.Error(t, err)

	// 校验失败不应改动原记录
	stored, err := repo.FindByID(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, "神经网络作业", stored.Name)
	assert.Equal(t, 100, stored.MaxScore)
}

func TestUpdateDraftMissingAssignment(t *testing.T) {
	svc, _, _ := newAssignmentService(t)

	_, err := svc.UpdateDraft(9999, AssignmentDraft{
		Name:     "作业",
		Deadline: time.Now(),
		MaxScore: 100,
	})
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}

func TestListForStudentScoreSentinels(t *testing.T) {
	svc, assignmentRepo, submissionRepo := newAssignmentService(t)

	student := createTestUser(t, assignmentRepo.DB, "xiaoming", model.Student)
	notDone := createTestAssignment(t, assignmentRepo.DB, time.Now().AddDate(0, 0, 7), 100)
	submitted := createTestAssignment(t, assignmentRepo.DB, time.Now().AddDate(0, 0, 7), 100)
	graded := createTestAssignment(t, assignmentRepo.DB, time.Now().AddDate(0, 0, 7), 100)

	createTestSubmission(t, submissionRepo.DB, submitted.ID, student.ID, "2026/03/c1/u1/a.pdf")
	gradedSub := createTestSubmission(t, submissionRepo.DB, graded.ID, student.ID, "2026/03/c1/u1/b.pdf")
	require.NoError(t, submissionRepo.UpdateGrade(gradedSub.ID, 92, "完成得很好"))

	views, err := svc.ListForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := make(map[uint]StudentAssignmentView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	assert.Equal(t, util.SentinelNotDone, byID[notDone.ID].Score)
	assert.False(t, byID[notDone.ID].Completed)

	assert.Equal(t, util.SentinelUngraded, byID[submitted.ID].Score)
	assert.True(t, byID[submitted.ID].Completed)

	assert.Equal(t, "92", byID[graded.ID].Score)
	assert.True(t, byID[graded.ID].Completed)
}
