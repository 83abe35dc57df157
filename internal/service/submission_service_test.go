package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitHomework(t *testing.T) {
	db := newTestDB(t)
	assignmentRepo, submissionRepo := newTestRepos(db)
	svc := NewSubmissionService(submissionRepo, assignmentRepo)

	student := createTestUser(t, db, "xiaohong", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)

	submission, err := svc.SubmitHomework(assignment.ID, student.ID, "2026/03/c1/u2/hw.zip", "hw.zip", "第一次提交")
	require.NoError(t, err)
	assert.NotZero(t, submission.ID)
	assert.Nil(t, submission.Score)
	assert.Nil(t, submission.Feedback)
	assert.False(t, submission.Graded())

	// 作业不存在
	_, err = svc.SubmitHomework(9999, student.ID, "key", "a.pdf", "")
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)

	// 缺少文件信息
	_, err = svc.SubmitHomework(assignment.ID, student.ID, "", "a.pdf", "")
	assert.ErrorIs(t, err, util.ErrEmptyFileName)
	_, err = svc.SubmitHomework(assignment.ID, student.ID, "key", "  ", "")
	assert.ErrorIs(t, err, util.ErrEmptyFileName)
}

func TestListForAssignmentSnapshot(t *testing.T) {
	db := newTestDB(t)
	assignmentRepo, submissionRepo := newTestRepos(db)
	svc := NewSubmissionService(submissionRepo, assignmentRepo)

	student := createTestUser(t, db, "xiaoliang", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)

	views, err := svc.ListForAssignment(assignment.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	submission := createTestSubmission(t, db, assignment.ID, student.ID, "2026/03/c1/u3/hw.pdf")

	// 未批改：score 和 feedback 都渲染哨兵值
	views, err = svc.ListForAssignment(assignment.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, util.SentinelUngraded, views[0].Score)
	assert.Equal(t, util.SentinelUngraded, views[0].Feedback)
	assert.Equal(t, "xiaoliang", views[0].UserName)

	// 批改落库后重新拉取，快照反映最新状态
	require.NoError(t, submissionRepo.UpdateGrade(submission.ID, 85, "思路正确，代码可读性待提升"))

	views, err = svc.ListForAssignment(assignment.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "85", views[0].Score)
	assert.Equal(t, "思路正确，代码可读性待提升", views[0].Feedback)
}

func TestGradeBothOrNeither(t *testing.T) {
	db := newTestDB(t)
	_, submissionRepo := newTestRepos(db)

	student := createTestUser(t, db, "xiaogang", model.Student)
	assignment := createTestAssignment(t, db, time.Now().AddDate(0, 0, 3), 100)
	submission := createTestSubmission(t, db, assignment.ID, student.ID, "key")

	// 未批改时两列都为空
	stored, err := submissionRepo.FindByID(submission.ID)
	require.NoError(t, err)
	_, ok := stored.Grade()
	assert.False(t, ok)

	// 评语允许为空字符串，但批改后两列必须同时有值
	require.NoError(t, submissionRepo.UpdateGrade(submission.ID, 70, ""))

	stored, err = submissionRepo.FindByID(submission.ID)
	require.NoError(t, err)
	grade, ok := stored.Grade()
	require.True(t, ok)
	assert.Equal(t, 70, grade.Score)
	assert.Equal(t, "", grade.Feedback)
}
