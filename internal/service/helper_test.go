package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/pkg/database"
	"blackboard_backend/pkg/logger"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestAssignment(t *testing.T, db *gorm.DB, deadline time.Time, maxScore int) *model.Assignment {
	t.Helper()
	assignment := &model.Assignment{
		CourseID:    1,
		Name:        "神经网络作业",
		Description: "实现一个两层感知机",
		Deadline:    deadline,
		PublishDate: time.Now().AddDate(0, 0, -7),
		MaxScore:    maxScore,
	}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

func createTestSubmission(t *testing.T, db *gorm.DB, assignmentID, userID uint, fileKey string) *model.Submission {
	t.Helper()
	submission := &model.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		FileKey:      fileKey,
		FileName:     "answer.pdf",
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, db.Create(submission).Error)
	return submission
}

func newTestRepos(db *gorm.DB) (*repository.AssignmentRepository, *repository.SubmissionRepository) {
	return repository.NewAssignmentRepository(db), repository.NewSubmissionRepository(db)
}
