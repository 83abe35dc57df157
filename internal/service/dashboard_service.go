package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// DashboardService 首页看板的聚合数据
type DashboardService struct {
	courseRepo     *repository.CourseRepository
	assignmentRepo *repository.AssignmentRepository
	submissionRepo *repository.SubmissionRepository
	materialRepo   *repository.MaterialRepository
}

func NewDashboardService(courseRepo *repository.CourseRepository, assignmentRepo *repository.AssignmentRepository, submissionRepo *repository.SubmissionRepository, materialRepo *repository.MaterialRepository) *DashboardService {
	return &DashboardService{
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		materialRepo:   materialRepo,
	}
}

type DashboardSummary struct {
	CourseCount        int                `json:"courseCount"`
	MaterialCount      int                `json:"materialCount"`
	AverageScore       float64            `json:"averageScore"` // 已批改作业的平均分
	PendingAssignments []UpcomingDeadline `json:"pendingAssignments"`
	RecentGrades       []RecentGradeItem  `json:"recentGrades"`
}

// UpcomingDeadline 即将到期且尚未提交的作业
type UpcomingDeadline struct {
	AssignmentID  uint   `json:"assignmentId"`
	Name          string `json:"name"`
	Deadline      string `json:"deadline"`
	DaysRemaining int    `json:"daysRemaining"`
}

type RecentGradeItem struct {
	AssignmentID   uint   `json:"assignmentId"`
	AssignmentName string `json:"assignmentName"`
	Score          int    `json:"score"`
	Feedback       string `json:"feedback"`
}

// StudentSummary 学生视角的看板数据
func (s *DashboardService) StudentSummary(userID uint) (*DashboardSummary, error) {
	summary := &DashboardSummary{
		PendingAssignments: []UpcomingDeadline{},
		RecentGrades:       []RecentGradeItem{},
	}

	courses, err := s.courseRepo.ListForUser(userID, model.Student)
	if err != nil {
		return nil, err
	}
	summary.CourseCount = len(courses)

	materials, err := s.materialRepo.ListAll()
	if err != nil {
		return nil, err
	}
	summary.MaterialCount = len(materials)

	assignments, err := s.assignmentRepo.ListAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range assignments {
		a := &assignments[i]
		submission, err := s.submissionRepo.FindByAssignmentAndUser(a.ID, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if !a.IsOverdue(now) {
				summary.PendingAssignments = append(summary.PendingAssignments, UpcomingDeadline{
					AssignmentID:  a.ID,
					Name:          a.Name,
					Deadline:      a.Deadline.Format(util.TimeFormat),
					DaysRemaining: a.DaysRemaining(now),
				})
			}
			continue
		}
		if grade, ok := submission.Grade(); ok {
			summary.RecentGrades = append(summary.RecentGrades, RecentGradeItem{
				AssignmentID:   a.ID,
				AssignmentName: a.Name,
				Score:          grade.Score,
				Feedback:       grade.Feedback,
			})
		}
	}

	if len(summary.RecentGrades) > 0 {
		total := 0
		for _, g := range summary.RecentGrades {
			total += g.Score
		}
		summary.AverageScore = float64(total) / float64(len(summary.RecentGrades))
	}

	return summary, nil
}

type TeacherSummary struct {
	CourseCount   int   `json:"courseCount"`
	StudentCount  int64 `json:"studentCount"`
	UngradedCount int64 `json:"ungradedCount"`
	MaterialCount int   `json:"materialCount"`
}

// TeacherView 教师视角的看板数据
func (s *DashboardService) TeacherView(userID uint) (*TeacherSummary, error) {
	summary := &TeacherSummary{}

	courses, err := s.courseRepo.ListForUser(userID, model.Teacher)
	if err != nil {
		return nil, err
	}
	summary.CourseCount = len(courses)

	for i := range courses {
		count, err := s.courseRepo.CountStudents(courses[i].ID)
		if err != nil {
			return nil, err
		}
		summary.StudentCount += count

		materials, err := s.materialRepo.ListByCourse(courses[i].ID)
		if err != nil {
			return nil, err
		}
		summary.MaterialCount += len(materials)

		assignments, err := s.assignmentRepo.ListByCourse(courses[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range assignments {
			submissions, err := s.submissionRepo.ListByAssignment(assignments[j].ID)
			if err != nil {
				return nil, err
			}
			for k := range submissions {
				if !submissions[k].Graded() {
					summary.UngradedCount++
				}
			}
		}
	}

	return summary, nil
}
