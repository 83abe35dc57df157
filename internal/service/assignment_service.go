package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// AssignmentService 作业的发布、编辑与学生视角的状态展示
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	submissionRepo *repository.SubmissionRepository
	courseRepo     *repository.CourseRepository
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, submissionRepo *repository.SubmissionRepository, courseRepo *repository.CourseRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		courseRepo:     courseRepo,
	}
}

// AssignmentDraft 编辑表单的一份完整草稿，保存时整体生效
type AssignmentDraft struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Deadline     time.Time `json:"deadline"`
	PublishDate  time.Time `json:"publishDate"`
	MaxScore     int       `json:"maxScore"`
	Requirements []string  `json:"requirements"`
}

func (d *AssignmentDraft) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("作业名称不能为空")
	}
	if d.MaxScore <= 0 {
		return errors.New("作业满分必须大于0")
	}
	if d.Deadline.IsZero() {
		return errors.New("截止时间不能为空")
	}
	return nil
}

// AssignmentView 作业详情视图，逾期和剩余天数按查询时刻计算
type AssignmentView struct {
	ID             uint     `json:"id"`
	CourseID       uint     `json:"courseId"`
	CourseWeekID   uint     `json:"courseWeekId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	InstructorName string   `json:"instructorName"`
	Deadline       string   `json:"deadline"`
	PublishDate    string   `json:"publishDate"`
	MaxScore       int      `json:"maxScore"`
	Requirements   []string `json:"requirements"`
	IsOverdue      bool     `json:"isOverdue"`
	DaysRemaining  int      `json:"daysRemaining"`
	SubmittedCount int64    `json:"submittedCount"`
}

func (s *AssignmentService) newAssignmentView(a *model.Assignment, now time.Time) AssignmentView {
	view := AssignmentView{
		ID:             a.ID,
		CourseID:       a.CourseID,
		CourseWeekID:   a.CourseWeekID,
		Name:           a.Name,
		Description:    a.Description,
		InstructorName: a.InstructorName,
		Deadline:       a.Deadline.Format(util.TimeFormat),
		PublishDate:    a.PublishDate.Format(util.DateFormat),
		MaxScore:       a.MaxScore,
		Requirements:   a.Requirements,
		IsOverdue:      a.IsOverdue(now),
		DaysRemaining:  a.DaysRemaining(now),
	}
	if view.Requirements == nil {
		view.Requirements = []string{}
	}
	return view
}

// StudentAssignmentView 学生作业列表项，score 渲染见 ScoreLabel
type StudentAssignmentView struct {
	AssignmentView
	Completed bool   `json:"completed"`
	Score     string `json:"score"`
}

func (s *AssignmentService) Get(id uint) (*AssignmentView, error) {
	assignment, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	view := s.newAssignmentView(assignment, time.Now())
	if count, err := s.submissionRepo.CountByAssignment(id); err == nil {
		view.SubmittedCount = count
	}
	return &view, nil
}

func (s *AssignmentService) Create(courseID, courseWeekID uint, instructorName string, draft AssignmentDraft) (*model.Assignment, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		CourseID:       courseID,
		CourseWeekID:   courseWeekID,
		Name:           draft.Name,
		Description:    draft.Description,
		InstructorName: instructorName,
		Deadline:       draft.Deadline,
		PublishDate:    draft.PublishDate,
		MaxScore:       draft.MaxScore,
		Requirements:   draft.Requirements,
	}
	if assignment.PublishDate.IsZero() {
		assignment.PublishDate = time.Now()
	}

	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// UpdateDraft 保存整份草稿：要么全部字段生效，要么记录保持原样。
// 保存成功后重新查库返回最新状态。
func (s *AssignmentService) UpdateDraft(id uint, draft AssignmentDraft) (*AssignmentView, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"name":         draft.Name,
		"description":  draft.Description,
		"deadline":     draft.Deadline,
		"publish_date": draft.PublishDate,
		"max_score":    draft.MaxScore,
		"requirements": model.StringList(draft.Requirements),
	}

	if err := s.assignmentRepo.UpdateDraft(id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	return s.Get(id)
}

// ListForStudent 学生视角的作业列表：已批改显示分数，已提交未批改
// 显示"待批改"，未提交显示"未完成"
func (s *AssignmentService) ListForStudent(userID uint) ([]StudentAssignmentView, error) {
	assignments, err := s.assignmentRepo.ListAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]StudentAssignmentView, 0, len(assignments))
	for i := range assignments {
		view := StudentAssignmentView{
			AssignmentView: s.newAssignmentView(&assignments[i], now),
			Score:          util.SentinelNotDone,
		}

		submission, err := s.submissionRepo.FindByAssignmentAndUser(assignments[i].ID, userID)
		if err == nil {
			view.Completed = true
			view.Score = util.SentinelUngraded
			if grade, ok := submission.Grade(); ok {
				view.Score = strconv.Itoa(grade.Score)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *AssignmentService) ListByCourse(courseID uint) ([]AssignmentView, error) {
	assignments, err := s.assignmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]AssignmentView, len(assignments))
	for i := range assignments {
		views[i] = s.newAssignmentView(&assignments[i], now)
	}
	return views, nil
}
