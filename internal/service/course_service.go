package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if count, err := s.courseRepo.CountStudents(id); err == nil {
		course.StudentCount = int(count)
	}
	return course, nil
}

func (s *CourseService) ListForUser(userID uint, role model.UserRole) ([]model.Course, error) {
	return s.courseRepo.ListForUser(userID, role)
}

// Weeks 按周返回课程内容树
func (s *CourseService) Weeks(courseID uint) ([]model.CourseWeek, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.courseRepo.FindWeeks(courseID)
}

type WeekInput struct {
	Week  int    `json:"week" binding:"required,min=1"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

func (s *CourseService) CreateWeek(courseID uint, input WeekInput) (*model.CourseWeek, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	week := &model.CourseWeek{
		CourseID: courseID,
		Week:     input.Week,
		Title:    input.Title,
	}
	if input.Date != "" {
		if date, err := time.Parse(util.DateFormat, input.Date); err == nil {
			week.Date = date
		}
	}

	if err := s.courseRepo.CreateWeek(week); err != nil {
		return nil, err
	}
	return week, nil
}

func (s *CourseService) Enroll(courseID, userID uint) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.courseRepo.Enroll(courseID, userID)
}
