package repository

import (
	"blackboard_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListForUser 学生取已选课程，教师取自己开设的课程
func (r *CourseRepository) ListForUser(userID uint, role model.UserRole) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Preload("Instructor")
	if role == model.Teacher {
		query = query.Where("instructor_id = ?", userID)
	} else if role == model.Student {
		query = query.Joins("JOIN course_enrollments ON course_enrollments.course_id = courses.id").
			Where("course_enrollments.user_id = ? AND course_enrollments.deleted_at IS NULL", userID)
	}
	err := query.Find(&courses).Error
	return courses, err
}

// FindWeeks 按周取课程内容，预加载每周挂载的资料/作业/测验/问卷
func (r *CourseRepository) FindWeeks(courseID uint) ([]model.CourseWeek, error) {
	var weeks []model.CourseWeek
	err := r.DB.Where("course_id = ?", courseID).
		Preload("Materials").
		Preload("Assignments").
		Preload("Quizzes").
		Preload("Surveys").
		Order("week ASC").
		Find(&weeks).Error
	return weeks, err
}

func (r *CourseRepository) CreateWeek(week *model.CourseWeek) error {
	return r.DB.Create(week).Error
}

func (r *CourseRepository) Enroll(courseID, userID uint) error {
	return r.DB.Create(&model.CourseEnrollment{CourseID: courseID, UserID: userID}).Error
}

func (r *CourseRepository) CountStudents(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseEnrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
