package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary 课程列表
// @Description 学生返回已选课程，教师返回自己开设的课程
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListForUser(claims.UserID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.CourseService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Weeks godoc
// @Summary 课程教学周内容
// @Description 按周返回挂载的资料、作业、测验和问卷
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseWeek}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/weeks [get]
func (c *CourseController) Weeks(ctx *gin.Context) {
	weeks, err := c.CourseService.Weeks(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, weeks)
}

// CreateWeek godoc
// @Summary 新建教学周
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body service.WeekInput true "教学周信息"
// @Success 201 {object} util.Response{data=model.CourseWeek}
// @Router /api/courses/{id}/weeks [post]
func (c *CourseController) CreateWeek(ctx *gin.Context) {
	var input service.WeekInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	week, err := c.CourseService.CreateWeek(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, week)
}

// Enroll godoc
// @Summary 选课
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.Enroll(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, "选课失败，可能已经选过该课程")
		}
		return
	}
	util.Success(ctx, nil)
}
