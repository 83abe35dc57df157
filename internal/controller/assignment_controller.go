package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// AssignmentDraftRequest 作业编辑表单，保存时整份草稿一次性生效
// swagger:model AssignmentDraftRequest
type AssignmentDraftRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Deadline     string   `json:"deadline" binding:"required"` // "2006-01-02 15:04:05" 或 RFC3339
	PublishDate  string   `json:"publishDate"`
	MaxScore     int      `json:"maxScore" binding:"required,min=1"`
	Requirements []string `json:"requirements"`
}

func (r *AssignmentDraftRequest) toDraft() (service.AssignmentDraft, error) {
	draft := service.AssignmentDraft{
		Name:         r.Name,
		Description:  r.Description,
		MaxScore:     r.MaxScore,
		Requirements: r.Requirements,
	}

	deadline, err := parseTime(r.Deadline)
	if err != nil {
		return draft, errors.New("截止时间格式不正确")
	}
	draft.Deadline = deadline

	if r.PublishDate != "" {
		publishDate, err := parseTime(r.PublishDate)
		if err != nil {
			return draft, errors.New("发布日期格式不正确")
		}
		draft.PublishDate = publishDate
	}
	return draft, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{util.TimeFormat, util.DateFormat, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unsupported time format: " + s)
}

// Get godoc
// @Summary 获取作业详情
// @Description 返回作业详情，逾期状态和剩余天数按查询时刻计算
// @Tags 作业
// @Produce  json
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=service.AssignmentView}
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	view, err := c.AssignmentService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// List godoc
// @Summary 作业列表（学生视角）
// @Description 返回全部作业及当前学生的完成状态
// @Tags 作业
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.StudentAssignmentView}
// @Router /api/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.AssignmentService.ListForStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Create godoc
// @Summary 发布作业
// @Description 教师在课程教学周下发布新作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Param   courseId query int true "课程ID"
// @Param   courseWeekId query int false "教学周ID"
// @Param   body body AssignmentDraftRequest true "作业内容"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req AssignmentDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	instructorName := ""
	if claims != nil {
		instructorName = claims.Email
	}

	assignment, err := c.AssignmentService.Create(
		util.MustParseUint(ctx.Query("courseId")),
		util.MustParseUint(ctx.Query("courseWeekId")),
		instructorName,
		draft,
	)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, assignment)
}

// Update godoc
// @Summary 保存作业草稿
// @Description 整份草稿一次性保存，失败时数据库记录保持原样
// @Tags 作业
// @Accept  json
// @Produce  json
// @Param   id path int true "作业ID"
// @Param   body body AssignmentDraftRequest true "作业草稿"
// @Success 200 {object} util.Response{data=service.AssignmentView} "保存后的最新状态"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	var req AssignmentDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.AssignmentService.UpdateDraft(util.MustParseUint(ctx.Param("id")), draft)
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, view)
}
