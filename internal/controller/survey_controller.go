package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	SurveyService *service.SurveyService
}

func NewSurveyController(surveyService *service.SurveyService) *SurveyController {
	return &SurveyController{SurveyService: surveyService}
}

// SurveySubmitRequest 问卷答卷
// swagger:model SurveySubmitRequest
type SurveySubmitRequest struct {
	Answers []service.SurveyAnswer `json:"answers" binding:"required"`
}

// List godoc
// @Summary 问卷列表
// @Tags 问卷
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Survey}
// @Router /api/surveys [get]
func (c *SurveyController) List(ctx *gin.Context) {
	surveys, err := c.SurveyService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, surveys)
}

// Get godoc
// @Summary 问卷详情
// @Tags 问卷
// @Produce  json
// @Param   id path int true "问卷ID"
// @Success 200 {object} util.Response{data=model.Survey}
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/surveys/{id} [get]
func (c *SurveyController) Get(ctx *gin.Context) {
	survey, err := c.SurveyService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, survey)
}

// Create godoc
// @Summary 新建问卷
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Param   courseId query int true "课程ID"
// @Param   courseWeekId query int false "教学周ID"
// @Param   body body service.SurveyInput true "问卷内容"
// @Success 201 {object} util.Response{data=model.Survey}
// @Router /api/surveys [post]
func (c *SurveyController) Create(ctx *gin.Context) {
	var input service.SurveyInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.SurveyService.Create(
		util.MustParseUint(ctx.Query("courseId")),
		util.MustParseUint(ctx.Query("courseWeekId")),
		input,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, survey)
}

// Update godoc
// @Summary 编辑问卷
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Param   id path int true "问卷ID"
// @Param   body body service.SurveyInput true "问卷内容"
// @Success 200 {object} util.Response{data=model.Survey}
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/surveys/{id} [put]
func (c *SurveyController) Update(ctx *gin.Context) {
	var input service.SurveyInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.SurveyService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, survey)
}

// Submit godoc
// @Summary 提交问卷答卷
// @Description 必答题全部作答后才接受，每人一份
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Param   id path int true "问卷ID"
// @Param   body body SurveySubmitRequest true "答卷内容"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "必答题未作答"
// @Router /api/surveys/{id}/submit [post]
func (c *SurveyController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SurveySubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SurveyService.SubmitResponse(util.MustParseUint(ctx.Param("id")), claims.UserID, req.Answers); err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}
