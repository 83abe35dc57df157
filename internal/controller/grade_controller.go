package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradingService *service.GradingService
}

func NewGradeController(gradingService *service.GradingService) *GradeController {
	return &GradeController{GradingService: gradingService}
}

// AIGradeRequest AI 批改请求，可附带教师参考文件
// swagger:model AIGradeRequest
type AIGradeRequest struct {
	GraderFileKey string `json:"graderFileKey"`
}

// ConfirmGradeRequest 教师确认成绩。score 必填，feedback 可为空字符串
// swagger:model ConfirmGradeRequest
type ConfirmGradeRequest struct {
	Score    *int   `json:"score" binding:"required"`
	Feedback string `json:"feedback"`
}

// AIGrade godoc
// @Summary 请求AI批改建议
// @Description 让 AI 对提交给出建议分数和评语。建议只出现在响应中，不会写入任何存储；失败可直接重试。
// @Tags 批改
// @Accept  json
// @Produce  json
// @Param   id path int true "提交ID"
// @Param   body body AIGradeRequest false "可选的教师参考文件"
// @Success 200 {object} util.Response{data=model.GradingProposal}
// @Failure 400 {object} util.Response "提交没有关联文件"
// @Failure 404 {object} util.Response "提交不存在"
// @Failure 502 {object} util.Response "AI 服务调用失败"
// @Router /api/submissions/{id}/ai-grade [post]
func (c *GradeController) AIGrade(ctx *gin.Context) {
	var req AIGradeRequest
	ctx.ShouldBindJSON(&req) // body 可省略

	proposal, err := c.GradingService.RequestAIGrade(
		ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		req.GraderFileKey,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSubmissionNoFile):
			util.BadRequest(ctx, err.Error())
		default:
			util.Error(ctx, 502, "AI批改服务暂时不可用，请稍后重试")
		}
		return
	}
	util.Success(ctx, proposal)
}

// Confirm godoc
// @Summary 确认成绩
// @Description 教师确认成绩后落库，分数与评语同时写入。教师可修改 AI 建议后再确认。
// @Tags 批改
// @Accept  json
// @Produce  json
// @Param   id path int true "提交ID"
// @Param   body body ConfirmGradeRequest true "确认的分数和评语"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "分数缺失或超出范围"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/submissions/{id}/grade [put]
func (c *GradeController) Confirm(ctx *gin.Context) {
	var req ConfirmGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.GradingService.ConfirmGrade(util.MustParseUint(ctx.Param("id")), req.Score, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrScoreRequired), errors.Is(err, util.ErrScoreOutOfRange):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
