package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitHomeworkRequest 提交作业请求，fileKey 来自此前的上传地址签发
// swagger:model SubmitHomeworkRequest
type SubmitHomeworkRequest struct {
	FileKey     string `json:"fileKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	Description string `json:"description"`
}

// List godoc
// @Summary 作业提交列表
// @Description 返回作业下全部提交的最新快照，未批改的提交 score 与 feedback 为"待批改"
// @Tags 提交
// @Produce  json
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionView}
// @Router /api/assignments/{id}/submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	views, err := c.SubmissionService.ListForAssignment(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Submit godoc
// @Summary 提交作业
// @Description 文件已 PUT 到上传地址后，记录这次提交。记录失败可携带同一个 fileKey 重试。
// @Tags 提交
// @Accept  json
// @Produce  json
// @Param   id path int true "作业ID"
// @Param   body body SubmitHomeworkRequest true "提交信息"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req SubmitHomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.SubmissionService.SubmitHomework(
		util.MustParseUint(ctx.Param("id")),
		claims.UserID,
		req.FileKey,
		req.FileName,
		req.Description,
	)
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, submission)
}
