package controller

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Summary godoc
// @Summary 看板数据
// @Description 学生返回待交作业和近期成绩，教师返回课程与待批改统计
// @Tags 看板
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if claims.Role == model.Teacher || claims.Role == model.Admin {
		summary, err := c.DashboardService.TeacherView(claims.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, summary)
		return
	}

	summary, err := c.DashboardService.StudentSummary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
