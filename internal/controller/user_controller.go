package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Me godoc
// @Summary 当前用户信息
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body service.ProfileUpdate true "资料变更"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/me/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, update)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateSettings godoc
// @Summary 更新偏好设置
// @Description 语言和邮件通知开关
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body service.SettingsUpdate true "设置变更"
// @Success 200 {object} util.Response
// @Router /api/me/settings [put]
func (c *UserController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.SettingsUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.UpdateSettings(claims.UserID, update); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ChangePasswordRequest 修改密码请求
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword godoc
// @Summary 修改密码
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "旧密码错误"
// @Router /api/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, "旧密码错误")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description multipart 表单上传，字段名 file
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "头像图片"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "不是图片或超过大小限制"
// @Router /api/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}
