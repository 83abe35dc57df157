package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// Upload godoc
// @Summary 上传课程资料
// @Description 教师 multipart 上传，字段名 file。视频资料自动提取时长并生成缩略图。
// @Tags 资料
// @Accept  multipart/form-data
// @Produce  json
// @Param   courseId query int true "课程ID"
// @Param   courseWeekId query int false "教学周ID"
// @Param   file formData file true "资料文件"
// @Success 201 {object} util.Response{data=model.Material}
// @Failure 400 {object} util.Response "文件缺失或超过大小限制"
// @Router /api/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
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

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	material, err := c.MaterialService.Upload(
		ctx.Request.Context(),
		util.MustParseUint(ctx.Query("courseId")),
		util.MustParseUint(ctx.Query("courseWeekId")),
		claims.UserID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, material)
}

// List godoc
// @Summary 课程资料列表
// @Tags 资料
// @Produce  json
// @Param   courseId query int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Material}
// @Router /api/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	materials, err := c.MaterialService.ListByCourse(util.MustParseUint(ctx.Query("courseId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// DownloadURL godoc
// @Summary 资料下载地址
// @Description 返回限时下载地址并累计浏览次数
// @Tags 资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id}/download-url [get]
func (c *MaterialController) DownloadURL(ctx *gin.Context) {
	url, err := c.MaterialService.DownloadURL(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"downloadUrl": url})
}
