package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"errors"
	"os"

	"github.com/gin-gonic/gin"
)

type FileController struct {
	StorageService *service.StorageService
}

func NewFileController(storageService *service.StorageService) *FileController {
	return &FileController{StorageService: storageService}
}

// UploadURLRequest 签发上传地址的请求，大小校验在签发之前完成
// swagger:model UploadURLRequest
type UploadURLRequest struct {
	FileName string `json:"fileName" binding:"required"`
	Size     int64  `json:"size" binding:"required,min=1"`
	CourseID uint   `json:"courseId"`
}

// DownloadURLRequest 签发下载地址的请求
// swagger:model DownloadURLRequest
type DownloadURLRequest struct {
	FileKey string `json:"fileKey" binding:"required"`
}

// CreateUploadURL godoc
// @Summary 签发上传地址
// @Description 校验文件大小（上限20MB，恰好20MB允许）后返回存储键和一次性上传地址，之后客户端直接向该地址 PUT 文件内容
// @Tags 文件
// @Accept  json
// @Produce  json
// @Param   body body UploadURLRequest true "文件信息"
// @Success 200 {object} util.Response{data=service.UploadTarget}
// @Failure 400 {object} util.Response "文件名为空"
// @Failure 413 {object} util.Response "文件超过20MB"
// @Router /api/files/upload-url [post]
func (c *FileController) CreateUploadURL(ctx *gin.Context) {
	var req UploadURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	target, err := c.StorageService.CreateUploadTarget(ctx.Request.Context(), req.FileName, claims.UserID, req.CourseID, req.Size)
	if err != nil {
		if errors.Is(err, util.ErrFileTooLarge) {
			util.Error(ctx, 413, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, target)
}

// CreateDownloadURL godoc
// @Summary 签发下载地址
// @Description 为已存文件返回限时下载地址
// @Tags 文件
// @Accept  json
// @Produce  json
// @Param   body body DownloadURLRequest true "文件存储键"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "文件不存在"
// @Router /api/files/download-url [post]
func (c *FileController) CreateDownloadURL(ctx *gin.Context) {
	var req DownloadURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, err := c.StorageService.DownloadURL(ctx.Request.Context(), req.FileKey)
	if err != nil {
		if os.IsNotExist(err) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, gin.H{"downloadUrl": url})
}

// ReceiveUpload godoc
// @Summary 接收直传文件（本地存储模式）
// @Description 本地存储模式下，签发的上传地址指向这个路由，请求体即文件内容
// @Tags 文件
// @Accept  octet-stream
// @Param   key path string true "文件存储键"
// @Success 200 {object} util.Response
// @Failure 413 {object} util.Response "文件超过20MB"
// @Router /api/uploads/{key} [put]
func (c *FileController) ReceiveUpload(ctx *gin.Context) {
	key := ctx.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if key == "" {
		util.BadRequest(ctx, "文件存储键不能为空")
		return
	}

	size := ctx.Request.ContentLength
	if err := c.StorageService.ValidateSize(size); err != nil {
		util.Error(ctx, 413, err.Error())
		return
	}

	if err := c.StorageService.Upload(ctx.Request.Context(), key, ctx.Request.Body, size, ctx.ContentType()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
