package service

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaterialService 课程资料的上传与访问。视频资料上传后用 ffprobe
// 补齐时长和格式，并抓帧生成缩略图。
type MaterialService struct {
	materialRepo   *repository.MaterialRepository
	storageService *StorageService
	storageConfig  *config.StorageConfig
	logger         *zap.Logger
}

func NewMaterialService(materialRepo *repository.MaterialRepository, storageService *StorageService, cfg *config.Config, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materialRepo:   materialRepo,
		storageService: storageService,
		storageConfig:  &cfg.Storage,
		logger:         logger,
	}
}

// Upload 教师通过 multipart 上传课程资料
func (s *MaterialService) Upload(ctx context.Context, courseID, courseWeekID, uploaderID uint, fileName string, reader io.Reader, size int64, contentType string) (*model.Material, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, util.ErrEmptyFileName
	}
	if err := s.storageService.ValidateSize(size); err != nil {
		return nil, err
	}

	key := buildObjectKey(fileName, uploaderID, courseID)
	if err := s.storageService.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	material := &model.Material{
		CourseID:     courseID,
		CourseWeekID: courseWeekID,
		Name:         fileName,
		Type:         materialTypeOf(fileName, contentType),
		FileKey:      key,
		Size:         size,
		UploaderID:   uploaderID,
	}

	// 视频补元信息，失败只记日志，不影响资料本身入库
	if material.Type == model.MaterialVideo && s.storageConfig.Type == util.StorageLocal {
		s.probeVideo(material)
	}

	if err := s.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) probeVideo(material *model.Material) {
	videoPath := filepath.Join(s.storageConfig.LocalPath, material.FileKey)
	info, err := util.GetVideoInfo(videoPath)
	if err != nil {
		s.logger.Warn("获取视频信息失败", zap.String("fileKey", material.FileKey), zap.Error(err))
		return
	}
	material.Duration = info.Duration
	material.Format = info.Format

	thumbKey := strings.TrimSuffix(material.FileKey, filepath.Ext(material.FileKey)) + "_thumb.jpg"
	thumbPath := filepath.Join(s.storageConfig.LocalPath, thumbKey)
	if err := util.GenerateThumbnail(videoPath, thumbPath, "00:00:01"); err != nil {
		s.logger.Warn("生成视频缩略图失败", zap.String("fileKey", material.FileKey), zap.Error(err))
		return
	}
	material.Thumbnail = thumbKey
	if _, err := os.Stat(thumbPath); err != nil {
		material.Thumbnail = ""
	}
}

func (s *MaterialService) Get(id uint) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("material not found")
		}
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) ListByCourse(courseID uint) ([]model.Material, error) {
	return s.materialRepo.ListByCourse(courseID)
}

// DownloadURL 签发限时下载地址并累计浏览次数
func (s *MaterialService) DownloadURL(ctx context.Context, id uint) (string, error) {
	material, err := s.Get(id)
	if err != nil {
		return "", err
	}

	url, err := s.storageService.DownloadURL(ctx, material.FileKey)
	if err != nil {
		return "", err
	}

	if err := s.materialRepo.IncrementViewCount(id); err != nil {
		s.logger.Warn("累计浏览次数失败", zap.Uint("materialId", id), zap.Error(err))
	}
	return url, nil
}

func materialTypeOf(fileName, contentType string) model.MaterialType {
	if util.IsVideo(contentType) || util.HasVideoExtension(fileName) {
		return model.MaterialVideo
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return model.MaterialPDF
	case ".ppt", ".pptx":
		return model.MaterialPPT
	case ".ipynb":
		return model.MaterialNotebook
	default:
		return model.MaterialOther
	}
}
