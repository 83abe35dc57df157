package service

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/util"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// TransferProvider 抽象对象存储：签发上传/下载地址，读写对象
type TransferProvider interface {
	PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// LocalTransferProvider 本地磁盘实现，开发环境用。
// 上传地址指向本服务的 PUT /api/uploads/*key 路由。
type LocalTransferProvider struct {
	Config  *config.StorageConfig
	BaseURL string
}

func (p *LocalTransferProvider) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return p.BaseURL + "/api/uploads/" + key, nil
}

func (p *LocalTransferProvider) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if _, err := os.Stat(filepath.Join(p.Config.LocalPath, key)); err != nil {
		return "", err
	}
	return p.BaseURL + "/uploads/" + key, nil
}

func (p *LocalTransferProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	dst := filepath.Join(p.Config.LocalPath, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalTransferProvider) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, key))
}

// MinioTransferProvider MinIO 实现，预签名地址直传
type MinioTransferProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioTransferProvider(cfg *config.StorageConfig) (*MinioTransferProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioTransferProvider{Config: cfg, Client: client}, nil
}

func (p *MinioTransferProvider) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := p.Client.PresignedPutObject(ctx, p.Config.MinioBucket, key, expiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *MinioTransferProvider) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, key, expiry, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *MinioTransferProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioTransferProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, key, minio.RemoveObjectOptions{})
}

// UploadTarget 一次上传的存储键和一次性上传地址
type UploadTarget struct {
	FileKey   string `json:"fileKey"`
	UploadURL string `json:"uploadUrl"`
}

// StorageService 文件中转：先领上传地址再直传，下载走限时地址。
// 上传地址必须先签发成功，PUT 才能进行；存储键只有在后续的提交/记录
// 调用落库后才算与业务数据关联，中途失败会留下孤儿文件（已知缺口，
// 记录调用可携带同一个存储键重试）。
type StorageService struct {
	Provider  TransferProvider
	URLExpiry time.Duration
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider TransferProvider
	if cfg.Storage.Type == util.StorageMinio {
		p, err := NewMinioTransferProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalTransferProvider{Config: &cfg.Storage, BaseURL: cfg.Server.BaseURL}
	}

	return &StorageService{Provider: provider, URLExpiry: cfg.Storage.URLExpiry}
}

// ValidateSize 上限 20MB，恰好等于上限允许。必须在签发上传地址之前调用，
// 后端存储不做大小校验。
func (s *StorageService) ValidateSize(size int64) error {
	if size > util.MaxUploadBytes {
		return util.ErrFileTooLarge
	}
	return nil
}

// CreateUploadTarget 为命名文件签发存储键和一次性上传地址
func (s *StorageService) CreateUploadTarget(ctx context.Context, fileName string, ownerID uint, courseID uint, size int64) (*UploadTarget, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, util.ErrEmptyFileName
	}
	if err := s.ValidateSize(size); err != nil {
		return nil, err
	}

	key := buildObjectKey(fileName, ownerID, courseID)
	uploadURL, err := s.Provider.PresignUpload(ctx, key, s.URLExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadTarget{FileKey: key, UploadURL: uploadURL}, nil
}

// DownloadURL 为已存文件签发限时下载地址
func (s *StorageService) DownloadURL(ctx context.Context, fileKey string) (string, error) {
	if strings.TrimSpace(fileKey) == "" {
		return "", util.ErrEmptyFileName
	}
	return s.Provider.PresignDownload(ctx, fileKey, s.URLExpiry)
}

// PutToURL 向一次性上传地址 PUT 字节流，非 2xx 一律视为硬失败，
// 不分片也不续传。
func (s *StorageService) PutToURL(ctx context.Context, uploadURL string, reader io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, reader)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", util.MimeOctetStream)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("upload failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// Upload 服务端直传（头像、课程资料等走 multipart 的场景）
func (s *StorageService) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return s.Provider.Put(ctx, key, reader, size, contentType)
}

func buildObjectKey(fileName string, ownerID uint, courseID uint) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	now := time.Now()
	return fmt.Sprintf("%d/%02d/c%d/u%d/%s_%s",
		now.Year(), now.Month(), courseID, ownerID, model.GenerateUUID()[:8], base)
}
