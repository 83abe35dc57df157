package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"bytes"
	"context"
	"errors"
	"io"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo       *repository.UserRepository
	storageService *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storageService *StorageService) *UserService {
	return &UserService{userRepo: userRepo, storageService: storageService}
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfileUpdate struct {
	Name      string `json:"name"`
	StudentNo string `json:"studentNo"`
	College   string `json:"college"`
	Major     string `json:"major"`
}

func (s *UserService) UpdateProfile(id uint, update ProfileUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if update.Name != "" {
		fields["name"] = update.Name
	}
	if update.StudentNo != "" {
		fields["student_no"] = update.StudentNo
	}
	if update.College != "" {
		fields["college"] = update.College
	}
	if update.Major != "" {
		fields["major"] = update.Major
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

type SettingsUpdate struct {
	Language    *string `json:"language"`
	EmailNotify *bool   `json:"emailNotify"`
}

func (s *UserService) UpdateSettings(id uint, update SettingsUpdate) error {
	fields := map[string]interface{}{}
	if update.Language != nil {
		fields["language"] = *update.Language
	}
	if update.EmailNotify != nil {
		fields["email_notify"] = *update.EmailNotify
	}
	if len(fields) == 0 {
		return nil
	}
	return s.userRepo.UpdateFields(id, fields)
}

// ChangePassword 校验旧密码后更换
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return util.ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return errors.New("新密码长度至少6位")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(id, map[string]interface{}{"password": string(hashed)})
}

// UploadAvatar 头像不走预签名直传，直接 multipart 到服务端再转存
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, fileName string, reader io.Reader, size int64) (string, error) {
	// 不信任请求头里的 Content-Type，按文件头嗅探
	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	mimeType, err := util.ValidateMimeType(bytes.NewReader(head[:n]), []string{util.MimeImage})
	if err != nil {
		return "", errors.New("头像必须是图片文件")
	}
	if err := s.storageService.ValidateSize(size); err != nil {
		return "", err
	}

	key := buildObjectKey(fileName, userID, 0)
	body := io.MultiReader(bytes.NewReader(head[:n]), reader)
	if err := s.storageService.Upload(ctx, key, body, size, mimeType); err != nil {
		return "", err
	}

	url, err := s.storageService.DownloadURL(ctx, key)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar": url}); err != nil {
		return "", err
	}
	return url, nil
}
