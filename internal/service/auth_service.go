package service

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/util"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repository.UserRepository
	config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, config: cfg}
}

type RegisterInput struct {
	Name      string         `json:"name" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=6"`
	Role      model.UserRole `json:"role"`
	StudentNo string         `json:"studentNo"`
	College   string         `json:"college"`
	Major     string         `json:"major"`
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role != model.Teacher {
		role = model.Student // 管理员只能由已有管理员在后台提升
	}

	user := &model.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      role,
		StudentNo: input.StudentNo,
		College:   input.College,
		Major:     input.Major,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验邮箱密码，签发 JWT
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.config.JWT.Secret, s.config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	s.userRepo.UpdateFields(user.ID, map[string]interface{}{"last_login": time.Now()})
	return token, user, nil
}
