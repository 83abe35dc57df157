package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNoFile     = errors.New("提交记录没有关联文件，无法进行AI批改")
	ErrScoreRequired        = errors.New("分数不能为空")
	ErrScoreOutOfRange      = errors.New("分数超出作业满分范围")
	ErrFileTooLarge         = errors.New("文件大小超过20MB限制")
	ErrEmptyFileName        = errors.New("文件名不能为空")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrSurveyNotFound       = errors.New("survey not found")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
)
