package service

import (
	"blackboard_backend/internal/model"
	"blackboard_backend/internal/repository"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAvatarSniffsImageType(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	user := createTestUser(t, db, "avataruser", model.Student)
	svc := NewUserService(userRepo, newFakeStorage())

	// PNG 文件头，Content-Type 靠嗅探而不是请求头
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	url, err := svc.UploadAvatar(context.Background(), user.ID, "me.png", bytes.NewReader(png), int64(len(png)))
	require.NoError(t, err)
	assert.Contains(t, url, "download")

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.Avatar)
}

func TestUploadAvatarRejectsNonImage(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	user := createTestUser(t, db, "avataruser2", model.Student)
	svc := NewUserService(userRepo, newFakeStorage())

	content := []byte("%PDF-1.7 这不是图片")
	_, err := svc.UploadAvatar(context.Background(), user.ID, "resume.pdf", bytes.NewReader(content), int64(len(content)))
	require.Error(t, err)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Avatar)
}
