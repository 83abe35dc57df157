package database

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

// 建表语句必须同时被 MySQL 和 SQLite 接受，
// 时间戳列的默认值写法曾让 SQLite 建不了 users 表
func TestMigrateOnSQLite(t *testing.T) {
	db := newMemoryDB(t)
	require.NoError(t, Migrate(db))

	user := model.User{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "hashed",
		Role:     model.Student,
	}
	require.NoError(t, db.Create(&user).Error)

	var loaded model.User
	require.NoError(t, db.First(&loaded, user.ID).Error)
	assert.Equal(t, "zhangsan@example.com", loaded.Email)
}

func TestMigrateSeedsDefaultCourse(t *testing.T) {
	db := newMemoryDB(t)
	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&model.Course{}).Count(&count).Error)
	assert.Positive(t, count)

	// 重复迁移不重复写入种子数据
	require.NoError(t, Migrate(db))
	var again int64
	require.NoError(t, db.Model(&model.Course{}).Count(&again).Error)
	assert.Equal(t, count, again)
}

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug 模式默认迁移", "debug", false, true},
		{"release 模式默认跳过", "release", false, false},
		{"release 模式 -migrate 强制迁移", "release", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ForceMigrate: tt.force}
			cfg.Server.Mode = tt.mode
			assert.Equal(t, tt.want, shouldMigrate(cfg))
		})
	}
}
