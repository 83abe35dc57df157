package controller

import (
	"blackboard_backend/internal/util"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health godoc
// @Summary 健康检查
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Failure 503 {object} util.Response "数据库不可用"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	dbStatus := "up"
	sqlDB, err := c.DB.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		dbStatus = "down"
		util.Error(ctx, 503, "database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"time":     time.Now().Format(time.RFC3339),
	})
}
