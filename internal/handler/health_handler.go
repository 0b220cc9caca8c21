package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/pkg/db"

	log "user-service/pkg/logger"
)

// HealthHandler 根路由与健康检查
type HealthHandler struct {
	pinger db.Pinger
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(pinger db.Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Root 测试路由
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"response":   "Test route was called successfully.",
		"app_status": "Running.",
	})
}

// Health 健康检查，存储不可达时返回503
func (h *HealthHandler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(c.Request.Context()); err != nil {
			log.Health.Warn("数据库不可达", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "Service Unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
