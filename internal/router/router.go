package router

import (
	"user-service/internal/handler"
	"user-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(userHandler *handler.UserHandler, healthHandler *handler.HealthHandler, corsOrigins []string) *gin.Engine {
	// 创建 Gin Engine（不使用默认中间件）
	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())                         // Panic 恢复
	r.Use(middleware.RequestIDMiddleware())       // 请求ID
	r.Use(middleware.CORSMiddleware(corsOrigins)) // CORS
	r.Use(middleware.LoggerMiddleware())          // 日志

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	users := r.Group("/users")
	{
		users.POST("/create", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.GET("/get_id/:username", userHandler.GetUserID)
		users.PUT("/update", userHandler.UpdateUser)
		users.DELETE("/delete/:id", userHandler.DeleteUser)
	}

	return r
}
