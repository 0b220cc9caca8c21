package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/internal/apperror"
	"user-service/internal/dto"
	"user-service/internal/middleware"
	"user-service/internal/service"
	"user-service/pkg/response"

	log "user-service/pkg/logger"
)

// ============================================================================
// Handler 结构体
// ============================================================================

type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ============================================================================
// 请求结构体
// ============================================================================

// 指针字段只校验是否存在，空字符串是合法值
type CreateUserRequest struct {
	EmailID   *string `json:"email_id" binding:"required"`
	Username  *string `json:"username" binding:"required"`
	Password  *string `json:"password" binding:"required"`
	FirstName *string `json:"first_name" binding:"required"`
	LastName  *string `json:"last_name"`
}

type UpdateUserRequest struct {
	UserID *int64  `json:"user_id" binding:"required"`
	Field  *string `json:"field" binding:"required"`
	Data   *string `json:"data" binding:"required"`
}

// ============================================================================
// Handler 方法
// ============================================================================

// CreateUser 创建用户
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if msg, ok := bindJSON(c, &req); !ok {
		response.UnprocessableEntity(c, msg)
		return
	}

	result, err := h.userService.CreateUser(c.Request.Context(), &dto.CreateUserDTO{
		EmailID:   *req.EmailID,
		Username:  *req.Username,
		Password:  *req.Password,
		FirstName: *req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.fail(c, "创建用户失败", err)
		return
	}

	response.Success(c, result.Detail, result.Data)
}

// GetUser 根据ID获取用户详情
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "获取用户信息失败", err)
		return
	}

	response.Success(c, result.Detail, result.Data)
}

// GetUserID 根据用户名获取用户ID
func (h *UserHandler) GetUserID(c *gin.Context) {
	username := c.Param("username")

	result, err := h.userService.GetUserID(c.Request.Context(), username)
	if err != nil {
		h.fail(c, "获取用户ID失败", err)
		return
	}

	response.Success(c, result.Detail, result.Data)
}

// UpdateUser 更新用户单个字段
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if msg, ok := bindJSON(c, &req); !ok {
		response.UnprocessableEntity(c, msg)
		return
	}

	result, err := h.userService.UpdateUser(c.Request.Context(), &dto.UpdateUserDTO{
		UserID: *req.UserID,
		Field:  *req.Field,
		Data:   *req.Data,
	})
	if err != nil {
		h.fail(c, "更新用户失败", err)
		return
	}

	response.Success(c, result.Detail, result.Data)
}

// DeleteUser 删除用户
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "删除用户失败", err)
		return
	}

	response.Success(c, result.Detail, result.Data)
}

// ============================================================================
// 辅助函数
// ============================================================================

// parseUserID 解析路径中的用户ID，失败时直接返回422
func parseUserID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.UnprocessableEntity(c, fmt.Sprintf("Invalid user ID '%s'.", raw))
		return 0, false
	}
	return id, true
}

// fail 按错误分类返回响应，内部错误记录原因
func (h *UserHandler) fail(c *gin.Context, msg string, err error) {
	if apperror.IsInternal(err) {
		log.Error(msg,
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path))
	} else {
		log.Debug(msg, zap.Error(err))
	}
	response.FromError(c, err)
}
