package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-service/internal/apperror"
)

// Response 成功响应结构，data 始终输出（为空时为 null）
type Response struct {
	Detail string      `json:"detail"`
	Data   interface{} `json:"data"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Success 返回成功响应
func Success(c *gin.Context, detail string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Detail: detail,
		Data:   data,
	})
}

// Error 返回错误响应
func Error(c *gin.Context, httpStatus int, detail string) {
	c.JSON(httpStatus, ErrorResponse{Detail: detail})
}

// UnprocessableEntity 返回422错误
func UnprocessableEntity(c *gin.Context, detail string) {
	Error(c, http.StatusUnprocessableEntity, detail)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, MessageInternalServerError)
}

// FromError 按错误分类返回响应，内部错误只返回统一文案
func FromError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		InternalServerError(c)
		return
	}
	Error(c, HTTPStatus(kind), apperror.MessageOf(err))
}
