package response

import (
	"net/http"

	"user-service/internal/apperror"
)

// 固定对外文案
const (
	// MessageInternalServerError 内部错误统一文案，不暴露原因
	MessageInternalServerError = "Internal Server Error"

	// MessageInvalidBody 请求体无法解析
	MessageInvalidBody = "Invalid request body."
)

// HTTPStatus 根据错误分类获取HTTP状态码
func HTTPStatus(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusUnprocessableEntity
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
