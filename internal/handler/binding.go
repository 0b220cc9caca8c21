package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"user-service/pkg/response"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames 让校验错误使用 json 标签中的字段名
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON 解析请求体，失败时返回可直接对外展示的消息
func bindJSON(c *gin.Context, obj interface{}) (string, bool) {
	useJSONFieldNames()

	err := c.ShouldBindJSON(obj)
	if err == nil {
		return "", true
	}
	return bindErrorMessage(err), false
}

func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		if fe.Tag() == "required" {
			return fmt.Sprintf("Field '%s' is required.", fe.Field())
		}
		return fmt.Sprintf("Invalid value for field '%s'.", fe.Field())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("Invalid value for field '%s'.", typeErr.Field)
	}

	return response.MessageInvalidBody
}
